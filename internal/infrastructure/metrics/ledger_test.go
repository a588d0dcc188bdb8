package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fims/internal/application/billing"
	"github.com/jhoicas/fims/internal/application/ledger"
	"github.com/jhoicas/fims/internal/infrastructure/metrics"
)

var _ ledger.Recorder = (*metrics.Ledger)(nil)

func TestLedger_CuentaDecisiones(t *testing.T) {
	m := metrics.NewLedger()
	m.Decision(ledger.OpStockIn, ledger.OutcomeAccepted)
	m.Decision(ledger.OpStockIn, ledger.OutcomeAccepted)
	m.Decision(ledger.OpStockIn, ledger.OutcomeCapacityExceeded)
	m.Decision(ledger.OpStockOut, ledger.OutcomeInsufficientBalance)

	count, err := testutil.GatherAndCount(m.Registry(), "fims_ledger_decisions_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count, "una serie por (operation, outcome)")
}

func TestLedger_Handler(t *testing.T) {
	m := metrics.NewLedger()
	m.Decision(billing.OpCreateInvoice, ledger.OutcomeDuplicateInvoice)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `fims_ledger_decisions_total{operation="create_invoice",outcome="duplicate_invoice"} 1`)
}
