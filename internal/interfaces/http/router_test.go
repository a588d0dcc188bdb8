package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fims/internal/app"
	"github.com/jhoicas/fims/internal/domain/entity"
	apphttp "github.com/jhoicas/fims/internal/interfaces/http"
	"github.com/jhoicas/fims/pkg/config"
	"github.com/jhoicas/fims/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// API completa sobre el almacén en memoria
// ──────────────────────────────────────────────────────────────────────────────

type apiClient struct {
	t   *testing.T
	app *fiber.App
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	cfg := &config.Config{
		App: config.AppConfig{Name: "fims-test"},
		JWT: config.JWTConfig{Secret: testJWTSecret},
	}
	a := app.NewInMemory(config.LedgerConfig{}, logger.Nop())
	srv := fiber.New()
	apphttp.Router(srv, a.RouterDeps(cfg, logger.Nop()))
	return &apiClient{t: t, app: srv}
}

// do envía la petición como role y decodifica el cuerpo JSON en un mapa.
func (c *apiClient) do(method, path, role string, body any) (int, map[string]any) {
	c.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(c.t, role))
	}
	resp, err := c.app.Test(req, -1)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	out := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(c.t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func (c *apiClient) mustCreate(path, role string, body any) map[string]any {
	c.t.Helper()
	status, out := c.do(http.MethodPost, path, role, body)
	require.Equal(c.t, http.StatusCreated, status, "%v", out)
	return out
}

func details(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	d, ok := body["details"].(map[string]any)
	require.True(t, ok, "se esperaban details en %v", body)
	return d
}

// fixture rake de 100 MT, bodega, cuenta y builty inbound de 40 MT.
type fixture struct {
	warehouseID string
	accountID   string
	documentID  string
}

func seedLedger(c *apiClient) fixture {
	wh := c.mustCreate("/api/warehouses", entity.RoleAdmin, map[string]any{"name": "Bodega A", "capacity": 500})
	acc := c.mustCreate("/api/accounts", entity.RoleAdmin, map[string]any{"name": "Dealer Uno", "type": "Dealer"})
	c.mustCreate("/api/rakes", entity.RoleAdmin, map[string]any{
		"code": "RK-1", "company_name": "IFFCO", "product_name": "Urea", "rr_quantity": 100, "date": "2025-01-10",
	})
	doc := c.mustCreate("/api/documents", entity.RoleRakePoint, map[string]any{
		"rake_code":   "RK-1",
		"destination": map[string]any{"kind": "WAREHOUSE", "id": wh["id"]},
		"quantity":    40,
		"rate_per_mt": 100,
	})
	return fixture{
		warehouseID: wh["id"].(string),
		accountID:   acc["id"].(string),
		documentID:  doc["id"].(string),
	}
}

func TestRouter_Health(t *testing.T) {
	c := newAPI(t)
	status, body := c.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "fims-test", body["service"])
}

func TestRouter_APIRequiresToken(t *testing.T) {
	c := newAPI(t)
	status, body := c.do(http.MethodGet, "/api/rakes", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_TOKEN", body["code"])
}

func TestRouter_WriteRoutesAreRoleGated(t *testing.T) {
	c := newAPI(t)
	cases := []struct {
		name string
		path string
		role string
	}{
		{"rake por warehouse", "/api/rakes", entity.RoleWarehouse},
		{"builty por accountant", "/api/documents", entity.RoleAccountant},
		{"entrada por rake point", "/api/stock/in", entity.RoleRakePoint},
		{"e-bill por warehouse", "/api/invoices", entity.RoleWarehouse},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := c.do(http.MethodPost, tc.path, tc.role, map[string]any{})
			assert.Equal(t, http.StatusForbidden, status)
			assert.Equal(t, "FORBIDDEN", body["code"])
		})
	}
}

func TestRouter_StockInRespectsDocumentCapacity(t *testing.T) {
	c := newAPI(t)
	f := seedLedger(c)

	in := c.mustCreate("/api/stock/in", entity.RoleWarehouse, map[string]any{
		"document_id": f.documentID, "warehouse_id": f.warehouseID, "quantity": 30,
	})
	assert.Equal(t, "10", in["remaining"])

	status, body := c.do(http.MethodPost, "/api/stock/in", entity.RoleWarehouse, map[string]any{
		"document_id": f.documentID, "warehouse_id": f.warehouseID, "quantity": 20,
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CAPACITY_EXCEEDED", body["code"])
	d := details(t, body)
	assert.Equal(t, f.documentID, d["document_id"])
	assert.Equal(t, "10", d["remaining"])

	status, body = c.do(http.MethodGet, "/api/documents/"+f.documentID+"/remaining", entity.RoleWarehouse, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "10", body["remaining"])
}

func TestRouter_StockInRejectsNonPositiveQuantity(t *testing.T) {
	c := newAPI(t)
	f := seedLedger(c)

	status, body := c.do(http.MethodPost, "/api/stock/in", entity.RoleWarehouse, map[string]any{
		"document_id": f.documentID, "warehouse_id": f.warehouseID, "quantity": 0,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_QUANTITY", body["code"])
}

func TestRouter_StockOutAndRakeBalance(t *testing.T) {
	c := newAPI(t)
	f := seedLedger(c)
	c.mustCreate("/api/stock/in", entity.RoleWarehouse, map[string]any{
		"document_id": f.documentID, "warehouse_id": f.warehouseID, "quantity": 30,
	})

	status, body := c.do(http.MethodPost, "/api/stock/out", entity.RoleWarehouse, map[string]any{
		"warehouse_id": f.warehouseID,
		"destination":  map[string]any{"kind": "ACCOUNT", "id": f.accountID},
		"quantity":     50,
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_BALANCE", body["code"])
	assert.Equal(t, "30", details(t, body)["available"])

	out := c.mustCreate("/api/stock/out", entity.RoleWarehouse, map[string]any{
		"warehouse_id": f.warehouseID,
		"destination":  map[string]any{"kind": "ACCOUNT", "id": f.accountID},
		"quantity":     10,
	})
	assert.Equal(t, "20", out["balance"])
	outDoc := out["document"].(map[string]any)
	assert.Equal(t, "RK-1", outDoc["rake_code"])
	assert.Equal(t, "OUTBOUND", outDoc["variant"])

	status, bal := c.do(http.MethodGet, "/api/rakes/RK-1/balance", entity.RoleAccountant, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "100", bal["receipted"])
	assert.Equal(t, "30", bal["stock_in"])
	assert.Equal(t, "10", bal["stock_out"])
	assert.Equal(t, "80", bal["balance"])

	status, sum := c.do(http.MethodGet, "/api/warehouses/"+f.warehouseID+"/summary", entity.RoleWarehouse, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "20", sum["balance"])
}

func TestRouter_ReverseMovementOnlyOnce(t *testing.T) {
	c := newAPI(t)
	f := seedLedger(c)
	in := c.mustCreate("/api/stock/in", entity.RoleWarehouse, map[string]any{
		"document_id": f.documentID, "warehouse_id": f.warehouseID, "quantity": 40,
	})
	movID := in["movement"].(map[string]any)["id"].(string)

	rev := c.mustCreate("/api/stock/movements/"+movID+"/reverse", entity.RoleWarehouse, map[string]any{"notes": "error de digitación"})
	assert.Equal(t, movID, rev["reversal_of"])
	assert.Equal(t, "-40", rev["quantity"])

	status, body := c.do(http.MethodPost, "/api/stock/movements/"+movID+"/reverse", entity.RoleWarehouse, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "ALREADY_REVERSED", body["code"])

	status, rem := c.do(http.MethodGet, "/api/documents/"+f.documentID+"/remaining", entity.RoleWarehouse, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "40", rem["remaining"])
}

func TestRouter_InvoiceOncePerDocumentAndTrace(t *testing.T) {
	c := newAPI(t)
	f := seedLedger(c)

	inv := c.mustCreate("/api/invoices", entity.RoleAccountant, map[string]any{
		"document_id": f.documentID, "amount": 1500,
	})
	invID := inv["id"].(string)

	status, body := c.do(http.MethodPost, "/api/invoices", entity.RoleAccountant, map[string]any{
		"document_id": f.documentID, "amount": 900,
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DUPLICATE_INVOICE", body["code"])

	status, tr := c.do(http.MethodGet, "/api/trace/invoice/"+invID+"/rake", entity.RoleAdmin, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "RK-1", tr["rake_code"])

	status, toInv := c.do(http.MethodGet, "/api/trace/documents/"+f.documentID+"/invoice", entity.RoleAdmin, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, invID, toInv["id"])

	status, body = c.do(http.MethodGet, "/api/trace/widget/x/rake", entity.RoleAdmin, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["code"])
}

func TestRouter_DuplicateRakeCode(t *testing.T) {
	c := newAPI(t)
	body := map[string]any{"code": "RK-9", "company_name": "NFL", "product_name": "DAP", "rr_quantity": 10}
	c.mustCreate("/api/rakes", entity.RoleAdmin, body)

	status, resp := c.do(http.MethodPost, "/api/rakes", entity.RoleAdmin, body)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DUPLICATE", resp["code"])
	assert.Equal(t, "code", details(t, resp)["field"])
}

func TestRouter_ValidationErrorsListFields(t *testing.T) {
	c := newAPI(t)
	status, body := c.do(http.MethodPost, "/api/accounts", entity.RoleAdmin, map[string]any{"name": "X", "type": "Broker"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["code"])
	fields := details(t, body)["fields"].(map[string]any)
	assert.Equal(t, "oneof", fields["type"])
}

func TestRouter_MetricsExposeLedgerDecisions(t *testing.T) {
	c := newAPI(t)
	f := seedLedger(c)
	c.mustCreate("/api/stock/in", entity.RoleWarehouse, map[string]any{
		"document_id": f.documentID, "warehouse_id": f.warehouseID, "quantity": 5,
	})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp, err := c.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `fims_ledger_decisions_total{operation="stock_in",outcome="accepted"} 1`)
}

func TestRouter_RequestIDIsEchoed(t *testing.T) {
	c := newAPI(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(apphttp.HeaderRequestID, "rid-123")
	resp, err := c.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "rid-123", resp.Header.Get(apphttp.HeaderRequestID))
}
