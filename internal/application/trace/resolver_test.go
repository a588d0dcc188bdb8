package trace_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fims/internal/application/trace"
	"github.com/jhoicas/fims/internal/domain"
	"github.com/jhoicas/fims/internal/domain/entity"
	"github.com/jhoicas/fims/internal/domain/stock"
	"github.com/jhoicas/fims/internal/infrastructure/memory"
	"github.com/jhoicas/fims/pkg/id"
)

type seed struct {
	ctx      context.Context
	store    *memory.Store
	resolver *trace.Resolver
}

func newSeed(t *testing.T) *seed {
	t.Helper()
	s := memory.New()
	return &seed{
		ctx:      context.Background(),
		store:    s,
		resolver: trace.NewResolver(s.Rakes(), s.Documents(), s.LoadingSlips(), s.Movements(), s.Invoices()),
	}
}

func (s *seed) rake(t *testing.T, code string, date time.Time) {
	t.Helper()
	require.NoError(t, s.store.Rakes().Create(s.ctx, &entity.Rake{
		ID: id.New(id.PrefixRake), Code: code, Date: date, RRQuantity: decimal.NewFromInt(500),
	}))
}

func (s *seed) warehouse(t *testing.T) string {
	t.Helper()
	w := &entity.Warehouse{ID: id.New(id.PrefixWarehouse), Name: "W1"}
	require.NoError(t, s.store.Warehouses().Create(s.ctx, w))
	return w.ID
}

func (s *seed) document(t *testing.T, rakeCode, number string, variant entity.DocumentVariant, dest entity.Destination, qty int64) *entity.TransportDocument {
	t.Helper()
	d := &entity.TransportDocument{
		ID:          id.New(id.PrefixDocument),
		Number:      number,
		Variant:     variant,
		RakeCode:    rakeCode,
		Destination: dest,
		Quantity:    decimal.NewFromInt(qty),
	}
	require.NoError(t, s.store.Documents().Create(s.ctx, d))
	return d
}

func (s *seed) movement(t *testing.T, doc *entity.TransportDocument, warehouseID string, dir entity.Direction, qty int64) *entity.StockMovement {
	t.Helper()
	m := &entity.StockMovement{
		ID:          id.New(id.PrefixMovement),
		WarehouseID: warehouseID,
		DocumentID:  doc.ID,
		Direction:   dir,
		Quantity:    decimal.NewFromInt(qty),
	}
	require.NoError(t, s.store.Movements().Create(s.ctx, m))
	return m
}

func (s *seed) invoice(t *testing.T, doc *entity.TransportDocument, number string) *entity.Invoice {
	t.Helper()
	inv := &entity.Invoice{ID: id.New(id.PrefixInvoice), Number: number, DocumentID: doc.ID, Amount: decimal.NewFromInt(1000)}
	require.NoError(t, s.store.Invoices().Create(s.ctx, inv))
	return inv
}

func TestTraceToRake_CierreDeTrazabilidad(t *testing.T) {
	s := newSeed(t)
	s.rake(t, "RK1", time.Now())
	w1 := s.warehouse(t)
	in := s.document(t, "RK1", "BLT-1", entity.VariantInbound, entity.ToWarehouse(w1), 50)
	out := s.document(t, "RK1", "BLTO-1", entity.VariantOutbound, entity.ToAccount("acct_x"), 20)
	movIn := s.movement(t, in, w1, entity.DirectionIn, 50)
	movOut := s.movement(t, out, w1, entity.DirectionOut, 20)
	inv := s.invoice(t, out, "EB-1")

	for _, movID := range []string{movIn.ID, movOut.ID} {
		code, err := s.resolver.TraceMovementToRake(s.ctx, movID)
		require.NoError(t, err)
		assert.Equal(t, "RK1", code)
	}
	code, err := s.resolver.TraceInvoiceToRake(s.ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "RK1", code)

	_, err = s.resolver.TraceToRake(s.ctx, "bty_missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.resolver.TraceMovementToRake(s.ctx, "mov_missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTraceToInvoice(t *testing.T) {
	s := newSeed(t)
	s.rake(t, "RK1", time.Now())
	w1 := s.warehouse(t)
	billed := s.document(t, "RK1", "BLT-1", entity.VariantInbound, entity.ToWarehouse(w1), 50)
	unbilled := s.document(t, "RK1", "BLT-2", entity.VariantInbound, entity.ToWarehouse(w1), 50)
	inv := s.invoice(t, billed, "EB-1")

	got, err := s.resolver.TraceToInvoice(s.ctx, billed.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, inv.ID, got.ID)

	got, err = s.resolver.TraceToInvoice(s.ctx, unbilled.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDescendants(t *testing.T) {
	s := newSeed(t)
	s.rake(t, "RK1", time.Now())
	s.rake(t, "RK2", time.Now())
	w1 := s.warehouse(t)
	d1 := s.document(t, "RK1", "BLT-1", entity.VariantInbound, entity.ToWarehouse(w1), 50)
	d2 := s.document(t, "RK2", "BLT-2", entity.VariantInbound, entity.ToWarehouse(w1), 50)
	s.movement(t, d1, w1, entity.DirectionIn, 30)
	s.movement(t, d2, w1, entity.DirectionIn, 30)
	s.invoice(t, d1, "EB-1")
	require.NoError(t, s.store.LoadingSlips().Create(s.ctx, &entity.LoadingSlip{
		ID: id.New(id.PrefixLoadingSlip), RakeCode: "RK1", Quantity: decimal.NewFromInt(50),
	}))

	got, err := s.resolver.Descendants(s.ctx, "RK1")
	require.NoError(t, err)
	assert.Equal(t, "RK1", got.Rake.Code)
	require.Len(t, got.Documents, 1)
	assert.Equal(t, d1.ID, got.Documents[0].ID)
	assert.Len(t, got.LoadingSlips, 1)
	assert.Len(t, got.Movements, 1)
	assert.Len(t, got.Invoices, 1)

	_, err = s.resolver.Descendants(s.ctx, "RK9")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	chain, err := s.resolver.DocumentChain(s.ctx, d1.ID)
	require.NoError(t, err)
	assert.Equal(t, "RK1", chain.Rake.Code)
	assert.Len(t, chain.Movements, 1)
	require.NotNil(t, chain.Invoice)
	assert.Equal(t, "EB-1", chain.Invoice.Number)
}

func TestWarehouseRakeStocks_FIFO(t *testing.T) {
	s := newSeed(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.rake(t, "RK-B", base)
	s.rake(t, "RK-A", base)
	s.rake(t, "RK-NEW", base.AddDate(0, 1, 0))
	w1 := s.warehouse(t)

	pick := func() (string, bool) {
		t.Helper()
		stocks, err := s.store.Movements().WarehouseRakeStocks(s.ctx, w1)
		require.NoError(t, err)
		return stock.PickFIFO(stocks)
	}

	_, ok := pick()
	assert.False(t, ok)

	dNew := s.document(t, "RK-NEW", "BLT-N", entity.VariantInbound, entity.ToWarehouse(w1), 10)
	dB := s.document(t, "RK-B", "BLT-B", entity.VariantInbound, entity.ToWarehouse(w1), 10)
	dA := s.document(t, "RK-A", "BLT-A", entity.VariantInbound, entity.ToWarehouse(w1), 10)
	s.movement(t, dNew, w1, entity.DirectionIn, 10)
	s.movement(t, dB, w1, entity.DirectionIn, 10)
	s.movement(t, dA, w1, entity.DirectionIn, 10)

	// Misma fecha: gana el código menor.
	code, ok := pick()
	require.True(t, ok)
	assert.Equal(t, "RK-A", code)

	// Agotado RK-A pasa a RK-B.
	outA := s.document(t, "RK-A", "BLTO-A", entity.VariantOutbound, entity.ToAccount("acct_x"), 10)
	s.movement(t, outA, w1, entity.DirectionOut, 10)
	code, _ = pick()
	assert.Equal(t, "RK-B", code)
}
