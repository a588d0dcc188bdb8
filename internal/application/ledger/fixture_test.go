package ledger_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fims/internal/application/ledger"
	"github.com/jhoicas/fims/internal/application/trace"
	"github.com/jhoicas/fims/internal/domain/entity"
	"github.com/jhoicas/fims/internal/infrastructure/lock"
	"github.com/jhoicas/fims/internal/infrastructure/memory"
	"github.com/jhoicas/fims/pkg/id"
)

var (
	clerk   = entity.Actor{ID: "usr-warehouse", Role: entity.RoleWarehouse}
	rakeOps = entity.Actor{ID: "usr-rakepoint", Role: entity.RoleRakePoint}
)

// recorder cuenta decisiones por operación/resultado.
type recorder struct {
	mu     sync.Mutex
	counts map[string]int
}

func (r *recorder) Decision(op, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[op+"/"+outcome]++
}

func (r *recorder) count(op, outcome string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[op+"/"+outcome]
}

type fixture struct {
	ctx      context.Context
	store    *memory.Store
	engine   *ledger.Engine
	resolver *trace.Resolver
	rec      *recorder
}

func newFixture(t *testing.T, cfg ledger.Config) *fixture {
	t.Helper()
	store := memory.New()
	rec := &recorder{counts: make(map[string]int)}
	engine := ledger.NewEngine(ledger.EngineDeps{
		TxRunner:   store,
		Locker:     lock.NewLocal(5 * time.Second),
		Rakes:      store.Rakes(),
		Accounts:   store.Accounts(),
		Warehouses: store.Warehouses(),
		Trucks:     store.Trucks(),
		Documents:  store.Documents(),
		Movements:  store.Movements(),
		Metrics:    rec,
		Config:     cfg,
	})
	resolver := trace.NewResolver(store.Rakes(), store.Documents(), store.LoadingSlips(), store.Movements(), store.Invoices())
	return &fixture{ctx: context.Background(), store: store, engine: engine, resolver: resolver, rec: rec}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func (f *fixture) rake(t *testing.T, code string, date time.Time, rr string) *entity.Rake {
	t.Helper()
	r := &entity.Rake{
		ID:          id.New(id.PrefixRake),
		Code:        code,
		CompanyName: "IFFCO",
		ProductName: "Urea",
		Date:        date,
		RRQuantity:  dec(rr),
		CreatedBy:   "usr-admin",
		CreatedAt:   time.Now(),
	}
	require.NoError(t, f.store.Rakes().Create(f.ctx, r))
	return r
}

func (f *fixture) warehouse(t *testing.T, name string) string {
	t.Helper()
	w := &entity.Warehouse{ID: id.New(id.PrefixWarehouse), Name: name, Capacity: dec("1000")}
	require.NoError(t, f.store.Warehouses().Create(f.ctx, w))
	return w.ID
}

func (f *fixture) account(t *testing.T, name string) string {
	t.Helper()
	a := &entity.Account{ID: id.New(id.PrefixAccount), Name: name, Type: entity.AccountTypeDealer}
	require.NoError(t, f.store.Accounts().Create(f.ctx, a))
	return a.ID
}

// inbound crea una builty del rake point hacia la bodega.
func (f *fixture) inbound(t *testing.T, rakeCode, warehouseID, qty string) *entity.TransportDocument {
	t.Helper()
	doc, err := f.engine.CreateInboundDocument(f.ctx, &entity.TransportDocument{
		RakeCode:    rakeCode,
		Destination: entity.ToWarehouse(warehouseID),
		Quantity:    dec(qty),
		GoodsName:   "Urea",
	}, rakeOps)
	require.NoError(t, err)
	return doc
}

func (f *fixture) stockIn(t *testing.T, doc *entity.TransportDocument, warehouseID, qty string) *ledger.StockInResult {
	t.Helper()
	res, err := f.engine.RecordStockIn(f.ctx, ledger.StockInInput{
		DocumentID:  doc.ID,
		WarehouseID: warehouseID,
		Quantity:    dec(qty),
		Actor:       clerk,
	})
	require.NoError(t, err)
	return res
}

func (f *fixture) stockOut(warehouseID, rakeCode, accountID, qty string) (*ledger.StockOutResult, error) {
	return f.engine.RecordStockOut(f.ctx, ledger.StockOutInput{
		WarehouseID: warehouseID,
		Quantity:    dec(qty),
		Document: &entity.TransportDocument{
			RakeCode:    rakeCode,
			Destination: entity.ToAccount(accountID),
		},
		Actor: clerk,
	})
}
