package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fims/internal/domain/entity"
	"github.com/jhoicas/fims/internal/domain/stock"
)

// movementRepo con tx != nil bufferea las inserciones hasta el commit.
type movementRepo struct {
	s  *Store
	tx *tx
}

func (r *movementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	if r.tx != nil {
		r.s.mu.RLock()
		err := r.s.checkMovement(m, r.tx.docs, r.tx.movs)
		r.s.mu.RUnlock()
		if err != nil {
			return err
		}
		cp := *m
		r.tx.movs = append(r.tx.movs, &cp)
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkMovement(m, nil, nil); err != nil {
		return err
	}
	r.s.applyMovement(m)
	return nil
}

func (r *movementRepo) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	if m := r.tx.movement(id); m != nil {
		cp := *m
		return &cp, nil
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.movements[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *movementRepo) FindReversal(ctx context.Context, movementID string) (*entity.StockMovement, error) {
	if r.tx != nil {
		for _, m := range r.tx.movs {
			if m.ReversalOf == movementID {
				cp := *m
				return &cp, nil
			}
		}
	}
	r.s.mu.RLock()
	id, ok := r.s.reversals[movementID]
	r.s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

func (r *movementRepo) ListByDocument(_ context.Context, documentID string) ([]*entity.StockMovement, error) {
	return r.collect(func(m *entity.StockMovement) bool { return m.DocumentID == documentID }), nil
}

func (r *movementRepo) ListByWarehouse(_ context.Context, warehouseID string, limit, offset int) ([]*entity.StockMovement, error) {
	list := r.collect(func(m *entity.StockMovement) bool { return m.WarehouseID == warehouseID })
	for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
		list[i], list[j] = list[j], list[i]
	}
	return page(list, limit, offset), nil
}

func (r *movementRepo) ListByRake(_ context.Context, rakeCode string) ([]*entity.StockMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.filterMovements(func(m *entity.StockMovement) bool {
		return r.s.rakeOf(m) == rakeCode
	}), nil
}

func (r *movementRepo) SumInByDocument(_ context.Context, documentID string) (decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sum := decimal.Zero
	for _, id := range r.s.movOrder {
		m := r.s.movements[id]
		if m.DocumentID == documentID && m.Direction == entity.DirectionIn {
			sum = sum.Add(m.Quantity)
		}
	}
	return sum, nil
}

func (r *movementRepo) WarehouseTotals(_ context.Context, warehouseID, rakeCode string) (stock.Totals, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return stock.Sum(r.s.filterMovements(func(m *entity.StockMovement) bool {
		return m.WarehouseID == warehouseID && (rakeCode == "" || r.s.rakeOf(m) == rakeCode)
	})), nil
}

func (r *movementRepo) RakeTotals(_ context.Context, rakeCode string) (stock.Totals, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return stock.Sum(r.s.filterMovements(func(m *entity.StockMovement) bool {
		return r.s.rakeOf(m) == rakeCode
	})), nil
}

func (r *movementRepo) WarehouseRakeStocks(_ context.Context, warehouseID string) ([]stock.RakeStock, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	byRake := make(map[string]*stock.RakeStock)
	for _, id := range r.s.movOrder {
		m := r.s.movements[id]
		if m.WarehouseID != warehouseID {
			continue
		}
		code := r.s.rakeOf(m)
		rs, ok := byRake[code]
		if !ok {
			rs = &stock.RakeStock{RakeCode: code, Totals: stock.Totals{In: decimal.Zero, Out: decimal.Zero}}
			if rake, found := r.s.rakes[code]; found {
				rs.RakeDate = rake.Date
			}
			byRake[code] = rs
		}
		rs.Totals = rs.Totals.Add(m)
	}
	out := make([]stock.RakeStock, 0, len(byRake))
	for _, rs := range byRake {
		out = append(out, *rs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RakeCode < out[j].RakeCode })
	return out, nil
}

func (r *movementRepo) Totals(_ context.Context) (stock.Totals, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return stock.Sum(r.s.filterMovements(func(*entity.StockMovement) bool { return true })), nil
}

func (r *movementRepo) collect(keep func(*entity.StockMovement) bool) []*entity.StockMovement {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.filterMovements(keep)
}

// filterMovements exige lock tomado; orden de inserción.
func (s *Store) filterMovements(keep func(*entity.StockMovement) bool) []*entity.StockMovement {
	out := []*entity.StockMovement{}
	for _, id := range s.movOrder {
		m := s.movements[id]
		if keep(m) {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out
}

// rakeOf exige lock tomado.
func (s *Store) rakeOf(m *entity.StockMovement) string {
	if d, ok := s.documents[m.DocumentID]; ok {
		return d.RakeCode
	}
	return ""
}
