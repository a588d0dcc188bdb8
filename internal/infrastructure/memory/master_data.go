package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/fims/internal/domain"
	"github.com/jhoicas/fims/internal/domain/entity"
)

type accountRepo struct{ s *Store }

func (r *accountRepo) Create(_ context.Context, a *entity.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.accounts[a.ID]; ok {
		return &domain.UniquenessError{Entity: "account", Field: "id", Value: a.ID}
	}
	cp := *a
	r.s.accounts[a.ID] = &cp
	return nil
}

func (r *accountRepo) GetByID(_ context.Context, id string) (*entity.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.accounts[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *accountRepo) Update(_ context.Context, a *entity.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.accounts[a.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *a
	r.s.accounts[a.ID] = &cp
	return nil
}

func (r *accountRepo) List(_ context.Context, accountType string, limit, offset int) ([]*entity.Account, error) {
	r.s.mu.RLock()
	list := make([]*entity.Account, 0, len(r.s.accounts))
	for _, a := range r.s.accounts {
		if accountType != "" && a.Type != accountType {
			continue
		}
		cp := *a
		list = append(list, &cp)
	}
	r.s.mu.RUnlock()
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return page(list, limit, offset), nil
}

type warehouseRepo struct{ s *Store }

func (r *warehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.warehouses[w.ID]; ok {
		return &domain.UniquenessError{Entity: "warehouse", Field: "id", Value: w.ID}
	}
	cp := *w
	r.s.warehouses[w.ID] = &cp
	return nil
}

func (r *warehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	w, ok := r.s.warehouses[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

// GetForUpdate en memoria no bloquea filas: la exclusión la da el Locker del motor.
func (r *warehouseRepo) GetForUpdate(ctx context.Context, id string) (*entity.Warehouse, error) {
	return r.GetByID(ctx, id)
}

func (r *warehouseRepo) Update(_ context.Context, w *entity.Warehouse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.warehouses[w.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *w
	r.s.warehouses[w.ID] = &cp
	return nil
}

func (r *warehouseRepo) List(_ context.Context, limit, offset int) ([]*entity.Warehouse, error) {
	r.s.mu.RLock()
	list := make([]*entity.Warehouse, 0, len(r.s.warehouses))
	for _, w := range r.s.warehouses {
		cp := *w
		list = append(list, &cp)
	}
	r.s.mu.RUnlock()
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return page(list, limit, offset), nil
}

type truckRepo struct{ s *Store }

func (r *truckRepo) Create(_ context.Context, t *entity.Truck) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.truckNumbers[t.Number]; ok {
		return &domain.UniquenessError{Entity: "truck", Field: "number", Value: t.Number}
	}
	cp := *t
	r.s.trucks[t.ID] = &cp
	r.s.truckNumbers[t.Number] = t.ID
	return nil
}

func (r *truckRepo) GetByID(_ context.Context, id string) (*entity.Truck, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.trucks[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *truckRepo) GetByNumber(ctx context.Context, number string) (*entity.Truck, error) {
	r.s.mu.RLock()
	id, ok := r.s.truckNumbers[number]
	r.s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

func (r *truckRepo) Update(_ context.Context, t *entity.Truck) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.trucks[t.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if t.Number != old.Number {
		if _, taken := r.s.truckNumbers[t.Number]; taken {
			return &domain.UniquenessError{Entity: "truck", Field: "number", Value: t.Number}
		}
		delete(r.s.truckNumbers, old.Number)
		r.s.truckNumbers[t.Number] = t.ID
	}
	cp := *t
	r.s.trucks[t.ID] = &cp
	return nil
}

func (r *truckRepo) List(_ context.Context, limit, offset int) ([]*entity.Truck, error) {
	r.s.mu.RLock()
	list := make([]*entity.Truck, 0, len(r.s.trucks))
	for _, t := range r.s.trucks {
		cp := *t
		list = append(list, &cp)
	}
	r.s.mu.RUnlock()
	sort.Slice(list, func(i, j int) bool { return list[i].Number < list[j].Number })
	return page(list, limit, offset), nil
}
