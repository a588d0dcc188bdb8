package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/fims/internal/domain"
	"github.com/jhoicas/fims/internal/domain/entity"
)

type rakeRepo struct{ s *Store }

func (r *rakeRepo) Create(_ context.Context, rake *entity.Rake) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.rakes[rake.Code]; ok {
		return &domain.UniquenessError{Entity: "rake", Field: "code", Value: rake.Code}
	}
	cp := *rake
	r.s.rakes[rake.Code] = &cp
	return nil
}

func (r *rakeRepo) GetByCode(_ context.Context, code string) (*entity.Rake, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rake, ok := r.s.rakes[code]
	if !ok {
		return nil, nil
	}
	cp := *rake
	return &cp, nil
}

func (r *rakeRepo) List(_ context.Context, limit, offset int) ([]*entity.Rake, error) {
	r.s.mu.RLock()
	list := make([]*entity.Rake, 0, len(r.s.rakes))
	for _, rake := range r.s.rakes {
		cp := *rake
		list = append(list, &cp)
	}
	r.s.mu.RUnlock()
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.After(list[j].Date)
		}
		return list[i].Code < list[j].Code
	})
	return page(list, limit, offset), nil
}

func (r *rakeRepo) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.rakes), nil
}
