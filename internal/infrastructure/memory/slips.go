package memory

import (
	"context"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fims/internal/domain"
	"github.com/jhoicas/fims/internal/domain/entity"
)

type slipRepo struct{ s *Store }

func (r *slipRepo) Create(_ context.Context, slip *entity.LoadingSlip) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.rakes[slip.RakeCode]; !ok {
		return domain.ErrNotFound
	}
	serials := r.s.slipSerials[slip.RakeCode]
	if serials == nil {
		serials = make(map[int]string)
		r.s.slipSerials[slip.RakeCode] = serials
	}
	if slip.Serial == 0 {
		for n := range serials {
			if n > slip.Serial {
				slip.Serial = n
			}
		}
		slip.Serial++
	} else if _, taken := serials[slip.Serial]; taken {
		return &domain.UniquenessError{Entity: "loading_slip", Field: "serial", Value: strconv.Itoa(slip.Serial)}
	}
	cp := *slip
	r.s.slips[slip.ID] = &cp
	r.s.slipOrder = append(r.s.slipOrder, slip.ID)
	serials[slip.Serial] = slip.ID
	return nil
}

func (r *slipRepo) GetByID(_ context.Context, id string) (*entity.LoadingSlip, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	slip, ok := r.s.slips[id]
	if !ok {
		return nil, nil
	}
	cp := *slip
	return &cp, nil
}

func (r *slipRepo) ListByRake(_ context.Context, rakeCode string) ([]*entity.LoadingSlip, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []*entity.LoadingSlip{}
	for _, id := range r.s.slipOrder {
		if slip := r.s.slips[id]; slip.RakeCode == rakeCode {
			cp := *slip
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *slipRepo) LinkDocument(_ context.Context, slipID, documentID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	slip, ok := r.s.slips[slipID]
	if !ok {
		return domain.ErrNotFound
	}
	if _, ok := r.s.documents[documentID]; !ok {
		return domain.ErrNotFound
	}
	slip.DocumentID = documentID
	return nil
}

func (r *slipRepo) SumQuantityByRake(_ context.Context, rakeCode string) (decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sum := decimal.Zero
	for _, slip := range r.s.slips {
		if slip.RakeCode == rakeCode {
			sum = sum.Add(slip.Quantity)
		}
	}
	return sum, nil
}
