package memory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fims/internal/domain/entity"
)

// invoiceRepo con tx != nil bufferea las inserciones hasta el commit.
type invoiceRepo struct {
	s  *Store
	tx *tx
}

func (r *invoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	if r.tx != nil {
		r.s.mu.RLock()
		err := r.s.checkInvoice(inv, r.tx.docs, r.tx.invs)
		r.s.mu.RUnlock()
		if err != nil {
			return err
		}
		cp := *inv
		r.tx.invs = append(r.tx.invs, &cp)
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkInvoice(inv, nil, nil); err != nil {
		return err
	}
	r.s.applyInvoice(inv)
	return nil
}

func (r *invoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.invoice(id), nil
}

func (r *invoiceRepo) GetByDocument(_ context.Context, documentID string) (*entity.Invoice, error) {
	if r.tx != nil {
		for _, inv := range r.tx.invs {
			if inv.DocumentID == documentID {
				cp := *inv
				return &cp, nil
			}
		}
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	id, ok := r.s.invByDoc[documentID]
	if !ok {
		return nil, nil
	}
	return r.s.invoice(id), nil
}

func (r *invoiceRepo) List(_ context.Context, limit, offset int) ([]*entity.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Invoice, 0, len(r.s.invOrder))
	for i := len(r.s.invOrder) - 1; i >= 0; i-- {
		out = append(out, r.s.invoice(r.s.invOrder[i]))
	}
	return page(out, limit, offset), nil
}

func (r *invoiceRepo) ListByRake(_ context.Context, rakeCode string) ([]*entity.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []*entity.Invoice{}
	for _, id := range r.s.invOrder {
		inv := r.s.invoices[id]
		if d, ok := r.s.documents[inv.DocumentID]; ok && d.RakeCode == rakeCode {
			out = append(out, r.s.invoice(id))
		}
	}
	return out, nil
}

func (r *invoiceRepo) Summary(_ context.Context) (int, decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	amount := decimal.Zero
	for _, inv := range r.s.invoices {
		amount = amount.Add(inv.Amount)
	}
	return len(r.s.invoices), amount, nil
}

// invoice exige lock tomado; nil si no existe.
func (s *Store) invoice(id string) *entity.Invoice {
	inv, ok := s.invoices[id]
	if !ok {
		return nil
	}
	cp := *inv
	if inv.Tax != nil {
		tax := *inv.Tax
		cp.Tax = &tax
	}
	return &cp
}
