package memory

import (
	"context"
	"strconv"

	"github.com/jhoicas/fims/internal/domain/entity"
)

// documentRepo con tx != nil bufferea las inserciones hasta el commit.
type documentRepo struct {
	s  *Store
	tx *tx
}

func (r *documentRepo) Create(_ context.Context, doc *entity.TransportDocument) error {
	if r.tx != nil {
		r.s.mu.RLock()
		err := r.s.checkDocument(doc, r.tx.docs)
		r.s.mu.RUnlock()
		if err != nil {
			return err
		}
		cp := *doc
		r.tx.docs = append(r.tx.docs, &cp)
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkDocument(doc, nil); err != nil {
		return err
	}
	r.s.applyDocument(doc)
	return nil
}

func (r *documentRepo) GetByID(_ context.Context, id string) (*entity.TransportDocument, error) {
	if d := r.tx.document(id); d != nil {
		cp := *d
		return &cp, nil
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	d, ok := r.s.documents[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *documentRepo) GetByNumber(ctx context.Context, number string) (*entity.TransportDocument, error) {
	r.s.mu.RLock()
	id, ok := r.s.docNumbers[number]
	r.s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

// GetForUpdate en memoria no bloquea filas: la exclusión la da el Locker del motor.
func (r *documentRepo) GetForUpdate(ctx context.Context, id string) (*entity.TransportDocument, error) {
	return r.GetByID(ctx, id)
}

func (r *documentRepo) ListByRake(_ context.Context, rakeCode string) ([]*entity.TransportDocument, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []*entity.TransportDocument{}
	for _, id := range r.s.docOrder {
		if d := r.s.documents[id]; d.RakeCode == rakeCode {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *documentRepo) List(_ context.Context, limit, offset int) ([]*entity.TransportDocument, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return page(r.s.newestDocuments(func(*entity.TransportDocument) bool { return true }), limit, offset), nil
}

func (r *documentRepo) ListWithoutInvoice(_ context.Context) ([]*entity.TransportDocument, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.newestDocuments(func(d *entity.TransportDocument) bool {
		_, billed := r.s.invByDoc[d.ID]
		return !billed
	}), nil
}

func (r *documentRepo) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.documents), nil
}

func (r *documentRepo) NextLRNumber(_ context.Context, start int) (string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	next := start
	for lr := range r.s.lrNumbers {
		n, err := strconv.Atoi(lr)
		if err != nil {
			continue
		}
		if n+1 > next {
			next = n + 1
		}
	}
	if r.tx != nil {
		for _, d := range r.tx.docs {
			if n, err := strconv.Atoi(d.LRNumber); err == nil && n+1 > next {
				next = n + 1
			}
		}
	}
	return strconv.Itoa(next), nil
}

// newestDocuments exige lock tomado; orden inverso de inserción.
func (s *Store) newestDocuments(keep func(*entity.TransportDocument) bool) []*entity.TransportDocument {
	out := []*entity.TransportDocument{}
	for i := len(s.docOrder) - 1; i >= 0; i-- {
		d := s.documents[s.docOrder[i]]
		if keep(d) {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out
}
