package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fims/internal/domain/entity"
)

// InvoiceRepository puerto de persistencia para e-bills (append-only).
type InvoiceRepository interface {
	// Create falla con *domain.UniquenessError si el número ya existe y con
	// domain.ErrDuplicateInvoice si la builty ya tiene e-bill.
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	GetByDocument(ctx context.Context, documentID string) (*entity.Invoice, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Invoice, error)
	ListByRake(ctx context.Context, rakeCode string) ([]*entity.Invoice, error)
	// Summary cantidad de e-bills y suma de montos.
	Summary(ctx context.Context) (count int, amount decimal.Decimal, err error)
}
