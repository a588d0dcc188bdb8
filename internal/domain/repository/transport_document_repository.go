package repository

import (
	"context"

	"github.com/jhoicas/fims/internal/domain/entity"
)

// TransportDocumentRepository puerto de persistencia para builties (append-only).
type TransportDocumentRepository interface {
	// Create falla con *domain.UniquenessError si el número o el LR ya existen.
	Create(ctx context.Context, doc *entity.TransportDocument) error
	GetByID(ctx context.Context, id string) (*entity.TransportDocument, error)
	GetByNumber(ctx context.Context, number string) (*entity.TransportDocument, error)
	// GetForUpdate bloquea la fila de la builty hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.TransportDocument, error)
	ListByRake(ctx context.Context, rakeCode string) ([]*entity.TransportDocument, error)
	List(ctx context.Context, limit, offset int) ([]*entity.TransportDocument, error)
	// ListWithoutInvoice builties sin e-bill, más recientes primero.
	ListWithoutInvoice(ctx context.Context) ([]*entity.TransportDocument, error)
	Count(ctx context.Context) (int, error)
	// NextLRNumber mayor LR numérico + 1, o start si no hay ninguno.
	NextLRNumber(ctx context.Context, start int) (string, error)
}
