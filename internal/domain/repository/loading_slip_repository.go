package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fims/internal/domain/entity"
)

// LoadingSlipRepository puerto de persistencia para loading slips.
type LoadingSlipRepository interface {
	// Create asigna Serial = máximo del rake + 1 cuando llega en cero.
	Create(ctx context.Context, slip *entity.LoadingSlip) error
	GetByID(ctx context.Context, id string) (*entity.LoadingSlip, error)
	ListByRake(ctx context.Context, rakeCode string) ([]*entity.LoadingSlip, error)
	// LinkDocument vincula el slip a una builty; devuelve domain.ErrNotFound si el slip no existe.
	LinkDocument(ctx context.Context, slipID, documentID string) error
	// SumQuantityByRake total despachado desde el rake point según los slips.
	SumQuantityByRake(ctx context.Context, rakeCode string) (decimal.Decimal, error)
}
