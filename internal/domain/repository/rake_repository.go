package repository

import (
	"context"

	"github.com/jhoicas/fims/internal/domain/entity"
)

// RakeRepository puerto de persistencia para Rake (solo creación y lectura).
type RakeRepository interface {
	// Create falla con *domain.UniquenessError si el código ya existe.
	Create(ctx context.Context, rake *entity.Rake) error
	GetByCode(ctx context.Context, code string) (*entity.Rake, error)
	// List ordena por fecha del rake descendente.
	List(ctx context.Context, limit, offset int) ([]*entity.Rake, error)
	Count(ctx context.Context) (int, error)
}
