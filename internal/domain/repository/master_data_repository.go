package repository

import (
	"context"

	"github.com/jhoicas/fims/internal/domain/entity"
)

// AccountRepository puerto de persistencia para cuentas (dato maestro mutable).
type AccountRepository interface {
	Create(ctx context.Context, account *entity.Account) error
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	Update(ctx context.Context, account *entity.Account) error
	List(ctx context.Context, accountType string, limit, offset int) ([]*entity.Account, error)
}

// WarehouseRepository puerto de persistencia para bodegas.
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *entity.Warehouse) error
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)
	// GetForUpdate bloquea la fila de la bodega hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Warehouse, error)
	Update(ctx context.Context, warehouse *entity.Warehouse) error
	List(ctx context.Context, limit, offset int) ([]*entity.Warehouse, error)
}

// TruckRepository puerto de persistencia para camiones.
type TruckRepository interface {
	Create(ctx context.Context, truck *entity.Truck) error
	GetByID(ctx context.Context, id string) (*entity.Truck, error)
	GetByNumber(ctx context.Context, number string) (*entity.Truck, error)
	Update(ctx context.Context, truck *entity.Truck) error
	List(ctx context.Context, limit, offset int) ([]*entity.Truck, error)
}
