package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateWarehouseRequest entrada para crear una bodega.
type CreateWarehouseRequest struct {
	Name     string          `json:"name" validate:"required,min=1,max=200"`
	Location string          `json:"location" validate:"max=300"`
	Capacity decimal.Decimal `json:"capacity"`
}

// UpdateWarehouseRequest entrada para actualizar una bodega.
type UpdateWarehouseRequest struct {
	Name     *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Location *string          `json:"location" validate:"omitempty,max=300"`
	Capacity *decimal.Decimal `json:"capacity"`
}

// WarehouseResponse salida de una bodega.
type WarehouseResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Location  string          `json:"location"`
	Capacity  decimal.Decimal `json:"capacity"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// WarehouseListResponse lista paginada de bodegas.
type WarehouseListResponse struct {
	Items []WarehouseResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
