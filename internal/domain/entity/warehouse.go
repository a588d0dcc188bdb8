package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Warehouse representa una bodega donde se almacena fertilizante.
type Warehouse struct {
	ID        string
	Name      string
	Location  string
	Capacity  decimal.Decimal // informativo (MT); cero = sin declarar
	CreatedAt time.Time
	UpdatedAt time.Time
}
