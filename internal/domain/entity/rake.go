package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rake representa un consignamiento ferroviario: raíz de toda la trazabilidad.
// Se crea una sola vez y no se modifica.
type Rake struct {
	ID            string
	Code          string // único, lo asigna el administrador
	CompanyName   string
	CompanyCode   string
	ProductName   string
	ProductCode   string
	RakePointName string
	Date          time.Time
	RRQuantity    decimal.Decimal // cantidad recibida según Railway Receipt (MT)
	CreatedBy     string
	CreatedAt     time.Time
}
