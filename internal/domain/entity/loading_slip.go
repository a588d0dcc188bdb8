package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoadingSlip registro de descargue de vagones en el rake point (auditoría secundaria).
type LoadingSlip struct {
	ID               string
	RakeCode         string
	Serial           int // consecutivo por rake
	LoadingPointName string
	DestinationName  string
	AccountID        string
	WarehouseID      string
	Bags             int
	Quantity         decimal.Decimal
	TruckID          string
	WagonNumber      string
	GoodsName        string
	DocumentID       string // builty vinculada, opcional
	CreatedBy        string
	CreatedAt        time.Time
}
