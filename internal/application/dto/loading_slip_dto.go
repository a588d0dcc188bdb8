package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateLoadingSlipRequest body para POST /api/loading-slips.
type CreateLoadingSlipRequest struct {
	RakeCode         string          `json:"rake_code" validate:"required"`
	LoadingPointName string          `json:"loading_point_name" validate:"max=200"`
	DestinationName  string          `json:"destination_name" validate:"max=200"`
	AccountID        string          `json:"account_id,omitempty"`
	WarehouseID      string          `json:"warehouse_id,omitempty"`
	Bags             int             `json:"bags" validate:"min=0"`
	Quantity         decimal.Decimal `json:"quantity"`
	TruckID          string          `json:"truck_id,omitempty"`
	WagonNumber      string          `json:"wagon_number" validate:"max=50"`
	GoodsName        string          `json:"goods_name" validate:"max=200"`
	DocumentID       string          `json:"document_id,omitempty"`
}

// LinkLoadingSlipRequest body para POST /api/loading-slips/:id/link.
type LinkLoadingSlipRequest struct {
	DocumentID string `json:"document_id" validate:"required"`
}

// LoadingSlipResponse salida de un loading slip.
type LoadingSlipResponse struct {
	ID               string          `json:"id"`
	RakeCode         string          `json:"rake_code"`
	Serial           int             `json:"serial"`
	LoadingPointName string          `json:"loading_point_name,omitempty"`
	DestinationName  string          `json:"destination_name,omitempty"`
	AccountID        string          `json:"account_id,omitempty"`
	WarehouseID      string          `json:"warehouse_id,omitempty"`
	Bags             int             `json:"bags"`
	Quantity         decimal.Decimal `json:"quantity"`
	TruckID          string          `json:"truck_id,omitempty"`
	WagonNumber      string          `json:"wagon_number,omitempty"`
	GoodsName        string          `json:"goods_name,omitempty"`
	DocumentID       string          `json:"document_id,omitempty"`
	CreatedBy        string          `json:"created_by"`
	CreatedAt        time.Time       `json:"created_at"`
}
