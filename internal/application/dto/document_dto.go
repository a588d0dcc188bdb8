package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DestinationDTO destino de una builty: cuenta o bodega.
type DestinationDTO struct {
	Kind string `json:"kind" validate:"required,oneof=ACCOUNT WAREHOUSE"`
	ID   string `json:"id" validate:"required"`
}

// FreightDTO datos de transporte y flete comunes a builties inbound y outbound.
type FreightDTO struct {
	TruckID        string          `json:"truck_id,omitempty"`
	LoadingPoint   string          `json:"loading_point,omitempty" validate:"max=200"`
	UnloadingPoint string          `json:"unloading_point,omitempty" validate:"max=200"`
	GoodsName      string          `json:"goods_name,omitempty" validate:"max=200"`
	Bags           int             `json:"bags,omitempty" validate:"min=0"`
	KgPerBag       decimal.Decimal `json:"kg_per_bag"`
	RatePerMT      decimal.Decimal `json:"rate_per_mt"`
	TotalFreight   decimal.Decimal `json:"total_freight"` // cero = quantity × rate_per_mt
	LRNumber       string          `json:"lr_number,omitempty" validate:"max=50"`
}

// CreateInboundDocumentRequest body para POST /api/documents (builty del rake point).
type CreateInboundDocumentRequest struct {
	FreightDTO
	Number        string          `json:"number,omitempty" validate:"max=50"` // vacío = BLT-...
	RakeCode      string          `json:"rake_code" validate:"required"`
	Destination   DestinationDTO  `json:"destination"`
	RakePointName string          `json:"rake_point_name,omitempty" validate:"max=200"`
	Date          string          `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Quantity      decimal.Decimal `json:"quantity"`
}

// TransportDocumentResponse salida de una builty.
type TransportDocumentResponse struct {
	ID                string          `json:"id"`
	Number            string          `json:"number"`
	Variant           string          `json:"variant"`
	RakeCode          string          `json:"rake_code"`
	Destination       DestinationDTO  `json:"destination"`
	SourceWarehouseID string          `json:"source_warehouse_id,omitempty"`
	TruckID           string          `json:"truck_id,omitempty"`
	Date              time.Time       `json:"date"`
	RakePointName     string          `json:"rake_point_name,omitempty"`
	LoadingPoint      string          `json:"loading_point,omitempty"`
	UnloadingPoint    string          `json:"unloading_point,omitempty"`
	GoodsName         string          `json:"goods_name,omitempty"`
	Bags              int             `json:"bags"`
	KgPerBag          decimal.Decimal `json:"kg_per_bag"`
	Quantity          decimal.Decimal `json:"quantity"`
	RatePerMT         decimal.Decimal `json:"rate_per_mt"`
	TotalFreight      decimal.Decimal `json:"total_freight"`
	LRNumber          string          `json:"lr_number,omitempty"`
	CreatedByRole     string          `json:"created_by_role"`
	CreatedBy         string          `json:"created_by"`
	CreatedAt         time.Time       `json:"created_at"`
}

// TransportDocumentListResponse lista paginada de builties.
type TransportDocumentListResponse struct {
	Items []TransportDocumentResponse `json:"items"`
	Page  PageResponse                `json:"page"`
}

// RemainingCapacityResponse capacidad restante de una builty para entradas.
type RemainingCapacityResponse struct {
	DocumentID string          `json:"document_id"`
	Capacity   decimal.Decimal `json:"capacity"`
	Remaining  decimal.Decimal `json:"remaining"`
}
