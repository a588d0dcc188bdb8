package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateRakeRequest body para POST /api/rakes.
type CreateRakeRequest struct {
	Code          string          `json:"code" validate:"required,min=1,max=50"`
	CompanyName   string          `json:"company_name" validate:"required,max=200"`
	CompanyCode   string          `json:"company_code" validate:"max=50"`
	ProductName   string          `json:"product_name" validate:"required,max=200"`
	ProductCode   string          `json:"product_code" validate:"max=50"`
	RakePointName string          `json:"rake_point_name" validate:"max=200"`
	Date          string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
	RRQuantity    decimal.Decimal `json:"rr_quantity"`
}

// RakeResponse salida de un rake.
type RakeResponse struct {
	ID            string          `json:"id"`
	Code          string          `json:"code"`
	CompanyName   string          `json:"company_name"`
	CompanyCode   string          `json:"company_code,omitempty"`
	ProductName   string          `json:"product_name"`
	ProductCode   string          `json:"product_code,omitempty"`
	RakePointName string          `json:"rake_point_name,omitempty"`
	Date          time.Time       `json:"date"`
	RRQuantity    decimal.Decimal `json:"rr_quantity"`
	CreatedBy     string          `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
}

// RakeListResponse lista paginada de rakes.
type RakeListResponse struct {
	Items []RakeResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// RakeBalanceResponse saldo de un rake: balance = receipted - stock_in + stock_out.
type RakeBalanceResponse struct {
	RakeCode  string          `json:"rake_code"`
	Receipted decimal.Decimal `json:"receipted"`
	StockIn   decimal.Decimal `json:"stock_in"`
	StockOut  decimal.Decimal `json:"stock_out"`
	Balance   decimal.Decimal `json:"balance"`
}

// RakeDispatchBalanceResponse despacho desde el rake point según loading slips.
type RakeDispatchBalanceResponse struct {
	RakeCode   string          `json:"rake_code"`
	Total      decimal.Decimal `json:"total"`
	Dispatched decimal.Decimal `json:"dispatched"`
	Remaining  decimal.Decimal `json:"remaining"`
}
