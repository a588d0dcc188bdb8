package dto

import "github.com/shopspring/decimal"

// DashboardStatsDTO respuesta de GET /api/dashboard/stats.
type DashboardStatsDTO struct {
	TotalRakes     int             `json:"total_rakes"`
	TotalDocuments int             `json:"total_documents"`
	StockIn        decimal.Decimal `json:"stock_in"`
	StockOut       decimal.Decimal `json:"stock_out"`
	StockBalance   decimal.Decimal `json:"stock_balance"`
	TotalInvoices  int             `json:"total_invoices"`
	InvoiceAmount  decimal.Decimal `json:"invoice_amount"`
	UnbilledCount  int             `json:"unbilled_documents"`
}
