package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest body para POST /api/invoices.
type CreateInvoiceRequest struct {
	DocumentID       string           `json:"document_id" validate:"required"`
	Number           string           `json:"number,omitempty" validate:"max=50"` // vacío = EB-...
	Amount           decimal.Decimal  `json:"amount"`
	Tax              *decimal.Decimal `json:"tax,omitempty"`
	ComplianceDocRef string           `json:"compliance_doc_ref,omitempty" validate:"max=300"` // referencia del e-way bill
	IssueDate        string           `json:"issue_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// InvoiceResponse e-bill en respuestas.
type InvoiceResponse struct {
	ID               string           `json:"id"`
	Number           string           `json:"number"`
	DocumentID       string           `json:"document_id"`
	Amount           decimal.Decimal  `json:"amount"`
	Tax              *decimal.Decimal `json:"tax,omitempty"`
	Total            decimal.Decimal  `json:"total"`
	ComplianceDocRef string           `json:"compliance_doc_ref,omitempty"`
	IssueDate        time.Time        `json:"issue_date"`
	CreatedBy        string           `json:"created_by"`
	CreatedAt        time.Time        `json:"created_at"`
}

// InvoiceListResponse lista paginada de e-bills.
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
