package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice (e-bill) documento financiero; como máximo una por builty.
type Invoice struct {
	ID               string
	Number           string
	DocumentID       string
	Amount           decimal.Decimal
	Tax              *decimal.Decimal // opcional
	ComplianceDocRef string           // referencia opaca al e-way bill adjunto
	IssueDate        time.Time
	CreatedBy        string
	CreatedAt        time.Time
}

// Total monto más impuesto (si existe).
func (i *Invoice) Total() decimal.Decimal {
	if i.Tax == nil {
		return i.Amount
	}
	return i.Amount.Add(*i.Tax)
}
