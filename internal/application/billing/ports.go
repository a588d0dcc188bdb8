package billing

import (
	"context"

	"github.com/jhoicas/fims/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción con los repos de builties y e-bills.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		docRepo repository.TransportDocumentRepository,
		invoiceRepo repository.InvoiceRepository,
	) error) error
}

// invoiceKey clave de bloqueo por builty facturada.
func invoiceKey(documentID string) string { return "invoice:" + documentID }
