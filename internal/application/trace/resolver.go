// Package trace recorre la cadena Rake → builty → movimiento → e-bill en ambos sentidos.
package trace

import (
	"context"

	"github.com/jhoicas/fims/internal/domain"
	"github.com/jhoicas/fims/internal/domain/entity"
	"github.com/jhoicas/fims/internal/domain/repository"
)

// Resolver encuentra el rake de origen de cualquier registro y enumera los descendientes de un rake.
// Solo lee; nunca escribe en el ledger.
type Resolver struct {
	rakes     repository.RakeRepository
	documents repository.TransportDocumentRepository
	slips     repository.LoadingSlipRepository
	movements repository.StockMovementRepository
	invoices  repository.InvoiceRepository
}

// NewResolver construye el resolver.
func NewResolver(
	rakes repository.RakeRepository,
	documents repository.TransportDocumentRepository,
	slips repository.LoadingSlipRepository,
	movements repository.StockMovementRepository,
	invoices repository.InvoiceRepository,
) *Resolver {
	return &Resolver{
		rakes:     rakes,
		documents: documents,
		slips:     slips,
		movements: movements,
		invoices:  invoices,
	}
}

// Descendants registros cuyo ancla es un rake.
type Descendants struct {
	Rake         *entity.Rake
	Documents    []*entity.TransportDocument
	LoadingSlips []*entity.LoadingSlip
	Movements    []*entity.StockMovement
	Invoices     []*entity.Invoice
}

// Chain cadena completa de una builty.
type Chain struct {
	Rake      *entity.Rake
	Document  *entity.TransportDocument
	Movements []*entity.StockMovement
	Invoice   *entity.Invoice
}

// TraceToRake rake de una builty. Las outbound guardan el rake resuelto al despachar,
// así que en ambas variantes es el campo almacenado. Falla con ErrNotFound si la builty
// o su rake no existen.
func (r *Resolver) TraceToRake(ctx context.Context, documentID string) (string, error) {
	doc, err := r.documents.GetByID(ctx, documentID)
	if err != nil {
		return "", err
	}
	if doc == nil {
		return "", domain.ErrNotFound
	}
	return r.existingRake(ctx, doc.RakeCode)
}

// TraceMovementToRake rake de origen de un movimiento.
func (r *Resolver) TraceMovementToRake(ctx context.Context, movementID string) (string, error) {
	mov, err := r.movements.GetByID(ctx, movementID)
	if err != nil {
		return "", err
	}
	if mov == nil {
		return "", domain.ErrNotFound
	}
	return r.TraceToRake(ctx, mov.DocumentID)
}

// TraceInvoiceToRake rake de origen de una e-bill.
func (r *Resolver) TraceInvoiceToRake(ctx context.Context, invoiceID string) (string, error) {
	inv, err := r.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return "", err
	}
	if inv == nil {
		return "", domain.ErrNotFound
	}
	return r.TraceToRake(ctx, inv.DocumentID)
}

// TraceToInvoice e-bill de la builty o nil si aún no tiene.
func (r *Resolver) TraceToInvoice(ctx context.Context, documentID string) (*entity.Invoice, error) {
	doc, err := r.documents.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	return r.invoices.GetByDocument(ctx, doc.ID)
}

// Descendants proyección de solo lectura de todo lo que cuelga de un rake.
func (r *Resolver) Descendants(ctx context.Context, rakeCode string) (*Descendants, error) {
	rake, err := r.rakes.GetByCode(ctx, rakeCode)
	if err != nil {
		return nil, err
	}
	if rake == nil {
		return nil, domain.ErrNotFound
	}
	docs, err := r.documents.ListByRake(ctx, rake.Code)
	if err != nil {
		return nil, err
	}
	slips, err := r.slips.ListByRake(ctx, rake.Code)
	if err != nil {
		return nil, err
	}
	movs, err := r.movements.ListByRake(ctx, rake.Code)
	if err != nil {
		return nil, err
	}
	invs, err := r.invoices.ListByRake(ctx, rake.Code)
	if err != nil {
		return nil, err
	}
	return &Descendants{
		Rake:         rake,
		Documents:    docs,
		LoadingSlips: slips,
		Movements:    movs,
		Invoices:     invs,
	}, nil
}

// DocumentChain rake, movimientos y e-bill de una builty.
func (r *Resolver) DocumentChain(ctx context.Context, documentID string) (*Chain, error) {
	doc, err := r.documents.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	rake, err := r.rakes.GetByCode(ctx, doc.RakeCode)
	if err != nil {
		return nil, err
	}
	if rake == nil {
		return nil, domain.ErrNotFound
	}
	movs, err := r.movements.ListByDocument(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	inv, err := r.invoices.GetByDocument(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	return &Chain{Rake: rake, Document: doc, Movements: movs, Invoice: inv}, nil
}

func (r *Resolver) existingRake(ctx context.Context, code string) (string, error) {
	rake, err := r.rakes.GetByCode(ctx, code)
	if err != nil {
		return "", err
	}
	if rake == nil {
		return "", domain.ErrNotFound
	}
	return rake.Code, nil
}
