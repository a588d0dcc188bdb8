package usecase

import (
	"context"

	"github.com/jhoicas/fims/internal/application/dto"
	"github.com/jhoicas/fims/internal/application/trace"
)

// TraceUseCase expone el resolver de trazabilidad en DTOs.
type TraceUseCase struct {
	resolver *trace.Resolver
}

// NewTraceUseCase construye el caso de uso.
func NewTraceUseCase(resolver *trace.Resolver) *TraceUseCase {
	return &TraceUseCase{resolver: resolver}
}

// Entidades que se pueden trazar hasta su rake.
const (
	EntityDocument = "document"
	EntityMovement = "movement"
	EntityInvoice  = "invoice"
)

// ToRake rake de origen de una builty, movimiento o e-bill.
func (uc *TraceUseCase) ToRake(ctx context.Context, entityKind, entityID string) (*dto.TraceResponse, error) {
	var (
		code string
		err  error
	)
	switch entityKind {
	case EntityMovement:
		code, err = uc.resolver.TraceMovementToRake(ctx, entityID)
	case EntityInvoice:
		code, err = uc.resolver.TraceInvoiceToRake(ctx, entityID)
	default:
		code, err = uc.resolver.TraceToRake(ctx, entityID)
	}
	if err != nil {
		return nil, err
	}
	return &dto.TraceResponse{EntityID: entityID, RakeCode: code}, nil
}

// ToInvoice e-bill de la builty; nil si no tiene.
func (uc *TraceUseCase) ToInvoice(ctx context.Context, documentID string) (*dto.InvoiceResponse, error) {
	inv, err := uc.resolver.TraceToInvoice(ctx, documentID)
	if err != nil || inv == nil {
		return nil, err
	}
	out := dto.FromInvoice(inv)
	return &out, nil
}

// Descendants todo lo que cuelga de un rake.
func (uc *TraceUseCase) Descendants(ctx context.Context, rakeCode string) (*dto.DescendantsResponse, error) {
	d, err := uc.resolver.Descendants(ctx, rakeCode)
	if err != nil {
		return nil, err
	}
	return &dto.DescendantsResponse{
		RakeCode:     d.Rake.Code,
		Documents:    dto.FromDocuments(d.Documents),
		LoadingSlips: dto.FromLoadingSlips(d.LoadingSlips),
		Movements:    dto.FromMovements(d.Movements),
		Invoices:     dto.FromInvoices(d.Invoices),
	}, nil
}

// Chain cadena rake → builty → movimientos → e-bill.
func (uc *TraceUseCase) Chain(ctx context.Context, documentID string) (*dto.DocumentChainResponse, error) {
	c, err := uc.resolver.DocumentChain(ctx, documentID)
	if err != nil {
		return nil, err
	}
	out := &dto.DocumentChainResponse{
		Rake:      dto.FromRake(c.Rake),
		Document:  dto.FromDocument(c.Document),
		Movements: dto.FromMovements(c.Movements),
	}
	if c.Invoice != nil {
		inv := dto.FromInvoice(c.Invoice)
		out.Invoice = &inv
	}
	return out, nil
}
