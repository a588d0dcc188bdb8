package billing

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/fims/internal/application/dto"
	"github.com/jhoicas/fims/internal/application/ledger"
	"github.com/jhoicas/fims/internal/domain"
	"github.com/jhoicas/fims/internal/domain/entity"
	"github.com/jhoicas/fims/internal/domain/identifier"
	"github.com/jhoicas/fims/internal/domain/repository"
	"github.com/jhoicas/fims/pkg/id"
	"github.com/jhoicas/fims/pkg/logger"
)

// OpCreateInvoice operación registrada en métricas.
const OpCreateInvoice = "create_invoice"

// maxNumberAttempts intentos cuando el número EB-... generado choca con otro proceso.
const maxNumberAttempts = 3

// InvoiceUseCase crea y consulta e-bills. Como máximo una e-bill por builty.
type InvoiceUseCase struct {
	txRunner  BillingTxRunner
	locker    ledger.Locker
	documents repository.TransportDocumentRepository
	invoices  repository.InvoiceRepository
	ids       *identifier.Generator
	metrics   ledger.Recorder
	log       *logger.Logger
	now       func() time.Time
}

// NewInvoiceUseCase construye el caso de uso. metrics y log pueden ser nil.
func NewInvoiceUseCase(
	txRunner BillingTxRunner,
	locker ledger.Locker,
	documents repository.TransportDocumentRepository,
	invoices repository.InvoiceRepository,
	ids *identifier.Generator,
	metrics ledger.Recorder,
	log *logger.Logger,
) *InvoiceUseCase {
	if ids == nil {
		ids = identifier.NewGenerator(nil)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &InvoiceUseCase{
		txRunner:  txRunner,
		locker:    locker,
		documents: documents,
		invoices:  invoices,
		ids:       ids,
		metrics:   metrics,
		log:       log,
		now:       time.Now,
	}
}

// Create emite la e-bill de una builty. Una segunda e-bill para la misma builty
// falla con domain.ErrDuplicateInvoice; un número repetido con *domain.UniquenessError.
func (uc *InvoiceUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	inv, err := uc.create(ctx, actor, in)
	if uc.metrics != nil {
		uc.metrics.Decision(OpCreateInvoice, ledger.Outcome(err))
	}
	if err != nil {
		ev := uc.log.Error()
		if ledger.IsBusinessRule(err) {
			ev = uc.log.Warn().Str("kind", ledger.Outcome(err))
		}
		ev.Err(err).
			Str("op", OpCreateInvoice).
			Str("document_id", in.DocumentID).
			Str("actor", actor.ID).
			Msg("e-bill rechazada")
		return nil, err
	}
	uc.log.Info().
		Str("op", OpCreateInvoice).
		Str("invoice_id", inv.ID).
		Str("invoice_number", inv.Number).
		Str("document_id", inv.DocumentID).
		Str("amount", inv.Amount.String()).
		Str("actor", actor.ID).
		Msg("e-bill registrada")
	out := dto.FromInvoice(inv)
	return &out, nil
}

func (uc *InvoiceUseCase) create(ctx context.Context, actor entity.Actor, in dto.CreateInvoiceRequest) (*entity.Invoice, error) {
	if in.DocumentID == "" || !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if in.Tax != nil && in.Tax.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	issueDate, err := dto.ParseDate(in.IssueDate)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	if issueDate.IsZero() {
		issueDate = now
	}
	inv := &entity.Invoice{
		ID:               id.New(id.PrefixInvoice),
		Number:           in.Number,
		DocumentID:       in.DocumentID,
		Amount:           in.Amount,
		Tax:              in.Tax,
		ComplianceDocRef: in.ComplianceDocRef,
		IssueDate:        issueDate,
		CreatedBy:        actor.ID,
		CreatedAt:        now,
	}
	generated := inv.Number == ""

	// 1) Serializar e-bills de la misma builty (la restricción única es el respaldo).
	unlock, err := uc.locker.Lock(ctx, invoiceKey(in.DocumentID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	for attempt := 1; ; attempt++ {
		if generated {
			inv.Number = uc.ids.InvoiceNumber()
		}
		// 2) Verificar builty y ausencia de e-bill previa, e insertar en la misma transacción.
		err = uc.txRunner.RunBilling(ctx, func(
			docRepo repository.TransportDocumentRepository,
			invoiceRepo repository.InvoiceRepository,
		) error {
			doc, err := docRepo.GetByID(ctx, in.DocumentID)
			if err != nil {
				return err
			}
			if doc == nil {
				return domain.ErrNotFound
			}
			existing, err := invoiceRepo.GetByDocument(ctx, doc.ID)
			if err != nil {
				return err
			}
			if existing != nil {
				return domain.ErrDuplicateInvoice
			}
			return invoiceRepo.Create(ctx, inv)
		})
		if err == nil {
			return inv, nil
		}
		var uerr *domain.UniquenessError
		if generated && attempt < maxNumberAttempts && errors.As(err, &uerr) && uerr.Field == "number" {
			continue
		}
		return nil, err
	}
}

// GetByID obtiene una e-bill; nil si no existe.
func (uc *InvoiceUseCase) GetByID(ctx context.Context, invoiceID string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, nil
	}
	out := dto.FromInvoice(inv)
	return &out, nil
}

// List lista e-bills, más recientes primero.
func (uc *InvoiceUseCase) List(ctx context.Context, limit, offset int) (*dto.InvoiceListResponse, error) {
	list, err := uc.invoices.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return &dto.InvoiceListResponse{
		Items: dto.FromInvoices(list),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ListUnbilled builties que aún no tienen e-bill.
func (uc *InvoiceUseCase) ListUnbilled(ctx context.Context) ([]dto.TransportDocumentResponse, error) {
	docs, err := uc.documents.ListWithoutInvoice(ctx)
	if err != nil {
		return nil, err
	}
	return dto.FromDocuments(docs), nil
}
