package usecase

import (
	"context"

	"github.com/jhoicas/fims/internal/application/dto"
	"github.com/jhoicas/fims/internal/application/ledger"
	"github.com/jhoicas/fims/internal/domain/repository"
)

// DashboardUseCase indicadores generales del panel de administración.
type DashboardUseCase struct {
	rakes    repository.RakeRepository
	docs     repository.TransportDocumentRepository
	invoices repository.InvoiceRepository
	engine   *ledger.Engine
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	rakes repository.RakeRepository,
	docs repository.TransportDocumentRepository,
	invoices repository.InvoiceRepository,
	engine *ledger.Engine,
) *DashboardUseCase {
	return &DashboardUseCase{rakes: rakes, docs: docs, invoices: invoices, engine: engine}
}

// Stats totales de rakes, builties, stock y e-bills.
func (uc *DashboardUseCase) Stats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	rakes, err := uc.rakes.Count(ctx)
	if err != nil {
		return nil, err
	}
	docs, err := uc.docs.Count(ctx)
	if err != nil {
		return nil, err
	}
	totals, err := uc.engine.StockTotals(ctx)
	if err != nil {
		return nil, err
	}
	invoices, amount, err := uc.invoices.Summary(ctx)
	if err != nil {
		return nil, err
	}
	unbilled, err := uc.docs.ListWithoutInvoice(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardStatsDTO{
		TotalRakes:     rakes,
		TotalDocuments: docs,
		StockIn:        totals.In,
		StockOut:       totals.Out,
		StockBalance:   totals.Balance(),
		TotalInvoices:  invoices,
		InvoiceAmount:  amount,
		UnbilledCount:  len(unbilled),
	}, nil
}
