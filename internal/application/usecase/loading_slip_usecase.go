package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/fims/internal/application/dto"
	"github.com/jhoicas/fims/internal/domain"
	"github.com/jhoicas/fims/internal/domain/entity"
	"github.com/jhoicas/fims/internal/domain/repository"
	"github.com/jhoicas/fims/internal/domain/stock"
	"github.com/jhoicas/fims/pkg/id"
)

// maxSerialAttempts intentos si dos slips del mismo rake toman el mismo consecutivo.
const maxSerialAttempts = 3

// LoadingSlipUseCase registro de descargue de vagones en el rake point.
type LoadingSlipUseCase struct {
	repo  repository.LoadingSlipRepository
	rakes repository.RakeRepository
	docs  repository.TransportDocumentRepository
}

// NewLoadingSlipUseCase construye el caso de uso.
func NewLoadingSlipUseCase(repo repository.LoadingSlipRepository, rakes repository.RakeRepository, docs repository.TransportDocumentRepository) *LoadingSlipUseCase {
	return &LoadingSlipUseCase{repo: repo, rakes: rakes, docs: docs}
}

// Create registra un slip con el siguiente consecutivo del rake.
func (uc *LoadingSlipUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateLoadingSlipRequest) (*dto.LoadingSlipResponse, error) {
	if !stock.ValidQuantity(in.Quantity) {
		return nil, domain.ErrInvalidQuantity
	}
	rake, err := uc.rakes.GetByCode(ctx, in.RakeCode)
	if err != nil {
		return nil, err
	}
	if rake == nil {
		return nil, domain.ErrNotFound
	}
	if in.DocumentID != "" {
		if err := uc.requireDocument(ctx, in.DocumentID); err != nil {
			return nil, err
		}
	}
	slip := &entity.LoadingSlip{
		RakeCode:         rake.Code,
		LoadingPointName: in.LoadingPointName,
		DestinationName:  in.DestinationName,
		AccountID:        in.AccountID,
		WarehouseID:      in.WarehouseID,
		Bags:             in.Bags,
		Quantity:         in.Quantity,
		TruckID:          in.TruckID,
		WagonNumber:      in.WagonNumber,
		GoodsName:        in.GoodsName,
		DocumentID:       in.DocumentID,
		CreatedBy:        actor.ID,
		CreatedAt:        time.Now(),
	}
	for attempt := 1; ; attempt++ {
		slip.ID = id.New(id.PrefixLoadingSlip)
		slip.Serial = 0
		err = uc.repo.Create(ctx, slip)
		var uerr *domain.UniquenessError
		if err != nil && attempt < maxSerialAttempts && errors.As(err, &uerr) && uerr.Field == "serial" {
			continue
		}
		break
	}
	if err != nil {
		return nil, err
	}
	out := dto.FromLoadingSlip(slip)
	return &out, nil
}

// GetByID obtiene un slip; nil si no existe.
func (uc *LoadingSlipUseCase) GetByID(ctx context.Context, id string) (*dto.LoadingSlipResponse, error) {
	slip, err := uc.repo.GetByID(ctx, id)
	if err != nil || slip == nil {
		return nil, err
	}
	out := dto.FromLoadingSlip(slip)
	return &out, nil
}

// ListByRake slips de un rake por consecutivo.
func (uc *LoadingSlipUseCase) ListByRake(ctx context.Context, rakeCode string) ([]dto.LoadingSlipResponse, error) {
	list, err := uc.repo.ListByRake(ctx, rakeCode)
	if err != nil {
		return nil, err
	}
	return dto.FromLoadingSlips(list), nil
}

// Link vincula el slip a la builty emitida para ese camión.
func (uc *LoadingSlipUseCase) Link(ctx context.Context, slipID string, in dto.LinkLoadingSlipRequest) (*dto.LoadingSlipResponse, error) {
	if err := uc.requireDocument(ctx, in.DocumentID); err != nil {
		return nil, err
	}
	if err := uc.repo.LinkDocument(ctx, slipID, in.DocumentID); err != nil {
		return nil, err
	}
	slip, err := uc.repo.GetByID(ctx, slipID)
	if err != nil {
		return nil, err
	}
	if slip == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.FromLoadingSlip(slip)
	return &out, nil
}

func (uc *LoadingSlipUseCase) requireDocument(ctx context.Context, documentID string) error {
	doc, err := uc.docs.GetByID(ctx, documentID)
	if err != nil {
		return err
	}
	if doc == nil {
		return domain.ErrNotFound
	}
	return nil
}
