package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/fims/internal/application/dto"
	"github.com/jhoicas/fims/internal/domain"
	"github.com/jhoicas/fims/internal/domain/entity"
	"github.com/jhoicas/fims/internal/domain/repository"
	"github.com/jhoicas/fims/pkg/id"
)

// TruckUseCase CRUD de camiones. El número (placa) es único y se guarda en mayúsculas.
type TruckUseCase struct {
	repo repository.TruckRepository
}

// NewTruckUseCase construye el caso de uso.
func NewTruckUseCase(repo repository.TruckRepository) *TruckUseCase {
	return &TruckUseCase{repo: repo}
}

// Create registra un camión.
func (uc *TruckUseCase) Create(ctx context.Context, in dto.CreateTruckRequest) (*dto.TruckResponse, error) {
	number := normalizeTruckNumber(in.Number)
	if number == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	truck := &entity.Truck{
		ID:           id.New(id.PrefixTruck),
		Number:       number,
		DriverName:   in.DriverName,
		DriverMobile: in.DriverMobile,
		OwnerName:    in.OwnerName,
		OwnerMobile:  in.OwnerMobile,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, truck); err != nil {
		return nil, err
	}
	return toTruckResponse(truck), nil
}

// GetByID obtiene un camión; nil si no existe.
func (uc *TruckUseCase) GetByID(ctx context.Context, id string) (*dto.TruckResponse, error) {
	truck, err := uc.repo.GetByID(ctx, id)
	if err != nil || truck == nil {
		return nil, err
	}
	return toTruckResponse(truck), nil
}

// GetByNumber busca por placa; nil si no existe.
func (uc *TruckUseCase) GetByNumber(ctx context.Context, number string) (*dto.TruckResponse, error) {
	truck, err := uc.repo.GetByNumber(ctx, normalizeTruckNumber(number))
	if err != nil || truck == nil {
		return nil, err
	}
	return toTruckResponse(truck), nil
}

// Update actualiza los datos de conductor y dueño.
func (uc *TruckUseCase) Update(ctx context.Context, id string, in dto.UpdateTruckRequest) (*dto.TruckResponse, error) {
	truck, err := uc.repo.GetByID(ctx, id)
	if err != nil || truck == nil {
		return nil, err
	}
	if in.DriverName != nil {
		truck.DriverName = *in.DriverName
	}
	if in.DriverMobile != nil {
		truck.DriverMobile = *in.DriverMobile
	}
	if in.OwnerName != nil {
		truck.OwnerName = *in.OwnerName
	}
	if in.OwnerMobile != nil {
		truck.OwnerMobile = *in.OwnerMobile
	}
	truck.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, truck); err != nil {
		return nil, err
	}
	return toTruckResponse(truck), nil
}

// List lista camiones por placa.
func (uc *TruckUseCase) List(ctx context.Context, limit, offset int) (*dto.TruckListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TruckResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTruckResponse(t))
	}
	return &dto.TruckListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

func normalizeTruckNumber(s string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
}

func toTruckResponse(t *entity.Truck) *dto.TruckResponse {
	return &dto.TruckResponse{
		ID:           t.ID,
		Number:       t.Number,
		DriverName:   t.DriverName,
		DriverMobile: t.DriverMobile,
		OwnerName:    t.OwnerName,
		OwnerMobile:  t.OwnerMobile,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}
