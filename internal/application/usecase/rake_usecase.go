package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/fims/internal/application/dto"
	"github.com/jhoicas/fims/internal/application/ledger"
	"github.com/jhoicas/fims/internal/domain"
	"github.com/jhoicas/fims/internal/domain/entity"
	"github.com/jhoicas/fims/internal/domain/repository"
	"github.com/jhoicas/fims/internal/domain/stock"
	"github.com/jhoicas/fims/pkg/id"
	"github.com/jhoicas/fims/pkg/logger"
)

// RakeUseCase alta y consulta de rakes. Los rakes no se modifican.
type RakeUseCase struct {
	repo   repository.RakeRepository
	slips  repository.LoadingSlipRepository
	engine *ledger.Engine
	log    *logger.Logger
}

// NewRakeUseCase construye el caso de uso.
func NewRakeUseCase(repo repository.RakeRepository, slips repository.LoadingSlipRepository, engine *ledger.Engine, log *logger.Logger) *RakeUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &RakeUseCase{repo: repo, slips: slips, engine: engine, log: log}
}

// Create registra un rake; el código lo asigna el administrador y debe ser único.
func (uc *RakeUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateRakeRequest) (*dto.RakeResponse, error) {
	if in.Code == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.RRQuantity.IsNegative() || !stock.Representable(in.RRQuantity) {
		return nil, domain.ErrInvalidQuantity
	}
	date, err := dto.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if date.IsZero() {
		date = now
	}
	rake := &entity.Rake{
		ID:            id.New(id.PrefixRake),
		Code:          in.Code,
		CompanyName:   in.CompanyName,
		CompanyCode:   in.CompanyCode,
		ProductName:   in.ProductName,
		ProductCode:   in.ProductCode,
		RakePointName: in.RakePointName,
		Date:          date,
		RRQuantity:    in.RRQuantity,
		CreatedBy:     actor.ID,
		CreatedAt:     now,
	}
	if err := uc.repo.Create(ctx, rake); err != nil {
		return nil, err
	}
	uc.log.Info().Str("rake_code", rake.Code).Str("rr_quantity", rake.RRQuantity.String()).Str("actor", actor.ID).Msg("rake registrado")
	out := dto.FromRake(rake)
	return &out, nil
}

// GetByCode obtiene un rake; nil si no existe.
func (uc *RakeUseCase) GetByCode(ctx context.Context, code string) (*dto.RakeResponse, error) {
	rake, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if rake == nil {
		return nil, nil
	}
	out := dto.FromRake(rake)
	return &out, nil
}

// List lista rakes, más recientes primero.
func (uc *RakeUseCase) List(ctx context.Context, limit, offset int) (*dto.RakeListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RakeResponse, 0, len(list))
	for _, r := range list {
		items = append(items, dto.FromRake(r))
	}
	return &dto.RakeListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// Balance saldo del rake según el ledger.
func (uc *RakeUseCase) Balance(ctx context.Context, code string) (*dto.RakeBalanceResponse, error) {
	b, err := uc.engine.RakeBalance(ctx, code)
	if err != nil {
		return nil, err
	}
	out := dto.FromRakeBalance(*b)
	return &out, nil
}

// Summary saldo de todos los rakes.
func (uc *RakeUseCase) Summary(ctx context.Context) ([]dto.RakeBalanceResponse, error) {
	list, err := uc.engine.RakeSummary(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RakeBalanceResponse, 0, len(list))
	for _, b := range list {
		out = append(out, dto.FromRakeBalance(b))
	}
	return out, nil
}

// DispatchBalance RR del rake frente a lo despachado en loading slips. Remaining puede
// quedar negativo si los slips superan el RR.
func (uc *RakeUseCase) DispatchBalance(ctx context.Context, code string) (*dto.RakeDispatchBalanceResponse, error) {
	rake, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if rake == nil {
		return nil, domain.ErrNotFound
	}
	dispatched, err := uc.slips.SumQuantityByRake(ctx, rake.Code)
	if err != nil {
		return nil, err
	}
	return &dto.RakeDispatchBalanceResponse{
		RakeCode:   rake.Code,
		Total:      rake.RRQuantity,
		Dispatched: dispatched,
		Remaining:  rake.RRQuantity.Sub(dispatched),
	}, nil
}
