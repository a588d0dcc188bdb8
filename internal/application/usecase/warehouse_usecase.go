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
)

// WarehouseUseCase CRUD de bodegas y consultas de stock por bodega.
type WarehouseUseCase struct {
	repo   repository.WarehouseRepository
	engine *ledger.Engine
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository, engine *ledger.Engine) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo, engine: engine}
}

// Create crea una nueva bodega.
func (uc *WarehouseUseCase) Create(ctx context.Context, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if in.Capacity.IsNegative() || !stock.Representable(in.Capacity) {
		return nil, domain.ErrInvalidQuantity
	}
	now := time.Now()
	warehouse := &entity.Warehouse{
		ID:        id.New(id.PrefixWarehouse),
		Name:      in.Name,
		Location:  in.Location,
		Capacity:  in.Capacity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// GetByID obtiene una bodega por ID.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, id string) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, nil
	}
	return toWarehouseResponse(warehouse), nil
}

// Update actualiza una bodega.
func (uc *WarehouseUseCase) Update(ctx context.Context, id string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, nil
	}
	if in.Name != nil {
		warehouse.Name = *in.Name
	}
	if in.Location != nil {
		warehouse.Location = *in.Location
	}
	if in.Capacity != nil {
		if in.Capacity.IsNegative() || !stock.Representable(*in.Capacity) {
			return nil, domain.ErrInvalidQuantity
		}
		warehouse.Capacity = *in.Capacity
	}
	warehouse.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// List lista bodegas con paginación.
func (uc *WarehouseUseCase) List(ctx context.Context, limit, offset int) (*dto.WarehouseListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	return &dto.WarehouseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Summary entradas, salidas y saldo de la bodega; rakeCode vacío = toda la bodega.
func (uc *WarehouseUseCase) Summary(ctx context.Context, warehouseID, rakeCode string) (*dto.WarehouseSummaryResponse, error) {
	totals, err := uc.engine.WarehouseSummary(ctx, warehouseID, rakeCode)
	if err != nil {
		return nil, err
	}
	return &dto.WarehouseSummaryResponse{
		WarehouseID: warehouseID,
		RakeCode:    rakeCode,
		StockIn:     totals.In,
		StockOut:    totals.Out,
		Balance:     totals.Balance(),
	}, nil
}

// Stocks saldo por rake dentro de la bodega.
func (uc *WarehouseUseCase) Stocks(ctx context.Context, warehouseID string) ([]dto.RakeStockResponse, error) {
	stocks, err := uc.engine.WarehouseStocks(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RakeStockResponse, 0, len(stocks))
	for _, s := range stocks {
		out = append(out, dto.FromRakeStock(s))
	}
	return out, nil
}

// Movements transacciones de la bodega, más recientes primero.
func (uc *WarehouseUseCase) Movements(ctx context.Context, warehouseID string, limit, offset int) (*dto.StockMovementListResponse, error) {
	movs, err := uc.engine.WarehouseMovements(ctx, warehouseID, limit, offset)
	if err != nil {
		return nil, err
	}
	return &dto.StockMovementListResponse{
		Items: dto.FromMovements(movs),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	if w == nil {
		return nil
	}
	return &dto.WarehouseResponse{
		ID:        w.ID,
		Name:      w.Name,
		Location:  w.Location,
		Capacity:  w.Capacity,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}
