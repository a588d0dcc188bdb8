package usecase

import (
	"context"

	"github.com/jhoicas/fims/internal/application/dto"
	"github.com/jhoicas/fims/internal/application/ledger"
	"github.com/jhoicas/fims/internal/domain"
	"github.com/jhoicas/fims/internal/domain/entity"
	"github.com/jhoicas/fims/internal/domain/repository"
)

// DocumentUseCase builties y movimientos de stock. Toda escritura pasa por el motor del ledger.
type DocumentUseCase struct {
	engine *ledger.Engine
	docs   repository.TransportDocumentRepository
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(engine *ledger.Engine, docs repository.TransportDocumentRepository) *DocumentUseCase {
	return &DocumentUseCase{engine: engine, docs: docs}
}

// CreateInbound registra una builty del rake point.
func (uc *DocumentUseCase) CreateInbound(ctx context.Context, actor entity.Actor, in dto.CreateInboundDocumentRequest) (*dto.TransportDocumentResponse, error) {
	date, err := dto.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}
	doc := &entity.TransportDocument{
		Number:        in.Number,
		Variant:       entity.VariantInbound,
		RakeCode:      in.RakeCode,
		Destination:   toDestination(in.Destination),
		Date:          date,
		RakePointName: in.RakePointName,
		Quantity:      in.Quantity,
	}
	applyFreight(doc, in.FreightDTO)
	created, err := uc.engine.CreateInboundDocument(ctx, doc, actor)
	if err != nil {
		return nil, err
	}
	out := dto.FromDocument(created)
	return &out, nil
}

// StockIn entrada en bodega contra una builty.
func (uc *DocumentUseCase) StockIn(ctx context.Context, actor entity.Actor, in dto.StockInRequest) (*dto.StockInResponse, error) {
	date, err := dto.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}
	res, err := uc.engine.RecordStockIn(ctx, ledger.StockInInput{
		DocumentID:  in.DocumentID,
		WarehouseID: in.WarehouseID,
		Quantity:    in.Quantity,
		Date:        date,
		Notes:       in.Notes,
		Actor:       actor,
	})
	if err != nil {
		return nil, err
	}
	return &dto.StockInResponse{Movement: dto.FromMovement(res.Movement), Remaining: res.Remaining}, nil
}

// StockOut salida de bodega con su builty outbound. Sin rake_code se resuelve FIFO.
func (uc *DocumentUseCase) StockOut(ctx context.Context, actor entity.Actor, in dto.StockOutRequest) (*dto.StockOutResponse, error) {
	date, err := dto.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}
	doc := &entity.TransportDocument{
		Number:      in.Number,
		Variant:     entity.VariantOutbound,
		RakeCode:    in.RakeCode,
		Destination: toDestination(in.Destination),
		Date:        date,
	}
	applyFreight(doc, in.FreightDTO)
	res, err := uc.engine.Dispatch(ctx, ledger.StockOutInput{
		WarehouseID: in.WarehouseID,
		Quantity:    in.Quantity,
		Document:    doc,
		Date:        date,
		Notes:       in.Notes,
		Actor:       actor,
	})
	if err != nil {
		return nil, err
	}
	return &dto.StockOutResponse{
		Document: dto.FromDocument(res.Document),
		Movement: dto.FromMovement(res.Movement),
		Balance:  res.Balance,
	}, nil
}

// Reverse compensa un movimiento.
func (uc *DocumentUseCase) Reverse(ctx context.Context, actor entity.Actor, movementID string, in dto.ReverseMovementRequest) (*dto.StockMovementResponse, error) {
	rev, err := uc.engine.ReverseMovement(ctx, ledger.ReverseInput{MovementID: movementID, Notes: in.Notes, Actor: actor})
	if err != nil {
		return nil, err
	}
	out := dto.FromMovement(rev)
	return &out, nil
}

// GetByID obtiene una builty; nil si no existe.
func (uc *DocumentUseCase) GetByID(ctx context.Context, id string) (*dto.TransportDocumentResponse, error) {
	doc, err := uc.docs.GetByID(ctx, id)
	if err != nil || doc == nil {
		return nil, err
	}
	out := dto.FromDocument(doc)
	return &out, nil
}

// GetByNumber obtiene una builty por número (BLT-... / BLTO-...); nil si no existe.
func (uc *DocumentUseCase) GetByNumber(ctx context.Context, number string) (*dto.TransportDocumentResponse, error) {
	doc, err := uc.docs.GetByNumber(ctx, number)
	if err != nil || doc == nil {
		return nil, err
	}
	out := dto.FromDocument(doc)
	return &out, nil
}

// List lista builties, más recientes primero.
func (uc *DocumentUseCase) List(ctx context.Context, limit, offset int) (*dto.TransportDocumentListResponse, error) {
	list, err := uc.docs.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.docs.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.TransportDocumentListResponse{
		Items: dto.FromDocuments(list),
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// ListByRake builties de un rake.
func (uc *DocumentUseCase) ListByRake(ctx context.Context, rakeCode string) ([]dto.TransportDocumentResponse, error) {
	list, err := uc.docs.ListByRake(ctx, rakeCode)
	if err != nil {
		return nil, err
	}
	return dto.FromDocuments(list), nil
}

// RemainingCapacity capacidad restante de la builty para entradas.
func (uc *DocumentUseCase) RemainingCapacity(ctx context.Context, documentID string) (*dto.RemainingCapacityResponse, error) {
	doc, err := uc.docs.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	remaining, err := uc.engine.RemainingCapacity(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	return &dto.RemainingCapacityResponse{DocumentID: doc.ID, Capacity: doc.Quantity, Remaining: remaining}, nil
}

// Movements movimientos registrados contra la builty.
func (uc *DocumentUseCase) Movements(ctx context.Context, documentID string) ([]dto.StockMovementResponse, error) {
	movs, err := uc.engine.DocumentMovements(ctx, documentID)
	if err != nil {
		return nil, err
	}
	return dto.FromMovements(movs), nil
}

func toDestination(d dto.DestinationDTO) entity.Destination {
	return entity.Destination{Kind: entity.DestinationKind(d.Kind), ID: d.ID}
}

func applyFreight(doc *entity.TransportDocument, f dto.FreightDTO) {
	doc.TruckID = f.TruckID
	doc.LoadingPoint = f.LoadingPoint
	doc.UnloadingPoint = f.UnloadingPoint
	doc.GoodsName = f.GoodsName
	doc.Bags = f.Bags
	doc.KgPerBag = f.KgPerBag
	doc.RatePerMT = f.RatePerMT
	doc.TotalFreight = f.TotalFreight
	doc.LRNumber = f.LRNumber
}
