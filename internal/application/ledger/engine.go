package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/fims/internal/domain"
	"github.com/jhoicas/fims/internal/domain/entity"
	"github.com/jhoicas/fims/internal/domain/identifier"
	"github.com/jhoicas/fims/internal/domain/repository"
	"github.com/jhoicas/fims/internal/domain/stock"
	"github.com/jhoicas/fims/pkg/id"
	"github.com/jhoicas/fims/pkg/logger"
)

// Operaciones registradas en métricas y logs.
const (
	OpCreateDocument = "create_document"
	OpStockIn        = "stock_in"
	OpStockOut       = "stock_out"
	OpReverse        = "reverse_movement"
)

// maxNumberAttempts intentos cuando un número generado (builty o LR) choca con otro proceso.
const maxNumberAttempts = 3

// Config parámetros del motor.
type Config struct {
	// StrictRakeScope además del saldo de la bodega exige saldo del rake de la builty en cada salida.
	StrictRakeScope bool
	LRNumberStart   int
}

// EngineDeps dependencias del motor.
type EngineDeps struct {
	TxRunner   TxRunner
	Locker     Locker
	Rakes      repository.RakeRepository
	Accounts   repository.AccountRepository
	Warehouses repository.WarehouseRepository
	Trucks     repository.TruckRepository
	Documents  repository.TransportDocumentRepository
	Movements  repository.StockMovementRepository
	IDs        *identifier.Generator
	Metrics    Recorder
	Logger     *logger.Logger
	Config     Config
	Now        func() time.Time
}

// Engine única autoridad para aceptar o rechazar builties y movimientos de stock,
// y para calcular saldos. Cada lectura-validación-escritura corre bajo un bloqueo
// por builty (entradas) o por bodega (salidas) y dentro de una transacción.
type Engine struct {
	txRunner   TxRunner
	locker     Locker
	rakes      repository.RakeRepository
	accounts   repository.AccountRepository
	warehouses repository.WarehouseRepository
	trucks     repository.TruckRepository
	documents  repository.TransportDocumentRepository
	movements  repository.StockMovementRepository
	ids        *identifier.Generator
	metrics    Recorder
	log        *logger.Logger
	cfg        Config
	now        func() time.Time
}

// NewEngine construye el motor.
func NewEngine(d EngineDeps) *Engine {
	e := &Engine{
		txRunner:   d.TxRunner,
		locker:     d.Locker,
		rakes:      d.Rakes,
		accounts:   d.Accounts,
		warehouses: d.Warehouses,
		trucks:     d.Trucks,
		documents:  d.Documents,
		movements:  d.Movements,
		ids:        d.IDs,
		metrics:    d.Metrics,
		log:        d.Logger,
		cfg:        d.Config,
		now:        d.Now,
	}
	if e.ids == nil {
		e.ids = identifier.NewGenerator(nil)
	}
	if e.metrics == nil {
		e.metrics = nopRecorder{}
	}
	if e.log == nil {
		e.log = logger.Nop()
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.cfg.LRNumberStart <= 0 {
		e.cfg.LRNumberStart = 1001
	}
	return e
}

// StockInInput entrada contra una builty existente.
type StockInInput struct {
	DocumentID  string
	WarehouseID string
	Quantity    decimal.Decimal
	Date        time.Time
	Notes       string
	Actor       entity.Actor
}

// StockInResult movimiento aceptado y capacidad que le queda a la builty.
type StockInResult struct {
	Movement  *entity.StockMovement
	Remaining decimal.Decimal
}

// RecordStockIn acepta la entrada solo si lo ya ingresado más Quantity no supera la
// cantidad declarada de la builty. Nunca recorta la cantidad: el rechazo informa Remaining.
func (e *Engine) RecordStockIn(ctx context.Context, in StockInInput) (*StockInResult, error) {
	res, err := e.recordStockIn(ctx, in)
	e.metrics.Decision(OpStockIn, Outcome(err))
	if err != nil {
		e.failure(err).
			Str("op", OpStockIn).
			Str("document_id", in.DocumentID).
			Str("warehouse_id", in.WarehouseID).
			Str("quantity", in.Quantity.String()).
			Str("actor", in.Actor.ID).
			Msg("entrada rechazada")
		return nil, err
	}
	e.log.Info().
		Str("op", OpStockIn).
		Str("movement_id", res.Movement.ID).
		Str("document_id", in.DocumentID).
		Str("warehouse_id", in.WarehouseID).
		Str("quantity", in.Quantity.String()).
		Str("remaining", res.Remaining.String()).
		Str("actor", in.Actor.ID).
		Msg("entrada registrada")
	return res, nil
}

func (e *Engine) recordStockIn(ctx context.Context, in StockInInput) (*StockInResult, error) {
	if !stock.ValidQuantity(in.Quantity) {
		return nil, domain.ErrInvalidQuantity
	}
	if in.DocumentID == "" || in.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	wh, err := e.warehouses.GetByID(ctx, in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}

	unlock, err := e.locker.Lock(ctx, documentKey(in.DocumentID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	now := e.now()
	var res *StockInResult
	err = e.txRunner.Run(ctx, func(
		docRepo repository.TransportDocumentRepository,
		movRepo repository.StockMovementRepository,
		_ repository.WarehouseRepository,
	) error {
		doc, err := docRepo.GetForUpdate(ctx, in.DocumentID)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		alreadyIn, err := movRepo.SumInByDocument(ctx, doc.ID)
		if err != nil {
			return err
		}
		if alreadyIn.Add(in.Quantity).GreaterThan(doc.Quantity) {
			return &domain.CapacityExceededError{
				DocumentID: doc.ID,
				Requested:  in.Quantity,
				Remaining:  stock.Remaining(doc.Quantity, alreadyIn),
			}
		}
		mov := &entity.StockMovement{
			ID:          id.New(id.PrefixMovement),
			WarehouseID: in.WarehouseID,
			DocumentID:  doc.ID,
			Direction:   entity.DirectionIn,
			Quantity:    in.Quantity,
			Date:        dateOr(in.Date, now),
			Actor:       in.Actor.ID,
			Notes:       in.Notes,
			CreatedAt:   now,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		res = &StockInResult{
			Movement:  mov,
			Remaining: doc.Quantity.Sub(alreadyIn).Sub(in.Quantity),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// StockOutInput salida de bodega. Document es una builty outbound nueva (sin persistir)
// con destino, flete y camión. El motor trabaja sobre una copia: la builty persistida
// solo se devuelve en StockOutResult.
type StockOutInput struct {
	WarehouseID string
	Quantity    decimal.Decimal
	Document    *entity.TransportDocument
	Date        time.Time
	Notes       string
	Actor       entity.Actor
}

// StockOutResult builty y movimiento creados, y saldo de la bodega tras la salida.
type StockOutResult struct {
	Document *entity.TransportDocument
	Movement *entity.StockMovement
	Balance  decimal.Decimal
}

// RecordStockOut valida el saldo de la bodega y crea atómicamente la builty outbound y
// su movimiento OUT: ambos se escriben o ninguno. Document.RakeCode es obligatorio.
func (e *Engine) RecordStockOut(ctx context.Context, in StockOutInput) (*StockOutResult, error) {
	return e.stockOut(ctx, in, false)
}

func (e *Engine) stockOut(ctx context.Context, in StockOutInput, fifo bool) (*StockOutResult, error) {
	res, err := e.recordStockOut(ctx, in, fifo)
	e.metrics.Decision(OpStockOut, Outcome(err))
	if err != nil {
		ev := e.failure(err).
			Str("op", OpStockOut).
			Str("warehouse_id", in.WarehouseID).
			Str("quantity", in.Quantity.String()).
			Str("actor", in.Actor.ID)
		if in.Document != nil {
			ev = ev.Str("rake_code", in.Document.RakeCode)
		}
		ev.Msg("salida rechazada")
		return nil, err
	}
	e.log.Info().
		Str("op", OpStockOut).
		Str("document_id", res.Document.ID).
		Str("document_number", res.Document.Number).
		Str("movement_id", res.Movement.ID).
		Str("warehouse_id", in.WarehouseID).
		Str("rake_code", res.Document.RakeCode).
		Bool("fifo", fifo && in.Document.RakeCode == "").
		Str("quantity", in.Quantity.String()).
		Str("balance", res.Balance.String()).
		Str("actor", in.Actor.ID).
		Msg("salida registrada")
	return res, nil
}

// recordStockOut con fifo y sin RakeCode el rake se elige dentro de la transacción,
// bajo el bloqueo de la bodega, sobre el saldo vigente.
func (e *Engine) recordStockOut(ctx context.Context, in StockOutInput, fifo bool) (*StockOutResult, error) {
	if !stock.ValidQuantity(in.Quantity) {
		return nil, domain.ErrInvalidQuantity
	}
	if in.WarehouseID == "" || in.Document == nil || !in.Document.Destination.Valid() {
		return nil, domain.ErrInvalidInput
	}
	doc := *in.Document
	resolve := doc.RakeCode == ""
	if resolve && !fifo {
		return nil, domain.ErrInvalidInput
	}
	if doc.Variant != "" && doc.Variant != entity.VariantOutbound {
		return nil, domain.ErrInvalidInput
	}
	if whID, ok := doc.Destination.WarehouseID(); ok && whID == in.WarehouseID {
		return nil, domain.ErrInvalidInput
	}
	if !doc.Quantity.IsZero() && !doc.Quantity.Equal(in.Quantity) {
		return nil, domain.ErrInvalidInput
	}
	if !resolve {
		if err := e.checkRake(ctx, doc.RakeCode); err != nil {
			return nil, err
		}
	}
	if err := e.checkReferences(ctx, &doc); err != nil {
		return nil, err
	}

	now := e.now()
	e.prepareDocument(&doc, entity.VariantOutbound, in.Actor, now)
	doc.SourceWarehouseID = in.WarehouseID
	doc.Quantity = in.Quantity
	doc.TotalFreight = freight(&doc)
	generatedNumber := doc.Number == ""
	generatedLR := doc.LRNumber == ""

	unlock, err := e.locker.Lock(ctx, warehouseKey(in.WarehouseID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	var res *StockOutResult
	for attempt := 1; ; attempt++ {
		if generatedNumber {
			doc.Number = e.ids.DocumentNumber(entity.VariantOutbound)
		}
		if generatedLR {
			doc.LRNumber = ""
		}
		if resolve {
			doc.RakeCode = ""
		}
		err = e.txRunner.Run(ctx, func(
			docRepo repository.TransportDocumentRepository,
			movRepo repository.StockMovementRepository,
			whRepo repository.WarehouseRepository,
		) error {
			wh, err := whRepo.GetForUpdate(ctx, in.WarehouseID)
			if err != nil {
				return err
			}
			if wh == nil {
				return domain.ErrNotFound
			}
			totals, err := movRepo.WarehouseTotals(ctx, wh.ID, "")
			if err != nil {
				return err
			}
			balance := totals.Balance()
			if in.Quantity.GreaterThan(balance) {
				return &domain.InsufficientBalanceError{
					WarehouseID: wh.ID,
					Requested:   in.Quantity,
					Available:   balance,
				}
			}
			if resolve {
				stocks, err := movRepo.WarehouseRakeStocks(ctx, wh.ID)
				if err != nil {
					return err
				}
				code, ok := stock.PickFIFO(stocks)
				if !ok {
					return fmt.Errorf("%w: ningún rake con saldo en la bodega %s", domain.ErrNotFound, wh.ID)
				}
				doc.RakeCode = code
			}
			if e.cfg.StrictRakeScope {
				if err := checkRakeScope(ctx, movRepo, wh.ID, doc.RakeCode, in.Quantity); err != nil {
					return err
				}
			}
			if generatedLR {
				lr, err := docRepo.NextLRNumber(ctx, e.cfg.LRNumberStart)
				if err != nil {
					return err
				}
				doc.LRNumber = lr
			}
			if err := docRepo.Create(ctx, &doc); err != nil {
				return err
			}
			mov := &entity.StockMovement{
				ID:          id.New(id.PrefixMovement),
				WarehouseID: wh.ID,
				DocumentID:  doc.ID,
				Direction:   entity.DirectionOut,
				Quantity:    in.Quantity,
				Date:        dateOr(in.Date, now),
				Actor:       in.Actor.ID,
				Notes:       in.Notes,
				CreatedAt:   now,
			}
			if err := movRepo.Create(ctx, mov); err != nil {
				return err
			}
			out := doc
			res = &StockOutResult{Document: &out, Movement: mov, Balance: balance.Sub(in.Quantity)}
			return nil
		})
		if err == nil {
			return res, nil
		}
		if attempt < maxNumberAttempts && regenerable(err, generatedNumber, generatedLR) {
			continue
		}
		return nil, err
	}
}

// checkRakeScope exige que el saldo del rake en la bodega cubra qty.
func checkRakeScope(ctx context.Context, movRepo repository.StockMovementRepository, warehouseID, rakeCode string, qty decimal.Decimal) error {
	totals, err := movRepo.WarehouseTotals(ctx, warehouseID, rakeCode)
	if err != nil {
		return err
	}
	if qty.GreaterThan(totals.Balance()) {
		return &domain.InsufficientBalanceError{
			WarehouseID: warehouseID,
			RakeCode:    rakeCode,
			Requested:   qty,
			Available:   totals.Balance(),
		}
	}
	return nil
}

// CreateInboundDocument registra una builty creada en el rake point. Las builties outbound
// solo nacen de RecordStockOut. doc no se modifica: la builty persistida es la devuelta.
func (e *Engine) CreateInboundDocument(ctx context.Context, doc *entity.TransportDocument, actor entity.Actor) (*entity.TransportDocument, error) {
	created, err := e.createInboundDocument(ctx, doc, actor)
	e.metrics.Decision(OpCreateDocument, Outcome(err))
	if err != nil {
		ev := e.failure(err).Str("op", OpCreateDocument).Str("actor", actor.ID)
		if doc != nil {
			ev = ev.Str("rake_code", doc.RakeCode).Str("quantity", doc.Quantity.String())
		}
		ev.Msg("builty rechazada")
		return nil, err
	}
	e.log.Info().
		Str("op", OpCreateDocument).
		Str("document_id", created.ID).
		Str("document_number", created.Number).
		Str("rake_code", created.RakeCode).
		Str("quantity", created.Quantity.String()).
		Str("actor", actor.ID).
		Msg("builty registrada")
	return created, nil
}

func (e *Engine) createInboundDocument(ctx context.Context, in *entity.TransportDocument, actor entity.Actor) (*entity.TransportDocument, error) {
	if in == nil {
		return nil, domain.ErrInvalidInput
	}
	doc := *in
	if doc.Variant != "" && doc.Variant != entity.VariantInbound {
		return nil, domain.ErrInvalidInput
	}
	if !stock.ValidQuantity(doc.Quantity) {
		return nil, domain.ErrInvalidQuantity
	}
	if doc.RakeCode == "" || !doc.Destination.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if err := e.checkRake(ctx, doc.RakeCode); err != nil {
		return nil, err
	}
	if err := e.checkReferences(ctx, &doc); err != nil {
		return nil, err
	}

	e.prepareDocument(&doc, entity.VariantInbound, actor, e.now())
	doc.TotalFreight = freight(&doc)
	generatedNumber := doc.Number == ""
	generatedLR := doc.LRNumber == ""

	for attempt := 1; ; attempt++ {
		if generatedNumber {
			doc.Number = e.ids.DocumentNumber(entity.VariantInbound)
		}
		if generatedLR {
			lr, err := e.documents.NextLRNumber(ctx, e.cfg.LRNumberStart)
			if err != nil {
				return nil, err
			}
			doc.LRNumber = lr
		}
		err := e.documents.Create(ctx, &doc)
		if err == nil {
			return &doc, nil
		}
		if attempt < maxNumberAttempts && regenerable(err, generatedNumber, generatedLR) {
			continue
		}
		return nil, err
	}
}

// ReverseInput compensación de un movimiento existente.
type ReverseInput struct {
	MovementID string
	Notes      string
	Actor      entity.Actor
}

// ReverseMovement agrega un movimiento con la misma dirección y cantidad negada. Cada
// movimiento se revierte una sola vez; revertir una entrada exige saldo suficiente en la
// bodega y, con StrictRakeScope, también en el rake de la builty.
func (e *Engine) ReverseMovement(ctx context.Context, in ReverseInput) (*entity.StockMovement, error) {
	rev, err := e.reverseMovement(ctx, in)
	e.metrics.Decision(OpReverse, Outcome(err))
	if err != nil {
		e.failure(err).
			Str("op", OpReverse).
			Str("movement_id", in.MovementID).
			Str("actor", in.Actor.ID).
			Msg("reversión rechazada")
		return nil, err
	}
	e.log.Info().
		Str("op", OpReverse).
		Str("movement_id", rev.ID).
		Str("reversal_of", rev.ReversalOf).
		Str("quantity", rev.Quantity.String()).
		Str("actor", in.Actor.ID).
		Msg("movimiento revertido")
	return rev, nil
}

func (e *Engine) reverseMovement(ctx context.Context, in ReverseInput) (*entity.StockMovement, error) {
	if in.MovementID == "" {
		return nil, domain.ErrInvalidInput
	}
	orig, err := e.movements.GetByID(ctx, in.MovementID)
	if err != nil {
		return nil, err
	}
	if orig == nil {
		return nil, domain.ErrNotFound
	}
	if orig.IsReversal() {
		return nil, domain.ErrInvalidInput
	}

	// Orden fijo: builty y luego bodega.
	unlockDoc, err := e.locker.Lock(ctx, documentKey(orig.DocumentID))
	if err != nil {
		return nil, err
	}
	defer unlockDoc()
	unlockWh, err := e.locker.Lock(ctx, warehouseKey(orig.WarehouseID))
	if err != nil {
		return nil, err
	}
	defer unlockWh()

	now := e.now()
	var rev *entity.StockMovement
	err = e.txRunner.Run(ctx, func(
		docRepo repository.TransportDocumentRepository,
		movRepo repository.StockMovementRepository,
		whRepo repository.WarehouseRepository,
	) error {
		doc, err := docRepo.GetForUpdate(ctx, orig.DocumentID)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		if _, err := whRepo.GetForUpdate(ctx, orig.WarehouseID); err != nil {
			return err
		}
		existing, err := movRepo.FindReversal(ctx, orig.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrAlreadyReversed
		}
		if orig.Direction == entity.DirectionIn {
			totals, err := movRepo.WarehouseTotals(ctx, orig.WarehouseID, "")
			if err != nil {
				return err
			}
			if orig.Quantity.GreaterThan(totals.Balance()) {
				return &domain.InsufficientBalanceError{
					WarehouseID: orig.WarehouseID,
					Requested:   orig.Quantity,
					Available:   totals.Balance(),
				}
			}
			if e.cfg.StrictRakeScope {
				if err := checkRakeScope(ctx, movRepo, orig.WarehouseID, doc.RakeCode, orig.Quantity); err != nil {
					return err
				}
			}
		}
		rev = &entity.StockMovement{
			ID:          id.New(id.PrefixMovement),
			WarehouseID: orig.WarehouseID,
			DocumentID:  orig.DocumentID,
			Direction:   orig.Direction,
			Quantity:    orig.Quantity.Neg(),
			Date:        now,
			Actor:       in.Actor.ID,
			Notes:       in.Notes,
			ReversalOf:  orig.ID,
			CreatedAt:   now,
		}
		return movRepo.Create(ctx, rev)
	})
	if err != nil {
		return nil, err
	}
	return rev, nil
}

func (e *Engine) checkRake(ctx context.Context, code string) error {
	rake, err := e.rakes.GetByCode(ctx, code)
	if err != nil {
		return err
	}
	if rake == nil {
		return domain.ErrNotFound
	}
	return nil
}

// checkReferences valida destino y camión de una builty.
func (e *Engine) checkReferences(ctx context.Context, doc *entity.TransportDocument) error {
	switch doc.Destination.Kind {
	case entity.DestinationAccount:
		acc, err := e.accounts.GetByID(ctx, doc.Destination.ID)
		if err != nil {
			return err
		}
		if acc == nil {
			return domain.ErrNotFound
		}
	case entity.DestinationWarehouse:
		wh, err := e.warehouses.GetByID(ctx, doc.Destination.ID)
		if err != nil {
			return err
		}
		if wh == nil {
			return domain.ErrNotFound
		}
	}
	if doc.TruckID != "" {
		truck, err := e.trucks.GetByID(ctx, doc.TruckID)
		if err != nil {
			return err
		}
		if truck == nil {
			return domain.ErrNotFound
		}
	}
	return nil
}

func (e *Engine) prepareDocument(doc *entity.TransportDocument, variant entity.DocumentVariant, actor entity.Actor, now time.Time) {
	doc.ID = id.New(id.PrefixDocument)
	doc.Variant = variant
	doc.CreatedBy = actor.ID
	doc.CreatedByRole = actor.Role
	doc.CreatedAt = now
	doc.Date = dateOr(doc.Date, now)
}

// failure elige el nivel: warn para rechazos de negocio, error para fallas de infraestructura.
func (e *Engine) failure(err error) *zerolog.Event {
	if IsBusinessRule(err) {
		return e.log.Warn().Str("kind", Outcome(err)).Err(err)
	}
	return e.log.Error().Err(err)
}

// freight total de flete declarado o cantidad × tarifa.
func freight(doc *entity.TransportDocument) decimal.Decimal {
	if !doc.TotalFreight.IsZero() || doc.RatePerMT.IsZero() {
		return doc.TotalFreight
	}
	return doc.Quantity.Mul(doc.RatePerMT)
}

func dateOr(d, def time.Time) time.Time {
	if d.IsZero() {
		return def
	}
	return d
}

// regenerable indica si el error es un choque de un número que generamos nosotros.
func regenerable(err error, generatedNumber, generatedLR bool) bool {
	var uerr *domain.UniquenessError
	if !errors.As(err, &uerr) {
		return false
	}
	return (uerr.Field == "number" && generatedNumber) || (uerr.Field == "lr_number" && generatedLR)
}
