package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/fims/internal/domain/entity"
	"github.com/jhoicas/fims/internal/domain/repository"
	"github.com/jhoicas/fims/internal/domain/stock"
)

var _ repository.StockMovementRepository = (*MovementRepo)(nil)

// MovementRepo movimientos de stock sobre PostgreSQL (append-only).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `m.id, m.warehouse_id, m.document_id, m.direction, m.quantity, m.date,
	m.actor, m.notes, m.reversal_of, m.created_at`

// sumByDirection entradas y salidas; las compensaciones restan por su cantidad negativa.
const sumByDirection = `
	COALESCE(SUM(m.quantity) FILTER (WHERE m.direction = 'IN'), 0),
	COALESCE(SUM(m.quantity) FILTER (WHERE m.direction = 'OUT'), 0)`

// Create inserta el movimiento. Una segunda compensación del mismo movimiento → ErrAlreadyReversed.
func (r *MovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_movements (id, warehouse_id, document_id, direction, quantity, date, actor, notes, reversal_of, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.ID, m.WarehouseID, m.DocumentID, string(m.Direction), m.Quantity, m.Date,
		m.Actor, m.Notes, nullIfEmpty(m.ReversalOf), m.CreatedAt,
	)
	if err != nil {
		return translateWriteError(err, "insert stock movement", nil)
	}
	return nil
}

func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	return r.get(ctx, `SELECT `+movementColumns+` FROM stock_movements m WHERE m.id = $1`, id)
}

func (r *MovementRepo) FindReversal(ctx context.Context, movementID string) (*entity.StockMovement, error) {
	return r.get(ctx, `SELECT `+movementColumns+` FROM stock_movements m WHERE m.reversal_of = $1`, movementID)
}

func (r *MovementRepo) get(ctx context.Context, query, arg string) (*entity.StockMovement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return m, nil
}

func (r *MovementRepo) ListByDocument(ctx context.Context, documentID string) ([]*entity.StockMovement, error) {
	return r.list(ctx, `SELECT `+movementColumns+` FROM stock_movements m
		WHERE m.document_id = $1 ORDER BY m.created_at ASC, m.id ASC`, documentID)
}

func (r *MovementRepo) ListByWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.StockMovement, error) {
	return r.list(ctx, `SELECT `+movementColumns+` FROM stock_movements m
		WHERE m.warehouse_id = $1 ORDER BY m.created_at DESC, m.id DESC LIMIT $2 OFFSET $3`,
		warehouseID, limit, offset)
}

func (r *MovementRepo) ListByRake(ctx context.Context, rakeCode string) ([]*entity.StockMovement, error) {
	return r.list(ctx, `SELECT `+movementColumns+` FROM stock_movements m
		JOIN transport_documents d ON d.id = m.document_id
		WHERE d.rake_code = $1 ORDER BY m.created_at ASC, m.id ASC`, rakeCode)
}

func (r *MovementRepo) SumInByDocument(ctx context.Context, documentID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(m.quantity), 0) FROM stock_movements m
		WHERE m.document_id = $1 AND m.direction = 'IN'`, documentID).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum stock in by document: %w", err)
	}
	return sum, nil
}

func (r *MovementRepo) WarehouseTotals(ctx context.Context, warehouseID, rakeCode string) (stock.Totals, error) {
	return r.totals(ctx, `SELECT `+sumByDirection+` FROM stock_movements m
		JOIN transport_documents d ON d.id = m.document_id
		WHERE m.warehouse_id = $1 AND ($2 = '' OR d.rake_code = $2)`, warehouseID, rakeCode)
}

func (r *MovementRepo) RakeTotals(ctx context.Context, rakeCode string) (stock.Totals, error) {
	return r.totals(ctx, `SELECT `+sumByDirection+` FROM stock_movements m
		JOIN transport_documents d ON d.id = m.document_id
		WHERE d.rake_code = $1`, rakeCode)
}

func (r *MovementRepo) Totals(ctx context.Context) (stock.Totals, error) {
	return r.totals(ctx, `SELECT `+sumByDirection+` FROM stock_movements m`)
}

// WarehouseRakeStocks saldo por rake en la bodega, ordenado por código.
func (r *MovementRepo) WarehouseRakeStocks(ctx context.Context, warehouseID string) ([]stock.RakeStock, error) {
	rows, err := r.q.Query(ctx, `
		SELECT d.rake_code, k.date, `+sumByDirection+`
		FROM stock_movements m
		JOIN transport_documents d ON d.id = m.document_id
		JOIN rakes k ON k.code = d.rake_code
		WHERE m.warehouse_id = $1
		GROUP BY d.rake_code, k.date
		ORDER BY d.rake_code ASC`, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("warehouse rake stocks: %w", err)
	}
	defer rows.Close()
	out := []stock.RakeStock{}
	for rows.Next() {
		var rs stock.RakeStock
		if err := rows.Scan(&rs.RakeCode, &rs.RakeDate, &rs.Totals.In, &rs.Totals.Out); err != nil {
			return nil, fmt.Errorf("scan rake stock: %w", err)
		}
		out = append(out, rs)
	}
	return out, rows.Err()
}

func (r *MovementRepo) totals(ctx context.Context, query string, args ...any) (stock.Totals, error) {
	var t stock.Totals
	if err := r.q.QueryRow(ctx, query, args...).Scan(&t.In, &t.Out); err != nil {
		return stock.Totals{In: decimal.Zero, Out: decimal.Zero}, fmt.Errorf("stock totals: %w", err)
	}
	return t, nil
}

func (r *MovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	out := []*entity.StockMovement{}
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var (
		m          entity.StockMovement
		direction  string
		reversalOf *string
	)
	err := row.Scan(&m.ID, &m.WarehouseID, &m.DocumentID, &direction, &m.Quantity, &m.Date,
		&m.Actor, &m.Notes, &reversalOf, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	m.Direction = entity.Direction(direction)
	m.ReversalOf = derefStr(reversalOf)
	return &m, nil
}
