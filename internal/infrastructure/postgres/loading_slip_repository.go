package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/fims/internal/domain"
	"github.com/jhoicas/fims/internal/domain/entity"
	"github.com/jhoicas/fims/internal/domain/repository"
)

var _ repository.LoadingSlipRepository = (*LoadingSlipRepo)(nil)

// LoadingSlipRepo loading slips sobre PostgreSQL.
type LoadingSlipRepo struct {
	q Querier
}

// NewLoadingSlipRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLoadingSlipRepository(q Querier) *LoadingSlipRepo {
	return &LoadingSlipRepo{q: q}
}

const slipColumns = `id, rake_code, serial, loading_point_name, destination_name, account_id,
	warehouse_id, bags, quantity, truck_id, wagon_number, goods_name, document_id, created_by, created_at`

// Create con Serial en cero toma max(serial del rake) + 1 en la misma sentencia; dos altas
// concurrentes pueden chocar en (rake_code, serial) y el caso de uso reintenta.
func (r *LoadingSlipRepo) Create(ctx context.Context, s *entity.LoadingSlip) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO loading_slips (`+slipColumns+`)
		VALUES ($1, $2,
			CASE WHEN $3::INT > 0 THEN $3::INT
			     ELSE (SELECT COALESCE(MAX(serial), 0) + 1 FROM loading_slips WHERE rake_code = $2) END,
			$4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING serial`,
		s.ID, s.RakeCode, s.Serial, s.LoadingPointName, s.DestinationName, s.AccountID,
		s.WarehouseID, s.Bags, s.Quantity, s.TruckID, s.WagonNumber, s.GoodsName,
		nullIfEmpty(s.DocumentID), s.CreatedBy, s.CreatedAt,
	).Scan(&s.Serial)
	if err != nil {
		return translateWriteError(err, "insert loading slip", map[string]string{"serial": strconv.Itoa(s.Serial)})
	}
	return nil
}

func (r *LoadingSlipRepo) GetByID(ctx context.Context, id string) (*entity.LoadingSlip, error) {
	s, err := scanSlip(r.q.QueryRow(ctx, `SELECT `+slipColumns+` FROM loading_slips WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get loading slip: %w", err)
	}
	return s, nil
}

func (r *LoadingSlipRepo) ListByRake(ctx context.Context, rakeCode string) ([]*entity.LoadingSlip, error) {
	rows, err := r.q.Query(ctx, `SELECT `+slipColumns+` FROM loading_slips
		WHERE rake_code = $1 ORDER BY serial ASC`, rakeCode)
	if err != nil {
		return nil, fmt.Errorf("list loading slips: %w", err)
	}
	defer rows.Close()
	out := []*entity.LoadingSlip{}
	for rows.Next() {
		s, err := scanSlip(rows)
		if err != nil {
			return nil, fmt.Errorf("scan loading slip: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *LoadingSlipRepo) LinkDocument(ctx context.Context, slipID, documentID string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE loading_slips SET document_id = $2 WHERE id = $1`, slipID, documentID)
	if err != nil {
		return translateWriteError(err, "link loading slip", nil)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *LoadingSlipRepo) SumQuantityByRake(ctx context.Context, rakeCode string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(quantity), 0) FROM loading_slips WHERE rake_code = $1`, rakeCode).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum loading slips: %w", err)
	}
	return sum, nil
}

func scanSlip(row pgx.Row) (*entity.LoadingSlip, error) {
	var (
		s     entity.LoadingSlip
		docID *string
	)
	err := row.Scan(&s.ID, &s.RakeCode, &s.Serial, &s.LoadingPointName, &s.DestinationName, &s.AccountID,
		&s.WarehouseID, &s.Bags, &s.Quantity, &s.TruckID, &s.WagonNumber, &s.GoodsName, &docID,
		&s.CreatedBy, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	s.DocumentID = derefStr(docID)
	return &s, nil
}
