package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/fims/internal/domain/entity"
	"github.com/jhoicas/fims/internal/domain/repository"
)

var _ repository.RakeRepository = (*RakeRepo)(nil)

// RakeRepo implementación de RakeRepository sobre PostgreSQL.
type RakeRepo struct {
	q Querier
}

// NewRakeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRakeRepository(q Querier) *RakeRepo {
	return &RakeRepo{q: q}
}

const rakeColumns = `id, code, company_name, company_code, product_name, product_code,
	rake_point_name, date, rr_quantity, created_by, created_at`

// Create persiste el rake; el código duplicado se traduce a UniquenessError.
func (r *RakeRepo) Create(ctx context.Context, rake *entity.Rake) error {
	_, err := r.q.Exec(ctx, `INSERT INTO rakes (`+rakeColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		rake.ID, rake.Code, rake.CompanyName, rake.CompanyCode, rake.ProductName, rake.ProductCode,
		rake.RakePointName, rake.Date, rake.RRQuantity, rake.CreatedBy, rake.CreatedAt,
	)
	if err != nil {
		return translateWriteError(err, "insert rake", map[string]string{"code": rake.Code})
	}
	return nil
}

// GetByCode nil si no existe.
func (r *RakeRepo) GetByCode(ctx context.Context, code string) (*entity.Rake, error) {
	rake, err := scanRake(r.q.QueryRow(ctx, `SELECT `+rakeColumns+` FROM rakes WHERE code = $1`, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rake: %w", err)
	}
	return rake, nil
}

// List más recientes primero (fecha del rake).
func (r *RakeRepo) List(ctx context.Context, limit, offset int) ([]*entity.Rake, error) {
	rows, err := r.q.Query(ctx, `SELECT `+rakeColumns+` FROM rakes
		ORDER BY date DESC, code ASC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list rakes: %w", err)
	}
	defer rows.Close()
	out := []*entity.Rake{}
	for rows.Next() {
		rake, err := scanRake(rows)
		if err != nil {
			return nil, fmt.Errorf("scan rake: %w", err)
		}
		out = append(out, rake)
	}
	return out, rows.Err()
}

func (r *RakeRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM rakes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count rakes: %w", err)
	}
	return n, nil
}

func scanRake(row pgx.Row) (*entity.Rake, error) {
	var rake entity.Rake
	err := row.Scan(&rake.ID, &rake.Code, &rake.CompanyName, &rake.CompanyCode, &rake.ProductName,
		&rake.ProductCode, &rake.RakePointName, &rake.Date, &rake.RRQuantity, &rake.CreatedBy, &rake.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rake, nil
}
