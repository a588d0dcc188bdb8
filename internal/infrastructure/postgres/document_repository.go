package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/fims/internal/domain/entity"
	"github.com/jhoicas/fims/internal/domain/repository"
)

var _ repository.TransportDocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo builties sobre PostgreSQL (append-only).
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

const documentColumns = `id, number, variant, rake_code, destination_kind, destination_id,
	source_warehouse_id, truck_id, date, rake_point_name, loading_point, unloading_point,
	goods_name, bags, kg_per_bag, quantity, rate_per_mt, total_freight, lr_number,
	created_by_role, created_by, created_at`

// Create inserta la builty. Número o LR repetidos → UniquenessError; rake inexistente → ErrNotFound.
func (r *DocumentRepo) Create(ctx context.Context, d *entity.TransportDocument) error {
	_, err := r.q.Exec(ctx, `INSERT INTO transport_documents (`+documentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`,
		d.ID, d.Number, string(d.Variant), d.RakeCode, string(d.Destination.Kind), d.Destination.ID,
		d.SourceWarehouseID, d.TruckID, d.Date, d.RakePointName, d.LoadingPoint, d.UnloadingPoint,
		d.GoodsName, d.Bags, d.KgPerBag, d.Quantity, d.RatePerMT, d.TotalFreight, nullIfEmpty(d.LRNumber),
		d.CreatedByRole, d.CreatedBy, d.CreatedAt,
	)
	if err != nil {
		return translateWriteError(err, "insert transport document", map[string]string{
			"number":    d.Number,
			"lr_number": d.LRNumber,
		})
	}
	return nil
}

func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*entity.TransportDocument, error) {
	return r.get(ctx, `SELECT `+documentColumns+` FROM transport_documents WHERE id = $1`, id)
}

func (r *DocumentRepo) GetByNumber(ctx context.Context, number string) (*entity.TransportDocument, error) {
	return r.get(ctx, `SELECT `+documentColumns+` FROM transport_documents WHERE number = $1`, number)
}

// GetForUpdate bloquea la builty: las entradas concurrentes contra ella se serializan.
func (r *DocumentRepo) GetForUpdate(ctx context.Context, id string) (*entity.TransportDocument, error) {
	return r.get(ctx, `SELECT `+documentColumns+` FROM transport_documents WHERE id = $1 FOR NO KEY UPDATE`, id)
}

func (r *DocumentRepo) get(ctx context.Context, query, arg string) (*entity.TransportDocument, error) {
	d, err := scanDocument(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transport document: %w", err)
	}
	return d, nil
}

func (r *DocumentRepo) ListByRake(ctx context.Context, rakeCode string) ([]*entity.TransportDocument, error) {
	return r.list(ctx, `SELECT `+documentColumns+` FROM transport_documents
		WHERE rake_code = $1 ORDER BY created_at ASC, id ASC`, rakeCode)
}

func (r *DocumentRepo) List(ctx context.Context, limit, offset int) ([]*entity.TransportDocument, error) {
	return r.list(ctx, `SELECT `+documentColumns+` FROM transport_documents
		ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`, limit, offset)
}

func (r *DocumentRepo) ListWithoutInvoice(ctx context.Context) ([]*entity.TransportDocument, error) {
	return r.list(ctx, `SELECT `+documentColumns+` FROM transport_documents d
		WHERE NOT EXISTS (SELECT 1 FROM invoices i WHERE i.document_id = d.id)
		ORDER BY d.created_at DESC, d.id DESC`)
}

func (r *DocumentRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM transport_documents`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count transport documents: %w", err)
	}
	return n, nil
}

// NextLRNumber mayor LR numérico + 1, sin bajar de start. Los LR no numéricos se ignoran.
func (r *DocumentRepo) NextLRNumber(ctx context.Context, start int) (string, error) {
	var max int64
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(MAX(CASE WHEN lr_number ~ '^[0-9]{1,18}$' THEN lr_number::BIGINT END), 0)
		FROM transport_documents`).Scan(&max)
	if err != nil {
		return "", fmt.Errorf("next lr number: %w", err)
	}
	next := max + 1
	if next < int64(start) {
		next = int64(start)
	}
	return strconv.FormatInt(next, 10), nil
}

func (r *DocumentRepo) list(ctx context.Context, query string, args ...any) ([]*entity.TransportDocument, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transport documents: %w", err)
	}
	defer rows.Close()
	out := []*entity.TransportDocument{}
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transport document: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func scanDocument(row pgx.Row) (*entity.TransportDocument, error) {
	var (
		d        entity.TransportDocument
		variant  string
		destKind string
		lr       *string
	)
	err := row.Scan(&d.ID, &d.Number, &variant, &d.RakeCode, &destKind, &d.Destination.ID,
		&d.SourceWarehouseID, &d.TruckID, &d.Date, &d.RakePointName, &d.LoadingPoint, &d.UnloadingPoint,
		&d.GoodsName, &d.Bags, &d.KgPerBag, &d.Quantity, &d.RatePerMT, &d.TotalFreight, &lr,
		&d.CreatedByRole, &d.CreatedBy, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	d.Variant = entity.DocumentVariant(variant)
	d.Destination.Kind = entity.DestinationKind(destKind)
	d.LRNumber = derefStr(lr)
	return &d, nil
}
