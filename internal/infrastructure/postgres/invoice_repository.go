package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/fims/internal/domain/entity"
	"github.com/jhoicas/fims/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `i.id, i.number, i.document_id, i.amount, i.tax, i.compliance_doc_ref,
	i.issue_date, i.created_by, i.created_at`

// Create persiste la e-bill. Número repetido → UniquenessError; builty ya facturada → ErrDuplicateInvoice.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO invoices (id, number, document_id, amount, tax, compliance_doc_ref, issue_date, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		inv.ID, inv.Number, inv.DocumentID, inv.Amount, inv.Tax, inv.ComplianceDocRef,
		inv.IssueDate, inv.CreatedBy, inv.CreatedAt,
	)
	if err != nil {
		return translateWriteError(err, "insert invoice", map[string]string{"number": inv.Number})
	}
	return nil
}

func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.get(ctx, `SELECT `+invoiceColumns+` FROM invoices i WHERE i.id = $1`, id)
}

func (r *InvoiceRepo) GetByDocument(ctx context.Context, documentID string) (*entity.Invoice, error) {
	return r.get(ctx, `SELECT `+invoiceColumns+` FROM invoices i WHERE i.document_id = $1`, documentID)
}

func (r *InvoiceRepo) get(ctx context.Context, query, arg string) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// List más recientes primero.
func (r *InvoiceRepo) List(ctx context.Context, limit, offset int) ([]*entity.Invoice, error) {
	return r.list(ctx, `SELECT `+invoiceColumns+` FROM invoices i
		ORDER BY i.created_at DESC, i.id DESC LIMIT $1 OFFSET $2`, limit, offset)
}

func (r *InvoiceRepo) ListByRake(ctx context.Context, rakeCode string) ([]*entity.Invoice, error) {
	return r.list(ctx, `SELECT `+invoiceColumns+` FROM invoices i
		JOIN transport_documents d ON d.id = i.document_id
		WHERE d.rake_code = $1 ORDER BY i.created_at ASC, i.id ASC`, rakeCode)
}

func (r *InvoiceRepo) Summary(ctx context.Context) (int, decimal.Decimal, error) {
	var (
		n      int
		amount decimal.Decimal
	)
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*), COALESCE(SUM(amount), 0) FROM invoices`).Scan(&n, &amount); err != nil {
		return 0, decimal.Zero, fmt.Errorf("invoice summary: %w", err)
	}
	return n, amount, nil
}

func (r *InvoiceRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	out := []*entity.Invoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(&inv.ID, &inv.Number, &inv.DocumentID, &inv.Amount, &inv.Tax, &inv.ComplianceDocRef,
		&inv.IssueDate, &inv.CreatedBy, &inv.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}
