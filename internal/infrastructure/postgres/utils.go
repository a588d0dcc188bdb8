package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/fims/internal/domain"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeNumericOutOfRange   = "22003"
)

// uniqueField entidad y campo de cada constraint único del esquema.
var uniqueField = map[string][2]string{
	"rakes_code_key":                    {"rake", "code"},
	"transport_documents_number_key":    {"transport_document", "number"},
	"transport_documents_lr_number_key": {"transport_document", "lr_number"},
	"invoices_number_key":               {"invoice", "number"},
	"loading_slips_rake_serial_key":     {"loading_slip", "serial"},
	"trucks_number_key":                 {"truck", "number"},
}

// translateWriteError convierte violaciones de integridad en errores de dominio.
// values trae el valor escrito por campo para el payload de UniquenessError.
func translateWriteError(err error, op string, values map[string]string) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return fmt.Errorf("%s: %w", op, err)
	}
	switch pgErr.Code {
	case codeUniqueViolation:
		switch pgErr.ConstraintName {
		case "invoices_document_id_key":
			return domain.ErrDuplicateInvoice
		case "stock_movements_reversal_of_key":
			return domain.ErrAlreadyReversed
		}
		if f, ok := uniqueField[pgErr.ConstraintName]; ok {
			return &domain.UniquenessError{Entity: f[0], Field: f[1], Value: values[f[1]]}
		}
		return fmt.Errorf("%s: %w", op, domain.ErrDuplicate)
	case codeForeignKeyViolation:
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	case codeCheckViolation, codeNumericOutOfRange:
		return fmt.Errorf("%s: %w: %s", op, domain.ErrInvalidInput, pgErr.Message)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// nullIfEmpty guarda NULL en columnas opcionales con índice único parcial.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
