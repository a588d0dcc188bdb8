package http

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/fims/internal/application/dto"
	"github.com/jhoicas/fims/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// bindBody parsea y valida el cuerpo. Devuelve false si ya respondió con 400.
func bindBody(c *fiber.Ctx, out any) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "datos inválidos",
			Details: validationDetails(err),
		})
	}
	return true, nil
}

func validationDetails(err error) map[string]any {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}
	fields := make(map[string]any, len(ve))
	for _, fe := range ve {
		fields[strings.ToLower(fe.Field())] = fe.Tag()
	}
	return map[string]any{"fields": fields}
}

// respondError traduce los errores de dominio a status HTTP con el payload del rechazo.
func respondError(c *fiber.Ctx, err error) error {
	var (
		capErr *domain.CapacityExceededError
		balErr *domain.InsufficientBalanceError
		uniErr *domain.UniquenessError
	)
	switch {
	case errors.As(err, &capErr):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "CAPACITY_EXCEEDED",
			Message: err.Error(),
			Details: map[string]any{
				"document_id": capErr.DocumentID,
				"requested":   capErr.Requested,
				"remaining":   capErr.Remaining,
			},
		})
	case errors.As(err, &balErr):
		details := map[string]any{
			"warehouse_id": balErr.WarehouseID,
			"requested":    balErr.Requested,
			"available":    balErr.Available,
		}
		if balErr.RakeCode != "" {
			details["rake_code"] = balErr.RakeCode
		}
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_BALANCE", Message: err.Error(), Details: details})
	case errors.Is(err, domain.ErrDuplicateInvoice):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_INVOICE", Message: err.Error()})
	case errors.As(err, &uniErr):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "DUPLICATE",
			Message: err.Error(),
			Details: map[string]any{"entity": uniErr.Entity, "field": uniErr.Field, "value": uniErr.Value},
		})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrAlreadyReversed):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_REVERSED", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrLockTimeout):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "LOCK_TIMEOUT", Message: "recurso ocupado, intente de nuevo"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: msg})
}

// pageParams lee limit/offset con los mismos topes para todos los listados.
func pageParams(c *fiber.Ctx) (limit, offset int) {
	limit = c.QueryInt("limit", 20)
	offset = c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
