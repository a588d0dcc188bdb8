package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/fims/internal/application/dto"
	"github.com/jhoicas/fims/internal/application/usecase"
)

// TraceHandler trazabilidad rake → builty → movimientos → e-bill.
type TraceHandler struct {
	uc *usecase.TraceUseCase
}

// NewTraceHandler construye el handler.
func NewTraceHandler(uc *usecase.TraceUseCase) *TraceHandler {
	return &TraceHandler{uc: uc}
}

// ToRake godoc
// @Summary      Rake de origen de una builty, movimiento o e-bill
// @Tags         trace
// @Security     Bearer
// @Produce      json
// @Param        kind  path  string  true  "document | movement | invoice"
// @Param        id    path  string  true  "ID de la entidad"
// @Success      200   {object}  dto.TraceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/trace/{kind}/{id}/rake [get]
func (h *TraceHandler) ToRake(c *fiber.Ctx) error {
	kind := c.Params("kind")
	switch kind {
	case usecase.EntityDocument, usecase.EntityMovement, usecase.EntityInvoice:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "kind debe ser document, movement o invoice"})
	}
	out, err := h.uc.ToRake(c.Context(), kind, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ToInvoice GET /api/trace/documents/:id/invoice: 404 si la builty no tiene e-bill.
func (h *TraceHandler) ToInvoice(c *fiber.Ctx) error {
	out, err := h.uc.ToInvoice(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "la builty no tiene e-bill")
	}
	return c.JSON(out)
}

// Chain GET /api/trace/documents/:id/chain
func (h *TraceHandler) Chain(c *fiber.Ctx) error {
	out, err := h.uc.Chain(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Descendants GET /api/trace/rakes/:code/descendants
func (h *TraceHandler) Descendants(c *fiber.Ctx) error {
	out, err := h.uc.Descendants(c.Context(), c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
