package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/fims/internal/application/dto"
	"github.com/jhoicas/fims/internal/application/usecase"
)

// LoadingSlipHandler loading slips del rake point.
type LoadingSlipHandler struct {
	uc *usecase.LoadingSlipUseCase
}

// NewLoadingSlipHandler construye el handler.
func NewLoadingSlipHandler(uc *usecase.LoadingSlipUseCase) *LoadingSlipHandler {
	return &LoadingSlipHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar loading slip (serial consecutivo por rake)
// @Tags         loading-slips
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLoadingSlipRequest  true  "rake_code, quantity"
// @Success      201   {object}  dto.LoadingSlipResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/loading-slips [post]
func (h *LoadingSlipHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLoadingSlipRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID GET /api/loading-slips/:id
func (h *LoadingSlipHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "loading slip no encontrado")
	}
	return c.JSON(out)
}

// ListByRake GET /api/rakes/:code/loading-slips
func (h *LoadingSlipHandler) ListByRake(c *fiber.Ctx) error {
	out, err := h.uc.ListByRake(c.Context(), c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"items": out})
}

// Link POST /api/loading-slips/:id/link
func (h *LoadingSlipHandler) Link(c *fiber.Ctx) error {
	var in dto.LinkLoadingSlipRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Link(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
