package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/fims/internal/application/dto"
	"github.com/jhoicas/fims/internal/application/usecase"
)

// RakeHandler maneja las peticiones HTTP de rakes.
type RakeHandler struct {
	uc *usecase.RakeUseCase
}

// NewRakeHandler construye el handler.
func NewRakeHandler(uc *usecase.RakeUseCase) *RakeHandler {
	return &RakeHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar rake
// @Tags         rakes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRakeRequest  true  "code, company, product, rr_quantity"
// @Success      201   {object}  dto.RakeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/rakes [post]
func (h *RakeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRakeRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByCode godoc
// @Summary      Obtener rake por código
// @Tags         rakes
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "Código del rake"
// @Success      200   {object}  dto.RakeResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/rakes/{code} [get]
func (h *RakeHandler) GetByCode(c *fiber.Ctx) error {
	out, err := h.uc.GetByCode(c.Context(), c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "rake no encontrado")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar rakes (más recientes primero)
// @Tags         rakes
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.RakeListResponse
// @Router       /api/rakes [get]
func (h *RakeHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Balance godoc
// @Summary      Saldo del rake (receipted - stock_in + stock_out)
// @Tags         rakes
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "Código del rake"
// @Success      200   {object}  dto.RakeBalanceResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/rakes/{code}/balance [get]
func (h *RakeHandler) Balance(c *fiber.Ctx) error {
	out, err := h.uc.Balance(c.Context(), c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Summary GET /api/rakes/summary
func (h *RakeHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"items": out})
}

// DispatchBalance GET /api/rakes/:code/dispatch-balance
func (h *RakeHandler) DispatchBalance(c *fiber.Ctx) error {
	out, err := h.uc.DispatchBalance(c.Context(), c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
