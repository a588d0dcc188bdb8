package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/fims/internal/application/dto"
	"github.com/jhoicas/fims/internal/application/usecase"
)

// AccountHandler cuentas destino de las builties (Payal, Dealer, Retailer, Company).
type AccountHandler struct {
	uc *usecase.AccountUseCase
}

// NewAccountHandler construye el handler.
func NewAccountHandler(uc *usecase.AccountUseCase) *AccountHandler {
	return &AccountHandler{uc: uc}
}

// Create POST /api/accounts
func (h *AccountHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAccountRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID GET /api/accounts/:id
func (h *AccountHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "cuenta no encontrada")
	}
	return c.JSON(out)
}

// Update PUT /api/accounts/:id
func (h *AccountHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateAccountRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "cuenta no encontrada")
	}
	return c.JSON(out)
}

// List GET /api/accounts?type=Dealer&limit=20&offset=0
func (h *AccountHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.Context(), c.Query("type"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// TruckHandler camiones; el número se normaliza a mayúsculas.
type TruckHandler struct {
	uc *usecase.TruckUseCase
}

// NewTruckHandler construye el handler.
func NewTruckHandler(uc *usecase.TruckUseCase) *TruckHandler {
	return &TruckHandler{uc: uc}
}

// Create POST /api/trucks
func (h *TruckHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTruckRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID GET /api/trucks/:id
func (h *TruckHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "camión no encontrado")
	}
	return c.JSON(out)
}

// GetByNumber GET /api/trucks/number/:number
func (h *TruckHandler) GetByNumber(c *fiber.Ctx) error {
	out, err := h.uc.GetByNumber(c.Context(), c.Params("number"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "camión no encontrado")
	}
	return c.JSON(out)
}

// Update PUT /api/trucks/:id
func (h *TruckHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTruckRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "camión no encontrado")
	}
	return c.JSON(out)
}

// List GET /api/trucks
func (h *TruckHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
