package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/fims/internal/application/dto"
	"github.com/jhoicas/fims/internal/application/usecase"
)

// DocumentHandler builties (transport documents) y movimientos de stock.
type DocumentHandler struct {
	uc *usecase.DocumentUseCase
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(uc *usecase.DocumentUseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

// CreateInbound godoc
// @Summary      Emitir builty desde el rake point
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInboundDocumentRequest  true  "rake_code, destination, quantity, flete"
// @Success      201   {object}  dto.TransportDocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/documents [post]
func (h *DocumentHandler) CreateInbound(c *fiber.Ctx) error {
	var in dto.CreateInboundDocumentRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateInbound(c.Context(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID GET /api/documents/:id
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "builty no encontrada")
	}
	return c.JSON(out)
}

// GetByNumber GET /api/documents/number/:number
func (h *DocumentHandler) GetByNumber(c *fiber.Ctx) error {
	out, err := h.uc.GetByNumber(c.Context(), c.Params("number"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "builty no encontrada")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar builties
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        rake_code  query  string  false  "Filtrar por rake"
// @Param        limit      query  int     false  "Límite"  default(20)
// @Param        offset     query  int     false  "Offset"  default(0)
// @Success      200        {object}  dto.TransportDocumentListResponse
// @Router       /api/documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	if code := c.Query("rake_code"); code != "" {
		items, err := h.uc.ListByRake(c.Context(), code)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(dto.TransportDocumentListResponse{Items: items, Page: dto.PageResponse{Limit: len(items), Total: len(items)}})
	}
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RemainingCapacity godoc
// @Summary      Capacidad restante de la builty
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la builty"
// @Success      200  {object}  dto.RemainingCapacityResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/remaining [get]
func (h *DocumentHandler) RemainingCapacity(c *fiber.Ctx) error {
	out, err := h.uc.RemainingCapacity(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Movements GET /api/documents/:id/movements
func (h *DocumentHandler) Movements(c *fiber.Ctx) error {
	out, err := h.uc.Movements(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"items": out})
}

// StockIn godoc
// @Summary      Registrar entrada a bodega contra una builty
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockInRequest  true  "document_id, warehouse_id, quantity"
// @Success      201   {object}  dto.StockInResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "CAPACITY_EXCEEDED con details.remaining"
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/stock/in [post]
func (h *DocumentHandler) StockIn(c *fiber.Ctx) error {
	var in dto.StockInRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.StockIn(c.Context(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// StockOut godoc
// @Summary      Registrar salida de bodega (crea la builty outbound)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockOutRequest  true  "warehouse_id, destination, quantity; rake_code opcional (FIFO)"
// @Success      201   {object}  dto.StockOutResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "INSUFFICIENT_BALANCE con details.available"
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/stock/out [post]
func (h *DocumentHandler) StockOut(c *fiber.Ctx) error {
	var in dto.StockOutRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.StockOut(c.Context(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Reverse godoc
// @Summary      Revertir un movimiento con un asiento compensatorio
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true   "ID del movimiento"
// @Param        body  body  dto.ReverseMovementRequest  false  "notas"
// @Success      201   {object}  dto.StockMovementResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/movements/{id}/reverse [post]
func (h *DocumentHandler) Reverse(c *fiber.Ctx) error {
	var in dto.ReverseMovementRequest
	if len(c.Body()) > 0 {
		if ok, err := bindBody(c, &in); !ok {
			return err
		}
	}
	out, err := h.uc.Reverse(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
