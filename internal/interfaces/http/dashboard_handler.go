package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/fims/internal/application/usecase"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Stats devuelve los totales del ledger.
// GET /api/dashboard/stats
//
// Respuesta: DashboardStatsDTO (total_rakes, total_documents, stock_in, stock_out,
// stock_balance, total_invoices, invoice_amount, unbilled_documents).
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.uc.Stats(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}
