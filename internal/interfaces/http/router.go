package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jhoicas/fims/internal/application/billing"
	"github.com/jhoicas/fims/internal/application/usecase"
	"github.com/jhoicas/fims/internal/domain/entity"
	"github.com/jhoicas/fims/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RakeUC        *usecase.RakeUseCase
	DocumentUC    *usecase.DocumentUseCase
	WarehouseUC   *usecase.WarehouseUseCase
	AccountUC     *usecase.AccountUseCase
	TruckUC       *usecase.TruckUseCase
	LoadingSlipUC *usecase.LoadingSlipUseCase
	TraceUC       *usecase.TraceUseCase
	DashboardUC   *usecase.DashboardUseCase
	InvoiceUC     *billing.InvoiceUseCase
	JWTSecret     string
	ServiceName   string
	Logger        *logger.Logger
	Metrics       http.Handler // opcional: expone /metrics
}

// Router registra las rutas de la API.
//
// Escrituras por rol (Admin pasa siempre):
//   - rakes, bodegas, cuentas, camiones → Admin
//   - builties inbound y loading slips → RakePoint
//   - entradas, salidas y reversiones → Warehouse
//   - e-bills → Accountant
//
// Las lecturas quedan abiertas a cualquier actor autenticado.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}
	app.Use(RequestID())
	app.Use(RequestLogger(deps.Logger.Component("http")))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	admin := RequireRole(entity.RoleAdmin)
	rakePoint := RequireRole(entity.RoleRakePoint)
	warehouse := RequireRole(entity.RoleWarehouse)
	accountant := RequireRole(entity.RoleAccountant)

	rakeHandler := NewRakeHandler(deps.RakeUC)
	slipHandler := NewLoadingSlipHandler(deps.LoadingSlipUC)
	rakes := api.Group("/rakes")
	rakes.Post("/", admin, rakeHandler.Create)
	rakes.Get("/", rakeHandler.List)
	rakes.Get("/summary", rakeHandler.Summary)
	rakes.Get("/:code", rakeHandler.GetByCode)
	rakes.Get("/:code/balance", rakeHandler.Balance)
	rakes.Get("/:code/dispatch-balance", rakeHandler.DispatchBalance)
	rakes.Get("/:code/loading-slips", slipHandler.ListByRake)

	slips := api.Group("/loading-slips")
	slips.Post("/", rakePoint, slipHandler.Create)
	slips.Get("/:id", slipHandler.GetByID)
	slips.Post("/:id/link", rakePoint, slipHandler.Link)

	docHandler := NewDocumentHandler(deps.DocumentUC)
	docs := api.Group("/documents")
	docs.Post("/", rakePoint, docHandler.CreateInbound)
	docs.Get("/", docHandler.List)
	docs.Get("/number/:number", docHandler.GetByNumber)
	docs.Get("/:id", docHandler.GetByID)
	docs.Get("/:id/remaining", docHandler.RemainingCapacity)
	docs.Get("/:id/movements", docHandler.Movements)

	stock := api.Group("/stock")
	stock.Post("/in", warehouse, docHandler.StockIn)
	stock.Post("/out", warehouse, docHandler.StockOut)
	stock.Post("/movements/:id/reverse", warehouse, docHandler.Reverse)

	whHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses := api.Group("/warehouses")
	warehouses.Post("/", admin, whHandler.Create)
	warehouses.Get("/", whHandler.List)
	warehouses.Get("/:id", whHandler.GetByID)
	warehouses.Put("/:id", admin, whHandler.Update)
	warehouses.Get("/:id/summary", whHandler.Summary)
	warehouses.Get("/:id/stocks", whHandler.Stocks)
	warehouses.Get("/:id/movements", whHandler.Movements)

	accountHandler := NewAccountHandler(deps.AccountUC)
	accounts := api.Group("/accounts")
	accounts.Post("/", admin, accountHandler.Create)
	accounts.Get("/", accountHandler.List)
	accounts.Get("/:id", accountHandler.GetByID)
	accounts.Put("/:id", admin, accountHandler.Update)

	truckHandler := NewTruckHandler(deps.TruckUC)
	trucks := api.Group("/trucks")
	trucks.Post("/", admin, truckHandler.Create)
	trucks.Get("/", truckHandler.List)
	trucks.Get("/number/:number", truckHandler.GetByNumber)
	trucks.Get("/:id", truckHandler.GetByID)
	trucks.Put("/:id", admin, truckHandler.Update)

	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	invoices := api.Group("/invoices")
	invoices.Post("/", accountant, invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/unbilled", invoiceHandler.Unbilled)
	invoices.Get("/:id", invoiceHandler.GetByID)

	traceHandler := NewTraceHandler(deps.TraceUC)
	tr := api.Group("/trace")
	tr.Get("/documents/:id/invoice", traceHandler.ToInvoice)
	tr.Get("/documents/:id/chain", traceHandler.Chain)
	tr.Get("/rakes/:code/descendants", traceHandler.Descendants)
	tr.Get("/:kind/:id/rake", traceHandler.ToRake)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard/stats", dashboardHandler.Stats)
}
