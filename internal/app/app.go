// Package app arma el grafo de dependencias compartido por el API y el CLI.
package app

import (
	"context"
	"fmt"

	"github.com/jhoicas/fims/internal/application/billing"
	"github.com/jhoicas/fims/internal/application/ledger"
	"github.com/jhoicas/fims/internal/application/trace"
	"github.com/jhoicas/fims/internal/application/usecase"
	"github.com/jhoicas/fims/internal/domain/identifier"
	"github.com/jhoicas/fims/internal/domain/repository"
	"github.com/jhoicas/fims/internal/infrastructure/lock"
	"github.com/jhoicas/fims/internal/infrastructure/memory"
	"github.com/jhoicas/fims/internal/infrastructure/metrics"
	"github.com/jhoicas/fims/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/fims/internal/interfaces/http"
	"github.com/jhoicas/fims/pkg/config"
	"github.com/jhoicas/fims/pkg/logger"
)

// txRunner transacciones del ledger y de facturación sobre el mismo almacén.
type txRunner interface {
	ledger.TxRunner
	billing.BillingTxRunner
}

// Repositories repositorios del almacén elegido por DB_DRIVER.
type Repositories struct {
	Rakes      repository.RakeRepository
	Accounts   repository.AccountRepository
	Warehouses repository.WarehouseRepository
	Trucks     repository.TruckRepository
	Documents  repository.TransportDocumentRepository
	Slips      repository.LoadingSlipRepository
	Movements  repository.StockMovementRepository
	Invoices   repository.InvoiceRepository
	Tx         txRunner
}

// App casos de uso listos para servir.
type App struct {
	Repos     Repositories
	Engine    *ledger.Engine
	Resolver  *trace.Resolver
	Metrics   *metrics.Ledger
	Rake      *usecase.RakeUseCase
	Document  *usecase.DocumentUseCase
	Warehouse *usecase.WarehouseUseCase
	Account   *usecase.AccountUseCase
	Truck     *usecase.TruckUseCase
	Slip      *usecase.LoadingSlipUseCase
	Trace     *usecase.TraceUseCase
	Dashboard *usecase.DashboardUseCase
	Invoice   *billing.InvoiceUseCase

	closers []func()
}

// Close libera pool y cliente de Redis en orden inverso.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// Open conecta el almacén (y migra si es PostgreSQL), elige el locker y construye los casos de uso.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	a := &App{}
	repos, err := a.openStore(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}
	locker, err := a.openLocker(ctx, cfg, log)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.wire(repos, locker, cfg.Ledger, log)
	return a, nil
}

// NewInMemory grafo completo sobre el almacén en proceso y bloqueo local (tests, seed local).
func NewInMemory(ledgerCfg config.LedgerConfig, log *logger.Logger) *App {
	a := &App{}
	a.wire(memoryRepositories(memory.New()), lock.NewLocal(ledgerCfg.LockWait), ledgerCfg, log)
	return a
}

// RouterDeps dependencias HTTP a partir del grafo.
func (a *App) RouterDeps(cfg *config.Config, log *logger.Logger) httpRouter.RouterDeps {
	return httpRouter.RouterDeps{
		RakeUC:        a.Rake,
		DocumentUC:    a.Document,
		WarehouseUC:   a.Warehouse,
		AccountUC:     a.Account,
		TruckUC:       a.Truck,
		LoadingSlipUC: a.Slip,
		TraceUC:       a.Trace,
		DashboardUC:   a.Dashboard,
		InvoiceUC:     a.Invoice,
		JWTSecret:     cfg.JWT.Secret,
		ServiceName:   cfg.App.Name,
		Logger:        log,
		Metrics:       a.Metrics.Handler(),
	}
}

func (a *App) openStore(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (Repositories, error) {
	if cfg.Driver == "memory" {
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
		return memoryRepositories(memory.New()), nil
	}
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return Repositories{}, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	a.closers = append(a.closers, pool.Close)
	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		a.Close()
		return Repositories{}, fmt.Errorf("migraciones: %w", err)
	}
	if len(applied) > 0 {
		log.Info().Strs("versions", applied).Msg("migraciones aplicadas")
	}
	return Repositories{
		Rakes:      postgres.NewRakeRepository(pool),
		Accounts:   postgres.NewAccountRepository(pool),
		Warehouses: postgres.NewWarehouseRepository(pool),
		Trucks:     postgres.NewTruckRepository(pool),
		Documents:  postgres.NewDocumentRepository(pool),
		Slips:      postgres.NewLoadingSlipRepository(pool),
		Movements:  postgres.NewMovementRepository(pool),
		Invoices:   postgres.NewInvoiceRepository(pool),
		Tx:         postgres.NewTxRunner(pool),
	}, nil
}

func (a *App) openLocker(ctx context.Context, cfg *config.Config, log *logger.Logger) (ledger.Locker, error) {
	if cfg.Redis.Address == "" {
		return lock.NewLocal(cfg.Ledger.LockWait), nil
	}
	rdb, err := lock.Connect(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() { _ = rdb.Close() })
	log.Info().Str("address", cfg.Redis.Address).Msg("bloqueo distribuido con Redis")
	return lock.NewRedis(rdb, cfg.Ledger.LockTTL, cfg.Ledger.LockWait, log.Component("lock")), nil
}

func memoryRepositories(s *memory.Store) Repositories {
	return Repositories{
		Rakes:      s.Rakes(),
		Accounts:   s.Accounts(),
		Warehouses: s.Warehouses(),
		Trucks:     s.Trucks(),
		Documents:  s.Documents(),
		Slips:      s.LoadingSlips(),
		Movements:  s.Movements(),
		Invoices:   s.Invoices(),
		Tx:         s,
	}
}

func (a *App) wire(r Repositories, locker ledger.Locker, cfg config.LedgerConfig, log *logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}
	ids := identifier.NewGenerator(nil)
	a.Repos = r
	a.Metrics = metrics.NewLedger()
	a.Engine = ledger.NewEngine(ledger.EngineDeps{
		TxRunner:   r.Tx,
		Locker:     locker,
		Rakes:      r.Rakes,
		Accounts:   r.Accounts,
		Warehouses: r.Warehouses,
		Trucks:     r.Trucks,
		Documents:  r.Documents,
		Movements:  r.Movements,
		IDs:        ids,
		Metrics:    a.Metrics,
		Logger:     log.Component("ledger"),
		Config: ledger.Config{
			StrictRakeScope: cfg.StrictRakeScope,
			LRNumberStart:   cfg.LRNumberStart,
		},
	})
	a.Resolver = trace.NewResolver(r.Rakes, r.Documents, r.Slips, r.Movements, r.Invoices)

	a.Rake = usecase.NewRakeUseCase(r.Rakes, r.Slips, a.Engine, log.Component("rakes"))
	a.Document = usecase.NewDocumentUseCase(a.Engine, r.Documents)
	a.Warehouse = usecase.NewWarehouseUseCase(r.Warehouses, a.Engine)
	a.Account = usecase.NewAccountUseCase(r.Accounts)
	a.Truck = usecase.NewTruckUseCase(r.Trucks)
	a.Slip = usecase.NewLoadingSlipUseCase(r.Slips, r.Rakes, r.Documents)
	a.Trace = usecase.NewTraceUseCase(a.Resolver)
	a.Dashboard = usecase.NewDashboardUseCase(r.Rakes, r.Documents, r.Invoices, a.Engine)
	a.Invoice = billing.NewInvoiceUseCase(r.Tx, locker, r.Documents, r.Invoices, ids, a.Metrics, log.Component("billing"))
}
