// fimsctl herramienta de operación: migraciones, datos de ejemplo, saldos y trazabilidad.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/fims/internal/app"
	"github.com/jhoicas/fims/internal/domain/entity"
	"github.com/jhoicas/fims/internal/infrastructure/postgres"
	"github.com/jhoicas/fims/pkg/config"
	"github.com/jhoicas/fims/pkg/jwt"
	"github.com/jhoicas/fims/pkg/logger"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var logLevel string
	cmd := &cobra.Command{
		Use:           "fimsctl",
		Short:         "Operación del ledger de fertilizantes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "nivel de log (debug, info, warn, error)")

	env := &environment{logLevel: &logLevel}
	cmd.AddCommand(
		migrateCmd(env),
		seedCmd(env),
		rakeBalanceCmd(env),
		traceCmd(env),
		descendantsCmd(env),
		tokenCmd(env),
	)
	return cmd
}

// environment carga configuración y grafo bajo demanda; cada subcomando decide qué necesita.
type environment struct {
	logLevel *string
	cfg      *config.Config
}

func (e *environment) loadConfig() (*config.Config, error) {
	if e.cfg != nil {
		return e.cfg, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cargar configuración: %w", err)
	}
	e.cfg = cfg
	return cfg, nil
}

func (e *environment) newLogger(cfg *config.Config) *logger.Logger {
	return logger.New(logger.Config{Env: cfg.App.Env, Level: *e.logLevel, Output: os.Stderr})
}

func (e *environment) open(ctx context.Context) (*app.App, error) {
	cfg, err := e.loadConfig()
	if err != nil {
		return nil, err
	}
	return app.Open(ctx, cfg, e.newLogger(cfg))
}

func migrateCmd(env *environment) *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones pendientes en PostgreSQL",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if list {
				for _, v := range postgres.Versions() {
					fmt.Fprintln(out, v)
				}
				return nil
			}
			cfg, err := env.loadConfig()
			if err != nil {
				return err
			}
			if cfg.DB.Driver != "postgres" {
				return fmt.Errorf("migrate requiere DB_DRIVER=postgres (actual: %s)", cfg.DB.Driver)
			}
			pool, err := postgres.NewPool(cmd.Context(), cfg.DB)
			if err != nil {
				return err
			}
			defer pool.Close()
			applied, err := postgres.Migrate(cmd.Context(), pool)
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				fmt.Fprintf(out, "sin migraciones pendientes (%d conocidas)\n", len(postgres.Versions()))
				return nil
			}
			for _, v := range applied {
				fmt.Fprintln(out, "aplicada", v)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "solo lista las migraciones conocidas, sin conectarse")
	return cmd
}

func seedCmd(env *environment) *cobra.Command {
	var rakeCode string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Crea datos maestros y un rake de ejemplo con su builty y entrada a bodega",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := env.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()
			out, err := seed(cmd.Context(), a, rakeCode)
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
	cmd.Flags().StringVar(&rakeCode, "rake", "RK-DEMO-01", "código del rake de ejemplo")
	return cmd
}

func rakeBalanceCmd(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "rake-balance <code>",
		Short: "Saldo de un rake (receipted - stock in + stock out)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := env.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()
			bal, err := a.Rake.Balance(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, bal)
		},
	}
}

func traceCmd(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "trace <document|movement|invoice> <id>",
		Short: "Rake de origen de una builty, movimiento o e-bill",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := env.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()
			res, err := a.Trace.ToRake(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}
}

func descendantsCmd(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "descendants <rake-code>",
		Short: "Builties, loading slips, movimientos y e-bills de un rake",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := env.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()
			res, err := a.Trace.Descendants(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}
}

func tokenCmd(env *environment) *cobra.Command {
	var userID, role string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Emite un JWT firmado con JWT_SECRET para un actor",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := env.loadConfig()
			if err != nil {
				return err
			}
			if !entity.IsValidRole(role) {
				return fmt.Errorf("rol inválido: %q", role)
			}
			token, err := jwt.Generate(cfg.JWT.Secret, userID, role, cfg.JWT.Issuer, cfg.JWT.Expiration)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "admin", "identificador del actor")
	cmd.Flags().StringVar(&role, "role", entity.RoleAdmin, "Admin, RakePoint, Warehouse o Accountant")
	return cmd
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
