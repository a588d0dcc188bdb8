package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// migration paso versionado del esquema; se aplica una sola vez.
type migration struct {
	Version string
	Name    string
	Up      string
}

var migrations = []migration{
	{
		Version: "20250101000001",
		Name:    "create_master_data",
		Up: `
CREATE TABLE IF NOT EXISTS rakes (
    id              TEXT PRIMARY KEY,
    code            TEXT NOT NULL,
    company_name    TEXT NOT NULL DEFAULT '',
    company_code    TEXT NOT NULL DEFAULT '',
    product_name    TEXT NOT NULL DEFAULT '',
    product_code    TEXT NOT NULL DEFAULT '',
    rake_point_name TEXT NOT NULL DEFAULT '',
    date            TIMESTAMPTZ NOT NULL,
    rr_quantity     NUMERIC(14,3) NOT NULL DEFAULT 0 CHECK (rr_quantity >= 0),
    created_by      TEXT NOT NULL DEFAULT '',
    created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CONSTRAINT rakes_code_key UNIQUE (code)
);
CREATE INDEX IF NOT EXISTS idx_rakes_date ON rakes (date DESC);

CREATE TABLE IF NOT EXISTS accounts (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    type       TEXT NOT NULL CHECK (type IN ('Payal', 'Dealer', 'Retailer', 'Company')),
    contact    TEXT NOT NULL DEFAULT '',
    address    TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS warehouses (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    location   TEXT NOT NULL DEFAULT '',
    capacity   NUMERIC(14,3) NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS trucks (
    id            TEXT PRIMARY KEY,
    number        TEXT NOT NULL,
    driver_name   TEXT NOT NULL DEFAULT '',
    driver_mobile TEXT NOT NULL DEFAULT '',
    owner_name    TEXT NOT NULL DEFAULT '',
    owner_mobile  TEXT NOT NULL DEFAULT '',
    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CONSTRAINT trucks_number_key UNIQUE (number)
);
`,
	},
	{
		Version: "20250101000002",
		Name:    "create_ledger",
		Up: `
CREATE TABLE IF NOT EXISTS transport_documents (
    id                  TEXT PRIMARY KEY,
    number              TEXT NOT NULL,
    variant             TEXT NOT NULL CHECK (variant IN ('INBOUND', 'OUTBOUND')),
    rake_code           TEXT NOT NULL REFERENCES rakes (code),
    destination_kind    TEXT NOT NULL CHECK (destination_kind IN ('ACCOUNT', 'WAREHOUSE')),
    destination_id      TEXT NOT NULL,
    source_warehouse_id TEXT NOT NULL DEFAULT '',
    truck_id            TEXT NOT NULL DEFAULT '',
    date                TIMESTAMPTZ NOT NULL,
    rake_point_name     TEXT NOT NULL DEFAULT '',
    loading_point       TEXT NOT NULL DEFAULT '',
    unloading_point     TEXT NOT NULL DEFAULT '',
    goods_name          TEXT NOT NULL DEFAULT '',
    bags                INT NOT NULL DEFAULT 0,
    kg_per_bag          NUMERIC(14,3) NOT NULL DEFAULT 0,
    quantity            NUMERIC(14,3) NOT NULL CHECK (quantity > 0),
    rate_per_mt         NUMERIC(14,2) NOT NULL DEFAULT 0,
    total_freight       NUMERIC(14,2) NOT NULL DEFAULT 0,
    lr_number           TEXT,
    created_by_role     TEXT NOT NULL DEFAULT '',
    created_by          TEXT NOT NULL DEFAULT '',
    created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CONSTRAINT transport_documents_number_key UNIQUE (number)
);
CREATE UNIQUE INDEX IF NOT EXISTS transport_documents_lr_number_key
    ON transport_documents (lr_number) WHERE lr_number IS NOT NULL;
CREATE INDEX IF NOT EXISTS idx_transport_documents_rake ON transport_documents (rake_code);

CREATE TABLE IF NOT EXISTS stock_movements (
    id           TEXT PRIMARY KEY,
    warehouse_id TEXT NOT NULL REFERENCES warehouses (id),
    document_id  TEXT NOT NULL REFERENCES transport_documents (id),
    direction    TEXT NOT NULL CHECK (direction IN ('IN', 'OUT')),
    quantity     NUMERIC(14,3) NOT NULL CHECK (quantity <> 0),
    date         TIMESTAMPTZ NOT NULL,
    actor        TEXT NOT NULL DEFAULT '',
    notes        TEXT NOT NULL DEFAULT '',
    reversal_of  TEXT REFERENCES stock_movements (id),
    created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE UNIQUE INDEX IF NOT EXISTS stock_movements_reversal_of_key
    ON stock_movements (reversal_of) WHERE reversal_of IS NOT NULL;
CREATE INDEX IF NOT EXISTS idx_stock_movements_document ON stock_movements (document_id);
CREATE INDEX IF NOT EXISTS idx_stock_movements_warehouse ON stock_movements (warehouse_id, created_at DESC);

CREATE TABLE IF NOT EXISTS invoices (
    id                 TEXT PRIMARY KEY,
    number             TEXT NOT NULL,
    document_id        TEXT NOT NULL REFERENCES transport_documents (id),
    amount             NUMERIC(14,2) NOT NULL CHECK (amount > 0),
    tax                NUMERIC(14,2) CHECK (tax >= 0),
    compliance_doc_ref TEXT NOT NULL DEFAULT '',
    issue_date         TIMESTAMPTZ NOT NULL,
    created_by         TEXT NOT NULL DEFAULT '',
    created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CONSTRAINT invoices_number_key UNIQUE (number),
    CONSTRAINT invoices_document_id_key UNIQUE (document_id)
);
`,
	},
	{
		Version: "20250101000003",
		Name:    "create_loading_slips",
		Up: `
CREATE TABLE IF NOT EXISTS loading_slips (
    id                 TEXT PRIMARY KEY,
    rake_code          TEXT NOT NULL REFERENCES rakes (code),
    serial             INT NOT NULL,
    loading_point_name TEXT NOT NULL DEFAULT '',
    destination_name   TEXT NOT NULL DEFAULT '',
    account_id         TEXT NOT NULL DEFAULT '',
    warehouse_id       TEXT NOT NULL DEFAULT '',
    bags               INT NOT NULL DEFAULT 0,
    quantity           NUMERIC(14,3) NOT NULL CHECK (quantity > 0),
    truck_id           TEXT NOT NULL DEFAULT '',
    wagon_number       TEXT NOT NULL DEFAULT '',
    goods_name         TEXT NOT NULL DEFAULT '',
    document_id        TEXT REFERENCES transport_documents (id),
    created_by         TEXT NOT NULL DEFAULT '',
    created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CONSTRAINT loading_slips_rake_serial_key UNIQUE (rake_code, serial)
);
`,
	},
}

// Migrate aplica en orden las migraciones pendientes, cada una en su propia transacción.
// Devuelve las versiones aplicadas en esta llamada.
func Migrate(ctx context.Context, pool *pgxpool.Pool) ([]string, error) {
	if _, err := pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS schema_migrations (
    version    TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}

	var applied []string
	for _, m := range migrations {
		done, err := applyMigration(ctx, pool, m)
		if err != nil {
			return applied, fmt.Errorf("migration %s_%s: %w", m.Version, m.Name, err)
		}
		if done {
			applied = append(applied, m.Version)
		}
	}
	return applied, nil
}

func applyMigration(ctx context.Context, pool *pgxpool.Pool, m migration) (bool, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Serializa migraciones concurrentes de varias instancias.
	if _, err := tx.Exec(ctx, `LOCK TABLE schema_migrations IN EXCLUSIVE MODE`); err != nil {
		return false, err
	}
	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`, m.Version).Scan(&exists); err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	if _, err := tx.Exec(ctx, m.Up); err != nil {
		return false, err
	}
	if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`, m.Version, m.Name); err != nil {
		return false, err
	}
	return true, tx.Commit(ctx)
}

// Versions migraciones conocidas como <versión>_<nombre>, en orden de aplicación.
func Versions() []string {
	out := make([]string, 0, len(migrations))
	for _, m := range migrations {
		out = append(out, m.Version+"_"+m.Name)
	}
	return out
}
