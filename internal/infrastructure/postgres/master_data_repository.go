package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/fims/internal/domain"
	"github.com/jhoicas/fims/internal/domain/entity"
	"github.com/jhoicas/fims/internal/domain/repository"
)

var (
	_ repository.AccountRepository   = (*AccountRepo)(nil)
	_ repository.WarehouseRepository = (*WarehouseRepo)(nil)
	_ repository.TruckRepository     = (*TruckRepo)(nil)
)

// AccountRepo implementación del puerto AccountRepository sobre PostgreSQL.
type AccountRepo struct {
	q Querier
}

// NewAccountRepository construye el adaptador de persistencia para cuentas.
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

// Create persiste una nueva cuenta.
func (r *AccountRepo) Create(ctx context.Context, a *entity.Account) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO accounts (id, name, type, contact, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.Name, a.Type, a.Contact, a.Address, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return translateWriteError(err, "insert account", nil)
	}
	return nil
}

// GetByID obtiene una cuenta por ID.
func (r *AccountRepo) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	var a entity.Account
	err := r.q.QueryRow(ctx, `
		SELECT id, name, type, contact, address, created_at, updated_at
		FROM accounts WHERE id = $1`, id,
	).Scan(&a.ID, &a.Name, &a.Type, &a.Contact, &a.Address, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &a, nil
}

// Update actualiza una cuenta existente.
func (r *AccountRepo) Update(ctx context.Context, a *entity.Account) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE accounts SET name = $2, type = $3, contact = $4, address = $5, updated_at = $6
		WHERE id = $1`,
		a.ID, a.Name, a.Type, a.Contact, a.Address, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista cuentas por nombre; accountType vacío = todas.
func (r *AccountRepo) List(ctx context.Context, accountType string, limit, offset int) ([]*entity.Account, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, name, type, contact, address, created_at, updated_at
		FROM accounts WHERE ($1 = '' OR type = $1)
		ORDER BY name ASC LIMIT $2 OFFSET $3`, accountType, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()
	out := []*entity.Account{}
	for rows.Next() {
		var a entity.Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Type, &a.Contact, &a.Address, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador de persistencia para bodegas.
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

const warehouseColumns = `id, name, location, capacity, created_at, updated_at`

// Create persiste una nueva bodega.
func (r *WarehouseRepo) Create(ctx context.Context, w *entity.Warehouse) error {
	_, err := r.q.Exec(ctx, `INSERT INTO warehouses (`+warehouseColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		w.ID, w.Name, w.Location, w.Capacity, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return translateWriteError(err, "insert warehouse", nil)
	}
	return nil
}

// GetByID obtiene una bodega por ID.
func (r *WarehouseRepo) GetByID(ctx context.Context, id string) (*entity.Warehouse, error) {
	return r.get(ctx, `SELECT `+warehouseColumns+` FROM warehouses WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila hasta el fin de la transacción; serializa las salidas de la bodega.
func (r *WarehouseRepo) GetForUpdate(ctx context.Context, id string) (*entity.Warehouse, error) {
	return r.get(ctx, `SELECT `+warehouseColumns+` FROM warehouses WHERE id = $1 FOR NO KEY UPDATE`, id)
}

func (r *WarehouseRepo) get(ctx context.Context, query, id string) (*entity.Warehouse, error) {
	var w entity.Warehouse
	err := r.q.QueryRow(ctx, query, id).Scan(&w.ID, &w.Name, &w.Location, &w.Capacity, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return &w, nil
}

// Update actualiza una bodega existente.
func (r *WarehouseRepo) Update(ctx context.Context, w *entity.Warehouse) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE warehouses SET name = $2, location = $3, capacity = $4, updated_at = $5
		WHERE id = $1`,
		w.ID, w.Name, w.Location, w.Capacity, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update warehouse: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista bodegas por nombre con paginación.
func (r *WarehouseRepo) List(ctx context.Context, limit, offset int) ([]*entity.Warehouse, error) {
	rows, err := r.q.Query(ctx, `SELECT `+warehouseColumns+` FROM warehouses
		ORDER BY name ASC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()
	out := []*entity.Warehouse{}
	for rows.Next() {
		var w entity.Warehouse
		if err := rows.Scan(&w.ID, &w.Name, &w.Location, &w.Capacity, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		out = append(out, &w)
	}
	return out, rows.Err()
}

// TruckRepo implementación del puerto TruckRepository sobre PostgreSQL.
type TruckRepo struct {
	q Querier
}

// NewTruckRepository construye el adaptador de persistencia para camiones.
func NewTruckRepository(q Querier) *TruckRepo {
	return &TruckRepo{q: q}
}

const truckColumns = `id, number, driver_name, driver_mobile, owner_name, owner_mobile, created_at, updated_at`

// Create persiste un camión; la placa repetida es UniquenessError.
func (r *TruckRepo) Create(ctx context.Context, t *entity.Truck) error {
	_, err := r.q.Exec(ctx, `INSERT INTO trucks (`+truckColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.ID, t.Number, t.DriverName, t.DriverMobile, t.OwnerName, t.OwnerMobile, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return translateWriteError(err, "insert truck", map[string]string{"number": t.Number})
	}
	return nil
}

func (r *TruckRepo) GetByID(ctx context.Context, id string) (*entity.Truck, error) {
	return r.get(ctx, `SELECT `+truckColumns+` FROM trucks WHERE id = $1`, id)
}

func (r *TruckRepo) GetByNumber(ctx context.Context, number string) (*entity.Truck, error) {
	return r.get(ctx, `SELECT `+truckColumns+` FROM trucks WHERE number = $1`, number)
}

func (r *TruckRepo) get(ctx context.Context, query, arg string) (*entity.Truck, error) {
	t, err := scanTruck(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get truck: %w", err)
	}
	return t, nil
}

// Update actualiza un camión existente.
func (r *TruckRepo) Update(ctx context.Context, t *entity.Truck) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE trucks SET number = $2, driver_name = $3, driver_mobile = $4,
			owner_name = $5, owner_mobile = $6, updated_at = $7
		WHERE id = $1`,
		t.ID, t.Number, t.DriverName, t.DriverMobile, t.OwnerName, t.OwnerMobile, t.UpdatedAt,
	)
	if err != nil {
		return translateWriteError(err, "update truck", map[string]string{"number": t.Number})
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista camiones por placa.
func (r *TruckRepo) List(ctx context.Context, limit, offset int) ([]*entity.Truck, error) {
	rows, err := r.q.Query(ctx, `SELECT `+truckColumns+` FROM trucks
		ORDER BY number ASC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list trucks: %w", err)
	}
	defer rows.Close()
	out := []*entity.Truck{}
	for rows.Next() {
		t, err := scanTruck(rows)
		if err != nil {
			return nil, fmt.Errorf("scan truck: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func scanTruck(row pgx.Row) (*entity.Truck, error) {
	var t entity.Truck
	if err := row.Scan(&t.ID, &t.Number, &t.DriverName, &t.DriverMobile, &t.OwnerName, &t.OwnerMobile, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
