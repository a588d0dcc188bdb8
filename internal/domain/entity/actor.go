package entity

// Roles de los actores que escriben en el ledger.
const (
	RoleAdmin      = "Admin"
	RoleRakePoint  = "RakePoint"
	RoleWarehouse  = "Warehouse"
	RoleAccountant = "Accountant"
)

// Actor identidad opaca para auditoría; la valida la capa de sesión.
type Actor struct {
	ID   string
	Role string
}

// String devuelve "id (rol)" o solo el id si no hay rol.
func (a Actor) String() string {
	if a.Role == "" {
		return a.ID
	}
	return a.ID + " (" + a.Role + ")"
}

// IsValidRole indica si role es uno de los roles conocidos.
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleRakePoint, RoleWarehouse, RoleAccountant:
		return true
	}
	return false
}
