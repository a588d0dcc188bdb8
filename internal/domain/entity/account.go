package entity

import "time"

// Tipos de cuenta (contraparte).
const (
	AccountTypePayal    = "Payal"
	AccountTypeDealer   = "Dealer"
	AccountTypeRetailer = "Retailer"
	AccountTypeCompany  = "Company"
)

// ValidAccountType indica si t es un tipo de cuenta soportado.
func ValidAccountType(t string) bool {
	switch t {
	case AccountTypePayal, AccountTypeDealer, AccountTypeRetailer, AccountTypeCompany:
		return true
	}
	return false
}

// Account contraparte (dealer, retailer o compañía). Dato maestro mutable.
type Account struct {
	ID        string
	Name      string
	Type      string
	Contact   string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
