package entity

import "time"

// Truck vehículo de transporte con datos de conductor y dueño.
type Truck struct {
	ID           string
	Number       string // placa, única
	DriverName   string
	DriverMobile string
	OwnerName    string
	OwnerMobile  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
