package dto

import "time"

// CreateAccountRequest entrada para crear una cuenta.
type CreateAccountRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Type    string `json:"type" validate:"required,oneof=Payal Dealer Retailer Company"`
	Contact string `json:"contact" validate:"max=100"`
	Address string `json:"address" validate:"max=300"`
}

// UpdateAccountRequest entrada para actualizar una cuenta (campos opcionales).
type UpdateAccountRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Type    *string `json:"type" validate:"omitempty,oneof=Payal Dealer Retailer Company"`
	Contact *string `json:"contact" validate:"omitempty,max=100"`
	Address *string `json:"address" validate:"omitempty,max=300"`
}

// AccountResponse salida de una cuenta.
type AccountResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Contact   string    `json:"contact,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AccountListResponse lista paginada de cuentas.
type AccountListResponse struct {
	Items []AccountResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CreateTruckRequest entrada para registrar un camión.
type CreateTruckRequest struct {
	Number       string `json:"number" validate:"required,min=1,max=20"`
	DriverName   string `json:"driver_name" validate:"max=200"`
	DriverMobile string `json:"driver_mobile" validate:"max=20"`
	OwnerName    string `json:"owner_name" validate:"max=200"`
	OwnerMobile  string `json:"owner_mobile" validate:"max=20"`
}

// UpdateTruckRequest entrada para actualizar un camión.
type UpdateTruckRequest struct {
	DriverName   *string `json:"driver_name" validate:"omitempty,max=200"`
	DriverMobile *string `json:"driver_mobile" validate:"omitempty,max=20"`
	OwnerName    *string `json:"owner_name" validate:"omitempty,max=200"`
	OwnerMobile  *string `json:"owner_mobile" validate:"omitempty,max=20"`
}

// TruckResponse salida de un camión.
type TruckResponse struct {
	ID           string    `json:"id"`
	Number       string    `json:"number"`
	DriverName   string    `json:"driver_name,omitempty"`
	DriverMobile string    `json:"driver_mobile,omitempty"`
	OwnerName    string    `json:"owner_name,omitempty"`
	OwnerMobile  string    `json:"owner_mobile,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TruckListResponse lista paginada de camiones.
type TruckListResponse struct {
	Items []TruckResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
