package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentVariant distingue builties creadas en el rake point (inbound) de las
// creadas en bodega durante un despacho (outbound).
type DocumentVariant string

const (
	VariantInbound  DocumentVariant = "INBOUND"
	VariantOutbound DocumentVariant = "OUTBOUND"
)

// Valid indica si v es una variante conocida.
func (v DocumentVariant) Valid() bool {
	return v == VariantInbound || v == VariantOutbound
}

// DestinationKind tipo de destino de una builty.
type DestinationKind string

const (
	DestinationAccount   DestinationKind = "ACCOUNT"
	DestinationWarehouse DestinationKind = "WAREHOUSE"
)

// Destination variante etiquetada: una builty va a una cuenta o a una bodega, nunca a ambas.
type Destination struct {
	Kind DestinationKind
	ID   string
}

// ToAccount destino hacia una cuenta (dealer, retailer...).
func ToAccount(accountID string) Destination {
	return Destination{Kind: DestinationAccount, ID: accountID}
}

// ToWarehouse destino hacia una bodega.
func ToWarehouse(warehouseID string) Destination {
	return Destination{Kind: DestinationWarehouse, ID: warehouseID}
}

// AccountID devuelve el ID de la cuenta si el destino es una cuenta.
func (d Destination) AccountID() (string, bool) {
	if d.Kind == DestinationAccount {
		return d.ID, true
	}
	return "", false
}

// WarehouseID devuelve el ID de la bodega si el destino es una bodega.
func (d Destination) WarehouseID() (string, bool) {
	if d.Kind == DestinationWarehouse {
		return d.ID, true
	}
	return "", false
}

// Valid exige un tipo conocido y un ID no vacío.
func (d Destination) Valid() bool {
	return (d.Kind == DestinationAccount || d.Kind == DestinationWarehouse) && d.ID != ""
}

// TransportDocument (builty) cubre el movimiento de una carga de camión.
// Inmutable una vez creada; Quantity es la capacidad para entradas contra ella.
type TransportDocument struct {
	ID                string
	Number            string // BLT-... (inbound) / BLTO-... (outbound)
	Variant           DocumentVariant
	RakeCode          string // ancla de trazabilidad, obligatoria
	Destination       Destination
	SourceWarehouseID string // solo outbound: bodega que despacha
	TruckID           string // opcional
	Date              time.Time
	RakePointName     string
	LoadingPoint      string
	UnloadingPoint    string
	GoodsName         string
	Bags              int
	KgPerBag          decimal.Decimal
	Quantity          decimal.Decimal // MT declaradas
	RatePerMT         decimal.Decimal
	TotalFreight      decimal.Decimal
	LRNumber          string
	CreatedByRole     string
	CreatedBy         string
	CreatedAt         time.Time
}
