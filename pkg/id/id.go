// Package id genera identificadores de entidad con TypeID: "prefijo_sufijo",
// ordenables por creación (UUIDv7) y seguros para URLs.
package id

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

// Prefix identifica el tipo de entidad.
type Prefix string

const (
	PrefixRake        Prefix = "rake"
	PrefixAccount     Prefix = "acct"
	PrefixWarehouse   Prefix = "wh"
	PrefixTruck       Prefix = "trk"
	PrefixDocument    Prefix = "bty"
	PrefixLoadingSlip Prefix = "slip"
	PrefixMovement    Prefix = "mov"
	PrefixInvoice     Prefix = "ebill"
)

// New genera un ID nuevo con el prefijo dado. Un prefijo inválido es un error de programación.
func New(prefix Prefix) string {
	tid, err := typeid.Generate(string(prefix))
	if err != nil {
		panic(fmt.Sprintf("id: prefijo inválido %q: %v", prefix, err))
	}
	return tid.String()
}

// HasPrefix valida que s sea un TypeID con el prefijo esperado.
func HasPrefix(s string, expected Prefix) bool {
	tid, err := typeid.Parse(s)
	if err != nil {
		return false
	}
	return tid.Prefix() == string(expected)
}
