package stock

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fims/internal/domain/entity"
)

// Totals sumas de entradas y salidas (las reversiones restan por llevar cantidad negativa).
type Totals struct {
	In  decimal.Decimal
	Out decimal.Decimal
}

// Balance = In - Out.
func (t Totals) Balance() decimal.Decimal {
	return t.In.Sub(t.Out)
}

// Add acumula un movimiento en los totales.
func (t Totals) Add(m *entity.StockMovement) Totals {
	switch m.Direction {
	case entity.DirectionIn:
		t.In = t.In.Add(m.Quantity)
	case entity.DirectionOut:
		t.Out = t.Out.Add(m.Quantity)
	}
	return t
}

// Sum totaliza una lista de movimientos.
func Sum(movs []*entity.StockMovement) Totals {
	t := Totals{In: decimal.Zero, Out: decimal.Zero}
	for _, m := range movs {
		t = t.Add(m)
	}
	return t
}

// Remaining capacidad restante de una builty: capacity - alreadyIn, nunca negativa.
func Remaining(capacity, alreadyIn decimal.Decimal) decimal.Decimal {
	r := capacity.Sub(alreadyIn)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}

// RakeBalance saldo de un rake con la convención de reportes:
// Balance = Receipted - StockIn + StockOut.
type RakeBalance struct {
	RakeCode  string
	Receipted decimal.Decimal
	StockIn   decimal.Decimal
	StockOut  decimal.Decimal
	Balance   decimal.Decimal
}

// NewRakeBalance aplica la convención de signos sobre los totales del rake.
func NewRakeBalance(rakeCode string, receipted decimal.Decimal, t Totals) RakeBalance {
	return RakeBalance{
		RakeCode:  rakeCode,
		Receipted: receipted,
		StockIn:   t.In,
		StockOut:  t.Out,
		Balance:   receipted.Sub(t.In).Add(t.Out),
	}
}

// RakeStock saldo de un rake dentro de una bodega.
type RakeStock struct {
	RakeCode string
	RakeDate time.Time
	Totals   Totals
}

// PickFIFO elige el rake más antiguo (fecha del rake, luego código) con saldo positivo.
func PickFIFO(stocks []RakeStock) (string, bool) {
	sorted := make([]RakeStock, len(stocks))
	copy(sorted, stocks)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].RakeDate.Equal(sorted[j].RakeDate) {
			return sorted[i].RakeDate.Before(sorted[j].RakeDate)
		}
		return sorted[i].RakeCode < sorted[j].RakeCode
	})
	for _, s := range sorted {
		if s.Totals.Balance().IsPositive() {
			return s.RakeCode, true
		}
	}
	return "", false
}
