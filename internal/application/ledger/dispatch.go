package ledger

import "context"

// Dispatch registra una salida; si la builty no trae rake se descuenta del más antiguo
// (fecha del rake, luego código) con saldo en la bodega. La elección ocurre bajo el
// bloqueo de la bodega, así dos salidas concurrentes nunca ven el mismo saldo.
func (e *Engine) Dispatch(ctx context.Context, in StockOutInput) (*StockOutResult, error) {
	return e.stockOut(ctx, in, true)
}
