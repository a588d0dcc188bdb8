package ledger

import (
	"context"

	"github.com/jhoicas/fims/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repositorios atados a ella.
// Si fn retorna error se hace Rollback; si no, Commit. Garantiza que una builty
// outbound nunca exista sin su movimiento ni al revés.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		docRepo repository.TransportDocumentRepository,
		movRepo repository.StockMovementRepository,
		warehouseRepo repository.WarehouseRepository,
	) error) error
}

// Locker exclusión mutua por clave (builty:<id>, warehouse:<id>...).
// unlock debe llamarse siempre; operaciones con claves distintas no se bloquean entre sí.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// Recorder registra decisiones del ledger (métricas). outcome: accepted o el código del rechazo.
type Recorder interface {
	Decision(operation, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) Decision(string, string) {}

// Claves de bloqueo.
func documentKey(id string) string  { return "builty:" + id }
func warehouseKey(id string) string { return "warehouse:" + id }
