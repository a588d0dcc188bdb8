package identifier

import (
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/fims/internal/domain/entity"
)

// Prefijos visibles de los números generados.
const (
	PrefixInbound  = "BLT"
	PrefixOutbound = "BLTO"
	PrefixInvoice  = "EB"
)

// Generator produce números de builty y e-bill derivados del reloj con resolución de
// milisegundos. Si dos números del mismo prefijo caen en el mismo instante (o el reloj
// retrocede) se avanza un milisegundo sobre el último emitido, de modo que los números
// son únicos dentro del proceso y ordenables por creación.
type Generator struct {
	mu   sync.Mutex
	now  func() time.Time
	last map[string]time.Time
}

// NewGenerator construye el generador. now nil = time.Now.
func NewGenerator(now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{now: now, last: make(map[string]time.Time)}
}

// Next devuelve el siguiente número para prefix: PREFIX-YYYYMMDD-HHMMSSmmm.
func (g *Generator) Next(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	t := g.now().Truncate(time.Millisecond)
	if last, ok := g.last[prefix]; ok && !t.After(last) {
		t = last.Add(time.Millisecond)
	}
	g.last[prefix] = t
	return fmt.Sprintf("%s-%s-%s%03d", prefix, t.Format("20060102"), t.Format("150405"), t.Nanosecond()/int(time.Millisecond))
}

// DocumentNumber número de builty según la variante.
func (g *Generator) DocumentNumber(v entity.DocumentVariant) string {
	if v == entity.VariantOutbound {
		return g.Next(PrefixOutbound)
	}
	return g.Next(PrefixInbound)
}

// InvoiceNumber número de e-bill cuando el llamador no lo provee.
func (g *Generator) InvoiceNumber() string {
	return g.Next(PrefixInvoice)
}
