// Package lock implementa exclusión mutua por clave para el motor del ledger.
package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/fims/internal/domain"
)

// Local bloqueo por clave dentro del proceso. Claves distintas no se bloquean entre sí;
// las entradas se liberan cuando nadie las usa.
type Local struct {
	mu      sync.Mutex
	entries map[string]*entry
	wait    time.Duration
}

type entry struct {
	ch   chan struct{}
	refs int
}

// NewLocal crea el locker. wait > 0 limita la espera por clave.
func NewLocal(wait time.Duration) *Local {
	return &Local{entries: make(map[string]*entry), wait: wait}
}

// Lock espera la clave hasta obtenerla, hasta que venza wait o se cancele ctx
// (domain.ErrLockTimeout en ambos casos).
func (l *Local) Lock(ctx context.Context, key string) (func(), error) {
	if l.wait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.wait)
		defer cancel()
	}

	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		l.entries[key] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(key, e)
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrLockTimeout, key, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.ch
			l.release(key, e)
		})
	}, nil
}

func (l *Local) release(key string, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.entries, key)
	}
}

// size claves con al menos un interesado.
func (l *Local) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
