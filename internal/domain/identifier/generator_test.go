package identifier_test

import (
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fims/internal/domain/entity"
	"github.com/jhoicas/fims/internal/domain/identifier"
)

var fixed = time.Date(2026, 1, 17, 10, 30, 15, 123_456_789, time.UTC)

func TestNext_Formato(t *testing.T) {
	g := identifier.NewGenerator(func() time.Time { return fixed })
	assert.Equal(t, "BLT-20260117-103015123", g.DocumentNumber(entity.VariantInbound))
	assert.Equal(t, "BLTO-20260117-103015123", g.DocumentNumber(entity.VariantOutbound))
	assert.Equal(t, "EB-20260117-103015123", g.InvoiceNumber())
}

func TestNext_MismoInstanteNoColisiona(t *testing.T) {
	g := identifier.NewGenerator(func() time.Time { return fixed })
	a := g.Next(identifier.PrefixInbound)
	b := g.Next(identifier.PrefixInbound)
	c := g.Next(identifier.PrefixInbound)
	assert.Equal(t, "BLT-20260117-103015123", a)
	assert.Equal(t, "BLT-20260117-103015124", b)
	assert.Equal(t, "BLT-20260117-103015125", c)
}

func TestNext_RelojQueRetrocede(t *testing.T) {
	calls := 0
	g := identifier.NewGenerator(func() time.Time {
		calls++
		if calls == 1 {
			return fixed
		}
		return fixed.Add(-time.Second)
	})
	a := g.Next("X")
	b := g.Next("X")
	assert.Less(t, a, b, "los números deben seguir ordenados aunque el reloj retroceda")
}

func TestNext_PrefijosIndependientes(t *testing.T) {
	g := identifier.NewGenerator(func() time.Time { return fixed })
	inbound := g.Next(identifier.PrefixInbound)
	outbound := g.Next(identifier.PrefixOutbound)
	assert.True(t, strings.HasSuffix(inbound, "103015123"))
	assert.True(t, strings.HasSuffix(outbound, "103015123"))
}

func TestNext_Concurrente(t *testing.T) {
	g := identifier.NewGenerator(func() time.Time { return fixed })
	const n = 200
	out := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out[i] = g.Next(identifier.PrefixOutbound)
		}(i)
	}
	wg.Wait()

	seen := make(map[string]struct{}, n)
	for _, s := range out {
		_, dup := seen[s]
		require.False(t, dup, "número repetido: %s", s)
		seen[s] = struct{}{}
	}
	sort.Strings(out)
	assert.Equal(t, "BLTO-20260117-103015123", out[0])
}
