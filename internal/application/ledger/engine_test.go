package ledger_test

import (
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fims/internal/application/ledger"
	"github.com/jhoicas/fims/internal/domain"
	"github.com/jhoicas/fims/internal/domain/entity"
)

var day = time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

func TestRecordStockIn_Capacidad(t *testing.T) {
	f := newFixture(t, ledger.Config{})
	f.rake(t, "RK1", day, "500")
	w1 := f.warehouse(t, "W1")
	d1 := f.inbound(t, "RK1", w1, "50")

	res := f.stockIn(t, d1, w1, "10")
	assert.True(t, res.Remaining.Equal(dec("40")))
	res = f.stockIn(t, d1, w1, "35")
	assert.True(t, res.Remaining.Equal(dec("5")))

	_, err := f.engine.RecordStockIn(f.ctx, ledger.StockInInput{DocumentID: d1.ID, WarehouseID: w1, Quantity: dec("10"), Actor: clerk})
	require.ErrorIs(t, err, domain.ErrCapacityExceeded)
	var capErr *domain.CapacityExceededError
	require.True(t, errors.As(err, &capErr))
	assert.True(t, capErr.Remaining.Equal(dec("5")))
	assert.True(t, capErr.Requested.Equal(dec("10")))

	res = f.stockIn(t, d1, w1, "5")
	assert.True(t, res.Remaining.IsZero())

	// Builty completa: cualquier cantidad positiva se rechaza con restante 0.
	_, err = f.engine.RecordStockIn(f.ctx, ledger.StockInInput{DocumentID: d1.ID, WarehouseID: w1, Quantity: dec("0.001"), Actor: clerk})
	require.True(t, errors.As(err, &capErr))
	assert.True(t, capErr.Remaining.IsZero())

	movs, err := f.engine.DocumentMovements(f.ctx, d1.ID)
	require.NoError(t, err)
	assert.Len(t, movs, 3)
	assert.Equal(t, 3, f.rec.count(ledger.OpStockIn, ledger.OutcomeAccepted))
	assert.Equal(t, 2, f.rec.count(ledger.OpStockIn, ledger.OutcomeCapacityExceeded))
}

func TestRecordStockIn_Validaciones(t *testing.T) {
	f := newFixture(t, ledger.Config{})
	f.rake(t, "RK1", day, "500")
	w1 := f.warehouse(t, "W1")
	d1 := f.inbound(t, "RK1", w1, "50")

	cases := []struct {
		name string
		in   ledger.StockInInput
		want error
	}{
		{"cantidad cero", ledger.StockInInput{DocumentID: d1.ID, WarehouseID: w1, Quantity: dec("0")}, domain.ErrInvalidQuantity},
		{"cantidad negativa", ledger.StockInInput{DocumentID: d1.ID, WarehouseID: w1, Quantity: dec("-1")}, domain.ErrInvalidQuantity},
		{"builty inexistente", ledger.StockInInput{DocumentID: "bty_missing", WarehouseID: w1, Quantity: dec("1")}, domain.ErrNotFound},
		{"bodega inexistente", ledger.StockInInput{DocumentID: d1.ID, WarehouseID: "wh_missing", Quantity: dec("1")}, domain.ErrNotFound},
		{"sin builty", ledger.StockInInput{WarehouseID: w1, Quantity: dec("1")}, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.in.Actor = clerk
			_, err := f.engine.RecordStockIn(f.ctx, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	remaining, err := f.engine.RemainingCapacity(f.ctx, d1.ID)
	require.NoError(t, err)
	assert.True(t, remaining.Equal(dec("50")))
}

func TestRecordStockOut_Saldo(t *testing.T) {
	f := newFixture(t, ledger.Config{})
	f.rake(t, "RK1", day, "500")
	w1 := f.warehouse(t, "W1")
	dealer := f.account(t, "Dealer A")
	d1 := f.inbound(t, "RK1", w1, "49.8")
	f.stockIn(t, d1, w1, "49.8")

	balance, err := f.engine.WarehouseBalance(f.ctx, w1, "")
	require.NoError(t, err)
	assert.True(t, balance.Equal(dec("49.8")))

	out, err := f.stockOut(w1, "RK1", dealer, "30")
	require.NoError(t, err)
	assert.True(t, out.Balance.Equal(dec("19.8")))
	assert.Equal(t, entity.VariantOutbound, out.Document.Variant)
	assert.Regexp(t, regexp.MustCompile(`^BLTO-\d{8}-\d{9}$`), out.Document.Number)
	assert.Equal(t, w1, out.Document.SourceWarehouseID)
	assert.True(t, out.Document.Quantity.Equal(dec("30")))
	assert.Equal(t, out.Document.ID, out.Movement.DocumentID)
	assert.Equal(t, entity.DirectionOut, out.Movement.Direction)
	assert.Equal(t, entity.RoleWarehouse, out.Document.CreatedByRole)

	before, err := f.store.Documents().Count(f.ctx)
	require.NoError(t, err)

	_, err = f.stockOut(w1, "RK1", dealer, "25")
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)
	var balErr *domain.InsufficientBalanceError
	require.True(t, errors.As(err, &balErr))
	assert.True(t, balErr.Available.Equal(dec("19.8")))
	assert.Empty(t, balErr.RakeCode)

	// El rechazo no deja builty huérfana.
	after, err := f.store.Documents().Count(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	balance, err = f.engine.WarehouseBalance(f.ctx, w1, "")
	require.NoError(t, err)
	assert.True(t, balance.Equal(dec("19.8")))
}

func TestRecordStockOut_Validaciones(t *testing.T) {
	f := newFixture(t, ledger.Config{})
	f.rake(t, "RK1", day, "500")
	w1 := f.warehouse(t, "W1")
	dealer := f.account(t, "Dealer A")
	d1 := f.inbound(t, "RK1", w1, "20")
	f.stockIn(t, d1, w1, "20")

	_, err := f.stockOut(w1, "RK1", dealer, "0")
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = f.stockOut(w1, "", dealer, "1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.stockOut(w1, "RK-NOPE", dealer, "1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.stockOut(w1, "RK1", "acct_missing", "1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.stockOut("wh_missing", "RK1", dealer, "1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Destino igual al origen.
	_, err = f.engine.RecordStockOut(f.ctx, ledger.StockOutInput{
		WarehouseID: w1,
		Quantity:    dec("1"),
		Document:    &entity.TransportDocument{RakeCode: "RK1", Destination: entity.ToWarehouse(w1)},
		Actor:       clerk,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Cantidad de la builty distinta a la de la salida.
	_, err = f.engine.RecordStockOut(f.ctx, ledger.StockOutInput{
		WarehouseID: w1,
		Quantity:    dec("2"),
		Document:    &entity.TransportDocument{RakeCode: "RK1", Destination: entity.ToAccount(dealer), Quantity: dec("3")},
		Actor:       clerk,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Una builty inbound no sale por RecordStockOut.
	_, err = f.engine.RecordStockOut(f.ctx, ledger.StockOutInput{
		WarehouseID: w1,
		Quantity:    dec("2"),
		Document:    &entity.TransportDocument{Variant: entity.VariantInbound, RakeCode: "RK1", Destination: entity.ToAccount(dealer)},
		Actor:       clerk,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordStockOut_TransferenciaEntreBodegas(t *testing.T) {
	f := newFixture(t, ledger.Config{})
	f.rake(t, "RK1", day, "500")
	w1 := f.warehouse(t, "W1")
	w2 := f.warehouse(t, "W2")
	d1 := f.inbound(t, "RK1", w1, "40")
	f.stockIn(t, d1, w1, "40")

	out, err := f.engine.RecordStockOut(f.ctx, ledger.StockOutInput{
		WarehouseID: w1,
		Quantity:    dec("15"),
		Document:    &entity.TransportDocument{RakeCode: "RK1", Destination: entity.ToWarehouse(w2)},
		Actor:       clerk,
	})
	require.NoError(t, err)

	// La builty outbound sirve de capacidad para la entrada en la bodega destino.
	res := f.stockIn(t, out.Document, w2, "15")
	assert.True(t, res.Remaining.IsZero())

	b1, err := f.engine.WarehouseBalance(f.ctx, w1, "RK1")
	require.NoError(t, err)
	b2, err := f.engine.WarehouseBalance(f.ctx, w2, "RK1")
	require.NoError(t, err)
	assert.True(t, b1.Equal(dec("25")))
	assert.True(t, b2.Equal(dec("15")))
}

func TestRakeBalance_Convencion(t *testing.T) {
	f := newFixture(t, ledger.Config{})
	f.rake(t, "RK1", day, "500")
	w1 := f.warehouse(t, "W1")
	dealer := f.account(t, "Dealer A")

	a := f.inbound(t, "RK1", w1, "60")
	b := f.inbound(t, "RK1", w1, "40")
	f.stockIn(t, a, w1, "60")
	f.stockIn(t, b, w1, "40")
	_, err := f.stockOut(w1, "RK1", dealer, "30")
	require.NoError(t, err)

	bal, err := f.engine.RakeBalance(f.ctx, "RK1")
	require.NoError(t, err)
	assert.Equal(t, "RK1", bal.RakeCode)
	assert.True(t, bal.Receipted.Equal(dec("500")))
	assert.True(t, bal.StockIn.Equal(dec("100")))
	assert.True(t, bal.StockOut.Equal(dec("30")))
	assert.True(t, bal.Balance.Equal(dec("430")))

	_, err = f.engine.RakeBalance(f.ctx, "RK-NOPE")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRakeSummary_MasRecientesPrimero(t *testing.T) {
	f := newFixture(t, ledger.Config{})
	f.rake(t, "RK-OLD", day, "100")
	f.rake(t, "RK-NEW", day.AddDate(0, 0, 3), "200")

	summary, err := f.engine.RakeSummary(f.ctx)
	require.NoError(t, err)
	require.Len(t, summary, 2)
	assert.Equal(t, "RK-NEW", summary[0].RakeCode)
	assert.True(t, summary[0].Balance.Equal(dec("200")))
	assert.Equal(t, "RK-OLD", summary[1].RakeCode)
}

func TestConcurrencia_CapacidadNuncaSeExcede(t *testing.T) {
	f := newFixture(t, ledger.Config{})
	f.rake(t, "RK1", day, "500")
	w1 := f.warehouse(t, "W1")
	d1 := f.inbound(t, "RK1", w1, "10")

	const workers = 50
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
		rejected int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.engine.RecordStockIn(f.ctx, ledger.StockInInput{DocumentID: d1.ID, WarehouseID: w1, Quantity: dec("1"), Actor: clerk})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				accepted++
			case errors.Is(err, domain.ErrCapacityExceeded):
				rejected++
			default:
				t.Errorf("error inesperado: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, accepted)
	assert.Equal(t, workers-10, rejected)
	remaining, err := f.engine.RemainingCapacity(f.ctx, d1.ID)
	require.NoError(t, err)
	assert.True(t, remaining.IsZero())
}

func TestConcurrencia_SaldoNuncaNegativo(t *testing.T) {
	f := newFixture(t, ledger.Config{})
	f.rake(t, "RK1", day, "500")
	w1 := f.warehouse(t, "W1")
	dealer := f.account(t, "Dealer A")
	d1 := f.inbound(t, "RK1", w1, "10")
	f.stockIn(t, d1, w1, "10")

	const workers = 30
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
		numbers  = make(map[string]bool)
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := f.stockOut(w1, "RK1", dealer, "1")
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				accepted++
				numbers[out.Document.Number] = true
				return
			}
			assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, accepted)
	assert.Len(t, numbers, 10)
	balance, err := f.engine.WarehouseBalance(f.ctx, w1, "")
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}

func TestConcurrencia_BuiltiesDistintasEnParalelo(t *testing.T) {
	f := newFixture(t, ledger.Config{})
	f.rake(t, "RK1", day, "500")
	w1 := f.warehouse(t, "W1")
	docs := make([]*entity.TransportDocument, 5)
	for i := range docs {
		docs[i] = f.inbound(t, "RK1", w1, "4")
	}

	var wg sync.WaitGroup
	for _, d := range docs {
		for i := 0; i < 6; i++ {
			wg.Add(1)
			go func(d *entity.TransportDocument) {
				defer wg.Done()
				_, _ = f.engine.RecordStockIn(f.ctx, ledger.StockInInput{DocumentID: d.ID, WarehouseID: w1, Quantity: dec("1"), Actor: clerk})
			}(d)
		}
	}
	wg.Wait()

	for _, d := range docs {
		remaining, err := f.engine.RemainingCapacity(f.ctx, d.ID)
		require.NoError(t, err)
		assert.True(t, remaining.IsZero())
	}
	balance, err := f.engine.WarehouseBalance(f.ctx, w1, "")
	require.NoError(t, err)
	assert.True(t, balance.Equal(dec("20")))
}

func TestConsultasIdempotentes(t *testing.T) {
	f := newFixture(t, ledger.Config{})
	f.rake(t, "RK1", day, "500")
	w1 := f.warehouse(t, "W1")
	d1 := f.inbound(t, "RK1", w1, "50")
	f.stockIn(t, d1, w1, "12.5")

	r1, err := f.engine.RemainingCapacity(f.ctx, d1.ID)
	require.NoError(t, err)
	r2, err := f.engine.RemainingCapacity(f.ctx, d1.ID)
	require.NoError(t, err)
	assert.True(t, r1.Equal(r2))

	b1, err := f.engine.WarehouseBalance(f.ctx, w1, "RK1")
	require.NoError(t, err)
	b2, err := f.engine.WarehouseBalance(f.ctx, w1, "RK1")
	require.NoError(t, err)
	assert.True(t, b1.Equal(b2))
	assert.True(t, b1.Equal(dec("12.5")))

	_, err = f.engine.WarehouseBalance(f.ctx, "wh_missing", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReverseMovement(t *testing.T) {
	f := newFixture(t, ledger.Config{})
	f.rake(t, "RK1", day, "500")
	w1 := f.warehouse(t, "W1")
	dealer := f.account(t, "Dealer A")
	d1 := f.inbound(t, "RK1", w1, "50")
	in := f.stockIn(t, d1, w1, "50")

	// Revertir la entrada libera capacidad y baja el saldo.
	rev, err := f.engine.ReverseMovement(f.ctx, ledger.ReverseInput{MovementID: in.Movement.ID, Actor: clerk, Notes: "peso errado"})
	require.NoError(t, err)
	assert.Equal(t, in.Movement.ID, rev.ReversalOf)
	assert.Equal(t, entity.DirectionIn, rev.Direction)
	assert.True(t, rev.Quantity.Equal(dec("-50")))

	remaining, err := f.engine.RemainingCapacity(f.ctx, d1.ID)
	require.NoError(t, err)
	assert.True(t, remaining.Equal(dec("50")))

	_, err = f.engine.ReverseMovement(f.ctx, ledger.ReverseInput{MovementID: in.Movement.ID, Actor: clerk})
	assert.ErrorIs(t, err, domain.ErrAlreadyReversed)

	_, err = f.engine.ReverseMovement(f.ctx, ledger.ReverseInput{MovementID: rev.ID, Actor: clerk})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.engine.ReverseMovement(f.ctx, ledger.ReverseInput{MovementID: "mov_missing", Actor: clerk})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Revertir una entrada ya despachada dejaría la bodega en negativo.
	in2 := f.stockIn(t, d1, w1, "20")
	_, err = f.stockOut(w1, "RK1", dealer, "15")
	require.NoError(t, err)
	_, err = f.engine.ReverseMovement(f.ctx, ledger.ReverseInput{MovementID: in2.Movement.ID, Actor: clerk})
	var balErr *domain.InsufficientBalanceError
	require.True(t, errors.As(err, &balErr))
	assert.True(t, balErr.Available.Equal(dec("5")))

	// Revertir una salida devuelve el stock.
	movs, err := f.engine.WarehouseMovements(f.ctx, w1, 1, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	require.Equal(t, entity.DirectionOut, movs[0].Direction)
	_, err = f.engine.ReverseMovement(f.ctx, ledger.ReverseInput{MovementID: movs[0].ID, Actor: clerk})
	require.NoError(t, err)
	balance, err := f.engine.WarehouseBalance(f.ctx, w1, "")
	require.NoError(t, err)
	assert.True(t, balance.Equal(dec("20")))
}

func TestStrictRakeScope(t *testing.T) {
	for _, strict := range []bool{false, true} {
		f := newFixture(t, ledger.Config{StrictRakeScope: strict})
		f.rake(t, "RK1", day, "500")
		f.rake(t, "RK2", day.AddDate(0, 0, 1), "500")
		w1 := f.warehouse(t, "W1")
		dealer := f.account(t, "Dealer A")
		f.stockIn(t, f.inbound(t, "RK1", w1, "10"), w1, "10")
		f.stockIn(t, f.inbound(t, "RK2", w1, "5"), w1, "5")

		_, err := f.stockOut(w1, "RK2", dealer, "12")
		if !strict {
			assert.NoError(t, err)
			continue
		}
		var balErr *domain.InsufficientBalanceError
		require.True(t, errors.As(err, &balErr))
		assert.Equal(t, "RK2", balErr.RakeCode)
		assert.True(t, balErr.Available.Equal(dec("5")))
	}
}

func TestDispatch_FIFO(t *testing.T) {
	f := newFixture(t, ledger.Config{})
	f.rake(t, "RK-NEW", day.AddDate(0, 0, 5), "500")
	f.rake(t, "RK-OLD", day, "500")
	w1 := f.warehouse(t, "W1")
	dealer := f.account(t, "Dealer A")
	f.stockIn(t, f.inbound(t, "RK-NEW", w1, "10"), w1, "10")
	f.stockIn(t, f.inbound(t, "RK-OLD", w1, "4"), w1, "4")

	dispatch := func(qty string) (*ledger.StockOutResult, error) {
		return f.engine.Dispatch(f.ctx, ledger.StockOutInput{
			WarehouseID: w1,
			Quantity:    dec(qty),
			Document:    &entity.TransportDocument{Destination: entity.ToAccount(dealer)},
			Actor:       clerk,
		})
	}

	out, err := dispatch("4")
	require.NoError(t, err)
	assert.Equal(t, "RK-OLD", out.Document.RakeCode)

	out, err = dispatch("3")
	require.NoError(t, err)
	assert.Equal(t, "RK-NEW", out.Document.RakeCode)

	rake, err := f.resolver.TraceToRake(f.ctx, out.Document.ID)
	require.NoError(t, err)
	assert.Equal(t, "RK-NEW", rake)

	_, err = dispatch("8")
	var balErr *domain.InsufficientBalanceError
	require.True(t, errors.As(err, &balErr))
	assert.True(t, balErr.Available.Equal(dec("7")))

	empty := f.warehouse(t, "W-EMPTY")
	_, err = f.engine.Dispatch(f.ctx, ledger.StockOutInput{
		WarehouseID: empty,
		Quantity:    dec("1"),
		Document:    &entity.TransportDocument{Destination: entity.ToAccount(dealer)},
		Actor:       clerk,
	})
	require.True(t, errors.As(err, &balErr))
	assert.True(t, balErr.Available.IsZero())
}

func TestDispatch_FIFOConcurrente(t *testing.T) {
	f := newFixture(t, ledger.Config{})
	w1 := f.warehouse(t, "W1")
	dealer := f.account(t, "Dealer A")
	codes := []string{"RK-A", "RK-B", "RK-C", "RK-D", "RK-E"}
	for i, code := range codes {
		f.rake(t, code, day.AddDate(0, 0, i), "500")
		f.stockIn(t, f.inbound(t, code, w1, "10"), w1, "10")
	}

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		start = make(chan struct{})
		got   = make(map[string]int)
	)
	for range codes {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			out, err := f.engine.Dispatch(f.ctx, ledger.StockOutInput{
				WarehouseID: w1,
				Quantity:    dec("10"),
				Document:    &entity.TransportDocument{Destination: entity.ToAccount(dealer)},
				Actor:       clerk,
			})
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			got[out.Document.RakeCode]++
			mu.Unlock()
		}()
	}
	close(start)
	wg.Wait()

	// Cada salida tomó un rake distinto y ninguno quedó en negativo.
	assert.Len(t, got, len(codes))
	for _, code := range codes {
		assert.Equal(t, 1, got[code], code)
		balance, err := f.engine.WarehouseBalance(f.ctx, w1, code)
		require.NoError(t, err)
		assert.True(t, balance.IsZero(), code)
	}
}

func TestRecordStockOut_NoModificaLaBuiltyDelLlamador(t *testing.T) {
	f := newFixture(t, ledger.Config{})
	f.rake(t, "RK1", day, "500")
	w1 := f.warehouse(t, "W1")
	dealer := f.account(t, "Dealer A")
	f.stockIn(t, f.inbound(t, "RK1", w1, "10"), w1, "10")

	untouched := func(doc *entity.TransportDocument, rakeCode string) {
		t.Helper()
		assert.Empty(t, doc.ID)
		assert.Empty(t, doc.Number)
		assert.Empty(t, doc.Variant)
		assert.Empty(t, doc.SourceWarehouseID)
		assert.Empty(t, doc.LRNumber)
		assert.Equal(t, rakeCode, doc.RakeCode)
		assert.True(t, doc.Quantity.IsZero())
	}

	doc := &entity.TransportDocument{RakeCode: "RK1", Destination: entity.ToAccount(dealer)}
	_, err := f.engine.RecordStockOut(f.ctx, ledger.StockOutInput{WarehouseID: w1, Quantity: dec("25"), Document: doc, Actor: clerk})
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)
	untouched(doc, "RK1")

	fifo := &entity.TransportDocument{Destination: entity.ToAccount(dealer)}
	_, err = f.engine.Dispatch(f.ctx, ledger.StockOutInput{WarehouseID: w1, Quantity: dec("25"), Document: fifo, Actor: clerk})
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)
	untouched(fifo, "")

	out, err := f.engine.Dispatch(f.ctx, ledger.StockOutInput{WarehouseID: w1, Quantity: dec("4"), Document: fifo, Actor: clerk})
	require.NoError(t, err)
	assert.NotSame(t, fifo, out.Document)
	assert.Equal(t, "RK1", out.Document.RakeCode)
	assert.NotEmpty(t, out.Document.ID)
	untouched(fifo, "")

	in := &entity.TransportDocument{RakeCode: "RK1", Destination: entity.ToWarehouse(w1), Quantity: dec("5")}
	created, err := f.engine.CreateInboundDocument(f.ctx, in, rakeOps)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Empty(t, in.ID)
	assert.Empty(t, in.Number)
}

func TestCantidadesNoRepresentables(t *testing.T) {
	f := newFixture(t, ledger.Config{})
	f.rake(t, "RK1", day, "500")
	w1 := f.warehouse(t, "W1")
	dealer := f.account(t, "Dealer A")
	d1 := f.inbound(t, "RK1", w1, "50")

	for _, q := range []string{"10.0004", "0.0004", "100000000000"} {
		_, err := f.engine.RecordStockIn(f.ctx, ledger.StockInInput{DocumentID: d1.ID, WarehouseID: w1, Quantity: dec(q), Actor: clerk})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity, q)

		_, err = f.engine.CreateInboundDocument(f.ctx, &entity.TransportDocument{
			RakeCode: "RK1", Destination: entity.ToWarehouse(w1), Quantity: dec(q),
		}, rakeOps)
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity, q)
	}

	// La capacidad restante no cambia por los rechazos.
	remaining, err := f.engine.RemainingCapacity(f.ctx, d1.ID)
	require.NoError(t, err)
	assert.True(t, remaining.Equal(dec("50")))

	res := f.stockIn(t, d1, w1, "10.500")
	assert.True(t, res.Remaining.Equal(dec("39.5")))

	for _, q := range []string{"1.0004", "0.0004"} {
		_, err := f.stockOut(w1, "RK1", dealer, q)
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity, q)
		_, err = f.engine.Dispatch(f.ctx, ledger.StockOutInput{
			WarehouseID: w1,
			Quantity:    dec(q),
			Document:    &entity.TransportDocument{Destination: entity.ToAccount(dealer)},
			Actor:       clerk,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity, q)
	}
	balance, err := f.engine.WarehouseBalance(f.ctx, w1, "")
	require.NoError(t, err)
	assert.True(t, balance.Equal(dec("10.5")))
}

func TestReverseMovement_StrictRakeScope(t *testing.T) {
	for _, strict := range []bool{false, true} {
		f := newFixture(t, ledger.Config{StrictRakeScope: strict})
		f.rake(t, "RK1", day, "500")
		f.rake(t, "RK2", day, "500")
		w1 := f.warehouse(t, "W1")
		dealer := f.account(t, "Dealer A")
		in1 := f.stockIn(t, f.inbound(t, "RK1", w1, "10"), w1, "10")
		f.stockIn(t, f.inbound(t, "RK2", w1, "10"), w1, "10")
		_, err := f.stockOut(w1, "RK1", dealer, "8")
		require.NoError(t, err)

		// La bodega tiene 12 pero RK1 solo 2.
		_, err = f.engine.ReverseMovement(f.ctx, ledger.ReverseInput{MovementID: in1.Movement.ID, Actor: clerk})
		if !strict {
			assert.NoError(t, err)
			continue
		}
		var balErr *domain.InsufficientBalanceError
		require.True(t, errors.As(err, &balErr))
		assert.Equal(t, "RK1", balErr.RakeCode)
		assert.True(t, balErr.Available.Equal(dec("2")))

		balance, err := f.engine.WarehouseBalance(f.ctx, w1, "RK1")
		require.NoError(t, err)
		assert.True(t, balance.Equal(dec("2")))
	}
}

func TestCreateInboundDocument(t *testing.T) {
	f := newFixture(t, ledger.Config{LRNumberStart: 1001})
	f.rake(t, "RK1", day, "500")
	w1 := f.warehouse(t, "W1")

	doc, err := f.engine.CreateInboundDocument(f.ctx, &entity.TransportDocument{
		RakeCode:    "RK1",
		Destination: entity.ToWarehouse(w1),
		Quantity:    dec("25"),
		RatePerMT:   dec("120"),
	}, rakeOps)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^BLT-\d{8}-\d{9}$`), doc.Number)
	assert.Equal(t, entity.VariantInbound, doc.Variant)
	assert.Equal(t, "1001", doc.LRNumber)
	assert.True(t, doc.TotalFreight.Equal(dec("3000")))
	assert.Equal(t, entity.RoleRakePoint, doc.CreatedByRole)

	next := f.inbound(t, "RK1", w1, "5")
	assert.Equal(t, "1002", next.LRNumber)
	assert.NotEqual(t, doc.Number, next.Number)

	_, err = f.engine.CreateInboundDocument(f.ctx, &entity.TransportDocument{
		RakeCode: "RK1", Destination: entity.ToWarehouse(w1), Quantity: dec("5"), Number: doc.Number,
	}, rakeOps)
	var uerr *domain.UniquenessError
	require.True(t, errors.As(err, &uerr))
	assert.Equal(t, "number", uerr.Field)

	cases := []struct {
		name string
		doc  *entity.TransportDocument
		want error
	}{
		{"cantidad cero", &entity.TransportDocument{RakeCode: "RK1", Destination: entity.ToWarehouse(w1)}, domain.ErrInvalidQuantity},
		{"sin rake", &entity.TransportDocument{Destination: entity.ToWarehouse(w1), Quantity: dec("1")}, domain.ErrInvalidInput},
		{"rake inexistente", &entity.TransportDocument{RakeCode: "RK9", Destination: entity.ToWarehouse(w1), Quantity: dec("1")}, domain.ErrNotFound},
		{"sin destino", &entity.TransportDocument{RakeCode: "RK1", Quantity: dec("1")}, domain.ErrInvalidInput},
		{"outbound", &entity.TransportDocument{Variant: entity.VariantOutbound, RakeCode: "RK1", Destination: entity.ToWarehouse(w1), Quantity: dec("1")}, domain.ErrInvalidInput},
		{"camión inexistente", &entity.TransportDocument{RakeCode: "RK1", Destination: entity.ToWarehouse(w1), Quantity: dec("1"), TruckID: "trk_missing"}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.engine.CreateInboundDocument(f.ctx, tc.doc, rakeOps)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, ledger.OutcomeAccepted, ledger.Outcome(nil))
	assert.Equal(t, ledger.OutcomeCapacityExceeded, ledger.Outcome(&domain.CapacityExceededError{}))
	assert.Equal(t, ledger.OutcomeDuplicate, ledger.Outcome(&domain.UniquenessError{}))
	assert.Equal(t, ledger.OutcomeDuplicateInvoice, ledger.Outcome(domain.ErrDuplicateInvoice))
	assert.Equal(t, ledger.OutcomeError, ledger.Outcome(errors.New("conexión perdida")))
	assert.True(t, ledger.IsBusinessRule(domain.ErrNotFound))
	assert.False(t, ledger.IsBusinessRule(domain.ErrLockTimeout))
}
