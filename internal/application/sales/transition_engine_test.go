package sales_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/internal/application/sales"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/infrastructure/memory"
)

func TestTransition_CaminoFelizComercialYLogistico(t *testing.T) {
	f := newFixture(t)
	id := f.mustCreate(t, portabilityInput()).Sale.ID

	for i, st := range []string{"EN_PROCESO", "PENDIENTE_DOCUMENTACION", "EN_PROCESO", "APROBADO", "ACTIVADO"} {
		e, err := f.transition(id, entity.MachineCommercial, st, "backoffice")
		require.NoError(t, err, st)
		assert.Equal(t, int64(i+2), e.Seq)
	}
	for i, st := range []string{"DESPACHADO", "EN_TRANSITO", "NO_ENTREGADO", "EN_TRANSITO", "ENTREGADO"} {
		e, err := f.transition(id, entity.MachineLogistics, st, "logistica")
		require.NoError(t, err, st)
		assert.Equal(t, int64(i+2), e.Seq)
	}

	hist, err := f.query.History(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, hist.Commercial, 6)
	require.Len(t, hist.Logistics, 6)
	for i := 1; i < len(hist.Commercial); i++ {
		assert.Equal(t, hist.Commercial[i-1].Seq+1, hist.Commercial[i].Seq)
		assert.True(t, hist.Commercial[i].CreatedAt.After(hist.Commercial[i-1].CreatedAt),
			"timestamps estrictamente crecientes aunque el reloj esté fijo")
	}
}

func TestTransition_EstadoTerminalRechazaTodo(t *testing.T) {
	f := newFixture(t)
	id := f.mustCreate(t, esimInput()).Sale.ID

	_, err := f.transition(id, entity.MachineCommercial, "CANCELADO", "backoffice")
	require.NoError(t, err)

	for _, st := range entity.CommercialStates {
		_, err := f.transition(id, entity.MachineCommercial, string(st), "backoffice")
		assert.ErrorIs(t, err, domain.ErrInvalidTransition, string(st))
	}
	hist, err := f.query.History(context.Background(), id)
	require.NoError(t, err)
	assert.Len(t, hist.Commercial, 2, "los rechazos no agregan entradas")
}

func TestTransition_MaquinasIndependientes(t *testing.T) {
	f := newFixture(t)
	id := f.mustCreate(t, portabilityInput()).Sale.ID

	_, err := f.transition(id, entity.MachineCommercial, "RECHAZADO", "backoffice")
	require.NoError(t, err)
	// La venta rechazada igual puede volver por logística.
	_, err = f.transition(id, entity.MachineLogistics, "DEVUELTO", "logistica")
	require.NoError(t, err)

	view, err := f.query.GetSale(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "RECHAZADO", view.CommercialState)
	assert.Equal(t, "DEVUELTO", view.LogisticsState)
}

func TestTransition_EntradaInvalida(t *testing.T) {
	f := newFixture(t)
	id := f.mustCreate(t, portabilityInput()).Sale.ID

	cases := []struct {
		name  string
		in    sales.TransitionInput
		field string
	}{
		{"estado desconocido", sales.TransitionInput{SaleID: id, Machine: entity.MachineCommercial, State: "PERDIDO", ActorID: "x"}, "state"},
		{"estado de la otra máquina", sales.TransitionInput{SaleID: id, Machine: entity.MachineCommercial, State: "DESPACHADO", ActorID: "x"}, "state"},
		{"máquina desconocida", sales.TransitionInput{SaleID: id, Machine: "FACTURACION", State: "EN_PROCESO", ActorID: "x"}, "machine"},
		{"sin actor", sales.TransitionInput{SaleID: id, Machine: entity.MachineCommercial, State: "EN_PROCESO"}, "actor_id"},
		{"id inválido", sales.TransitionInput{SaleID: 0, Machine: entity.MachineCommercial, State: "EN_PROCESO", ActorID: "x"}, "sale_id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.engine.Transition(context.Background(), tc.in)
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Fields[0].Field)
		})
	}
}

func TestTransition_VentaInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.transition(99, entity.MachineCommercial, "EN_PROCESO", "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransition_FallaDePersistenciaNoAgregaEntrada(t *testing.T) {
	f := newFixture(t)
	id := f.mustCreate(t, esimInput()).Sale.ID
	f.store.FailOnWrite(1, errors.New("io"))

	_, err := f.transition(id, entity.MachineCommercial, "EN_PROCESO", "x")
	assert.ErrorIs(t, err, domain.ErrPersistence)

	view, err := f.query.GetSale(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "INICIAL", view.CommercialState)
}

// Muchas solicitudes concurrentes desde el mismo estado: exactamente una gana y el
// historial queda sin huecos ni duplicados.
func TestTransition_ConcurrenciaUnSoloGanador(t *testing.T) {
	f := newFixture(t)
	id := f.mustCreate(t, portabilityInput()).Sale.ID

	const n = 32
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
		errs []error
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := f.transition(id, entity.MachineCommercial, "EN_PROCESO", fmt.Sprintf("actor-%d", i))
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				wins++
				return
			}
			errs = append(errs, err)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	for _, err := range errs {
		assert.True(t, errors.Is(err, domain.ErrInvalidTransition) || errors.Is(err, domain.ErrConcurrentTransition), err)
	}
	hist, err := f.query.History(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, hist.Commercial, 2)
	assert.Equal(t, []int64{1, 2}, []int64{hist.Commercial[0].Seq, hist.Commercial[1].Seq})
}

// Transiciones concurrentes sobre máquinas distintas no se bloquean entre sí.
func TestTransition_ConcurrenciaEntreMaquinas(t *testing.T) {
	f := newFixture(t)
	id := f.mustCreate(t, portabilityInput()).Sale.ID

	var wg sync.WaitGroup
	wg.Add(2)
	var errC, errL error
	go func() {
		defer wg.Done()
		_, errC = f.transition(id, entity.MachineCommercial, "EN_PROCESO", "a")
	}()
	go func() {
		defer wg.Done()
		_, errL = f.transition(id, entity.MachineLogistics, "DESPACHADO", "b")
	}()
	wg.Wait()

	require.NoError(t, errC)
	require.NoError(t, errL)
}

// ──────────────────────────────────────────────────────────────────────────────
// AuditTrailRecorder
// ──────────────────────────────────────────────────────────────────────────────

func TestAuditTrailRecorder_Append(t *testing.T) {
	f := newFixture(t)
	id := f.mustCreate(t, esimInput()).Sale.ID

	rec := sales.NewAuditTrailRecorder()
	rec.SetClock(func() time.Time { return fixedNow.Add(-time.Hour) }) // reloj atrasado

	var entry *entity.StatusEntry
	err := f.store.RunSales(context.Background(), func(repos sales.SalesRepos) error {
		var err error
		entry, err = rec.Append(context.Background(), repos.History, id, entity.MachineCommercial, "EN_PROCESO", "  carga manual ", "auditor")
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), entry.Seq)
	assert.Equal(t, "carga manual", entry.Description)
	assert.Equal(t, fixedNow.Add(time.Microsecond), entry.CreatedAt)
}

func TestAuditTrailRecorder_SinActor(t *testing.T) {
	store := memory.NewStore()
	rec := sales.NewAuditTrailRecorder()
	err := store.RunSales(context.Background(), func(repos sales.SalesRepos) error {
		_, err := rec.Append(context.Background(), repos.History, 1, entity.MachineCommercial, "INICIAL", "", "")
		return err
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
