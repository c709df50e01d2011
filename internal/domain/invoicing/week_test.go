package invoicing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/invoicing"
)

// ── Semana ISO actual ─────────────────────────────────────────────────────────

func TestCurrentISOWeek_Miercoles(t *testing.T) {
	// Miércoles 2026-08-26: la semana va del lunes 24 al domingo 30.
	now := time.Date(2026, 8, 26, 15, 30, 0, 0, time.UTC)
	start, end := invoicing.CurrentISOWeek(now)

	assert.Equal(t, time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 8, 30, 23, 59, 59, 999_000_000, time.UTC), end)
}

func TestCurrentISOWeek_Lunes(t *testing.T) {
	now := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	start, _ := invoicing.CurrentISOWeek(now)
	assert.Equal(t, now, start, "El lunes a medianoche ya pertenece a su propia semana")
}

// TestCurrentISOWeek_Domingo cubre el caso límite del calendario Go: Weekday()
// devuelve 0 para el domingo, pero en la semana ISO el domingo es el día 7.
func TestCurrentISOWeek_Domingo(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	start, end := invoicing.CurrentISOWeek(now)

	assert.Equal(t, time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), start,
		"El domingo cierra la semana, no abre la siguiente")
	assert.Equal(t, time.Date(2026, 8, 30, 23, 59, 59, 999_000_000, time.UTC), end)
}

func TestCurrentISOWeek_ZonaHorariaDelLlamador(t *testing.T) {
	// Lunes 00:30 en Berlín sigue siendo domingo en UTC: manda UTC.
	berlin := time.FixedZone("CEST", 2*60*60)
	now := time.Date(2026, 8, 31, 0, 30, 0, 0, berlin)
	start, _ := invoicing.CurrentISOWeek(now)

	assert.Equal(t, time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), start)
}

// ── Resolución de rango ───────────────────────────────────────────────────────

func TestResolveWeekRange_RangoExplicito(t *testing.T) {
	start, end := invoicing.ResolveWeekRange(
		time.Date(2026, 8, 10, 9, 15, 0, 0, time.UTC),
		time.Date(2026, 8, 14, 18, 0, 0, 0, time.UTC),
		testNow,
	)

	assert.Equal(t, time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC), start,
		"El inicio se normaliza al comienzo del día")
	assert.Equal(t, time.Date(2026, 8, 14, 23, 59, 59, 999_000_000, time.UTC), end,
		"El fin se normaliza al final del día")
}

func TestResolveWeekRange_SinRangoUsaSemanaActual(t *testing.T) {
	wantStart, wantEnd := invoicing.CurrentISOWeek(testNow)

	start, end := invoicing.ResolveWeekRange(time.Time{}, time.Time{}, testNow)
	assert.Equal(t, wantStart, start)
	assert.Equal(t, wantEnd, end)
}

func TestResolveWeekRange_RangoInvertidoUsaSemanaActual(t *testing.T) {
	wantStart, wantEnd := invoicing.CurrentISOWeek(testNow)

	start, end := invoicing.ResolveWeekRange(
		time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
		testNow,
	)
	assert.Equal(t, wantStart, start, "Un rango invertido se ignora, no es un error")
	assert.Equal(t, wantEnd, end)
}

// ── Selección de pedidos ──────────────────────────────────────────────────────

func weekTestDatabase() (*entity.Database, time.Time, time.Time) {
	start := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 30, 23, 59, 59, 999_000_000, time.UTC)

	inWeek := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	before := start.Add(-time.Minute)
	after := end.Add(time.Minute)

	db := entity.NewDatabase()
	db.Orders = []entity.Order{
		{ID: "ord_ok", CustomerID: "cus_1", Status: entity.OrderStatusCompleted, CompletedAt: &inWeek},
		{ID: "ord_edge_start", CustomerID: "cus_1", Status: entity.OrderStatusCompleted, CompletedAt: &start},
		{ID: "ord_edge_end", CustomerID: "cus_1", Status: entity.OrderStatusCompleted, CompletedAt: &end},
		{ID: "ord_before", CustomerID: "cus_1", Status: entity.OrderStatusCompleted, CompletedAt: &before},
		{ID: "ord_after", CustomerID: "cus_1", Status: entity.OrderStatusCompleted, CompletedAt: &after},
		{ID: "ord_new", CustomerID: "cus_1", Status: entity.OrderStatusNew, CompletedAt: &inWeek},
		{ID: "ord_billed", CustomerID: "cus_1", Status: entity.OrderStatusCompleted, CompletedAt: &inWeek, InvoiceID: "inv_1"},
		{ID: "ord_sin_fecha", CustomerID: "cus_1", Status: entity.OrderStatusCompleted},
		{ID: "ord_otro_cliente", CustomerID: "cus_2", Status: entity.OrderStatusCompleted, CompletedAt: &inWeek},
	}
	return db, start, end
}

func TestSelectWeeklyOrders_Filtros(t *testing.T) {
	db, start, end := weekTestDatabase()

	selected := invoicing.SelectWeeklyOrders(db, "cus_1", start, end)

	ids := make([]string, 0, len(selected))
	for _, o := range selected {
		ids = append(ids, o.ID)
	}
	assert.Equal(t, []string{"ord_ok", "ord_edge_start", "ord_edge_end"}, ids,
		"Solo completados, sin facturar y dentro del rango inclusive")
}

func TestSelectWeeklyOrders_BordesInclusivos(t *testing.T) {
	db, start, end := weekTestDatabase()
	selected := invoicing.SelectWeeklyOrders(db, "cus_1", start, end)

	require.GreaterOrEqual(t, len(selected), 3)
	assert.Equal(t, "ord_edge_start", selected[1].ID,
		"CompletedAt exactamente en el inicio del rango es elegible")
	assert.Equal(t, "ord_edge_end", selected[2].ID,
		"CompletedAt exactamente en el fin del rango es elegible")
}

func TestSelectWeeklyOrders_ClienteSinPedidos(t *testing.T) {
	db, start, end := weekTestDatabase()
	assert.Empty(t, invoicing.SelectWeeklyOrders(db, "cus_inexistente", start, end))
}
