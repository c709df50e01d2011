package invoicing

import (
	"time"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// Todos los límites de semana se calculan en UTC. Mezclar UTC con hora local
// produce errores de un día en los bordes; el invariante es UTC en todo el
// sistema.

// CurrentISOWeek devuelve los límites de la semana ISO actual en UTC:
// lunes 00:00:00.000 hasta domingo 23:59:59.999.
func CurrentISOWeek(now time.Time) (start, end time.Time) {
	now = now.UTC()
	isoDay := int(now.Weekday())
	if isoDay == 0 {
		isoDay = 7 // domingo
	}
	start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, -(isoDay - 1))
	end = start.AddDate(0, 0, 7).Add(-time.Millisecond)
	return start, end
}

// ResolveWeekRange normaliza un rango pedido por el llamador: inicio al
// comienzo del día y fin al final del día (UTC). Si algún extremo falta
// (cero) o el rango está invertido, se usa la semana ISO actual.
func ResolveWeekRange(weekStart, weekEnd, now time.Time) (start, end time.Time) {
	if weekStart.IsZero() || weekEnd.IsZero() || weekStart.After(weekEnd) {
		return CurrentISOWeek(now)
	}
	s := weekStart.UTC()
	e := weekEnd.UTC()
	start = time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, time.UTC)
	end = time.Date(e.Year(), e.Month(), e.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, 1).Add(-time.Millisecond)
	return start, end
}

// SelectWeeklyOrders devuelve los pedidos elegibles para la facturación
// semanal de un cliente: completados, sin facturar, con completedAt dentro de
// [start, end] inclusive (comparación de instantes, no de fechas).
func SelectWeeklyOrders(db *entity.Database, customerID string, start, end time.Time) []entity.Order {
	var selected []entity.Order
	for _, order := range db.Orders {
		if order.CustomerID != customerID ||
			order.Status != entity.OrderStatusCompleted ||
			order.Billed() ||
			order.CompletedAt == nil {
			continue
		}
		completed := order.CompletedAt.UTC()
		if completed.Before(start) || completed.After(end) {
			continue
		}
		selected = append(selected, order)
	}
	return selected
}
