// Package catalog contiene el catálogo estático de servicios facturables y el
// resolutor de precios.
//
// La resolución es deliberadamente tolerante: un ID desconocido devuelve
// precio cero y el propio ID como etiqueta, nunca un error. La validación de
// los IDs de servicio es responsabilidad del que crea el pedido; aquí se
// prefiere que la generación de facturas nunca falle por una referencia de
// catálogo obsoleta.
package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// BaseServices servicios principales (definen el precio unitario neto).
// Los nombres son los del catálogo comercial del cliente final (alemán).
var BaseServices = []entity.ServiceItem{
	{ID: "basic", Name: "Innen- & Außenreinigung", Price: decimal.NewFromInt(79)},
	{ID: "premium", Name: "Premium-Aufbereitung", Price: decimal.NewFromInt(149)},
	{ID: "showroom", Name: "Showroom-Komplettpaket", Price: decimal.NewFromInt(249)},
}

// AddonServices servicios adicionales (se suman al servicio principal).
var AddonServices = []entity.ServiceItem{
	{ID: "polish", Name: "Lackpolitur", Price: decimal.NewFromInt(59)},
	{ID: "ozone", Name: "Ozonbehandlung", Price: decimal.NewFromInt(39)},
	{ID: "engine", Name: "Motorraumreinigung", Price: decimal.NewFromInt(49)},
	{ID: "seal", Name: "Versiegelung", Price: decimal.NewFromInt(89)},
}

// All devuelve el catálogo completo (principales + adicionales).
func All() []entity.ServiceItem {
	out := make([]entity.ServiceItem, 0, len(BaseServices)+len(AddonServices))
	out = append(out, BaseServices...)
	out = append(out, AddonServices...)
	return out
}

// Label devuelve el nombre comercial de un servicio. Si el ID no existe en el
// catálogo devuelve el ID sin modificar.
func Label(serviceID string) string {
	if item := find(serviceID); item != nil {
		return item.Name
	}
	return serviceID
}

// Price devuelve el precio de catálogo de un servicio, o cero si no existe.
func Price(serviceID string) decimal.Decimal {
	if item := find(serviceID); item != nil {
		return item.Price
	}
	return decimal.Zero
}

// Exists indica si el ID está en el catálogo.
func Exists(serviceID string) bool { return find(serviceID) != nil }

// InferProgramNumber deduce el número de programa a partir del servicio
// principal cuando el pedido no lo trae explícito.
func InferProgramNumber(baseServiceID string) int {
	switch baseServiceID {
	case "basic":
		return 1
	case "premium":
		return 2
	case "showroom":
		return 3
	default:
		return 1
	}
}

func find(serviceID string) *entity.ServiceItem {
	for i := range BaseServices {
		if BaseServices[i].ID == serviceID {
			return &BaseServices[i]
		}
	}
	for i := range AddonServices {
		if AddonServices[i].ID == serviceID {
			return &AddonServices[i]
		}
	}
	return nil
}
