// Package invoicing implementa el núcleo puro de facturación: construcción de
// facturas a partir de pedidos, selección semanal, numeración y máquina de
// estados. Sin efectos secundarios: la persistencia es responsabilidad de los
// casos de uso.
package invoicing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/domain/catalog"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// TaxRate IVA alemán aplicado a todas las facturas (19%). Moneda única (EUR):
// multi-moneda y multi-jurisdicción están fuera de alcance.
var TaxRate = decimal.NewFromFloat(0.19)

// BuildLineItems genera una línea por pedido, en el orden de entrada.
// unitNet, extrasNet y totalNet se redondean a 2 decimales cada uno por
// separado, antes de sumar el subtotal (redondear-luego-sumar).
func BuildLineItems(orders []entity.Order) []entity.InvoiceLineItem {
	items := make([]entity.InvoiceLineItem, 0, len(orders))
	for i, order := range orders {
		unitNet := catalog.Price(order.BaseServiceID)
		extrasNet := decimal.Zero
		extrasLabels := make([]string, 0, len(order.AddonServiceIDs))
		for _, addonID := range order.AddonServiceIDs {
			extrasNet = extrasNet.Add(catalog.Price(addonID))
			extrasLabels = append(extrasLabels, catalog.Label(addonID))
		}
		items = append(items, entity.InvoiceLineItem{
			Position:      i + 1,
			OrderID:       order.ID,
			ProgramNumber: order.ProgramNumber,
			ProgramLabel:  catalog.Label(order.BaseServiceID),
			VIN:           order.VIN,
			LicensePlate:  order.LicensePlate,
			UnitNet:       unitNet.Round(2),
			ExtrasNet:     extrasNet.Round(2),
			TotalNet:      unitNet.Add(extrasNet).Round(2),
			ExtrasLabels:  extrasLabels,
		})
	}
	return items
}

// InvoiceNumber número legible secuencial: RE-<año>-<secuencia a 5 dígitos>.
//
// La secuencia se deriva del número de facturas existentes leído dentro de la
// mutación serializada: libre de carreras dentro del proceso, pero NO seguro
// si el almacén se comparte entre procesos. No "arreglar" el esquema sin más:
// cambia números de factura visibles externamente.
func InvoiceNumber(existingCount int, now time.Time) string {
	return fmt.Sprintf("RE-%d-%05d", now.Year(), existingCount+1)
}

// BuildInvoice construye una factura a partir de los pedidos que se facturan
// juntos (ya filtrados) y el cliente propietario. Construcción pura: asume
// pedidos válidos y sin facturar (precondición de los casos de uso) y no
// tiene rutas de error.
//
// Issuer y el nombre del cliente quedan como instantáneas dentro de la
// factura: cambios posteriores del perfil no alteran facturas pasadas.
func BuildInvoice(
	orders []entity.Order,
	customer entity.Customer,
	existingCount int,
	issuer entity.CompanyProfile,
	id string,
	now time.Time,
) entity.Invoice {
	lineItems := BuildLineItems(orders)

	subtotalNet := decimal.Zero
	for _, item := range lineItems {
		subtotalNet = subtotalNet.Add(item.TotalNet)
	}
	subtotalNet = subtotalNet.Round(2)
	taxAmount := subtotalNet.Mul(TaxRate).Round(2)
	totalGross := subtotalNet.Add(taxAmount).Round(2)

	orderIDs := make([]string, 0, len(orders))
	for _, order := range orders {
		orderIDs = append(orderIDs, order.ID)
	}

	return entity.Invoice{
		ID:            id,
		InvoiceNumber: InvoiceNumber(existingCount, now),
		Issuer:        issuer,
		CustomerID:    customer.ID,
		CustomerName:  customer.Name,
		OrderIDs:      orderIDs,
		LineItems:     lineItems,
		SubtotalNet:   subtotalNet,
		TaxRate:       TaxRate,
		TaxAmount:     taxAmount,
		TotalGross:    totalGross,
		Status:        entity.InvoiceStatusCreated,
		CreatedAt:     now,
	}
}
