package billing_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// ── Alta ──────────────────────────────────────────────────────────────────────

func TestOrderCreate_Multilinea(t *testing.T) {
	f := newFixture(t)
	customerID := f.seedCustomer(t, "Autohaus Beispiel GmbH")

	created, err := f.order.Create(t.Context(), dto.CreateOrdersRequest{
		CustomerID:  customerID,
		CompletedAt: "2026-08-26T12:00:00Z",
		Orders: []dto.OrderLineRequest{
			{
				VIN:             "wauzzz8v5ka123456",
				LicensePlate:    "m-ab 1234",
				VehicleModel:    "Audi A3",
				BaseServiceID:   "basic",
				AddonServiceIDs: []string{"polish"},
			},
			{
				LicensePlate:  "M-CD 5678",
				VehicleModel:  "VW Golf",
				BaseServiceID: "showroom",
				ProgramNumber: 5,
			},
		},
	})

	require.NoError(t, err)
	require.Len(t, created, 2)

	first := created[0]
	assert.True(t, strings.HasPrefix(first.ID, "ord_"))
	assert.Equal(t, "WAUZZZ8V5KA123456", first.VIN, "VIN canonizado a mayúsculas")
	assert.Equal(t, "M-AB 1234", first.LicensePlate)
	assert.Equal(t, 1, first.ProgramNumber, "Programa ausente: se infiere del servicio principal")
	assert.Equal(t, entity.OrderStatusCompleted, first.Status, "Los pedidos nacen completados")
	require.NotNil(t, first.CompletedAt)
	assert.Equal(t, time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC), first.CompletedAt.UTC())
	assert.Equal(t, "Autohaus Beispiel GmbH", first.CustomerName)

	second := created[1]
	assert.Equal(t, 5, second.ProgramNumber, "Programa explícito: se respeta, no se infiere")
	assert.Equal(t, first.CompletedAt.UTC(), second.CompletedAt.UTC(),
		"Todas las líneas comparten completedAt")
}

func TestOrderCreate_Validaciones(t *testing.T) {
	f := newFixture(t)
	customerID := f.seedCustomer(t, "A")

	casos := map[string]dto.CreateOrdersRequest{
		"sin cliente": {Orders: []dto.OrderLineRequest{basicLine("M-A 1")}},
		"sin líneas":  {CustomerID: customerID},
		"línea sin matrícula": {CustomerID: customerID, Orders: []dto.OrderLineRequest{
			{VehicleModel: "VW Golf", BaseServiceID: "basic"},
		}},
		"línea sin modelo": {CustomerID: customerID, Orders: []dto.OrderLineRequest{
			{LicensePlate: "M-A 1", BaseServiceID: "basic"},
		}},
		"línea sin servicio": {CustomerID: customerID, Orders: []dto.OrderLineRequest{
			{LicensePlate: "M-A 1", VehicleModel: "VW Golf"},
		}},
		"programa fuera de rango": {CustomerID: customerID, Orders: []dto.OrderLineRequest{
			{LicensePlate: "M-A 1", VehicleModel: "VW Golf", BaseServiceID: "basic", ProgramNumber: 7},
		}},
		"servicio principal fuera de catálogo": {CustomerID: customerID, Orders: []dto.OrderLineRequest{
			{LicensePlate: "M-A 1", VehicleModel: "VW Golf", BaseServiceID: "deluxe"},
		}},
		"servicio adicional fuera de catálogo": {CustomerID: customerID, Orders: []dto.OrderLineRequest{
			{LicensePlate: "M-A 1", VehicleModel: "VW Golf", BaseServiceID: "basic",
				AddonServiceIDs: []string{"polish", "wax"}},
		}},
	}
	for nombre, req := range casos {
		_, err := f.order.Create(t.Context(), req)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, nombre)
	}

	list, err := f.order.List(t.Context())
	require.NoError(t, err)
	assert.Empty(t, list, "Una petición rechazada no crea ningún pedido")
}

func TestOrderCreate_CompletedAtMalformadoUsaAhora(t *testing.T) {
	f := newFixture(t)
	customerID := f.seedCustomer(t, "A")

	created, err := f.order.Create(t.Context(), dto.CreateOrdersRequest{
		CustomerID:  customerID,
		CompletedAt: "ayer por la tarde",
		Orders:      []dto.OrderLineRequest{basicLine("M-A 1")},
	})

	require.NoError(t, err)
	require.NotNil(t, created[0].CompletedAt)
	assert.WithinDuration(t, time.Now().UTC(), *created[0].CompletedAt, 5*time.Second)
}

func TestOrderList_NombreDeClienteDesconocido(t *testing.T) {
	f := newFixture(t)
	customerID := f.seedCustomer(t, "A")
	ids := f.seedOrders(t, customerID, basicLine("M-A 1"))

	// El pedido queda apuntando a un cliente inexistente.
	otro := "cus_borrado"
	_, err := f.order.Update(t.Context(), ids[0], dto.UpdateOrderRequest{CustomerID: &otro})
	require.NoError(t, err)

	list, err := f.order.List(t.Context())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Unbekannt", list[0].CustomerName,
		"Referencia colgante: nombre de respaldo, no un error")
}

// ── Edición ───────────────────────────────────────────────────────────────────

func TestOrderUpdate_Parcial(t *testing.T) {
	f := newFixture(t)
	customerID := f.seedCustomer(t, "A")
	ids := f.seedOrders(t, customerID, dto.OrderLineRequest{
		VIN:           "WAUZZZ8V5KA123456",
		LicensePlate:  "M-AB 1234",
		VehicleModel:  "Audi A3",
		BaseServiceID: "basic",
		Notes:         "original",
	})

	notas := "pulir de nuevo"
	updated, err := f.order.Update(t.Context(), ids[0], dto.UpdateOrderRequest{Notes: &notas})

	require.NoError(t, err)
	assert.Equal(t, "pulir de nuevo", updated.Notes)
	assert.Equal(t, "Audi A3", updated.VehicleModel, "Los campos no enviados no se tocan")
	assert.Equal(t, "WAUZZZ8V5KA123456", updated.VIN)
	assert.Equal(t, entity.OrderStatusCompleted, updated.Status)
}

func TestOrderUpdate_NoEncontrado(t *testing.T) {
	f := newFixture(t)
	notas := "x"
	_, err := f.order.Update(t.Context(), "ord_inexistente", dto.UpdateOrderRequest{Notes: &notas})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrderUpdate_ProgramaFueraDeRango(t *testing.T) {
	f := newFixture(t)
	customerID := f.seedCustomer(t, "A")
	ids := f.seedOrders(t, customerID, basicLine("M-A 1"))

	malo := 0
	_, err := f.order.Update(t.Context(), ids[0], dto.UpdateOrderRequest{ProgramNumber: &malo})
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"En la edición el programa viene explícito: cero no significa inferir")
}

// La edición tampoco acepta referencias fuera de catálogo: la tolerancia del
// resolutor es solo para documentos ya almacenados, no para escrituras nuevas.
func TestOrderUpdate_ServicioFueraDeCatalogo(t *testing.T) {
	f := newFixture(t)
	customerID := f.seedCustomer(t, "A")
	ids := f.seedOrders(t, customerID, basicLine("M-A 1"))

	desconocido := "deluxe"
	_, err := f.order.Update(t.Context(), ids[0], dto.UpdateOrderRequest{BaseServiceID: &desconocido})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	addons := []string{"wax"}
	_, err = f.order.Update(t.Context(), ids[0], dto.UpdateOrderRequest{AddonServiceIDs: &addons})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := f.order.List(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "basic", list[0].BaseServiceID, "El pedido no cambió")
}

// ── Facturación individual ────────────────────────────────────────────────────

func TestBillSingle_CreaFactura(t *testing.T) {
	f := newFixture(t)
	customerID := f.seedCustomer(t, "Autohaus Beispiel GmbH")
	ids := f.seedOrders(t, customerID, dto.OrderLineRequest{
		LicensePlate:    "M-AB 1234",
		VehicleModel:    "Audi A3",
		BaseServiceID:   "basic",
		AddonServiceIDs: []string{"polish"},
	})

	inv, created, err := f.order.BillSingle(t.Context(), ids[0])

	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, strings.HasPrefix(inv.ID, "inv_"))
	assert.Equal(t, "Autohaus Beispiel GmbH", inv.CustomerName)
	require.Len(t, inv.LineItems, 1)
	assert.Equal(t, "138", inv.LineItems[0].TotalNet.String())

	// El pedido queda enlazado a la factura.
	list, err := f.order.List(t.Context())
	require.NoError(t, err)
	assert.Equal(t, inv.ID, list[0].InvoiceID)
}

// TestBillSingle_Idempotente: repetir la facturación de un pedido ya facturado
// devuelve la misma factura en vez de crear un duplicado.
func TestBillSingle_Idempotente(t *testing.T) {
	f := newFixture(t)
	customerID := f.seedCustomer(t, "A")
	ids := f.seedOrders(t, customerID, basicLine("M-A 1"))

	primera, created, err := f.order.BillSingle(t.Context(), ids[0])
	require.NoError(t, err)
	require.True(t, created)

	segunda, created, err := f.order.BillSingle(t.Context(), ids[0])
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, primera.ID, segunda.ID)

	invoices, err := f.invoice.List(t.Context())
	require.NoError(t, err)
	assert.Len(t, invoices, 1, "Sin duplicados")
}

func TestBillSingle_ClienteColgante(t *testing.T) {
	f := newFixture(t)
	customerID := f.seedCustomer(t, "A")
	ids := f.seedOrders(t, customerID, basicLine("M-A 1"))

	otro := "cus_borrado"
	_, err := f.order.Update(t.Context(), ids[0], dto.UpdateOrderRequest{CustomerID: &otro})
	require.NoError(t, err)

	inv, created, err := f.order.BillSingle(t.Context(), ids[0])

	require.NoError(t, err, "La facturación no falla por una referencia colgante")
	assert.True(t, created)
	assert.Equal(t, "Unbekannt", inv.CustomerName)
}

func TestBillSingle_PedidoInexistente(t *testing.T) {
	f := newFixture(t)
	_, _, err := f.order.BillSingle(t.Context(), "ord_nada")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
