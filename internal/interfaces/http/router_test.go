package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/application/billing"
	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	filestore "github.com/jhoicas/Taller-api/internal/infrastructure/store"
	httpRouter "github.com/jhoicas/Taller-api/internal/interfaces/http"

	"github.com/rs/zerolog"
)

// Test de integración de la API completa: app Fiber real, casos de uso reales
// y almacén de archivo sobre un directorio temporal. Solo el generador de PDF
// se sustituye por un doble.

type stubPDF struct{}

func (stubPDF) GenerateInvoicePDF(context.Context, *entity.Invoice, *entity.Customer) ([]byte, error) {
	return []byte("%PDF-1.7 stub"), nil
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store := filestore.NewFileStore(filepath.Join(t.TempDir(), "db.json"))

	app := fiber.New()
	httpRouter.Router(app, httpRouter.RouterDeps{
		CustomerUC: billing.NewCustomerUseCase(store),
		OrderUC:    billing.NewOrderUseCase(store),
		InvoiceUC:  billing.NewInvoiceUseCase(store),
		WeeklyUC:   billing.NewWeeklyUseCase(store, zerolog.Nop()),
		PDFUC:      billing.NewPDFUseCase(store, stubPDF{}),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, out any) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestAPI_Catalogo(t *testing.T) {
	app := newTestApp(t)

	var catalog dto.CatalogResponse
	status := doJSON(t, app, http.MethodGet, "/api/catalog", nil, &catalog)

	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, catalog.BaseServices, 3)
	assert.Len(t, catalog.AddonServices, 4)
}

// TestAPI_FlujoCompleto recorre el ciclo de vida entero por HTTP: alta de
// cliente y pedidos, facturación semanal, transiciones de estado y descarga
// del PDF.
func TestAPI_FlujoCompleto(t *testing.T) {
	app := newTestApp(t)

	// Alta de cliente.
	var customer entity.Customer
	status := doJSON(t, app, http.MethodPost, "/api/customers",
		dto.CreateCustomerRequest{Name: "Autohaus Beispiel GmbH"}, &customer)
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, customer.ID)

	// Alta multilinea de pedidos.
	var orders []dto.OrderResponse
	status = doJSON(t, app, http.MethodPost, "/api/orders", dto.CreateOrdersRequest{
		CustomerID: customer.ID,
		Orders: []dto.OrderLineRequest{
			{LicensePlate: "M-AB 1234", VehicleModel: "Audi A3", BaseServiceID: "basic",
				AddonServiceIDs: []string{"polish"}},
			{LicensePlate: "M-CD 5678", VehicleModel: "VW Golf", BaseServiceID: "premium"},
		},
	}, &orders)
	require.Equal(t, http.StatusCreated, status)
	require.Len(t, orders, 2)

	// Facturación semanal: los dos pedidos colapsan en una factura.
	var weekly dto.WeeklyInvoiceResponse
	status = doJSON(t, app, http.MethodPost, "/api/invoices/weekly",
		dto.WeeklyInvoiceRequest{}, &weekly)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, weekly.Invoices, 1)
	invoice := weekly.Invoices[0]
	assert.Equal(t, "1 Rechnung(en) erstellt", weekly.Message)
	assert.Equal(t, "287", invoice.SubtotalNet.String())
	assert.Equal(t, "341.53", invoice.TotalGross.String())

	// Consulta individual.
	var fetched dto.InvoiceResponse
	status = doJSON(t, app, http.MethodGet, "/api/invoices/"+invoice.ID, nil, &fetched)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "created", fetched.RuntimeStage)

	// created → sent.
	status = doJSON(t, app, http.MethodPatch, "/api/invoices/"+invoice.ID+"/sent", nil, nil)
	require.Equal(t, http.StatusOK, status)

	// Reenviar es una transición inválida.
	var apiErr dto.ErrorResponse
	status = doJSON(t, app, http.MethodPatch, "/api/invoices/"+invoice.ID+"/sent", nil, &apiErr)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INVALID_TRANSITION", apiErr.Code)

	// sent → paid.
	status = doJSON(t, app, http.MethodPatch, "/api/invoices/"+invoice.ID+"/paid", nil, nil)
	require.Equal(t, http.StatusOK, status)

	// Descarga del PDF.
	req := httptest.NewRequest(http.MethodGet, "/api/invoices/"+invoice.ID+"/pdf", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition),
		"Rechnung-"+invoice.InvoiceNumber+".pdf")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7 stub", string(body))
}

func TestAPI_FacturacionIndividual(t *testing.T) {
	app := newTestApp(t)

	var customer entity.Customer
	doJSON(t, app, http.MethodPost, "/api/customers",
		dto.CreateCustomerRequest{Name: "A"}, &customer)

	var orders []dto.OrderResponse
	doJSON(t, app, http.MethodPost, "/api/orders", dto.CreateOrdersRequest{
		CustomerID: customer.ID,
		Orders: []dto.OrderLineRequest{
			{LicensePlate: "M-A 1", VehicleModel: "VW Golf", BaseServiceID: "basic"},
		},
	}, &orders)
	require.Len(t, orders, 1)

	// Primera facturación: 201.
	var first dto.InvoiceResponse
	status := doJSON(t, app, http.MethodPost, "/api/orders/"+orders[0].ID+"/invoice", nil, &first)
	assert.Equal(t, http.StatusCreated, status)

	// Repetida: 200 con la misma factura.
	var second dto.InvoiceResponse
	status = doJSON(t, app, http.MethodPost, "/api/orders/"+orders[0].ID+"/invoice", nil, &second)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, first.ID, second.ID)
}

func TestAPI_Errores(t *testing.T) {
	app := newTestApp(t)

	var apiErr dto.ErrorResponse

	status := doJSON(t, app, http.MethodPost, "/api/customers",
		dto.CreateCustomerRequest{Name: ""}, &apiErr)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", apiErr.Code)

	status = doJSON(t, app, http.MethodGet, "/api/invoices/inv_nada", nil, &apiErr)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)

	status = doJSON(t, app, http.MethodPost, "/api/orders/ord_nada/invoice", nil, &apiErr)
	assert.Equal(t, http.StatusNotFound, status)

	status = doJSON(t, app, http.MethodPut, "/api/orders/ord_nada",
		map[string]any{"notes": "x"}, &apiErr)
	assert.Equal(t, http.StatusNotFound, status)

	status = doJSON(t, app, http.MethodPost, "/api/orders", dto.CreateOrdersRequest{
		CustomerID: "cus_x",
	}, &apiErr)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", apiErr.Code)
}
