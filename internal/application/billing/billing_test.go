package billing_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Taller-api/internal/application/billing"
	"github.com/jhoicas/Taller-api/internal/application/dto"
	filestore "github.com/jhoicas/Taller-api/internal/infrastructure/store"
)

// Los casos de uso se prueban contra el adaptador de archivo real sobre un
// directorio temporal: mismo camino de código que producción (normalización
// incluida), sin dobles de prueba para el almacén.

func newTestStore(t *testing.T) billing.Store {
	t.Helper()
	return filestore.NewFileStore(filepath.Join(t.TempDir(), "db.json"))
}

type fixture struct {
	store    billing.Store
	customer *billing.CustomerUseCase
	order    *billing.OrderUseCase
	invoice  *billing.InvoiceUseCase
	weekly   *billing.WeeklyUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := newTestStore(t)
	return &fixture{
		store:    s,
		customer: billing.NewCustomerUseCase(s),
		order:    billing.NewOrderUseCase(s),
		invoice:  billing.NewInvoiceUseCase(s),
		weekly:   billing.NewWeeklyUseCase(s, zerolog.Nop()),
	}
}

// seedCustomer registra un cliente y devuelve su ID.
func (f *fixture) seedCustomer(t *testing.T, name string) string {
	t.Helper()
	c, err := f.customer.Create(t.Context(), dto.CreateCustomerRequest{Name: name})
	if err != nil {
		t.Fatalf("crear cliente de prueba: %v", err)
	}
	return c.ID
}

// seedOrders registra pedidos completados ahora (siempre dentro de la semana
// ISO actual) y devuelve sus IDs.
func (f *fixture) seedOrders(t *testing.T, customerID string, lines ...dto.OrderLineRequest) []string {
	t.Helper()
	created, err := f.order.Create(t.Context(), dto.CreateOrdersRequest{
		CustomerID:  customerID,
		CompletedAt: time.Now().UTC().Format(time.RFC3339),
		Orders:      lines,
	})
	if err != nil {
		t.Fatalf("crear pedidos de prueba: %v", err)
	}
	ids := make([]string, 0, len(created))
	for _, o := range created {
		ids = append(ids, o.ID)
	}
	return ids
}

func basicLine(plate string) dto.OrderLineRequest {
	return dto.OrderLineRequest{
		LicensePlate:  plate,
		VehicleModel:  "VW Golf",
		BaseServiceID: "basic",
	}
}
