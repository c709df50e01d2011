package dto

import (
	"time"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name      string `json:"name"`
	ShortName string `json:"shortName,omitempty"`
	Address   string `json:"address,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// OrderLineRequest una línea (un vehículo) dentro de POST /api/orders.
// ProgramNumber cero significa "no enviado": se deduce del servicio principal.
type OrderLineRequest struct {
	VIN             string   `json:"vin,omitempty"`
	LicensePlate    string   `json:"licensePlate"`
	VehicleModel    string   `json:"vehicleModel"`
	ProgramNumber   int      `json:"programNumber,omitempty"`
	BaseServiceID   string   `json:"baseServiceId"`
	AddonServiceIDs []string `json:"addonServiceIds,omitempty"`
	Notes           string   `json:"notes,omitempty"`
}

// CreateOrdersRequest body para POST /api/orders: varios vehículos del mismo
// cliente en una sola petición. CompletedAt en RFC 3339; vacío = ahora.
type CreateOrdersRequest struct {
	CustomerID  string             `json:"customerId"`
	CompletedAt string             `json:"completedAt,omitempty"`
	Orders      []OrderLineRequest `json:"orders"`
}

// UpdateOrderRequest body para PUT /api/orders/:id. Campos nil no se tocan.
type UpdateOrderRequest struct {
	CustomerID      *string   `json:"customerId,omitempty"`
	VIN             *string   `json:"vin,omitempty"`
	LicensePlate    *string   `json:"licensePlate,omitempty"`
	VehicleModel    *string   `json:"vehicleModel,omitempty"`
	ProgramNumber   *int      `json:"programNumber,omitempty"`
	BaseServiceID   *string   `json:"baseServiceId,omitempty"`
	AddonServiceIDs *[]string `json:"addonServiceIds,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
	CompletedAt     string    `json:"completedAt,omitempty"`
}

// WeeklyInvoiceRequest body para POST /api/invoices/weekly. Sin customerIds se
// facturan todos los clientes; sin rango válido, la semana ISO actual.
type WeeklyInvoiceRequest struct {
	CustomerIDs []string `json:"customerIds,omitempty"`
	WeekStart   string   `json:"weekStart,omitempty"`
	WeekEnd     string   `json:"weekEnd,omitempty"`
}

// OrderResponse pedido enriquecido con el nombre del cliente.
type OrderResponse struct {
	entity.Order
	CustomerName string `json:"customerName,omitempty"`
}

// InvoiceResponse factura con la etapa derivada en tiempo de lectura
// ("overdue" nunca se almacena) y la fecha límite de pago si aplica.
type InvoiceResponse struct {
	entity.Invoice
	RuntimeStage string     `json:"runtimeStage"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
}

// WeeklyInvoiceResponse resultado de la facturación semanal. Los clientes
// omitidos no distinguen motivo: "no existe" y "nada que facturar" se
// reportan igual.
type WeeklyInvoiceResponse struct {
	Message          string            `json:"message"`
	Invoices         []InvoiceResponse `json:"invoices"`
	SkippedCustomers []string          `json:"skippedCustomers"`
}

// CatalogResponse respuesta de GET /api/catalog.
type CatalogResponse struct {
	BaseServices  []entity.ServiceItem `json:"baseServices"`
	AddonServices []entity.ServiceItem `json:"addonServices"`
}
