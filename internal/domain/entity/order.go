package entity

import "time"

// Estados de un pedido (orden de trabajo sobre un vehículo).
const (
	OrderStatusNew       = "new"
	OrderStatusCompleted = "completed"
)

// Rango válido del número de programa (agrupación en la leyenda de la factura).
const (
	ProgramNumberMin = 1
	ProgramNumberMax = 6
)

// Order representa un trabajo de embellecimiento sobre un vehículo concreto.
//
// InvoiceID es monótono: una vez asignado por facturación nunca se limpia ni
// se reasigna — un pedido se factura como máximo una vez.
type Order struct {
	ID              string     `json:"id"`
	CustomerID      string     `json:"customerId"`
	VIN             string     `json:"vin"`
	LicensePlate    string     `json:"licensePlate"`
	ProgramNumber   int        `json:"programNumber"`
	VehicleModel    string     `json:"vehicleModel"`
	BaseServiceID   string     `json:"baseServiceId"`
	AddonServiceIDs []string   `json:"addonServiceIds"`
	Notes           string     `json:"notes"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"createdAt"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
	InvoiceID       string     `json:"invoiceId,omitempty"`
}

// Billed indica si el pedido ya fue incluido en una factura.
func (o *Order) Billed() bool { return o.InvoiceID != "" }
