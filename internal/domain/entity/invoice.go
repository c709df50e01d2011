package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados almacenados de una factura. "overdue" (vencida) nunca se almacena:
// es una etapa derivada en tiempo de lectura a partir de sentAt.
const (
	InvoiceStatusCreated = "created"
	InvoiceStatusSent    = "sent"
	InvoiceStatusPaid    = "paid"
)

// InvoiceLineItem es una línea de factura derivada de un pedido facturado.
// Cada importe (unitNet, extrasNet, totalNet) se redondea a 2 decimales de
// forma independiente (redondear-luego-sumar, no sumar-luego-redondear).
type InvoiceLineItem struct {
	Position      int             `json:"position"`
	OrderID       string          `json:"orderId"`
	ProgramNumber int             `json:"programNumber"`
	ProgramLabel  string          `json:"programLabel"`
	VIN           string          `json:"vin"`
	LicensePlate  string          `json:"licensePlate"`
	UnitNet       decimal.Decimal `json:"unitNet"`
	ExtrasNet     decimal.Decimal `json:"extrasNet"`
	TotalNet      decimal.Decimal `json:"totalNet"`
	ExtrasLabels  []string        `json:"extrasLabels"`
}

// Invoice representa la cabecera de una factura con sus líneas.
//
// Issuer y CustomerName son instantáneas al momento de la creación: editar el
// perfil de la empresa después no altera facturas pasadas. OrderIDs es
// inmutable tras la creación (las facturas nunca se re-agregan).
type Invoice struct {
	ID            string            `json:"id"`
	InvoiceNumber string            `json:"invoiceNumber"`
	Issuer        CompanyProfile    `json:"issuer"`
	CustomerID    string            `json:"customerId"`
	CustomerName  string            `json:"customerName"`
	OrderIDs      []string          `json:"orderIds"`
	LineItems     []InvoiceLineItem `json:"lineItems"`
	SubtotalNet   decimal.Decimal   `json:"subtotalNet"`
	TaxRate       decimal.Decimal   `json:"taxRate"`
	TaxAmount     decimal.Decimal   `json:"taxAmount"`
	TotalGross    decimal.Decimal   `json:"totalGross"`
	Status        string            `json:"status"`
	CreatedAt     time.Time         `json:"createdAt"`
	SentAt        *time.Time        `json:"sentAt,omitempty"`
	PaidAt        *time.Time        `json:"paidAt,omitempty"`
}
