// Package store implementa la persistencia del agregado como documento JSON
// único: codificación, normalización tolerante al cargar y el adaptador de
// archivo con cola de escritor único.
package store

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Taller-api/internal/domain/catalog"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/invoicing"
)

// Normalización al cargar: el documento puede venir de versiones anteriores
// de la aplicación (campos renombrados, líneas con formato viejo, fechas
// malformadas). Todo degrada a valores por defecto en vez de fallar; después
// de este paso la lógica de negocio solo ve la forma canónica.

// ── tipos tolerantes ──────────────────────────────────────────────────────────

// looseTime acepta RFC 3339; cualquier otra cosa queda en cero.
type looseTime struct{ t time.Time }

func (l *looseTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil || s == "" {
		return nil
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		l.t = ts.UTC()
	}
	return nil
}

// looseDecimal acepta número o cadena numérica; basura queda en "ausente".
type looseDecimal struct {
	d  decimal.Decimal
	ok bool
}

func (l *looseDecimal) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := json.Unmarshal(b, &d); err != nil {
		return nil
	}
	l.d = d
	l.ok = true
	return nil
}

// looseInt acepta número o cadena numérica.
type looseInt struct {
	n  int
	ok bool
}

func (l *looseInt) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := json.Unmarshal(b, &d); err != nil {
		return nil
	}
	if !d.IsInteger() {
		return nil
	}
	l.n = int(d.IntPart())
	l.ok = true
	return nil
}

// ── formas crudas del documento ───────────────────────────────────────────────

type rawDatabase struct {
	CompanyProfile rawProfile    `json:"companyProfile"`
	Customers      []rawCustomer `json:"customers"`
	Orders         []rawOrder    `json:"orders"`
	Invoices       []rawInvoice  `json:"invoices"`
}

type rawProfile struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

type rawCustomer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ShortName string    `json:"shortName"`
	Address   string    `json:"address"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt looseTime `json:"createdAt"`
}

type rawOrder struct {
	ID              string    `json:"id"`
	CustomerID      string    `json:"customerId"`
	VIN             string    `json:"vin"`
	LicensePlate    string    `json:"licensePlate"`
	ProgramNumber   looseInt  `json:"programNumber"`
	VehicleModel    string    `json:"vehicleModel"`
	BaseServiceID   string    `json:"baseServiceId"`
	AddonServiceIDs []string  `json:"addonServiceIds"`
	Notes           string    `json:"notes"`
	Status          string    `json:"status"`
	CreatedAt       looseTime `json:"createdAt"`
	CompletedAt     looseTime `json:"completedAt"`
	InvoiceID       string    `json:"invoiceId"`
}

type rawLineItem struct {
	Position      looseInt     `json:"position"`
	OrderID       string       `json:"orderId"`
	ProgramNumber looseInt     `json:"programNumber"`
	ProgramLabel  string       `json:"programLabel"`
	VIN           string       `json:"vin"`
	LicensePlate  string       `json:"licensePlate"`
	UnitNet       looseDecimal `json:"unitNet"`
	ExtrasNet     looseDecimal `json:"extrasNet"`
	TotalNet      looseDecimal `json:"totalNet"`
	ExtrasLabels  []string     `json:"extrasLabels"`

	// Formato antiguo: una etiqueta y un precio por línea.
	Label string       `json:"label"`
	Price looseDecimal `json:"price"`
}

type rawInvoice struct {
	ID            string        `json:"id"`
	InvoiceNumber string        `json:"invoiceNumber"`
	Issuer        rawProfile    `json:"issuer"`
	CustomerID    string        `json:"customerId"`
	CustomerName  string        `json:"customerName"`
	OrderIDs      []string      `json:"orderIds"`
	LineItems     []rawLineItem `json:"lineItems"`
	SubtotalNet   looseDecimal  `json:"subtotalNet"`
	TaxRate       looseDecimal  `json:"taxRate"`
	TaxAmount     looseDecimal  `json:"taxAmount"`
	TotalGross    looseDecimal  `json:"totalGross"`
	Status        string        `json:"status"`
	CreatedAt     looseTime     `json:"createdAt"`
	SentAt        looseTime     `json:"sentAt"`
	PaidAt        looseTime     `json:"paidAt"`

	// Nombres antiguos de los totales.
	Subtotal looseDecimal `json:"subtotal"`
	Total    looseDecimal `json:"total"`
}

// ── decodificación ────────────────────────────────────────────────────────────

// DecodeDatabase decodifica y normaliza el documento. Un documento ilegible
// (JSON corrupto) devuelve el agregado vacío por defecto, igual que un medio
// recién inicializado.
func DecodeDatabase(data []byte) *entity.Database {
	if len(bytes.TrimSpace(data)) == 0 {
		return entity.NewDatabase()
	}
	var raw rawDatabase
	if err := json.Unmarshal(data, &raw); err != nil {
		return entity.NewDatabase()
	}
	return normalize(&raw)
}

// EncodeDatabase serializa el documento con sangría (legible en disco).
func EncodeDatabase(db *entity.Database) ([]byte, error) {
	return json.MarshalIndent(db, "", "  ")
}

func normalize(raw *rawDatabase) *entity.Database {
	db := entity.NewDatabase()
	db.CompanyProfile = normalizeProfile(raw.CompanyProfile, entity.DefaultCompanyProfile())

	for _, c := range raw.Customers {
		db.Customers = append(db.Customers, normalizeCustomer(c))
	}
	for _, o := range raw.Orders {
		db.Orders = append(db.Orders, normalizeOrder(o))
	}
	// Las facturas se normalizan al final: el formato antiguo de líneas se
	// reconstruye desde los pedidos ya canónicos.
	for i, inv := range raw.Invoices {
		db.Invoices = append(db.Invoices, normalizeInvoice(inv, db, i))
	}
	return db
}

func normalizeProfile(raw rawProfile, fallback entity.CompanyProfile) entity.CompanyProfile {
	out := fallback
	if strings.TrimSpace(raw.Name) != "" {
		out.Name = raw.Name
	}
	if raw.Address != "" {
		out.Address = raw.Address
	}
	if raw.Email != "" {
		out.Email = raw.Email
	}
	if raw.Phone != "" {
		out.Phone = raw.Phone
	}
	return out
}

func normalizeCustomer(raw rawCustomer) entity.Customer {
	createdAt := raw.CreatedAt.t
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	return entity.Customer{
		ID:        raw.ID,
		Name:      raw.Name,
		ShortName: raw.ShortName,
		Address:   raw.Address,
		Email:     raw.Email,
		Phone:     raw.Phone,
		CreatedAt: createdAt,
	}
}

func normalizeOrder(raw rawOrder) entity.Order {
	programNumber := catalog.InferProgramNumber(raw.BaseServiceID)
	if raw.ProgramNumber.ok &&
		raw.ProgramNumber.n >= entity.ProgramNumberMin && raw.ProgramNumber.n <= entity.ProgramNumberMax {
		programNumber = raw.ProgramNumber.n
	}

	status := entity.OrderStatusCompleted
	if raw.Status == entity.OrderStatusNew {
		status = entity.OrderStatusNew
	}

	createdAt := raw.CreatedAt.t
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	var completedAt *time.Time
	if !raw.CompletedAt.t.IsZero() {
		t := raw.CompletedAt.t
		completedAt = &t
	}

	addons := raw.AddonServiceIDs
	if addons == nil {
		addons = []string{}
	}

	return entity.Order{
		ID:              raw.ID,
		CustomerID:      raw.CustomerID,
		VIN:             strings.ToUpper(raw.VIN),
		LicensePlate:    strings.ToUpper(raw.LicensePlate),
		ProgramNumber:   programNumber,
		VehicleModel:    raw.VehicleModel,
		BaseServiceID:   raw.BaseServiceID,
		AddonServiceIDs: addons,
		Notes:           raw.Notes,
		Status:          status,
		CreatedAt:       createdAt,
		CompletedAt:     completedAt,
		InvoiceID:       raw.InvoiceID,
	}
}

func normalizeInvoice(raw rawInvoice, db *entity.Database, index int) entity.Invoice {
	orderIDs := raw.OrderIDs
	if orderIDs == nil {
		orderIDs = []string{}
	}

	var linked []entity.Order
	for _, id := range orderIDs {
		if o := db.OrderByID(id); o != nil {
			linked = append(linked, *o)
		}
	}

	lineItems := normalizeLineItems(raw.LineItems, linked)

	subtotalNet := decimal.Zero
	switch {
	case raw.SubtotalNet.ok:
		subtotalNet = raw.SubtotalNet.d
	case raw.Subtotal.ok:
		subtotalNet = raw.Subtotal.d
	default:
		for _, item := range lineItems {
			subtotalNet = subtotalNet.Add(item.TotalNet)
		}
	}
	subtotalNet = subtotalNet.Round(2)

	taxRate := invoicing.TaxRate
	if raw.TaxRate.ok {
		taxRate = raw.TaxRate.d
	}
	taxAmount := subtotalNet.Mul(taxRate).Round(2)
	if raw.TaxAmount.ok {
		taxAmount = raw.TaxAmount.d.Round(2)
	}
	totalGross := subtotalNet.Add(taxAmount).Round(2)
	switch {
	case raw.TotalGross.ok:
		totalGross = raw.TotalGross.d.Round(2)
	case raw.Total.ok:
		totalGross = raw.Total.d.Round(2)
	}

	createdAt := raw.CreatedAt.t
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	// Estados antiguos ("open") y desconocidos degradan a "created". sentAt y
	// paidAt solo sobreviven si la fecha era parseable.
	status := entity.InvoiceStatusCreated
	var sentAt, paidAt *time.Time
	switch raw.Status {
	case entity.InvoiceStatusPaid:
		status = entity.InvoiceStatusPaid
		if !raw.PaidAt.t.IsZero() {
			t := raw.PaidAt.t
			paidAt = &t
		}
	case entity.InvoiceStatusSent:
		status = entity.InvoiceStatusSent
	}
	if !raw.SentAt.t.IsZero() && status != entity.InvoiceStatusCreated {
		t := raw.SentAt.t
		sentAt = &t
	}

	customerID := raw.CustomerID
	customerName := raw.CustomerName
	if customerName == "" {
		customerName = "Unbekannt"
		if c := db.CustomerByID(customerID); c != nil {
			customerName = c.Name
		}
	}

	invoiceNumber := raw.InvoiceNumber
	if invoiceNumber == "" {
		invoiceNumber = invoicing.InvoiceNumber(index, createdAt)
	}

	return entity.Invoice{
		ID:            raw.ID,
		InvoiceNumber: invoiceNumber,
		Issuer:        normalizeProfile(raw.Issuer, db.CompanyProfile),
		CustomerID:    customerID,
		CustomerName:  customerName,
		OrderIDs:      orderIDs,
		LineItems:     lineItems,
		SubtotalNet:   subtotalNet,
		TaxRate:       taxRate,
		TaxAmount:     taxAmount,
		TotalGross:    totalGross,
		Status:        status,
		CreatedAt:     createdAt,
		SentAt:        sentAt,
		PaidAt:        paidAt,
	}
}

// normalizeLineItems acepta el formato actual (totalNet por línea) o
// reconstruye las líneas desde los pedidos enlazados si el documento traía el
// formato antiguo (label/price).
func normalizeLineItems(raw []rawLineItem, linked []entity.Order) []entity.InvoiceLineItem {
	current := len(raw) > 0
	for _, item := range raw {
		if !item.TotalNet.ok {
			current = false
			break
		}
	}
	if !current {
		return invoicing.BuildLineItems(linked)
	}

	out := make([]entity.InvoiceLineItem, 0, len(raw))
	for i, item := range raw {
		position := i + 1
		if item.Position.ok {
			position = item.Position.n
		}
		programNumber := entity.ProgramNumberMin
		if item.ProgramNumber.ok &&
			item.ProgramNumber.n >= entity.ProgramNumberMin && item.ProgramNumber.n <= entity.ProgramNumberMax {
			programNumber = item.ProgramNumber.n
		}
		orderID := item.OrderID
		vin := strings.ToUpper(item.VIN)
		plate := strings.ToUpper(item.LicensePlate)
		label := item.ProgramLabel
		if i < len(linked) {
			if orderID == "" {
				orderID = linked[i].ID
			}
			if vin == "" {
				vin = linked[i].VIN
			}
			if plate == "" {
				plate = linked[i].LicensePlate
			}
			if label == "" {
				label = linked[i].BaseServiceID
			}
		}
		unitNet := item.UnitNet.d.Round(2)
		extrasNet := item.ExtrasNet.d.Round(2)
		totalNet := item.TotalNet.d.Round(2)
		extras := item.ExtrasLabels
		if extras == nil {
			extras = []string{}
		}
		out = append(out, entity.InvoiceLineItem{
			Position:      position,
			OrderID:       orderID,
			ProgramNumber: programNumber,
			ProgramLabel:  label,
			VIN:           vin,
			LicensePlate:  plate,
			UnitNet:       unitNet,
			ExtrasNet:     extrasNet,
			TotalNet:      totalNet,
			ExtrasLabels:  extras,
		})
	}
	return out
}
