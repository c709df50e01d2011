package billing

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/catalog"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/invoicing"
)

// OrderUseCase casos de uso de pedidos: alta multilinea, edición y
// facturación individual.
type OrderUseCase struct {
	store Store
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(store Store) *OrderUseCase {
	return &OrderUseCase{store: store}
}

// parseTimestamp parsea RFC 3339 de forma tolerante: vacío o malformado
// devuelve cero (el llamador decide el valor por defecto).
func parseTimestamp(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return ts.UTC()
}

// List devuelve los pedidos, más recientes primero, con el nombre del cliente.
func (uc *OrderUseCase) List(ctx context.Context) ([]dto.OrderResponse, error) {
	db, err := uc.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	orders := make([]entity.Order, len(db.Orders))
	copy(orders, db.Orders)
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, orderResponse(order, db))
	}
	return out, nil
}

// Create registra uno o varios pedidos del mismo cliente (un vehículo por
// línea). Todos comparten completedAt y nacen completados.
func (uc *OrderUseCase) Create(ctx context.Context, in dto.CreateOrdersRequest) ([]dto.OrderResponse, error) {
	if in.CustomerID == "" {
		return nil, fmt.Errorf("%w: falta el cliente", domain.ErrInvalidInput)
	}
	if len(in.Orders) == 0 {
		return nil, fmt.Errorf("%w: sin líneas de pedido", domain.ErrInvalidInput)
	}
	for i, line := range in.Orders {
		if line.LicensePlate == "" || line.VehicleModel == "" || line.BaseServiceID == "" {
			return nil, fmt.Errorf("%w: faltan campos obligatorios en la línea %d", domain.ErrInvalidInput, i+1)
		}
		if line.ProgramNumber != 0 &&
			(line.ProgramNumber < entity.ProgramNumberMin || line.ProgramNumber > entity.ProgramNumberMax) {
			return nil, fmt.Errorf("%w: número de programa fuera de rango en la línea %d", domain.ErrInvalidInput, i+1)
		}
		// Los IDs de servicio se validan aquí, en el alta: el catálogo en sí
		// resuelve de forma tolerante (facturas con referencias antiguas no
		// fallan), pero un pedido nuevo no puede apuntar fuera del catálogo.
		if !catalog.Exists(line.BaseServiceID) {
			return nil, fmt.Errorf("%w: servicio principal desconocido %q en la línea %d",
				domain.ErrInvalidInput, line.BaseServiceID, i+1)
		}
		for _, addonID := range line.AddonServiceIDs {
			if !catalog.Exists(addonID) {
				return nil, fmt.Errorf("%w: servicio adicional desconocido %q en la línea %d",
					domain.ErrInvalidInput, addonID, i+1)
			}
		}
	}

	now := time.Now().UTC()
	completedAt := parseTimestamp(in.CompletedAt)
	if completedAt.IsZero() {
		completedAt = now
	}

	newOrders := make([]entity.Order, 0, len(in.Orders))
	for _, line := range in.Orders {
		programNumber := line.ProgramNumber
		if programNumber == 0 {
			programNumber = catalog.InferProgramNumber(line.BaseServiceID)
		}
		done := completedAt
		newOrders = append(newOrders, entity.Order{
			ID:              NewOrderID(),
			CustomerID:      in.CustomerID,
			VIN:             strings.ToUpper(line.VIN),
			LicensePlate:    strings.ToUpper(line.LicensePlate),
			ProgramNumber:   programNumber,
			VehicleModel:    line.VehicleModel,
			BaseServiceID:   line.BaseServiceID,
			AddonServiceIDs: append([]string{}, line.AddonServiceIDs...),
			Notes:           line.Notes,
			Status:          entity.OrderStatusCompleted,
			CreatedAt:       now,
			CompletedAt:     &done,
		})
	}

	db, err := uc.store.Mutate(ctx, func(db *entity.Database) error {
		db.Orders = append(append([]entity.Order{}, newOrders...), db.Orders...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]dto.OrderResponse, 0, len(newOrders))
	for _, order := range newOrders {
		out = append(out, orderResponse(order, db))
	}
	return out, nil
}

// Update edita parcialmente un pedido. El pedido queda completado; si no
// tenía completedAt se le asigna el pedido o el instante actual.
func (uc *OrderUseCase) Update(ctx context.Context, id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	if in.ProgramNumber != nil &&
		(*in.ProgramNumber < entity.ProgramNumberMin || *in.ProgramNumber > entity.ProgramNumberMax) {
		return nil, fmt.Errorf("%w: número de programa fuera de rango", domain.ErrInvalidInput)
	}
	if in.BaseServiceID != nil && *in.BaseServiceID != "" && !catalog.Exists(*in.BaseServiceID) {
		return nil, fmt.Errorf("%w: servicio principal desconocido %q", domain.ErrInvalidInput, *in.BaseServiceID)
	}
	if in.AddonServiceIDs != nil {
		for _, addonID := range *in.AddonServiceIDs {
			if !catalog.Exists(addonID) {
				return nil, fmt.Errorf("%w: servicio adicional desconocido %q", domain.ErrInvalidInput, addonID)
			}
		}
	}

	var updated entity.Order
	db, err := uc.store.Mutate(ctx, func(db *entity.Database) error {
		order := db.OrderByID(id)
		if order == nil {
			return fmt.Errorf("%w: pedido %s", domain.ErrNotFound, id)
		}
		if in.CustomerID != nil && *in.CustomerID != "" {
			order.CustomerID = *in.CustomerID
		}
		if in.VIN != nil {
			order.VIN = strings.ToUpper(*in.VIN)
		}
		if in.LicensePlate != nil && *in.LicensePlate != "" {
			order.LicensePlate = strings.ToUpper(*in.LicensePlate)
		}
		if in.VehicleModel != nil && *in.VehicleModel != "" {
			order.VehicleModel = *in.VehicleModel
		}
		if in.ProgramNumber != nil {
			order.ProgramNumber = *in.ProgramNumber
		}
		if in.BaseServiceID != nil && *in.BaseServiceID != "" {
			order.BaseServiceID = *in.BaseServiceID
		}
		if in.AddonServiceIDs != nil {
			order.AddonServiceIDs = append([]string{}, (*in.AddonServiceIDs)...)
		}
		if in.Notes != nil {
			order.Notes = *in.Notes
		}
		order.Status = entity.OrderStatusCompleted
		if requested := parseTimestamp(in.CompletedAt); !requested.IsZero() {
			order.CompletedAt = &requested
		} else if order.CompletedAt == nil {
			now := time.Now().UTC()
			order.CompletedAt = &now
		}
		updated = *order
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := orderResponse(updated, db)
	return &resp, nil
}

// BillSingle factura un único pedido. Idempotente: si el pedido ya tiene
// factura asignada se devuelve esa misma factura (created=false) en lugar de
// crear un duplicado.
func (uc *OrderUseCase) BillSingle(ctx context.Context, orderID string) (inv *dto.InvoiceResponse, created bool, err error) {
	now := time.Now().UTC()
	var invoiceID string
	db, err := uc.store.Mutate(ctx, func(db *entity.Database) error {
		order := db.OrderByID(orderID)
		if order == nil {
			return fmt.Errorf("%w: pedido %s", domain.ErrNotFound, orderID)
		}
		if order.Billed() {
			invoiceID = order.InvoiceID
			return nil
		}

		customer := db.CustomerByID(order.CustomerID)
		if customer == nil {
			// Referencia colgante: se factura igualmente con nombre de relleno.
			customer = &entity.Customer{ID: order.CustomerID, Name: "Unbekannt"}
		}

		invoice := invoicing.BuildInvoice(
			[]entity.Order{*order}, *customer, len(db.Invoices), db.CompanyProfile,
			NewInvoiceID(), now,
		)
		order.Status = entity.OrderStatusCompleted
		if order.CompletedAt == nil {
			order.CompletedAt = &now
		}
		order.InvoiceID = invoice.ID

		db.Invoices = append([]entity.Invoice{invoice}, db.Invoices...)
		invoiceID = invoice.ID
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	stored := db.InvoiceByID(invoiceID)
	if stored == nil {
		// No debería ocurrir: el pedido apuntaba a una factura inexistente.
		return nil, false, fmt.Errorf("%w: factura %s", domain.ErrNotFound, invoiceID)
	}
	resp := invoiceResponse(*stored, now)
	return &resp, created, nil
}

// orderResponse enriquece un pedido con el nombre del cliente.
func orderResponse(order entity.Order, db *entity.Database) dto.OrderResponse {
	name := "Unbekannt"
	if customer := db.CustomerByID(order.CustomerID); customer != nil {
		name = customer.Name
	}
	return dto.OrderResponse{Order: order, CustomerName: name}
}
