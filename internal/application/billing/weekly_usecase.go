package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/invoicing"
)

// WeeklyUseCase facturación semanal: colapsa los pedidos completados y sin
// facturar de cada cliente dentro de la ventana en una única factura por
// cliente.
type WeeklyUseCase struct {
	store Store
	log   zerolog.Logger
}

// NewWeeklyUseCase construye el caso de uso.
func NewWeeklyUseCase(store Store, log zerolog.Logger) *WeeklyUseCase {
	return &WeeklyUseCase{store: store, log: log}
}

// Run ejecuta la facturación semanal.
//
// Todo el lote (todos los clientes pedidos) corre dentro de UNA sola mutación
// del store: o se crean todas las facturas o ninguna, sin facturación parcial
// si un paso posterior del lote falla, y sin intercalado con otras mutaciones
// concurrentes.
//
// Clientes desconocidos y clientes sin pedidos elegibles se devuelven en
// skippedCustomers sin distinguir el motivo.
func (uc *WeeklyUseCase) Run(ctx context.Context, in dto.WeeklyInvoiceRequest) (*dto.WeeklyInvoiceResponse, error) {
	now := time.Now().UTC()
	weekStart, weekEnd := invoicing.ResolveWeekRange(
		parseTimestamp(in.WeekStart), parseTimestamp(in.WeekEnd), now,
	)

	customerIDs := make([]string, 0, len(in.CustomerIDs))
	for _, id := range in.CustomerIDs {
		if id != "" {
			customerIDs = append(customerIDs, id)
		}
	}

	var createdIDs []string
	var skipped []string

	db, err := uc.store.Mutate(ctx, func(db *entity.Database) error {
		createdIDs = createdIDs[:0]
		skipped = skipped[:0]

		// Sin clientes explícitos se consideran todos los registrados.
		ids := customerIDs
		if len(ids) == 0 {
			for _, c := range db.Customers {
				ids = append(ids, c.ID)
			}
		}

		for _, customerID := range ids {
			customer := db.CustomerByID(customerID)
			if customer == nil {
				skipped = append(skipped, customerID)
				continue
			}
			orders := invoicing.SelectWeeklyOrders(db, customerID, weekStart, weekEnd)
			if len(orders) == 0 {
				skipped = append(skipped, customerID)
				continue
			}

			invoice := invoicing.BuildInvoice(
				orders, *customer, len(db.Invoices), db.CompanyProfile,
				NewInvoiceID(), now,
			)
			for _, order := range orders {
				if o := db.OrderByID(order.ID); o != nil {
					o.InvoiceID = invoice.ID
				}
			}
			db.Invoices = append(db.Invoices, invoice)
			createdIDs = append(createdIDs, invoice.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	invoices := make([]dto.InvoiceResponse, 0, len(createdIDs))
	for _, id := range createdIDs {
		if inv := db.InvoiceByID(id); inv != nil {
			invoices = append(invoices, invoiceResponse(*inv, now))
		}
	}

	uc.log.Info().
		Time("week_start", weekStart).
		Time("week_end", weekEnd).
		Int("invoices", len(invoices)).
		Int("skipped", len(skipped)).
		Msg("facturación semanal ejecutada")

	return &dto.WeeklyInvoiceResponse{
		Message:          fmt.Sprintf("%d Rechnung(en) erstellt", len(invoices)),
		Invoices:         invoices,
		SkippedCustomers: append([]string{}, skipped...),
	}, nil
}
