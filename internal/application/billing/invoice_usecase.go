package billing

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/invoicing"
)

// InvoiceUseCase consulta de facturas y transiciones de estado.
type InvoiceUseCase struct {
	store Store
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(store Store) *InvoiceUseCase {
	return &InvoiceUseCase{store: store}
}

// List devuelve las facturas, más recientes primero, con su etapa derivada.
func (uc *InvoiceUseCase) List(ctx context.Context) ([]dto.InvoiceResponse, error) {
	db, err := uc.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	return invoiceResponses(db.Invoices, time.Now().UTC()), nil
}

// Get devuelve una factura por ID.
func (uc *InvoiceUseCase) Get(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	db, err := uc.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	inv := db.InvoiceByID(id)
	if inv == nil {
		return nil, fmt.Errorf("%w: factura %s", domain.ErrNotFound, id)
	}
	resp := invoiceResponse(*inv, time.Now().UTC())
	return &resp, nil
}

// MarkSent marca una factura como enviada (solo desde "created") y devuelve
// la lista actualizada.
func (uc *InvoiceUseCase) MarkSent(ctx context.Context, id string) ([]dto.InvoiceResponse, error) {
	return uc.transition(ctx, id, invoicing.MarkSent)
}

// MarkPaid marca una factura como pagada (política permisiva: desde "created"
// o "sent"; una factura pagada no se re-marca) y devuelve la lista
// actualizada.
func (uc *InvoiceUseCase) MarkPaid(ctx context.Context, id string) ([]dto.InvoiceResponse, error) {
	return uc.transition(ctx, id, invoicing.MarkPaid)
}

func (uc *InvoiceUseCase) transition(
	ctx context.Context,
	id string,
	apply func(*entity.Invoice, time.Time) error,
) ([]dto.InvoiceResponse, error) {
	now := time.Now().UTC()
	db, err := uc.store.Mutate(ctx, func(db *entity.Database) error {
		inv := db.InvoiceByID(id)
		if inv == nil {
			return fmt.Errorf("%w: factura %s", domain.ErrNotFound, id)
		}
		return apply(inv, now)
	})
	if err != nil {
		return nil, err
	}
	return invoiceResponses(db.Invoices, now), nil
}

// invoiceResponse adjunta la etapa de visualización y la fecha límite de pago.
func invoiceResponse(inv entity.Invoice, now time.Time) dto.InvoiceResponse {
	resp := dto.InvoiceResponse{
		Invoice:      inv,
		RuntimeStage: invoicing.Stage(&inv, now),
	}
	if due, ok := invoicing.DueDate(&inv); ok {
		resp.DueDate = &due
	}
	return resp
}

func invoiceResponses(invoices []entity.Invoice, now time.Time) []dto.InvoiceResponse {
	sorted := make([]entity.Invoice, len(invoices))
	copy(sorted, invoices)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	out := make([]dto.InvoiceResponse, 0, len(sorted))
	for _, inv := range sorted {
		out = append(out, invoiceResponse(inv, now))
	}
	return out
}
