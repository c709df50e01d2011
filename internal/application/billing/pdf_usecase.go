package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/Taller-api/internal/domain"
)

// PDFUseCase genera la representación gráfica (PDF) de una factura.
type PDFUseCase struct {
	store     Store
	generator InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(store Store, generator InvoicePDFGenerator) *PDFUseCase {
	return &PDFUseCase{store: store, generator: generator}
}

// DownloadInvoicePDF recupera la factura y produce el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrNotFound        si la factura no existe.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, invoiceID string) (pdfBytes []byte, filename string, err error) {
	db, err := uc.store.Read(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: leer almacén: %w", err)
	}

	inv := db.InvoiceByID(invoiceID)
	if inv == nil {
		return nil, "", fmt.Errorf("%w: factura %s", domain.ErrNotFound, invoiceID)
	}

	// El cliente solo aporta la dirección del receptor; puede faltar si la
	// referencia quedó colgando (la factura lleva su propia instantánea).
	customer := db.CustomerByID(inv.CustomerID)

	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, inv, customer)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("Rechnung-%s.pdf", inv.InvoiceNumber)
	return pdfBytes, filename, nil
}
