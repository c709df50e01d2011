package billing

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// Store contrato que el núcleo de facturación exige al almacenamiento.
//
// Mutate encola la transformación detrás de todas las mutaciones anteriores y
// la ejecuta estrictamente después de que terminen: como máximo una escritura
// física en vuelo, y cada transformación observa un estado que ya refleja
// todas las mutaciones previas. Una mutación de varios pasos (p. ej. la
// facturación semanal de varios clientes) es atómica frente a otras
// mutaciones porque corre como una sola unidad encolada. Si la transformación
// devuelve error no se persiste nada.
//
// Read es idempotente y devuelve siempre una estructura bien formada, incluso
// con el medio recién inicializado.
type Store interface {
	Read(ctx context.Context) (*entity.Database, error)
	Mutate(ctx context.Context, fn func(db *entity.Database) error) (*entity.Database, error)
}

// InvoicePDFGenerator genera la representación gráfica de una factura
// finalizada. Solo presentación: consume la factura tal cual, sin recalcular.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice *entity.Invoice, customer *entity.Customer) ([]byte, error)
}

// Generadores de IDs opacos, con prefijo por tipo para facilitar el debug.
// Solo importa la unicidad; el formato del prefijo no es contractual.

func NewCustomerID() string { return "cust_" + uuid.NewString() }
func NewOrderID() string    { return "ord_" + uuid.NewString() }
func NewInvoiceID() string  { return "inv_" + uuid.NewString() }
