package invoicing

import (
	"fmt"
	"time"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

// PaymentWindow plazo de pago: una factura enviada pasa a verse como vencida
// cuando transcurre este plazo desde sentAt.
const PaymentWindow = 14 * 24 * time.Hour

// Etapas en tiempo de ejecución (visualización). Son los tres estados
// almacenados más "overdue", que se deriva y nunca se persiste.
const (
	StageCreated = "created"
	StageSent    = "sent"
	StageOverdue = "overdue"
	StagePaid    = "paid"
)

// StageLabel etiqueta de la etapa para documentos impresos (el idioma del
// cliente final es alemán).
func StageLabel(stage string) string {
	switch stage {
	case StageCreated:
		return "Erstellt"
	case StageSent:
		return "Abgeschickt"
	case StageOverdue:
		return "Überfällig"
	default:
		return "Bezahlt"
	}
}

// DueDate devuelve la fecha límite de pago. Solo existe para facturas en
// estado almacenado "sent" con sentAt válido.
func DueDate(inv *entity.Invoice) (time.Time, bool) {
	if inv.Status != entity.InvoiceStatusSent || inv.SentAt == nil || inv.SentAt.IsZero() {
		return time.Time{}, false
	}
	return inv.SentAt.Add(PaymentWindow), true
}

// IsOverdue indica si la factura está vencida: enviada y con el plazo de pago
// agotado. Función pura de (status, sentAt, now); nada se materializa.
func IsOverdue(inv *entity.Invoice, now time.Time) bool {
	due, ok := DueDate(inv)
	if !ok {
		return false
	}
	return now.After(due)
}

// Stage deriva la etapa de visualización a partir del estado almacenado y el
// instante actual. "paid" siempre gana, independientemente de las fechas.
func Stage(inv *entity.Invoice, now time.Time) string {
	switch inv.Status {
	case entity.InvoiceStatusPaid:
		return StagePaid
	case entity.InvoiceStatusCreated:
		return StageCreated
	default:
		if IsOverdue(inv, now) {
			return StageOverdue
		}
		return StageSent
	}
}

// MarkSent transición created → sent. Solo se permite desde "created"; desde
// cualquier otro estado devuelve ErrInvalidTransition y la factura no cambia.
func MarkSent(inv *entity.Invoice, now time.Time) error {
	if inv.Status != entity.InvoiceStatusCreated {
		return fmt.Errorf("%w: la factura %s está en estado %q, solo se envía desde %q",
			domain.ErrInvalidTransition, inv.InvoiceNumber, inv.Status, entity.InvoiceStatusCreated)
	}
	inv.Status = entity.InvoiceStatusSent
	inv.SentAt = &now
	return nil
}

// MarkPaid transición hacia paid. Política permisiva (la variante de
// referencia): se acepta desde "created" o desde "sent" — lo que cubre la
// etapa derivada "overdue", que comparte estado almacenado con "sent".
// Una factura ya pagada no se re-marca: paid es terminal y paidAt no se
// sobreescribe en silencio.
func MarkPaid(inv *entity.Invoice, now time.Time) error {
	if inv.Status == entity.InvoiceStatusPaid {
		return fmt.Errorf("%w: la factura %s ya está pagada",
			domain.ErrInvalidTransition, inv.InvoiceNumber)
	}
	inv.Status = entity.InvoiceStatusPaid
	inv.PaidAt = &now
	return nil
}
