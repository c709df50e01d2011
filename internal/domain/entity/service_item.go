package entity

import "github.com/shopspring/decimal"

// ServiceItem entrada del catálogo de servicios facturables (estático, no se
// persiste por cliente).
type ServiceItem struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}
