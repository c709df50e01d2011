package entity

import "time"

// Customer representa un cliente B2B (concesionario o fabricante) de la empresa
// de embellecimiento de vehículos. Inmutable después de su creación: no hay
// operación de edición ni de borrado.
type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ShortName string    `json:"shortName,omitempty"`
	Address   string    `json:"address,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
