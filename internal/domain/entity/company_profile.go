package entity

// CompanyProfile identidad del emisor de las facturas. Es configuración, no
// parte del núcleo de facturación, pero cada factura guarda una instantánea.
type CompanyProfile struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// DefaultCompanyProfile perfil usado cuando el almacén se inicializa vacío.
func DefaultCompanyProfile() CompanyProfile {
	return CompanyProfile{
		Name:    "Auto-Anlage GmbH",
		Address: "Musterstraße 1, 80331 München",
		Email:   "rechnung@auto-anlage.de",
		Phone:   "+49 89 000000",
	}
}
