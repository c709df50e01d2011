package entity

// Database es la raíz del agregado: un único documento mutable compartido.
// Todas las operaciones de facturación leen el agregado completo, lo
// transforman y lo escriben de vuelta de forma atómica (ver el store).
type Database struct {
	CompanyProfile CompanyProfile `json:"companyProfile"`
	Customers      []Customer     `json:"customers"`
	Orders         []Order        `json:"orders"`
	Invoices       []Invoice      `json:"invoices"`
}

// NewDatabase devuelve un agregado vacío con el perfil de empresa por defecto.
func NewDatabase() *Database {
	return &Database{
		CompanyProfile: DefaultCompanyProfile(),
		Customers:      []Customer{},
		Orders:         []Order{},
		Invoices:       []Invoice{},
	}
}

// CustomerByID busca un cliente por ID. Devuelve nil si no existe.
func (db *Database) CustomerByID(id string) *Customer {
	for i := range db.Customers {
		if db.Customers[i].ID == id {
			return &db.Customers[i]
		}
	}
	return nil
}

// OrderByID busca un pedido por ID. Devuelve nil si no existe.
func (db *Database) OrderByID(id string) *Order {
	for i := range db.Orders {
		if db.Orders[i].ID == id {
			return &db.Orders[i]
		}
	}
	return nil
}

// InvoiceByID busca una factura por ID. Devuelve nil si no existe.
func (db *Database) InvoiceByID(id string) *Invoice {
	for i := range db.Invoices {
		if db.Invoices[i].ID == id {
			return &db.Invoices[i]
		}
	}
	return nil
}
