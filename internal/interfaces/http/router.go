package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/application/billing"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CustomerUC *billing.CustomerUseCase
	OrderUC    *billing.OrderUseCase
	InvoiceUC  *billing.InvoiceUseCase
	WeeklyUC   *billing.WeeklyUseCase
	PDFUC      *billing.PDFUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Catálogo (estático)
	api.Get("/catalog", CatalogHandler)

	// Customers
	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)

	// Orders
	orders := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Get("/", orderHandler.List)
	orders.Post("/", orderHandler.Create)
	orders.Put("/:id", orderHandler.Update)
	orders.Post("/:id/invoice", orderHandler.BillSingle)

	// Invoices
	invoices := api.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.WeeklyUC, deps.PDFUC)
	invoices.Get("/", invoiceHandler.List)
	invoices.Post("/weekly", invoiceHandler.BillWeekly)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Patch("/:id/sent", invoiceHandler.MarkSent)
	invoices.Patch("/:id/paid", invoiceHandler.MarkPaid)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
}
