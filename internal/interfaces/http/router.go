package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/invoice-builder-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	InvoiceUC  InvoiceService
	CustomerUC CustomerService
	SenderUC   SenderService
	CurrencyUC CurrencyService
	Versions   VersionConfig
	AppName    string
}

// NewApp crea la app Fiber con el ErrorHandler central y el log de peticiones.
// recover va después del logger para que un panic también quede registrado como 500.
func NewApp(name string, log *logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler(log),
	})
	app.Use(RequestLogger(log))
	app.Use(recover.New())
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	api := app.Group("/api/v1", APIVersion(deps.Versions))
	versionHandler := NewVersionHandler(deps.Versions)

	// Invoices
	invoices := api.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	invoices.Get("/version", versionHandler.Info("facturas"))
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Delete("/:id", invoiceHandler.Delete)
	invoices.Get("/:id/line-items", invoiceHandler.GetLineItems)

	// Customers
	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/version", versionHandler.Info("clientes"))
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// Senders
	senders := api.Group("/senders")
	senderHandler := NewSenderHandler(deps.SenderUC)
	senders.Get("/version", versionHandler.Info("emisores"))
	senders.Post("/", senderHandler.Create)
	senders.Get("/", senderHandler.List)
	senders.Get("/:id", senderHandler.GetByID)
	senders.Put("/:id", senderHandler.Update)
	senders.Delete("/:id", senderHandler.Delete)

	// Currencies
	currencies := api.Group("/currencies")
	currencyHandler := NewCurrencyHandler(deps.CurrencyUC)
	currencies.Get("/", currencyHandler.List)
	currencies.Get("/:code", currencyHandler.GetByCode)
}
