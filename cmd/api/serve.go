package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/spf13/cobra"

	"github.com/jhoicas/invoice-builder-api/internal/application/billing"
	"github.com/jhoicas/invoice-builder-api/internal/application/validation"
	"github.com/jhoicas/invoice-builder-api/internal/domain/currency"
	"github.com/jhoicas/invoice-builder-api/internal/domain/invoicing"
	"github.com/jhoicas/invoice-builder-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/invoice-builder-api/internal/interfaces/http"
	"github.com/jhoicas/invoice-builder-api/pkg/config"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Arranca el servidor HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("number_strategy", cfg.Invoice.NumberStrategy).
		Msg("iniciando aplicación")

	if cfg.DB.MigrationsAuto {
		if err := migrateUp(cfg, log); err != nil {
			return err
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()

	// Tabla ISO-4217 cargada una sola vez e inyectada en validación y redondeo.
	catalog := currency.NewISOCatalog()
	validator := validation.New(catalog)

	var numbers invoicing.NumberGenerator
	switch cfg.Invoice.NumberStrategy {
	case config.NumberStrategyMemory:
		numbers = invoicing.NewSequenceCounter(nil)
	default:
		numbers = postgres.NewInvoiceNumberSequence(pool)
	}

	invoiceRepo := postgres.NewInvoiceRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	senderRepo := postgres.NewSenderRepository(pool)
	currencyRepo := postgres.NewCurrencyRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	invoiceUC := billing.NewInvoiceUseCase(txRunner, invoiceRepo, customerRepo, senderRepo, numbers, catalog, validator, log)
	customerUC := billing.NewCustomerUseCase(customerRepo, validator, log)
	senderUC := billing.NewSenderUseCase(senderRepo, validator, log)
	currencyUC := billing.NewCurrencyUseCase(currencyRepo)

	app := httpRouter.NewApp(cfg.App.Name, log)

	// Swagger UI: http://localhost:<port>/docs
	if cfg.App.SwaggerEnabled {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Invoice Builder API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		InvoiceUC:  invoiceUC,
		CustomerUC: customerUC,
		SenderUC:   senderUC,
		CurrencyUC: currencyUC,
		Versions: httpRouter.VersionConfig{
			Default:   cfg.API.DefaultVersion,
			Supported: cfg.API.SupportedVersions,
		},
		AppName: cfg.App.Name,
	})

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(cfg.HTTP.Addr())
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
		log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	case err := <-listenErr:
		if err != nil {
			return fmt.Errorf("servidor HTTP: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
	return nil
}
