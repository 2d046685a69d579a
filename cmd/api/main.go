package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/brightstage/rentalops-api/internal/application/auth"
	"github.com/brightstage/rentalops-api/internal/application/availability"
	"github.com/brightstage/rentalops-api/internal/application/documents"
	"github.com/brightstage/rentalops-api/internal/application/hr"
	"github.com/brightstage/rentalops-api/internal/application/inventory"
	"github.com/brightstage/rentalops-api/internal/application/project"
	"github.com/brightstage/rentalops-api/internal/application/quote"
	"github.com/brightstage/rentalops-api/internal/application/transport"
	"github.com/brightstage/rentalops-api/internal/infrastructure/mailer"
	infrapdf "github.com/brightstage/rentalops-api/internal/infrastructure/pdf"
	"github.com/brightstage/rentalops-api/internal/infrastructure/postgres"
	"github.com/brightstage/rentalops-api/internal/infrastructure/qr"
	httpRouter "github.com/brightstage/rentalops-api/internal/interfaces/http"
	"github.com/brightstage/rentalops-api/pkg/config"
	"github.com/brightstage/rentalops-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	projectRepo := postgres.NewProjectRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	attendanceRepo := postgres.NewAttendanceRepository(pool)
	driverRepo := postgres.NewDriverRepository(pool)
	vehicleRepo := postgres.NewVehicleRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Notificación comercial al aceptar una cotización. Con SMTP_HOST vacío
	// el mailer queda en modo log-only.
	quoteMailer := mailer.NewMailer(cfg.SMTP, cfg.SMTP.SalesInbox, log)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator(infrapdf.CompanyInfo{
		Name:    cfg.Company.Name,
		TaxID:   cfg.Company.TaxID,
		Address: cfg.Company.Address,
		Phone:   cfg.Company.Phone,
		Email:   cfg.Company.Email,
	})
	qrEncoder := qr.NewEncoder()

	authUC := auth.NewUseCase(userRepo, auth.TokenConfig{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		ExpMinutes: cfg.JWT.Expiration,
	})
	projectCrudUC := project.NewCrudUseCase(projectRepo)
	lifecycleUC := project.NewLifecycleUseCase(projectRepo, txRunner)
	quoteUC := quote.NewUseCase(projectRepo, txRunner, quoteMailer)
	availabilityUC := availability.NewUseCase(projectRepo, inventoryRepo, attendanceRepo)
	hrUC := hr.NewUseCase(attendanceRepo, projectRepo)
	inventoryUC := inventory.NewUseCase(inventoryRepo)
	transportUC := transport.NewUseCase(driverRepo, vehicleRepo, clientRepo)
	documentsUC := documents.NewUseCase(invoiceRepo, projectRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Bright Stage RentalOps API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		ProjectCrudUC:  projectCrudUC,
		LifecycleUC:    lifecycleUC,
		QuoteUC:        quoteUC,
		AvailabilityUC: availabilityUC,
		HRUC:           hrUC,
		InventoryUC:    inventoryUC,
		TransportUC:    transportUC,
		DocumentsUC:    documentsUC,
		QREncoder:      qrEncoder,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
