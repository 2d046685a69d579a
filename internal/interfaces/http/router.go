package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/brightstage/rentalops-api/internal/application/auth"
	"github.com/brightstage/rentalops-api/internal/application/availability"
	"github.com/brightstage/rentalops-api/internal/application/documents"
	"github.com/brightstage/rentalops-api/internal/application/hr"
	"github.com/brightstage/rentalops-api/internal/application/inventory"
	"github.com/brightstage/rentalops-api/internal/application/project"
	"github.com/brightstage/rentalops-api/internal/application/quote"
	"github.com/brightstage/rentalops-api/internal/application/transport"
	"github.com/brightstage/rentalops-api/internal/domain/entity"
	"github.com/brightstage/rentalops-api/internal/infrastructure/qr"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.UseCase
	ProjectCrudUC  *project.CrudUseCase
	LifecycleUC    *project.LifecycleUseCase
	QuoteUC        *quote.UseCase
	AvailabilityUC *availability.UseCase
	HRUC           *hr.UseCase
	InventoryUC    *inventory.UseCase
	TransportUC    *transport.UseCase
	DocumentsUC    *documents.UseCase
	QREncoder      *qr.Encoder
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Roles con permiso de gestión (desbloqueo, validación, escaneos).
	privileged := RequireRole(entity.RoleFounder, entity.RoleManager, entity.RoleStorekeeper)

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Cotizaciones (público: el cliente final no tiene cuenta, el enlace es la llave)
	public := api.Group("/public")
	publicHandler := NewPublicHandler(deps.QuoteUC)
	public.Get("/quotes/:id", publicHandler.GetQuote)
	public.Post("/quotes/:id/accept", publicHandler.AcceptQuote)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Get("/auth/me", authHandler.Me)
	protected.Get("/users", privileged, authHandler.ListUsers)
	protected.Get("/users/:id/points", authHandler.PointsHistory)

	// Proyectos: CRUD + ciclo de vida
	projects := protected.Group("/projects")
	projectHandler := NewProjectHandler(deps.ProjectCrudUC, deps.LifecycleUC, deps.QREncoder)
	projects.Post("/", projectHandler.Create)
	projects.Get("/", projectHandler.List)
	projects.Get("/:id", projectHandler.GetByID)
	projects.Put("/:id", projectHandler.Update)
	projects.Post("/:id/lock", projectHandler.Lock)
	projects.Post("/:id/unlock", privileged, projectHandler.Unlock)
	projects.Post("/:id/validate", privileged, projectHandler.Validate)
	projects.Post("/:id/validate-manifest", privileged, projectHandler.ValidateManifest)
	projects.Post("/:id/cancel-validation", privileged, projectHandler.CancelValidation)
	// La emisión de QR queda abierta a cualquier usuario autenticado: el jefe
	// de sitio genera el código y el bodeguero lo escanea.
	projects.Post("/:id/qr/exit", projectHandler.IssueExitQR)
	projects.Post("/:id/qr/return", projectHandler.IssueReturnQR)
	projects.Post("/:id/scan/exit", privileged, projectHandler.ScanExit)
	projects.Post("/:id/scan/return", privileged, projectHandler.ScanReturn)
	projects.Post("/:id/finalize-return", privileged, projectHandler.FinalizeReturn)

	// Documentos PDF
	documentsHandler := NewDocumentsHandler(deps.DocumentsUC)
	projects.Get("/:id/manifest.pdf", documentsHandler.ExitManifestPDF)
	protected.Get("/invoices/:id/pdf", documentsHandler.InvoicePDF)

	// Disponibilidad
	availabilityHandler := NewAvailabilityHandler(deps.AvailabilityUC)
	protected.Post("/availability/check", availabilityHandler.Check)

	// Asistencia
	hrGroup := protected.Group("/hr")
	hrHandler := NewHRHandler(deps.HRUC)
	hrGroup.Post("/check-in", hrHandler.CheckIn)
	hrGroup.Post("/check-out", hrHandler.CheckOut)
	hrGroup.Get("/status", hrHandler.Status)
	hrGroup.Get("/history", hrHandler.History)

	// Inventario (escritura restringida a roles de gestión)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	invGroup.Post("/", privileged, inventoryHandler.Create)
	invGroup.Get("/", inventoryHandler.List)
	invGroup.Get("/barcode/:code", inventoryHandler.GetByBarcode)
	invGroup.Get("/:id", inventoryHandler.GetByID)
	invGroup.Put("/:id", privileged, inventoryHandler.Update)

	// Transporte y clientes
	transportHandler := NewTransportHandler(deps.TransportUC)
	drivers := protected.Group("/drivers")
	drivers.Post("/", privileged, transportHandler.CreateDriver)
	drivers.Get("/", transportHandler.ListDrivers)
	drivers.Get("/:id", transportHandler.GetDriver)

	vehicles := protected.Group("/vehicles")
	vehicles.Post("/", privileged, transportHandler.CreateVehicle)
	vehicles.Get("/", transportHandler.ListVehicles)
	vehicles.Get("/:id", transportHandler.GetVehicle)

	clients := protected.Group("/clients")
	clients.Post("/", privileged, transportHandler.CreateClient)
	clients.Get("/", transportHandler.ListClients)
	clients.Get("/:id", transportHandler.GetClient)
}
