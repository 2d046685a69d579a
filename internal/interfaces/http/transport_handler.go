package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/brightstage/rentalops-api/internal/application/dto"
	"github.com/brightstage/rentalops-api/internal/application/transport"
	"github.com/brightstage/rentalops-api/internal/domain"
)

// TransportHandler maneja conductores, vehículos y clientes.
type TransportHandler struct {
	uc *transport.UseCase
}

// NewTransportHandler construye el handler de transporte.
func NewTransportHandler(uc *transport.UseCase) *TransportHandler {
	return &TransportHandler{uc: uc}
}

// transportError mapea errores comunes del CRUD de transporte.
func transportError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// CreateDriver registra un conductor.
// POST /api/drivers
func (h *TransportHandler) CreateDriver(c *fiber.Ctx) error {
	var in dto.DriverRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	d, err := h.uc.CreateDriver(c.Context(), in)
	if err != nil {
		return transportError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(d)
}

// GetDriver obtiene un conductor. GET /api/drivers/:id
func (h *TransportHandler) GetDriver(c *fiber.Ctx) error {
	d, err := h.uc.GetDriver(c.Context(), c.Params("id"))
	if err != nil {
		return transportError(c, err)
	}
	return c.JSON(d)
}

// ListDrivers lista conductores. GET /api/drivers
func (h *TransportHandler) ListDrivers(c *fiber.Ctx) error {
	drivers, err := h.uc.ListDrivers(c.Context())
	if err != nil {
		return transportError(c, err)
	}
	return c.JSON(drivers)
}

// CreateVehicle registra un vehículo.
// POST /api/vehicles
func (h *TransportHandler) CreateVehicle(c *fiber.Ctx) error {
	var in dto.VehicleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	v, err := h.uc.CreateVehicle(c.Context(), in)
	if err != nil {
		return transportError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(v)
}

// GetVehicle obtiene un vehículo. GET /api/vehicles/:id
func (h *TransportHandler) GetVehicle(c *fiber.Ctx) error {
	v, err := h.uc.GetVehicle(c.Context(), c.Params("id"))
	if err != nil {
		return transportError(c, err)
	}
	return c.JSON(v)
}

// ListVehicles lista vehículos. GET /api/vehicles
func (h *TransportHandler) ListVehicles(c *fiber.Ctx) error {
	vehicles, err := h.uc.ListVehicles(c.Context())
	if err != nil {
		return transportError(c, err)
	}
	return c.JSON(vehicles)
}

// CreateClient registra un cliente.
// POST /api/clients
func (h *TransportHandler) CreateClient(c *fiber.Ctx) error {
	var in dto.ClientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cl, err := h.uc.CreateClient(c.Context(), in)
	if err != nil {
		return transportError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cl)
}

// GetClient obtiene un cliente. GET /api/clients/:id
func (h *TransportHandler) GetClient(c *fiber.Ctx) error {
	cl, err := h.uc.GetClient(c.Context(), c.Params("id"))
	if err != nil {
		return transportError(c, err)
	}
	return c.JSON(cl)
}

// ListClients lista clientes. GET /api/clients
func (h *TransportHandler) ListClients(c *fiber.Ctx) error {
	clients, err := h.uc.ListClients(c.Context())
	if err != nil {
		return transportError(c, err)
	}
	return c.JSON(clients)
}
