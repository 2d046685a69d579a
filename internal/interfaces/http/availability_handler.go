package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/brightstage/rentalops-api/internal/application/availability"
	"github.com/brightstage/rentalops-api/internal/application/dto"
	"github.com/brightstage/rentalops-api/internal/domain"
)

// AvailabilityHandler expone el motor de disponibilidad.
type AvailabilityHandler struct {
	uc *availability.UseCase
}

// NewAvailabilityHandler construye el handler de disponibilidad.
func NewAvailabilityHandler(uc *availability.UseCase) *AvailabilityHandler {
	return &AvailabilityHandler{uc: uc}
}

// Check godoc
// @Summary      Consultar disponibilidad de inventario, transporte y personal
// @Tags         availability
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AvailabilityRequest  true  "ventana de fechas y sitio"
// @Success      200   {object}  dto.AvailabilityResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/availability/check [post]
func (h *AvailabilityHandler) Check(c *fiber.Ctx) error {
	var in dto.AvailabilityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Check(in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(resp)
}
