package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/brightstage/rentalops-api/internal/application/dto"
	"github.com/brightstage/rentalops-api/internal/application/hr"
	"github.com/brightstage/rentalops-api/internal/domain"
)

// HRHandler maneja la asistencia (check-in/check-out con geocerca).
type HRHandler struct {
	uc *hr.UseCase
}

// NewHRHandler construye el handler de asistencia.
func NewHRHandler(uc *hr.UseCase) *HRHandler {
	return &HRHandler{uc: uc}
}

// CheckIn godoc
// @Summary      Registrar entrada (valida geocerca si se indica proyecto)
// @Tags         hr
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckInRequest  true  "proyecto opcional y ubicación"
// @Success      201   {object}  entity.Attendance
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/hr/check-in [post]
func (h *HRHandler) CheckIn(c *fiber.Ctx) error {
	var in dto.CheckInRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	session, err := h.uc.CheckIn(c.Context(), GetUserID(c), GetUserName(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrOpenSession) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "OPEN_SESSION", Message: "ya existe una sesión abierta"})
		}
		if errors.Is(err, domain.ErrGeofenceViolation) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "GEOFENCE", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "proyecto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(session)
}

// CheckOut cierra la sesión abierta y calcula el desglose de horas.
// POST /api/hr/check-out
func (h *HRHandler) CheckOut(c *fiber.Ctx) error {
	var in dto.CheckOutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	session, err := h.uc.CheckOut(c.Context(), GetUserID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrNoOpenSession) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NO_OPEN_SESSION", Message: "no hay sesión abierta"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(session)
}

// Status devuelve si el usuario tiene una sesión abierta.
// GET /api/hr/status
func (h *HRHandler) Status(c *fiber.Ctx) error {
	status, err := h.uc.Status(c.Context(), GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(status)
}

// History lista las últimas sesiones del usuario autenticado.
// GET /api/hr/history?limit=30
func (h *HRHandler) History(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	sessions, err := h.uc.History(c.Context(), GetUserID(c), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(sessions)
}
