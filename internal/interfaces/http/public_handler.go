package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/brightstage/rentalops-api/internal/application/dto"
	"github.com/brightstage/rentalops-api/internal/application/quote"
	"github.com/brightstage/rentalops-api/internal/domain"
)

// PublicHandler expone la vista pública de cotizaciones (sin autenticación).
// El ID del proyecto actúa como capability: quien tiene el enlace puede ver
// y aceptar la cotización.
type PublicHandler struct {
	uc *quote.UseCase
}

// NewPublicHandler construye el handler público de cotizaciones.
func NewPublicHandler(uc *quote.UseCase) *PublicHandler {
	return &PublicHandler{uc: uc}
}

// GetQuote godoc
// @Summary      Ver una cotización (vista cliente, sin costos internos)
// @Tags         public
// @Produce      json
// @Param        id  path  string  true  "ID del proyecto"
// @Success      200  {object}  dto.PublicQuoteResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/public/quotes/{id} [get]
func (h *PublicHandler) GetQuote(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	q, err := h.uc.GetPublic(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cotización no encontrada"})
		}
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "la cotización aún no está publicada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(q)
}

// AcceptQuote godoc
// @Summary      Aceptar una cotización (confirma, factura anticipo y reserva inventario)
// @Tags         public
// @Produce      json
// @Param        id  path  string  true  "ID del proyecto"
// @Success      200  {object}  dto.AcceptQuoteResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/public/quotes/{id}/accept [post]
func (h *PublicHandler) AcceptQuote(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	out, err := h.uc.Accept(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cotización no encontrada"})
		}
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "la cotización aún no está publicada"})
		}
		if errors.Is(err, domain.ErrConflict) {
			// Una cotización ya procesada es una petición mal dirigida del
			// cliente (400), distinta del borrador aún no publicado (403).
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "ALREADY_PROCESSED", Message: "la cotización ya fue procesada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
