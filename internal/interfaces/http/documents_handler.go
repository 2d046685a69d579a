package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/brightstage/rentalops-api/internal/application/documents"
	"github.com/brightstage/rentalops-api/internal/application/dto"
	"github.com/brightstage/rentalops-api/internal/domain"
)

// DocumentsHandler sirve los PDF de facturas y manifiestos.
type DocumentsHandler struct {
	uc *documents.UseCase
}

// NewDocumentsHandler construye el handler de documentos.
func NewDocumentsHandler(uc *documents.UseCase) *DocumentsHandler {
	return &DocumentsHandler{uc: uc}
}

// InvoicePDF descarga el PDF de una factura.
// GET /api/invoices/:id/pdf
func (h *DocumentsHandler) InvoicePDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.uc.DownloadInvoicePDF(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "factura no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdfBytes)
}

// ExitManifestPDF descarga el manifiesto de salida de un proyecto validado.
// GET /api/projects/:id/manifest.pdf
func (h *DocumentsHandler) ExitManifestPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.uc.DownloadExitManifestPDF(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "proyecto no encontrado"})
		}
		if errors.Is(err, domain.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NOT_VALIDATED", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdfBytes)
}
