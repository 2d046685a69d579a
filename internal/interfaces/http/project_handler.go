package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/brightstage/rentalops-api/internal/application/dto"
	"github.com/brightstage/rentalops-api/internal/application/project"
	"github.com/brightstage/rentalops-api/internal/domain"
	"github.com/brightstage/rentalops-api/internal/domain/entity"
	"github.com/brightstage/rentalops-api/internal/infrastructure/qr"
)

// ProjectHandler maneja el CRUD y el ciclo de vida de los proyectos.
type ProjectHandler struct {
	crud      *project.CrudUseCase
	lifecycle *project.LifecycleUseCase
	encoder   *qr.Encoder
}

// NewProjectHandler construye el handler de proyectos.
func NewProjectHandler(crud *project.CrudUseCase, lifecycle *project.LifecycleUseCase, encoder *qr.Encoder) *ProjectHandler {
	return &ProjectHandler{crud: crud, lifecycle: lifecycle, encoder: encoder}
}

// projectError mapea los errores de dominio del ciclo de vida a respuestas HTTP.
func projectError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "proyecto no encontrado"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidToken):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QR", Message: err.Error()})
	case errors.Is(err, domain.ErrProjectLocked):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "LOCKED", Message: "el proyecto está bloqueado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: err.Error()})
	case errors.Is(err, domain.ErrReturnNotDue):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "RETURN_NOT_DUE", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// Create godoc
// @Summary      Crear proyecto (queda en Draft)
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProjectRequest  true  "datos del proyecto"
// @Success      201   {object}  entity.Project
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/projects [post]
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProjectRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	p, err := h.crud.Create(c.Context(), GetUserID(c), GetUserName(c), in)
	if err != nil {
		return projectError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// GetByID obtiene el detalle de un proyecto.
// GET /api/projects/:id
func (h *ProjectHandler) GetByID(c *fiber.Ctx) error {
	p, err := h.crud.Get(c.Context(), c.Params("id"))
	if err != nil {
		return projectError(c, err)
	}
	return c.JSON(p)
}

// List lista proyectos con filtro opcional por estado y paginación.
// GET /api/projects?status=Confirmed&limit=20&offset=0
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros de paginación inválidos"})
	}
	projects, err := h.crud.List(c.Context(), c.Query("status"), page)
	if err != nil {
		return projectError(c, err)
	}
	return c.JSON(projects)
}

// Update edición parcial de un proyecto. Con el proyecto bloqueado solo
// los roles privilegiados pueden editar.
// PUT /api/projects/:id
func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProjectRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	p, err := h.crud.Update(c.Context(), c.Params("id"), GetRole(c), in)
	if err != nil {
		return projectError(c, err)
	}
	return c.JSON(p)
}

// Lock bloquea el proyecto contra ediciones.
// POST /api/projects/:id/lock
func (h *ProjectHandler) Lock(c *fiber.Ctx) error {
	p, err := h.lifecycle.Lock(c.Context(), c.Params("id"))
	if err != nil {
		return projectError(c, err)
	}
	return c.JSON(p)
}

// Unlock desbloquea el proyecto y registra quién lo hizo.
// POST /api/projects/:id/unlock
func (h *ProjectHandler) Unlock(c *fiber.Ctx) error {
	p, err := h.lifecycle.Unlock(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return projectError(c, err)
	}
	return c.JSON(p)
}

// Validate valida la preparación completa y fuerza el estado Pickup.
// POST /api/projects/:id/validate
func (h *ProjectHandler) Validate(c *fiber.Ctx) error {
	p, err := h.lifecycle.Validate(c.Context(), c.Params("id"))
	if err != nil {
		return projectError(c, err)
	}
	return c.JSON(p)
}

// ValidateManifest valida solo el manifiesto de salida, sin mover el estado comercial.
// POST /api/projects/:id/validate-manifest
func (h *ProjectHandler) ValidateManifest(c *fiber.Ctx) error {
	p, err := h.lifecycle.ValidateManifest(c.Context(), c.Params("id"))
	if err != nil {
		return projectError(c, err)
	}
	return c.JSON(p)
}

// CancelValidation revierte la validación y anula el QR de salida emitido.
// POST /api/projects/:id/cancel-validation
func (h *ProjectHandler) CancelValidation(c *fiber.Ctx) error {
	p, err := h.lifecycle.CancelValidation(c.Context(), c.Params("id"))
	if err != nil {
		return projectError(c, err)
	}
	return c.JSON(p)
}

// IssueExitQR emite (o reemplaza) el QR de salida de bodega.
// POST /api/projects/:id/qr/exit
func (h *ProjectHandler) IssueExitQR(c *fiber.Ctx) error {
	p, err := h.lifecycle.IssueExitQR(c.Context(), c.Params("id"))
	if err != nil {
		return projectError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(h.qrResponse(p.ExitQR))
}

// ScanExit consume el QR de salida y marca el material como en sitio.
// POST /api/projects/:id/scan/exit
func (h *ProjectHandler) ScanExit(c *fiber.Ctx) error {
	var in dto.ScanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	p, err := h.lifecycle.ScanExit(c.Context(), c.Params("id"), in.QRCode, GetUserID(c))
	if err != nil {
		return projectError(c, err)
	}
	return c.JSON(p)
}

// IssueReturnQR emite el QR de retorno. Solo disponible desde la fecha de fin del evento.
// POST /api/projects/:id/qr/return
func (h *ProjectHandler) IssueReturnQR(c *fiber.Ctx) error {
	p, err := h.lifecycle.IssueReturnQR(c.Context(), c.Params("id"))
	if err != nil {
		return projectError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(h.qrResponse(p.ReturnQR))
}

// ScanReturn verifica el QR de retorno sin consumirlo. El cierre real
// ocurre en FinalizeReturn.
// POST /api/projects/:id/scan/return
func (h *ProjectHandler) ScanReturn(c *fiber.Ctx) error {
	var in dto.ScanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	p, err := h.lifecycle.ScanReturn(c.Context(), c.Params("id"), in.QRCode)
	if err != nil {
		return projectError(c, err)
	}
	return c.JSON(p)
}

// FinalizeReturn cierra el proyecto con el checklist de retorno: consume el QR,
// libera reservas, mueve material roto a mantenimiento y puntúa al equipo.
// POST /api/projects/:id/finalize-return
func (h *ProjectHandler) FinalizeReturn(c *fiber.Ctx) error {
	var in dto.FinalizeReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	p, err := h.lifecycle.FinalizeReturn(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return projectError(c, err)
	}
	return c.JSON(p)
}

// qrResponse arma la respuesta de emisión con el PNG en base64. Si el render
// falla se devuelve igualmente el token (el PNG es conveniencia para el front).
func (h *ProjectHandler) qrResponse(token entity.QRToken) dto.QRResponse {
	resp := dto.QRResponse{QRCode: token.Value(), IssuedAt: token.IssuedAt()}
	if h.encoder != nil {
		if png, err := h.encoder.PNGBase64(token.Value()); err == nil {
			resp.PNGBase64 = png
		}
	}
	return resp
}
