package quote

import (
	"context"

	"github.com/brightstage/rentalops-api/internal/domain/entity"
	"github.com/brightstage/rentalops-api/internal/domain/repository"
)

// TxRunner ejecuta la aceptación de una cotización en una sola transacción:
// el proyecto pasa a Confirmed, se emite la factura de anticipo y se crean
// las reservas, o no ocurre nada.
type TxRunner interface {
	RunAcceptance(ctx context.Context, fn func(
		projectRepo repository.ProjectRepository,
		invoiceRepo repository.InvoiceRepository,
		reservationRepo repository.ReservationRepository,
	) error) error
}

// Notifier aviso post-aceptación (correo al equipo comercial). Mejor esfuerzo:
// la implementación registra el fallo y no lo propaga.
type Notifier interface {
	QuoteAccepted(project *entity.Project, invoice *entity.Invoice)
}
