package repository

import "github.com/brightstage/rentalops-api/internal/domain/entity"

// ReservationRepository puerto de persistencia de reservas.
type ReservationRepository interface {
	// CreateBulk inserta el lote de reservas de una aceptación de cotización.
	// Debe usarse dentro de la transacción de la aceptación.
	CreateBulk(reservations []*entity.Reservation) error
	ListByProject(projectID string) ([]*entity.Reservation, error)
	// UpdateStatusByProject marca todas las reservas del proyecto (Cancelled/Completed).
	UpdateStatusByProject(projectID, status string) error
}
