package project

import (
	"context"

	"github.com/brightstage/rentalops-api/internal/domain/repository"
)

// TxRunner ejecuta la finalización del retorno dentro de una transacción:
// el reporte, los puntos del equipo, las reservas y el inventario se escriben
// todos o ninguno.
type TxRunner interface {
	RunFinalize(ctx context.Context, fn func(
		projectRepo repository.ProjectRepository,
		userRepo repository.UserRepository,
		reservationRepo repository.ReservationRepository,
		inventoryRepo repository.InventoryRepository,
	) error) error
}
