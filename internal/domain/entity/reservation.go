package entity

import "time"

// Estados de una reserva.
const (
	ReservationActive    = "Active"
	ReservationCancelled = "Cancelled"
	ReservationCompleted = "Completed"
)

// Reservation asignación comprometida de cantidad de inventario a un proyecto
// para una ventana de fechas. Se crean en bloque al aceptar la cotización y
// sirven de rastro de auditoría, separado del snapshot vivo en Project.Items.
type Reservation struct {
	ID        string
	ProjectID string
	ItemID    string
	ItemName  string // cacheado para display/debug
	Quantity  int
	Start     time.Time
	End       time.Time
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
