package entity

import "time"

// Roles válidos para User.
const (
	RoleFounder     = "Founder"
	RoleManager     = "Manager"
	RoleStorekeeper = "Storekeeper"
	RoleSiteManager = "Site Manager"
	RoleWorker      = "Worker"
)

// User usuario del sistema con su saldo de puntos de desempeño.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Phone        string
	Role         string
	Status       string // active, inactive, suspended
	Points       int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PointsEntry entrada del historial de puntos. La clave (UserID, ProjectID)
// hace idempotente el abono por retorno: reintentar la finalización no
// duplica puntos.
type PointsEntry struct {
	ID        string
	UserID    string
	ProjectID string
	Reason    string
	Points    int
	Date      time.Time
}
