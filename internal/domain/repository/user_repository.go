package repository

import "github.com/brightstage/rentalops-api/internal/domain/entity"

// UserRepository puerto de persistencia de usuarios y su historial de puntos.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	List() ([]*entity.User, error)
	// AwardPoints aplica un abono/castigo de puntos de forma idempotente por
	// (userID, projectID): si ya existe una entrada para esa pareja no inserta
	// ni vuelve a sumar, y devuelve false. Debe usarse dentro de la
	// transacción de finalización del retorno.
	AwardPoints(userID, projectID string, points int, reason string) (bool, error)
	PointsHistory(userID string) ([]*entity.PointsEntry, error)
}
