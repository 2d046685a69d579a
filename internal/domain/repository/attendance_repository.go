package repository

import (
	"time"

	"github.com/brightstage/rentalops-api/internal/domain/entity"
)

// AttendanceRepository puerto de persistencia de asistencia.
type AttendanceRepository interface {
	Create(a *entity.Attendance) error
	Update(a *entity.Attendance) error
	// FindOpenByUser devuelve la sesión abierta (sin check-out) del usuario, o nil.
	FindOpenByUser(userID string) (*entity.Attendance, error)
	ListByUser(userID string, limit int) ([]*entity.Attendance, error)
	List(limit int) ([]*entity.Attendance, error)
	// FindCheckoutsBetween devuelve los registros con check-out dentro de
	// (from, to) exclusivo, para la regla de descanso mínimo.
	FindCheckoutsBetween(from, to time.Time) ([]*entity.Attendance, error)
}
