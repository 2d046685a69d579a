package repository

import (
	"time"

	"github.com/brightstage/rentalops-api/internal/domain/entity"
)

// ProjectRepository puerto de persistencia del agregado Project.
type ProjectRepository interface {
	Create(p *entity.Project) error
	GetByID(id string) (*entity.Project, error)
	// Update persiste el agregado completo (líneas, transporte y reporte incluidos).
	Update(p *entity.Project) error
	List(status string, limit, offset int) ([]*entity.Project, error)
	// FindOverlapping devuelve los proyectos cuyo status está en statuses y cuya
	// ventana de fechas solapa [start, end] (start <= end AND end >= start),
	// excluyendo excludeID si no está vacío.
	FindOverlapping(start, end time.Time, statuses []string, excludeID string) ([]*entity.Project, error)
}
