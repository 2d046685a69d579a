package repository

import "github.com/brightstage/rentalops-api/internal/domain/entity"

// DriverRepository puerto de persistencia de conductores.
type DriverRepository interface {
	Create(d *entity.Driver) error
	GetByID(id string) (*entity.Driver, error)
	List() ([]*entity.Driver, error)
}

// VehicleRepository puerto de persistencia de vehículos.
type VehicleRepository interface {
	Create(v *entity.Vehicle) error
	GetByID(id string) (*entity.Vehicle, error)
	List() ([]*entity.Vehicle, error)
}

// ClientRepository puerto de persistencia de clientes.
type ClientRepository interface {
	Create(c *entity.Client) error
	GetByID(id string) (*entity.Client, error)
	List() ([]*entity.Client, error)
}
