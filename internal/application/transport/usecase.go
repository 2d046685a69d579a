// Package transport administra el padrón de conductores, vehículos y clientes.
// Los proyectos referencian estos recursos por ID; el motor de disponibilidad
// agrupa conflictos por esa misma referencia.
package transport

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/brightstage/rentalops-api/internal/application/dto"
	"github.com/brightstage/rentalops-api/internal/domain"
	"github.com/brightstage/rentalops-api/internal/domain/entity"
	"github.com/brightstage/rentalops-api/internal/domain/repository"
)

// UseCase CRUD de los recursos de transporte y clientes.
type UseCase struct {
	drivers  repository.DriverRepository
	vehicles repository.VehicleRepository
	clients  repository.ClientRepository
}

// NewUseCase construye el caso de uso con los tres puertos de persistencia.
func NewUseCase(drivers repository.DriverRepository, vehicles repository.VehicleRepository, clients repository.ClientRepository) *UseCase {
	return &UseCase{drivers: drivers, vehicles: vehicles, clients: clients}
}

// CreateDriver registra un conductor nuevo en estado activo.
func (uc *UseCase) CreateDriver(ctx context.Context, in dto.DriverRequest) (*entity.Driver, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	now := time.Now()
	d := &entity.Driver{
		ID:        uuid.New().String(),
		Name:      in.Name,
		License:   in.License,
		Phone:     in.Phone,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.drivers.Create(d); err != nil {
		return nil, err
	}
	return d, nil
}

// GetDriver obtiene un conductor por ID.
func (uc *UseCase) GetDriver(ctx context.Context, id string) (*entity.Driver, error) {
	d, err := uc.drivers.GetByID(id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

// ListDrivers lista todos los conductores.
func (uc *UseCase) ListDrivers(ctx context.Context) ([]*entity.Driver, error) {
	return uc.drivers.List()
}

// CreateVehicle registra un vehículo nuevo en estado activo.
func (uc *UseCase) CreateVehicle(ctx context.Context, in dto.VehicleRequest) (*entity.Vehicle, error) {
	if in.Model == "" || in.Plate == "" {
		return nil, fmt.Errorf("%w: model y plate son requeridos", domain.ErrInvalidInput)
	}
	now := time.Now()
	v := &entity.Vehicle{
		ID:        uuid.New().String(),
		Model:     in.Model,
		Plate:     in.Plate,
		Capacity:  in.Capacity,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.vehicles.Create(v); err != nil {
		return nil, err
	}
	return v, nil
}

// GetVehicle obtiene un vehículo por ID.
func (uc *UseCase) GetVehicle(ctx context.Context, id string) (*entity.Vehicle, error) {
	v, err := uc.vehicles.GetByID(id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

// ListVehicles lista todos los vehículos.
func (uc *UseCase) ListVehicles(ctx context.Context) ([]*entity.Vehicle, error) {
	return uc.vehicles.List()
}

// CreateClient registra un cliente nuevo.
func (uc *UseCase) CreateClient(ctx context.Context, in dto.ClientRequest) (*entity.Client, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	now := time.Now()
	cl := &entity.Client{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Address:       in.Address,
		ContactPerson: in.ContactPerson,
		Phone:         in.Phone,
		Email:         in.Email,
		TaxID:         in.TaxID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.clients.Create(cl); err != nil {
		return nil, err
	}
	return cl, nil
}

// GetClient obtiene un cliente por ID.
func (uc *UseCase) GetClient(ctx context.Context, id string) (*entity.Client, error) {
	cl, err := uc.clients.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cl == nil {
		return nil, domain.ErrNotFound
	}
	return cl, nil
}

// ListClients lista todos los clientes.
func (uc *UseCase) ListClients(ctx context.Context) ([]*entity.Client, error) {
	return uc.clients.List()
}
