package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/brightstage/rentalops-api/internal/domain/entity"
	"github.com/brightstage/rentalops-api/internal/domain/repository"
)

var (
	_ repository.DriverRepository  = (*DriverRepo)(nil)
	_ repository.VehicleRepository = (*VehicleRepo)(nil)
	_ repository.ClientRepository  = (*ClientRepo)(nil)
)

// DriverRepo implementación de DriverRepository sobre PostgreSQL (usable con pool o tx).
type DriverRepo struct {
	q Querier
}

// NewDriverRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDriverRepository(q Querier) *DriverRepo {
	return &DriverRepo{q: q}
}

func (r *DriverRepo) Create(d *entity.Driver) error {
	query := `
		INSERT INTO drivers (id, name, license, phone, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.Name, d.License, d.Phone, d.Status, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert driver: %w", err)
	}
	return nil
}

func (r *DriverRepo) GetByID(id string) (*entity.Driver, error) {
	query := `SELECT id, name, license, phone, status, created_at, updated_at FROM drivers WHERE id = $1`
	var d entity.Driver
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&d.ID, &d.Name, &d.License, &d.Phone, &d.Status, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get driver by id: %w", err)
	}
	return &d, nil
}

func (r *DriverRepo) List() ([]*entity.Driver, error) {
	query := `SELECT id, name, license, phone, status, created_at, updated_at FROM drivers ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	defer rows.Close()

	var out []*entity.Driver
	for rows.Next() {
		var d entity.Driver
		if err := rows.Scan(&d.ID, &d.Name, &d.License, &d.Phone, &d.Status, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan driver: %w", err)
		}
		out = append(out, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate drivers: %w", err)
	}
	return out, nil
}

// VehicleRepo implementación de VehicleRepository sobre PostgreSQL (usable con pool o tx).
type VehicleRepo struct {
	q Querier
}

// NewVehicleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVehicleRepository(q Querier) *VehicleRepo {
	return &VehicleRepo{q: q}
}

func (r *VehicleRepo) Create(v *entity.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, model, plate, capacity, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		v.ID, v.Model, v.Plate, v.Capacity, v.Status, v.CreatedAt, v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert vehicle: %w", err)
	}
	return nil
}

func (r *VehicleRepo) GetByID(id string) (*entity.Vehicle, error) {
	query := `SELECT id, model, plate, capacity, status, created_at, updated_at FROM vehicles WHERE id = $1`
	var v entity.Vehicle
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&v.ID, &v.Model, &v.Plate, &v.Capacity, &v.Status, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vehicle by id: %w", err)
	}
	return &v, nil
}

func (r *VehicleRepo) List() ([]*entity.Vehicle, error) {
	query := `SELECT id, model, plate, capacity, status, created_at, updated_at FROM vehicles ORDER BY plate`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()

	var out []*entity.Vehicle
	for rows.Next() {
		var v entity.Vehicle
		if err := rows.Scan(&v.ID, &v.Model, &v.Plate, &v.Capacity, &v.Status, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		out = append(out, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vehicles: %w", err)
	}
	return out, nil
}

// ClientRepo implementación de ClientRepository sobre PostgreSQL (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

func (r *ClientRepo) Create(c *entity.Client) error {
	query := `
		INSERT INTO clients (id, name, address, contact_person, phone, email, tax_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Name, c.Address, c.ContactPerson, c.Phone, c.Email, c.TaxID, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

func (r *ClientRepo) GetByID(id string) (*entity.Client, error) {
	query := `
		SELECT id, name, address, contact_person, phone, email, tax_id, created_at, updated_at
		FROM clients WHERE id = $1`
	var c entity.Client
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Name, &c.Address, &c.ContactPerson, &c.Phone, &c.Email, &c.TaxID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client by id: %w", err)
	}
	return &c, nil
}

func (r *ClientRepo) List() ([]*entity.Client, error) {
	query := `
		SELECT id, name, address, contact_person, phone, email, tax_id, created_at, updated_at
		FROM clients ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var out []*entity.Client
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Address, &c.ContactPerson, &c.Phone, &c.Email, &c.TaxID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clients: %w", err)
	}
	return out, nil
}
