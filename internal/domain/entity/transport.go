package entity

import "time"

// Driver conductor con referencia fuerte (el cálculo de disponibilidad agrupa
// por ID, no por nombre).
type Driver struct {
	ID        string
	Name      string
	License   string
	Phone     string
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Vehicle vehículo de transporte, identificado por ID; la placa es display.
type Vehicle struct {
	ID        string
	Model     string
	Plate     string
	Capacity  string // ej. "3.5t"
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Client cliente del proyecto (datos de facturación).
type Client struct {
	ID            string
	Name          string
	Address       string
	ContactPerson string
	Phone         string
	Email         string
	TaxID         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
