package repository

import "github.com/brightstage/rentalops-api/internal/domain/entity"

// InvoiceRepository puerto de persistencia de facturas.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	GetByID(id string) (*entity.Invoice, error)
	// Count devuelve el total de facturas existentes. Se usa para el consecutivo
	// INV-<año>-DEP-<seq>; no es seguro bajo creación concurrente (brecha
	// conocida del esquema de numeración).
	Count() (int, error)
	ListByProject(projectID string) ([]*entity.Invoice, error)
}
