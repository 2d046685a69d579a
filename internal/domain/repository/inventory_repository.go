package repository

import "github.com/brightstage/rentalops-api/internal/domain/entity"

// InventoryRepository puerto de persistencia del inventario.
type InventoryRepository interface {
	Create(item *entity.InventoryItem) error
	Update(item *entity.InventoryItem) error
	GetByID(id string) (*entity.InventoryItem, error)
	GetByBarcode(barcode string) (*entity.InventoryItem, error)
	List() ([]*entity.InventoryItem, error)
}
