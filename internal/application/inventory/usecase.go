// Package inventory CRUD del inventario de bodega y búsqueda por código de barras.
package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brightstage/rentalops-api/internal/application/dto"
	"github.com/brightstage/rentalops-api/internal/domain"
	"github.com/brightstage/rentalops-api/internal/domain/entity"
	"github.com/brightstage/rentalops-api/internal/domain/repository"
)

// UseCase operaciones sobre el inventario.
type UseCase struct {
	inventoryRepo repository.InventoryRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(inventoryRepo repository.InventoryRepository) *UseCase {
	return &UseCase{inventoryRepo: inventoryRepo}
}

// Create da de alta un ítem.
func (uc *UseCase) Create(ctx context.Context, in dto.InventoryItemRequest) (*entity.InventoryItem, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	if in.Barcode != "" {
		existing, err := uc.inventoryRepo.GetByBarcode(in.Barcode)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: código de barras %s ya registrado", domain.ErrDuplicate, in.Barcode)
		}
	}

	now := time.Now()
	item := &entity.InventoryItem{
		ID:        uuid.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	apply(item, in)
	if err := uc.inventoryRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Update edita un ítem existente (reemplazo completo de campos editables).
func (uc *UseCase) Update(ctx context.Context, id string, in dto.InventoryItemRequest) (*entity.InventoryItem, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	item, err := uc.inventoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	apply(item, in)
	item.UpdatedAt = time.Now()
	if err := uc.inventoryRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Get devuelve el ítem por ID.
func (uc *UseCase) Get(ctx context.Context, id string) (*entity.InventoryItem, error) {
	item, err := uc.inventoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// GetByBarcode búsqueda por código de barras (escáner de bodega).
func (uc *UseCase) GetByBarcode(ctx context.Context, barcode string) (*entity.InventoryItem, error) {
	item, err := uc.inventoryRepo.GetByBarcode(barcode)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// List todo el inventario.
func (uc *UseCase) List(ctx context.Context) ([]*entity.InventoryItem, error) {
	return uc.inventoryRepo.List()
}

func validate(in dto.InventoryItemRequest) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	if in.Quantity < 0 || in.MaintenanceQuantity < 0 {
		return fmt.Errorf("%w: las cantidades no pueden ser negativas", domain.ErrInvalidInput)
	}
	if in.MaintenanceQuantity > in.Quantity {
		return fmt.Errorf("%w: maintenanceQuantity no puede superar quantity", domain.ErrInvalidInput)
	}
	return nil
}

func apply(item *entity.InventoryItem, in dto.InventoryItemRequest) {
	item.Name = in.Name
	item.Quantity = in.Quantity
	item.MaintenanceQuantity = in.MaintenanceQuantity
	item.Brand = in.Brand
	item.Model = in.Model
	item.Category = in.Category
	item.State = in.State
	if item.State == "" {
		item.State = entity.ItemStateFunctional
	}
	item.Type = in.Type
	if item.Type == "" {
		item.Type = entity.ItemTypeRent
	}
	item.Ownership = in.Ownership
	item.StorageLocation = in.StorageLocation
	item.Weight = in.Weight
	item.PurchasePrice = in.PurchasePrice
	item.RentalPricePerDay = in.RentalPricePerDay
	item.TaxRate = in.TaxRate
	item.Barcode = in.Barcode
	item.Notes = in.Notes
}
