package dto

import (
	"github.com/shopspring/decimal"

	"github.com/brightstage/rentalops-api/internal/domain/entity"
)

// InventoryItemRequest alta/edición de un ítem del inventario.
type InventoryItemRequest struct {
	Name                string                 `json:"name"`
	Quantity            int                    `json:"quantity"`
	MaintenanceQuantity int                    `json:"maintenanceQuantity"`
	Brand               string                 `json:"brand,omitempty"`
	Model               string                 `json:"model,omitempty"`
	Category            string                 `json:"category,omitempty"`
	State               string                 `json:"state,omitempty"`
	Type                string                 `json:"type,omitempty"`
	Ownership           string                 `json:"ownership,omitempty"`
	StorageLocation     entity.StorageLocation `json:"storageLocation"`
	Weight              decimal.Decimal        `json:"weight"`
	PurchasePrice       decimal.Decimal        `json:"purchasePrice"`
	RentalPricePerDay   decimal.Decimal        `json:"rentalPricePerDay"`
	TaxRate             decimal.Decimal        `json:"taxRate"`
	Barcode             string                 `json:"barcode,omitempty"`
	Notes               string                 `json:"notes,omitempty"`
}
