package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados físicos del material (se conservan en francés, como los usa bodega).
const (
	ItemStateFunctional   = "Fonctionnel"
	ItemStateMissingParts = "Pièces manquantes"
	ItemStateBroken       = "Cassé"
	ItemStateToCheck      = "à vérifier"
	ItemStateToRepair     = "à réparer"
)

// Tipos de ítem: Rent = stock alquilable, Sale = consumible, Service = mano de obra/transporte.
const (
	ItemTypeRent    = "Rent"
	ItemTypeSale    = "Sale"
	ItemTypeService = "Service"
)

// StorageLocation ubicación en bodega.
type StorageLocation struct {
	Zone     string `json:"zone"`
	Shelving string `json:"shelving"`
	Shelf    string `json:"shelf"`
}

// InventoryItem ítem del inventario. Quantity es el total en bodega y
// MaintenanceQuantity la subcantidad conocida rota o en reparación; el stock
// efectivo disponible se calcula contra las reservas activas
// (ver application/availability).
type InventoryItem struct {
	ID                  string
	Name                string
	Quantity            int
	MaintenanceQuantity int
	Brand               string
	Model               string
	Category            string
	State               string
	Type                string
	Ownership           string
	StorageLocation     StorageLocation
	Weight              decimal.Decimal // kg, para transporte
	PurchasePrice       decimal.Decimal
	RentalPricePerDay   decimal.Decimal
	TaxRate             decimal.Decimal // 0.07 o 0.19
	Barcode             string
	Notes               string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
