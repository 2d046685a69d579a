package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/brightstage/rentalops-api/internal/domain"
	"github.com/brightstage/rentalops-api/internal/domain/entity"
	"github.com/brightstage/rentalops-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

const inventoryColumns = `
	id, name, quantity, maintenance_quantity, brand, model, category, state, type,
	ownership, zone, shelving, shelf, weight, purchase_price, rental_price_per_day,
	tax_rate, barcode, notes, created_at, updated_at`

// Create persiste un ítem.
func (r *InventoryRepo) Create(item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (` + inventoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		        $16, $17, $18, $19, $20, $21)`
	_, err := r.q.Exec(context.Background(), query, inventoryArgs(item)...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: código de barras %s", domain.ErrDuplicate, item.Barcode)
		}
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

// Update reescribe el ítem.
func (r *InventoryRepo) Update(item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items SET
			name = $2, quantity = $3, maintenance_quantity = $4, brand = $5, model = $6,
			category = $7, state = $8, type = $9, ownership = $10,
			zone = $11, shelving = $12, shelf = $13, weight = $14,
			purchase_price = $15, rental_price_per_day = $16, tax_rate = $17,
			barcode = $18, notes = $19, created_at = $20, updated_at = $21
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, inventoryArgs(item)...)
	if err != nil {
		return fmt.Errorf("update inventory item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update inventory item %s: fila no encontrada", item.ID)
	}
	return nil
}

// GetByID obtiene el ítem por ID, o nil si no existe.
func (r *InventoryRepo) GetByID(id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items WHERE id = $1`
	return scanInventoryItem(r.q.QueryRow(context.Background(), query, id), "get inventory item by id")
}

// GetByBarcode obtiene el ítem por código de barras, o nil si no existe.
func (r *InventoryRepo) GetByBarcode(barcode string) (*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items WHERE barcode = $1 LIMIT 1`
	return scanInventoryItem(r.q.QueryRow(context.Background(), query, barcode), "get inventory item by barcode")
}

// List todo el inventario ordenado por nombre.
func (r *InventoryRepo) List() ([]*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()

	var out []*entity.InventoryItem
	for rows.Next() {
		item, err := scanInventoryItem(rows, "scan inventory item")
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inventory items: %w", err)
	}
	return out, nil
}

func inventoryArgs(item *entity.InventoryItem) []any {
	return []any{
		item.ID, item.Name, item.Quantity, item.MaintenanceQuantity, item.Brand, item.Model,
		item.Category, item.State, item.Type, item.Ownership,
		item.StorageLocation.Zone, item.StorageLocation.Shelving, item.StorageLocation.Shelf,
		item.Weight, item.PurchasePrice, item.RentalPricePerDay, item.TaxRate,
		nullIfEmpty(item.Barcode), item.Notes, item.CreatedAt, item.UpdatedAt,
	}
}

func scanInventoryItem(row pgx.Row, op string) (*entity.InventoryItem, error) {
	var (
		item    entity.InventoryItem
		barcode *string
	)
	err := row.Scan(
		&item.ID, &item.Name, &item.Quantity, &item.MaintenanceQuantity, &item.Brand, &item.Model,
		&item.Category, &item.State, &item.Type, &item.Ownership,
		&item.StorageLocation.Zone, &item.StorageLocation.Shelving, &item.StorageLocation.Shelf,
		&item.Weight, &item.PurchasePrice, &item.RentalPricePerDay, &item.TaxRate,
		&barcode, &item.Notes, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	item.Barcode = emptyIfNull(barcode)
	return &item, nil
}
