package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightstage/rentalops-api/internal/application/dto"
	"github.com/brightstage/rentalops-api/internal/application/inventory"
	"github.com/brightstage/rentalops-api/internal/domain"
	"github.com/brightstage/rentalops-api/internal/domain/entity"
)

type fakeInventoryRepo struct {
	byID map[string]*entity.InventoryItem
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{byID: map[string]*entity.InventoryItem{}}
}

func (f *fakeInventoryRepo) Create(item *entity.InventoryItem) error {
	f.byID[item.ID] = item
	return nil
}

func (f *fakeInventoryRepo) Update(item *entity.InventoryItem) error {
	f.byID[item.ID] = item
	return nil
}

func (f *fakeInventoryRepo) GetByID(id string) (*entity.InventoryItem, error) {
	return f.byID[id], nil
}

func (f *fakeInventoryRepo) GetByBarcode(barcode string) (*entity.InventoryItem, error) {
	for _, it := range f.byID {
		if it.Barcode == barcode {
			return it, nil
		}
	}
	return nil, nil
}

func (f *fakeInventoryRepo) List() ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for _, it := range f.byID {
		out = append(out, it)
	}
	return out, nil
}

func TestCreate_ValoresPorDefecto(t *testing.T) {
	uc := inventory.NewUseCase(newFakeInventoryRepo())

	item, err := uc.Create(context.Background(), dto.InventoryItemRequest{
		Name: "Par LED 64", Quantity: 12, Barcode: "BS-0001",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ItemStateFunctional, item.State)
	assert.Equal(t, entity.ItemTypeRent, item.Type)
	assert.NotEmpty(t, item.ID)
}

func TestCreate_Validaciones(t *testing.T) {
	uc := inventory.NewUseCase(newFakeInventoryRepo())

	_, err := uc.Create(context.Background(), dto.InventoryItemRequest{Name: " "})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), dto.InventoryItemRequest{Name: "Cable", Quantity: -1})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), dto.InventoryItemRequest{
		Name: "Cable", Quantity: 2, MaintenanceQuantity: 3,
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_CodigoDeBarrasDuplicado(t *testing.T) {
	uc := inventory.NewUseCase(newFakeInventoryRepo())

	_, err := uc.Create(context.Background(), dto.InventoryItemRequest{Name: "Par LED", Quantity: 1, Barcode: "BS-0001"})
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), dto.InventoryItemRequest{Name: "Otro", Quantity: 1, Barcode: "BS-0001"})
	require.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUpdate_YBusquedaPorBarcode(t *testing.T) {
	repo := newFakeInventoryRepo()
	uc := inventory.NewUseCase(repo)

	item, err := uc.Create(context.Background(), dto.InventoryItemRequest{Name: "Par LED", Quantity: 10, Barcode: "BS-0001"})
	require.NoError(t, err)

	updated, err := uc.Update(context.Background(), item.ID, dto.InventoryItemRequest{
		Name: "Par LED 64", Quantity: 10, MaintenanceQuantity: 2, Barcode: "BS-0001",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.MaintenanceQuantity)

	found, err := uc.GetByBarcode(context.Background(), "BS-0001")
	require.NoError(t, err)
	assert.Equal(t, item.ID, found.ID)

	_, err = uc.GetByBarcode(context.Background(), "BS-9999")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_NoExiste(t *testing.T) {
	uc := inventory.NewUseCase(newFakeInventoryRepo())
	_, err := uc.Update(context.Background(), "nope", dto.InventoryItemRequest{Name: "X"})
	require.ErrorIs(t, err, domain.ErrNotFound)
}
