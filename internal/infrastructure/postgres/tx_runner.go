package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brightstage/rentalops-api/internal/application/project"
	"github.com/brightstage/rentalops-api/internal/application/quote"
	"github.com/brightstage/rentalops-api/internal/domain/repository"
)

var (
	_ project.TxRunner = (*TxRunner)(nil)
	_ quote.TxRunner   = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunFinalize transacción de cierre de retorno: proyecto, puntos, reservas y
// mantenimiento de inventario, todo o nada.
func (r *TxRunner) RunFinalize(ctx context.Context, fn func(
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
	reservationRepo repository.ReservationRepository,
	inventoryRepo repository.InventoryRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewProjectRepository(tx),
		NewUserRepository(tx),
		NewReservationRepository(tx),
		NewInventoryRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunAcceptance transacción de aceptación de cotización: confirmación del
// proyecto, factura de anticipo y reservas en bloque.
func (r *TxRunner) RunAcceptance(ctx context.Context, fn func(
	projectRepo repository.ProjectRepository,
	invoiceRepo repository.InvoiceRepository,
	reservationRepo repository.ReservationRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewProjectRepository(tx),
		NewInvoiceRepository(tx),
		NewReservationRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
