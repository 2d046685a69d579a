package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/brightstage/rentalops-api/internal/domain/entity"
	"github.com/brightstage/rentalops-api/internal/domain/repository"
)

var _ repository.ReservationRepository = (*ReservationRepo)(nil)

// ReservationRepo implementación de ReservationRepository sobre PostgreSQL (usable con pool o tx).
type ReservationRepo struct {
	q Querier
}

// NewReservationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReservationRepository(q Querier) *ReservationRepo {
	return &ReservationRepo{q: q}
}

// CreateBulk inserta el lote de reservas en un solo batch.
func (r *ReservationRepo) CreateBulk(reservations []*entity.Reservation) error {
	if len(reservations) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	query := `
		INSERT INTO reservations (id, project_id, item_id, item_name, quantity, start_date, end_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	for _, res := range reservations {
		batch.Queue(query,
			res.ID, res.ProjectID, res.ItemID, res.ItemName, res.Quantity,
			res.Start, res.End, res.Status, res.CreatedAt, res.UpdatedAt,
		)
	}
	results := r.q.SendBatch(context.Background(), batch)
	defer results.Close()
	for range reservations {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("insert reservation: %w", err)
		}
	}
	return nil
}

// ListByProject reservas de un proyecto.
func (r *ReservationRepo) ListByProject(projectID string) ([]*entity.Reservation, error) {
	query := `
		SELECT id, project_id, item_id, item_name, quantity, start_date, end_date, status, created_at, updated_at
		FROM reservations WHERE project_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()

	var out []*entity.Reservation
	for rows.Next() {
		var res entity.Reservation
		if err := rows.Scan(
			&res.ID, &res.ProjectID, &res.ItemID, &res.ItemName, &res.Quantity,
			&res.Start, &res.End, &res.Status, &res.CreatedAt, &res.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		out = append(out, &res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reservations: %w", err)
	}
	return out, nil
}

// UpdateStatusByProject marca todas las reservas del proyecto con el status dado.
func (r *ReservationRepo) UpdateStatusByProject(projectID, status string) error {
	query := `UPDATE reservations SET status = $2, updated_at = now() WHERE project_id = $1`
	if _, err := r.q.Exec(context.Background(), query, projectID, status); err != nil {
		return fmt.Errorf("update reservations status: %w", err)
	}
	return nil
}
