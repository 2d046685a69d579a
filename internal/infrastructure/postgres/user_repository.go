package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/brightstage/rentalops-api/internal/domain"
	"github.com/brightstage/rentalops-api/internal/domain/entity"
	"github.com/brightstage/rentalops-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, name, phone, role, status, points, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.Phone, user.Role, user.Status,
		user.Points, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID, o nil si no existe.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	query := userSelect + ` WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get user by id")
}

// FindByEmail obtiene un usuario por email, o nil si no existe.
func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	query := userSelect + ` WHERE email = $1 LIMIT 1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, email), "get user by email")
}

// List todos los usuarios ordenados por nombre.
func (r *UserRepo) List() ([]*entity.User, error) {
	query := userSelect + ` ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Phone, &u.Role, &u.Status,
			&u.Points, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return out, nil
}

// AwardPoints aplica un abono/castigo de puntos de forma idempotente por
// (userID, projectID): el índice único sobre points_entries hace que un
// reintento no inserte la entrada ni vuelva a tocar el saldo. Devuelve true
// si el abono se aplicó en esta llamada.
func (r *UserRepo) AwardPoints(userID, projectID string, points int, reason string) (bool, error) {
	ctx := context.Background()
	insert := `
		INSERT INTO points_entries (id, user_id, project_id, reason, points, date)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (user_id, project_id) DO NOTHING`
	tag, err := r.q.Exec(ctx, insert, uuid.New().String(), userID, projectID, reason, points)
	if err != nil {
		return false, fmt.Errorf("insert points entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	update := `UPDATE users SET points = points + $2, updated_at = now() WHERE id = $1`
	if _, err := r.q.Exec(ctx, update, userID, points); err != nil {
		return false, fmt.Errorf("update user points: %w", err)
	}
	return true, nil
}

// PointsHistory historial de puntos del usuario, más reciente primero.
func (r *UserRepo) PointsHistory(userID string) ([]*entity.PointsEntry, error) {
	query := `
		SELECT id, user_id, project_id, reason, points, date
		FROM points_entries WHERE user_id = $1 ORDER BY date DESC`
	rows, err := r.q.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("list points entries: %w", err)
	}
	defer rows.Close()

	var out []*entity.PointsEntry
	for rows.Next() {
		var e entity.PointsEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.ProjectID, &e.Reason, &e.Points, &e.Date); err != nil {
			return nil, fmt.Errorf("scan points entry: %w", err)
		}
		out = append(out, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate points entries: %w", err)
	}
	return out, nil
}

const userSelect = `
	SELECT id, email, password_hash, name, phone, role, status, points, created_at, updated_at
	FROM users`

func (r *UserRepo) scanOne(row pgx.Row, op string) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Phone, &u.Role, &u.Status,
		&u.Points, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}
