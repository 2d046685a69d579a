package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/brightstage/rentalops-api/internal/domain/entity"
	"github.com/brightstage/rentalops-api/internal/domain/repository"
)

var _ repository.AttendanceRepository = (*AttendanceRepo)(nil)

// AttendanceRepo implementación de AttendanceRepository sobre PostgreSQL (usable con pool o tx).
type AttendanceRepo struct {
	q Querier
}

// NewAttendanceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAttendanceRepository(q Querier) *AttendanceRepo {
	return &AttendanceRepo{q: q}
}

const attendanceColumns = `
	id, user_id, user_name, project_id, check_in, check_out,
	latitude, longitude, address, type, notes, status,
	regular_hours, overtime_hours, night_hours, total_hours,
	created_at, updated_at`

// Create persiste un registro de asistencia.
func (r *AttendanceRepo) Create(a *entity.Attendance) error {
	query := `
		INSERT INTO attendance (` + attendanceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(context.Background(), query, attendanceArgs(a)...)
	if err != nil {
		return fmt.Errorf("insert attendance: %w", err)
	}
	return nil
}

// Update reescribe el registro (cierre de sesión).
func (r *AttendanceRepo) Update(a *entity.Attendance) error {
	query := `
		UPDATE attendance SET
			user_id = $2, user_name = $3, project_id = $4, check_in = $5, check_out = $6,
			latitude = $7, longitude = $8, address = $9, type = $10, notes = $11, status = $12,
			regular_hours = $13, overtime_hours = $14, night_hours = $15, total_hours = $16,
			created_at = $17, updated_at = $18
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, attendanceArgs(a)...)
	if err != nil {
		return fmt.Errorf("update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update attendance %s: fila no encontrada", a.ID)
	}
	return nil
}

// FindOpenByUser sesión abierta (sin check-out) del usuario, o nil.
func (r *AttendanceRepo) FindOpenByUser(userID string) (*entity.Attendance, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance
		WHERE user_id = $1 AND check_out IS NULL
		ORDER BY check_in DESC LIMIT 1`
	a, err := scanAttendance(r.q.QueryRow(context.Background(), query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find open attendance: %w", err)
	}
	return a, nil
}

// ListByUser últimos registros de un usuario.
func (r *AttendanceRepo) ListByUser(userID string, limit int) ([]*entity.Attendance, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance WHERE user_id = $1
		ORDER BY check_in DESC LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list attendance by user: %w", err)
	}
	defer rows.Close()
	return collectAttendance(rows)
}

// List últimos registros de todos los usuarios (panel de administración).
func (r *AttendanceRepo) List(limit int) ([]*entity.Attendance, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance ORDER BY check_in DESC LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	defer rows.Close()
	return collectAttendance(rows)
}

// FindCheckoutsBetween registros con check-out dentro de (from, to) exclusivo.
func (r *AttendanceRepo) FindCheckoutsBetween(from, to time.Time) ([]*entity.Attendance, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance
		WHERE check_out > $1 AND check_out < $2
		ORDER BY check_out DESC`
	rows, err := r.q.Query(context.Background(), query, from, to)
	if err != nil {
		return nil, fmt.Errorf("find checkouts between: %w", err)
	}
	defer rows.Close()
	return collectAttendance(rows)
}

func attendanceArgs(a *entity.Attendance) []any {
	return []any{
		a.ID, a.UserID, a.UserName, nullIfEmpty(a.ProjectID), a.CheckIn, a.CheckOut,
		a.Location.Latitude, a.Location.Longitude, a.Location.Address,
		a.Type, a.Notes, a.Status,
		a.RegularHours, a.OvertimeHours, a.NightHours, a.TotalHours,
		a.CreatedAt, a.UpdatedAt,
	}
}

func scanAttendance(row pgx.Row) (*entity.Attendance, error) {
	var (
		a         entity.Attendance
		projectID *string
	)
	err := row.Scan(
		&a.ID, &a.UserID, &a.UserName, &projectID, &a.CheckIn, &a.CheckOut,
		&a.Location.Latitude, &a.Location.Longitude, &a.Location.Address,
		&a.Type, &a.Notes, &a.Status,
		&a.RegularHours, &a.OvertimeHours, &a.NightHours, &a.TotalHours,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.ProjectID = emptyIfNull(projectID)
	return &a, nil
}

func collectAttendance(rows pgx.Rows) ([]*entity.Attendance, error) {
	var out []*entity.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attendance: %w", err)
	}
	return out, nil
}
