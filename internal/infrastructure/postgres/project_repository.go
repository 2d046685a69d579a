package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/brightstage/rentalops-api/internal/domain/entity"
	"github.com/brightstage/rentalops-api/internal/domain/repository"
)

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

// ProjectRepo implementación de ProjectRepository sobre PostgreSQL (usable con pool o tx).
// Las colecciones del agregado (líneas, transporte, reporte de retorno) se
// guardan como JSONB en la misma fila: viajan y se versionan con el proyecto.
type ProjectRepo struct {
	q Querier
}

// NewProjectRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProjectRepository(q Querier) *ProjectRepo {
	return &ProjectRepo{q: q}
}

const projectColumns = `
	id, created_by, created_by_name, client_id, client_name,
	assigned_user_ids, event_name, site_name, site_address,
	latitude, longitude, geofence_radius,
	start_date, end_date, total_days,
	status, validation_status, logistics_status, payment_status, is_validated,
	locked, unlocked_by,
	exit_qr_code, exit_qr_issued_at, return_qr_code, return_qr_issued_at,
	exit_scanned_at, exit_scanned_by, return_scanned_at, return_scanned_by,
	return_report, items, transport, financials,
	created_at, updated_at`

// Create persiste el agregado completo.
func (r *ProjectRepo) Create(p *entity.Project) error {
	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		        $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28,
		        $29, $30, $31, $32, $33, $34, $35, $36)`
	args, err := projectArgs(p)
	if err != nil {
		return err
	}
	if _, err := r.q.Exec(context.Background(), query, args...); err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// Update reescribe el agregado completo.
func (r *ProjectRepo) Update(p *entity.Project) error {
	query := `
		UPDATE projects SET
			created_by = $2, created_by_name = $3, client_id = $4, client_name = $5,
			assigned_user_ids = $6, event_name = $7, site_name = $8, site_address = $9,
			latitude = $10, longitude = $11, geofence_radius = $12,
			start_date = $13, end_date = $14, total_days = $15,
			status = $16, validation_status = $17, logistics_status = $18,
			payment_status = $19, is_validated = $20,
			locked = $21, unlocked_by = $22,
			exit_qr_code = $23, exit_qr_issued_at = $24,
			return_qr_code = $25, return_qr_issued_at = $26,
			exit_scanned_at = $27, exit_scanned_by = $28,
			return_scanned_at = $29, return_scanned_by = $30,
			return_report = $31, items = $32, transport = $33, financials = $34,
			created_at = $35, updated_at = $36
		WHERE id = $1`
	args, err := projectArgs(p)
	if err != nil {
		return err
	}
	tag, err := r.q.Exec(context.Background(), query, args...)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update project %s: fila no encontrada", p.ID)
	}
	return nil
}

// GetByID obtiene el proyecto por ID, o nil si no existe.
func (r *ProjectRepo) GetByID(id string) (*entity.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	p, err := scanProject(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project by id: %w", err)
	}
	return p, nil
}

// List pagina los proyectos más recientes, opcionalmente filtrados por status.
func (r *ProjectRepo) List(status string, limit, offset int) ([]*entity.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()
	return collectProjects(rows)
}

// FindOverlapping devuelve los proyectos con status en statuses cuya ventana
// solapa [start, end], excluyendo excludeID si no está vacío.
func (r *ProjectRepo) FindOverlapping(start, end time.Time, statuses []string, excludeID string) ([]*entity.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE status = ANY($1)
		  AND start_date <= $3
		  AND end_date >= $2
		  AND ($4 = '' OR id <> $4)`
	rows, err := r.q.Query(context.Background(), query, statuses, start, end, excludeID)
	if err != nil {
		return nil, fmt.Errorf("find overlapping projects: %w", err)
	}
	defer rows.Close()
	return collectProjects(rows)
}

func projectArgs(p *entity.Project) ([]any, error) {
	assigned, err := json.Marshal(p.AssignedUserIDs)
	if err != nil {
		return nil, fmt.Errorf("marshal assigned users: %w", err)
	}
	items, err := json.Marshal(p.Items)
	if err != nil {
		return nil, fmt.Errorf("marshal items: %w", err)
	}
	transport, err := json.Marshal(p.Transport)
	if err != nil {
		return nil, fmt.Errorf("marshal transport: %w", err)
	}
	financials, err := json.Marshal(p.Financials)
	if err != nil {
		return nil, fmt.Errorf("marshal financials: %w", err)
	}
	var report []byte
	if p.ReturnReport != nil {
		report, err = json.Marshal(p.ReturnReport)
		if err != nil {
			return nil, fmt.Errorf("marshal return report: %w", err)
		}
	}

	return []any{
		p.ID, p.CreatedBy, p.CreatedByName, nullIfEmpty(p.ClientID), p.ClientName,
		assigned, p.EventName, p.SiteName, p.SiteAddress,
		p.Location.Latitude, p.Location.Longitude, p.Location.Radius,
		p.Dates.Start, p.Dates.End, p.Dates.TotalDays,
		p.Status, p.ValidationStatus, p.LogisticsStatus, p.PaymentStatus, p.IsValidated,
		p.Permissions.Locked, nullIfEmpty(p.Permissions.UnlockedBy),
		nullIfEmpty(p.ExitQR.Value()), nullIfZeroTime(p.ExitQR.IssuedAt()),
		nullIfEmpty(p.ReturnQR.Value()), nullIfZeroTime(p.ReturnQR.IssuedAt()),
		p.ExitScannedAt, nullIfEmpty(p.ExitScannedBy),
		p.ReturnScannedAt, nullIfEmpty(p.ReturnScannedBy),
		report, items, transport, financials,
		p.CreatedAt, p.UpdatedAt,
	}, nil
}

func scanProject(row pgx.Row) (*entity.Project, error) {
	var (
		p          entity.Project
		clientID   *string
		unlockedBy *string

		assigned, items, transport, financials, report []byte

		exitQR, returnQR               *string
		exitIssuedAt, returnIssuedAt   *time.Time
		exitScannedBy, returnScannedBy *string
	)
	err := row.Scan(
		&p.ID, &p.CreatedBy, &p.CreatedByName, &clientID, &p.ClientName,
		&assigned, &p.EventName, &p.SiteName, &p.SiteAddress,
		&p.Location.Latitude, &p.Location.Longitude, &p.Location.Radius,
		&p.Dates.Start, &p.Dates.End, &p.Dates.TotalDays,
		&p.Status, &p.ValidationStatus, &p.LogisticsStatus, &p.PaymentStatus, &p.IsValidated,
		&p.Permissions.Locked, &unlockedBy,
		&exitQR, &exitIssuedAt, &returnQR, &returnIssuedAt,
		&p.ExitScannedAt, &exitScannedBy,
		&p.ReturnScannedAt, &returnScannedBy,
		&report, &items, &transport, &financials,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.ClientID = emptyIfNull(clientID)
	p.Permissions.UnlockedBy = emptyIfNull(unlockedBy)
	p.ExitScannedBy = emptyIfNull(exitScannedBy)
	p.ReturnScannedBy = emptyIfNull(returnScannedBy)

	if exitQR != nil {
		p.ExitQR = entity.IssuedQRToken(*exitQR, zeroIfNullTime(exitIssuedAt))
	}
	if returnQR != nil {
		p.ReturnQR = entity.IssuedQRToken(*returnQR, zeroIfNullTime(returnIssuedAt))
	}

	if err := json.Unmarshal(assigned, &p.AssignedUserIDs); err != nil {
		return nil, fmt.Errorf("unmarshal assigned users: %w", err)
	}
	if err := json.Unmarshal(items, &p.Items); err != nil {
		return nil, fmt.Errorf("unmarshal items: %w", err)
	}
	if err := json.Unmarshal(transport, &p.Transport); err != nil {
		return nil, fmt.Errorf("unmarshal transport: %w", err)
	}
	if err := json.Unmarshal(financials, &p.Financials); err != nil {
		return nil, fmt.Errorf("unmarshal financials: %w", err)
	}
	if len(report) > 0 {
		p.ReturnReport = &entity.ReturnReport{}
		if err := json.Unmarshal(report, p.ReturnReport); err != nil {
			return nil, fmt.Errorf("unmarshal return report: %w", err)
		}
	}
	return &p, nil
}

func collectProjects(rows pgx.Rows) ([]*entity.Project, error) {
	var out []*entity.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return out, nil
}
