package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/brightstage/rentalops-api/internal/domain/entity"
	"github.com/brightstage/rentalops-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
// El snapshot del cliente y las líneas se guardan como JSONB: la factura es
// un documento inmutable una vez emitida.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `
	id, number, client, date, due_date, lines,
	total_excl_tax, total_tax, stamp_duty, total_incl_tax,
	status, related_project_id, notes, created_at, updated_at`

// Create persiste la factura.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	client, err := json.Marshal(invoice.Client)
	if err != nil {
		return fmt.Errorf("marshal invoice client: %w", err)
	}
	lines, err := json.Marshal(invoice.Lines)
	if err != nil {
		return fmt.Errorf("marshal invoice lines: %w", err)
	}
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err = r.q.Exec(context.Background(), query,
		invoice.ID, invoice.Number, client, invoice.Date, invoice.DueDate, lines,
		invoice.TotalExclTax, invoice.TotalTax, invoice.StampDuty, invoice.TotalInclTax,
		invoice.Status, nullIfEmpty(invoice.RelatedProjectID), invoice.Notes,
		invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("número de factura ya existe: %w", err)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetByID obtiene la factura por ID, o nil si no existe.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice by id: %w", err)
	}
	return inv, nil
}

// Count total de facturas existentes (base del consecutivo).
func (r *InvoiceRepo) Count() (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM invoices`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count invoices: %w", err)
	}
	return n, nil
}

// ListByProject facturas asociadas a un proyecto.
func (r *InvoiceRepo) ListByProject(projectID string) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE related_project_id = $1 ORDER BY date`
	rows, err := r.q.Query(context.Background(), query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var out []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		out = append(out, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invoices: %w", err)
	}
	return out, nil
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var (
		inv              entity.Invoice
		client, lines    []byte
		relatedProjectID *string
	)
	err := row.Scan(
		&inv.ID, &inv.Number, &client, &inv.Date, &inv.DueDate, &lines,
		&inv.TotalExclTax, &inv.TotalTax, &inv.StampDuty, &inv.TotalInclTax,
		&inv.Status, &relatedProjectID, &inv.Notes, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.RelatedProjectID = emptyIfNull(relatedProjectID)
	if err := json.Unmarshal(client, &inv.Client); err != nil {
		return nil, fmt.Errorf("unmarshal invoice client: %w", err)
	}
	if err := json.Unmarshal(lines, &inv.Lines); err != nil {
		return nil, fmt.Errorf("unmarshal invoice lines: %w", err)
	}
	return &inv, nil
}
