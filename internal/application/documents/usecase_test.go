package documents_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightstage/rentalops-api/internal/application/documents"
	"github.com/brightstage/rentalops-api/internal/domain"
	"github.com/brightstage/rentalops-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeInvoiceRepo struct {
	invoices map[string]*entity.Invoice
}

func (f *fakeInvoiceRepo) Create(*entity.Invoice) error { return nil }
func (f *fakeInvoiceRepo) Count() (int, error)          { return len(f.invoices), nil }
func (f *fakeInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	return f.invoices[id], nil
}
func (f *fakeInvoiceRepo) ListByProject(string) ([]*entity.Invoice, error) { return nil, nil }

type fakeProjectRepo struct {
	projects map[string]*entity.Project
}

func (f *fakeProjectRepo) Create(*entity.Project) error { return nil }
func (f *fakeProjectRepo) Update(*entity.Project) error { return nil }
func (f *fakeProjectRepo) GetByID(id string) (*entity.Project, error) {
	return f.projects[id], nil
}
func (f *fakeProjectRepo) List(string, int, int) ([]*entity.Project, error) { return nil, nil }
func (f *fakeProjectRepo) FindOverlapping(_, _ time.Time, _ []string, _ string) ([]*entity.Project, error) {
	return nil, nil
}

type fakeGenerator struct {
	fail bool
}

func (g *fakeGenerator) InvoicePDF(_ context.Context, inv *entity.Invoice) ([]byte, error) {
	if g.fail {
		return nil, errors.New("render falló")
	}
	return []byte("%PDF factura " + inv.Number), nil
}

func (g *fakeGenerator) ExitManifestPDF(_ context.Context, p *entity.Project) ([]byte, error) {
	if g.fail {
		return nil, errors.New("render falló")
	}
	return []byte("%PDF manifiesto " + p.ID), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestDownloadInvoicePDF_Exitoso(t *testing.T) {
	uc := documents.NewUseCase(
		&fakeInvoiceRepo{invoices: map[string]*entity.Invoice{
			"inv-1": {ID: "inv-1", Number: "INV-2026-DEP-001"},
		}},
		&fakeProjectRepo{},
		&fakeGenerator{},
	)

	pdfBytes, filename, err := uc.DownloadInvoicePDF(context.Background(), "inv-1")
	require.NoError(t, err)

	assert.Equal(t, "factura_INV-2026-DEP-001.pdf", filename)
	assert.Contains(t, string(pdfBytes), "INV-2026-DEP-001")
}

func TestDownloadInvoicePDF_NoExiste(t *testing.T) {
	uc := documents.NewUseCase(&fakeInvoiceRepo{}, &fakeProjectRepo{}, &fakeGenerator{})

	_, _, err := uc.DownloadInvoicePDF(context.Background(), "inexistente")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDownloadExitManifestPDF_RequiereValidacion(t *testing.T) {
	uc := documents.NewUseCase(
		&fakeInvoiceRepo{},
		&fakeProjectRepo{projects: map[string]*entity.Project{
			"p-1": {ID: "p-1", IsValidated: false},
		}},
		&fakeGenerator{},
	)

	_, _, err := uc.DownloadExitManifestPDF(context.Background(), "p-1")
	assert.ErrorIs(t, err, domain.ErrConflict,
		"un proyecto sin validar no debe tener manifiesto")
}

func TestDownloadExitManifestPDF_Exitoso(t *testing.T) {
	uc := documents.NewUseCase(
		&fakeInvoiceRepo{},
		&fakeProjectRepo{projects: map[string]*entity.Project{
			"p-1": {ID: "p-1", IsValidated: true},
		}},
		&fakeGenerator{},
	)

	pdfBytes, filename, err := uc.DownloadExitManifestPDF(context.Background(), "p-1")
	require.NoError(t, err)

	assert.Equal(t, "manifiesto_p-1.pdf", filename)
	assert.NotEmpty(t, pdfBytes)
}

func TestDownloadExitManifestPDF_ErrorDeRender(t *testing.T) {
	uc := documents.NewUseCase(
		&fakeInvoiceRepo{},
		&fakeProjectRepo{projects: map[string]*entity.Project{
			"p-1": {ID: "p-1", IsValidated: true},
		}},
		&fakeGenerator{fail: true},
	)

	_, _, err := uc.DownloadExitManifestPDF(context.Background(), "p-1")
	assert.Error(t, err)
}
