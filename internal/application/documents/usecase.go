// Package documents genera los documentos imprimibles del negocio: la factura
// en PDF y el manifiesto de salida de bodega con su QR.
package documents

import (
	"context"
	"fmt"

	"github.com/brightstage/rentalops-api/internal/domain"
	"github.com/brightstage/rentalops-api/internal/domain/entity"
	"github.com/brightstage/rentalops-api/internal/domain/repository"
)

// Generator puerto de render de documentos PDF.
type Generator interface {
	InvoicePDF(ctx context.Context, invoice *entity.Invoice) ([]byte, error)
	ExitManifestPDF(ctx context.Context, p *entity.Project) ([]byte, error)
}

// UseCase arma los documentos a partir de los agregados persistidos.
type UseCase struct {
	invoiceRepo repository.InvoiceRepository
	projectRepo repository.ProjectRepository
	generator   Generator
}

// NewUseCase construye el caso de uso de documentos.
func NewUseCase(invoiceRepo repository.InvoiceRepository, projectRepo repository.ProjectRepository, generator Generator) *UseCase {
	return &UseCase{invoiceRepo: invoiceRepo, projectRepo: projectRepo, generator: generator}
}

// DownloadInvoicePDF genera el PDF de una factura existente.
func (uc *UseCase) DownloadInvoicePDF(ctx context.Context, invoiceID string) (pdfBytes []byte, filename string, err error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("documents: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}
	pdfBytes, err = uc.generator.InvoicePDF(ctx, inv)
	if err != nil {
		return nil, "", fmt.Errorf("documents: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("factura_%s.pdf", inv.Number), nil
}

// DownloadExitManifestPDF genera el manifiesto de salida de un proyecto.
// El manifiesto solo existe tras la validación de bodega: antes de eso la
// lista de material todavía puede cambiar.
func (uc *UseCase) DownloadExitManifestPDF(ctx context.Context, projectID string) (pdfBytes []byte, filename string, err error) {
	p, err := uc.projectRepo.GetByID(projectID)
	if err != nil {
		return nil, "", fmt.Errorf("documents: obtener proyecto: %w", err)
	}
	if p == nil {
		return nil, "", domain.ErrNotFound
	}
	if !p.IsValidated {
		return nil, "", fmt.Errorf("%w: el manifiesto requiere un proyecto validado", domain.ErrConflict)
	}
	pdfBytes, err = uc.generator.ExitManifestPDF(ctx, p)
	if err != nil {
		return nil, "", fmt.Errorf("documents: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("manifiesto_%s.pdf", p.ID), nil
}
