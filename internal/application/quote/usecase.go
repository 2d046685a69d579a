// Package quote expone la cotización al cliente final: la vista pública
// saneada y la aceptación que convierte la cotización en compromiso firme.
package quote

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/brightstage/rentalops-api/internal/application/dto"
	"github.com/brightstage/rentalops-api/internal/domain"
	"github.com/brightstage/rentalops-api/internal/domain/entity"
	"github.com/brightstage/rentalops-api/internal/domain/repository"
)

// El anticipo exigido al aceptar es el 30% del total con impuestos.
var depositRate = decimal.NewFromFloat(0.30)

// UseCase operaciones públicas sobre cotizaciones.
type UseCase struct {
	projectRepo repository.ProjectRepository
	txRunner    TxRunner
	notifier    Notifier // puede ser nil
}

// NewUseCase construye el caso de uso. notifier es opcional.
func NewUseCase(projectRepo repository.ProjectRepository, txRunner TxRunner, notifier Notifier) *UseCase {
	return &UseCase{projectRepo: projectRepo, txRunner: txRunner, notifier: notifier}
}

// GetPublic devuelve la cotización saneada para la página pública: sin costos
// internos ni datos de equipo. Un borrador todavía no es visible.
func (uc *UseCase) GetPublic(ctx context.Context, id string) (*dto.PublicQuoteResponse, error) {
	p, err := uc.projectRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if p.Status == entity.StatusDraft {
		return nil, domain.ErrForbidden
	}

	items := make([]entity.ProjectItem, len(p.Items))
	copy(items, p.Items)
	for i := range items {
		items[i].CostPrice = decimal.Zero
	}

	return &dto.PublicQuoteResponse{
		ID:         p.ID,
		EventName:  p.EventName,
		ClientName: p.ClientName,
		Dates:      p.Dates,
		Items:      items,
		Financials: p.Financials,
		Status:     p.Status,
		CreatedAt:  p.CreatedAt,
	}, nil
}

// Accept convierte la cotización en proyecto confirmado: emite la factura de
// anticipo del 30% y crea una reserva por cada línea del proyecto, todo en una
// transacción. Solo es legal sobre status=Quote: un borrador no se puede
// aceptar (403) y una cotización ya procesada tampoco.
func (uc *UseCase) Accept(ctx context.Context, id string) (*dto.AcceptQuoteResponse, error) {
	var (
		acceptedProject *entity.Project
		depositInvoice  *entity.Invoice
	)

	err := uc.txRunner.RunAcceptance(ctx, func(
		projectRepo repository.ProjectRepository,
		invoiceRepo repository.InvoiceRepository,
		reservationRepo repository.ReservationRepository,
	) error {
		p, err := projectRepo.GetByID(id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		switch p.Status {
		case entity.StatusQuote:
			// ok
		case entity.StatusDraft:
			return fmt.Errorf("%w: la cotización aún no fue enviada", domain.ErrForbidden)
		default:
			return fmt.Errorf("%w: la cotización ya fue procesada (status %s)", domain.ErrConflict, p.Status)
		}

		invoice, err := uc.buildDepositInvoice(p, invoiceRepo)
		if err != nil {
			return err
		}
		if err := invoiceRepo.Create(invoice); err != nil {
			return err
		}

		if err := reservationRepo.CreateBulk(buildReservations(p)); err != nil {
			return err
		}

		p.Status = entity.StatusConfirmed
		p.UpdatedAt = time.Now()
		if err := projectRepo.Update(p); err != nil {
			return err
		}

		acceptedProject = p
		depositInvoice = invoice
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.notifier != nil {
		uc.notifier.QuoteAccepted(acceptedProject, depositInvoice)
	}

	return &dto.AcceptQuoteResponse{
		Message:   "Cotización aceptada. Factura de anticipo generada.",
		ProjectID: acceptedProject.ID,
		InvoiceID: depositInvoice.ID,
	}, nil
}

// buildDepositInvoice arma la factura de anticipo: cada componente financiero
// del proyecto (base, IVA, total) escalado al 30%, consecutivo
// INV-<año>-DEP-<seq>, vencimiento al inicio del evento.
func (uc *UseCase) buildDepositInvoice(p *entity.Project, invoiceRepo repository.InvoiceRepository) (*entity.Invoice, error) {
	count, err := invoiceRepo.Count()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	depositExclTax := p.Financials.TotalExclTax.Mul(depositRate).Round(3)
	depositTax := p.Financials.TotalTax.Mul(depositRate).Round(3)
	depositInclTax := p.Financials.TotalInclTax.Mul(depositRate).Round(3)

	return &entity.Invoice{
		ID:     uuid.New().String(),
		Number: fmt.Sprintf("INV-%d-DEP-%03d", now.Year(), count+1),
		Client: entity.InvoiceClient{
			ID:   p.ClientID,
			Name: p.ClientName,
		},
		Date:    now,
		DueDate: p.Dates.Start,
		Lines: []entity.InvoiceLine{
			{
				Name:        fmt.Sprintf("Anticipo (30%%) - %s", p.EventName),
				Description: fmt.Sprintf("Anticipo de confirmación del evento del %s", p.Dates.Start.Format("02/01/2006")),
				Quantity:    1,
				UnitPrice:   depositExclTax,
				Total:       depositExclTax,
			},
		},
		TotalExclTax:     depositExclTax,
		TotalTax:         depositTax,
		StampDuty:        decimal.Zero,
		TotalInclTax:     depositInclTax,
		Status:           entity.InvoiceSent,
		RelatedProjectID: p.ID,
		Notes:            "Factura de anticipo generada automáticamente al aceptar la cotización.",
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// buildReservations una reserva Active por cada línea del proyecto. Las
// líneas subcontratadas también se reservan (con referencia de inventario
// vacía): bloquean transporte y montaje aunque no consuman stock propio.
func buildReservations(p *entity.Project) []*entity.Reservation {
	now := time.Now()
	out := make([]*entity.Reservation, 0, len(p.Items))
	for _, item := range p.Items {
		out = append(out, &entity.Reservation{
			ID:        uuid.New().String(),
			ProjectID: p.ID,
			ItemID:    item.InventoryItemID,
			ItemName:  item.Name,
			Quantity:  item.Quantity,
			Start:     p.Dates.Start,
			End:       p.Dates.End,
			Status:    entity.ReservationActive,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return out
}
