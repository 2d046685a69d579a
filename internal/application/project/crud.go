package project

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/brightstage/rentalops-api/internal/application/dto"
	"github.com/brightstage/rentalops-api/internal/domain"
	"github.com/brightstage/rentalops-api/internal/domain/entity"
	"github.com/brightstage/rentalops-api/internal/domain/repository"
)

// Parámetros fiscales (Túnez): IVA 19% y timbre fiscal de 1 dinar por factura.
var (
	vatRate    = decimal.NewFromFloat(0.19)
	stampDuty  = decimal.NewFromInt(1)
	oneHundred = decimal.NewFromInt(100)
)

const defaultGeofenceRadius = 200.0

// Roles que pueden mutar un proyecto bloqueado.
var privilegedRoles = map[string]struct{}{
	entity.RoleFounder:     {},
	entity.RoleManager:     {},
	entity.RoleStorekeeper: {},
}

// CrudUseCase altas, consultas y ediciones del agregado Project.
type CrudUseCase struct {
	projectRepo repository.ProjectRepository
}

// NewCrudUseCase construye el caso de uso.
func NewCrudUseCase(projectRepo repository.ProjectRepository) *CrudUseCase {
	return &CrudUseCase{projectRepo: projectRepo}
}

// Create da de alta un proyecto en Draft con sus totales calculados.
func (uc *CrudUseCase) Create(ctx context.Context, actorID, actorName string, in dto.CreateProjectRequest) (*entity.Project, error) {
	if strings.TrimSpace(in.EventName) == "" {
		return nil, fmt.Errorf("%w: eventName es obligatorio", domain.ErrInvalidInput)
	}
	start, end, err := parseRange(in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	p := &entity.Project{
		ID:            uuid.New().String(),
		CreatedBy:     actorID,
		CreatedByName: actorName,

		AssignedUserIDs: in.AssignedUserIDs,
		ClientID:        in.ClientID,

		EventName:   in.EventName,
		SiteName:    in.SiteName,
		SiteAddress: in.SiteAddress,

		Dates: entity.DateRange{
			Start:     start,
			End:       end,
			TotalDays: totalDays(start, end),
		},

		Status:           entity.StatusDraft,
		ValidationStatus: entity.ValidationDraft,
		LogisticsStatus:  entity.LogisticsPrep,
		PaymentStatus:    entity.PaymentUnpaid,

		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.Location != nil {
		p.Location = *in.Location
		if p.Location.Radius <= 0 {
			p.Location.Radius = defaultGeofenceRadius
		}
	}
	if in.Transport != nil {
		p.Transport = *in.Transport
	}
	p.Items = toItems(in.Items, p.Dates.TotalDays)
	p.Financials = computeFinancials(p.Items)

	if err := uc.projectRepo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get devuelve el proyecto por ID.
func (uc *CrudUseCase) Get(ctx context.Context, id string) (*entity.Project, error) {
	p, err := uc.projectRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// List pagina los proyectos, opcionalmente filtrados por status.
func (uc *CrudUseCase) List(ctx context.Context, status string, page dto.PageRequest) ([]*entity.Project, error) {
	page.DefaultPage()
	return uc.projectRepo.List(status, page.Limit, page.Offset)
}

// Update edición parcial. Un proyecto bloqueado solo admite cambios de roles
// privilegiados. El cambio de status por esta vía se limita al par
// Draft <-> Quote (enviar/retirar la cotización); el resto del ciclo de vida
// tiene sus propios endpoints.
func (uc *CrudUseCase) Update(ctx context.Context, id, actorRole string, in dto.UpdateProjectRequest) (*entity.Project, error) {
	p, err := uc.projectRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if p.Permissions.Locked {
		if _, ok := privilegedRoles[actorRole]; !ok {
			return nil, domain.ErrProjectLocked
		}
	}

	if in.EventName != nil {
		p.EventName = *in.EventName
	}
	if in.SiteName != nil {
		p.SiteName = *in.SiteName
	}
	if in.SiteAddress != nil {
		p.SiteAddress = *in.SiteAddress
	}
	if in.Location != nil {
		p.Location = *in.Location
		if p.Location.Radius <= 0 {
			p.Location.Radius = defaultGeofenceRadius
		}
	}
	if in.StartDate != nil || in.EndDate != nil {
		startStr := p.Dates.Start.Format(dayFormat)
		endStr := p.Dates.End.Format(dayFormat)
		if in.StartDate != nil {
			startStr = *in.StartDate
		}
		if in.EndDate != nil {
			endStr = *in.EndDate
		}
		start, end, err := parseRange(startStr, endStr)
		if err != nil {
			return nil, err
		}
		p.Dates = entity.DateRange{Start: start, End: end, TotalDays: totalDays(start, end)}
	}
	if in.AssignedUserIDs != nil {
		p.AssignedUserIDs = in.AssignedUserIDs
	}
	if in.Transport != nil {
		p.Transport = *in.Transport
	}
	if in.Items != nil {
		p.Items = toItems(in.Items, p.Dates.TotalDays)
	}
	p.Financials = computeFinancials(p.Items)

	if in.Status != nil && *in.Status != p.Status {
		if err := applyQuoteMove(p, *in.Status); err != nil {
			return nil, err
		}
	}

	p.UpdatedAt = time.Now()
	if err := uc.projectRepo.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

// applyQuoteMove valida el único cambio de status permitido en edición.
func applyQuoteMove(p *entity.Project, target string) error {
	switch {
	case p.Status == entity.StatusDraft && target == entity.StatusQuote:
		p.Status = entity.StatusQuote
	case p.Status == entity.StatusQuote && target == entity.StatusDraft:
		p.Status = entity.StatusDraft
	default:
		return fmt.Errorf("%w: de %s a %s", domain.ErrInvalidTransition, p.Status, target)
	}
	return nil
}

const dayFormat = "2006-01-02"

func parseRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := parseDate(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: startDate inválida (%q)", domain.ErrInvalidInput, startStr)
	}
	end, err := parseDate(endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: endDate inválida (%q)", domain.ErrInvalidInput, endStr)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: endDate anterior a startDate", domain.ErrInvalidInput)
	}
	return start, end, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(dayFormat, s)
}

// totalDays días calendario inclusivos de la ventana.
func totalDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

func toItems(in []dto.ProjectItemRequest, projectDays int) []entity.ProjectItem {
	out := make([]entity.ProjectItem, 0, len(in))
	for _, r := range in {
		source := r.Source
		if source == "" {
			if r.SubcontractedItemID != "" {
				source = entity.SourceSubcontracted
			} else {
				source = entity.SourceInternal
			}
		}
		days := r.Days
		if days <= 0 {
			days = projectDays
		}
		itemType := r.Type
		if itemType == "" {
			itemType = "Rent"
		}
		out = append(out, entity.ProjectItem{
			InventoryItemID:     r.InventoryItemID,
			SubcontractedItemID: r.SubcontractedItemID,
			Source:              source,
			Name:                r.Name,
			Type:                itemType,
			Quantity:            r.Quantity,
			Days:                days,
			Price:               r.Price,
			CostPrice:           r.CostPrice,
			Discount:            r.Discount,
		})
	}
	return out
}

// computeFinancials recalcula los totales del proyecto a partir de sus líneas:
// subtotal con descuento por línea, IVA del 19%, timbre fiscal y margen.
func computeFinancials(items []entity.ProjectItem) entity.Financials {
	totalExcl := decimal.Zero
	totalCost := decimal.Zero
	for _, it := range items {
		qty := decimal.NewFromInt(int64(it.Quantity))
		days := decimal.NewFromInt(int64(it.Days))
		if days.IsZero() {
			days = decimal.NewFromInt(1)
		}
		line := it.Price.Mul(qty).Mul(days)
		if !it.Discount.IsZero() {
			line = line.Mul(decimal.NewFromInt(1).Sub(it.Discount.Div(oneHundred)))
		}
		totalExcl = totalExcl.Add(line)
		totalCost = totalCost.Add(it.CostPrice.Mul(qty).Mul(days))
	}
	totalExcl = totalExcl.Round(3)
	totalCost = totalCost.Round(3)
	tax := totalExcl.Mul(vatRate).Round(3)
	return entity.Financials{
		TotalExclTax: totalExcl,
		TotalTax:     tax,
		StampDuty:    stampDuty,
		TotalInclTax: totalExcl.Add(tax).Add(stampDuty),
		TotalCost:    totalCost,
		Margin:       totalExcl.Sub(totalCost),
	}
}
