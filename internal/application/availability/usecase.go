// Package availability implementa el cálculo de disponibilidad de recursos:
// stock de inventario contra reservas activas, conflictos de conductores y
// vehículos por día de viaje, bloqueo de personal asignado y avisos de
// descanso insuficiente.
package availability

import (
	"fmt"
	"sort"
	"time"

	"github.com/brightstage/rentalops-api/internal/application/dto"
	"github.com/brightstage/rentalops-api/internal/domain"
	"github.com/brightstage/rentalops-api/internal/domain/entity"
	"github.com/brightstage/rentalops-api/internal/domain/repository"
	"github.com/brightstage/rentalops-api/internal/domain/scheduling"
)

// Solo los proyectos confirmados o en recogida bloquean recursos;
// borradores, cotizaciones y proyectos cerrados no.
var blockingStatuses = []string{entity.StatusConfirmed, entity.StatusPickup}

const dayFormat = "2006-01-02"

// UseCase calcula la disponibilidad para una ventana de fechas.
type UseCase struct {
	projectRepo    repository.ProjectRepository
	inventoryRepo  repository.InventoryRepository
	attendanceRepo repository.AttendanceRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	projectRepo repository.ProjectRepository,
	inventoryRepo repository.InventoryRepository,
	attendanceRepo repository.AttendanceRepository,
) *UseCase {
	return &UseCase{
		projectRepo:    projectRepo,
		inventoryRepo:  inventoryRepo,
		attendanceRepo: attendanceRepo,
	}
}

// Check ejecuta el cálculo completo. Es una lectura sin bloqueo (consulta
// consultiva): la prevención real de conflictos ocurre al confirmar el
// proyecto, por lo que dos consultas concurrentes cerca del límite de
// capacidad pueden ver ambas disponibilidad (riesgo aceptado).
func (uc *UseCase) Check(in dto.AvailabilityRequest) (*dto.AvailabilityResponse, error) {
	start, err := parseDate(in.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: startDate", domain.ErrInvalidInput)
	}
	end, err := parseDate(in.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: endDate", domain.ErrInvalidInput)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: endDate anterior a startDate", domain.ErrInvalidInput)
	}

	overlapping, err := uc.projectRepo.FindOverlapping(start, end, blockingStatuses, in.ExcludeProjectID)
	if err != nil {
		return nil, err
	}

	resp := &dto.AvailabilityResponse{
		ItemAvailability:    map[string]dto.ItemAvailability{},
		UnavailableDrivers:  []string{},
		UnavailableVehicles: []string{},
		UnavailableUsers:    []string{},
		RestWarnings:        []dto.RestWarning{},
	}

	if err := uc.itemAvailability(overlapping, resp); err != nil {
		return nil, err
	}
	uc.transportConflicts(in.SiteAddress, start, end, overlapping, resp)
	blocked := staffConflicts(overlapping, resp)
	if err := uc.restWarnings(start, blocked, resp); err != nil {
		return nil, err
	}

	return resp, nil
}

// itemAvailability acumula la cantidad reservada por ítem interno en los
// proyectos solapados y calcula available = max(0, total - mantenimiento - reservado).
func (uc *UseCase) itemAvailability(overlapping []*entity.Project, resp *dto.AvailabilityResponse) error {
	reserved := map[string]int{}
	for _, proj := range overlapping {
		for _, line := range proj.Items {
			if line.Source == entity.SourceInternal && line.InventoryItemID != "" {
				reserved[line.InventoryItemID] += line.Quantity
			}
		}
	}

	items, err := uc.inventoryRepo.List()
	if err != nil {
		return err
	}
	for _, item := range items {
		effective := item.Quantity - item.MaintenanceQuantity
		used := reserved[item.ID]
		available := effective - used
		if available < 0 {
			available = 0
		}
		resp.ItemAvailability[item.ID] = dto.ItemAvailability{
			Available: available,
			Total:     item.Quantity,
			Reserved:  used,
		}
	}
	return nil
}

// dayLoad carga de un recurso de transporte en un día concreto.
type dayLoad struct {
	count         int
	allGrandTunis bool
}

// transportConflicts aplica el modelo de conflicto de transporte: un
// conductor/vehículo está ocupado solo en los días exactos de inicio y fin de
// cada proyecto solapado (viajes de entrega y retorno), no durante toda la
// ventana. En el Gran Túnez se permiten hasta 3 viajes el mismo día si todos
// los sitios implicados están en la zona; fuera de ella el límite es 1.
func (uc *UseCase) transportConflicts(siteAddress string, start, end time.Time, overlapping []*entity.Project, resp *dto.AvailabilityResponse) {
	requestedGT := scheduling.IsGrandTunis(siteAddress)

	targetDays := map[string]struct{}{
		start.Format(dayFormat): {},
		end.Format(dayFormat):   {},
	}

	drivers := map[string]map[string]*dayLoad{}
	vehicles := map[string]map[string]*dayLoad{}

	for _, proj := range overlapping {
		driverKey := transportKey(proj.Transport.DriverID, proj.Transport.DriverName)
		vehicleKey := transportKey(proj.Transport.VehicleID, proj.Transport.VehiclePlate)
		if driverKey == "" && vehicleKey == "" {
			continue
		}
		projGT := scheduling.IsGrandTunis(proj.SiteAddress)

		for _, busyDay := range []string{
			proj.Dates.Start.Format(dayFormat),
			proj.Dates.End.Format(dayFormat),
		} {
			if _, ok := targetDays[busyDay]; !ok {
				continue
			}
			if driverKey != "" {
				addLoad(drivers, driverKey, busyDay, projGT)
			}
			if vehicleKey != "" {
				addLoad(vehicles, vehicleKey, busyDay, projGT)
			}
		}
	}

	resp.UnavailableDrivers = blockedResources(drivers, requestedGT)
	resp.UnavailableVehicles = blockedResources(vehicles, requestedGT)
}

// transportKey agrupa por referencia fuerte; si un registro antiguo no trae
// ID, cae al campo de display para no dejar el conflicto sin detectar.
func transportKey(id, display string) string {
	if id != "" {
		return id
	}
	return display
}

func addLoad(byResource map[string]map[string]*dayLoad, key, day string, grandTunis bool) {
	days, ok := byResource[key]
	if !ok {
		days = map[string]*dayLoad{}
		byResource[key] = days
	}
	load, ok := days[day]
	if !ok {
		load = &dayLoad{allGrandTunis: true}
		days[day] = load
	}
	load.count++
	if !grandTunis {
		// Basta un proyecto fuera del Gran Túnez ese día para anular la excepción.
		load.allGrandTunis = false
	}
}

// blockedResources decide qué recursos quedan no disponibles: bloqueado si en
// algún día objetivo la carga alcanza el límite aplicable.
func blockedResources(byResource map[string]map[string]*dayLoad, requestedGT bool) []string {
	blocked := []string{}
	for key, days := range byResource {
		for _, load := range days {
			limit := scheduling.TripLimit(requestedGT, load.allGrandTunis)
			if load.count >= limit {
				blocked = append(blocked, key)
				break
			}
		}
	}
	sort.Strings(blocked)
	return blocked
}

// staffConflicts bloquea al personal asignado a cualquier proyecto solapado
// durante TODA la ventana pedida (a diferencia del transporte, que solo se
// ocupa los días de viaje). Devuelve el conjunto bloqueado para que la regla
// de descanso no duplique avisos.
func staffConflicts(overlapping []*entity.Project, resp *dto.AvailabilityResponse) map[string]struct{} {
	blocked := map[string]struct{}{}
	for _, proj := range overlapping {
		for _, uid := range proj.AssignedUserIDs {
			if _, ok := blocked[uid]; ok {
				continue
			}
			blocked[uid] = struct{}{}
			resp.UnavailableUsers = append(resp.UnavailableUsers, uid)
		}
	}
	sort.Strings(resp.UnavailableUsers)
	return blocked
}

// restWarnings regla de las 11 horas: usuarios cuyo último check-out cae en
// (start - 11h, start) y que no están ya bloqueados se devuelven como aviso
// blando, no como bloqueo.
func (uc *UseCase) restWarnings(start time.Time, blocked map[string]struct{}, resp *dto.AvailabilityResponse) error {
	recent, err := uc.attendanceRepo.FindCheckoutsBetween(scheduling.RestWindowStart(start), start)
	if err != nil {
		return err
	}
	warned := map[string]struct{}{}
	for _, att := range recent {
		if att.CheckOut == nil {
			continue
		}
		if _, ok := blocked[att.UserID]; ok {
			continue
		}
		if _, ok := warned[att.UserID]; ok {
			continue
		}
		warned[att.UserID] = struct{}{}
		resp.RestWarnings = append(resp.RestWarnings, dto.RestWarning{
			UserID:   att.UserID,
			UserName: att.UserName,
			Reason: fmt.Sprintf("Descanso insuficiente: trabajó hasta las %s en el turno anterior.",
				att.CheckOut.Format("15:04")),
			CheckOut: *att.CheckOut,
		})
	}
	return nil
}

// parseDate acepta RFC 3339 o fecha simple YYYY-MM-DD.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("fecha vacía")
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(dayFormat, s)
}
