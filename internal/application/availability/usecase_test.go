package availability_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightstage/rentalops-api/internal/application/availability"
	"github.com/brightstage/rentalops-api/internal/application/dto"
	"github.com/brightstage/rentalops-api/internal/domain"
	"github.com/brightstage/rentalops-api/internal/domain/entity"
)

// ── Fakes en memoria ──────────────────────────────────────────────────────────

type fakeProjectRepo struct {
	projects []*entity.Project
}

func (f *fakeProjectRepo) Create(*entity.Project) error            { return nil }
func (f *fakeProjectRepo) GetByID(string) (*entity.Project, error) { return nil, nil }
func (f *fakeProjectRepo) Update(*entity.Project) error            { return nil }
func (f *fakeProjectRepo) List(string, int, int) ([]*entity.Project, error) {
	return f.projects, nil
}

func (f *fakeProjectRepo) FindOverlapping(start, end time.Time, statuses []string, excludeID string) ([]*entity.Project, error) {
	allowed := map[string]struct{}{}
	for _, s := range statuses {
		allowed[s] = struct{}{}
	}
	var out []*entity.Project
	for _, p := range f.projects {
		if p.ID == excludeID {
			continue
		}
		if _, ok := allowed[p.Status]; !ok {
			continue
		}
		if p.Dates.Overlaps(start, end) {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeInventoryRepo struct {
	items []*entity.InventoryItem
}

func (f *fakeInventoryRepo) Create(*entity.InventoryItem) error                 { return nil }
func (f *fakeInventoryRepo) Update(*entity.InventoryItem) error                 { return nil }
func (f *fakeInventoryRepo) GetByID(string) (*entity.InventoryItem, error)      { return nil, nil }
func (f *fakeInventoryRepo) GetByBarcode(string) (*entity.InventoryItem, error) { return nil, nil }
func (f *fakeInventoryRepo) List() ([]*entity.InventoryItem, error)             { return f.items, nil }

type fakeAttendanceRepo struct {
	records []*entity.Attendance
}

func (f *fakeAttendanceRepo) Create(*entity.Attendance) error { return nil }
func (f *fakeAttendanceRepo) Update(*entity.Attendance) error { return nil }
func (f *fakeAttendanceRepo) FindOpenByUser(string) (*entity.Attendance, error) {
	return nil, nil
}
func (f *fakeAttendanceRepo) ListByUser(string, int) ([]*entity.Attendance, error) { return nil, nil }
func (f *fakeAttendanceRepo) List(int) ([]*entity.Attendance, error)               { return nil, nil }

func (f *fakeAttendanceRepo) FindCheckoutsBetween(from, to time.Time) ([]*entity.Attendance, error) {
	var out []*entity.Attendance
	for _, a := range f.records {
		if a.CheckOut != nil && a.CheckOut.After(from) && a.CheckOut.Before(to) {
			out = append(out, a)
		}
	}
	return out, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func confirmedProject(id string, start, end time.Time) *entity.Project {
	return &entity.Project{
		ID:     id,
		Status: entity.StatusConfirmed,
		Dates:  entity.DateRange{Start: start, End: end},
	}
}

func newUseCase(projects []*entity.Project, items []*entity.InventoryItem, att []*entity.Attendance) *availability.UseCase {
	return availability.NewUseCase(
		&fakeProjectRepo{projects: projects},
		&fakeInventoryRepo{items: items},
		&fakeAttendanceRepo{records: att},
	)
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestCheck_FechasInvalidas(t *testing.T) {
	uc := newUseCase(nil, nil, nil)
	_, err := uc.Check(dto.AvailabilityRequest{StartDate: "no-es-fecha", EndDate: "2026-03-03"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Check(dto.AvailabilityRequest{StartDate: "2026-03-03", EndDate: "2026-03-01"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Escenario del stock: quantity=10, maintenance=2, un proyecto Confirmed
// solapado reservando 5 -> available = max(0, 10-2-5) = 3.
func TestCheck_StockConReservaYMantenimiento(t *testing.T) {
	proj := confirmedProject("p1", day(2026, 3, 2), day(2026, 3, 4))
	proj.Items = []entity.ProjectItem{
		{InventoryItemID: "item-1", Source: entity.SourceInternal, Quantity: 5},
	}
	items := []*entity.InventoryItem{
		{ID: "item-1", Name: "PAR LED 18", Quantity: 10, MaintenanceQuantity: 2},
	}
	uc := newUseCase([]*entity.Project{proj}, items, nil)

	resp, err := uc.Check(dto.AvailabilityRequest{StartDate: "2026-03-01", EndDate: "2026-03-03"})
	require.NoError(t, err)

	got := resp.ItemAvailability["item-1"]
	assert.Equal(t, 3, got.Available)
	assert.Equal(t, 10, got.Total)
	assert.Equal(t, 5, got.Reserved)
}

// La disponibilidad nunca es negativa aunque la sobre-reserva exista.
func TestCheck_StockNuncaNegativo(t *testing.T) {
	proj := confirmedProject("p1", day(2026, 3, 1), day(2026, 3, 3))
	proj.Items = []entity.ProjectItem{
		{InventoryItemID: "item-1", Source: entity.SourceInternal, Quantity: 50},
	}
	items := []*entity.InventoryItem{{ID: "item-1", Quantity: 10}}
	uc := newUseCase([]*entity.Project{proj}, items, nil)

	resp, err := uc.Check(dto.AvailabilityRequest{StartDate: "2026-03-01", EndDate: "2026-03-03"})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.ItemAvailability["item-1"].Available)
}

// Las líneas subcontratadas no consumen stock interno.
func TestCheck_SubcontratadoNoReserva(t *testing.T) {
	proj := confirmedProject("p1", day(2026, 3, 1), day(2026, 3, 3))
	proj.Items = []entity.ProjectItem{
		{SubcontractedItemID: "sub-1", Source: entity.SourceSubcontracted, Quantity: 5},
	}
	items := []*entity.InventoryItem{{ID: "item-1", Quantity: 10}}
	uc := newUseCase([]*entity.Project{proj}, items, nil)

	resp, err := uc.Check(dto.AvailabilityRequest{StartDate: "2026-03-01", EndDate: "2026-03-03"})
	require.NoError(t, err)
	assert.Equal(t, 10, resp.ItemAvailability["item-1"].Available)
	assert.Equal(t, 0, resp.ItemAvailability["item-1"].Reserved)
}

// Un proyecto excluido (el que se está editando) no cuenta contra sí mismo.
func TestCheck_ExcluyeProyectoPropio(t *testing.T) {
	proj := confirmedProject("p1", day(2026, 3, 1), day(2026, 3, 3))
	proj.Items = []entity.ProjectItem{
		{InventoryItemID: "item-1", Source: entity.SourceInternal, Quantity: 5},
	}
	items := []*entity.InventoryItem{{ID: "item-1", Quantity: 10}}
	uc := newUseCase([]*entity.Project{proj}, items, nil)

	resp, err := uc.Check(dto.AvailabilityRequest{
		StartDate: "2026-03-01", EndDate: "2026-03-03", ExcludeProjectID: "p1",
	})
	require.NoError(t, err)
	assert.Equal(t, 10, resp.ItemAvailability["item-1"].Available)
}

// El transporte solo se ocupa en los días exactos de inicio/fin del proyecto
// solapado, no durante todo el periodo.
func TestCheck_TransporteSoloDiasDeViaje(t *testing.T) {
	proj := confirmedProject("p1", day(2026, 3, 1), day(2026, 3, 10))
	proj.SiteAddress = "Sousse"
	proj.Transport = entity.Transport{DriverID: "drv-1", VehicleID: "veh-1"}
	uc := newUseCase([]*entity.Project{proj}, nil, nil)

	// Consulta en mitad del periodo (3 al 5): los días de viaje del proyecto
	// (1 y 10) no coinciden -> conductor y vehículo libres.
	resp, err := uc.Check(dto.AvailabilityRequest{
		StartDate: "2026-03-03", EndDate: "2026-03-05", SiteAddress: "Sfax",
	})
	require.NoError(t, err)
	assert.Empty(t, resp.UnavailableDrivers)
	assert.Empty(t, resp.UnavailableVehicles)

	// Consulta cuyo inicio coincide con el día de retorno del proyecto -> ocupado.
	resp, err = uc.Check(dto.AvailabilityRequest{
		StartDate: "2026-03-10", EndDate: "2026-03-12", SiteAddress: "Sfax",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"drv-1"}, resp.UnavailableDrivers)
	assert.Equal(t, []string{"veh-1"}, resp.UnavailableVehicles)
}

// Excepción del Gran Túnez: dos proyectos el mismo día con el mismo conductor
// siguen disponibles (hasta 3 viajes); el tercero bloquea.
func TestCheck_ExcepcionGranTunez(t *testing.T) {
	mkProj := func(id string) *entity.Project {
		p := confirmedProject(id, day(2026, 3, 1), day(2026, 3, 1))
		p.SiteAddress = "La Marsa, Tunis"
		p.Transport = entity.Transport{DriverID: "drv-1"}
		return p
	}
	req := dto.AvailabilityRequest{
		StartDate: "2026-03-01", EndDate: "2026-03-01", SiteAddress: "Les Berges du Lac",
	}

	// Dos viajes existentes el mismo día, todos Gran Túnez -> aún disponible.
	uc := newUseCase([]*entity.Project{mkProj("p1"), mkProj("p2")}, nil, nil)
	resp, err := uc.Check(req)
	require.NoError(t, err)
	assert.Empty(t, resp.UnavailableDrivers)

	// Tres viajes -> bloqueado.
	uc = newUseCase([]*entity.Project{mkProj("p1"), mkProj("p2"), mkProj("p3")}, nil, nil)
	resp, err = uc.Check(req)
	require.NoError(t, err)
	assert.Equal(t, []string{"drv-1"}, resp.UnavailableDrivers)
}

// Si el proyecto solicitado NO es Gran Túnez, el límite vuelve a 1 aunque los
// existentes sí lo sean.
func TestCheck_SinExcepcionFueraDeGranTunez(t *testing.T) {
	p := confirmedProject("p1", day(2026, 3, 1), day(2026, 3, 1))
	p.SiteAddress = "Tunis Centre"
	p.Transport = entity.Transport{DriverID: "drv-1"}
	uc := newUseCase([]*entity.Project{p}, nil, nil)

	resp, err := uc.Check(dto.AvailabilityRequest{
		StartDate: "2026-03-01", EndDate: "2026-03-01", SiteAddress: "Sousse",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"drv-1"}, resp.UnavailableDrivers)
}

// Basta un proyecto fuera de la zona ese día para anular la excepción.
func TestCheck_ProyectoExternoAnulaExcepcion(t *testing.T) {
	gt := confirmedProject("p1", day(2026, 3, 1), day(2026, 3, 1))
	gt.SiteAddress = "Carthage"
	gt.Transport = entity.Transport{DriverID: "drv-1"}

	external := confirmedProject("p2", day(2026, 3, 1), day(2026, 3, 1))
	external.SiteAddress = "Hammamet"
	external.Transport = entity.Transport{DriverID: "drv-1"}

	uc := newUseCase([]*entity.Project{gt, external}, nil, nil)
	resp, err := uc.Check(dto.AvailabilityRequest{
		StartDate: "2026-03-01", EndDate: "2026-03-01", SiteAddress: "Le Bardo, Tunis",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"drv-1"}, resp.UnavailableDrivers)
}

// El personal asignado se bloquea por toda la ventana solapada.
func TestCheck_PersonalBloqueadoVentanaCompleta(t *testing.T) {
	proj := confirmedProject("p1", day(2026, 3, 1), day(2026, 3, 10))
	proj.AssignedUserIDs = []string{"u1", "u2"}
	uc := newUseCase([]*entity.Project{proj}, nil, nil)

	resp, err := uc.Check(dto.AvailabilityRequest{StartDate: "2026-03-05", EndDate: "2026-03-06"})
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2"}, resp.UnavailableUsers)
}

// Regla de descanso: check-out a las 23:00 del día N, turno a las 06:00 del
// día N+1 (7h < 11h) -> aviso, no bloqueo.
func TestCheck_AvisoDescansoInsuficiente(t *testing.T) {
	checkOut := time.Date(2026, 3, 1, 23, 0, 0, 0, time.UTC)
	att := &entity.Attendance{ID: "a1", UserID: "u9", UserName: "Ahmed", CheckOut: &checkOut}
	uc := newUseCase(nil, nil, []*entity.Attendance{att})

	resp, err := uc.Check(dto.AvailabilityRequest{
		StartDate: "2026-03-02T06:00:00Z", EndDate: "2026-03-03T20:00:00Z",
	})
	require.NoError(t, err)
	require.Len(t, resp.RestWarnings, 1)
	assert.Equal(t, "u9", resp.RestWarnings[0].UserID)
	assert.Equal(t, checkOut, resp.RestWarnings[0].CheckOut)
	assert.NotContains(t, resp.UnavailableUsers, "u9")
}

// Un usuario ya bloqueado por asignación no genera además un aviso de descanso.
func TestCheck_BloqueadoNoDuplicaAviso(t *testing.T) {
	proj := confirmedProject("p1", day(2026, 3, 1), day(2026, 3, 5))
	proj.AssignedUserIDs = []string{"u9"}
	checkOut := time.Date(2026, 3, 1, 23, 0, 0, 0, time.UTC)
	att := &entity.Attendance{ID: "a1", UserID: "u9", CheckOut: &checkOut}

	uc := newUseCase([]*entity.Project{proj}, nil, []*entity.Attendance{att})
	resp, err := uc.Check(dto.AvailabilityRequest{
		StartDate: "2026-03-02T06:00:00Z", EndDate: "2026-03-03T20:00:00Z",
	})
	require.NoError(t, err)
	assert.Contains(t, resp.UnavailableUsers, "u9")
	assert.Empty(t, resp.RestWarnings)
}
