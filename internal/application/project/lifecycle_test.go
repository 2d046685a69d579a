package project_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightstage/rentalops-api/internal/application/dto"
	"github.com/brightstage/rentalops-api/internal/application/project"
	"github.com/brightstage/rentalops-api/internal/domain"
	"github.com/brightstage/rentalops-api/internal/domain/entity"
	"github.com/brightstage/rentalops-api/internal/domain/repository"
)

// ── Fakes en memoria ──────────────────────────────────────────────────────────

type fakeProjectRepo struct {
	byID map[string]*entity.Project
}

func newFakeProjectRepo(projects ...*entity.Project) *fakeProjectRepo {
	f := &fakeProjectRepo{byID: map[string]*entity.Project{}}
	for _, p := range projects {
		cp := *p
		f.byID[p.ID] = &cp
	}
	return f
}

func (f *fakeProjectRepo) Create(p *entity.Project) error {
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakeProjectRepo) GetByID(id string) (*entity.Project, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProjectRepo) Update(p *entity.Project) error {
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakeProjectRepo) List(string, int, int) ([]*entity.Project, error) { return nil, nil }
func (f *fakeProjectRepo) FindOverlapping(time.Time, time.Time, []string, string) ([]*entity.Project, error) {
	return nil, nil
}

type awardKey struct{ userID, projectID string }

type fakeUserRepo struct {
	awards map[awardKey]int
}

func newFakeUserRepo() *fakeUserRepo { return &fakeUserRepo{awards: map[awardKey]int{}} }

func (f *fakeUserRepo) Create(*entity.User) error                { return nil }
func (f *fakeUserRepo) GetByID(string) (*entity.User, error)     { return nil, nil }
func (f *fakeUserRepo) FindByEmail(string) (*entity.User, error) { return nil, nil }
func (f *fakeUserRepo) List() ([]*entity.User, error)            { return nil, nil }
func (f *fakeUserRepo) PointsHistory(string) ([]*entity.PointsEntry, error) {
	return nil, nil
}

func (f *fakeUserRepo) AwardPoints(userID, projectID string, points int, reason string) (bool, error) {
	key := awardKey{userID, projectID}
	if _, ok := f.awards[key]; ok {
		return false, nil
	}
	f.awards[key] = points
	return true, nil
}

type fakeReservationRepo struct {
	statusByProject map[string]string
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{statusByProject: map[string]string{}}
}

func (f *fakeReservationRepo) CreateBulk([]*entity.Reservation) error { return nil }
func (f *fakeReservationRepo) ListByProject(string) ([]*entity.Reservation, error) {
	return nil, nil
}

func (f *fakeReservationRepo) UpdateStatusByProject(projectID, status string) error {
	f.statusByProject[projectID] = status
	return nil
}

type fakeItemRepo struct {
	byID map[string]*entity.InventoryItem
}

func newFakeItemRepo(items ...*entity.InventoryItem) *fakeItemRepo {
	f := &fakeItemRepo{byID: map[string]*entity.InventoryItem{}}
	for _, it := range items {
		f.byID[it.ID] = it
	}
	return f
}

func (f *fakeItemRepo) Create(*entity.InventoryItem) error { return nil }
func (f *fakeItemRepo) Update(item *entity.InventoryItem) error {
	f.byID[item.ID] = item
	return nil
}

func (f *fakeItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	return f.byID[id], nil
}
func (f *fakeItemRepo) GetByBarcode(string) (*entity.InventoryItem, error) { return nil, nil }
func (f *fakeItemRepo) List() ([]*entity.InventoryItem, error)             { return nil, nil }

// fakeTxRunner ejecuta el callback directo contra los fakes, sin transacción.
type fakeTxRunner struct {
	projects     *fakeProjectRepo
	users        *fakeUserRepo
	reservations *fakeReservationRepo
	items        *fakeItemRepo
}

func (f *fakeTxRunner) RunFinalize(ctx context.Context, fn func(
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
	reservationRepo repository.ReservationRepository,
	inventoryRepo repository.InventoryRepository,
) error) error {
	return fn(f.projects, f.users, f.reservations, f.items)
}

// ── Helpers ───────────────────────────────────────────────────────────────────

type fixture struct {
	uc           *project.LifecycleUseCase
	projects     *fakeProjectRepo
	users        *fakeUserRepo
	reservations *fakeReservationRepo
	items        *fakeItemRepo
}

func newFixture(projects ...*entity.Project) *fixture {
	f := &fixture{
		projects:     newFakeProjectRepo(projects...),
		users:        newFakeUserRepo(),
		reservations: newFakeReservationRepo(),
		items:        newFakeItemRepo(),
	}
	f.uc = project.NewLifecycleUseCase(f.projects, &fakeTxRunner{
		projects:     f.projects,
		users:        f.users,
		reservations: f.reservations,
		items:        f.items,
	})
	return f
}

// pastProject: proyecto con fecha de fin en el pasado, para que la puerta de
// fecha del QR de retorno no estorbe.
func pastProject(id, status, validation, logistics string) *entity.Project {
	return &entity.Project{
		ID:               id,
		CreatedBy:        "user-creator",
		EventName:        "Boda Gammarth",
		Status:           status,
		ValidationStatus: validation,
		LogisticsStatus:  logistics,
		Dates: entity.DateRange{
			Start: time.Now().AddDate(0, 0, -5),
			End:   time.Now().AddDate(0, 0, -1),
		},
	}
}

func stored(t *testing.T, f *fixture, id string) *entity.Project {
	t.Helper()
	p, err := f.projects.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestLock_EnviaAValidacionYBloquea(t *testing.T) {
	f := newFixture(pastProject("p1", entity.StatusConfirmed, entity.ValidationDraft, entity.LogisticsPrep))

	p, err := f.uc.Lock(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, entity.ValidationPending, p.ValidationStatus)
	assert.True(t, p.Permissions.Locked)
}

func TestLock_ProyectoInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Lock(context.Background(), "no-existe")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUnlock_RegistraQuien(t *testing.T) {
	proj := pastProject("p1", entity.StatusConfirmed, entity.ValidationPending, entity.LogisticsPrep)
	proj.Permissions.Locked = true
	f := newFixture(proj)

	p, err := f.uc.Unlock(context.Background(), "p1", "user-mgr")
	require.NoError(t, err)
	assert.False(t, p.Permissions.Locked)
	assert.Equal(t, "user-mgr", p.Permissions.UnlockedBy)
}

func TestValidate_FuerzaPickup(t *testing.T) {
	f := newFixture(pastProject("p1", entity.StatusConfirmed, entity.ValidationPending, entity.LogisticsPrep))

	p, err := f.uc.Validate(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, entity.ValidationValidated, p.ValidationStatus)
	assert.Equal(t, entity.StatusPickup, p.Status)
	assert.True(t, p.IsValidated)
	assert.True(t, p.Permissions.Locked)
}

// La variante de manifiesto valida sin tocar el status macro y prepara la salida.
func TestValidateManifest_NoFuerzaPickup(t *testing.T) {
	f := newFixture(pastProject("p1", entity.StatusConfirmed, entity.ValidationPending, entity.LogisticsPrep))

	p, err := f.uc.ValidateManifest(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, entity.ValidationValidated, p.ValidationStatus)
	assert.Equal(t, entity.StatusConfirmed, p.Status)
	assert.Equal(t, entity.LogisticsReadyForExit, p.LogisticsStatus)
}

func TestCancelValidation_LimpiaQRDeSalida(t *testing.T) {
	proj := pastProject("p1", entity.StatusConfirmed, entity.ValidationValidated, entity.LogisticsReadyForExit)
	proj.ExitQR = entity.IssuedQRToken("EXIT-p1-abc", time.Now())
	f := newFixture(proj)

	p, err := f.uc.CancelValidation(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, entity.ValidationDraft, p.ValidationStatus)
	assert.Equal(t, entity.LogisticsPrep, p.LogisticsStatus)
	assert.False(t, p.ExitQR.Active(), "cancelar la validación debe invalidar el QR de salida")
	assert.False(t, p.IsValidated)
}

// Con el material ya fuera de bodega la validación no se puede revertir.
func TestCancelValidation_RechazadaTrasSalida(t *testing.T) {
	f := newFixture(pastProject("p1", entity.StatusPickup, entity.ValidationValidated, entity.LogisticsOnSite))

	_, err := f.uc.CancelValidation(context.Background(), "p1")
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	p := stored(t, f, "p1")
	assert.Equal(t, entity.ValidationValidated, p.ValidationStatus, "un rechazo no debe mutar nada")
}

func TestIssueExitQR_RequiereValidacion(t *testing.T) {
	f := newFixture(pastProject("p1", entity.StatusConfirmed, entity.ValidationPending, entity.LogisticsPrep))

	_, err := f.uc.IssueExitQR(context.Background(), "p1")
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestIssueExitQR_ReemplazaTokenAnterior(t *testing.T) {
	f := newFixture(pastProject("p1", entity.StatusConfirmed, entity.ValidationValidated, entity.LogisticsPrep))

	p1, err := f.uc.IssueExitQR(context.Background(), "p1")
	require.NoError(t, err)
	first := p1.ExitQR.Value()
	require.NotEmpty(t, first)
	assert.Equal(t, entity.LogisticsReadyForExit, p1.LogisticsStatus)

	p2, err := f.uc.IssueExitQR(context.Background(), "p1")
	require.NoError(t, err)
	second := p2.ExitQR.Value()
	require.NotEmpty(t, second)
	assert.NotEqual(t, first, second, "re-emitir debe generar un token fresco")
}

// Ida y vuelta del QR de salida: emitir, escanear y verificar que un segundo
// escaneo con el mismo token falla.
func TestScanExit_IdaYVuelta(t *testing.T) {
	f := newFixture(pastProject("p1", entity.StatusConfirmed, entity.ValidationValidated, entity.LogisticsPrep))

	issued, err := f.uc.IssueExitQR(context.Background(), "p1")
	require.NoError(t, err)
	token := issued.ExitQR.Value()

	p, err := f.uc.ScanExit(context.Background(), "p1", token, "user-store")
	require.NoError(t, err)
	assert.Equal(t, entity.LogisticsOnSite, p.LogisticsStatus)
	assert.Equal(t, entity.StatusPickup, p.Status)
	assert.Equal(t, "user-store", p.ExitScannedBy)
	require.NotNil(t, p.ExitScannedAt)
	assert.False(t, p.ExitQR.Active(), "el token debe quedar consumido")

	_, err = f.uc.ScanExit(context.Background(), "p1", token, "user-store")
	require.ErrorIs(t, err, domain.ErrInvalidToken, "un token consumido no puede volver a escanearse")
}

func TestScanExit_TokenIncorrectoNoMutaNada(t *testing.T) {
	proj := pastProject("p1", entity.StatusConfirmed, entity.ValidationValidated, entity.LogisticsReadyForExit)
	proj.ExitQR = entity.IssuedQRToken("EXIT-p1-real", time.Now())
	f := newFixture(proj)

	_, err := f.uc.ScanExit(context.Background(), "p1", "EXIT-p1-falso", "user-store")
	require.ErrorIs(t, err, domain.ErrInvalidToken)

	p := stored(t, f, "p1")
	assert.Equal(t, entity.LogisticsReadyForExit, p.LogisticsStatus)
	assert.True(t, p.ExitQR.Matches("EXIT-p1-real"), "el token real debe seguir vivo")
}

func TestIssueReturnQR_AntesDeLaFechaDeFin(t *testing.T) {
	proj := pastProject("p1", entity.StatusPickup, entity.ValidationValidated, entity.LogisticsOnSite)
	proj.Dates.End = time.Now().AddDate(0, 0, 2)
	f := newFixture(proj)

	_, err := f.uc.IssueReturnQR(context.Background(), "p1")
	require.ErrorIs(t, err, domain.ErrReturnNotDue)
}

func TestIssueReturnQR_ElDiaDeFinEsValido(t *testing.T) {
	proj := pastProject("p1", entity.StatusPickup, entity.ValidationValidated, entity.LogisticsOnSite)
	proj.Dates.End = time.Now()
	f := newFixture(proj)

	p, err := f.uc.IssueReturnQR(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, entity.LogisticsReturning, p.LogisticsStatus)
	assert.True(t, p.ReturnQR.Active())
}

func TestScanReturn_VerificaSinConsumir(t *testing.T) {
	proj := pastProject("p1", entity.StatusPickup, entity.ValidationValidated, entity.LogisticsReturning)
	proj.ReturnQR = entity.IssuedQRToken("RETURN-p1-abc", time.Now())
	f := newFixture(proj)

	p, err := f.uc.ScanReturn(context.Background(), "p1", "RETURN-p1-abc")
	require.NoError(t, err)
	assert.True(t, p.ReturnQR.Active(), "la verificación no consume el token; eso lo hace la finalización")

	_, err = f.uc.ScanReturn(context.Background(), "p1", "RETURN-p1-xyz")
	require.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestFinalizeReturn_RetornoLimpio(t *testing.T) {
	proj := pastProject("p1", entity.StatusPickup, entity.ValidationValidated, entity.LogisticsReturning)
	proj.AssignedUserIDs = []string{"user-a", "user-b", "user-creator"}
	proj.ReturnQR = entity.IssuedQRToken("RETURN-p1-abc", time.Now())
	f := newFixture(proj)

	p, err := f.uc.FinalizeReturn(context.Background(), "p1", "user-store", dto.FinalizeReturnRequest{CleanReturn: true})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusDone, p.Status)
	assert.Equal(t, entity.LogisticsReturned, p.LogisticsStatus)
	require.NotNil(t, p.ReturnReport)
	assert.True(t, p.ReturnReport.CleanReturn)
	assert.Equal(t, "user-store", p.ReturnScannedBy)
	assert.False(t, p.ReturnQR.Active())

	assert.Equal(t, entity.ReservationCompleted, f.reservations.statusByProject["p1"])

	// Creador + asignados, sin duplicar al creador: 3 abonos de +100.
	assert.Len(t, f.users.awards, 3)
	for _, id := range []string{"user-creator", "user-a", "user-b"} {
		assert.Equal(t, 100, f.users.awards[awardKey{id, "p1"}], "abono de %s", id)
	}
}

func TestFinalizeReturn_FaltantesCastiganYRotosVanAMantenimiento(t *testing.T) {
	proj := pastProject("p1", entity.StatusPickup, entity.ValidationValidated, entity.LogisticsReturning)
	proj.AssignedUserIDs = []string{"user-a"}
	proj.ReturnQR = entity.IssuedQRToken("RETURN-p1-abc", time.Now())
	f := newFixture(proj)
	f.items.byID["item-1"] = &entity.InventoryItem{ID: "item-1", Quantity: 10, MaintenanceQuantity: 1}

	_, err := f.uc.FinalizeReturn(context.Background(), "p1", "user-store", dto.FinalizeReturnRequest{
		MissingItems: []dto.ReturnLineRequest{{InventoryItemID: "item-2", Name: "Cable XLR", Quantity: 3}},
		BrokenItems:  []dto.ReturnLineRequest{{InventoryItemID: "item-1", Name: "Par LED", Quantity: 2}},
	})
	require.NoError(t, err)

	assert.Equal(t, -100, f.users.awards[awardKey{"user-creator", "p1"}])
	assert.Equal(t, -100, f.users.awards[awardKey{"user-a", "p1"}])
	assert.Equal(t, 3, f.items.byID["item-1"].MaintenanceQuantity, "lo roto pasa a mantenimiento")
}

// Solo material roto, sin faltantes: no hay abono ni castigo.
func TestFinalizeReturn_SoloRotosNoPuntua(t *testing.T) {
	proj := pastProject("p1", entity.StatusPickup, entity.ValidationValidated, entity.LogisticsReturning)
	proj.ReturnQR = entity.IssuedQRToken("RETURN-p1-abc", time.Now())
	f := newFixture(proj)
	f.items.byID["item-1"] = &entity.InventoryItem{ID: "item-1", Quantity: 10}

	_, err := f.uc.FinalizeReturn(context.Background(), "p1", "user-store", dto.FinalizeReturnRequest{
		BrokenItems: []dto.ReturnLineRequest{{InventoryItemID: "item-1", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Empty(t, f.users.awards)
}

func TestFinalizeReturn_ReporteInmutable(t *testing.T) {
	proj := pastProject("p1", entity.StatusPickup, entity.ValidationValidated, entity.LogisticsReturning)
	proj.ReturnQR = entity.IssuedQRToken("RETURN-p1-abc", time.Now())
	f := newFixture(proj)

	_, err := f.uc.FinalizeReturn(context.Background(), "p1", "user-store", dto.FinalizeReturnRequest{CleanReturn: true})
	require.NoError(t, err)

	_, err = f.uc.FinalizeReturn(context.Background(), "p1", "user-store", dto.FinalizeReturnRequest{
		MissingItems: []dto.ReturnLineRequest{{InventoryItemID: "item-9", Quantity: 1}},
	})
	require.ErrorIs(t, err, domain.ErrConflict, "el reporte de retorno no se reescribe")

	p := stored(t, f, "p1")
	assert.True(t, p.ReturnReport.CleanReturn)
	assert.Empty(t, p.ReturnReport.MissingItems)
}

func TestFinalizeReturn_ErrorEnTransaccionPropaga(t *testing.T) {
	proj := pastProject("p1", entity.StatusPickup, entity.ValidationValidated, entity.LogisticsReturning)
	proj.ReturnQR = entity.IssuedQRToken("RETURN-p1-abc", time.Now())
	f := newFixture(proj)
	f.uc = project.NewLifecycleUseCase(f.projects, failingTxRunner{})

	_, err := f.uc.FinalizeReturn(context.Background(), "p1", "user-store", dto.FinalizeReturnRequest{CleanReturn: true})
	require.Error(t, err)
}

type failingTxRunner struct{}

func (failingTxRunner) RunFinalize(context.Context, func(
	repository.ProjectRepository,
	repository.UserRepository,
	repository.ReservationRepository,
	repository.InventoryRepository,
) error) error {
	return fmt.Errorf("tx: conexión perdida")
}
