// Package project implementa el ciclo de vida operativo del proyecto:
// bloqueo/validación, tokens QR de salida y retorno, y la finalización del
// retorno con el abono de puntos al equipo.
package project

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/brightstage/rentalops-api/internal/application/dto"
	"github.com/brightstage/rentalops-api/internal/domain"
	"github.com/brightstage/rentalops-api/internal/domain/entity"
	"github.com/brightstage/rentalops-api/internal/domain/repository"
	"github.com/brightstage/rentalops-api/internal/domain/workflow"
)

// Puntos por retorno limpio / material faltante (equipo completo).
const (
	cleanReturnPoints  = 100
	missingItemsPoints = -100
)

// LifecycleUseCase transiciones de estado del proyecto. Cada operación carga
// el agregado, consulta la tabla de transiciones y persiste el resultado
// completo; una precondición fallida no muta nada.
type LifecycleUseCase struct {
	projectRepo repository.ProjectRepository
	txRunner    TxRunner
}

// NewLifecycleUseCase construye el caso de uso.
func NewLifecycleUseCase(projectRepo repository.ProjectRepository, txRunner TxRunner) *LifecycleUseCase {
	return &LifecycleUseCase{projectRepo: projectRepo, txRunner: txRunner}
}

func (uc *LifecycleUseCase) load(id string) (*entity.Project, error) {
	p, err := uc.projectRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// Lock envía el proyecto a validación y lo bloquea: solo los roles
// privilegiados podrán mutarlo hasta que se desbloquee.
func (uc *LifecycleUseCase) Lock(ctx context.Context, id string) (*entity.Project, error) {
	p, err := uc.load(id)
	if err != nil {
		return nil, err
	}
	next, err := workflow.Next(workflow.StateOf(p), workflow.EventLock)
	if err != nil {
		return nil, err
	}
	next.ApplyTo(p)
	p.Permissions.Locked = true
	if err := uc.projectRepo.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Unlock quita el bloqueo y registra quién lo hizo. Solo roles privilegiados
// (la autorización la aplica el middleware).
func (uc *LifecycleUseCase) Unlock(ctx context.Context, id, actorID string) (*entity.Project, error) {
	p, err := uc.load(id)
	if err != nil {
		return nil, err
	}
	p.Permissions.Locked = false
	p.Permissions.UnlockedBy = actorID
	if err := uc.projectRepo.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate aprueba el proyecto y lo pasa a fase operativa (status=Pickup),
// re-asegurando el bloqueo.
func (uc *LifecycleUseCase) Validate(ctx context.Context, id string) (*entity.Project, error) {
	p, err := uc.load(id)
	if err != nil {
		return nil, err
	}
	next, err := workflow.Next(workflow.StateOf(p), workflow.EventValidate)
	if err != nil {
		return nil, err
	}
	next.ApplyTo(p)
	p.IsValidated = true
	p.Permissions.Locked = true
	if err := uc.projectRepo.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

// ValidateManifest alias de la app de escritorio: valida sin forzar Pickup;
// si la logística estaba en Prep avanza a ReadyForExit.
func (uc *LifecycleUseCase) ValidateManifest(ctx context.Context, id string) (*entity.Project, error) {
	p, err := uc.load(id)
	if err != nil {
		return nil, err
	}
	next, err := workflow.Next(workflow.StateOf(p), workflow.EventValidateManifest)
	if err != nil {
		return nil, err
	}
	next.ApplyTo(p)
	p.IsValidated = true
	if err := uc.projectRepo.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

// CancelValidation revierte la validación mientras el material no haya salido
// (status debe seguir en Confirmed). Invalida cualquier QR de salida emitido.
func (uc *LifecycleUseCase) CancelValidation(ctx context.Context, id string) (*entity.Project, error) {
	p, err := uc.load(id)
	if err != nil {
		return nil, err
	}
	next, err := workflow.Next(workflow.StateOf(p), workflow.EventCancelValidation)
	if err != nil {
		return nil, err
	}
	next.ApplyTo(p)
	p.IsValidated = false
	p.ExitQR.Clear()
	if err := uc.projectRepo.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

// IssueExitQR emite un token de salida fresco y deja el proyecto listo para
// el escaneo en bodega. Re-emitir reemplaza el token anterior.
func (uc *LifecycleUseCase) IssueExitQR(ctx context.Context, id string) (*entity.Project, error) {
	p, err := uc.load(id)
	if err != nil {
		return nil, err
	}
	next, err := workflow.Next(workflow.StateOf(p), workflow.EventIssueExitQR)
	if err != nil {
		return nil, err
	}
	next.ApplyTo(p)
	p.ExitQR.Issue(fmt.Sprintf("EXIT-%s-%s", p.ID, uuid.New().String()), time.Now())
	if err := uc.projectRepo.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

// ScanExit consume el token de salida: con token correcto el material pasa a
// sitio; con token incorrecto no se muta nada.
func (uc *LifecycleUseCase) ScanExit(ctx context.Context, id, presented, scannerID string) (*entity.Project, error) {
	p, err := uc.load(id)
	if err != nil {
		return nil, err
	}
	if !p.ExitQR.Matches(presented) {
		return nil, domain.ErrInvalidToken
	}
	next, err := workflow.Next(workflow.StateOf(p), workflow.EventScanExit)
	if err != nil {
		return nil, err
	}
	next.ApplyTo(p)
	p.ExitQR.Consume()
	now := time.Now()
	p.ExitScannedAt = &now
	p.ExitScannedBy = scannerID
	if err := uc.projectRepo.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

// IssueReturnQR emite el token de retorno. Puerta de fecha: solo es legal
// cuando "hoy" (comparación de fecha, sin hora) es igual o posterior a la
// fecha de fin del proyecto.
func (uc *LifecycleUseCase) IssueReturnQR(ctx context.Context, id string) (*entity.Project, error) {
	p, err := uc.load(id)
	if err != nil {
		return nil, err
	}
	today := truncateToDay(time.Now())
	returnDay := truncateToDay(p.Dates.End)
	if today.Before(returnDay) {
		return nil, domain.ErrReturnNotDue
	}
	next, err := workflow.Next(workflow.StateOf(p), workflow.EventIssueReturnQR)
	if err != nil {
		return nil, err
	}
	next.ApplyTo(p)
	p.ReturnQR.Issue(fmt.Sprintf("RETURN-%s-%s", p.ID, uuid.New().String()), time.Now())
	if err := uc.projectRepo.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

// ScanReturn verifica el token y devuelve el proyecto para el checklist.
// Fase 1 de 2: NO consume el token ni cambia la logística; eso ocurre en
// FinalizeReturn cuando el checklist se envía.
func (uc *LifecycleUseCase) ScanReturn(ctx context.Context, id, presented string) (*entity.Project, error) {
	p, err := uc.load(id)
	if err != nil {
		return nil, err
	}
	if !p.ReturnQR.Matches(presented) {
		return nil, domain.ErrInvalidToken
	}
	return p, nil
}

// FinalizeReturn cierra el proyecto con el checklist de retorno: escribe el
// reporte (inmutable después), consume el token, completa las reservas,
// incrementa mantenimiento por el material roto y abona/castiga los puntos
// del equipo. Todo en una sola transacción.
func (uc *LifecycleUseCase) FinalizeReturn(ctx context.Context, id, scannerID string, in dto.FinalizeReturnRequest) (*entity.Project, error) {
	p, err := uc.load(id)
	if err != nil {
		return nil, err
	}
	if p.ReturnReport != nil {
		return nil, fmt.Errorf("%w: el reporte de retorno ya fue registrado", domain.ErrConflict)
	}
	next, err := workflow.Next(workflow.StateOf(p), workflow.EventFinalizeReturn)
	if err != nil {
		return nil, err
	}

	report := &entity.ReturnReport{
		MissingItems: toReturnLines(in.MissingItems),
		BrokenItems:  toReturnLines(in.BrokenItems),
		CleanReturn:  in.CleanReturn,
	}

	err = uc.txRunner.RunFinalize(ctx, func(
		projectRepo repository.ProjectRepository,
		userRepo repository.UserRepository,
		reservationRepo repository.ReservationRepository,
		inventoryRepo repository.InventoryRepository,
	) error {
		next.ApplyTo(p)
		p.ReturnReport = report
		now := time.Now()
		p.ReturnScannedAt = &now
		p.ReturnScannedBy = scannerID
		p.ReturnQR.Consume()

		if err := projectRepo.Update(p); err != nil {
			return err
		}
		if err := reservationRepo.UpdateStatusByProject(p.ID, entity.ReservationCompleted); err != nil {
			return err
		}

		// El material roto pasa a la subcantidad de mantenimiento.
		for _, line := range report.BrokenItems {
			if line.InventoryItemID == "" || line.Quantity <= 0 {
				continue
			}
			item, err := inventoryRepo.GetByID(line.InventoryItemID)
			if err != nil {
				return err
			}
			if item == nil {
				continue
			}
			item.MaintenanceQuantity += line.Quantity
			if err := inventoryRepo.Update(item); err != nil {
				return err
			}
		}

		// Puntos al equipo: creador + asignados, sin duplicados. AwardPoints es
		// idempotente por (usuario, proyecto), así un reintento no duplica.
		// Material roto sin faltantes no puntúa (regla de producto, ver DESIGN.md).
		for _, userID := range p.Team() {
			switch {
			case report.CleanReturn:
				if _, err := userRepo.AwardPoints(userID, p.ID, cleanReturnPoints,
					fmt.Sprintf("Clean Return - Project %s (Team)", p.EventName)); err != nil {
					return err
				}
			case len(report.MissingItems) > 0:
				if _, err := userRepo.AwardPoints(userID, p.ID, missingItemsPoints,
					fmt.Sprintf("Missing Items - Project %s (Team)", p.EventName)); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func toReturnLines(in []dto.ReturnLineRequest) []entity.ReturnLine {
	out := make([]entity.ReturnLine, 0, len(in))
	for _, l := range in {
		out = append(out, entity.ReturnLine{
			InventoryItemID: l.InventoryItemID,
			Name:            l.Name,
			Quantity:        l.Quantity,
		})
	}
	return out
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
