// Package hr maneja la asistencia del personal: check-in con geocerca en el
// sitio del evento, check-out con desglose de horas y el estado de la sesión.
package hr

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/brightstage/rentalops-api/internal/application/dto"
	"github.com/brightstage/rentalops-api/internal/domain"
	"github.com/brightstage/rentalops-api/internal/domain/entity"
	"github.com/brightstage/rentalops-api/internal/domain/repository"
	"github.com/brightstage/rentalops-api/internal/domain/scheduling"
)

// UseCase operaciones de asistencia.
type UseCase struct {
	attendanceRepo repository.AttendanceRepository
	projectRepo    repository.ProjectRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(attendanceRepo repository.AttendanceRepository, projectRepo repository.ProjectRepository) *UseCase {
	return &UseCase{attendanceRepo: attendanceRepo, projectRepo: projectRepo}
}

// CheckIn abre la sesión de asistencia del usuario. Si se indica proyecto y
// este tiene sitio geolocalizado, la posición reportada debe caer dentro de
// la geocerca. Un usuario con sesión abierta no puede abrir otra.
func (uc *UseCase) CheckIn(ctx context.Context, userID, userName string, in dto.CheckInRequest) (*entity.Attendance, error) {
	open, err := uc.attendanceRepo.FindOpenByUser(userID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, domain.ErrOpenSession
	}

	if in.ProjectID != "" {
		if err := uc.checkGeofence(in.ProjectID, in.Location); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	a := &entity.Attendance{
		ID:        uuid.New().String(),
		UserID:    userID,
		UserName:  userName,
		ProjectID: in.ProjectID,
		CheckIn:   now,
		Location:  in.Location,
		Type:      entity.AttendanceRegular,
		Notes:     in.Notes,
		Status:    entity.AttendancePending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.attendanceRepo.Create(a); err != nil {
		return nil, err
	}
	return a, nil
}

// CheckOut cierra la sesión abierta del usuario y fija el desglose de horas
// (regulares, extra y nocturnas). Sin sesión abierta es un error.
func (uc *UseCase) CheckOut(ctx context.Context, userID string, in dto.CheckOutRequest) (*entity.Attendance, error) {
	a, err := uc.attendanceRepo.FindOpenByUser(userID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNoOpenSession
	}

	now := time.Now()
	a.CheckOut = &now
	if in.Location != nil {
		a.Location = *in.Location
	}
	if in.Notes != "" {
		a.Notes = in.Notes
	}

	hours := scheduling.ComputeShiftHours(a.CheckIn, now)
	a.TotalHours = hours.Total
	a.RegularHours = hours.Regular
	a.OvertimeHours = hours.Overtime
	a.NightHours = hours.Night
	a.Type = shiftType(hours)
	a.UpdatedAt = now

	if err := uc.attendanceRepo.Update(a); err != nil {
		return nil, err
	}
	return a, nil
}

// Status devuelve la sesión abierta del usuario, si la hay.
func (uc *UseCase) Status(ctx context.Context, userID string) (*dto.AttendanceStatusResponse, error) {
	open, err := uc.attendanceRepo.FindOpenByUser(userID)
	if err != nil {
		return nil, err
	}
	return &dto.AttendanceStatusResponse{
		IsCheckedIn:    open != nil,
		CurrentSession: open,
	}, nil
}

// History lista los últimos registros del usuario.
func (uc *UseCase) History(ctx context.Context, userID string, limit int) ([]*entity.Attendance, error) {
	if limit <= 0 {
		limit = 30
	}
	return uc.attendanceRepo.ListByUser(userID, limit)
}

// checkGeofence valida la posición contra la geocerca del proyecto. Un
// proyecto sin sitio geolocalizado no restringe el check-in.
func (uc *UseCase) checkGeofence(projectID string, loc entity.AttendanceLocation) error {
	p, err := uc.projectRepo.GetByID(projectID)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("%w: proyecto %s", domain.ErrNotFound, projectID)
	}
	if p.Location.Latitude == 0 && p.Location.Longitude == 0 {
		return nil
	}
	ok, dist := scheduling.WithinRadius(loc.Latitude, loc.Longitude,
		p.Location.Latitude, p.Location.Longitude, p.Location.Radius)
	if !ok {
		return fmt.Errorf("%w: a %.0f m del sitio del evento %s", domain.ErrGeofenceViolation, dist, p.EventName)
	}
	return nil
}

// shiftType clasifica el turno según su desglose: las horas nocturnas mandan,
// luego las extra.
func shiftType(h scheduling.ShiftHours) string {
	switch {
	case h.Night > 0:
		return entity.AttendanceNight
	case h.Overtime > 0:
		return entity.AttendanceOvertime
	default:
		return entity.AttendanceRegular
	}
}
