package dto

import "github.com/brightstage/rentalops-api/internal/domain/entity"

// CheckInRequest registro de entrada (con geocerca si hay proyecto).
type CheckInRequest struct {
	ProjectID string                    `json:"project,omitempty"`
	Location  entity.AttendanceLocation `json:"location"`
	Notes     string                    `json:"notes,omitempty"`
}

// CheckOutRequest registro de salida.
type CheckOutRequest struct {
	Location *entity.AttendanceLocation `json:"location,omitempty"`
	Notes    string                     `json:"notes,omitempty"`
}

// AttendanceStatusResponse estado actual de asistencia de un usuario.
type AttendanceStatusResponse struct {
	IsCheckedIn    bool               `json:"isCheckedIn"`
	CurrentSession *entity.Attendance `json:"currentSession,omitempty"`
}
