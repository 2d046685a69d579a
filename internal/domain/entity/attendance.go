package entity

import "time"

// Tipos y estados de asistencia.
const (
	AttendanceRegular  = "Regular"
	AttendanceOvertime = "Overtime"
	AttendanceNight    = "Night"
	AttendanceTravel   = "Travel"

	AttendancePending  = "Pending"
	AttendanceApproved = "Approved"
	AttendanceRejected = "Rejected"
)

// AttendanceLocation ubicación reportada en el check-in/check-out.
type AttendanceLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}

// Attendance par check-in/check-out de un usuario. A lo sumo hay un registro
// abierto (sin CheckOut) por usuario. Las horas derivadas se calculan una sola
// vez en el check-out y son inmutables después.
type Attendance struct {
	ID        string
	UserID    string
	UserName  string // cacheado para reportes
	ProjectID string // opcional
	CheckIn   time.Time
	CheckOut  *time.Time
	Location  AttendanceLocation
	Type      string
	Notes     string
	Status    string

	// Calculadas al cierre
	RegularHours  float64
	OvertimeHours float64
	NightHours    float64 // 21h-06h
	TotalHours    float64

	CreatedAt time.Time
	UpdatedAt time.Time
}
