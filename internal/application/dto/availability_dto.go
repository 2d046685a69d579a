package dto

import "time"

// AvailabilityRequest consulta de disponibilidad para una ventana de fechas.
// Las fechas se aceptan en RFC 3339 o YYYY-MM-DD.
type AvailabilityRequest struct {
	StartDate        string `json:"startDate"`
	EndDate          string `json:"endDate"`
	SiteAddress      string `json:"siteAddress"`
	ExcludeProjectID string `json:"excludeProjectId,omitempty"`
}

// ItemAvailability disponibilidad de un ítem del inventario en la ventana pedida.
type ItemAvailability struct {
	Available int `json:"available"`
	Total     int `json:"total"`
	Reserved  int `json:"reserved"`
}

// RestWarning aviso (no bloqueo) de descanso insuficiente de un usuario.
type RestWarning struct {
	UserID   string    `json:"userId"`
	UserName string    `json:"userName,omitempty"`
	Reason   string    `json:"reason"`
	CheckOut time.Time `json:"checkOut"`
}

// AvailabilityResponse resultado del cálculo de disponibilidad.
type AvailabilityResponse struct {
	ItemAvailability    map[string]ItemAvailability `json:"itemAvailability"`
	UnavailableDrivers  []string                    `json:"unavailableDrivers"`
	UnavailableVehicles []string                    `json:"unavailableVehicles"`
	UnavailableUsers    []string                    `json:"unavailableUsers"`
	RestWarnings        []RestWarning               `json:"restWarnings"`
}
