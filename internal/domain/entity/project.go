package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados macro del ciclo de vida de un proyecto (alquiler de material).
const (
	StatusDraft     = "Draft"
	StatusQuote     = "Quote"
	StatusConfirmed = "Confirmed"
	StatusPickup    = "Pickup"
	StatusReturn    = "Return"
	StatusDone      = "Done"
)

// Estados de aprobación (validación administrativa).
const (
	ValidationDraft     = "Draft"
	ValidationPending   = "Pending"
	ValidationValidated = "Validated"
	ValidationRejected  = "Rejected"
)

// Estados de logística (movimiento físico del material).
const (
	LogisticsPrep         = "Prep"
	LogisticsReadyForExit = "ReadyForExit"
	LogisticsOnSite       = "OnSite"
	LogisticsReturning    = "Returning"
	LogisticsReturned     = "Returned"
)

// Estados de pago.
const (
	PaymentUnpaid        = "Unpaid"
	PaymentDepositPaid   = "Deposit Paid"
	PaymentPartiallyPaid = "Partially Paid"
	PaymentFullyPaid     = "Fully Paid"
	PaymentOverdue       = "Overdue"
)

// Origen de una línea del proyecto.
const (
	SourceInternal      = "internal"
	SourceSubcontracted = "subcontracted"
)

// GeoPoint ubicación del sitio del evento con radio de geocerca en metros.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Radius    float64 `json:"radius"` // metros; 200 por defecto al crear
}

// DateRange ventana de reserva del proyecto. Start es la recogida, End el retorno.
type DateRange struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	TotalDays int       `json:"totalDays"`
}

// Overlaps prueba de solapamiento de intervalos cerrados: start <= otherEnd && end >= otherStart.
func (d DateRange) Overlaps(start, end time.Time) bool {
	return !d.Start.After(end) && !d.End.Before(start)
}

// ProjectItem línea de material o servicio del proyecto.
type ProjectItem struct {
	InventoryItemID     string          `json:"inventoryItemId,omitempty"`
	SubcontractedItemID string          `json:"subcontractedItemId,omitempty"`
	Source              string          `json:"source"` // internal | subcontracted
	Name                string          `json:"name"`
	Brand               string          `json:"brand,omitempty"`
	Model               string          `json:"model,omitempty"`
	Type                string          `json:"type"` // Rent | Sale | Service
	Quantity            int             `json:"quantity"`
	Days                int             `json:"days"`
	Price               decimal.Decimal `json:"price"`     // precio unitario de venta
	CostPrice           decimal.Decimal `json:"costPrice"` // costo unitario para margen
	Discount            decimal.Decimal `json:"discount"`  // porcentaje
}

// Transport datos del transporte. DriverID y VehicleID son las referencias fuertes
// usadas por el cálculo de disponibilidad; nombre y placa quedan como campos de display.
type Transport struct {
	DriverID      string    `json:"driverId,omitempty"`
	DriverName    string    `json:"driverName,omitempty"`
	VehicleID     string    `json:"vehicleId,omitempty"`
	VehiclePlate  string    `json:"vehiclePlate,omitempty"`
	VehicleModel  string    `json:"vehicleModel,omitempty"`
	TransportDate time.Time `json:"transportDate,omitempty"`
}

// Permissions control de bloqueo del proyecto. Con Locked=true solo
// Founder/Manager/Storekeeper pueden mutarlo.
type Permissions struct {
	Locked     bool   `json:"locked"`
	UnlockedBy string `json:"unlockedBy,omitempty"`
}

// ReturnLine línea del checklist de retorno (faltante o roto).
type ReturnLine struct {
	InventoryItemID string `json:"inventoryItemId"`
	Name            string `json:"name"`
	Quantity        int    `json:"quantity"`
}

// ReturnReport checklist de retorno. Se escribe una sola vez al finalizar
// y es inmutable después.
type ReturnReport struct {
	MissingItems []ReturnLine `json:"missingItems"`
	BrokenItems  []ReturnLine `json:"brokenItems"`
	CleanReturn  bool         `json:"cleanReturn"`
}

// Financials resumen financiero cacheado del proyecto.
type Financials struct {
	TotalExclTax decimal.Decimal `json:"totalExclTax"`
	TotalTax     decimal.Decimal `json:"totalTax"`
	StampDuty    decimal.Decimal `json:"stampDuty"` // timbre fiscal (1 DT)
	TotalInclTax decimal.Decimal `json:"totalInclTax"`
	TotalCost    decimal.Decimal `json:"totalCost"`
	Margin       decimal.Decimal `json:"margin"`
}

// Project agregado central: un compromiso de alquiler (evento) desde la cotización
// hasta el retorno. Posee sus líneas, transporte y reporte de retorno; las
// reservas y facturas derivadas viven en sus propios registros.
type Project struct {
	ID            string
	CreatedBy     string
	CreatedByName string

	AssignedUserIDs []string
	ClientID        string
	ClientName      string

	EventName   string
	SiteName    string
	SiteAddress string
	Location    GeoPoint

	Dates DateRange

	Status           string // Draft, Quote, Confirmed, Pickup, Return, Done
	ValidationStatus string // Draft, Pending, Validated, Rejected
	LogisticsStatus  string // Prep, ReadyForExit, OnSite, Returning, Returned
	PaymentStatus    string
	IsValidated      bool

	Permissions Permissions

	// Invariante: como máximo uno de los dos tokens está emitido a la vez
	// (el proyecto espera escaneo de salida o de retorno, nunca ambos).
	ExitQR   QRToken
	ReturnQR QRToken

	ExitScannedAt   *time.Time
	ExitScannedBy   string
	ReturnScannedAt *time.Time
	ReturnScannedBy string

	ReturnReport *ReturnReport

	Items      []ProjectItem
	Financials Financials
	Transport  Transport

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Team devuelve los IDs del equipo (creador + asignados) sin duplicados,
// preservando el orden de aparición. Es la base del abono/castigo de puntos.
func (p *Project) Team() []string {
	seen := make(map[string]struct{}, len(p.AssignedUserIDs)+1)
	team := make([]string, 0, len(p.AssignedUserIDs)+1)
	for _, id := range append([]string{p.CreatedBy}, p.AssignedUserIDs...) {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		team = append(team, id)
	}
	return team
}
