package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/brightstage/rentalops-api/internal/domain/entity"
)

// CreateProjectRequest alta de un proyecto (queda en Draft).
type CreateProjectRequest struct {
	EventName       string               `json:"eventName"`
	SiteName        string               `json:"siteName,omitempty"`
	SiteAddress     string               `json:"siteAddress,omitempty"`
	Location        *entity.GeoPoint     `json:"location,omitempty"`
	ClientID        string               `json:"clientId,omitempty"`
	StartDate       string               `json:"startDate"`
	EndDate         string               `json:"endDate"`
	Items           []ProjectItemRequest `json:"items,omitempty"`
	AssignedUserIDs []string             `json:"assignedUserIds,omitempty"`
	Transport       *entity.Transport    `json:"transport,omitempty"`
}

// ProjectItemRequest línea de material en alta/edición de proyecto.
type ProjectItemRequest struct {
	InventoryItemID     string          `json:"inventoryItemId,omitempty"`
	SubcontractedItemID string          `json:"subcontractedItemId,omitempty"`
	Source              string          `json:"source,omitempty"`
	Name                string          `json:"name"`
	Type                string          `json:"type,omitempty"`
	Quantity            int             `json:"quantity"`
	Days                int             `json:"days,omitempty"`
	Price               decimal.Decimal `json:"price"`
	CostPrice           decimal.Decimal `json:"costPrice"`
	Discount            decimal.Decimal `json:"discount"`
}

// UpdateProjectRequest edición parcial de un proyecto.
type UpdateProjectRequest struct {
	EventName       *string              `json:"eventName,omitempty"`
	SiteName        *string              `json:"siteName,omitempty"`
	SiteAddress     *string              `json:"siteAddress,omitempty"`
	Location        *entity.GeoPoint     `json:"location,omitempty"`
	StartDate       *string              `json:"startDate,omitempty"`
	EndDate         *string              `json:"endDate,omitempty"`
	Items           []ProjectItemRequest `json:"items,omitempty"`
	AssignedUserIDs []string             `json:"assignedUserIds,omitempty"`
	Transport       *entity.Transport    `json:"transport,omitempty"`
	Status          *string              `json:"status,omitempty"`
}

// ScanRequest cuerpo de los endpoints de escaneo (salida y retorno).
type ScanRequest struct {
	QRCode string `json:"qrCode"`
}

// QRResponse respuesta de la emisión de un QR: token más su render PNG en base64.
type QRResponse struct {
	QRCode    string    `json:"qrCode"`
	PNGBase64 string    `json:"pngBase64,omitempty"`
	IssuedAt  time.Time `json:"issuedAt"`
}

// ReturnLineRequest línea del checklist de retorno.
type ReturnLineRequest struct {
	InventoryItemID string `json:"inventoryItemId"`
	Name            string `json:"name,omitempty"`
	Quantity        int    `json:"quantity"`
}

// FinalizeReturnRequest checklist de retorno para cerrar el proyecto.
type FinalizeReturnRequest struct {
	MissingItems []ReturnLineRequest `json:"missingItems"`
	BrokenItems  []ReturnLineRequest `json:"brokenItems"`
	CleanReturn  bool                `json:"cleanReturn"`
}

// PublicQuoteResponse datos saneados de una cotización para la vista pública.
type PublicQuoteResponse struct {
	ID         string               `json:"id"`
	EventName  string               `json:"eventName"`
	ClientName string               `json:"clientName"`
	Dates      entity.DateRange     `json:"dates"`
	Items      []entity.ProjectItem `json:"items"`
	Financials entity.Financials    `json:"financials"`
	Status     string               `json:"status"`
	CreatedAt  time.Time            `json:"createdAt"`
}

// AcceptQuoteResponse resultado de aceptar una cotización.
type AcceptQuoteResponse struct {
	Message   string `json:"message"`
	ProjectID string `json:"projectId"`
	InvoiceID string `json:"invoiceId"`
}
