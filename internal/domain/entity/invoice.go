package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura.
const (
	InvoiceDraft   = "Draft"
	InvoiceSent    = "Sent"
	InvoicePaid    = "Paid"
	InvoiceOverdue = "Overdue"
)

// InvoiceClient snapshot del cliente en la factura (no se sigue al cliente vivo).
type InvoiceClient struct {
	ID            string `json:"id,omitempty"`
	Name          string `json:"name"`
	Address       string `json:"address,omitempty"`
	TaxID         string `json:"taxId,omitempty"`
	ContactPerson string `json:"contactPerson,omitempty"`
}

// InvoiceLine línea de la factura.
type InvoiceLine struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Total       decimal.Decimal `json:"total"`
}

// Invoice factura emitida (incluye las de anticipo generadas al aceptar una
// cotización). Sobrevive al proyecto que la originó.
type Invoice struct {
	ID               string
	Number           string // INV-<año>-DEP-<seq> para anticipos
	Client           InvoiceClient
	Date             time.Time
	DueDate          time.Time
	Lines            []InvoiceLine
	TotalExclTax     decimal.Decimal
	TotalTax         decimal.Decimal
	StampDuty        decimal.Decimal
	TotalInclTax     decimal.Decimal
	Status           string
	RelatedProjectID string
	Notes            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
