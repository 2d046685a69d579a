// Package pdf genera los documentos imprimibles del negocio con Maroto v2:
// la factura de anticipo que acompaña la aceptación de una cotización y el
// manifiesto de salida que viaja con el material a bodega.
//
// Layout de la factura (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + Matrícula fiscal  │  N° Factura + Fecha  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + MF + contacto                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | P.Unit | Total                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Base / IVA / Timbre / TOTAL A PAGAR               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR del proyecto + condiciones de pago              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/brightstage/rentalops-api/internal/application/documents"
	"github.com/brightstage/rentalops-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 180, Green: 83, Blue: 9}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// CompanyInfo datos del emisor que encabezan todos los documentos.
type CompanyInfo struct {
	Name    string
	TaxID   string
	Address string
	Phone   string
	Email   string
}

// MarotoPDFGenerator implementa documents.Generator usando Maroto v2.
type MarotoPDFGenerator struct {
	company CompanyInfo
}

var _ documents.Generator = (*MarotoPDFGenerator)(nil)

// NewMarotoPDFGenerator construye el generador con los datos del emisor.
func NewMarotoPDFGenerator(company CompanyInfo) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{company: company}
}

// InvoicePDF genera el PDF de una factura (anticipos incluidos) y devuelve sus bytes.
func (g *MarotoPDFGenerator) InvoicePDF(_ context.Context, invoice *entity.Invoice) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura "+invoice.Number, true).
		WithAuthor(g.company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.invoiceHeaderRow(invoice))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.issuerRow())
	m.AddRows(clientRow(invoice.Client))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(invoiceTableHeaderRow())
	for _, r := range invoiceLineRows(invoice.Lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(invoiceTotalsRow(invoice))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range invoiceFooterRows(invoice) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar factura: %w", err)
	}
	return doc.GetBytes(), nil
}

// ExitManifestPDF genera el manifiesto de salida del proyecto: el listado del
// material que abandona la bodega, con el QR de salida para el escaneo.
func (g *MarotoPDFGenerator) ExitManifestPDF(_ context.Context, p *entity.Project) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Manifiesto de salida - "+p.EventName, true).
		WithAuthor(g.company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.manifestHeaderRow(p))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(manifestSiteRow(p))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(manifestTableHeaderRow())
	for _, r := range manifestItemRows(p.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	for _, r := range manifestFooterRows(p) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar manifiesto: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones de la factura ───────────────────────────────────────────────────

func (g *MarotoPDFGenerator) invoiceHeaderRow(invoice *entity.Invoice) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("MF: "+g.company.TaxID, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FACTURA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(invoice.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+invoice.Date.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func (g *MarotoPDFGenerator) issuerRow() core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("DATOS DEL EMISOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Dirección: %s   |   Tel: %s   |   Email: %s",
				nonEmpty(g.company.Address, "—"),
				nonEmpty(g.company.Phone, "—"),
				nonEmpty(g.company.Email, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func clientRow(client entity.InvoiceClient) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(client.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("MF: %s   |   Contacto: %s   |   Dirección: %s",
				nonEmpty(client.TaxID, "—"),
				nonEmpty(client.ContactPerson, "—"),
				nonEmpty(client.Address, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func invoiceTableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Descripción", 6, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Total", 3, align.Right),
	)
}

func invoiceLineRows(lines []entity.InvoiceLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		desc := l.Name
		if l.Description != "" {
			desc += " — " + l.Description
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", l.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				desc,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				money(l.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				money(l.Total),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

func invoiceTotalsRow(invoice *entity.Invoice) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(30).Add(
		col.New(3),
		col.New(3).Add(
			label("Base imponible:"),
			label("IVA:"),
			label("Timbre fiscal:"),
			grandLabel("TOTAL A PAGAR:"),
		),
		col.New(3).Add(
			value(money(invoice.TotalExclTax)),
			value(money(invoice.TotalTax)),
			value(money(invoice.StampDuty)),
			grandValue(money(invoice.TotalInclTax)),
		),
		col.New(3),
	)
}

func invoiceFooterRows(invoice *entity.Invoice) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("CONDICIONES DE PAGO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
		row.New(6).Add(col.New(12).Add(
			text.New("Vencimiento: "+invoice.DueDate.Format("02/01/2006"), props.Text{
				Size: 8, Top: 1, Color: colorGray,
			}),
		)),
	}
	if invoice.Notes != "" {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New(invoice.Notes, props.Text{Size: 7, Color: colorGray, Top: 2}),
		)))
	}
	return rows
}

// ── Secciones del manifiesto ──────────────────────────────────────────────────

func (g *MarotoPDFGenerator) manifestHeaderRow(p *entity.Project) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("MANIFIESTO DE SALIDA DE MATERIAL", props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 9,
			}),
		),
		col.New(5).Add(
			text.New(p.EventName, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 2,
			}),
			text.New(fmt.Sprintf("Del %s al %s",
				p.Dates.Start.Format("02/01/2006"), p.Dates.End.Format("02/01/2006"),
			), props.Text{Size: 8, Align: align.Right, Top: 9, Color: colorGray}),
		),
	)
}

func manifestSiteRow(p *entity.Project) core.Row {
	driver := nonEmpty(p.Transport.DriverName, "—")
	vehicle := nonEmpty(p.Transport.VehiclePlate, "—")
	return row.New(14).Add(
		col.New(12).Add(
			text.New("SITIO DEL EVENTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s — %s", nonEmpty(p.SiteName, "—"), nonEmpty(p.SiteAddress, "—")), props.Text{
				Size: 9, Top: 6,
			}),
			text.New(fmt.Sprintf("Conductor: %s   |   Vehículo: %s", driver, vehicle), props.Text{
				Size: 8, Top: 11, Color: colorGray,
			}),
		),
	)
}

func manifestTableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Material", 6, align.Left),
		h("Marca/Modelo", 3, align.Left),
		h("Origen", 2, align.Center),
	)
}

func manifestItemRows(items []entity.ProjectItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		origen := "Bodega"
		if it.Source == entity.SourceSubcontracted {
			origen = "Subcontratado"
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", it.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				it.Name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				nonEmpty(joinNonEmpty(it.Brand, it.Model), "—"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				origen,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
		))
	}
	return result
}

// manifestFooterRows: QR de salida (si está emitido) + firmas.
func manifestFooterRows(p *entity.Project) []core.Row {
	var rows []core.Row
	if p.ExitQR.Active() {
		rows = append(rows, row.New(50).Add(
			col.New(4).Add(code.NewQr(p.ExitQR.Value(), props.Rect{
				Percent: 95,
				Center:  true,
			})),
			col.New(8).Add(
				text.New("Escanear este código en bodega\npara registrar la salida del material.", props.Text{
					Size: 8, Top: 4, Left: 3, Color: colorGray,
				}),
				text.New("El material no sale sin escaneo.", props.Text{
					Style: fontstyle.Bold, Size: 10, Top: 24, Left: 3, Color: colorPrimary,
				}),
			),
		))
	}
	rows = append(rows, row.New(20).Add(
		col.New(6).Add(
			text.New("Entrega (bodega):", props.Text{Size: 8, Top: 4}),
			text.New("Firma: ______________________", props.Text{Size: 8, Top: 14, Color: colorGray}),
		),
		col.New(6).Add(
			text.New("Recibe (transporte):", props.Text{Size: 8, Top: 4}),
			text.New("Firma: ______________________", props.Text{Size: 8, Top: 14, Color: colorGray}),
		),
	))
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " " + b
	}
}

// money formatea un monto en dinares con tres decimales (millimes).
func money(d decimal.Decimal) string {
	return d.StringFixed(3) + " DT"
}
