// Package pdf implementa el reporte PDF de citas del dashboard con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del negocio │ Rango del reporte             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Hora | Cliente | Servicio | Estado | Precio  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: citas confirmadas / canceladas / ingreso estimado  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
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

	"github.com/chatokay/chatokay-api/internal/application/report"
	"github.com/chatokay/chatokay-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 15, Green: 118, Blue: 110}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ report.AppointmentsPDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa report.AppointmentsPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateAppointmentsReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateAppointmentsReport(
	_ context.Context,
	business *entity.Business,
	appointments []*entity.Appointment,
	services map[string]*entity.Service,
	from, to time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de citas", true).
		WithAuthor(business.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(business, from, to))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, a := range appointments {
		m.AddRows(detailRow(a, services))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(appointments, services))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre y subdominio del negocio (izq) y rango del reporte (der).
func headerRow(business *entity.Business, from, to time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(business.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(business.Subdomain+".chatokay.com", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Reporte de citas", props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
			text.New(from.Format("02/01/2006")+" — "+to.Format("02/01/2006"), props.Text{
				Size: 9, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := func(size int, label string) core.Col {
		return col.New(size).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 8}))
	}
	return row.New(7).Add(
		header(2, "Fecha"),
		header(1, "Hora"),
		header(3, "Cliente"),
		header(3, "Servicio"),
		header(1, "Estado"),
		col.New(2).Add(text.New("Precio", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right})),
	)
}

func detailRow(a *entity.Appointment, services map[string]*entity.Service) core.Row {
	serviceName, price := "-", "-"
	if s, ok := services[a.ServiceID]; ok {
		serviceName = s.Name
		price = s.Price.StringFixed(2)
	}
	return row.New(6).Add(
		col.New(2).Add(text.New(a.StartsAt.Format("02/01/2006"), props.Text{Size: 8})),
		col.New(1).Add(text.New(a.StartsAt.Format("15:04"), props.Text{Size: 8})),
		col.New(3).Add(text.New(a.CustomerName, props.Text{Size: 8})),
		col.New(3).Add(text.New(serviceName, props.Text{Size: 8})),
		col.New(1).Add(text.New(statusLabel(a.Status), props.Text{Size: 8})),
		col.New(2).Add(text.New(price, props.Text{Size: 8, Align: align.Right})),
	)
}

// totalsRow: conteos por estado e ingreso estimado (citas no canceladas).
func totalsRow(appointments []*entity.Appointment, services map[string]*entity.Service) core.Row {
	var confirmed, cancelled int
	total := decimal.Zero
	for _, a := range appointments {
		if a.Status == entity.AppointmentCancelled {
			cancelled++
			continue
		}
		confirmed++
		if s, ok := services[a.ServiceID]; ok {
			total = total.Add(s.Price)
		}
	}
	resumen := fmt.Sprintf("Citas: %d  ·  Canceladas: %d", confirmed, cancelled)
	return row.New(10).Add(
		col.New(7).Add(text.New(resumen, props.Text{Size: 9, Top: 2, Color: colorGray})),
		col.New(5).Add(text.New("Ingreso estimado: "+total.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2, Color: colorPrimary,
		})),
	)
}

func statusLabel(status string) string {
	switch status {
	case entity.AppointmentConfirmed:
		return "Conf."
	case entity.AppointmentCancelled:
		return "Canc."
	case entity.AppointmentCompleted:
		return "Compl."
	default:
		return status
	}
}
