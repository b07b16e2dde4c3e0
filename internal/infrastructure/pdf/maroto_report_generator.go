// Package pdf implementa la generación del reporte de inventario en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Reporte de Inventario │ Empresa + Fecha             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Producto | Cant | Res | Disp | Ubic | Est  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: totales y conteo de productos en bajo stock        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"

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

	"github.com/litethinking/gestion-api/internal/application/ports"
	"github.com/litethinking/gestion-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 40, Blue: 40}
)

// Verificar en tiempo de compilación que implementa el puerto.
var _ ports.ReportGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa ports.ReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// InventoryPDF genera el reporte y devuelve sus bytes.
func (g *MarotoReportGenerator) InventoryPDF(report *ports.InventoryReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range tableRows(report.Rows) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRow(report.Rows))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título (izq) y empresa + fecha de generación (der).
func headerRow(report *ports.InventoryReport) core.Row {
	fecha := report.GeneratedAt.Format("02/01/2006 15:04")
	return row.New(16).Add(
		col.New(7).Add(
			text.New("REPORTE DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New(report.CompanyName, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
			}),
			text.New("Generado: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 2, align.Left),
		h("Producto", 4, align.Left),
		h("Cant.", 1, align.Right),
		h("Res.", 1, align.Right),
		h("Disp.", 1, align.Right),
		h("Ubicación", 2, align.Left),
		h("Estado", 1, align.Center),
	)
}

// tableRows: una fila por inventario; el estado LOW/OUT se resalta en rojo.
func tableRows(rows []ports.InventoryReportRow) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		statusColor := colorGray
		if r.StockStatus != entity.StockStatusOK {
			statusColor = colorAlert
		}
		num := func(v int) core.Col {
			return col.New(1).Add(text.New(strconv.Itoa(v), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			}))
		}
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(r.ProductCode, props.Text{
				Size: 8, Align: align.Left, Top: 1, Left: 1,
			})),
			col.New(4).Add(text.New(r.ProductName, props.Text{
				Size: 8, Align: align.Left, Top: 1, Left: 1,
			})),
			num(r.Quantity),
			num(r.Reserved),
			num(r.Available),
			col.New(2).Add(text.New(nonEmpty(r.Location, "—"), props.Text{
				Size: 8, Align: align.Left, Top: 1, Left: 1,
			})),
			col.New(1).Add(text.New(r.StockStatus, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center,
				Top: 1, Color: statusColor,
			})),
		))
	}
	return result
}

// summaryRow: totales de unidades y conteo de alertas de stock.
func summaryRow(rows []ports.InventoryReportRow) core.Row {
	var totalUnits, lowCount, outCount int
	for _, r := range rows {
		totalUnits += r.Quantity
		switch r.StockStatus {
		case entity.StockStatusLow:
			lowCount++
		case entity.StockStatusOut:
			outCount++
		}
	}
	summary := fmt.Sprintf(
		"Productos: %d   |   Unidades totales: %d   |   En bajo stock: %d   |   Agotados: %d",
		len(rows), totalUnits, lowCount, outCount,
	)
	return row.New(10).Add(col.New(12).Add(
		text.New(summary, props.Text{
			Style: fontstyle.Bold, Size: 9, Top: 2, Color: colorPrimary,
		}),
	))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
