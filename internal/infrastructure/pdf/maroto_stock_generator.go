// Package pdf implementa la generación del reporte imprimible de inventario
// usando Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: HemoStock  │  Fecha de generación + último neteo   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: unidades totales / filas del snapshot / alertas   │
//	│  TABLA: Tipo | Componente | Ubicación | Unidades            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  AGREGADOS: unidades por grupo y por ubicación              │
//	│  STOCK BAJO: grupos por debajo del umbral configurado       │
//	│  FOOTER: leyenda del neteo                                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
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

	"github.com/hemovital/hemostock-api/internal/application/report"
	"github.com/hemovital/hemostock-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 136, Green: 19, Blue: 30}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 190, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ report.StockPDFGenerator = (*MarotoStockGenerator)(nil)

// MarotoStockGenerator implementa report.StockPDFGenerator usando Maroto v2.
type MarotoStockGenerator struct{}

// NewMarotoStockGenerator construye el generador.
func NewMarotoStockGenerator() *MarotoStockGenerator { return &MarotoStockGenerator{} }

// GenerateStockReport genera el PDF y devuelve sus bytes.
func (g *MarotoStockGenerator) GenerateStockReport(_ context.Context, data report.StockReportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Inventario HemoStock", true).
		WithAuthor("HemoStock", true).
		Build()

	m := maroto.New(cfg)

	// Header principal
	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Tabla del snapshot
	m.AddRows(tableHeaderRow())
	if len(data.Rows) == 0 {
		m.AddRows(emptySnapshotRow())
	}
	for _, r := range inventoryRows(data.Rows) {
		m.AddRows(r)
	}

	// Agregados y alertas
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range aggregateRows(data) {
		m.AddRows(r)
	}
	for _, r := range lowStockRows(data) {
		m.AddRows(r)
	}

	// Footer
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del sistema (izq) y fechas de generación y neteo (der).
func headerRow(data report.StockReportData) core.Row {
	lastRun := "sin corridas registradas"
	if data.LastRun != nil {
		lastRun = data.LastRun.Format("2006-01-02 15:04 MST")
	}

	return row.New(18).Add(
		col.New(7).Add(
			text.New("HemoStock", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Inventario neto del banco de sangre", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("REPORTE DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+data.GeneratedAt.Format("2006-01-02 15:04 MST"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Último neteo: "+lastRun, props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// summaryRow: tres indicadores centrados.
func summaryRow(data report.StockReportData) core.Row {
	stat := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{
				Size: 7, Color: colorGray, Top: 2, Align: align.Center,
			}),
			text.New(value, props.Text{
				Style: fontstyle.Bold, Size: 12, Top: 6,
				Align: align.Center, Color: colorPrimary,
			}),
		)
	}
	return row.New(14).Add(
		stat("UNIDADES DISPONIBLES", strconv.Itoa(data.TotalUnits)),
		stat("FILAS DEL SNAPSHOT", strconv.Itoa(len(data.Rows))),
		stat(fmt.Sprintf("GRUPOS BAJO UMBRAL %d", data.LowStockCutoff), strconv.Itoa(len(data.LowStock))),
	)
}

// tableHeaderRow: cabecera de la tabla del snapshot.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Tipo", 2, align.Center),
		h("Componente", 3, align.Left),
		h("Ubicación", 4, align.Left),
		h("Unidades", 3, align.Right),
	)
}

// inventoryRows: una fila por celda del snapshot, en el orden canónico en que
// llegan del repositorio.
func inventoryRows(rows []*entity.InventoryRow) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(
				string(r.BloodType),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(3).Add(text.New(
				string(r.Component),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				r.Location,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				strconv.Itoa(r.UnitsAvailable),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

func emptySnapshotRow() core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New("Snapshot vacío: aún no se ha cargado ni recalculado inventario.", props.Text{
			Size: 9, Align: align.Center, Color: colorGray, Top: 3,
		}),
	))
}

// aggregateRows: unidades por grupo (izq) y por ubicación (der), lado a lado.
func aggregateRows(data report.StockReportData) []core.Row {
	rows := []core.Row{
		row.New(7).Add(
			col.New(6).Add(text.New("UNIDADES POR GRUPO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
			})),
			col.New(6).Add(text.New("UNIDADES POR UBICACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2, Left: 2,
			})),
		),
	}

	n := len(data.ByTypeComp)
	if len(data.ByLocation) > n {
		n = len(data.ByLocation)
	}
	for i := 0; i < n; i++ {
		left := col.New(6)
		if i < len(data.ByTypeComp) {
			g := data.ByTypeComp[i]
			left = col.New(6).Add(
				text.New(fmt.Sprintf("%s · %s", g.BloodType, g.Component), props.Text{
					Size: 8, Top: 1,
				}),
				text.New(strconv.Itoa(g.Units), props.Text{
					Size: 8, Align: align.Right, Top: 1, Right: 8,
				}),
			)
		}
		right := col.New(6)
		if i < len(data.ByLocation) {
			l := data.ByLocation[i]
			right = col.New(6).Add(
				text.New(l.Location, props.Text{Size: 8, Top: 1, Left: 2}),
				text.New(strconv.Itoa(l.Units), props.Text{
					Size: 8, Align: align.Right, Top: 1, Right: 1,
				}),
			)
		}
		rows = append(rows, row.New(5).Add(left, right))
	}
	return rows
}

// lowStockRows: grupos sanguíneos bajo el umbral, en rojo.
func lowStockRows(data report.StockReportData) []core.Row {
	rows := []core.Row{
		row.New(3),
		row.New(7).Add(col.New(12).Add(
			text.New(fmt.Sprintf("STOCK BAJO (umbral %d unidades)", data.LowStockCutoff), props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorAlert, Top: 2,
			}),
		)),
	}

	if len(data.LowStock) == 0 {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Ningún grupo sanguíneo por debajo del umbral.", props.Text{
				Size: 8, Color: colorGray, Top: 1,
			}),
		)))
		return rows
	}

	for _, a := range data.LowStock {
		rows = append(rows, row.New(5).Add(
			col.New(2).Add(text.New(string(a.BloodType), props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorAlert, Top: 1, Left: 1,
			})),
			col.New(10).Add(text.New(
				fmt.Sprintf("%d unidades disponibles en todo el inventario", a.TotalUnits),
				props.Text{Size: 8, Top: 1},
			)),
		))
	}
	return rows
}

func footerRow() core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(
			"Reporte generado por HemoStock a partir del último neteo: donaciones aptas "+
				"según control de calidad y vigencia, menos demanda hospitalaria atendida. "+
				"Las cifras corresponden al momento de la última corrida.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}
