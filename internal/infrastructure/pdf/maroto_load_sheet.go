// Package pdf implementa la generación de la hoja de carga del conductor:
// su inventario derivado (asignado/vendido/restante) con marcas de alerta,
// para imprimir antes de salir a ruta.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Hoja de carga  │  Conductor + Teléfono + Fecha     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Asignado | Vendido | Restante | ⚠  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: unidades restantes / productos en alerta          │
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

	"github.com/jhoicas/rutastock-api/internal/application/reports"
	"github.com/jhoicas/rutastock-api/internal/domain/entity"
	domledger "github.com/jhoicas/rutastock-api/internal/domain/ledger"
)

var _ reports.LoadSheetGenerator = (*MarotoLoadSheetGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary  = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray     = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWarning  = &props.Color{Red: 180, Green: 120, Blue: 0}
	colorCritical = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoLoadSheetGenerator implementa reports.LoadSheetGenerator usando Maroto v2.
type MarotoLoadSheetGenerator struct{}

// NewMarotoLoadSheetGenerator construye el generador.
func NewMarotoLoadSheetGenerator() *MarotoLoadSheetGenerator { return &MarotoLoadSheetGenerator{} }

// GenerateLoadSheet genera el PDF y devuelve sus bytes.
func (g *MarotoLoadSheetGenerator) GenerateLoadSheet(
	_ context.Context,
	driver *entity.Driver,
	lines []domledger.DriverInventoryLine,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Hoja de carga", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(driver, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, l := range lines {
		m.AddRows(detailRow(l))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(lines))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar hoja de carga: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y conductor + fecha (der).
func headerRow(driver *entity.Driver, generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(6).Add(
			text.New("HOJA DE CARGA", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Inventario del conductor", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(6).Add(
			text.New(driver.Name, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
			text.New(driver.Phone, props.Text{
				Size: 9, Align: align.Right, Top: 7, Color: colorGray,
			}),
			text.New(generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 9, Align: align.Right, Top: 11, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := func(label string, size int, al align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: al, Color: colorPrimary,
		}))
	}
	return row.New(7).Add(
		header("SKU", 2, align.Left),
		header("Producto", 4, align.Left),
		header("Asignado", 2, align.Right),
		header("Vendido", 2, align.Right),
		header("Restante", 2, align.Right),
	)
}

func detailRow(l domledger.DriverInventoryLine) core.Row {
	remainingColor := (*props.Color)(nil)
	switch l.AlertLevel {
	case domledger.AlertWarning:
		remainingColor = colorWarning
	case domledger.AlertCritical:
		remainingColor = colorCritical
	}
	cell := func(value string, size int, al align.Type, color *props.Color) core.Col {
		p := props.Text{Size: 9, Align: al}
		if color != nil {
			p.Color = color
			p.Style = fontstyle.Bold
		}
		return col.New(size).Add(text.New(value, p))
	}
	return row.New(6).Add(
		cell(l.SKU, 2, align.Left, nil),
		cell(l.ProductName, 4, align.Left, nil),
		cell(l.Assigned.String(), 2, align.Right, nil),
		cell(l.Sold.String(), 2, align.Right, nil),
		cell(l.Remaining.String(), 2, align.Right, remainingColor),
	)
}

func totalsRow(lines []domledger.DriverInventoryLine) core.Row {
	remaining := decimal.Zero
	alerts := 0
	for _, l := range lines {
		remaining = remaining.Add(l.Remaining)
		if l.AlertLevel != domledger.AlertNormal {
			alerts++
		}
	}
	return row.New(10).Add(
		col.New(8).Add(
			text.New(fmt.Sprintf("Productos en alerta: %d", alerts), props.Text{
				Size: 9, Top: 2, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New(fmt.Sprintf("Unidades restantes: %s", remaining.String()), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2,
			}),
		),
	)
}
