// Package pdf implementa la generación del comprobante imprimible de un
// movimiento de inventario.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Comprobante + tipo  │  N° Referencia + Fecha       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  BODEGAS: origen / destino                                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | Stockard origen | Stockard destino│
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: notas + leyenda                                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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

	appinventory "github.com/jhoicas/Bodegas-api/internal/application/inventory"
	"github.com/jhoicas/Bodegas-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReceiptGenerator implementa inventory.ReceiptPDFGenerator usando Maroto v2.
type MarotoReceiptGenerator struct{}

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator { return &MarotoReceiptGenerator{} }

// GenerateReceiptPDF genera el PDF del comprobante y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceiptPDF(
	_ context.Context,
	movement *entity.StockMovement,
	fromWarehouse, toWarehouse *entity.Warehouse,
	lines []appinventory.ReceiptLine,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de Movimiento "+movement.ReferenceNumber, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(movement))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(warehousesRow(fromWarehouse, toWarehouse))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range footerRows(movement) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// movementTypeLabel etiqueta legible del tipo de movimiento.
func movementTypeLabel(t entity.MovementType) string {
	switch t {
	case entity.MovementTypeIn:
		return "ENTRADA"
	case entity.MovementTypeOut:
		return "SALIDA"
	case entity.MovementTypeTransfer:
		return "TRASLADO"
	}
	return string(t)
}

// headerRow: título + tipo (izq) y referencia + fecha (der).
func headerRow(movement *entity.StockMovement) core.Row {
	fecha := movement.CreatedAt.Format("02/01/2006 15:04")

	return row.New(18).Add(
		col.New(7).Add(
			text.New("COMPROBANTE DE MOVIMIENTO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(movementTypeLabel(movement.Type), props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(movement.ReferenceNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 3,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 11, Color: colorGray,
			}),
		),
	)
}

// warehousesRow: bodega de origen y de destino (— cuando el tipo no la usa).
func warehousesRow(fromWarehouse, toWarehouse *entity.Warehouse) core.Row {
	return row.New(12).Add(
		col.New(6).Add(
			text.New("BODEGA DE ORIGEN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(warehouseName(fromWarehouse), props.Text{Size: 9, Top: 7}),
		),
		col.New(6).Add(
			text.New("BODEGA DE DESTINO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(warehouseName(toWarehouse), props.Text{Size: 9, Top: 7}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 5, align.Left),
		h("Stockard origen", 3, align.Left),
		h("Stockard destino", 3, align.Left),
	)
}

// tableLineRows: una fila por línea del movimiento.
func tableLineRows(lines []appinventory.ReceiptLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", l.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				l.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				nonEmpty(l.FromStockard, "—"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				nonEmpty(l.ToStockard, "—"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
		))
	}
	return result
}

// footerRows: notas del movimiento + leyenda.
func footerRows(movement *entity.StockMovement) []core.Row {
	rows := []core.Row{}
	if movement.Notes != "" {
		rows = append(rows,
			row.New(6).Add(col.New(12).Add(
				text.New("NOTAS", props.Text{
					Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
				}),
			)),
			row.New(8).Add(col.New(12).Add(
				text.New(movement.Notes, props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
			)),
		)
	}
	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New(
			"Este comprobante es el registro de auditoría del movimiento de inventario. "+
				"Los movimientos confirmados son inmutables.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	)))
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func warehouseName(w *entity.Warehouse) string {
	if w == nil {
		return "—"
	}
	return w.Name
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
