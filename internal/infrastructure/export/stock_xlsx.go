// Package export genera el reporte de existencias en formato XLSX.
package export

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Produccion-api/internal/application/report"
)

var _ report.StockWorkbookRenderer = (*StockWorkbook)(nil)

const stockSheet = "Existencias"

var stockHeaders = []string{"Producto", "Categoría", "Unidad", "Stock", "Stock mínimo", "Costo promedio", "Valor"}

// StockWorkbook implementa report.StockWorkbookRenderer con excelize.
type StockWorkbook struct{}

func NewStockWorkbook() *StockWorkbook { return &StockWorkbook{} }

// RenderStockWorkbook escribe una fila por producto y una fila final con el valor total.
// Las filas con stock bajo se resaltan.
func (StockWorkbook) RenderStockWorkbook(_ context.Context, companyName string, lines []report.StockLine) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", stockSheet); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}

	boldStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "#000000", Style: 1},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo cabecera: %w", err)
	}
	lowStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#FCE4D6"}},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo stock bajo: %w", err)
	}

	// Fila 1: título; fila 3: cabecera; datos desde la fila 4.
	title := "Reporte de existencias"
	if companyName != "" {
		title += " - " + companyName
	}
	_ = f.SetCellValue(stockSheet, "A1", title)

	for i, h := range stockHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		_ = f.SetCellValue(stockSheet, cell, h)
		_ = f.SetCellStyle(stockSheet, cell, cell, boldStyle)
	}

	row := 4
	var total float64
	for _, l := range lines {
		_ = f.SetCellValue(stockSheet, fmt.Sprintf("A%d", row), l.Name)
		_ = f.SetCellValue(stockSheet, fmt.Sprintf("B%d", row), l.Category)
		_ = f.SetCellValue(stockSheet, fmt.Sprintf("C%d", row), l.Unit)
		_ = f.SetCellValue(stockSheet, fmt.Sprintf("D%d", row), l.Stock.InexactFloat64())
		_ = f.SetCellValue(stockSheet, fmt.Sprintf("E%d", row), l.MinStock.InexactFloat64())
		_ = f.SetCellValue(stockSheet, fmt.Sprintf("F%d", row), l.AvgCost.InexactFloat64())
		_ = f.SetCellValue(stockSheet, fmt.Sprintf("G%d", row), l.StockValue.InexactFloat64())
		if l.LowStock {
			_ = f.SetCellStyle(stockSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("G%d", row), lowStyle)
		}
		total += l.StockValue.InexactFloat64()
		row++
	}

	summaryStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	_ = f.SetCellValue(stockSheet, fmt.Sprintf("A%d", row), "Total")
	_ = f.SetCellValue(stockSheet, fmt.Sprintf("G%d", row), total)
	_ = f.SetCellStyle(stockSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("G%d", row), summaryStyle)

	_ = f.SetColWidth(stockSheet, "A", "A", 32)
	_ = f.SetColWidth(stockSheet, "B", "C", 18)
	_ = f.SetColWidth(stockSheet, "D", "G", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}
