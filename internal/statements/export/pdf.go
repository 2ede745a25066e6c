package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/balanza-app/balanza/internal/statements"
)

var pdfTitles = map[Kind]string{
	KindBalanceSheet:    "Balance General",
	KindIncomeStatement: "Estado de Resultados",
	KindCostOfSales:     "Estado de Costo de Ventas",
	KindCashFlow:        "Estado de Flujo de Efectivo",
}

// RenderPDF renders one statement kind to a PDF document.
func RenderPDF(kind Kind, res statements.Result) ([]byte, error) {
	title, ok := pdfTitles[kind]
	if !ok {
		return nil, fmt.Errorf("export: unknown statement kind %q", kind)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "B", 14)
	pdf.AddPage()
	pdf.Cell(0, 10, title)
	pdf.Ln(12)

	renderStatement(pdf, kind, res.Primary)
	if res.Comparison != nil {
		pdf.Ln(8)
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(0, 8, "Comparativo")
		pdf.Ln(10)
		renderStatement(pdf, kind, *res.Comparison)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderStatement(pdf *gofpdf.Fpdf, kind Kind, stmt statements.Statement) {
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Periodo: %s", periodLabel(stmt.Period)))
	pdf.Ln(8)

	switch kind {
	case KindBalanceSheet:
		t := stmt.Totals
		renderRows(pdf, [][2]string{
			{"Activo corriente", formatAmount(t.TotalCurrentAssets)},
			{"Activo no corriente", formatAmount(t.TotalNonCurrentAssets)},
			{"Total activo", formatAmount(t.TotalAssets)},
			{"Pasivo corriente", formatAmount(t.TotalCurrentLiabilities)},
			{"Pasivo no corriente", formatAmount(t.TotalNonCurrentLiabilities)},
			{"Total pasivo", formatAmount(t.TotalLiabilities)},
			{"Patrimonio", formatAmount(t.TotalEquity)},
			{"Resultado del periodo", formatAmount(t.NetIncome)},
			{"Total pasivo y patrimonio", formatAmount(t.TotalLiabilitiesAndEquity)},
		})
	case KindIncomeStatement:
		t := stmt.Totals
		renderRows(pdf, [][2]string{
			{"Ingresos", formatAmount(t.TotalRevenue)},
			{"Costo de ventas", formatAmount(t.TotalCosts)},
			{"Utilidad bruta", formatAmount(t.TotalRevenue - t.TotalCosts)},
			{"Gastos de operación", formatAmount(t.TotalExpenses)},
			{"Resultado neto", formatAmount(t.NetIncome)},
		})
	case KindCostOfSales:
		s := stmt.CostOfSales
		renderRows(pdf, [][2]string{
			{"Inventario inicial", formatAmount(s.OpeningInventory)},
			{"Compras locales", formatAmount(s.PurchasesLocal)},
			{"Compras importadas", formatAmount(s.PurchasesImports)},
			{"Total compras", formatAmount(s.TotalPurchases)},
			{"Costos indirectos", formatAmount(s.IndirectCosts)},
			{"Disponible para venta", formatAmount(s.AvailableForSale)},
			{"Inventario final", formatAmount(s.ClosingInventory)},
			{"Costo de ventas", formatAmount(s.CostOfGoodsSold())},
		})
	case KindCashFlow:
		s := stmt.CashFlow
		renderRows(pdf, [][2]string{
			{"Flujo operativo", formatAmount(s.OperatingCashFlow)},
			{"Flujo de inversión", formatAmount(s.InvestingCashFlow)},
			{"Flujo de financiamiento", formatAmount(s.FinancingCashFlow)},
			{"Flujo neto", formatAmount(s.NetCashFlow)},
			{"Efectivo inicial", formatAmount(s.OpeningCash)},
			{"Efectivo final", formatAmount(s.ClosingCash)},
		})
	}
}

func renderRows(pdf *gofpdf.Fpdf, rows [][2]string) {
	for _, row := range rows {
		pdf.CellFormat(110, 6, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 6, row[1], "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
}
