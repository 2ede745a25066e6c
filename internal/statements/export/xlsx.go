package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/balanza-app/balanza/internal/statements"
)

// Workbook renders the full statement bundle into one workbook: one sheet
// per statement, comparison columns alongside when present.
func Workbook(res statements.Result) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", "Balance")
	if _, err := f.NewSheet("Resultados"); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet("Costo de ventas"); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet("Flujo de efectivo"); err != nil {
		return nil, err
	}

	writeBalanceSheet(f, res)
	writeIncomeSheet(f, res)
	writeCostOfSalesSheet(f, res)
	writeCashFlowSheet(f, res)
	return f, nil
}

func writeBalanceSheet(f *excelize.File, res statements.Result) {
	const sheet = "Balance"
	_ = f.SetCellValue(sheet, "A1", "Balance General")
	_ = f.SetCellValue(sheet, "B1", periodLabel(res.Primary.Period))
	if res.Comparison != nil {
		_ = f.SetCellValue(sheet, "C1", periodLabel(res.Comparison.Period))
	}

	row := 3
	write := func(label string, primary float64, comparison func(statements.StatementTotals) float64) {
		_ = f.SetCellValue(sheet, cell("A", row), label)
		_ = f.SetCellValue(sheet, cell("B", row), primary)
		if res.Comparison != nil {
			_ = f.SetCellValue(sheet, cell("C", row), comparison(res.Comparison.Totals))
		}
		row++
	}
	t := res.Primary.Totals
	write("Activo corriente", t.TotalCurrentAssets, func(c statements.StatementTotals) float64 { return c.TotalCurrentAssets })
	write("Activo no corriente", t.TotalNonCurrentAssets, func(c statements.StatementTotals) float64 { return c.TotalNonCurrentAssets })
	write("Total activo", t.TotalAssets, func(c statements.StatementTotals) float64 { return c.TotalAssets })
	write("Pasivo corriente", t.TotalCurrentLiabilities, func(c statements.StatementTotals) float64 { return c.TotalCurrentLiabilities })
	write("Pasivo no corriente", t.TotalNonCurrentLiabilities, func(c statements.StatementTotals) float64 { return c.TotalNonCurrentLiabilities })
	write("Total pasivo", t.TotalLiabilities, func(c statements.StatementTotals) float64 { return c.TotalLiabilities })
	write("Patrimonio", t.TotalEquity, func(c statements.StatementTotals) float64 { return c.TotalEquity })
	write("Resultado del periodo", t.NetIncome, func(c statements.StatementTotals) float64 { return c.NetIncome })
	write("Total pasivo y patrimonio", t.TotalLiabilitiesAndEquity, func(c statements.StatementTotals) float64 { return c.TotalLiabilitiesAndEquity })

	row++
	_ = f.SetCellValue(sheet, cell("A", row), "Cuenta")
	_ = f.SetCellValue(sheet, cell("B", row), "Nombre")
	_ = f.SetCellValue(sheet, cell("C", row), "Importe")
	row++
	c := res.Primary.Classification
	for _, items := range [][]statements.LineItem{
		c.CurrentAssets, c.NonCurrentAssets, c.CurrentLiabilities, c.NonCurrentLiabilities, c.Equity,
	} {
		for _, item := range items {
			_ = f.SetCellValue(sheet, cell("A", row), item.Code)
			_ = f.SetCellValue(sheet, cell("B", row), item.Name)
			_ = f.SetCellValue(sheet, cell("C", row), item.Amount)
			row++
		}
	}
}

func writeIncomeSheet(f *excelize.File, res statements.Result) {
	const sheet = "Resultados"
	_ = f.SetCellValue(sheet, "A1", "Estado de Resultados")
	_ = f.SetCellValue(sheet, "B1", periodLabel(res.Primary.Period))

	row := 3
	t := res.Primary.Totals
	for _, entry := range []struct {
		label string
		value float64
	}{
		{"Ingresos", t.TotalRevenue},
		{"Costo de ventas", t.TotalCosts},
		{"Utilidad bruta", t.TotalRevenue - t.TotalCosts},
		{"Gastos de operación", t.TotalExpenses},
		{"Resultado neto", t.NetIncome},
	} {
		_ = f.SetCellValue(sheet, cell("A", row), entry.label)
		_ = f.SetCellValue(sheet, cell("B", row), entry.value)
		row++
	}
	if res.Comparison != nil {
		ct := res.Comparison.Totals
		row = 3
		for _, value := range []float64{
			ct.TotalRevenue, ct.TotalCosts, ct.TotalRevenue - ct.TotalCosts, ct.TotalExpenses, ct.NetIncome,
		} {
			_ = f.SetCellValue(sheet, cell("C", row), value)
			row++
		}
	}
}

func writeCostOfSalesSheet(f *excelize.File, res statements.Result) {
	const sheet = "Costo de ventas"
	_ = f.SetCellValue(sheet, "A1", "Estado de Costo de Ventas")
	_ = f.SetCellValue(sheet, "B1", periodLabel(res.Primary.Period))

	writeCostColumn := func(col string, s statements.CostOfSalesSnapshot) {
		row := 3
		for _, value := range []float64{
			s.OpeningInventory, s.PurchasesLocal, s.PurchasesImports, s.TotalPurchases,
			s.IndirectCosts, s.AvailableForSale, s.ClosingInventory, s.CostOfGoodsSold(),
		} {
			_ = f.SetCellValue(sheet, cell(col, row), value)
			row++
		}
	}
	labels := []string{
		"Inventario inicial", "Compras locales", "Compras importadas", "Total compras",
		"Costos indirectos", "Disponible para venta", "Inventario final", "Costo de ventas",
	}
	for i, label := range labels {
		_ = f.SetCellValue(sheet, cell("A", 3+i), label)
	}
	writeCostColumn("B", res.Primary.CostOfSales)
	if res.Comparison != nil {
		writeCostColumn("C", res.Comparison.CostOfSales)
	}
}

func writeCashFlowSheet(f *excelize.File, res statements.Result) {
	const sheet = "Flujo de efectivo"
	_ = f.SetCellValue(sheet, "A1", "Estado de Flujo de Efectivo")
	_ = f.SetCellValue(sheet, "B1", periodLabel(res.Primary.Period))

	writeCashColumn := func(col string, s statements.CashFlowSnapshot) {
		row := 3
		for _, value := range []float64{
			s.OperatingCashFlow, s.InvestingCashFlow, s.FinancingCashFlow,
			s.NetCashFlow, s.OpeningCash, s.ClosingCash,
		} {
			_ = f.SetCellValue(sheet, cell(col, row), value)
			row++
		}
	}
	labels := []string{
		"Flujo operativo", "Flujo de inversión", "Flujo de financiamiento",
		"Flujo neto", "Efectivo inicial", "Efectivo final",
	}
	for i, label := range labels {
		_ = f.SetCellValue(sheet, cell("A", 3+i), label)
	}
	writeCashColumn("B", res.Primary.CashFlow)
	if res.Comparison != nil {
		writeCashColumn("C", res.Comparison.CashFlow)
	}
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
