package export

import (
	"encoding/csv"
	"io"

	"github.com/balanza-app/balanza/internal/statements"
)

// WriteBalanceSheetCSV serialises the balance sheet, comparison included.
func WriteBalanceSheetCSV(w io.Writer, res statements.Result) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writeBalanceSheetBlock(writer, "Periodo", res.Primary); err != nil {
		return err
	}
	if res.Comparison != nil {
		if err := writer.Write(nil); err != nil {
			return err
		}
		if err := writeBalanceSheetBlock(writer, "Comparativo", *res.Comparison); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeBalanceSheetBlock(writer *csv.Writer, label string, stmt statements.Statement) error {
	t := stmt.Totals
	if err := writer.Write([]string{label, periodLabel(stmt.Period)}); err != nil {
		return err
	}
	sections := []struct {
		label string
		items []statements.LineItem
		total float64
	}{
		{"Activo corriente", stmt.Classification.CurrentAssets, t.TotalCurrentAssets},
		{"Activo no corriente", stmt.Classification.NonCurrentAssets, t.TotalNonCurrentAssets},
		{"Pasivo corriente", stmt.Classification.CurrentLiabilities, t.TotalCurrentLiabilities},
		{"Pasivo no corriente", stmt.Classification.NonCurrentLiabilities, t.TotalNonCurrentLiabilities},
		{"Patrimonio", stmt.Classification.Equity, t.TotalEquity},
	}
	for _, section := range sections {
		if err := writer.Write([]string{section.label, "", ""}); err != nil {
			return err
		}
		for _, item := range section.items {
			if err := writer.Write([]string{item.Code, item.Name, formatAmount(item.Amount)}); err != nil {
				return err
			}
		}
		if err := writer.Write([]string{"", "Total", formatAmount(section.total)}); err != nil {
			return err
		}
	}
	rows := [][]string{
		{"", "Total activo", formatAmount(t.TotalAssets)},
		{"", "Total pasivo", formatAmount(t.TotalLiabilities)},
		{"", "Resultado del periodo", formatAmount(t.NetIncome)},
		{"", "Total pasivo y patrimonio", formatAmount(t.TotalLiabilitiesAndEquity)},
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteIncomeStatementCSV serialises the income statement.
func WriteIncomeStatementCSV(w io.Writer, res statements.Result) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writeIncomeBlock(writer, "Periodo", res.Primary); err != nil {
		return err
	}
	if res.Comparison != nil {
		if err := writer.Write(nil); err != nil {
			return err
		}
		if err := writeIncomeBlock(writer, "Comparativo", *res.Comparison); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeIncomeBlock(writer *csv.Writer, label string, stmt statements.Statement) error {
	t := stmt.Totals
	if err := writer.Write([]string{label, periodLabel(stmt.Period)}); err != nil {
		return err
	}
	if err := writeItems(writer, "Ingresos", stmt.Classification.Revenue, t.TotalRevenue); err != nil {
		return err
	}
	if err := writeItems(writer, "Costo de ventas", stmt.Classification.Costs, t.TotalCosts); err != nil {
		return err
	}
	operating := make([]statements.LineItem, 0, len(stmt.Classification.Expenses))
	for _, item := range stmt.Classification.Expenses {
		if !item.Reclassified {
			operating = append(operating, item)
		}
	}
	if err := writeItems(writer, "Gastos de operación", operating, t.TotalExpenses); err != nil {
		return err
	}
	rows := [][]string{
		{"", "Utilidad bruta", formatAmount(t.TotalRevenue - t.TotalCosts)},
		{"", "Resultado neto", formatAmount(t.NetIncome)},
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteCostOfSalesCSV serialises the cost-of-sales reconciliation.
func WriteCostOfSalesCSV(w io.Writer, res statements.Result) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writeCostOfSalesBlock(writer, "Periodo", res.Primary); err != nil {
		return err
	}
	if res.Comparison != nil {
		if err := writer.Write(nil); err != nil {
			return err
		}
		if err := writeCostOfSalesBlock(writer, "Comparativo", *res.Comparison); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeCostOfSalesBlock(writer *csv.Writer, label string, stmt statements.Statement) error {
	s := stmt.CostOfSales
	rows := [][]string{
		{label, periodLabel(stmt.Period)},
		{"Inventario inicial", formatAmount(s.OpeningInventory)},
		{"Compras locales", formatAmount(s.PurchasesLocal)},
		{"Compras importadas", formatAmount(s.PurchasesImports)},
		{"Total compras", formatAmount(s.TotalPurchases)},
		{"Costos indirectos", formatAmount(s.IndirectCosts)},
		{"Disponible para venta", formatAmount(s.AvailableForSale)},
		{"Inventario final", formatAmount(s.ClosingInventory)},
		{"Costo de ventas", formatAmount(s.CostOfGoodsSold())},
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteCashFlowCSV serialises the cash-flow statement.
func WriteCashFlowCSV(w io.Writer, res statements.Result) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writeCashFlowBlock(writer, "Periodo", res.Primary); err != nil {
		return err
	}
	if res.Comparison != nil {
		if err := writer.Write(nil); err != nil {
			return err
		}
		if err := writeCashFlowBlock(writer, "Comparativo", *res.Comparison); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeCashFlowBlock(writer *csv.Writer, label string, stmt statements.Statement) error {
	s := stmt.CashFlow
	rows := [][]string{
		{label, periodLabel(stmt.Period)},
		{"Flujo operativo", formatAmount(s.OperatingCashFlow)},
		{"Flujo de inversión", formatAmount(s.InvestingCashFlow)},
		{"Flujo de financiamiento", formatAmount(s.FinancingCashFlow)},
		{"Flujo neto", formatAmount(s.NetCashFlow)},
		{"Efectivo inicial", formatAmount(s.OpeningCash)},
		{"Efectivo final", formatAmount(s.ClosingCash)},
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeItems(writer *csv.Writer, label string, items []statements.LineItem, total float64) error {
	if err := writer.Write([]string{label, "", ""}); err != nil {
		return err
	}
	for _, item := range items {
		if err := writer.Write([]string{item.Code, item.Name, formatAmount(item.Amount)}); err != nil {
			return err
		}
	}
	return writer.Write([]string{"", "Total", formatAmount(total)})
}

func periodLabel(p statements.PeriodRange) string {
	return p.From.Format("2006-01-02") + " a " + p.To.Format("2006-01-02")
}
