package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/balanza-app/balanza/internal/statements"
)

func sampleResult(withComparison bool) statements.Result {
	period := statements.PeriodRange{
		From: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
	}
	stmt := statements.Statement{
		Period: period,
		Classification: statements.Classification{
			CurrentAssets: []statements.LineItem{{Code: "1102", Name: "Bancos", Amount: 10000}},
			Revenue:       []statements.LineItem{{Code: "4001", Name: "Ventas", Amount: 50000}},
			Costs:         []statements.LineItem{{Code: "5001", Name: "Compras", Amount: 20000, Reclassified: true}},
			Expenses: []statements.LineItem{
				{Code: "5001", Name: "Compras", Amount: 20000, Reclassified: true},
				{Code: "6001", Name: "Sueldos", Amount: 8000},
			},
		},
		Totals: statements.StatementTotals{
			TotalCurrentAssets: 10000,
			TotalAssets:        10000,
			TotalRevenue:       50000,
			TotalCosts:         20000,
			TotalExpenses:      8000,
			NetIncome:          22000,
		},
		CostOfSales: statements.CostOfSalesSnapshot{
			PurchasesLocal:   20000,
			TotalPurchases:   20000,
			AvailableForSale: 20000,
			ClosingInventory: 5000,
		},
		CashFlow: statements.CashFlowSnapshot{
			OperatingCashFlow: 5000,
			NetCashFlow:       5000,
			ClosingCash:       10000,
		},
	}
	res := statements.Result{Primary: stmt}
	if withComparison {
		cmp := stmt
		res.Comparison = &cmp
	}
	return res
}

func TestWriteIncomeStatementCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteIncomeStatementCSV(&buf, sampleResult(false)); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Ingresos", "Costo de ventas", "Gastos de operación", "Resultado neto"} {
		if !strings.Contains(out, want) {
			t.Fatalf("csv missing %q:\n%s", want, out)
		}
	}
	// The reclassified account shows under cost of sales, not operating expenses.
	if strings.Count(out, "5001") != 1 {
		t.Fatalf("reclassified account must appear once, got:\n%s", out)
	}
}

func TestWriteBalanceSheetCSVWithComparison(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteBalanceSheetCSV(&buf, sampleResult(true)); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Comparativo") {
		t.Fatalf("comparison block missing:\n%s", out)
	}
	if strings.Count(out, "Activo corriente") != 2 {
		t.Fatalf("both periods must render their sections:\n%s", out)
	}
}

func TestWriteCostOfSalesCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCostOfSalesCSV(&buf, sampleResult(false)); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Inventario inicial", "Total compras", "Costo de ventas"} {
		if !strings.Contains(out, want) {
			t.Fatalf("csv missing %q:\n%s", want, out)
		}
	}
}

func TestWorkbookSheets(t *testing.T) {
	file, err := Workbook(sampleResult(true))
	if err != nil {
		t.Fatalf("workbook: %v", err)
	}
	for _, sheet := range []string{"Balance", "Resultados", "Costo de ventas", "Flujo de efectivo"} {
		if idx, err := file.GetSheetIndex(sheet); err != nil || idx < 0 {
			t.Fatalf("missing sheet %q (idx=%d err=%v)", sheet, idx, err)
		}
	}
	title, err := file.GetCellValue("Balance", "A1")
	if err != nil {
		t.Fatalf("read cell: %v", err)
	}
	if title != "Balance General" {
		t.Fatalf("unexpected title %q", title)
	}
}

func TestRenderPDF(t *testing.T) {
	payload, err := RenderPDF(KindCashFlow, sampleResult(false))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(payload, []byte("%PDF")) {
		t.Fatalf("output is not a PDF document")
	}
}

func TestRenderPDFUnknownKind(t *testing.T) {
	if _, err := RenderPDF(Kind("quarterly"), sampleResult(false)); err == nil {
		t.Fatalf("unknown kind must error")
	}
}
