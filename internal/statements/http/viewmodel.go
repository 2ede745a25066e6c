package statementhttp

import (
	"github.com/balanza-app/balanza/internal/statements"
)

// LineVM is one presentation row.
type LineVM struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Amount      float64 `json:"amount"`
	Subcategory string  `json:"subcategory,omitempty"`
	Contra      bool    `json:"contra,omitempty"`
}

// SectionVM groups lines with their subtotal.
type SectionVM struct {
	Label string   `json:"label"`
	Lines []LineVM `json:"lines"`
	Total float64  `json:"total"`
}

// BalanceSheetVM is the balance sheet presentation for one period.
type BalanceSheetVM struct {
	Period                    statements.PeriodRange `json:"period"`
	CurrentAssets             SectionVM              `json:"currentAssets"`
	NonCurrentAssets          SectionVM              `json:"nonCurrentAssets"`
	TotalAssets               float64                `json:"totalAssets"`
	CurrentLiabilities        SectionVM              `json:"currentLiabilities"`
	NonCurrentLiabilities     SectionVM              `json:"nonCurrentLiabilities"`
	TotalLiabilities          float64                `json:"totalLiabilities"`
	Equity                    SectionVM              `json:"equity"`
	NetIncome                 float64                `json:"netIncome"`
	TotalLiabilitiesAndEquity float64                `json:"totalLiabilitiesAndEquity"`
	Degraded                  bool                   `json:"degraded,omitempty"`
	Comparison                *BalanceSheetVM        `json:"comparison,omitempty"`
}

// IncomeStatementVM is the income statement presentation for one period.
type IncomeStatementVM struct {
	Period      statements.PeriodRange `json:"period"`
	Revenue     SectionVM              `json:"revenue"`
	CostOfSales SectionVM              `json:"costOfSales"`
	Expenses    SectionVM              `json:"expenses"`
	GrossProfit float64                `json:"grossProfit"`
	NetIncome   float64                `json:"netIncome"`
	Degraded    bool                   `json:"degraded,omitempty"`
	Comparison  *IncomeStatementVM     `json:"comparison,omitempty"`
}

// CostOfSalesVM is the cost-of-sales statement presentation.
type CostOfSalesVM struct {
	Period          statements.PeriodRange         `json:"period"`
	Snapshot        statements.CostOfSalesSnapshot `json:"snapshot"`
	CostOfGoodsSold float64                        `json:"costOfGoodsSold"`
	Degraded        bool                           `json:"degraded,omitempty"`
	Comparison      *CostOfSalesVM                 `json:"comparison,omitempty"`
}

// CashFlowVM is the cash-flow statement presentation.
type CashFlowVM struct {
	Period     statements.PeriodRange      `json:"period"`
	Snapshot   statements.CashFlowSnapshot `json:"snapshot"`
	Degraded   bool                        `json:"degraded,omitempty"`
	Comparison *CashFlowVM                 `json:"comparison,omitempty"`
}

func toLines(items []statements.LineItem) []LineVM {
	lines := make([]LineVM, 0, len(items))
	for _, item := range items {
		lines = append(lines, LineVM{
			Code:        item.Code,
			Name:        item.Name,
			Amount:      item.Amount,
			Subcategory: item.Subcategory,
			Contra:      item.Contra,
		})
	}
	return lines
}

func section(label string, items []statements.LineItem, total float64) SectionVM {
	return SectionVM{Label: label, Lines: toLines(items), Total: total}
}

func balanceSheetVM(stmt statements.Statement, degraded bool) *BalanceSheetVM {
	t := stmt.Totals
	c := stmt.Classification
	return &BalanceSheetVM{
		Period:                    stmt.Period,
		CurrentAssets:             section("Activo corriente", c.CurrentAssets, t.TotalCurrentAssets),
		NonCurrentAssets:          section("Activo no corriente", c.NonCurrentAssets, t.TotalNonCurrentAssets),
		TotalAssets:               t.TotalAssets,
		CurrentLiabilities:        section("Pasivo corriente", c.CurrentLiabilities, t.TotalCurrentLiabilities),
		NonCurrentLiabilities:     section("Pasivo no corriente", c.NonCurrentLiabilities, t.TotalNonCurrentLiabilities),
		TotalLiabilities:          t.TotalLiabilities,
		Equity:                    section("Patrimonio", c.Equity, t.TotalEquity),
		NetIncome:                 t.NetIncome,
		TotalLiabilitiesAndEquity: t.TotalLiabilitiesAndEquity,
		Degraded:                  degraded,
	}
}

func incomeStatementVM(stmt statements.Statement, degraded bool) *IncomeStatementVM {
	t := stmt.Totals
	c := stmt.Classification
	operating := make([]statements.LineItem, 0, len(c.Expenses))
	for _, item := range c.Expenses {
		if item.Reclassified {
			continue
		}
		operating = append(operating, item)
	}
	return &IncomeStatementVM{
		Period:      stmt.Period,
		Revenue:     section("Ingresos", c.Revenue, t.TotalRevenue),
		CostOfSales: section("Costo de ventas", c.Costs, t.TotalCosts),
		Expenses:    section("Gastos de operación", operating, t.TotalExpenses),
		GrossProfit: t.TotalRevenue - t.TotalCosts,
		NetIncome:   t.NetIncome,
		Degraded:    degraded,
	}
}

func costOfSalesVM(stmt statements.Statement, degraded bool) *CostOfSalesVM {
	return &CostOfSalesVM{
		Period:          stmt.Period,
		Snapshot:        stmt.CostOfSales,
		CostOfGoodsSold: stmt.CostOfSales.CostOfGoodsSold(),
		Degraded:        degraded,
	}
}

func cashFlowVM(stmt statements.Statement, degraded bool) *CashFlowVM {
	return &CashFlowVM{
		Period:   stmt.Period,
		Snapshot: stmt.CashFlow,
		Degraded: degraded,
	}
}

// BuildBalanceSheet assembles the balance sheet view with its comparison.
func BuildBalanceSheet(res statements.Result) *BalanceSheetVM {
	vm := balanceSheetVM(res.Primary, res.Degraded)
	if res.Comparison != nil {
		vm.Comparison = balanceSheetVM(*res.Comparison, false)
	}
	return vm
}

// BuildIncomeStatement assembles the income statement view.
func BuildIncomeStatement(res statements.Result) *IncomeStatementVM {
	vm := incomeStatementVM(res.Primary, res.Degraded)
	if res.Comparison != nil {
		vm.Comparison = incomeStatementVM(*res.Comparison, false)
	}
	return vm
}

// BuildCostOfSales assembles the cost-of-sales view.
func BuildCostOfSales(res statements.Result) *CostOfSalesVM {
	vm := costOfSalesVM(res.Primary, res.Degraded)
	if res.Comparison != nil {
		vm.Comparison = costOfSalesVM(*res.Comparison, false)
	}
	return vm
}

// BuildCashFlow assembles the cash-flow view.
func BuildCashFlow(res statements.Result) *CashFlowVM {
	vm := cashFlowVM(res.Primary, res.Degraded)
	if res.Comparison != nil {
		vm.Comparison = cashFlowVM(*res.Comparison, false)
	}
	return vm
}
