// Package export serialises derived statements to CSV, XLSX, and PDF.
package export

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Kind selects which statement a PDF render covers.
type Kind string

const (
	KindBalanceSheet    Kind = "balance_sheet"
	KindIncomeStatement Kind = "income_statement"
	KindCostOfSales     Kind = "cost_of_sales"
	KindCashFlow        Kind = "cash_flow"
)

var printer = message.NewPrinter(language.Spanish)

// formatAmount renders an amount with Spanish digit grouping, two decimals.
func formatAmount(v float64) string {
	return printer.Sprintf("%.2f", v)
}
