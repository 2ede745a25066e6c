package statements

// StatementTotals is the immutable aggregate of a classified trial balance.
// TotalLiabilitiesAndEquity folds net income into presented equity so the
// sheet balances against TotalAssets.
type StatementTotals struct {
	TotalCurrentAssets         float64 `json:"totalCurrentAssets"`
	TotalNonCurrentAssets      float64 `json:"totalNonCurrentAssets"`
	TotalAssets                float64 `json:"totalAssets"`
	TotalCurrentLiabilities    float64 `json:"totalCurrentLiabilities"`
	TotalNonCurrentLiabilities float64 `json:"totalNonCurrentLiabilities"`
	TotalLiabilities           float64 `json:"totalLiabilities"`
	TotalEquity                float64 `json:"totalEquity"`
	TotalRevenue               float64 `json:"totalRevenue"`
	TotalCosts                 float64 `json:"totalCosts"`
	TotalExpenses              float64 `json:"totalExpenses"`
	NetIncome                  float64 `json:"netIncome"`
	TotalLiabilitiesAndEquity  float64 `json:"totalLiabilitiesAndEquity"`
}

// Aggregate sums a classification into statement totals. Reclassified
// expense items count under costs and are excluded from expenses.
func Aggregate(c Classification) StatementTotals {
	var t StatementTotals
	t.TotalCurrentAssets = sumItems(c.CurrentAssets)
	t.TotalNonCurrentAssets = sumItems(c.NonCurrentAssets)
	t.TotalAssets = t.TotalCurrentAssets + t.TotalNonCurrentAssets

	t.TotalCurrentLiabilities = sumItems(c.CurrentLiabilities)
	t.TotalNonCurrentLiabilities = sumItems(c.NonCurrentLiabilities)
	t.TotalLiabilities = t.TotalCurrentLiabilities + t.TotalNonCurrentLiabilities

	t.TotalEquity = sumItems(c.Equity)
	t.TotalRevenue = sumItems(c.Revenue)
	t.TotalCosts = sumItems(c.Costs)
	for _, item := range c.Expenses {
		if item.Reclassified {
			continue
		}
		t.TotalExpenses += item.Amount
	}

	t.NetIncome = t.TotalRevenue - t.TotalCosts - t.TotalExpenses
	t.TotalLiabilitiesAndEquity = t.TotalLiabilities + t.TotalEquity + t.NetIncome
	return t
}

func sumItems(items []LineItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Amount
	}
	return total
}
