package statements

import (
	"log/slog"
	"math"
	"sort"

	"github.com/balanza-app/balanza/internal/ledger"
)

// zeroTolerance suppresses residual balances left by rounding. Suppressed
// accounts appear in no category array and contribute to no total.
const zeroTolerance = 0.005

// LineItem is a classified account ready for presentation. Amount is
// sign-adjusted: positive adds to its statement section unless Contra.
type LineItem struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Amount      float64 `json:"amount"`
	Subcategory string  `json:"subcategory,omitempty"`
	Contra      bool    `json:"contra,omitempty"`

	// Reclassified marks expense accounts presented under cost of sales.
	// Such items appear in both Expenses and Costs; the two views are
	// derived from the same source row, not duplicated state.
	Reclassified bool `json:"reclassified,omitempty"`
}

// Classification buckets trial-balance rows into presentation arrays.
type Classification struct {
	CurrentAssets         []LineItem `json:"currentAssets"`
	NonCurrentAssets      []LineItem `json:"nonCurrentAssets"`
	CurrentLiabilities    []LineItem `json:"currentLiabilities"`
	NonCurrentLiabilities []LineItem `json:"nonCurrentLiabilities"`
	Equity                []LineItem `json:"equity"`
	Revenue               []LineItem `json:"revenue"`
	Costs                 []LineItem `json:"costs"`
	Expenses              []LineItem `json:"expenses"`
}

// Classify maps trial-balance rows into presentation arrays. Zero balances
// are dropped outright, revenue contra accounts are sign-flipped, and
// 5xxx-coded expenses are merged into the cost-of-sales view.
func Classify(rows []ledger.AccountBalance, cfg ClassificationConfig, logger *slog.Logger) Classification {
	var out Classification
	for _, row := range rows {
		if math.Abs(row.Balance) < zeroTolerance {
			continue
		}
		item := LineItem{
			Code:        row.Code,
			Name:        row.Name,
			Amount:      row.Balance,
			Subcategory: cfg.Subcategory(row.Code),
		}
		switch row.Type {
		case ledger.TypeAsset:
			if matchesMarker(row.Name, cfg.ContraAssetMarkers) {
				// Tagged for identification only; placement among the asset
				// sub-groups already nets correctly.
				item.Contra = true
			}
			if cfg.currentFor(row.Type, row.Code) {
				out.CurrentAssets = append(out.CurrentAssets, item)
			} else {
				out.NonCurrentAssets = append(out.NonCurrentAssets, item)
			}
		case ledger.TypeLiability:
			if cfg.currentFor(row.Type, row.Code) {
				out.CurrentLiabilities = append(out.CurrentLiabilities, item)
			} else {
				out.NonCurrentLiabilities = append(out.NonCurrentLiabilities, item)
			}
		case ledger.TypeEquity:
			out.Equity = append(out.Equity, item)
		case ledger.TypeIncome:
			if matchesMarker(row.Name, cfg.ContraRevenueMarkers) {
				item.Contra = true
				item.Amount = -math.Abs(row.Balance)
			} else {
				item.Amount = math.Abs(row.Balance)
			}
			out.Revenue = append(out.Revenue, item)
		case ledger.TypeCost:
			out.Costs = append(out.Costs, item)
		case ledger.TypeExpense:
			if cfg.IsCostReclass(row.Code) {
				item.Reclassified = true
				out.Costs = append(out.Costs, item)
			}
			out.Expenses = append(out.Expenses, item)
		default:
			// Unrecognised type: excluded from every statement. Logged so
			// miscoded postings stay visible to operators.
			if logger != nil {
				logger.Warn("unclassifiable account type skipped",
					slog.String("code", row.Code),
					slog.String("name", row.Name))
			}
		}
	}
	out.sortAll()
	return out
}

func (c *Classification) sortAll() {
	for _, items := range [][]LineItem{
		c.CurrentAssets, c.NonCurrentAssets,
		c.CurrentLiabilities, c.NonCurrentLiabilities,
		c.Equity, c.Revenue, c.Costs, c.Expenses,
	} {
		sort.SliceStable(items, func(i, j int) bool { return items[i].Code < items[j].Code })
	}
}
