package statements

import (
	"context"
	"fmt"

	"github.com/balanza-app/balanza/internal/ledger"
)

// CostOfSalesSnapshot reconciles inventory positions and purchases for a
// period. IndirectCosts is a placeholder for future landed-cost allocation
// and is always zero today.
type CostOfSalesSnapshot struct {
	OpeningInventory float64 `json:"openingInventory"`
	PurchasesLocal   float64 `json:"purchasesLocal"`
	PurchasesImports float64 `json:"purchasesImports"`
	TotalPurchases   float64 `json:"totalPurchases"`
	IndirectCosts    float64 `json:"indirectCosts"`
	AvailableForSale float64 `json:"availableForSale"`
	ClosingInventory float64 `json:"closingInventory"`
}

// CostOfGoodsSold derives COGS for presentation; it is computed on demand,
// never stored in the snapshot.
func (s CostOfSalesSnapshot) CostOfGoodsSold() float64 {
	return s.AvailableForSale - s.ClosingInventory
}

// CostOfSalesCalculator derives the snapshot from two point-in-time
// inventory positions plus the period's own activity rows.
type CostOfSalesCalculator struct {
	trialBalance TrialBalanceProvider
	registry     InventoryAccountRegistry
	cfg          ClassificationConfig
}

// NewCostOfSalesCalculator wires the calculator's collaborators.
func NewCostOfSalesCalculator(tb TrialBalanceProvider, registry InventoryAccountRegistry, cfg ClassificationConfig) *CostOfSalesCalculator {
	return &CostOfSalesCalculator{trialBalance: tb, registry: registry, cfg: cfg}
}

// Snapshot computes the cost-of-sales figures for the resolved period.
// periodRows are the trial-balance rows already fetched for the period; the
// cumulative opening and closing positions are fetched here.
func (c *CostOfSalesCalculator) Snapshot(ctx context.Context, ownerID int64, period PeriodRange, periodRows []ledger.AccountBalance) (CostOfSalesSnapshot, error) {
	isInventory, err := c.inventoryMatcher(ctx, ownerID)
	if err != nil {
		return CostOfSalesSnapshot{}, err
	}

	var snap CostOfSalesSnapshot

	if opening, ok := InventoryRange(DayBefore(period.From)); ok {
		rows, err := c.trialBalance.TrialBalance(ctx, ownerID, opening.From, opening.To)
		if err != nil {
			return CostOfSalesSnapshot{}, fmt.Errorf("statements: opening inventory: %w", err)
		}
		snap.OpeningInventory = sumBalances(rows, isInventory)
	}

	if closing, ok := InventoryRange(period.To); ok {
		rows, err := c.trialBalance.TrialBalance(ctx, ownerID, closing.From, closing.To)
		if err != nil {
			return CostOfSalesSnapshot{}, fmt.Errorf("statements: closing inventory: %w", err)
		}
		snap.ClosingInventory = sumBalances(rows, isInventory)
	}

	// Movement preferred: gross debit postings to inventory accounts within
	// the period. The legacy prefix split only applies when no movement was
	// recorded.
	var movement float64
	for _, row := range periodRows {
		if isInventory(row.Code) {
			movement += row.TotalDebit
		}
	}
	if movement != 0 {
		snap.PurchasesLocal = movement
		snap.TotalPurchases = movement
	} else {
		for _, row := range periodRows {
			if row.Type != ledger.TypeCost && row.Type != ledger.TypeExpense {
				continue
			}
			code := NormalizeCode(row.Code)
			switch {
			case hasAnyPrefix(code, c.cfg.PurchasesLocalPrefixes):
				snap.PurchasesLocal += row.Balance
			case hasAnyPrefix(code, c.cfg.PurchasesImportPrefixes):
				snap.PurchasesImports += row.Balance
			}
		}
		snap.TotalPurchases = snap.PurchasesLocal + snap.PurchasesImports
	}

	snap.AvailableForSale = snap.OpeningInventory + snap.TotalPurchases + snap.IndirectCosts
	return snap, nil
}

// inventoryMatcher prefers explicitly configured inventory accounts and
// falls back to code prefixes when nothing is configured.
func (c *CostOfSalesCalculator) inventoryMatcher(ctx context.Context, ownerID int64) (func(string) bool, error) {
	if c.registry != nil {
		codes, err := c.registry.InventoryAccounts(ctx, ownerID)
		if err != nil {
			return nil, fmt.Errorf("statements: inventory registry: %w", err)
		}
		if len(codes) > 0 {
			set := make(map[string]struct{}, len(codes))
			for _, code := range codes {
				set[NormalizeCode(code)] = struct{}{}
			}
			return func(code string) bool {
				_, ok := set[NormalizeCode(code)]
				return ok
			}, nil
		}
	}
	return c.cfg.IsInventoryAccount, nil
}

func sumBalances(rows []ledger.AccountBalance, match func(string) bool) float64 {
	var total float64
	for _, row := range rows {
		if match(row.Code) {
			total += row.Balance
		}
	}
	return total
}
