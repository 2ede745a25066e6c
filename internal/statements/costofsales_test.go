package statements

import (
	"context"
	"testing"
	"time"

	"github.com/balanza-app/balanza/internal/ledger"
)

func janRange() PeriodRange {
	rng, _ := ResolvePeriod(MonthSelection(2026, time.January))
	return rng
}

func TestSnapshotMovementBasedPurchases(t *testing.T) {
	period := janRange()
	opening, _ := InventoryRange(DayBefore(period.From))
	closing, _ := InventoryRange(period.To)
	provider := &stubLedger{
		rowsByRange: map[string][]ledger.AccountBalance{
			rangeKey(opening.From, opening.To): {
				{Code: "1201", Name: "Mercaderías", Type: ledger.TypeAsset, Balance: 4000},
			},
			rangeKey(closing.From, closing.To): {
				{Code: "1201", Name: "Mercaderías", Type: ledger.TypeAsset, Balance: 5500},
			},
		},
	}
	periodRows := []ledger.AccountBalance{
		{Code: "1201", Name: "Mercaderías", Type: ledger.TypeAsset, Balance: 1500, TotalDebit: 7000, TotalCredit: 5500},
		{Code: "5001", Name: "Compras", Type: ledger.TypeExpense, Balance: 99999},
	}

	calc := NewCostOfSalesCalculator(provider, &stubRegistry{}, DefaultClassification())
	snap, err := calc.Snapshot(context.Background(), 1, period, periodRows)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if !almostEqual(snap.PurchasesLocal, 7000) || !almostEqual(snap.TotalPurchases, 7000) {
		t.Fatalf("movement must win over the legacy split, got local=%.2f total=%.2f", snap.PurchasesLocal, snap.TotalPurchases)
	}
	if !almostEqual(snap.OpeningInventory, 4000) || !almostEqual(snap.ClosingInventory, 5500) {
		t.Fatalf("positions wrong: opening=%.2f closing=%.2f", snap.OpeningInventory, snap.ClosingInventory)
	}
	if !almostEqual(snap.AvailableForSale, 11000) {
		t.Fatalf("available for sale: got %.2f", snap.AvailableForSale)
	}
	if !almostEqual(snap.CostOfGoodsSold(), 5500) {
		t.Fatalf("cogs: got %.2f", snap.CostOfGoodsSold())
	}
	if snap.IndirectCosts != 0 {
		t.Fatalf("indirect costs stay zero, got %.2f", snap.IndirectCosts)
	}
}

func TestSnapshotLegacyPrefixFallback(t *testing.T) {
	provider := &stubLedger{}
	periodRows := []ledger.AccountBalance{
		{Code: "5001", Name: "Compras locales", Type: ledger.TypeExpense, Balance: 12000},
		{Code: "5002", Name: "Compras importadas", Type: ledger.TypeExpense, Balance: 3000},
		{Code: "6001", Name: "Sueldos", Type: ledger.TypeExpense, Balance: 8000},
	}

	calc := NewCostOfSalesCalculator(provider, &stubRegistry{}, DefaultClassification())
	snap, err := calc.Snapshot(context.Background(), 1, janRange(), periodRows)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if !almostEqual(snap.PurchasesLocal, 12000) {
		t.Fatalf("local purchases: got %.2f", snap.PurchasesLocal)
	}
	if !almostEqual(snap.PurchasesImports, 3000) {
		t.Fatalf("import purchases: got %.2f", snap.PurchasesImports)
	}
	if !almostEqual(snap.TotalPurchases, 15000) {
		t.Fatalf("total purchases: got %.2f", snap.TotalPurchases)
	}
}

func TestSnapshotRegistryOverridesPrefixes(t *testing.T) {
	period := janRange()
	periodRows := []ledger.AccountBalance{
		// Outside the inventory prefix table, but registered explicitly.
		{Code: "1450", Name: "Inventario en consignación", Type: ledger.TypeAsset, Balance: 900, TotalDebit: 2500},
	}
	calc := NewCostOfSalesCalculator(&stubLedger{}, &stubRegistry{codes: []string{"1450"}}, DefaultClassification())
	snap, err := calc.Snapshot(context.Background(), 1, period, periodRows)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if !almostEqual(snap.TotalPurchases, 2500) {
		t.Fatalf("registered account movement must count, got %.2f", snap.TotalPurchases)
	}
}

func TestSnapshotOpeningBeforeCutoverIsZero(t *testing.T) {
	// Period starting exactly at the cutover has no prior inventory window.
	period := PeriodRange{From: SystemStartDate, To: SystemStartDate.AddDate(0, 1, -1)}
	provider := &stubLedger{defaultRows: []ledger.AccountBalance{
		{Code: "1201", Name: "Mercaderías", Type: ledger.TypeAsset, Balance: 5000},
	}}
	calc := NewCostOfSalesCalculator(provider, &stubRegistry{}, DefaultClassification())
	snap, err := calc.Snapshot(context.Background(), 1, period, nil)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snap.OpeningInventory != 0 {
		t.Fatalf("opening inventory before cutover must be zero, got %.2f", snap.OpeningInventory)
	}
	if !almostEqual(snap.ClosingInventory, 5000) {
		t.Fatalf("closing inventory: got %.2f", snap.ClosingInventory)
	}
}
