package statements

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/balanza-app/balanza/internal/ledger"
)

type stubLedger struct {
	mu          sync.Mutex
	rowsByRange map[string][]ledger.AccountBalance
	defaultRows []ledger.AccountBalance
	err         error
	calls       int

	activity    ledger.CashFlowActivity
	activityErr error
}

func rangeKey(from, to time.Time) string {
	return from.Format("2006-01-02") + ".." + to.Format("2006-01-02")
}

func (s *stubLedger) TrialBalance(ctx context.Context, ownerID int64, from, to time.Time) ([]ledger.AccountBalance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if rows, ok := s.rowsByRange[rangeKey(from, to)]; ok {
		return rows, nil
	}
	return s.defaultRows, nil
}

func (s *stubLedger) CashFlowStatement(ctx context.Context, ownerID int64, from, to time.Time) (ledger.CashFlowActivity, error) {
	if s.activityErr != nil {
		return ledger.CashFlowActivity{}, s.activityErr
	}
	return s.activity, nil
}

func (s *stubLedger) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type stubRegistry struct {
	codes []string
	err   error
}

func (s *stubRegistry) InventoryAccounts(ctx context.Context, ownerID int64) ([]string, error) {
	return s.codes, s.err
}

func sampleRows() []ledger.AccountBalance {
	return []ledger.AccountBalance{
		{Code: "1102", Name: "Bancos", Type: ledger.TypeAsset, Balance: 10000},
		{Code: "4001", Name: "Ventas", Type: ledger.TypeIncome, Balance: 50000},
		{Code: "5001", Name: "Compras", Type: ledger.TypeExpense, Balance: 20000},
	}
}

func janSelection() PeriodSelection {
	return MonthSelection(2026, time.January)
}

func TestGenerateEndToEnd(t *testing.T) {
	provider := &stubLedger{defaultRows: sampleRows(), activity: ledger.CashFlowActivity{Operating: 5000, Net: 5000}}
	svc := NewService(provider, provider, &stubRegistry{}, DefaultClassification(), nil, nil, nil)

	res := svc.Generate(context.Background(), 1, janSelection(), nil)
	if res.Degraded {
		t.Fatalf("unexpected degraded result")
	}
	if res.Comparison != nil {
		t.Fatalf("comparison must be nil when not requested")
	}
	totals := res.Primary.Totals
	if !almostEqual(totals.NetIncome, 30000) {
		t.Fatalf("net income: got %.2f", totals.NetIncome)
	}
	if !almostEqual(res.Primary.CostOfSales.TotalPurchases, 20000) {
		t.Fatalf("legacy purchases split expected 20000, got %.2f", res.Primary.CostOfSales.TotalPurchases)
	}
	if !almostEqual(res.Primary.CashFlow.OperatingCashFlow, 5000) {
		t.Fatalf("operating cash flow: got %.2f", res.Primary.CashFlow.OperatingCashFlow)
	}
	// Cash positions come from the cumulative views, which the stub serves
	// with the same rows: 1102 is a cash/bank prefix.
	if !almostEqual(res.Primary.CashFlow.ClosingCash, 10000) {
		t.Fatalf("closing cash: got %.2f", res.Primary.CashFlow.ClosingCash)
	}
}

func TestGenerateIsIdempotent(t *testing.T) {
	provider := &stubLedger{defaultRows: sampleRows()}
	svc := NewService(provider, provider, &stubRegistry{}, DefaultClassification(), nil, nil, nil)

	first := svc.Generate(context.Background(), 1, janSelection(), nil)
	second := svc.Generate(context.Background(), 1, janSelection(), nil)
	if first.Primary.Totals != second.Primary.Totals {
		t.Fatalf("repeated runs over identical inputs must match:\n%+v\n%+v", first.Primary.Totals, second.Primary.Totals)
	}
}

func TestGenerateComparisonRecomputedFromScratch(t *testing.T) {
	provider := &stubLedger{defaultRows: sampleRows()}
	svc := NewService(provider, provider, &stubRegistry{}, DefaultClassification(), nil, nil, nil)

	cmp := MonthSelection(2025, time.December)
	res := svc.Generate(context.Background(), 1, janSelection(), &cmp)
	if res.Comparison == nil {
		t.Fatalf("expected comparison statement")
	}
	if !almostEqual(res.Comparison.Totals.NetIncome, res.Primary.Totals.NetIncome) {
		t.Fatalf("stub serves identical rows, periods must agree")
	}
}

func TestGeneratePreCutoverSkipsFetch(t *testing.T) {
	provider := &stubLedger{defaultRows: sampleRows()}
	svc := NewService(provider, provider, &stubRegistry{}, DefaultClassification(), nil, nil, nil)

	res := svc.Generate(context.Background(), 1, MonthSelection(2025, time.June), nil)
	if res.Degraded {
		t.Fatalf("pre-cutover period is empty, not degraded")
	}
	if res.Primary.Totals != (StatementTotals{}) {
		t.Fatalf("pre-cutover totals must be zero, got %+v", res.Primary.Totals)
	}
	if provider.callCount() != 0 {
		t.Fatalf("no fetch expected for a pre-cutover period, got %d calls", provider.callCount())
	}
}

func TestGenerateDegradesOnCollaboratorFailure(t *testing.T) {
	provider := &stubLedger{err: errors.New("connection refused")}
	svc := NewService(provider, provider, &stubRegistry{}, DefaultClassification(), nil, nil, nil)

	res := svc.Generate(context.Background(), 1, janSelection(), nil)
	if !res.Degraded {
		t.Fatalf("collaborator failure must mark the result degraded")
	}
	if res.Primary.Totals != (StatementTotals{}) {
		t.Fatalf("degraded statement must reset to zero defaults, got %+v", res.Primary.Totals)
	}
	if res.Primary.Period == (PeriodRange{}) {
		t.Fatalf("degraded statement keeps its resolved period")
	}
}

func newCacheForTest(t *testing.T) (*Cache, func()) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewCache(client, time.Minute), func() {
		_ = client.Close()
		mr.Close()
	}
}

func TestGenerateCachesCleanResults(t *testing.T) {
	provider := &stubLedger{defaultRows: sampleRows()}
	cache, cleanup := newCacheForTest(t)
	defer cleanup()
	svc := NewService(provider, provider, &stubRegistry{}, DefaultClassification(), cache, nil, nil)

	ctx := context.Background()
	first := svc.Generate(ctx, 1, janSelection(), nil)
	callsAfterFirst := provider.callCount()
	second := svc.Generate(ctx, 1, janSelection(), nil)
	if provider.callCount() != callsAfterFirst {
		t.Fatalf("second call must be served from cache, fetch count went %d -> %d", callsAfterFirst, provider.callCount())
	}
	if first.Primary.Totals != second.Primary.Totals {
		t.Fatalf("cached result diverged")
	}

	if err := cache.Bump(ctx); err != nil {
		t.Fatalf("bump: %v", err)
	}
	svc.Generate(ctx, 1, janSelection(), nil)
	if provider.callCount() == callsAfterFirst {
		t.Fatalf("bump must invalidate the cached result")
	}
}

func TestGenerateNeverCachesDegradedResults(t *testing.T) {
	provider := &stubLedger{err: errors.New("boom")}
	cache, cleanup := newCacheForTest(t)
	defer cleanup()
	svc := NewService(provider, provider, &stubRegistry{}, DefaultClassification(), cache, nil, nil)

	ctx := context.Background()
	if res := svc.Generate(ctx, 1, janSelection(), nil); !res.Degraded {
		t.Fatalf("expected degraded result")
	}

	// Collaborator recovers; a cached degraded result would mask it.
	provider.mu.Lock()
	provider.err = nil
	provider.defaultRows = sampleRows()
	provider.mu.Unlock()

	res := svc.Generate(ctx, 1, janSelection(), nil)
	if res.Degraded {
		t.Fatalf("recovered run must not be served a cached degraded result")
	}
	if !almostEqual(res.Primary.Totals.NetIncome, 30000) {
		t.Fatalf("recovered totals wrong: %+v", res.Primary.Totals)
	}
}
