package statementhttp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/balanza-app/balanza/internal/ledger"
	"github.com/balanza-app/balanza/internal/statements"
)

type fakeLedger struct {
	rows []ledger.AccountBalance
}

func (f *fakeLedger) TrialBalance(ctx context.Context, ownerID int64, from, to time.Time) ([]ledger.AccountBalance, error) {
	return f.rows, nil
}

func (f *fakeLedger) CashFlowStatement(ctx context.Context, ownerID int64, from, to time.Time) (ledger.CashFlowActivity, error) {
	return ledger.CashFlowActivity{Operating: 5000, Net: 5000}, nil
}

type fakeRegistry struct{}

func (fakeRegistry) InventoryAccounts(ctx context.Context, ownerID int64) ([]string, error) {
	return nil, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	provider := &fakeLedger{rows: []ledger.AccountBalance{
		{Code: "1102", Name: "Bancos", Type: ledger.TypeAsset, Balance: 10000},
		{Code: "4001", Name: "Ventas", Type: ledger.TypeIncome, Balance: 50000},
		{Code: "5001", Name: "Compras", Type: ledger.TypeExpense, Balance: 20000},
	}}
	svc := statements.NewService(provider, provider, fakeRegistry{}, statements.DefaultClassification(), nil, nil, nil)
	handler := NewHandler(svc, nil, nil)

	r := chi.NewRouter()
	r.Route("/statements", handler.MountRoutes)
	return r
}

func TestBalanceSheetReturnsJSON(t *testing.T) {
	router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/statements/balance-sheet?owner=1&from=2026-01-01&to=2026-01-31", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var vm BalanceSheetVM
	if err := json.Unmarshal(rec.Body.Bytes(), &vm); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if vm.CurrentAssets.Total != 10000 {
		t.Fatalf("current assets total: got %.2f", vm.CurrentAssets.Total)
	}
	if vm.NetIncome != 30000 {
		t.Fatalf("net income: got %.2f", vm.NetIncome)
	}
	if vm.Comparison != nil {
		t.Fatalf("comparison must be absent when not requested")
	}
}

func TestIncomeStatementHidesReclassifiedExpenses(t *testing.T) {
	router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/statements/income-statement?owner=1&from=2026-01-01", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var vm IncomeStatementVM
	if err := json.Unmarshal(rec.Body.Bytes(), &vm); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(vm.Expenses.Lines) != 0 {
		t.Fatalf("reclassified account must not show under operating expenses, got %d lines", len(vm.Expenses.Lines))
	}
	if vm.CostOfSales.Total != 20000 {
		t.Fatalf("cost of sales total: got %.2f", vm.CostOfSales.Total)
	}
	if vm.GrossProfit != 30000 {
		t.Fatalf("gross profit: got %.2f", vm.GrossProfit)
	}
}

func TestComparisonRequested(t *testing.T) {
	router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/statements/balance-sheet?owner=1&from=2026-02-01&compare_from=2026-01-01", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var vm BalanceSheetVM
	if err := json.Unmarshal(rec.Body.Bytes(), &vm); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if vm.Comparison == nil {
		t.Fatalf("expected comparison block")
	}
	// compare_from without compare_to defaults the comparison to a single day.
	if !vm.Comparison.Period.To.Equal(vm.Comparison.Period.From) {
		t.Fatalf("comparison To must default to From, got %v..%v", vm.Comparison.Period.From, vm.Comparison.Period.To)
	}
}

func TestMissingOwnerRejected(t *testing.T) {
	router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/statements/balance-sheet?from=2026-01-01", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestMalformedDateRejected(t *testing.T) {
	router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/statements/cash-flow?owner=1&from=01-2026", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "AAAA-MM-DD") {
		t.Fatalf("expected validation detail, got %s", rec.Body.String())
	}
}

func TestCSVExportHeaders(t *testing.T) {
	router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/statements/income-statement?owner=1&from=2026-01-01&format=csv", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "estado_resultados.csv") {
		t.Fatalf("unexpected disposition %q", cd)
	}
	if !strings.Contains(rec.Body.String(), "Ingresos") {
		t.Fatalf("csv body missing revenue section: %s", rec.Body.String())
	}
}

func TestLatestEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/statements/latest", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("latest before any run must 404, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/statements/balance-sheet?owner=1&from=2026-01-01", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("generate failed: %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/statements/latest", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("latest after a run must 200, got %d", rec.Code)
	}
	var res statements.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Primary.Totals.NetIncome != 30000 {
		t.Fatalf("latest result wrong: %+v", res.Primary.Totals)
	}
}
