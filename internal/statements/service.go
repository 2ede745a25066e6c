package statements

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/balanza-app/balanza/internal/ledger"
	"github.com/balanza-app/balanza/internal/observability"
)

// TrialBalanceProvider fetches account balances for an inclusive date range.
type TrialBalanceProvider interface {
	TrialBalance(ctx context.Context, ownerID int64, from, to time.Time) ([]ledger.AccountBalance, error)
}

// CashFlowProvider returns externally categorized cash activity subtotals.
type CashFlowProvider interface {
	CashFlowStatement(ctx context.Context, ownerID int64, from, to time.Time) (ledger.CashFlowActivity, error)
}

// InventoryAccountRegistry lists explicitly configured inventory account
// codes. An empty result is a valid state and triggers the prefix fallback.
type InventoryAccountRegistry interface {
	InventoryAccounts(ctx context.Context, ownerID int64) ([]string, error)
}

// Statement is one fully derived result set for a single period.
type Statement struct {
	Period         PeriodRange         `json:"period"`
	Classification Classification      `json:"classification"`
	Totals         StatementTotals     `json:"totals"`
	CostOfSales    CostOfSalesSnapshot `json:"costOfSales"`
	CashFlow       CashFlowSnapshot    `json:"cashFlow"`
}

// Result bundles the primary statement with an optional comparison run.
// Comparison is nil, never zero-valued, when no second period was selected.
// Degraded marks results reset to zero defaults after a collaborator fault.
type Result struct {
	Primary    Statement  `json:"primary"`
	Comparison *Statement `json:"comparison,omitempty"`
	Degraded   bool       `json:"degraded,omitempty"`
}

// Service runs the derivation pipeline. Each invocation is a pure function
// of (trial balance, configuration); the service itself holds no mutable
// statement state.
type Service struct {
	trialBalance TrialBalanceProvider
	cashFlow     CashFlowProvider
	registry     InventoryAccountRegistry
	cfg          ClassificationConfig
	cache        *Cache
	logger       *slog.Logger
	metrics      *observability.Metrics
}

// NewService wires the engine's collaborators. cache and metrics may be nil.
func NewService(tb TrialBalanceProvider, cf CashFlowProvider, registry InventoryAccountRegistry, cfg ClassificationConfig, cache *Cache, logger *slog.Logger, metrics *observability.Metrics) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		trialBalance: tb,
		cashFlow:     cf,
		registry:     registry,
		cfg:          cfg,
		cache:        cache,
		logger:       logger,
		metrics:      metrics,
	}
}

// Generate derives the statement bundle for the primary period and, when a
// comparison selection is present, re-runs the whole pipeline for it from
// scratch. Collaborator failures never surface as errors: the affected run
// degrades to zero-valued defaults and the fault is logged.
func (s *Service) Generate(ctx context.Context, ownerID int64, primary PeriodSelection, comparison *PeriodSelection) Result {
	if s.cache != nil {
		key, err := s.cache.BuildKey(ctx, resultKey(ownerID, primary, comparison)...)
		if err == nil {
			var cached Result
			if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
				return cached
			}
			res := s.compute(ctx, ownerID, primary, comparison)
			if !res.Degraded {
				if err := s.cache.SetJSON(ctx, key, res); err != nil {
					s.logger.Warn("statement cache store failed", slog.Any("error", err))
				}
			}
			return res
		}
		s.logger.Warn("statement cache key failed", slog.Any("error", err))
	}
	return s.compute(ctx, ownerID, primary, comparison)
}

func (s *Service) compute(ctx context.Context, ownerID int64, primary PeriodSelection, comparison *PeriodSelection) Result {
	var (
		primaryStmt, compareStmt Statement
		primaryDeg, compareDeg   bool
	)

	// Primary and comparison pipelines are independent; run them as two
	// concurrent tasks over immutable inputs.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		primaryStmt, primaryDeg = s.runPipeline(gctx, ownerID, primary)
		return nil
	})
	if comparison != nil {
		cmp := *comparison
		g.Go(func() error {
			compareStmt, compareDeg = s.runPipeline(gctx, ownerID, cmp)
			return nil
		})
	}
	_ = g.Wait()

	res := Result{Primary: primaryStmt, Degraded: primaryDeg || compareDeg}
	if comparison != nil {
		res.Comparison = &compareStmt
	}
	return res
}

// runPipeline executes resolve -> fetch -> classify -> aggregate -> derive
// for one period. Any collaborator fault resets the whole statement for this
// run to zero defaults; the second return reports the degradation.
func (s *Service) runPipeline(ctx context.Context, ownerID int64, sel PeriodSelection) (Statement, bool) {
	rng, active := ResolvePeriod(sel)
	stmt := Statement{Period: rng}
	if !active {
		// Requested range ends before the cutover: empty trial balance by
		// definition, nothing to fetch.
		return stmt, false
	}

	rows, err := s.trialBalance.TrialBalance(ctx, ownerID, rng.From, rng.To)
	if err != nil {
		return s.degrade(rng, "trial balance fetch failed", err), true
	}

	stmt.Classification = Classify(rows, s.cfg, s.logger)
	stmt.Totals = Aggregate(stmt.Classification)

	cos := NewCostOfSalesCalculator(s.trialBalance, s.registry, s.cfg)
	stmt.CostOfSales, err = cos.Snapshot(ctx, ownerID, rng, rows)
	if err != nil {
		return s.degrade(rng, "cost of sales derivation failed", err), true
	}

	cf := NewCashFlowDeriver(s.cashFlow, s.trialBalance, s.cfg)
	stmt.CashFlow, err = cf.Snapshot(ctx, ownerID, rng)
	if err != nil {
		return s.degrade(rng, "cash flow derivation failed", err), true
	}

	return stmt, false
}

func (s *Service) degrade(rng PeriodRange, msg string, err error) Statement {
	s.logger.Error(msg, slog.Any("error", err),
		slog.String("from", rng.From.Format("2006-01-02")),
		slog.String("to", rng.To.Format("2006-01-02")))
	if s.metrics != nil {
		s.metrics.DegradedRun()
	}
	return Statement{Period: rng}
}
