package ledger

import (
	"context"
	"fmt"
	"time"
)

// CashFlowActivity groups period cash movement by activity category as
// classified at posting time.
type CashFlowActivity struct {
	Operating float64 `json:"operatingCashFlow"`
	Investing float64 `json:"investingCashFlow"`
	Financing float64 `json:"financingCashFlow"`
	Net       float64 `json:"netCashFlow"`
}

const cashFlowQuery = `
SELECT COALESCE(SUM(CASE WHEN t.activity = 'OPERATING' THEN t.amount ELSE 0 END), 0),
       COALESCE(SUM(CASE WHEN t.activity = 'INVESTING' THEN t.amount ELSE 0 END), 0),
       COALESCE(SUM(CASE WHEN t.activity = 'FINANCING' THEN t.amount ELSE 0 END), 0)
FROM cash_transactions t
WHERE t.owner_id = $1
  AND t.txn_date BETWEEN $2 AND $3`

// CashFlowStatement sums categorized cash transactions for the inclusive
// range into operating, investing, and financing subtotals.
func (r *Repository) CashFlowStatement(ctx context.Context, ownerID int64, from, to time.Time) (CashFlowActivity, error) {
	var activity CashFlowActivity
	row := r.db.QueryRow(ctx, cashFlowQuery, ownerID, from, to)
	if err := row.Scan(&activity.Operating, &activity.Investing, &activity.Financing); err != nil {
		return CashFlowActivity{}, fmt.Errorf("ledger: cash flow query: %w", err)
	}
	activity.Net = activity.Operating + activity.Investing + activity.Financing
	return activity, nil
}
