package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository fetches trial-balance data from the posted ledger.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository wraps the shared connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const trialBalanceQuery = `
SELECT a.id,
       a.code,
       a.name,
       a.type,
       COALESCE(SUM(l.debit), 0)  AS total_debit,
       COALESCE(SUM(l.credit), 0) AS total_credit
FROM accounts a
JOIN journal_lines l ON l.account_id = a.id
JOIN journal_entries e ON e.id = l.journal_id
WHERE e.owner_id = $1
  AND e.status = 'POSTED'
  AND e.entry_date BETWEEN $2 AND $3
GROUP BY a.id, a.code, a.name, a.type
ORDER BY a.code`

// TrialBalance returns account balances for accounts with posted activity in
// the inclusive date range. Raw type discriminators are normalized here;
// unrecognised types are carried through as TypeUnknown for the engine to
// report and skip.
func (r *Repository) TrialBalance(ctx context.Context, ownerID int64, from, to time.Time) ([]AccountBalance, error) {
	rows, err := r.db.Query(ctx, trialBalanceQuery, ownerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("ledger: trial balance query: %w", err)
	}
	defer rows.Close()

	var balances []AccountBalance
	for rows.Next() {
		var (
			b       AccountBalance
			rawType string
		)
		if err := rows.Scan(&b.AccountID, &b.Code, &b.Name, &rawType, &b.TotalDebit, &b.TotalCredit); err != nil {
			return nil, fmt.Errorf("ledger: scan trial balance row: %w", err)
		}
		b.Type, _ = NormalizeType(rawType)
		b.Balance = NormalBalance(b.Type, b.TotalDebit, b.TotalCredit)
		balances = append(balances, b)
	}
	return balances, rows.Err()
}
