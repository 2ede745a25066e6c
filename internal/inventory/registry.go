// Package inventory resolves which ledger accounts carry inventory value.
// Deployments configure a default inventory account plus per-item and
// per-warehouse overrides; no configuration at all is a valid state and the
// statement engine falls back to code prefixes.
package inventory

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AccountRef is one configured inventory account with its override source.
type AccountRef struct {
	AccountID int64  `json:"accountId"`
	Code      string `json:"code"`
	Source    string `json:"source"` // default | item | warehouse
}

// Repository reads inventory account configuration.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository wraps the shared connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const accountRefsQuery = `
SELECT a.id, a.code, 'default' AS source
FROM inventory_settings s
JOIN accounts a ON a.id = s.default_account_id
WHERE s.owner_id = $1
UNION
SELECT a.id, a.code, 'item'
FROM item_accounts ia
JOIN accounts a ON a.id = ia.account_id
WHERE ia.owner_id = $1
UNION
SELECT a.id, a.code, 'warehouse'
FROM warehouse_accounts wa
JOIN accounts a ON a.id = wa.account_id
WHERE wa.owner_id = $1`

// AccountRefs lists every configured inventory account for the owner.
func (r *Repository) AccountRefs(ctx context.Context, ownerID int64) ([]AccountRef, error) {
	rows, err := r.db.Query(ctx, accountRefsQuery, ownerID)
	if err != nil {
		return nil, fmt.Errorf("inventory: account refs query: %w", err)
	}
	defer rows.Close()

	var refs []AccountRef
	for rows.Next() {
		var ref AccountRef
		if err := rows.Scan(&ref.AccountID, &ref.Code, &ref.Source); err != nil {
			return nil, fmt.Errorf("inventory: scan account ref: %w", err)
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

// Registry exposes the configured inventory accounts to the engine.
type Registry struct {
	repo RepositoryPort
}

// RepositoryPort abstracts the configuration lookup for testing.
type RepositoryPort interface {
	AccountRefs(ctx context.Context, ownerID int64) ([]AccountRef, error)
}

// NewRegistry constructs the registry service.
func NewRegistry(repo RepositoryPort) *Registry {
	return &Registry{repo: repo}
}

// InventoryAccounts returns the deduplicated set of configured inventory
// account codes. An empty slice means nothing is configured.
func (r *Registry) InventoryAccounts(ctx context.Context, ownerID int64) ([]string, error) {
	refs, err := r.repo.AccountRefs(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(refs))
	codes := make([]string, 0, len(refs))
	for _, ref := range refs {
		if _, ok := seen[ref.Code]; ok {
			continue
		}
		seen[ref.Code] = struct{}{}
		codes = append(codes, ref.Code)
	}
	return codes, nil
}
