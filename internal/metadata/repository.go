package metadata

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/balanza-app/balanza/internal/platform/httpx"
)

// Repository persists statement records.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository wraps the shared connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create inserts a statement record.
func (r *Repository) Create(ctx context.Context, rec Record) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO statement_records (id, owner_id, type, period, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		rec.ID, rec.OwnerID, rec.Type, rec.Period, rec.Status, rec.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return httpx.ErrDuplicate
		}
		return fmt.Errorf("metadata: insert record: %w", err)
	}
	return nil
}

// List returns an owner's statement records, newest first.
func (r *Repository) List(ctx context.Context, ownerID int64) ([]Record, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, owner_id, type, period, status, created_at
		 FROM statement_records
		 WHERE owner_id = $1
		 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("metadata: list records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.OwnerID, &rec.Type, &rec.Period, &rec.Status, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("metadata: scan record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
