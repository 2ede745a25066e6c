package metadata

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/balanza-app/balanza/internal/platform/httpx"
)

type mockRepo struct {
	created []Record
	records []Record
	err     error
}

func (m *mockRepo) Create(ctx context.Context, rec Record) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, rec)
	return nil
}

func (m *mockRepo) List(ctx context.Context, ownerID int64) ([]Record, error) {
	return m.records, m.err
}

func TestCreateDraftRecord(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)
	fixed := time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)
	svc.WithNow(func() time.Time { return fixed })

	rec, err := svc.Create(context.Background(), CreateInput{OwnerID: 7, Type: TypeBalanceSheet, Period: "2026-01"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Status != StatusDraft {
		t.Fatalf("new records start as draft, got %q", rec.Status)
	}
	if !rec.CreatedAt.Equal(fixed) {
		t.Fatalf("created at: got %v", rec.CreatedAt)
	}
	if rec.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Fatalf("record must get a generated id")
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one persisted record, got %d", len(repo.created))
	}
}

func TestCreateRejectsUnknownType(t *testing.T) {
	svc := NewService(&mockRepo{})
	_, err := svc.Create(context.Background(), CreateInput{OwnerID: 7, Type: "ledger_dump", Period: "2026-01"})
	if !errors.Is(err, httpx.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateRejectsBadPeriod(t *testing.T) {
	svc := NewService(&mockRepo{})
	for _, period := range []string{"2026", "01-2026", "2026-1", "2026-01-15"} {
		_, err := svc.Create(context.Background(), CreateInput{OwnerID: 7, Type: TypeCashFlow, Period: period})
		if !errors.Is(err, httpx.ErrValidation) {
			t.Fatalf("period %q must be rejected, got %v", period, err)
		}
	}
}

func TestCreatePropagatesRepositoryError(t *testing.T) {
	svc := NewService(&mockRepo{err: httpx.ErrDuplicate})
	_, err := svc.Create(context.Background(), CreateInput{OwnerID: 7, Type: TypeCostOfSales, Period: "2026-01"})
	if !errors.Is(err, httpx.ErrDuplicate) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}
