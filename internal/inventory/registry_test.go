package inventory

import (
	"context"
	"errors"
	"testing"
)

type stubRepo struct {
	refs []AccountRef
	err  error
}

func (s *stubRepo) AccountRefs(ctx context.Context, ownerID int64) ([]AccountRef, error) {
	return s.refs, s.err
}

func TestInventoryAccountsDeduplicates(t *testing.T) {
	registry := NewRegistry(&stubRepo{refs: []AccountRef{
		{AccountID: 1, Code: "1201", Source: "default"},
		{AccountID: 1, Code: "1201", Source: "item"},
		{AccountID: 2, Code: "1202", Source: "warehouse"},
	}})
	codes, err := registry.InventoryAccounts(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(codes) != 2 {
		t.Fatalf("expected 2 deduplicated codes, got %v", codes)
	}
}

func TestInventoryAccountsEmptyIsValid(t *testing.T) {
	registry := NewRegistry(&stubRepo{})
	codes, err := registry.InventoryAccounts(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(codes) != 0 {
		t.Fatalf("no configuration must yield an empty set, got %v", codes)
	}
}

func TestInventoryAccountsPropagatesError(t *testing.T) {
	registry := NewRegistry(&stubRepo{err: errors.New("timeout")})
	if _, err := registry.InventoryAccounts(context.Background(), 7); err == nil {
		t.Fatalf("expected repository error")
	}
}
