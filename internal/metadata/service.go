package metadata

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/balanza-app/balanza/internal/platform/httpx"
)

var periodPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// RepositoryPort abstracts persistence for testing.
type RepositoryPort interface {
	Create(ctx context.Context, rec Record) error
	List(ctx context.Context, ownerID int64) ([]Record, error)
}

// Service validates and manages statement records.
type Service struct {
	repo RepositoryPort
	now  func() time.Time
}

// NewService constructs the metadata service.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithNow overrides the clock for testing.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// CreateInput is the caller-facing creation payload.
type CreateInput struct {
	OwnerID int64  `json:"ownerId" validate:"required,gt=0"`
	Type    string `json:"type" validate:"required"`
	Period  string `json:"period" validate:"required"`
}

// Create registers a new statement record in draft status.
func (s *Service) Create(ctx context.Context, input CreateInput) (Record, error) {
	if !ValidType(input.Type) {
		return Record{}, fmt.Errorf("%w: unknown statement type %q", httpx.ErrValidation, input.Type)
	}
	if !periodPattern.MatchString(input.Period) {
		return Record{}, fmt.Errorf("%w: period must be YYYY-MM", httpx.ErrValidation)
	}
	rec := Record{
		ID:        uuid.New(),
		OwnerID:   input.OwnerID,
		Type:      input.Type,
		Period:    input.Period,
		Status:    StatusDraft,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// List returns an owner's statement records.
func (s *Service) List(ctx context.Context, ownerID int64) ([]Record, error) {
	return s.repo.List(ctx, ownerID)
}
