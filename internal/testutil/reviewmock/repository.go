package reviewmock

import (
	"context"

	domain "smartfarm-credit/internal/domain/review"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Lookups default to domain.ErrNotFound, i.e. "no review yet".
type Repo struct {
	CreateFn        func(ctx context.Context, r *domain.Review) error
	GetByLoanIDFn   func(ctx context.Context, loanID uint64) (*domain.Review, error)
	GetByReviewIDFn func(ctx context.Context, reviewID string) (*domain.Review, error)
}

func (m *Repo) Create(ctx context.Context, r *domain.Review) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID uint64) (*domain.Review, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByReviewID(ctx context.Context, reviewID string) (*domain.Review, error) {
	if m.GetByReviewIDFn != nil {
		return m.GetByReviewIDFn(ctx, reviewID)
	}
	return nil, domain.ErrNotFound
}
