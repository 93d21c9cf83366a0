package paymentmock

import (
	"context"

	domain "smartfarm-credit/internal/domain/payment"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn              func(ctx context.Context, p *domain.Payment) error
	ListByLoanIDFn        func(ctx context.Context, loanID uint64) ([]domain.Payment, error)
	ExistsTransactionIDFn func(ctx context.Context, txID string) (bool, error)
}

func (m *Repo) Create(ctx context.Context, p *domain.Payment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) ListByLoanID(ctx context.Context, loanID uint64) ([]domain.Payment, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanID)
	}
	return nil, nil
}

func (m *Repo) ExistsTransactionID(ctx context.Context, txID string) (bool, error) {
	if m.ExistsTransactionIDFn != nil {
		return m.ExistsTransactionIDFn(ctx, txID)
	}
	return false, nil
}
