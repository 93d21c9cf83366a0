package loanmock

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	domain "smartfarm-credit/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset lookups return context.Canceled; unset writes are no-ops.
type Repo struct {
	CreateFn           func(ctx context.Context, l *domain.Loan) error
	GetByIDFn          func(ctx context.Context, id uint64) (*domain.Loan, error)
	GetByIDForUpdateFn func(ctx context.Context, id uint64) (*domain.Loan, error)
	ListFn             func(ctx context.Context, f domain.ListFilter) ([]domain.Loan, error)
	CountByStatusFn    func(ctx context.Context, userID uint64) (map[domain.Status]int64, error)
	ListOverdueFn      func(ctx context.Context, approvedBefore time.Time) ([]domain.Loan, error)
	SaveFn             func(ctx context.Context, l *domain.Loan) error
	AddPaymentFn       func(ctx context.Context, id uint64, amount decimal.Decimal) error
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Loan, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Loan, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context, f domain.ListFilter) ([]domain.Loan, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, context.Canceled
}

func (m *Repo) CountByStatus(ctx context.Context, userID uint64) (map[domain.Status]int64, error) {
	if m.CountByStatusFn != nil {
		return m.CountByStatusFn(ctx, userID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListOverdue(ctx context.Context, approvedBefore time.Time) ([]domain.Loan, error) {
	if m.ListOverdueFn != nil {
		return m.ListOverdueFn(ctx, approvedBefore)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) AddPayment(ctx context.Context, id uint64, amount decimal.Decimal) error {
	if m.AddPaymentFn != nil {
		return m.AddPaymentFn(ctx, id, amount)
	}
	return nil
}
