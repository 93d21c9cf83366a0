package uow

import (
	"context"

	"smartfarm-credit/internal/domain/loan"
	"smartfarm-credit/internal/domain/market"
	"smartfarm-credit/internal/domain/payment"
	"smartfarm-credit/internal/domain/review"
)

// Repos are bound to the surrounding transaction.
type Repos struct {
	Loans    loan.Repository
	Payments payment.Repository
	Reviews  review.Repository
	Products market.ProductRepository
	Orders   market.OrderRepository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock loan first, then pass it in
	WithinLoanTx(ctx context.Context, loanID uint64, fn func(r Repos, l *loan.Loan) error) error
}
