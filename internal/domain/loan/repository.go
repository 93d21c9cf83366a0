package loan

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByID(ctx context.Context, id uint64) (*Loan, error)
	// GetByIDForUpdate locks the row until the surrounding tx ends.
	GetByIDForUpdate(ctx context.Context, id uint64) (*Loan, error)
	List(ctx context.Context, f ListFilter) ([]Loan, error)
	CountByStatus(ctx context.Context, userID uint64) (map[Status]int64, error)
	// ListOverdue returns payable loans approved before the cutoff.
	ListOverdue(ctx context.Context, approvedBefore time.Time) ([]Loan, error)
	Save(ctx context.Context, l *Loan) error
	// AddPayment increments amount_paid server-side.
	AddPayment(ctx context.Context, id uint64, amount decimal.Decimal) error
}
