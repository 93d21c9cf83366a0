package review

import "context"

type Repository interface {
	// Create a new review (DB uniqueness ensures at most one per loan)
	Create(ctx context.Context, r *Review) error

	GetByLoanID(ctx context.Context, loanID uint64) (*Review, error)

	// Get by public review_id
	GetByReviewID(ctx context.Context, reviewID string) (*Review, error)
}
