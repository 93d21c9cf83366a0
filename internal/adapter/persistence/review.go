package persistence

import (
	"context"

	reviewDomain "smartfarm-credit/internal/domain/review"

	"gorm.io/gorm"
)

type ReviewRepository struct{ db *gorm.DB }

func NewReviewRepository(db *gorm.DB) *ReviewRepository { return &ReviewRepository{db: db} }

func (r *ReviewRepository) Create(ctx context.Context, rv *reviewDomain.Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *ReviewRepository) GetByLoanID(ctx context.Context, loanID uint64) (*reviewDomain.Review, error) {
	var out reviewDomain.Review
	if err := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out).Error; err != nil {
		return nil, notFound(err, reviewDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *ReviewRepository) GetByReviewID(ctx context.Context, reviewID string) (*reviewDomain.Review, error) {
	var out reviewDomain.Review
	if err := r.db.WithContext(ctx).Where("review_id = ?", reviewID).First(&out).Error; err != nil {
		return nil, notFound(err, reviewDomain.ErrNotFound)
	}
	return &out, nil
}
