package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	loanDomain "smartfarm-credit/internal/domain/loan"
	paymentDomain "smartfarm-credit/internal/domain/payment"
)

type PaymentRepository struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) *PaymentRepository { return &PaymentRepository{db: db} }

func (r *PaymentRepository) Create(ctx context.Context, p *paymentDomain.Payment) error {
	err := r.db.WithContext(ctx).Omit("Loan").Create(p).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return loanDomain.ErrDuplicateTransaction
	}
	return err
}

func (r *PaymentRepository) ListByLoanID(ctx context.Context, loanID uint64) ([]paymentDomain.Payment, error) {
	var out []paymentDomain.Payment
	err := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("payment_date DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *PaymentRepository) ExistsTransactionID(ctx context.Context, txID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&paymentDomain.Payment{}).
		Where("transaction_id = ?", txID).
		Count(&n).Error
	return n > 0, err
}
