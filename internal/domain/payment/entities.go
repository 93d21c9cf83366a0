package payment

import (
	"time"

	"github.com/shopspring/decimal"

	"smartfarm-credit/internal/domain/loan"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Table: loan_payments
type Payment struct {
	ID            uint64          `gorm:"primaryKey;column:id;autoIncrement"`
	LoanID        uint64          `gorm:"column:loan_id;not null;index"`
	Amount        decimal.Decimal `gorm:"column:amount;type:decimal(20,8);not null"`
	PaymentMethod string          `gorm:"column:payment_method;type:varchar(64);not null"`
	// Unique when present; NULLs do not collide.
	TransactionID *string   `gorm:"column:transaction_id;type:varchar(128);uniqueIndex:ux_loan_payments_transaction_id"`
	Status        Status    `gorm:"column:status;type:varchar(16);not null;default:'completed'"`
	PaymentDate   time.Time `gorm:"column:payment_date;not null"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`

	// Cascade-deleted with the loan.
	Loan *loan.Loan `gorm:"foreignKey:LoanID;constraint:OnDelete:CASCADE"`
}

func (Payment) TableName() string { return "loan_payments" }
