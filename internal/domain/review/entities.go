package review

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("review not found")
)

type Outcome string

const (
	OutcomeApproved Outcome = "approved"
	OutcomeRejected Outcome = "rejected"
)

// Table: loan_reviews. One decision per loan; the unique index backs the
// pending -> approved|rejected guard.
type Review struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Public identifier (32-char lowercase hex)
	ReviewID   string    `gorm:"column:review_id;type:char(32);not null;uniqueIndex:ux_loan_reviews_review_id"`
	LoanID     uint64    `gorm:"column:loan_id;not null;uniqueIndex:ux_loan_reviews_loan_id"`
	Outcome    Outcome   `gorm:"column:outcome;type:varchar(16);not null"`
	ReviewerID uint64    `gorm:"column:reviewer_id;not null"`
	Reason     *string   `gorm:"column:reason;type:text"`
	DecidedAt  time.Time `gorm:"column:decided_at;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Review) TableName() string { return "loan_reviews" }
