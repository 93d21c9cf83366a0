package loan

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusDefaulted Status = "defaulted"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusActive, StatusCompleted, StatusDefaulted:
		return true
	}
	return false
}

type Category string

const (
	CategorySeasonal  Category = "seasonal"
	CategoryEquipment Category = "equipment"
	CategoryLand      Category = "land"
	CategoryEmergency Category = "emergency"
)

// Table: loans
type Loan struct {
	ID                  uint64           `gorm:"primaryKey;column:id;autoIncrement"`
	UserID              uint64           `gorm:"column:user_id;not null;index:idx_loans_user_status"`
	Amount              decimal.Decimal  `gorm:"column:amount;type:decimal(20,8);not null"`
	InterestRate        decimal.Decimal  `gorm:"column:interest_rate;type:decimal(6,3);not null"`
	DurationMonths      int              `gorm:"column:duration_months;not null"`
	LoanType            Category         `gorm:"column:loan_type;type:varchar(16);not null"`
	Purpose             string           `gorm:"column:purpose;type:text"`
	Status              Status           `gorm:"column:status;type:varchar(16);not null;default:'pending';index:idx_loans_user_status"`
	CropSeason          string           `gorm:"column:crop_season;type:varchar(64)"`
	ExpectedHarvestDate datatypes.Date   `gorm:"column:expected_harvest_date"`
	CollateralValue     *decimal.Decimal `gorm:"column:collateral_value;type:decimal(20,8)"`
	// Fixed at application time, full precision.
	MonthlyPayment  decimal.Decimal `gorm:"column:monthly_payment;type:decimal(20,8);not null"`
	TotalPayment    decimal.Decimal `gorm:"column:total_payment;type:decimal(20,8);not null"`
	AmountPaid      decimal.Decimal `gorm:"column:amount_paid;type:decimal(20,8);not null;default:0"`
	ApprovedBy      *uint64         `gorm:"column:approved_by"`
	ApprovedDate    *time.Time      `gorm:"column:approved_date"`
	RejectionReason *string         `gorm:"column:rejection_reason;type:text"`
	DisbursedAt     *time.Time      `gorm:"column:disbursed_at"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Loan) TableName() string { return "loans" }

// AmountDue is the total payment as the borrower sees it (cents).
func (l *Loan) AmountDue() decimal.Decimal { return l.TotalPayment.Round(2) }

// Remaining never goes below zero.
func (l *Loan) Remaining() decimal.Decimal {
	r := l.AmountDue().Sub(l.AmountPaid)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}

// MaturityDate is approval date plus the loan duration; zero when never approved.
func (l *Loan) MaturityDate() time.Time {
	if l.ApprovedDate == nil {
		return time.Time{}
	}
	return l.ApprovedDate.AddDate(0, l.DurationMonths, 0)
}

// ListFilter narrows admin listings; empty Status means all.
type ListFilter struct {
	Status Status
	UserID uint64
}
