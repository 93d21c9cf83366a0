package loan

import (
	"time"

	"github.com/shopspring/decimal"

	domain "smartfarm-credit/internal/domain/loan"
	"smartfarm-credit/internal/domain/payment"
)

const dateLayout = "2006-01-02"

type ApplyInput struct {
	Principal           decimal.Decimal
	DurationMonths      int
	LoanType            domain.Category
	Purpose             string
	CropSeason          string
	ExpectedHarvestDate time.Time
	CollateralValue     *decimal.Decimal
}

type ApplicationDTO struct {
	LoanID         uint64 `json:"loan_id"`
	Status         string `json:"status"`
	InterestRate   string `json:"interest_rate"`
	MonthlyPayment string `json:"monthly_payment"`
	TotalPayment   string `json:"total_payment"`
}

type LoanDTO struct {
	ID                  uint64     `json:"id"`
	UserID              uint64     `json:"user_id"`
	Amount              string     `json:"amount"`
	InterestRate        string     `json:"interest_rate"`
	DurationMonths      int        `json:"duration_months"`
	LoanType            string     `json:"loan_type"`
	Purpose             string     `json:"purpose,omitempty"`
	Status              string     `json:"status"`
	CropSeason          string     `json:"crop_season"`
	ExpectedHarvestDate string     `json:"expected_harvest_date"`
	CollateralValue     *string    `json:"collateral_value"`
	MonthlyPayment      string     `json:"monthly_payment"`
	TotalPayment        string     `json:"total_payment"`
	AmountPaid          string     `json:"amount_paid"`
	Remaining           string     `json:"remaining"`
	ApprovedBy          *uint64    `json:"approved_by"`
	ApprovedDate        *time.Time `json:"approved_date"`
	RejectionReason     *string    `json:"rejection_reason"`
	DisbursedAt         *time.Time `json:"disbursed_at"`
	CreatedAt           time.Time  `json:"created_at"`
}

type PaymentDTO struct {
	ID            uint64    `json:"id"`
	Amount        string    `json:"amount"`
	PaymentMethod string    `json:"payment_method"`
	TransactionID *string   `json:"transaction_id"`
	Status        string    `json:"status"`
	PaymentDate   time.Time `json:"payment_date"`
}

type LoanDetailDTO struct {
	LoanDTO
	Payments []PaymentDTO `json:"payments"`
}

type QuoteDTO struct {
	Principal      string `json:"principal"`
	DurationMonths int    `json:"duration_months"`
	LoanType       string `json:"loan_type"`
	InterestRate   string `json:"interest_rate"`
	MonthlyPayment string `json:"monthly_payment"`
	TotalPayment   string `json:"total_payment"`
	TotalInterest  string `json:"total_interest"`
}

type InstallmentDTO struct {
	Number    int    `json:"number"`
	DueDate   string `json:"due_date"`
	Payment   string `json:"payment"`
	Interest  string `json:"interest"`
	Principal string `json:"principal"`
	Balance   string `json:"balance"`
}

func money(d decimal.Decimal) string { return d.StringFixed(2) }

func toLoanDTO(l *domain.Loan) LoanDTO {
	dto := LoanDTO{
		ID:                  l.ID,
		UserID:              l.UserID,
		Amount:              money(l.Amount),
		InterestRate:        l.InterestRate.String(),
		DurationMonths:      l.DurationMonths,
		LoanType:            string(l.LoanType),
		Purpose:             l.Purpose,
		Status:              string(l.Status),
		CropSeason:          l.CropSeason,
		ExpectedHarvestDate: time.Time(l.ExpectedHarvestDate).Format(dateLayout),
		MonthlyPayment:      money(l.MonthlyPayment),
		TotalPayment:        money(l.TotalPayment),
		AmountPaid:          money(l.AmountPaid),
		Remaining:           money(l.Remaining()),
		ApprovedBy:          l.ApprovedBy,
		ApprovedDate:        l.ApprovedDate,
		RejectionReason:     l.RejectionReason,
		DisbursedAt:         l.DisbursedAt,
		CreatedAt:           l.CreatedAt,
	}
	if l.CollateralValue != nil {
		v := money(*l.CollateralValue)
		dto.CollateralValue = &v
	}
	return dto
}

func toPaymentDTO(p *payment.Payment) PaymentDTO {
	return PaymentDTO{
		ID:            p.ID,
		Amount:        money(p.Amount),
		PaymentMethod: p.PaymentMethod,
		TransactionID: p.TransactionID,
		Status:        string(p.Status),
		PaymentDate:   p.PaymentDate,
	}
}
