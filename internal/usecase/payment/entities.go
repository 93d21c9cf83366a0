package payment

import "github.com/shopspring/decimal"

type RecordInput struct {
	LoanID        uint64
	Amount        decimal.Decimal
	PaymentMethod string
	TransactionID *string
}

type ReceiptDTO struct {
	PaymentID  uint64 `json:"payment_id"`
	LoanID     uint64 `json:"loan_id"`
	Amount     string `json:"amount"`
	AmountPaid string `json:"amount_paid"`
	Remaining  string `json:"remaining"`
	LoanStatus string `json:"loan_status"`
}
