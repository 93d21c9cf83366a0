package loan

import "errors"

var (
	ErrNotFound             = errors.New("loan not found")
	ErrForbidden            = errors.New("access denied")
	ErrAlreadyApproved      = errors.New("loan already approved")
	ErrInvalidTransition    = errors.New("loan not in a state that allows this action")
	ErrNotPayable           = errors.New("loan does not accept payments in its current state")
	ErrOverpayment          = errors.New("payment exceeds remaining balance")
	ErrDuplicateTransaction = errors.New("transaction id already recorded")
	ErrInvalidSchedule      = errors.New("invalid schedule parameters")
	ErrReasonRequired       = errors.New("rejection reason is required")
	ErrInvalidApplication   = errors.New("invalid loan application")
	ErrInvalidPayment       = errors.New("invalid payment")
)
