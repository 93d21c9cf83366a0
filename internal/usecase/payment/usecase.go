package payment

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"smartfarm-credit/internal/domain/loan"
	domain "smartfarm-credit/internal/domain/payment"
	"smartfarm-credit/internal/domain/uow"
	"smartfarm-credit/internal/domain/user"
)

type Usecase struct {
	uow uow.UnitOfWork
	now func() time.Time
}

func NewUsecase(tx uow.UnitOfWork) *Usecase { return &Usecase{uow: tx, now: time.Now} }

// Record books a repayment. The loan row stays locked from the ownership check
// to the aggregate update, so concurrent payments on one loan are serialized.
func (u *Usecase) Record(ctx context.Context, actor user.Actor, in RecordInput) (*ReceiptDTO, error) {
	method := strings.TrimSpace(in.PaymentMethod)
	if !in.Amount.IsPositive() || method == "" {
		return nil, loan.ErrInvalidPayment
	}
	var txID *string
	if in.TransactionID != nil {
		if v := strings.TrimSpace(*in.TransactionID); v != "" {
			txID = &v
		}
	}

	var out *ReceiptDTO
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *loan.Loan) error {
		if !actor.CanAccess(l.UserID) {
			return loan.ErrForbidden
		}
		if !l.Status.Payable() {
			return loan.ErrNotPayable
		}
		if in.Amount.GreaterThan(l.Remaining()) {
			return loan.ErrOverpayment
		}
		if txID != nil {
			exists, err := r.Payments.ExistsTransactionID(ctx, *txID)
			if err != nil {
				return err
			}
			if exists {
				return loan.ErrDuplicateTransaction
			}
		}

		p := &domain.Payment{
			LoanID:        l.ID,
			Amount:        in.Amount,
			PaymentMethod: method,
			TransactionID: txID,
			Status:        domain.StatusCompleted,
			PaymentDate:   u.now().UTC(),
		}
		if err := r.Payments.Create(ctx, p); err != nil {
			return err
		}
		if err := r.Loans.AddPayment(ctx, l.ID, in.Amount); err != nil {
			return err
		}

		// same value the increment just wrote; we hold the lock
		l.AmountPaid = l.AmountPaid.Add(in.Amount)
		if !l.AmountPaid.LessThan(l.AmountDue()) {
			if err := l.Transition(loan.StatusCompleted); err != nil {
				return err
			}
			if err := r.Loans.Save(ctx, l); err != nil {
				return err
			}
			zap.L().Info("loan: completed", zap.Uint64("loan_id", l.ID))
		}

		out = &ReceiptDTO{
			PaymentID:  p.ID,
			LoanID:     l.ID,
			Amount:     p.Amount.StringFixed(2),
			AmountPaid: l.AmountPaid.StringFixed(2),
			Remaining:  l.Remaining().StringFixed(2),
			LoanStatus: string(l.Status),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
