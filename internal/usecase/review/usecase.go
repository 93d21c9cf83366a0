package review

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	domainLoan "smartfarm-credit/internal/domain/loan"
	domainReview "smartfarm-credit/internal/domain/review"
	"smartfarm-credit/internal/domain/uow"
	"smartfarm-credit/internal/domain/user"
	"smartfarm-credit/pkg/id"
)

type Usecase struct {
	uow uow.UnitOfWork
	now func() time.Time
}

func NewUsecase(tx uow.UnitOfWork) *Usecase {
	return &Usecase{uow: tx, now: time.Now}
}

// Approve moves a pending loan to approved. A second approval is rejected
// with ErrAlreadyApproved and leaves the row untouched.
func (u *Usecase) Approve(ctx context.Context, actor user.Actor, loanID uint64) (*DecisionDTO, error) {
	return u.decide(ctx, actor, loanID, domainReview.OutcomeApproved, nil)
}

func (u *Usecase) Reject(ctx context.Context, actor user.Actor, loanID uint64, reason string) (*DecisionDTO, error) {
	if !actor.IsAdmin() {
		return nil, domainLoan.ErrForbidden
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, domainLoan.ErrReasonRequired
	}
	return u.decide(ctx, actor, loanID, domainReview.OutcomeRejected, &reason)
}

func (u *Usecase) decide(ctx context.Context, actor user.Actor, loanID uint64, outcome domainReview.Outcome, reason *string) (*DecisionDTO, error) {
	if !actor.IsAdmin() {
		return nil, domainLoan.ErrForbidden
	}
	var dto *DecisionDTO

	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domainLoan.Loan) error {
		// State guard: only pending -> approved|rejected
		if err := l.Transition(domainLoan.Status(outcome)); err != nil {
			return err
		}

		if prev, err := r.Reviews.GetByLoanID(ctx, l.ID); err == nil {
			// status and review table disagree; trust the review
			zap.L().Warn("review: loan already decided",
				zap.Uint64("loan_id", l.ID), zap.String("outcome", string(prev.Outcome)))
			if prev.Outcome == domainReview.OutcomeApproved {
				return domainLoan.ErrAlreadyApproved
			}
			return domainLoan.ErrInvalidTransition
		} else if !errors.Is(err, domainReview.ErrNotFound) {
			return err
		}

		now := u.now().UTC()
		rv := &domainReview.Review{
			ReviewID:   id.NewID32(),
			LoanID:     l.ID,
			Outcome:    outcome,
			ReviewerID: actor.ID,
			Reason:     reason,
			DecidedAt:  now,
		}
		if err := r.Reviews.Create(ctx, rv); err != nil {
			return err
		}

		l.ApprovedDate = &now
		if outcome == domainReview.OutcomeApproved {
			l.ApprovedBy = &actor.ID
		} else {
			l.RejectionReason = reason
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		dto = &DecisionDTO{
			ReviewID:  rv.ReviewID,
			LoanID:    l.ID,
			Status:    string(l.Status),
			Reason:    reason,
			DecidedBy: actor.ID,
			DecidedAt: now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Disburse releases the funds of an approved loan.
func (u *Usecase) Disburse(ctx context.Context, actor user.Actor, loanID uint64) (*DecisionDTO, error) {
	if !actor.IsAdmin() {
		return nil, domainLoan.ErrForbidden
	}
	var dto *DecisionDTO

	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if l.Status != domainLoan.StatusApproved {
			return domainLoan.ErrInvalidTransition
		}
		if err := l.Transition(domainLoan.StatusActive); err != nil {
			return err
		}
		now := u.now().UTC()
		l.DisbursedAt = &now
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = &DecisionDTO{LoanID: l.ID, Status: string(l.Status), DecidedBy: actor.ID, DecidedAt: now}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}
