package loan

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	domain "smartfarm-credit/internal/domain/loan"
	"smartfarm-credit/internal/domain/payment"
	"smartfarm-credit/internal/domain/uow"
	"smartfarm-credit/internal/domain/user"
)

type Usecase struct {
	repo     domain.Repository
	payments payment.Repository
	uow      uow.UnitOfWork
	now      func() time.Time
}

func NewUsecase(r domain.Repository, p payment.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repo: r, payments: p, uow: tx, now: time.Now}
}

// Apply prices the loan from the category rate table and stores it as pending.
func (u *Usecase) Apply(ctx context.Context, actor user.Actor, in ApplyInput) (*ApplicationDTO, error) {
	if !in.Principal.IsPositive() ||
		in.DurationMonths < domain.MinDurationMonths || in.DurationMonths > domain.MaxDurationMonths ||
		!in.LoanType.Valid() ||
		strings.TrimSpace(in.CropSeason) == "" ||
		in.ExpectedHarvestDate.IsZero() ||
		(in.CollateralValue != nil && in.CollateralValue.IsNegative()) {
		return nil, domain.ErrInvalidApplication
	}

	rate := domain.RateFor(in.LoanType)
	s, err := domain.ComputeSchedule(in.Principal, rate, in.DurationMonths)
	if err != nil {
		return nil, err
	}

	l := &domain.Loan{
		UserID:              actor.ID,
		Amount:              in.Principal,
		InterestRate:        rate,
		DurationMonths:      in.DurationMonths,
		LoanType:            in.LoanType,
		Purpose:             strings.TrimSpace(in.Purpose),
		Status:              domain.StatusPending,
		CropSeason:          strings.TrimSpace(in.CropSeason),
		ExpectedHarvestDate: datatypes.Date(in.ExpectedHarvestDate.UTC()),
		CollateralValue:     in.CollateralValue,
		MonthlyPayment:      s.MonthlyPayment,
		TotalPayment:        s.TotalPayment,
		AmountPaid:          decimal.Zero,
	}
	if err := u.repo.Create(ctx, l); err != nil {
		return nil, err
	}

	return &ApplicationDTO{
		LoanID:         l.ID,
		Status:         string(l.Status),
		InterestRate:   rate.String(),
		MonthlyPayment: money(s.MonthlyPayment),
		TotalPayment:   money(s.TotalPayment),
	}, nil
}

// Get returns the loan with its payment history. Owner or admin only.
func (u *Usecase) Get(ctx context.Context, actor user.Actor, id uint64) (*LoanDetailDTO, error) {
	l, err := u.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	ps, err := u.payments.ListByLoanID(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	out := &LoanDetailDTO{LoanDTO: toLoanDTO(l), Payments: make([]PaymentDTO, 0, len(ps))}
	for i := range ps {
		out.Payments = append(out.Payments, toPaymentDTO(&ps[i]))
	}
	return out, nil
}

func (u *Usecase) ListMine(ctx context.Context, actor user.Actor) ([]LoanDTO, error) {
	return u.list(ctx, domain.ListFilter{UserID: actor.ID})
}

// ListAll is the admin view; an empty status lists everything.
func (u *Usecase) ListAll(ctx context.Context, actor user.Actor, status domain.Status) ([]LoanDTO, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if status != "" && !status.Valid() {
		return nil, domain.ErrInvalidApplication
	}
	return u.list(ctx, domain.ListFilter{Status: status})
}

func (u *Usecase) list(ctx context.Context, f domain.ListFilter) ([]LoanDTO, error) {
	ls, err := u.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]LoanDTO, 0, len(ls))
	for i := range ls {
		out = append(out, toLoanDTO(&ls[i]))
	}
	return out, nil
}

// Quote prices a hypothetical loan without storing anything.
func (u *Usecase) Quote(principal decimal.Decimal, months int, category domain.Category) (*QuoteDTO, error) {
	if months > domain.MaxDurationMonths {
		return nil, domain.ErrInvalidSchedule
	}
	rate := domain.RateFor(category)
	s, err := domain.ComputeSchedule(principal, rate, months)
	if err != nil {
		return nil, err
	}
	return &QuoteDTO{
		Principal:      money(principal),
		DurationMonths: months,
		LoanType:       string(category),
		InterestRate:   rate.String(),
		MonthlyPayment: money(s.MonthlyPayment),
		TotalPayment:   money(s.TotalPayment),
		TotalInterest:  money(s.TotalInterest(principal)),
	}, nil
}

// Schedule lays out the installments from the approval date, or from the
// application date while the loan is still pending.
func (u *Usecase) Schedule(ctx context.Context, actor user.Actor, id uint64) ([]InstallmentDTO, error) {
	l, err := u.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	start := l.CreatedAt
	if l.ApprovedDate != nil {
		start = *l.ApprovedDate
	}
	rows, err := domain.Amortize(l.Amount, l.InterestRate, l.DurationMonths, start)
	if err != nil {
		return nil, err
	}
	out := make([]InstallmentDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, InstallmentDTO{
			Number:    r.Number,
			DueDate:   r.DueDate.Format(dateLayout),
			Payment:   money(r.Payment),
			Interest:  money(r.Interest),
			Principal: money(r.Principal),
			Balance:   money(r.Balance),
		})
	}
	return out, nil
}

// SweepDefaults marks payable loans as defaulted once maturity plus the grace
// period has passed with money still owed. Returns how many were marked.
func (u *Usecase) SweepDefaults(ctx context.Context, graceDays int) (int, error) {
	now := u.now().UTC()
	// maturity is at least a month after approval, so this is a superset
	candidates, err := u.repo.ListOverdue(ctx, now.AddDate(0, -domain.MinDurationMonths, -graceDays))
	if err != nil {
		return 0, err
	}

	marked := 0
	for i := range candidates {
		if !overdue(&candidates[i], now, graceDays) {
			continue
		}
		changed := false
		err := u.uow.WithinLoanTx(ctx, candidates[i].ID, func(r uow.Repos, l *domain.Loan) error {
			// re-check under the lock; a payment may have landed meanwhile
			if !overdue(l, now, graceDays) {
				return nil
			}
			if err := l.Transition(domain.StatusDefaulted); err != nil {
				return err
			}
			changed = true
			return r.Loans.Save(ctx, l)
		})
		switch {
		case err == nil:
			if changed {
				marked++
			}
		case errors.Is(err, domain.ErrInvalidTransition), errors.Is(err, domain.ErrNotFound):
			// settled or removed since listing
		default:
			return marked, err
		}
	}
	if marked > 0 {
		zap.L().Info("loan: defaults swept", zap.Int("marked", marked), zap.Int("candidates", len(candidates)))
	}
	return marked, nil
}

func overdue(l *domain.Loan, now time.Time, graceDays int) bool {
	if !l.Status.Payable() || !l.Remaining().IsPositive() {
		return false
	}
	m := l.MaturityDate()
	return !m.IsZero() && now.After(m.AddDate(0, 0, graceDays))
}

func (u *Usecase) load(ctx context.Context, actor user.Actor, id uint64) (*domain.Loan, error) {
	l, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(l.UserID) {
		return nil, domain.ErrForbidden
	}
	return l, nil
}
