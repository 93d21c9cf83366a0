package review

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"smartfarm-credit/internal/adapter/persistence"
	"smartfarm-credit/internal/domain/loan"
	domainReview "smartfarm-credit/internal/domain/review"
	"smartfarm-credit/internal/domain/uow"
	"smartfarm-credit/internal/domain/user"
	"smartfarm-credit/internal/testutil/loanmock"
	"smartfarm-credit/internal/testutil/reviewmock"
	"smartfarm-credit/internal/testutil/sqlitedb"
	"smartfarm-credit/internal/testutil/uowmock"
)

var (
	admin  = user.Actor{ID: 1, Role: user.RoleAdmin}
	farmer = user.Actor{ID: 10, Role: user.RoleFarmer}
)

func TestUsecase_Approve(t *testing.T) {
	now := time.Date(2025, 9, 6, 10, 0, 0, 0, time.UTC)

	newPendingLoan := func() *loan.Loan {
		return &loan.Loan{ID: 777, UserID: 10, Status: loan.StatusPending}
	}

	tests := []struct {
		name    string
		actor   user.Actor
		setup   func() *Usecase
		wantErr error
		check   func(*DecisionDTO) error
	}{
		{
			name:  "happy path pending -> approved",
			actor: admin,
			setup: func() *Usecase {
				loans := &loanmock.Repo{
					GetByIDForUpdateFn: func(ctx context.Context, id uint64) (*loan.Loan, error) {
						return newPendingLoan(), nil
					},
					SaveFn: func(ctx context.Context, l *loan.Loan) error {
						if l.Status != loan.StatusApproved {
							t.Fatalf("expected status=approved, got %s", l.Status)
						}
						if l.ApprovedBy == nil || *l.ApprovedBy != admin.ID || l.ApprovedDate == nil {
							t.Fatalf("approver not recorded: %+v", l)
						}
						return nil
					},
				}
				reviews := &reviewmock.Repo{
					CreateFn: func(ctx context.Context, r *domainReview.Review) error {
						if r.LoanID != 777 || r.Outcome != domainReview.OutcomeApproved || len(r.ReviewID) != 32 {
							t.Fatalf("review mismatch: %+v", r)
						}
						return nil
					},
				}
				uc := NewUsecase(uowmock.Passthrough(uow.Repos{Loans: loans, Reviews: reviews}))
				uc.now = func() time.Time { return now }
				return uc
			},
			check: func(dto *DecisionDTO) error {
				if dto == nil {
					return errors.New("dto is nil")
				}
				if dto.LoanID != 777 || dto.Status != "approved" || !dto.DecidedAt.Equal(now) {
					return errors.New("dto mismatch")
				}
				return nil
			},
		},
		{
			name:  "non-admin",
			actor: farmer,
			setup: func() *Usecase {
				return NewUsecase(uowmock.New())
			},
			wantErr: loan.ErrForbidden,
		},
		{
			name:  "loan not found",
			actor: admin,
			setup: func() *Usecase {
				loans := &loanmock.Repo{
					GetByIDForUpdateFn: func(context.Context, uint64) (*loan.Loan, error) {
						return nil, loan.ErrNotFound
					},
				}
				return NewUsecase(uowmock.Passthrough(uow.Repos{Loans: loans, Reviews: &reviewmock.Repo{}}))
			},
			wantErr: loan.ErrNotFound,
		},
		{
			name:  "already approved state",
			actor: admin,
			setup: func() *Usecase {
				loans := &loanmock.Repo{
					GetByIDForUpdateFn: func(context.Context, uint64) (*loan.Loan, error) {
						return &loan.Loan{ID: 1, Status: loan.StatusApproved}, nil
					},
					SaveFn: func(context.Context, *loan.Loan) error {
						t.Fatalf("Save must not be called")
						return nil
					},
				}
				return NewUsecase(uowmock.Passthrough(uow.Repos{Loans: loans, Reviews: &reviewmock.Repo{}}))
			},
			wantErr: loan.ErrAlreadyApproved,
		},
		{
			name:  "terminal state",
			actor: admin,
			setup: func() *Usecase {
				loans := &loanmock.Repo{
					GetByIDForUpdateFn: func(context.Context, uint64) (*loan.Loan, error) {
						return &loan.Loan{ID: 1, Status: loan.StatusCompleted}, nil
					},
				}
				return NewUsecase(uowmock.Passthrough(uow.Repos{Loans: loans, Reviews: &reviewmock.Repo{}}))
			},
			wantErr: loan.ErrInvalidTransition,
		},
		{
			name:  "duplicate review exists",
			actor: admin,
			setup: func() *Usecase {
				loans := &loanmock.Repo{
					GetByIDForUpdateFn: func(context.Context, uint64) (*loan.Loan, error) {
						return newPendingLoan(), nil
					},
				}
				reviews := &reviewmock.Repo{
					GetByLoanIDFn: func(context.Context, uint64) (*domainReview.Review, error) {
						return &domainReview.Review{LoanID: 777, Outcome: domainReview.OutcomeApproved}, nil
					},
					CreateFn: func(context.Context, *domainReview.Review) error {
						t.Fatalf("Create must not be called")
						return nil
					},
				}
				return NewUsecase(uowmock.Passthrough(uow.Repos{Loans: loans, Reviews: reviews}))
			},
			wantErr: loan.ErrAlreadyApproved,
		},
		{
			name:  "review lookup error",
			actor: admin,
			setup: func() *Usecase {
				loans := &loanmock.Repo{
					GetByIDForUpdateFn: func(context.Context, uint64) (*loan.Loan, error) {
						return newPendingLoan(), nil
					},
				}
				reviews := &reviewmock.Repo{
					GetByLoanIDFn: func(context.Context, uint64) (*domainReview.Review, error) {
						return nil, errors.New("db blew up")
					},
				}
				return NewUsecase(uowmock.Passthrough(uow.Repos{Loans: loans, Reviews: reviews}))
			},
			wantErr: errors.New("db blew up"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := tt.setup()
			dto, err := uc.Approve(context.Background(), tt.actor, 777)
			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("want error %v, got nil", tt.wantErr)
				}
				if !errors.Is(err, tt.wantErr) && err.Error() != tt.wantErr.Error() {
					t.Fatalf("want %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if tt.check != nil {
				if e := tt.check(dto); e != nil {
					t.Fatal(e)
				}
			}
		})
	}
}

func TestUsecase_Reject(t *testing.T) {
	var saved *loan.Loan
	loans := &loanmock.Repo{
		GetByIDForUpdateFn: func(context.Context, uint64) (*loan.Loan, error) {
			return &loan.Loan{ID: 5, Status: loan.StatusPending}, nil
		},
		SaveFn: func(_ context.Context, l *loan.Loan) error { saved = l; return nil },
	}
	uc := NewUsecase(uowmock.Passthrough(uow.Repos{Loans: loans, Reviews: &reviewmock.Repo{}}))
	ctx := context.Background()

	if _, err := uc.Reject(ctx, admin, 5, "   "); !errors.Is(err, loan.ErrReasonRequired) {
		t.Fatalf("blank reason: want ErrReasonRequired, got %v", err)
	}
	if _, err := uc.Reject(ctx, farmer, 5, "no collateral"); !errors.Is(err, loan.ErrForbidden) {
		t.Fatalf("farmer: want ErrForbidden, got %v", err)
	}
	if _, err := uc.Reject(ctx, farmer, 5, ""); !errors.Is(err, loan.ErrForbidden) {
		t.Fatalf("farmer with blank reason: want ErrForbidden, got %v", err)
	}
	if saved != nil {
		t.Fatalf("refused calls saved the loan: %+v", saved)
	}

	dto, err := uc.Reject(ctx, admin, 5, " insufficient collateral ")
	if err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if dto.Status != "rejected" || dto.Reason == nil || *dto.Reason != "insufficient collateral" {
		t.Fatalf("dto = %+v", dto)
	}
	if saved.RejectionReason == nil || saved.ApprovedDate == nil || saved.ApprovedBy != nil {
		t.Fatalf("saved = %+v", saved)
	}
}

func TestUsecase_Disburse(t *testing.T) {
	status := loan.StatusApproved
	loans := &loanmock.Repo{
		GetByIDForUpdateFn: func(context.Context, uint64) (*loan.Loan, error) {
			return &loan.Loan{ID: 5, Status: status}, nil
		},
	}
	uc := NewUsecase(uowmock.Passthrough(uow.Repos{Loans: loans}))
	ctx := context.Background()

	dto, err := uc.Disburse(ctx, admin, 5)
	if err != nil || dto.Status != "active" {
		t.Fatalf("Disburse = %+v, %v", dto, err)
	}

	status = loan.StatusPending
	if _, err := uc.Disburse(ctx, admin, 5); !errors.Is(err, loan.ErrInvalidTransition) {
		t.Fatalf("pending: want ErrInvalidTransition, got %v", err)
	}
	if _, err := uc.Disburse(ctx, farmer, 5); !errors.Is(err, loan.ErrForbidden) {
		t.Fatalf("farmer: want ErrForbidden, got %v", err)
	}
}

// Against a real database: the second approval observes the same status and
// changes nothing.
func TestUsecase_Approve_Twice_SQLite(t *testing.T) {
	db := sqlitedb.Open(t)
	ctx := context.Background()
	loans := persistence.NewLoanRepository(db)

	l := &loan.Loan{
		UserID: 10, Amount: decimal.NewFromInt(1200), InterestRate: decimal.Zero, DurationMonths: 12,
		LoanType: loan.CategorySeasonal, Status: loan.StatusPending, CropSeason: "dry",
		MonthlyPayment: decimal.NewFromInt(100), TotalPayment: decimal.NewFromInt(1200),
	}
	if err := loans.Create(ctx, l); err != nil {
		t.Fatalf("seed: %v", err)
	}

	uc := NewUsecase(persistence.NewGormUoW(db))
	first, err := uc.Approve(ctx, admin, l.ID)
	if err != nil || first.Status != "approved" {
		t.Fatalf("first approve = %+v, %v", first, err)
	}
	afterFirst, _ := loans.GetByID(ctx, l.ID)

	if _, err := uc.Approve(ctx, admin, l.ID); !errors.Is(err, loan.ErrAlreadyApproved) {
		t.Fatalf("second approve: want ErrAlreadyApproved, got %v", err)
	}
	afterSecond, _ := loans.GetByID(ctx, l.ID)
	if afterSecond.Status != loan.StatusApproved || !afterSecond.UpdatedAt.Equal(afterFirst.UpdatedAt) {
		t.Fatalf("row changed by second approve: %+v", afterSecond)
	}

	if _, err := uc.Reject(ctx, admin, l.ID, "too late"); !errors.Is(err, loan.ErrInvalidTransition) {
		t.Fatalf("reject after approve: want ErrInvalidTransition, got %v", err)
	}
	rv, err := persistence.NewReviewRepository(db).GetByLoanID(ctx, l.ID)
	if err != nil || rv.ReviewID != first.ReviewID {
		t.Fatalf("review = %+v, %v", rv, err)
	}
}

// A review row that already exists for a loan still marked pending wins over
// the loan status: the decision is refused and nothing is written.
func TestUsecase_Decide_ExistingReviewWins_SQLite(t *testing.T) {
	tests := []struct {
		name    string
		prior   domainReview.Outcome
		decide  func(uc *Usecase, loanID uint64) error
		wantErr error
	}{
		{
			name:  "approve over prior approval",
			prior: domainReview.OutcomeApproved,
			decide: func(uc *Usecase, id uint64) error {
				_, err := uc.Approve(context.Background(), admin, id)
				return err
			},
			wantErr: loan.ErrAlreadyApproved,
		},
		{
			name:  "reject over prior rejection",
			prior: domainReview.OutcomeRejected,
			decide: func(uc *Usecase, id uint64) error {
				_, err := uc.Reject(context.Background(), admin, id, "duplicate")
				return err
			},
			wantErr: loan.ErrInvalidTransition,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := sqlitedb.Open(t)
			ctx := context.Background()
			loans := persistence.NewLoanRepository(db)
			reviews := persistence.NewReviewRepository(db)

			l := &loan.Loan{
				UserID: 10, Amount: decimal.NewFromInt(1200), InterestRate: decimal.Zero, DurationMonths: 12,
				LoanType: loan.CategorySeasonal, Status: loan.StatusPending, CropSeason: "dry",
				MonthlyPayment: decimal.NewFromInt(100), TotalPayment: decimal.NewFromInt(1200),
			}
			if err := loans.Create(ctx, l); err != nil {
				t.Fatalf("seed loan: %v", err)
			}
			prior := &domainReview.Review{
				ReviewID: "0123456789abcdef0123456789abcdef", LoanID: l.ID, Outcome: tt.prior,
				ReviewerID: 2, DecidedAt: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
			}
			if err := reviews.Create(ctx, prior); err != nil {
				t.Fatalf("seed review: %v", err)
			}

			err := tt.decide(NewUsecase(persistence.NewGormUoW(db)), l.ID)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("want %v, got %v", tt.wantErr, err)
			}

			got, _ := loans.GetByID(ctx, l.ID)
			if got.Status != loan.StatusPending || got.ApprovedDate != nil || got.ApprovedBy != nil {
				t.Fatalf("loan changed: %+v", got)
			}
			rv, err := reviews.GetByLoanID(ctx, l.ID)
			if err != nil || rv.ReviewID != prior.ReviewID || rv.ReviewerID != 2 {
				t.Fatalf("review = %+v, %v", rv, err)
			}
		})
	}
}
