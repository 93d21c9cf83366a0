package uowmock

import (
	"context"
	"errors"
	"testing"

	"smartfarm-credit/internal/domain/loan"
	"smartfarm-credit/internal/domain/uow"
	"smartfarm-credit/internal/testutil/reviewmock"
	"smartfarm-credit/internal/testutil/loanmock"
)

func TestUoW_WithinTx_Happy(t *testing.T) {
	ctx := context.Background()

	loans := &loanmock.Repo{}
	reviews := &reviewmock.Repo{}
	repos := uow.Repos{Loans: loans, Reviews: reviews}

	innerCalled := false
	m := &UoW{
		WithinTxFn: func(gotCtx context.Context, fn func(r uow.Repos) error) error {
			if gotCtx != ctx {
				t.Fatalf("WithinTx: ctx mismatch")
			}
			if fn == nil {
				t.Fatalf("WithinTx: fn is nil")
			}
			// simulate transaction body
			return fn(repos)
		},
	}

	err := m.WithinTx(ctx, func(r uow.Repos) error {
		innerCalled = true
		if r.Loans != loans || r.Reviews != reviews {
			t.Fatalf("WithinTx: repos not forwarded correctly")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithinTx: unexpected err: %v", err)
	}
	if !innerCalled {
		t.Fatalf("WithinTx: inner fn not called")
	}
}

func TestUoW_WithinTx_PropagatesError(t *testing.T) {
	ctx := context.Background()
	sentinel := errors.New("boom")

	m := &UoW{
		WithinTxFn: func(context.Context, func(uow.Repos) error) error {
			return sentinel
		},
	}
	if err := m.WithinTx(ctx, func(uow.Repos) error { return nil }); !errors.Is(err, sentinel) {
		t.Fatalf("WithinTx: want %v, got %v", sentinel, err)
	}
}

func TestUoW_WithinTx_Default_Unimplemented(t *testing.T) {
	ctx := context.Background()
	m := &UoW{} // no funcs set
	if err := m.WithinTx(ctx, func(uow.Repos) error { return nil }); !errors.Is(err, errUnimplemented) {
		t.Fatalf("WithinTx default: want errUnimplemented, got %v", err)
	}
}

func TestUoW_WithinLoanTx_Happy(t *testing.T) {
	ctx := context.Background()

	loans := &loanmock.Repo{}
	reviews := &reviewmock.Repo{}
	repos := uow.Repos{Loans: loans, Reviews: reviews}
	lock := &loan.Loan{ID: 7}

	innerCalled := false
	m := &UoW{
		WithinLoanTxFn: func(gotCtx context.Context, loanID uint64, fn func(r uow.Repos, l *loan.Loan) error) error {
			if gotCtx != ctx {
				t.Fatalf("WithinLoanTx: ctx mismatch")
			}
			if loanID != 7 {
				t.Fatalf("WithinLoanTx: loanID mismatch, got %d", loanID)
			}
			return fn(repos, lock)
		},
	}

	err := m.WithinLoanTx(ctx, 7, func(r uow.Repos, l *loan.Loan) error {
		innerCalled = true
		if r.Loans != loans || r.Reviews != reviews {
			t.Fatalf("WithinLoanTx: repos not forwarded")
		}
		if l != lock || l.ID != 7 {
			t.Fatalf("WithinLoanTx: loan not forwarded correctly: %+v", l)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithinLoanTx: unexpected err: %v", err)
	}
	if !innerCalled {
		t.Fatalf("WithinLoanTx: inner fn not called")
	}
}

func TestUoW_WithinLoanTx_PropagatesError(t *testing.T) {
	ctx := context.Background()
	sentinel := errors.New("stop")

	m := &UoW{
		WithinLoanTxFn: func(context.Context, uint64, func(uow.Repos, *loan.Loan) error) error {
			return sentinel
		},
	}
	if err := m.WithinLoanTx(ctx, 99, func(uow.Repos, *loan.Loan) error { return nil }); !errors.Is(err, sentinel) {
		t.Fatalf("WithinLoanTx: want %v, got %v", sentinel, err)
	}
}

func TestUoW_Default_Unimplemented_WithinLoanTx(t *testing.T) {
	ctx := context.Background()
	m := &UoW{} // no funcs set
	if err := m.WithinLoanTx(ctx, 99, func(uow.Repos, *loan.Loan) error { return nil }); !errors.Is(err, errUnimplemented) {
		t.Fatalf("WithinLoanTx default: want errUnimplemented, got %v", err)
	}
}

func TestUoW_FluentSetters_And_Reset(t *testing.T) {
	m := New()
	if m.WithinTxFn != nil || m.WithinLoanTxFn != nil {
		t.Fatalf("New should start with nil funcs")
	}

	// set via fluent setters
	m.WithWithinTx(func(context.Context, func(uow.Repos) error) error { return nil }).
		WithWithinLoanTx(func(context.Context, uint64, func(uow.Repos, *loan.Loan) error) error { return nil })

	if m.WithinTxFn == nil || m.WithinLoanTxFn == nil {
		t.Fatalf("fluent setters didn't assign funcs")
	}

	// reset clears funcs
	m.Reset()
	if m.WithinTxFn != nil || m.WithinLoanTxFn != nil {
		t.Fatalf("Reset should clear function fields")
	}
}

func TestPassthrough_LocksThenRuns(t *testing.T) {
	ctx := context.Background()
	locked := &loan.Loan{ID: 3}
	loans := &loanmock.Repo{
		GetByIDForUpdateFn: func(_ context.Context, id uint64) (*loan.Loan, error) {
			if id != 3 {
				return nil, loan.ErrNotFound
			}
			return locked, nil
		},
	}
	m := Passthrough(uow.Repos{Loans: loans})

	var got *loan.Loan
	if err := m.WithinLoanTx(ctx, 3, func(_ uow.Repos, l *loan.Loan) error { got = l; return nil }); err != nil {
		t.Fatalf("WithinLoanTx: %v", err)
	}
	if got != locked {
		t.Fatalf("locked loan not forwarded")
	}
	if err := m.WithinLoanTx(ctx, 4, func(uow.Repos, *loan.Loan) error { return nil }); !errors.Is(err, loan.ErrNotFound) {
		t.Fatalf("missing loan: want ErrNotFound, got %v", err)
	}
	if err := m.WithinTx(ctx, func(r uow.Repos) error {
		if r.Loans != loans {
			t.Fatalf("repos not forwarded")
		}
		return nil
	}); err != nil {
		t.Fatalf("WithinTx: %v", err)
	}
}
