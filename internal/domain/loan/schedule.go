package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	MinDurationMonths = 1
	MaxDurationMonths = 120

	divPrecision = 16
	powPrecision = 24
)

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)

	// Annual percent by category; not user input.
	rateTable = map[Category]decimal.Decimal{
		CategorySeasonal:  decimal.RequireFromString("7.5"),
		CategoryEquipment: decimal.RequireFromString("8.5"),
		CategoryLand:      decimal.RequireFromString("6.5"),
		CategoryEmergency: decimal.RequireFromString("9.5"),
	}
	defaultRate = decimal.RequireFromString("8.5")
)

// RateFor returns the annual interest rate (percent) for a loan category.
func RateFor(c Category) decimal.Decimal {
	if r, ok := rateTable[c]; ok {
		return r
	}
	return defaultRate
}

func (c Category) Valid() bool {
	_, ok := rateTable[c]
	return ok
}

type Schedule struct {
	MonthlyPayment decimal.Decimal
	TotalPayment   decimal.Decimal
}

// TotalInterest is what the borrower pays on top of the principal.
func (s Schedule) TotalInterest(principal decimal.Decimal) decimal.Decimal {
	return s.TotalPayment.Sub(principal)
}

// ComputeSchedule applies the fixed-rate amortization formula
//
//	M = P*r*(1+r)^n / ((1+r)^n - 1),  r = annual/100/12
//
// with M = P/n at a zero rate. Results keep full precision.
func ComputeSchedule(principal, annualRatePercent decimal.Decimal, months int) (Schedule, error) {
	if months < MinDurationMonths || !principal.IsPositive() || annualRatePercent.IsNegative() {
		return Schedule{}, ErrInvalidSchedule
	}
	n := decimal.NewFromInt(int64(months))

	if annualRatePercent.IsZero() {
		monthly := principal.DivRound(n, divPrecision)
		return Schedule{MonthlyPayment: monthly, TotalPayment: monthly.Mul(n)}, nil
	}

	r := annualRatePercent.DivRound(hundred, divPrecision).DivRound(twelve, divPrecision)
	f, err := decimal.NewFromInt(1).Add(r).PowWithPrecision(n, powPrecision)
	if err != nil {
		return Schedule{}, ErrInvalidSchedule
	}
	monthly := principal.Mul(r).Mul(f).DivRound(f.Sub(decimal.NewFromInt(1)), divPrecision)
	return Schedule{MonthlyPayment: monthly, TotalPayment: monthly.Mul(n)}, nil
}

type Installment struct {
	Number    int
	DueDate   time.Time
	Payment   decimal.Decimal
	Interest  decimal.Decimal
	Principal decimal.Decimal
	Balance   decimal.Decimal
}

// Amortize splits the schedule into monthly installments starting one month
// after start. Amounts are in cents; the last installment clears the balance.
func Amortize(principal, annualRatePercent decimal.Decimal, months int, start time.Time) ([]Installment, error) {
	s, err := ComputeSchedule(principal, annualRatePercent, months)
	if err != nil {
		return nil, err
	}
	r := annualRatePercent.DivRound(hundred, divPrecision).DivRound(twelve, divPrecision)
	payment := s.MonthlyPayment.Round(2)
	balance := principal.Round(2)

	out := make([]Installment, 0, months)
	for i := 1; i <= months; i++ {
		interest := balance.Mul(r).Round(2)
		princ := payment.Sub(interest)
		if i == months || princ.GreaterThan(balance) {
			princ = balance
		}
		balance = balance.Sub(princ)
		out = append(out, Installment{
			Number:    i,
			DueDate:   start.AddDate(0, i, 0),
			Payment:   princ.Add(interest),
			Interest:  interest,
			Principal: princ,
			Balance:   balance,
		})
	}
	return out, nil
}
