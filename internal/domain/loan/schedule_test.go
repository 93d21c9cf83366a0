package loan

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestComputeSchedule_KnownCases(t *testing.T) {
	tests := []struct {
		name        string
		principal   string
		rate        string
		months      int
		wantMonthly string
		wantTotal   string
	}{
		{"zero rate", "1200", "0", 12, "100.00", "1200.00"},
		{"equipment 12m", "10000", "8.5", 12, "872.20", "10466.40"},
		{"single month", "5000", "7.5", 1, "5031.25", "5031.25"},
		{"twelve percent", "1000", "12", 12, "88.85", "1066.19"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			s, err := ComputeSchedule(d(tt.principal), d(tt.rate), tt.months)
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if got := s.MonthlyPayment.StringFixed(2); got != tt.wantMonthly {
				t.Fatalf("monthly = %s, want %s", got, tt.wantMonthly)
			}
			if got := s.TotalPayment.StringFixed(2); got != tt.wantTotal {
				// total keeps full precision; allow a cent of drift from rounding the monthly
				diff := s.TotalPayment.Sub(d(tt.wantTotal)).Abs()
				if diff.GreaterThan(d("0.01").Mul(decimal.NewFromInt(int64(tt.months)))) {
					t.Fatalf("total = %s, want %s", got, tt.wantTotal)
				}
			}
		})
	}
}

func TestComputeSchedule_Properties(t *testing.T) {
	for _, p := range []string{"1000", "12345.67", "500000"} {
		for _, r := range []string{"0", "0.5", "6.5", "9.5", "24"} {
			for _, n := range []int{1, 2, 6, 12, 36, 120} {
				s, err := ComputeSchedule(d(p), d(r), n)
				if err != nil {
					t.Fatalf("P=%s r=%s n=%d: %v", p, r, n, err)
				}
				if !s.MonthlyPayment.IsPositive() {
					t.Fatalf("P=%s r=%s n=%d: monthly not positive: %s", p, r, n, s.MonthlyPayment)
				}
				want := s.MonthlyPayment.Mul(decimal.NewFromInt(int64(n)))
				if !s.TotalPayment.Equal(want) {
					t.Fatalf("P=%s r=%s n=%d: total %s != monthly*n %s", p, r, n, s.TotalPayment, want)
				}
				if s.TotalPayment.LessThan(d(p).Sub(d("0.000001"))) {
					t.Fatalf("P=%s r=%s n=%d: total %s below principal", p, r, n, s.TotalPayment)
				}
			}
		}
	}
}

func TestComputeSchedule_InvalidInput(t *testing.T) {
	cases := []struct {
		p, r string
		n    int
	}{
		{"1000", "8.5", 0},
		{"0", "8.5", 12},
		{"-5", "8.5", 12},
		{"1000", "-1", 12},
	}
	for _, c := range cases {
		if _, err := ComputeSchedule(d(c.p), d(c.r), c.n); !errors.Is(err, ErrInvalidSchedule) {
			t.Fatalf("P=%s r=%s n=%d: want ErrInvalidSchedule, got %v", c.p, c.r, c.n, err)
		}
	}
}

func TestRateFor(t *testing.T) {
	want := map[Category]string{
		CategorySeasonal:  "7.5",
		CategoryEquipment: "8.5",
		CategoryLand:      "6.5",
		CategoryEmergency: "9.5",
		Category("orchard"): "8.5",
	}
	for c, w := range want {
		if got := RateFor(c); !got.Equal(d(w)) {
			t.Fatalf("RateFor(%s) = %s, want %s", c, got, w)
		}
	}
	if Category("orchard").Valid() {
		t.Fatal("unknown category reported valid")
	}
}

func TestAmortize_ClearsBalance(t *testing.T) {
	start := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	rows, err := Amortize(d("10000"), d("8.5"), 12, start)
	if err != nil {
		t.Fatalf("Amortize: %v", err)
	}
	if len(rows) != 12 {
		t.Fatalf("len = %d, want 12", len(rows))
	}
	if !rows[0].DueDate.Equal(start.AddDate(0, 1, 0)) {
		t.Fatalf("first due date = %v", rows[0].DueDate)
	}
	if got := rows[0].Interest.StringFixed(2); got != "70.83" {
		t.Fatalf("first interest = %s, want 70.83", got)
	}
	principal := decimal.Zero
	for _, r := range rows {
		principal = principal.Add(r.Principal)
		if !r.Payment.Equal(r.Principal.Add(r.Interest)) {
			t.Fatalf("installment %d: payment != principal+interest", r.Number)
		}
	}
	if !principal.Equal(d("10000")) {
		t.Fatalf("principal sum = %s, want 10000", principal)
	}
	if !rows[11].Balance.IsZero() {
		t.Fatalf("final balance = %s, want 0", rows[11].Balance)
	}
}

func TestAmortize_ZeroRate(t *testing.T) {
	rows, err := Amortize(d("1200"), decimal.Zero, 12, time.Now())
	if err != nil {
		t.Fatalf("Amortize: %v", err)
	}
	for _, r := range rows {
		if !r.Interest.IsZero() || r.Payment.StringFixed(2) != "100.00" {
			t.Fatalf("installment %d = %+v", r.Number, r)
		}
	}
}
