package summary

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/soldhq/sales-ledger/internal/ledger"
	pkgerrors "github.com/soldhq/sales-ledger/pkg/errors"
)

type fakeSummarizer struct {
	from, to int64
	summary  ledger.Summary
	err      error
}

func (f *fakeSummarizer) Summarize(ctx context.Context, from, to int64) (ledger.Summary, error) {
	f.from = from
	f.to = to
	return f.summary, f.err
}

func newTestService(fake *fakeSummarizer, now time.Time) *service {
	return &service{ledger: fake, now: func() time.Time { return now }}
}

func TestQueryDayWindow(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 30, 0, 0, time.UTC)
	fake := &fakeSummarizer{summary: ledger.Summary{Count: 2}}
	svc := newTestService(fake, now)

	result, err := svc.Query(context.Background(), "day")
	if err != nil {
		t.Fatalf("Query error: %v", err)
	}
	if result.Period != PeriodDay {
		t.Fatalf("unexpected period %q", result.Period)
	}
	wantFrom := time.Date(2025, time.June, 14, 12, 30, 0, 0, time.UTC).Unix()
	if fake.from != wantFrom {
		t.Fatalf("expected from %d, got %d", wantFrom, fake.from)
	}
	if fake.to != now.Unix() {
		t.Fatalf("expected to %d, got %d", now.Unix(), fake.to)
	}
}

func TestQueryWeekWindow(t *testing.T) {
	now := time.Date(2025, time.March, 3, 8, 0, 0, 0, time.UTC)
	fake := &fakeSummarizer{}
	svc := newTestService(fake, now)

	if _, err := svc.Query(context.Background(), "week"); err != nil {
		t.Fatalf("Query error: %v", err)
	}
	wantFrom := time.Date(2025, time.February, 24, 8, 0, 0, 0, time.UTC).Unix()
	if fake.from != wantFrom {
		t.Fatalf("expected from %d, got %d", wantFrom, fake.from)
	}
}

func TestQueryMonthWindow(t *testing.T) {
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	fake := &fakeSummarizer{}
	svc := newTestService(fake, now)

	if _, err := svc.Query(context.Background(), "month"); err != nil {
		t.Fatalf("Query error: %v", err)
	}
	wantFrom := time.Date(2025, time.May, 15, 0, 0, 0, 0, time.UTC).Unix()
	if fake.from != wantFrom {
		t.Fatalf("expected from %d, got %d", wantFrom, fake.from)
	}
}

func TestQueryInvalidPeriod(t *testing.T) {
	svc := newTestService(&fakeSummarizer{}, time.Now())

	_, err := svc.Query(context.Background(), "fortnight")
	if err == nil {
		t.Fatal("expected error for unknown period")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestQueryStorageErrorSurfaces(t *testing.T) {
	fake := &fakeSummarizer{err: errors.New("db down")}
	svc := newTestService(fake, time.Now())

	_, err := svc.Query(context.Background(), "day")
	if err == nil {
		t.Fatal("expected storage error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestQueryPassesThroughTotals(t *testing.T) {
	fake := &fakeSummarizer{summary: ledger.Summary{
		Count:           3,
		TotalAmount:     decimal.NewFromInt(600),
		TotalCommission: decimal.NewFromInt(60),
	}}
	svc := newTestService(fake, time.Now())

	result, err := svc.Query(context.Background(), "month")
	if err != nil {
		t.Fatalf("Query error: %v", err)
	}
	if result.Count != 3 || !result.TotalAmount.Equal(decimal.NewFromInt(600)) || !result.TotalCommission.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestWindowStartMonthEndClamps(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "march 31 clamps to feb 28",
			now:  time.Date(2025, time.March, 31, 10, 0, 0, 0, time.UTC),
			want: time.Date(2025, time.February, 28, 10, 0, 0, 0, time.UTC),
		},
		{
			name: "march 31 leap year clamps to feb 29",
			now:  time.Date(2024, time.March, 31, 10, 0, 0, 0, time.UTC),
			want: time.Date(2024, time.February, 29, 10, 0, 0, 0, time.UTC),
		},
		{
			name: "july 31 clamps to june 30",
			now:  time.Date(2025, time.July, 31, 23, 59, 59, 0, time.UTC),
			want: time.Date(2025, time.June, 30, 23, 59, 59, 0, time.UTC),
		},
		{
			name: "january rolls into previous year",
			now:  time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC),
			want: time.Date(2024, time.December, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "mid month unchanged",
			now:  time.Date(2025, time.August, 12, 6, 0, 0, 0, time.UTC),
			want: time.Date(2025, time.July, 12, 6, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := WindowStart(PeriodMonth, tc.now)
			if !got.Equal(tc.want) {
				t.Fatalf("WindowStart(month, %s) = %s, want %s", tc.now, got, tc.want)
			}
		})
	}
}

func TestParsePeriodNormalizesInput(t *testing.T) {
	for raw, want := range map[string]Period{" day ": PeriodDay, "WEEK": PeriodWeek, "Month": PeriodMonth} {
		got, err := ParsePeriod(raw)
		if err != nil {
			t.Fatalf("ParsePeriod(%q) error: %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParsePeriod(%q) = %q, want %q", raw, got, want)
		}
	}
}
