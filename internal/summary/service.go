package summary

import (
	"context"
	"time"

	"github.com/soldhq/sales-ledger/internal/ledger"
	pkgerrors "github.com/soldhq/sales-ledger/pkg/errors"
)

// Summarizer is the slice of the ledger this service reads.
type Summarizer interface {
	Summarize(ctx context.Context, from, to int64) (ledger.Summary, error)
}

// Result is a period summary shaped for presentation by an adapter.
type Result struct {
	Period          Period `json:"period"`
	ledger.Summary
}

// Service answers aggregate queries over named time windows.
type Service interface {
	Query(ctx context.Context, rawPeriod string) (Result, error)
}

type service struct {
	ledger Summarizer
	now    func() time.Time
}

// NewService wires a summary service over the provided ledger.
func NewService(summarizer Summarizer) (Service, error) {
	if summarizer == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "ledger summarizer required")
	}
	return &service{ledger: summarizer, now: time.Now}, nil
}

// Query computes the closed window [start, now] for the named period
// and aggregates ledger records within it.
func (s *service) Query(ctx context.Context, rawPeriod string) (Result, error) {
	period, err := ParsePeriod(rawPeriod)
	if err != nil {
		return Result{}, err
	}

	now := s.now().UTC()
	start := WindowStart(period, now)

	agg, err := s.ledger.Summarize(ctx, start.Unix(), now.Unix())
	if err != nil {
		return Result{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "summarize ledger")
	}

	return Result{Period: period, Summary: agg}, nil
}
