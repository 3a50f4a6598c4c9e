package settings

import (
	"context"

	"github.com/shopspring/decimal"
	pkgerrors "github.com/soldhq/sales-ledger/pkg/errors"
)

const (
	// KeyCommissionRate is the settings key holding the commission
	// percentage applied to new sales.
	KeyCommissionRate = "commission_rate"

	// DefaultCommissionRate is seeded once at first startup and used
	// as the read fallback should the entry ever be absent.
	DefaultCommissionRate = "10"
)

// Service exposes the configuration store operations. Rate changes
// apply to future sales only; stored commissions are never recomputed.
type Service interface {
	Get(ctx context.Context, key, fallback string) (string, error)
	Set(ctx context.Context, key, value string) error
	Seed(ctx context.Context) error
	CommissionRate(ctx context.Context) (decimal.Decimal, error)
	SetCommissionRate(ctx context.Context, rate decimal.Decimal) (decimal.Decimal, error)
}

type service struct {
	repo Repository
}

// NewService wires a settings service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "settings repository required")
	}
	return &service{repo: repo}, nil
}

// Get returns the stored value for key, or fallback when absent.
// Missing keys are never an error; only storage failures are.
func (s *service) Get(ctx context.Context, key, fallback string) (string, error) {
	setting, err := s.repo.Find(ctx, key)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read setting")
	}
	if setting == nil {
		return fallback, nil
	}
	return setting.Value, nil
}

// Set upserts value under key. Idempotent: repeating the same write
// leaves the same observable state.
func (s *service) Set(ctx context.Context, key, value string) error {
	if err := s.repo.Upsert(ctx, key, value); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write setting")
	}
	return nil
}

// Seed establishes the default commission rate at first startup.
// Once an entry exists it is never re-seeded.
func (s *service) Seed(ctx context.Context) error {
	if err := s.repo.InsertIfAbsent(ctx, KeyCommissionRate, DefaultCommissionRate); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "seed commission rate")
	}
	return nil
}

// CommissionRate returns the current rate percentage. An unparsable
// stored value coerces to zero, keeping ingestion permissive.
func (s *service) CommissionRate(ctx context.Context) (decimal.Decimal, error) {
	raw, err := s.Get(ctx, KeyCommissionRate, DefaultCommissionRate)
	if err != nil {
		return decimal.Zero, err
	}
	rate, parseErr := decimal.NewFromString(raw)
	if parseErr != nil {
		return decimal.Zero, nil
	}
	return rate, nil
}

// SetCommissionRate stores the new rate and returns it for display.
// Values are not clamped; the operator is trusted.
func (s *service) SetCommissionRate(ctx context.Context, rate decimal.Decimal) (decimal.Decimal, error) {
	if err := s.Set(ctx, KeyCommissionRate, rate.String()); err != nil {
		return decimal.Zero, err
	}
	return rate, nil
}
