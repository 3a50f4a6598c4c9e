package controllers

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/soldhq/sales-ledger/api/responses"
	"github.com/soldhq/sales-ledger/api/validators"
	pkgerrors "github.com/soldhq/sales-ledger/pkg/errors"
	"github.com/soldhq/sales-ledger/pkg/logger"
)

// RateService describes the configuration store operations used by
// the admin controllers.
type RateService interface {
	CommissionRate(ctx context.Context) (decimal.Decimal, error)
	SetCommissionRate(ctx context.Context, rate decimal.Decimal) (decimal.Decimal, error)
}

type rateRequest struct {
	Rate *decimal.Decimal `json:"rate" validate:"required"`
}

type rateResponse struct {
	Rate string `json:"rate"`
}

// AdminGetCommissionRate returns the current commission percentage.
func AdminGetCommissionRate(svc RateService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings service unavailable"))
			return
		}

		rate, err := svc.CommissionRate(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, rateResponse{Rate: rate.String()})
	}
}

// AdminSetCommissionRate stores a new commission percentage. Values
// are not clamped; the change applies to future sales only.
func AdminSetCommissionRate(svc RateService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings service unavailable"))
			return
		}

		var req rateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		rate, err := svc.SetCommissionRate(ctx, *req.Rate)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, rateResponse{Rate: rate.String()})
	}
}
