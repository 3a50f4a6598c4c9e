package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/soldhq/sales-ledger/api/responses"
	summarysvc "github.com/soldhq/sales-ledger/internal/summary"
	pkgerrors "github.com/soldhq/sales-ledger/pkg/errors"
	"github.com/soldhq/sales-ledger/pkg/logger"
)

// SummaryService describes the query operation used by the controller.
type SummaryService interface {
	Query(ctx context.Context, rawPeriod string) (summarysvc.Result, error)
}

// SalesSummary returns aggregate totals for a named period
// (day, week or month).
func SalesSummary(svc SummaryService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "summary service unavailable"))
			return
		}

		result, err := svc.Query(ctx, chi.URLParam(r, "period"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
