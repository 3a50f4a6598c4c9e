package controllers

import (
	"net/http"

	"github.com/soldhq/sales-ledger/api/responses"
	"github.com/soldhq/sales-ledger/pkg/config"
	"github.com/soldhq/sales-ledger/pkg/db"
	pkgerrors "github.com/soldhq/sales-ledger/pkg/errors"
	"github.com/soldhq/sales-ledger/pkg/logger"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-SalesLedger-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		w.Header().Set("X-SalesLedger-Env", cfg.App.Env)

		if dbP == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "database unavailable"))
			return
		}
		if err := dbP.Ping(ctx); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database ping"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
