package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/soldhq/sales-ledger/api/controllers"
	webhookcontrollers "github.com/soldhq/sales-ledger/api/controllers/webhooks"
	"github.com/soldhq/sales-ledger/api/middleware"
	"github.com/soldhq/sales-ledger/pkg/config"
	"github.com/soldhq/sales-ledger/pkg/db"
	"github.com/soldhq/sales-ledger/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	registry *prometheus.Registry,
	ingestService webhookcontrollers.SalesIngestService,
	summaryService controllers.SummaryService,
	rateService controllers.RateService,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/webhooks/sales", webhookcontrollers.SalesWebhook(ingestService, logg))
		r.Get("/summary/{period}", controllers.SalesSummary(summaryService, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.AdminToken(cfg.Admin.Token, logg))
		r.Get("/commission-rate", controllers.AdminGetCommissionRate(rateService, logg))
		r.Put("/commission-rate", controllers.AdminSetCommissionRate(rateService, logg))
	})

	return r
}
