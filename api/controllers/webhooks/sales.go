package webhooks

import (
	"context"
	"net/http"

	"github.com/soldhq/sales-ledger/api/responses"
	"github.com/soldhq/sales-ledger/api/validators"
	"github.com/soldhq/sales-ledger/internal/ingest"
	"github.com/soldhq/sales-ledger/pkg/db/models"
	pkgerrors "github.com/soldhq/sales-ledger/pkg/errors"
	"github.com/soldhq/sales-ledger/pkg/logger"
)

// SalesIngestService describes the ingestion operation used by the
// webhook controller.
type SalesIngestService interface {
	IngestWebhook(ctx context.Context, payload ingest.WebhookPayload) (*models.Sale, error)
}

type saleAck struct {
	ID         int64  `json:"id"`
	Product    string `json:"product"`
	Amount     string `json:"amount"`
	Commission string `json:"commission"`
}

// SalesWebhook handles inbound sale notifications. The shared-secret
// check and field validation live in the ingestion service; this
// adapter only decodes the body and maps error codes to statuses.
func SalesWebhook(svc SalesIngestService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ingest service unavailable"))
			return
		}

		var payload ingest.WebhookPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		sale, err := svc.IngestWebhook(ctx, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, saleAck{
			ID:         sale.ID,
			Product:    sale.Product,
			Amount:     sale.Amount.String(),
			Commission: sale.Commission.String(),
		})
	}
}
