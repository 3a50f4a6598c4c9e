package ingest

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/soldhq/sales-ledger/internal/commission"
	"github.com/soldhq/sales-ledger/pkg/db/models"
	pkgerrors "github.com/soldhq/sales-ledger/pkg/errors"
	"github.com/soldhq/sales-ledger/pkg/logger"
	"github.com/soldhq/sales-ledger/pkg/metrics"
	"github.com/soldhq/sales-ledger/pkg/types"
)

const (
	// SellerIDUnknown marks sales originating outside the operator's
	// membership system.
	SellerIDUnknown = "unknown"

	// SellerTagExternal is the display label paired with an unknown seller.
	SellerTagExternal = "external"

	SourceWebhook = "webhook"
	SourceCommand = "command"
)

// RateReader is the slice of the configuration store ingestion needs.
type RateReader interface {
	CommissionRate(ctx context.Context) (decimal.Decimal, error)
}

// Inserter is the slice of the ledger ingestion writes to.
type Inserter interface {
	Insert(ctx context.Context, sale *models.Sale) error
}

// WebhookPayload is one inbound sale notification.
type WebhookPayload struct {
	Secret    string             `json:"secret"`
	SellerID  string             `json:"seller_id"`
	SellerTag string             `json:"seller_tag"`
	Product   string             `json:"product"`
	Amount    types.LooseDecimal `json:"amount"`
	Notes     *string            `json:"notes"`
	Source    string             `json:"source"`
}

// SubmitInput is an operator-recorded sale arriving through a trusted
// command adapter; no shared secret is involved on this path.
type SubmitInput struct {
	SellerID  string
	SellerTag string
	Product   string
	Amount    decimal.Decimal
	Notes     *string
	Source    string
}

// Service validates and normalizes sale submissions, computes the
// commission at the current rate, and appends to the ledger.
type Service interface {
	IngestWebhook(ctx context.Context, payload WebhookPayload) (*models.Sale, error)
	SubmitSale(ctx context.Context, input SubmitInput) (*models.Sale, error)
}

type ServiceParams struct {
	Ledger  Inserter
	Rates   RateReader
	Secret  string
	Logger  *logger.Logger
	Metrics *metrics.IngestMetrics
}

type service struct {
	ledger  Inserter
	rates   RateReader
	secret  string
	logg    *logger.Logger
	metrics *metrics.IngestMetrics
	now     func() time.Time
}

// NewService wires an ingestion service.
func NewService(params ServiceParams) (Service, error) {
	if params.Ledger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "ledger repository required")
	}
	if params.Rates == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "rate reader required")
	}
	if params.Secret == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "webhook secret required")
	}
	return &service{
		ledger:  params.Ledger,
		rates:   params.Rates,
		secret:  params.Secret,
		logg:    params.Logger,
		metrics: params.Metrics,
		now:     time.Now,
	}, nil
}

// IngestWebhook processes one external sale notification. The secret
// check runs before any other validation; caller-supplied timestamps
// are never honored.
func (s *service) IngestWebhook(ctx context.Context, payload WebhookPayload) (*models.Sale, error) {
	if subtle.ConstantTimeCompare([]byte(payload.Secret), []byte(s.secret)) != 1 {
		s.metrics.IncRejected("unauthorized")
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid webhook secret")
	}

	if strings.TrimSpace(payload.Product) == "" {
		s.metrics.IncRejected("validation")
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product is required")
	}
	if !payload.Amount.Set {
		s.metrics.IncRejected("validation")
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount is required")
	}

	sellerID := strings.TrimSpace(payload.SellerID)
	if sellerID == "" {
		sellerID = SellerIDUnknown
	}
	sellerTag := strings.TrimSpace(payload.SellerTag)
	if sellerTag == "" {
		sellerTag = SellerTagExternal
	}
	source := strings.TrimSpace(payload.Source)
	if source == "" {
		source = SourceWebhook
	}

	return s.record(ctx, &models.Sale{
		SellerID:  sellerID,
		SellerTag: sellerTag,
		Product:   strings.TrimSpace(payload.Product),
		Amount:    payload.Amount.Value,
		Notes:     payload.Notes,
		Source:    source,
	})
}

// SubmitSale records an operator-submitted sale. The command adapter
// is trusted; the privilege check is its responsibility, as is amount
// presence — unlike the webhook path there is no absent-amount state
// here, so a zero Amount is recorded as a zero-value sale.
func (s *service) SubmitSale(ctx context.Context, input SubmitInput) (*models.Sale, error) {
	if strings.TrimSpace(input.Product) == "" {
		s.metrics.IncRejected("validation")
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product is required")
	}

	sellerID := strings.TrimSpace(input.SellerID)
	if sellerID == "" {
		sellerID = SellerIDUnknown
	}
	sellerTag := strings.TrimSpace(input.SellerTag)
	if sellerTag == "" {
		sellerTag = SellerTagExternal
	}
	source := strings.TrimSpace(input.Source)
	if source == "" {
		source = SourceCommand
	}

	return s.record(ctx, &models.Sale{
		SellerID:  sellerID,
		SellerTag: sellerTag,
		Product:   strings.TrimSpace(input.Product),
		Amount:    input.Amount,
		Notes:     input.Notes,
		Source:    source,
	})
}

// record computes the commission at the current rate, stamps the
// ingestion time and appends to the ledger. The rate read and the
// insert are deliberately not one transaction: a sale racing a rate
// change is commissioned at whichever rate was read last.
func (s *service) record(ctx context.Context, sale *models.Sale) (*models.Sale, error) {
	rate, err := s.rates.CommissionRate(ctx)
	if err != nil {
		s.metrics.IncRejected("storage")
		return nil, err
	}

	sale.Commission = commission.Calculate(sale.Amount, rate)
	sale.OccurredAt = s.now().Unix()

	if err := s.ledger.Insert(ctx, sale); err != nil {
		s.metrics.IncRejected("storage")
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert sale")
	}

	if s.logg != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{
			"product":    sale.Product,
			"amount":     sale.Amount.String(),
			"commission": sale.Commission.String(),
			"source":     sale.Source,
		})
		s.logg.Info(ctx, fmt.Sprintf("sale recorded: %s", sale.Product))
	}
	s.metrics.IncAccepted(sale.Source)

	return sale, nil
}
