package ledger

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/soldhq/sales-ledger/pkg/db/models"
	"gorm.io/gorm"
)

// Summary aggregates a closed timestamp window of the ledger.
type Summary struct {
	Count           int64           `json:"count"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	TotalCommission decimal.Decimal `json:"total_commission"`
}

// Repository manages persistence for sales. The ledger is append
// only: no update or delete operations exist.
type Repository interface {
	Insert(ctx context.Context, sale *models.Sale) error
	Summarize(ctx context.Context, from, to int64) (Summary, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a ledger repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Insert appends one immutable sale row. Business validation is the
// ingestion gateway's job; this fails only on storage errors.
func (r *repository) Insert(ctx context.Context, sale *models.Sale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

// Summarize aggregates all sales whose timestamp falls within the
// closed interval [from, to]. A single statement keeps the read
// consistent; absent sums normalize to zero.
func (r *repository) Summarize(ctx context.Context, from, to int64) (Summary, error) {
	var row struct {
		Count           int64
		TotalAmount     decimal.Decimal
		TotalCommission decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Select("COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total_amount, COALESCE(SUM(commission), 0) AS total_commission").
		Where("occurred_at BETWEEN ? AND ?", from, to).
		Scan(&row).Error
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		Count:           row.Count,
		TotalAmount:     row.TotalAmount,
		TotalCommission: row.TotalCommission,
	}, nil
}
