package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale records one immutable sales transaction. Rows are only ever
// inserted; corrections are recorded as new rows.
type Sale struct {
	ID         int64           `gorm:"column:id;primaryKey;autoIncrement"`
	SellerID   string          `gorm:"column:seller_id;not null"`
	SellerTag  string          `gorm:"column:seller_tag;not null"`
	Product    string          `gorm:"column:product;not null"`
	Amount     decimal.Decimal `gorm:"column:amount;type:decimal(20,2);not null"`
	Commission decimal.Decimal `gorm:"column:commission;type:decimal(20,2);not null"`
	OccurredAt int64           `gorm:"column:occurred_at;not null;index:idx_sales_occurred_at"`
	Notes      *string         `gorm:"column:notes"`
	Source     string          `gorm:"column:source;not null;default:webhook"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (Sale) TableName() string {
	return "sales"
}
