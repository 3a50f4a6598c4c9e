package ledger

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/soldhq/sales-ledger/pkg/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupLedgerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS sales (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  seller_id TEXT NOT NULL,
  seller_tag TEXT NOT NULL,
  product TEXT NOT NULL,
  amount DECIMAL(20,2) NOT NULL,
  commission DECIMAL(20,2) NOT NULL,
  occurred_at INTEGER NOT NULL,
  notes TEXT,
  source TEXT NOT NULL DEFAULT 'webhook',
  created_at DATETIME
);
`
	require.NoError(t, db.Exec(schema).Error)
	require.NoError(t, db.Exec(`CREATE INDEX IF NOT EXISTS idx_sales_occurred_at ON sales (occurred_at);`).Error)
	return db
}

func insertSale(t *testing.T, repo Repository, amount, comm string, occurredAt int64) *models.Sale {
	t.Helper()

	sale := &models.Sale{
		SellerID:   "seller-1",
		SellerTag:  "Seller One",
		Product:    "Widget",
		Amount:     decimal.RequireFromString(amount),
		Commission: decimal.RequireFromString(comm),
		OccurredAt: occurredAt,
		Source:     "webhook",
	}
	require.NoError(t, repo.Insert(context.Background(), sale))
	return sale
}

func TestRepositoryInsertAssignsMonotonicIDs(t *testing.T) {
	repo := NewRepository(setupLedgerTestDB(t))

	first := insertSale(t, repo, "100", "10", 1000)
	second := insertSale(t, repo, "200", "20", 1001)

	require.NotZero(t, first.ID)
	assert.Greater(t, second.ID, first.ID)
}

func TestRepositorySummarizeAggregates(t *testing.T) {
	repo := NewRepository(setupLedgerTestDB(t))

	insertSale(t, repo, "100", "10", 1000)
	insertSale(t, repo, "200", "20", 1500)
	insertSale(t, repo, "300", "30", 2000)

	summary, err := repo.Summarize(context.Background(), 1000, 2000)
	require.NoError(t, err)
	assert.Equal(t, int64(3), summary.Count)
	assert.True(t, summary.TotalAmount.Equal(decimal.NewFromInt(600)), "total amount %s", summary.TotalAmount)
	assert.True(t, summary.TotalCommission.Equal(decimal.NewFromInt(60)), "total commission %s", summary.TotalCommission)
}

func TestRepositorySummarizeClosedInterval(t *testing.T) {
	repo := NewRepository(setupLedgerTestDB(t))

	insertSale(t, repo, "10", "1", 999)
	insertSale(t, repo, "20", "2", 1000)
	insertSale(t, repo, "30", "3", 2000)
	insertSale(t, repo, "40", "4", 2001)

	summary, err := repo.Summarize(context.Background(), 1000, 2000)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.Count)
	assert.True(t, summary.TotalAmount.Equal(decimal.NewFromInt(50)), "total amount %s", summary.TotalAmount)
	assert.True(t, summary.TotalCommission.Equal(decimal.NewFromInt(5)), "total commission %s", summary.TotalCommission)
}

func TestRepositorySummarizeEmptyWindowReturnsZeros(t *testing.T) {
	repo := NewRepository(setupLedgerTestDB(t))

	summary, err := repo.Summarize(context.Background(), 0, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(0), summary.Count)
	assert.True(t, summary.TotalAmount.IsZero())
	assert.True(t, summary.TotalCommission.IsZero())
}

func TestRepositorySummarizeDecimalSums(t *testing.T) {
	repo := NewRepository(setupLedgerTestDB(t))

	insertSale(t, repo, "19.99", "2.00", 100)
	insertSale(t, repo, "0.01", "0.00", 100)

	summary, err := repo.Summarize(context.Background(), 100, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.Count)
	assert.True(t, summary.TotalAmount.Equal(decimal.RequireFromString("20")), "total amount %s", summary.TotalAmount)
	assert.True(t, summary.TotalCommission.Equal(decimal.NewFromInt(2)), "total commission %s", summary.TotalCommission)
}
