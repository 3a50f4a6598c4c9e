package settings

import (
	"context"
	"errors"

	"github.com/soldhq/sales-ledger/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository manages persistence for configuration entries.
type Repository interface {
	Find(ctx context.Context, key string) (*models.Setting, error)
	Upsert(ctx context.Context, key, value string) error
	InsertIfAbsent(ctx context.Context, key, value string) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a settings repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Find returns the stored entry for key, or nil when absent.
func (r *repository) Find(ctx context.Context, key string) (*models.Setting, error) {
	var setting models.Setting
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// Upsert writes value under key, last write wins.
func (r *repository) Upsert(ctx context.Context, key, value string) error {
	setting := models.Setting{Key: key, Value: value}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&setting).Error
}

// InsertIfAbsent writes value under key only when no entry exists yet.
func (r *repository) InsertIfAbsent(ctx context.Context, key, value string) error {
	setting := models.Setting{Key: key, Value: value}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoNothing: true,
		}).
		Create(&setting).Error
}
