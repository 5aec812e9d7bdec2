package persistence

import (
	"context"
	"errors"

	"github.com/gstbill/backend/internal/domain/billing"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSeriesRepository implements billing.SeriesRepository using GORM
type GormSeriesRepository struct {
	db *gorm.DB
}

// NewGormSeriesRepository creates a new GormSeriesRepository
func NewGormSeriesRepository(db *gorm.DB) *GormSeriesRepository {
	return &GormSeriesRepository{db: db}
}

// GetOrCreate returns the numbering stream for (account, kind), creating
// it with the given prefix on first use.
func (r *GormSeriesRepository) GetOrCreate(ctx context.Context, accountID uuid.UUID, kind billing.DocumentKind, prefix string) (*billing.DocumentSeries, error) {
	series, err := findSeries(r.db.WithContext(ctx), accountID, kind, false)
	if err == nil {
		return series, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created, err := billing.NewDocumentSeries(accountID, kind, prefix)
	if err != nil {
		return nil, err
	}
	// A concurrent first use may have inserted the row already; the
	// unique (account, kind) index makes the clash visible.
	if err := r.db.WithContext(ctx).Create(created).Error; err != nil {
		if existing, findErr := findSeries(r.db.WithContext(ctx), accountID, kind, false); findErr == nil {
			return existing, nil
		}
		return nil, err
	}
	return created, nil
}

// Save persists prefix or counter changes to a series
func (r *GormSeriesRepository) Save(ctx context.Context, series *billing.DocumentSeries) error {
	return r.db.WithContext(ctx).Save(series).Error
}

// findSeries loads the series row, optionally taking a row lock so a
// concurrent reservation waits rather than reading a stale counter.
func findSeries(tx *gorm.DB, accountID uuid.UUID, kind billing.DocumentKind, forUpdate bool) (*billing.DocumentSeries, error) {
	var series billing.DocumentSeries
	query := tx.Where("account_id = ? AND kind = ?", accountID, kind)
	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := query.First(&series).Error; err != nil {
		return nil, err
	}
	return &series, nil
}
