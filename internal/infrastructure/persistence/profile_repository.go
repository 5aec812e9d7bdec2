package persistence

import (
	"context"
	"errors"

	"github.com/gstbill/backend/internal/domain/partner"
	"github.com/gstbill/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBusinessProfileRepository implements partner.BusinessProfileRepository using GORM
type GormBusinessProfileRepository struct {
	db *gorm.DB
}

// NewGormBusinessProfileRepository creates a new GormBusinessProfileRepository
func NewGormBusinessProfileRepository(db *gorm.DB) *GormBusinessProfileRepository {
	return &GormBusinessProfileRepository{db: db}
}

// FindByAccount finds the business profile for an account
func (r *GormBusinessProfileRepository) FindByAccount(ctx context.Context, accountID uuid.UUID) (*partner.BusinessProfile, error) {
	var profile partner.BusinessProfile
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// Save persists a business profile
func (r *GormBusinessProfileRepository) Save(ctx context.Context, profile *partner.BusinessProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}
