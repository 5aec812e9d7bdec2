package persistence

import (
	"context"
	"errors"

	"github.com/gstbill/backend/internal/domain/identity"
	"github.com/gstbill/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProfessionalRepository implements identity.ProfessionalRepository using GORM
type GormProfessionalRepository struct {
	db *gorm.DB
}

// NewGormProfessionalRepository creates a new GormProfessionalRepository
func NewGormProfessionalRepository(db *gorm.DB) *GormProfessionalRepository {
	return &GormProfessionalRepository{db: db}
}

// FindByID finds a professional by ID
func (r *GormProfessionalRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Professional, error) {
	var professional identity.Professional
	if err := r.db.WithContext(ctx).First(&professional, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &professional, nil
}

// FindByIdentifier finds a professional by their allocated identifier
func (r *GormProfessionalRepository) FindByIdentifier(ctx context.Context, identifier string) (*identity.Professional, error) {
	var professional identity.Professional
	if err := r.db.WithContext(ctx).
		Where("identifier = ?", identifier).
		First(&professional).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &professional, nil
}

// Save persists a professional
func (r *GormProfessionalRepository) Save(ctx context.Context, professional *identity.Professional) error {
	return r.db.WithContext(ctx).Save(professional).Error
}
