// Package identity provides professional registration on top of the
// identifier allocator.
package identity

import (
	"context"

	"github.com/gstbill/backend/internal/domain/identity"
	"github.com/gstbill/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// RegistrationService registers professionals with allocated identifiers
type RegistrationService struct {
	allocator identity.Allocator
	repo      identity.ProfessionalRepository
	logger    *zap.Logger
}

// NewRegistrationService creates a new RegistrationService
func NewRegistrationService(allocator identity.Allocator, repo identity.ProfessionalRepository, logger *zap.Logger) *RegistrationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistrationService{
		allocator: allocator,
		repo:      repo,
		logger:    logger,
	}
}

// RegisterProfessional allocates the next identifier for the
// designation and persists the professional. Identifiers from the
// allocator's randomized fallback are accepted but logged, since they
// are best-effort rather than counter-backed.
func (s *RegistrationService) RegisterProfessional(ctx context.Context, designationCode, name string) (*identity.Professional, error) {
	if !identity.ValidDesignationCode(designationCode) {
		return nil, shared.NewDomainError("INVALID_DESIGNATION", "Designation code must be 1-4 upper-case letters")
	}

	identifier, err := s.allocator.Allocate(ctx, designationCode)
	if err != nil {
		return nil, err
	}
	if !identifier.Authoritative {
		s.logger.Warn("identifier allocated via non-authoritative fallback",
			zap.String("identifier", identifier.Value),
			zap.String("designation", designationCode),
		)
	}

	professional, err := identity.NewProfessional(identifier, designationCode, name)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, professional); err != nil {
		return nil, err
	}
	return professional, nil
}
