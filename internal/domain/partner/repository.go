package partner

import (
	"context"

	"github.com/gstbill/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerRepository defines persistence for customers
type CustomerRepository interface {
	shared.AccountRepository[Customer]
}

// BusinessProfileRepository defines persistence for business profiles
type BusinessProfileRepository interface {
	FindByAccount(ctx context.Context, accountID uuid.UUID) (*BusinessProfile, error)
	Save(ctx context.Context, profile *BusinessProfile) error
}
