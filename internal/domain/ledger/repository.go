package ledger

import (
	"context"

	"github.com/gstbill/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Repository defines persistence for ledger entries.
//
// Post must append the entry and update the customer's denormalized
// balance as a single atomic unit: both writes succeed or neither does.
type Repository interface {
	Post(ctx context.Context, entry *Entry) (valueobject.Money, error)
	FindByCustomer(ctx context.Context, accountID, customerID uuid.UUID) ([]Entry, error)
	FindByDocument(ctx context.Context, documentID uuid.UUID) ([]Entry, error)
}
