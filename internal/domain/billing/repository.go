package billing

import (
	"context"

	"github.com/gstbill/backend/internal/domain/ledger"
	"github.com/gstbill/backend/internal/domain/shared"
	"github.com/gstbill/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// DocumentFilter narrows document list queries
type DocumentFilter struct {
	shared.Filter
	Kind           DocumentKind
	CustomerID     *uuid.UUID
	IncludeDeleted bool
}

// DocumentRepository defines persistence for billing documents.
//
// CreateFinalized is the atomic unit the numbering and posting rules
// require: it reserves the next series number (locked read-increment-
// write on the series row), persists the document with that number,
// appends the ledger posting and updates the customer's denormalized
// balance - all in one storage transaction. If any step fails nothing
// is applied, so a number is never considered reserved for a document
// that was not saved. Both finalizing methods return the customer's
// balance as committed by the transaction.
type DocumentRepository interface {
	FindByIDForAccount(ctx context.Context, accountID, id uuid.UUID) (*Document, error)
	FindAllForAccount(ctx context.Context, accountID uuid.UUID, filter DocumentFilter) ([]Document, int64, error)
	CreateFinalized(ctx context.Context, doc *Document, posting *ledger.Entry) (valueobject.Money, error)
	// UpdateFinalized persists an edited document together with an
	// optional reconciliation posting (nil when the total is unchanged).
	UpdateFinalized(ctx context.Context, doc *Document, delta *ledger.Entry) (valueobject.Money, error)
	// Save persists state changes that carry no ledger effect
	// (soft delete, restore, status, display number).
	Save(ctx context.Context, doc *Document) error
	// CountBySeries counts documents in one numbering stream, with or
	// without the soft-deleted ones.
	CountBySeries(ctx context.Context, accountID uuid.UUID, kind DocumentKind, includeDeleted bool) (int64, error)
}

// SeriesRepository defines persistence for numbering streams
type SeriesRepository interface {
	// GetOrCreate returns the series for (account, kind), creating it
	// with the given prefix on first use.
	GetOrCreate(ctx context.Context, accountID uuid.UUID, kind DocumentKind, prefix string) (*DocumentSeries, error)
	Save(ctx context.Context, series *DocumentSeries) error
}
