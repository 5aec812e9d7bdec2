package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/gstbill/backend/internal/domain/billing"
	"github.com/gstbill/backend/internal/domain/ledger"
	"github.com/gstbill/backend/internal/domain/partner"
	"github.com/gstbill/backend/internal/domain/shared"
	"github.com/gstbill/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// GormDocumentRepository implements billing.DocumentRepository using GORM
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewGormDocumentRepository creates a new GormDocumentRepository
func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

// FindByIDForAccount finds a document by ID within an account
func (r *GormDocumentRepository) FindByIDForAccount(ctx context.Context, accountID, id uuid.UUID) (*billing.Document, error) {
	var doc billing.Document
	if err := r.db.WithContext(ctx).
		Where("account_id = ? AND id = ?", accountID, id).
		First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// FindAllForAccount lists documents for an account with a total count.
// Soft-deleted documents are excluded unless the filter asks for them.
func (r *GormDocumentRepository) FindAllForAccount(ctx context.Context, accountID uuid.UUID, filter billing.DocumentFilter) ([]billing.Document, int64, error) {
	query := r.db.WithContext(ctx).Model(&billing.Document{}).Where("account_id = ?", accountID)
	if filter.Kind != "" {
		query = query.Where("kind = ?", filter.Kind)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if !filter.IncludeDeleted {
		query = query.Where("deleted = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var docs []billing.Document
	if err := applyFilter(query.Order("date desc, created_at desc"), filter.Filter).
		Find(&docs).Error; err != nil {
		return nil, 0, err
	}
	return docs, total, nil
}

// CreateFinalized reserves the next series number, persists the document
// with it, appends the ledger posting and updates the customer balance,
// all in one transaction. A failed step rolls everything back, so the
// counter never advances for a document that was not saved. The
// returned balance is the one the posting committed.
func (r *GormDocumentRepository) CreateFinalized(ctx context.Context, doc *billing.Document, posting *ledger.Entry) (valueobject.Money, error) {
	var balance valueobject.Money
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		series, err := lockOrCreateSeries(tx, doc.AccountID, doc.Kind)
		if err != nil {
			return err
		}

		number := series.Reserve(doc.Date)
		if err := tx.Model(&billing.DocumentSeries{}).
			Where("id = ?", series.ID).
			Update("issued_count", series.IssuedCount).Error; err != nil {
			return err
		}
		if err := doc.AssignNumber(number); err != nil {
			return err
		}

		if err := tx.Create(doc).Error; err != nil {
			return err
		}

		posting.DocumentID = &doc.ID
		if posting.Description == "" {
			posting.Description = fmt.Sprintf("%s %s", kindLabel(doc.Kind), number)
		}
		balance, err = postEntry(tx, posting)
		return err
	})
	if err != nil {
		return valueobject.ZeroINR(), err
	}
	return balance, nil
}

// UpdateFinalized persists an edited document and, when the edit changed
// the grand total, appends the reconciliation posting in the same
// transaction. The returned balance reflects the delta posting, or the
// customer's stored balance when there was none.
func (r *GormDocumentRepository) UpdateFinalized(ctx context.Context, doc *billing.Document, delta *ledger.Entry) (valueobject.Money, error) {
	var balance valueobject.Money
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveDocument(tx, doc); err != nil {
			return err
		}
		if delta == nil {
			var customer partner.Customer
			if err := tx.Where("account_id = ? AND id = ?", doc.AccountID, doc.CustomerID).
				First(&customer).Error; err != nil {
				return err
			}
			balance = customer.Balance
			return nil
		}
		var err error
		balance, err = postEntry(tx, delta)
		return err
	})
	if err != nil {
		return valueobject.ZeroINR(), err
	}
	return balance, nil
}

// Save persists state changes that carry no ledger effect
func (r *GormDocumentRepository) Save(ctx context.Context, doc *billing.Document) error {
	return saveDocument(r.db.WithContext(ctx), doc)
}

// CountBySeries counts documents in one numbering stream
func (r *GormDocumentRepository) CountBySeries(ctx context.Context, accountID uuid.UUID, kind billing.DocumentKind, includeDeleted bool) (int64, error) {
	query := r.db.WithContext(ctx).Model(&billing.Document{}).
		Where("account_id = ? AND kind = ?", accountID, kind)
	if !includeDeleted {
		query = query.Where("deleted = ?", false)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// saveDocument writes a document guarded by its version: a stale version
// means another edit won the race and the caller must retry.
func saveDocument(tx *gorm.DB, doc *billing.Document) error {
	currentVersion := doc.Version
	doc.IncrementVersion()

	result := tx.Model(doc).
		Where("version = ?", currentVersion).
		Select("*").
		Updates(doc)
	if result.Error != nil {
		doc.Version = currentVersion
		return result.Error
	}
	if result.RowsAffected == 0 {
		doc.Version = currentVersion
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// lockOrCreateSeries returns the series row for (account, kind) with a
// row lock held for the rest of the transaction. The prefix for a fresh
// series comes from the account's profile when one exists.
func lockOrCreateSeries(tx *gorm.DB, accountID uuid.UUID, kind billing.DocumentKind) (*billing.DocumentSeries, error) {
	series, err := findSeries(tx, accountID, kind, true)
	if err == nil {
		return series, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	prefix := kind.DefaultPrefix()
	var profile partner.BusinessProfile
	if err := tx.Where("account_id = ?", accountID).First(&profile).Error; err == nil {
		prefix = profile.PrefixFor(kind.String(), prefix)
	}

	created, err := billing.NewDocumentSeries(accountID, kind, prefix)
	if err != nil {
		return nil, err
	}
	if err := tx.Create(created).Error; err != nil {
		// A concurrent transaction created the series first. The insert
		// aborted this transaction, so it cannot re-read the winner's
		// row; surface a retryable conflict instead.
		if isUniqueViolation(err) {
			return nil, shared.ErrConcurrencyConflict
		}
		return nil, err
	}
	return created, nil
}

// isUniqueViolation reports whether the error is a unique index
// violation (Postgres SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// kindLabel renders the human-readable document kind for ledger descriptions
func kindLabel(kind billing.DocumentKind) string {
	switch kind {
	case billing.DocumentKindCreditNote:
		return "Credit note"
	case billing.DocumentKindDebitNote:
		return "Debit note"
	default:
		return "Invoice"
	}
}
