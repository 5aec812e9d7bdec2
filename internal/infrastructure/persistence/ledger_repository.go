package persistence

import (
	"context"
	"errors"

	"github.com/gstbill/backend/internal/domain/ledger"
	"github.com/gstbill/backend/internal/domain/partner"
	"github.com/gstbill/backend/internal/domain/shared"
	"github.com/gstbill/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLedgerRepository implements ledger.Repository using GORM
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a new GormLedgerRepository
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// Post appends the entry and updates the customer's denormalized balance
// in one transaction. The returned value is the balance after the entry.
func (r *GormLedgerRepository) Post(ctx context.Context, entry *ledger.Entry) (valueobject.Money, error) {
	var balance valueobject.Money
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txErr error
		balance, txErr = postEntry(tx, entry)
		return txErr
	})
	if err != nil {
		return valueobject.ZeroINR(), err
	}
	return balance, nil
}

// FindByCustomer returns all of a customer's entries, oldest first
func (r *GormLedgerRepository) FindByCustomer(ctx context.Context, accountID, customerID uuid.UUID) ([]ledger.Entry, error) {
	var entries []ledger.Entry
	if err := r.db.WithContext(ctx).
		Where("account_id = ? AND customer_id = ?", accountID, customerID).
		Order("date asc, seq asc").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByDocument returns the entries posted for one document
func (r *GormLedgerRepository) FindByDocument(ctx context.Context, documentID uuid.UUID) ([]ledger.Entry, error) {
	var entries []ledger.Entry
	if err := r.db.WithContext(ctx).
		Where("document_id = ?", documentID).
		Order("seq asc").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// postEntry appends one ledger entry inside an open transaction. The
// customer row is locked first so concurrent postings serialize and the
// denormalized balance never loses an update. The entry's running
// balance is stamped with the balance after it.
func postEntry(tx *gorm.DB, entry *ledger.Entry) (valueobject.Money, error) {
	var customer partner.Customer
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("account_id = ? AND id = ?", entry.AccountID, entry.CustomerID).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return valueobject.ZeroINR(), shared.ErrNotFound
		}
		return valueobject.ZeroINR(), err
	}

	balance := customer.Balance.MustAdd(entry.SignedAmount())
	entry.RunningBalance = balance

	if err := tx.Create(entry).Error; err != nil {
		return valueobject.ZeroINR(), err
	}
	if err := tx.Model(&partner.Customer{}).
		Where("id = ?", customer.ID).
		Update("balance", balance).Error; err != nil {
		return valueobject.ZeroINR(), err
	}
	return balance, nil
}
