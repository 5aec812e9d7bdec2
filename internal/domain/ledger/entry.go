// Package ledger maintains the per-customer append-only ledger: debit
// and credit postings with running and closing balances.
package ledger

import (
	"time"

	"github.com/gstbill/backend/internal/domain/shared"
	"github.com/gstbill/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// EntryType is the direction of a ledger posting.
// Debit increases what the customer owes; Credit decreases it.
type EntryType string

const (
	EntryTypeDebit  EntryType = "debit"
	EntryTypeCredit EntryType = "credit"
)

// String returns the string representation of EntryType
func (t EntryType) String() string {
	return string(t)
}

// IsValid returns true if the entry type is valid
func (t EntryType) IsValid() bool {
	return t == EntryTypeDebit || t == EntryTypeCredit
}

// Effect returns the sign the entry applies to the customer balance:
// +1 for debit, -1 for credit.
func (t EntryType) Effect() int64 {
	if t == EntryTypeCredit {
		return -1
	}
	return 1
}

// Entry is one append-only ledger posting. Entries are never mutated or
// deleted through normal flow; corrections are made with new entries.
//
// Seq is assigned by storage in insertion order and breaks ties between
// entries on the same date.
type Entry struct {
	shared.BaseEntity
	AccountID      uuid.UUID         `gorm:"type:uuid;not null;index"`
	CustomerID     uuid.UUID         `gorm:"type:uuid;not null;index:idx_ledger_customer_date"`
	Seq            int64             `gorm:"autoIncrement;uniqueIndex"`
	Date           time.Time         `gorm:"not null;index:idx_ledger_customer_date"`
	Type           EntryType         `gorm:"type:varchar(10);not null"`
	Amount         valueobject.Money `gorm:"type:decimal(18,4);not null"`
	Description    string            `gorm:"type:text"`
	DocumentID     *uuid.UUID        `gorm:"type:uuid;index"`
	RunningBalance valueobject.Money `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (Entry) TableName() string {
	return "ledger_entries"
}

// NewEntry creates a validated ledger posting
func NewEntry(accountID, customerID uuid.UUID, date time.Time, entryType EntryType, amount valueobject.Money, description string, documentID *uuid.UUID) (*Entry, error) {
	if accountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Account ID cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.ErrNoCustomer
	}
	if !entryType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ENTRY_TYPE", "Invalid ledger entry type")
	}
	if amount.IsZero() || amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Posting amount must be positive")
	}

	return &Entry{
		BaseEntity:  shared.NewBaseEntity(),
		AccountID:   accountID,
		CustomerID:  customerID,
		Date:        date,
		Type:        entryType,
		Amount:      amount,
		Description: description,
		DocumentID:  documentID,
	}, nil
}

// SignedAmount returns the amount with the entry's balance effect
// applied: positive for debit, negative for credit.
func (e *Entry) SignedAmount() valueobject.Money {
	if e.Type == EntryTypeCredit {
		return e.Amount.Negate()
	}
	return e.Amount
}
