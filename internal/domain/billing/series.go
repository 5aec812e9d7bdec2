package billing

import (
	"fmt"
	"time"

	"github.com/gstbill/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DocumentKind identifies a numbering stream within an account
type DocumentKind string

const (
	DocumentKindInvoice    DocumentKind = "invoice"
	DocumentKindCreditNote DocumentKind = "credit_note"
	DocumentKindDebitNote  DocumentKind = "debit_note"
)

// String returns the string representation of DocumentKind
func (k DocumentKind) String() string {
	return string(k)
}

// IsValid returns true if the document kind is valid
func (k DocumentKind) IsValid() bool {
	switch k {
	case DocumentKindInvoice, DocumentKindCreditNote, DocumentKindDebitNote:
		return true
	}
	return false
}

// DefaultPrefix returns the default number prefix for the kind
func (k DocumentKind) DefaultPrefix() string {
	switch k {
	case DocumentKindCreditNote:
		return "CN"
	case DocumentKindDebitNote:
		return "DN"
	default:
		return "INV"
	}
}

// DocumentSeries is one numbering stream: an (account, kind) pair with a
// strictly increasing counter of every number ever issued.
//
// The counter is incremented only through the repository's atomic
// reservation and is never decremented - a soft-deleted document keeps
// its number counted forever, so the number can never be reissued.
type DocumentSeries struct {
	shared.BaseEntity
	AccountID   uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_series_account_kind,priority:1"`
	Kind        DocumentKind `gorm:"type:varchar(20);not null;uniqueIndex:idx_series_account_kind,priority:2"`
	Prefix      string       `gorm:"type:varchar(20);not null"`
	IssuedCount int64        `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (DocumentSeries) TableName() string {
	return "document_series"
}

// NewDocumentSeries creates a fresh series with a zero counter
func NewDocumentSeries(accountID uuid.UUID, kind DocumentKind, prefix string) (*DocumentSeries, error) {
	if accountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Account ID cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_DOCUMENT_KIND", "Invalid document kind")
	}
	if prefix == "" {
		prefix = kind.DefaultPrefix()
	}
	return &DocumentSeries{
		BaseEntity:  shared.NewBaseEntity(),
		AccountID:   accountID,
		Kind:        kind,
		Prefix:      prefix,
		IssuedCount: 0,
	}, nil
}

// FormatNumber renders a document number for the given sequence and
// document date, e.g. INV/26/003.
func FormatNumber(prefix string, date time.Time, sequence int64) string {
	return fmt.Sprintf("%s/%02d/%03d", prefix, date.Year()%100, sequence)
}

// NextSequence returns the sequence the next reservation would take.
// It derives from the total-ever-issued count, never from the size of
// the active document list and never from parsing number strings.
func (s *DocumentSeries) NextSequence() int64 {
	return s.IssuedCount + 1
}

// PreviewNextNumber renders the number the next reservation would take,
// without reserving it.
func (s *DocumentSeries) PreviewNextNumber(date time.Time) string {
	return FormatNumber(s.Prefix, date, s.NextSequence())
}

// Reserve advances the counter and returns the reserved number. Callers
// must invoke this inside the same storage transaction that persists
// the document; a failed save rolls the increment back with it.
func (s *DocumentSeries) Reserve(date time.Time) string {
	s.IssuedCount++
	return FormatNumber(s.Prefix, date, s.IssuedCount)
}

// SetPrefix changes the prefix used for future numbers. Numbers already
// issued keep their original text.
func (s *DocumentSeries) SetPrefix(prefix string) error {
	if prefix == "" {
		return shared.NewDomainError("INVALID_PREFIX", "Series prefix cannot be empty")
	}
	s.Prefix = prefix
	return nil
}
