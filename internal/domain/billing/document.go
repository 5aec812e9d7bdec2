package billing

import (
	"time"

	"github.com/gstbill/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InvoiceStatus tracks how much of an invoice has been settled
type InvoiceStatus string

const (
	InvoiceStatusUnpaid  InvoiceStatus = "unpaid"
	InvoiceStatusPartial InvoiceStatus = "partial"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

// IsValid returns true if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusUnpaid, InvoiceStatusPartial, InvoiceStatusPaid:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// Document is the aggregate root for invoices, credit notes and debit
// notes. A finalized document carries a reserved series number, a
// computed tax split and a GSTR-1 supply type.
//
// Number is the authoritative counter-driven value; DisplayNumber is
// the user-editable text that ends up printed on the document. Future
// numbering derives only from the series counter, never from parsing
// DisplayNumber.
type Document struct {
	shared.AccountAggregateRoot
	Kind            DocumentKind  `gorm:"type:varchar(20);not null;index:idx_documents_account_kind"`
	Number          string        `gorm:"type:varchar(50);not null"`
	DisplayNumber   string        `gorm:"type:varchar(50);not null"`
	Date            time.Time     `gorm:"not null;index"`
	CustomerID      uuid.UUID     `gorm:"type:uuid;not null;index"`
	LineItems       LineItems     `gorm:"type:jsonb;not null"`
	Tax             TaxResult     `gorm:"type:jsonb;not null"`
	SupplyType      SupplyType    `gorm:"type:varchar(10);not null"`
	SupplyOverride  bool          `gorm:"not null;default:false"`
	Export          ExportDetails `gorm:"type:jsonb"`
	Reason          string        `gorm:"type:text"`
	Status          InvoiceStatus `gorm:"type:varchar(20);not null;default:'unpaid'"`
	Deleted         bool          `gorm:"not null;default:false;index"`
	DeletedAt       *time.Time
	SupplierState   string `gorm:"type:varchar(100);not null"`
	CustomerState   string `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (Document) TableName() string {
	return "documents"
}

// NewDocument creates a draft document. Tax, supply type and number are
// assigned at finalization.
func NewDocument(accountID uuid.UUID, kind DocumentKind, date time.Time, customerID uuid.UUID, items LineItems, reason string) (*Document, error) {
	if accountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Account ID cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_DOCUMENT_KIND", "Invalid document kind")
	}
	if customerID == uuid.Nil {
		return nil, shared.ErrNoCustomer
	}
	if len(items) == 0 {
		return nil, shared.ErrEmptyLineItems
	}
	if err := items.Validate(); err != nil {
		return nil, err
	}
	if kind != DocumentKindInvoice && reason == "" {
		return nil, shared.ErrMissingReason
	}

	return &Document{
		AccountAggregateRoot: shared.NewAccountAggregateRoot(accountID),
		Kind:                 kind,
		Date:                 date,
		CustomerID:           customerID,
		LineItems:            items,
		Tax:                  ZeroTaxResult(),
		Reason:               reason,
		Status:               InvoiceStatusUnpaid,
	}, nil
}

// Finalize stamps the computed tax and supply type onto the document.
// A zero-value document is rejected so no zero-amount ledger posting
// can ever be created from it.
func (d *Document) Finalize(tax TaxResult, supplyType SupplyType, overridden bool) error {
	if tax.IsZero() {
		return shared.ErrZeroValueDocument
	}
	if !supplyType.IsValid() {
		return shared.NewDomainError("INVALID_SUPPLY_TYPE", "Invalid supply type")
	}
	d.Tax = tax
	d.SupplyType = supplyType
	d.SupplyOverride = overridden
	return nil
}

// AssignNumber records the reserved series number. The display number
// starts out identical and may be edited by the user afterwards.
func (d *Document) AssignNumber(number string) error {
	if d.Number != "" {
		return shared.NewDomainError("NUMBER_ALREADY_ASSIGNED", "Document already has a number")
	}
	if number == "" {
		return shared.NewDomainError("INVALID_NUMBER", "Document number cannot be empty")
	}
	d.Number = number
	d.DisplayNumber = number
	return nil
}

// SetDisplayNumber overrides the printed number. The authoritative
// series number is untouched.
func (d *Document) SetDisplayNumber(display string) error {
	if display == "" {
		return shared.NewDomainError("INVALID_NUMBER", "Display number cannot be empty")
	}
	d.DisplayNumber = display
	return nil
}

// IsFinalized reports whether the document has been numbered and taxed
func (d *Document) IsFinalized() bool {
	return d.Number != "" && !d.Tax.IsZero()
}

// IsActive reports whether the document appears in active listings
func (d *Document) IsActive() bool {
	return !d.Deleted
}

// SoftDelete removes the document from active listings. Its number
// stays counted in the series and its ledger posting is not reversed.
func (d *Document) SoftDelete() error {
	if d.Deleted {
		return shared.ErrInvalidState
	}
	now := time.Now()
	d.Deleted = true
	d.DeletedAt = &now
	return nil
}

// Restore returns a soft-deleted document to active listings with its
// original number. The series counter is unaffected either way.
func (d *Document) Restore() error {
	if !d.Deleted {
		return shared.ErrInvalidState
	}
	d.Deleted = false
	d.DeletedAt = nil
	return nil
}

// SetStatus updates the settlement status of an invoice
func (d *Document) SetStatus(status InvoiceStatus) error {
	if d.Kind != DocumentKindInvoice {
		return shared.NewDomainError("INVALID_STATE", "Only invoices carry a settlement status")
	}
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Invalid invoice status")
	}
	d.Status = status
	return nil
}

// UpdateLineItems replaces the line items during an edit. The caller
// recomputes tax and classification afterwards; the number is never
// re-reserved.
func (d *Document) UpdateLineItems(items LineItems) error {
	if len(items) == 0 {
		return shared.ErrEmptyLineItems
	}
	if err := items.Validate(); err != nil {
		return err
	}
	if d.Deleted {
		return shared.ErrInvalidState
	}
	d.LineItems = items
	return nil
}
