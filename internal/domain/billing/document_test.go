package billing

import (
	"testing"
	"time"

	"github.com/gstbill/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestDocument(t *testing.T, kind DocumentKind) *Document {
	t.Helper()
	reason := ""
	if kind != DocumentKindInvoice {
		reason = "Rate revision"
	}
	doc, err := NewDocument(
		uuid.New(),
		kind,
		time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		uuid.New(),
		LineItems{mustLineItem(t, "Consulting", 2, 500, 18)},
		reason,
	)
	require.NoError(t, err)
	return doc
}

func finalizeTestDocument(t *testing.T, doc *Document) {
	t.Helper()
	tax := ComputeTax(doc.LineItems, "Maharashtra", "Maharashtra")
	require.NoError(t, doc.Finalize(tax, SupplyTypeB2CS, false))
	require.NoError(t, doc.AssignNumber("INV/26/001"))
}

func TestNewDocument_Validation(t *testing.T) {
	accountID := uuid.New()
	customerID := uuid.New()
	date := time.Now()
	items := LineItems{mustLineItem(t, "Consulting", 1, 100, 18)}

	t.Run("no customer", func(t *testing.T) {
		_, err := NewDocument(accountID, DocumentKindInvoice, date, uuid.Nil, items, "")
		assert.ErrorIs(t, err, shared.ErrNoCustomer)
	})

	t.Run("empty line items", func(t *testing.T) {
		_, err := NewDocument(accountID, DocumentKindInvoice, date, customerID, nil, "")
		assert.ErrorIs(t, err, shared.ErrEmptyLineItems)
	})

	t.Run("credit note requires reason", func(t *testing.T) {
		_, err := NewDocument(accountID, DocumentKindCreditNote, date, customerID, items, "")
		assert.ErrorIs(t, err, shared.ErrMissingReason)
	})

	t.Run("debit note requires reason", func(t *testing.T) {
		_, err := NewDocument(accountID, DocumentKindDebitNote, date, customerID, items, "")
		assert.ErrorIs(t, err, shared.ErrMissingReason)
	})

	t.Run("invoice needs no reason", func(t *testing.T) {
		_, err := NewDocument(accountID, DocumentKindInvoice, date, customerID, items, "")
		assert.NoError(t, err)
	})
}

func TestDocument_Finalize(t *testing.T) {
	t.Run("zero value rejected", func(t *testing.T) {
		doc := createTestDocument(t, DocumentKindInvoice)
		err := doc.Finalize(ZeroTaxResult(), SupplyTypeB2CS, false)
		assert.ErrorIs(t, err, shared.ErrZeroValueDocument)
	})

	t.Run("invalid supply type rejected", func(t *testing.T) {
		doc := createTestDocument(t, DocumentKindInvoice)
		tax := ComputeTax(doc.LineItems, "Maharashtra", "Maharashtra")
		err := doc.Finalize(tax, SupplyType("B2X"), false)
		assert.Error(t, err)
	})

	t.Run("valid finalization", func(t *testing.T) {
		doc := createTestDocument(t, DocumentKindInvoice)
		finalizeTestDocument(t, doc)
		assert.True(t, doc.IsFinalized())
		assert.Equal(t, "INV/26/001", doc.Number)
		assert.Equal(t, "INV/26/001", doc.DisplayNumber)
	})
}

func TestDocument_AssignNumberOnce(t *testing.T) {
	doc := createTestDocument(t, DocumentKindInvoice)
	require.NoError(t, doc.AssignNumber("INV/26/001"))

	err := doc.AssignNumber("INV/26/002")
	assert.Error(t, err)
	assert.Equal(t, "INV/26/001", doc.Number)
}

func TestDocument_DisplayNumberOverride(t *testing.T) {
	doc := createTestDocument(t, DocumentKindInvoice)
	finalizeTestDocument(t, doc)

	require.NoError(t, doc.SetDisplayNumber("CUSTOM/26/99"))

	// The authoritative number is untouched by the override
	assert.Equal(t, "INV/26/001", doc.Number)
	assert.Equal(t, "CUSTOM/26/99", doc.DisplayNumber)

	assert.Error(t, doc.SetDisplayNumber(""))
}

func TestDocument_SoftDeleteAndRestore(t *testing.T) {
	doc := createTestDocument(t, DocumentKindInvoice)
	finalizeTestDocument(t, doc)

	require.NoError(t, doc.SoftDelete())
	assert.False(t, doc.IsActive())
	assert.NotNil(t, doc.DeletedAt)
	assert.Equal(t, "INV/26/001", doc.Number, "number kept after delete")

	// Double delete is invalid
	assert.ErrorIs(t, doc.SoftDelete(), shared.ErrInvalidState)

	require.NoError(t, doc.Restore())
	assert.True(t, doc.IsActive())
	assert.Nil(t, doc.DeletedAt)
	assert.Equal(t, "INV/26/001", doc.Number, "original number after restore")

	// Restore of an active document is invalid
	assert.ErrorIs(t, doc.Restore(), shared.ErrInvalidState)
}

func TestDocument_SetStatus(t *testing.T) {
	invoice := createTestDocument(t, DocumentKindInvoice)
	require.NoError(t, invoice.SetStatus(InvoiceStatusPartial))
	assert.Equal(t, InvoiceStatusPartial, invoice.Status)

	assert.Error(t, invoice.SetStatus(InvoiceStatus("overdue")))

	note := createTestDocument(t, DocumentKindCreditNote)
	assert.Error(t, note.SetStatus(InvoiceStatusPaid))
}

func TestDocument_UpdateLineItems(t *testing.T) {
	doc := createTestDocument(t, DocumentKindInvoice)
	finalizeTestDocument(t, doc)

	t.Run("empty replacement rejected", func(t *testing.T) {
		assert.ErrorIs(t, doc.UpdateLineItems(nil), shared.ErrEmptyLineItems)
	})

	t.Run("valid replacement keeps number", func(t *testing.T) {
		items := LineItems{mustLineItem(t, "Revised consulting", 3, 700, 18)}
		require.NoError(t, doc.UpdateLineItems(items))
		assert.Equal(t, "INV/26/001", doc.Number)
		assert.Len(t, doc.LineItems, 1)
	})

	t.Run("deleted document cannot be edited", func(t *testing.T) {
		require.NoError(t, doc.SoftDelete())
		items := LineItems{mustLineItem(t, "More", 1, 100, 18)}
		assert.ErrorIs(t, doc.UpdateLineItems(items), shared.ErrInvalidState)
	})
}
