package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocumentSeries(t *testing.T) {
	accountID := uuid.New()

	t.Run("valid series", func(t *testing.T) {
		series, err := NewDocumentSeries(accountID, DocumentKindInvoice, "INV")
		require.NoError(t, err)
		assert.Equal(t, int64(0), series.IssuedCount)
		assert.Equal(t, "INV", series.Prefix)
	})

	t.Run("empty prefix uses kind default", func(t *testing.T) {
		series, err := NewDocumentSeries(accountID, DocumentKindCreditNote, "")
		require.NoError(t, err)
		assert.Equal(t, "CN", series.Prefix)
	})

	t.Run("nil account rejected", func(t *testing.T) {
		_, err := NewDocumentSeries(uuid.Nil, DocumentKindInvoice, "INV")
		assert.Error(t, err)
	})

	t.Run("invalid kind rejected", func(t *testing.T) {
		_, err := NewDocumentSeries(accountID, DocumentKind("receipt"), "R")
		assert.Error(t, err)
	})
}

func TestFormatNumber(t *testing.T) {
	date := time.Date(2026, 4, 12, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "INV/26/001", FormatNumber("INV", date, 1))
	assert.Equal(t, "INV/26/042", FormatNumber("INV", date, 42))
	assert.Equal(t, "CN/26/1000", FormatNumber("CN", date, 1000))
}

func TestDocumentSeries_Reserve(t *testing.T) {
	series, err := NewDocumentSeries(uuid.New(), DocumentKindInvoice, "INV")
	require.NoError(t, err)
	date := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	first := series.Reserve(date)
	second := series.Reserve(date)
	third := series.Reserve(date)

	assert.Equal(t, "INV/26/001", first)
	assert.Equal(t, "INV/26/002", second)
	assert.Equal(t, "INV/26/003", third)
	assert.Equal(t, int64(3), series.IssuedCount)
}

func TestDocumentSeries_PreviewDoesNotAdvanceCounter(t *testing.T) {
	series, err := NewDocumentSeries(uuid.New(), DocumentKindInvoice, "INV")
	require.NoError(t, err)
	date := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	preview := series.PreviewNextNumber(date)
	assert.Equal(t, "INV/26/001", preview)
	assert.Equal(t, int64(0), series.IssuedCount)

	// Preview matches the next actual reservation
	assert.Equal(t, preview, series.Reserve(date))
}

func TestDocumentSeries_NumbersSurviveSoftDelete(t *testing.T) {
	// The counter tracks every number ever issued; deleting a document
	// never frees its number. INV/26/001 deleted, the next invoice is
	// still INV/26/003.
	series, err := NewDocumentSeries(uuid.New(), DocumentKindInvoice, "INV")
	require.NoError(t, err)
	date := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	issued := map[string]bool{}
	issued[series.Reserve(date)] = true
	issued[series.Reserve(date)] = true

	// Soft-deleting the first document has no effect on the series.
	assert.Equal(t, "INV/26/003", series.PreviewNextNumber(date))

	third := series.Reserve(date)
	assert.Equal(t, "INV/26/003", third)
	assert.False(t, issued[third], "number reissued")
}

func TestDocumentSeries_SetPrefix(t *testing.T) {
	series, err := NewDocumentSeries(uuid.New(), DocumentKindInvoice, "INV")
	require.NoError(t, err)
	date := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	_ = series.Reserve(date)

	require.NoError(t, series.SetPrefix("TAX"))
	// Counter continues across prefix changes
	assert.Equal(t, "TAX/26/002", series.PreviewNextNumber(date))

	assert.Error(t, series.SetPrefix(""))
}

func TestDocumentKind(t *testing.T) {
	assert.True(t, DocumentKindInvoice.IsValid())
	assert.True(t, DocumentKindCreditNote.IsValid())
	assert.True(t, DocumentKindDebitNote.IsValid())
	assert.False(t, DocumentKind("quote").IsValid())

	assert.Equal(t, "INV", DocumentKindInvoice.DefaultPrefix())
	assert.Equal(t, "CN", DocumentKindCreditNote.DefaultPrefix())
	assert.Equal(t, "DN", DocumentKindDebitNote.DefaultPrefix())
}
