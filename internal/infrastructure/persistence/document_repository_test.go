package persistence

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gstbill/backend/internal/domain/billing"
	"github.com/gstbill/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGormDocumentRepository_FindByIDForAccount(t *testing.T) {
	t.Run("finds existing document", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormDocumentRepository(db)

		accountID := uuid.New()
		documentID := uuid.New()
		customerID := uuid.New()

		rows := sqlmock.NewRows([]string{
			"id", "account_id", "version", "kind", "number", "display_number",
			"date", "customer_id", "line_items", "tax", "supply_type",
			"supply_override", "reason", "status", "deleted", "supplier_state", "customer_state",
		}).AddRow(
			documentID, accountID, 1, "invoice", "INV/26/001", "INV/26/001",
			time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), customerID,
			`[{"description":"Consulting","hsn_code":"9983","quantity":"2","rate":{"amount":"500","currency":"INR"},"gst_rate":"18"}]`,
			`{"subtotal":{"amount":"1000","currency":"INR"},"tax_amount":{"amount":"180","currency":"INR"},"cgst":{"amount":"90","currency":"INR"},"sgst":{"amount":"90","currency":"INR"},"igst":{"amount":"0","currency":"INR"},"grand_total":{"amount":"1180","currency":"INR"},"inter_state":false}`,
			"B2CS", false, "", "unpaid", false, "Maharashtra", "Maharashtra",
		)

		mock.ExpectQuery(`SELECT \* FROM "documents" WHERE account_id = \$1 AND id = \$2 .*LIMIT .*`).
			WithArgs(accountID, documentID, 1).
			WillReturnRows(rows)

		doc, err := repo.FindByIDForAccount(context.Background(), accountID, documentID)

		require.NoError(t, err)
		assert.Equal(t, "INV/26/001", doc.Number)
		assert.Equal(t, billing.DocumentKindInvoice, doc.Kind)
		assert.Equal(t, billing.SupplyTypeB2CS, doc.SupplyType)
		require.Len(t, doc.LineItems, 1)
		assert.Equal(t, "Consulting", doc.LineItems[0].Description)
		assert.Equal(t, "1180", doc.Tax.GrandTotal.Amount().String())
	})

	t.Run("returns ErrNotFound for missing document", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormDocumentRepository(db)

		accountID := uuid.New()
		documentID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "documents" WHERE account_id = \$1 AND id = \$2 .*LIMIT .*`).
			WithArgs(accountID, documentID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByIDForAccount(context.Background(), accountID, documentID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormDocumentRepository_CountBySeries(t *testing.T) {
	t.Run("excludes soft-deleted documents by default", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormDocumentRepository(db)

		accountID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "documents" WHERE \(account_id = \$1 AND kind = \$2\) AND deleted = \$3`).
			WithArgs(accountID, "invoice", false).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		count, err := repo.CountBySeries(context.Background(), accountID, billing.DocumentKindInvoice, false)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("includes soft-deleted documents when asked", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormDocumentRepository(db)

		accountID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "documents" WHERE account_id = \$1 AND kind = \$2`).
			WithArgs(accountID, "invoice").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		count, err := repo.CountBySeries(context.Background(), accountID, billing.DocumentKindInvoice, true)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})
}

func TestGormDocumentRepository_SaveStaleVersion(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormDocumentRepository(db)

	doc := &billing.Document{}
	doc.ID = uuid.New()
	doc.AccountID = uuid.New()
	doc.Version = 3

	// No row matches the stale version
	mock.ExpectExec(`UPDATE "documents" SET .*`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Save(context.Background(), doc)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	// The in-memory version is rolled back so a retry can reload cleanly
	assert.Equal(t, 3, doc.Version)
}

// Losing the race to create a series row must surface as a retryable
// conflict, not as a raw driver error.
func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isUniqueViolation(fmt.Errorf("create series: %w", &pgconn.PgError{Code: "23505"})))
	assert.True(t, isUniqueViolation(gorm.ErrDuplicatedKey))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "40001"}))
	assert.False(t, isUniqueViolation(errors.New("connection reset")))
	assert.False(t, isUniqueViolation(nil))
}

func TestKindLabel(t *testing.T) {
	assert.Equal(t, "Invoice", kindLabel(billing.DocumentKindInvoice))
	assert.Equal(t, "Credit note", kindLabel(billing.DocumentKindCreditNote))
	assert.Equal(t, "Debit note", kindLabel(billing.DocumentKindDebitNote))
}
