package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gstbill/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormLedgerRepository_FindByCustomer(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormLedgerRepository(db)

	accountID := uuid.New()
	customerID := uuid.New()

	rows := sqlmock.NewRows([]string{
		"id", "account_id", "customer_id", "seq", "date", "type",
		"amount", "description", "running_balance",
	}).
		AddRow(uuid.New(), accountID, customerID, 1,
			time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), "debit",
			decimal.NewFromInt(1180), "Invoice INV/26/001", decimal.NewFromInt(1180)).
		AddRow(uuid.New(), accountID, customerID, 2,
			time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), "credit",
			decimal.NewFromInt(200), "Payment received", decimal.NewFromInt(980))

	mock.ExpectQuery(`SELECT \* FROM "ledger_entries" WHERE account_id = \$1 AND customer_id = \$2 ORDER BY date asc, seq asc`).
		WithArgs(accountID, customerID).
		WillReturnRows(rows)

	entries, err := repo.FindByCustomer(context.Background(), accountID, customerID)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, ledger.EntryTypeDebit, entries[0].Type)
	assert.Equal(t, "1180", entries[0].RunningBalance.Amount().String())
	assert.Equal(t, ledger.EntryTypeCredit, entries[1].Type)
	assert.Equal(t, "980", entries[1].RunningBalance.Amount().String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormLedgerRepository_FindByDocument(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormLedgerRepository(db)

	documentID := uuid.New()

	rows := sqlmock.NewRows([]string{
		"id", "account_id", "customer_id", "seq", "date", "type",
		"amount", "description", "document_id", "running_balance",
	}).
		AddRow(uuid.New(), uuid.New(), uuid.New(), 1, time.Now(), "debit",
			decimal.NewFromInt(1180), "Invoice INV/26/001", documentID, decimal.NewFromInt(1180)).
		AddRow(uuid.New(), uuid.New(), uuid.New(), 5, time.Now(), "debit",
			decimal.NewFromInt(590), "Adjustment for INV/26/001", documentID, decimal.NewFromInt(1770))

	mock.ExpectQuery(`SELECT \* FROM "ledger_entries" WHERE document_id = \$1 ORDER BY seq asc`).
		WithArgs(documentID).
		WillReturnRows(rows)

	entries, err := repo.FindByDocument(context.Background(), documentID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, documentID, *entries[0].DocumentID)
}
