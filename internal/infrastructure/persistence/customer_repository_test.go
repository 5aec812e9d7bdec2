package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gstbill/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDB creates a GORM connection backed by sqlmock
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestGormCustomerRepository_FindByIDForAccount(t *testing.T) {
	t.Run("finds existing customer", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormCustomerRepository(db)

		customerID := uuid.New()
		accountID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "account_id", "version", "name", "state", "gstin", "balance"}).
			AddRow(customerID, accountID, 1, "Acme Traders", "Maharashtra", "", decimal.Zero)

		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE account_id = \$1 AND id = \$2 .*LIMIT .*`).
			WithArgs(accountID, customerID, 1).
			WillReturnRows(rows)

		customer, err := repo.FindByIDForAccount(context.Background(), accountID, customerID)

		require.NoError(t, err)
		assert.Equal(t, customerID, customer.ID)
		assert.Equal(t, "Acme Traders", customer.Name)
		assert.True(t, customer.Balance.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing customer", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormCustomerRepository(db)

		accountID := uuid.New()
		customerID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE account_id = \$1 AND id = \$2 .*LIMIT .*`).
			WithArgs(accountID, customerID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByIDForAccount(context.Background(), accountID, customerID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("does not leak customers across accounts", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormCustomerRepository(db)

		otherAccount := uuid.New()
		customerID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE account_id = \$1 AND id = \$2 .*LIMIT .*`).
			WithArgs(otherAccount, customerID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByIDForAccount(context.Background(), otherAccount, customerID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormCustomerRepository_FindAllForAccount(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormCustomerRepository(db)

	accountID := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "account_id", "version", "name", "state", "gstin", "balance"}).
		AddRow(uuid.New(), accountID, 1, "Acme Traders", "Maharashtra", "", decimal.Zero).
		AddRow(uuid.New(), accountID, 1, "Gujarat Metals", "Gujarat", "24ABCDE1234F1Z5", decimal.NewFromInt(1180))

	mock.ExpectQuery(`SELECT \* FROM "customers" WHERE account_id = \$1.*`).
		WithArgs(accountID).
		WillReturnRows(rows)

	customers, err := repo.FindAllForAccount(context.Background(), accountID, shared.Filter{})
	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.True(t, customers[1].IsRegistered())
}
