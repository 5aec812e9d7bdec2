// Package ledger provides application-level ledger operations: manual
// payment recording and customer statements.
package ledger

import (
	"context"
	"time"

	"github.com/gstbill/backend/internal/domain/ledger"
	"github.com/gstbill/backend/internal/domain/partner"
	"github.com/gstbill/backend/internal/domain/shared"
	"github.com/gstbill/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentService records customer payments and produces statements
type PaymentService struct {
	ledgerRepo   ledger.Repository
	customerRepo partner.CustomerRepository
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(ledgerRepo ledger.Repository, customerRepo partner.CustomerRepository) *PaymentService {
	return &PaymentService{
		ledgerRepo:   ledgerRepo,
		customerRepo: customerRepo,
	}
}

// RecordPaymentInput carries a manual payment entry
type RecordPaymentInput struct {
	AccountID   uuid.UUID
	CustomerID  uuid.UUID
	Date        time.Time
	Amount      decimal.Decimal
	Description string
}

// PaymentResult is the posted entry and the customer's balance after it
type PaymentResult struct {
	Entry   *ledger.Entry     `json:"entry"`
	Balance valueobject.Money `json:"customer_balance"`
}

// RecordPayment posts a credit entry for a received payment. The entry
// append and the customer balance update are one atomic unit in the
// repository; a failed post leaves both untouched.
func (s *PaymentService) RecordPayment(ctx context.Context, input RecordPaymentInput) (*PaymentResult, error) {
	if input.Amount.IsZero() || input.Amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	customer, err := s.customerRepo.FindByIDForAccount(ctx, input.AccountID, input.CustomerID)
	if err != nil {
		return nil, err
	}

	description := input.Description
	if description == "" {
		description = "Payment received"
	}

	entry, err := ledger.NewEntry(
		input.AccountID,
		customer.ID,
		input.Date,
		ledger.EntryTypeCredit,
		valueobject.NewMoneyINR(input.Amount),
		description,
		nil,
	)
	if err != nil {
		return nil, err
	}

	balance, err := s.ledgerRepo.Post(ctx, entry)
	if err != nil {
		return nil, err
	}

	return &PaymentResult{Entry: entry, Balance: balance}, nil
}

// Statement is a customer's chronological ledger with running balances
type Statement struct {
	Entries        []ledger.Entry    `json:"entries"`
	ClosingBalance valueobject.Money `json:"closing_balance"`
	BalanceSide    string            `json:"balance_side"`
}

// CustomerStatement returns the customer's entries in chronological
// order with each entry's running balance stamped on it.
func (s *PaymentService) CustomerStatement(ctx context.Context, accountID, customerID uuid.UUID) (*Statement, error) {
	if _, err := s.customerRepo.FindByIDForAccount(ctx, accountID, customerID); err != nil {
		return nil, err
	}
	entries, err := s.ledgerRepo.FindByCustomer(ctx, accountID, customerID)
	if err != nil {
		return nil, err
	}

	ordered := ledger.RunningBalances(entries)
	closing := ledger.ClosingBalance(ordered)
	return &Statement{
		Entries:        ordered,
		ClosingBalance: closing,
		BalanceSide:    ledger.BalanceSide(closing),
	}, nil
}
