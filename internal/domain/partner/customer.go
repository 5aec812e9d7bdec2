// Package partner contains the customer and business profile records
// the billing core consumes.
package partner

import (
	"regexp"
	"strings"

	"github.com/gstbill/backend/internal/domain/shared"
	"github.com/gstbill/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// gstinPattern matches the 15-character GSTIN format: 2-digit state
// code, 10-character PAN, entity code, default 'Z', check character.
var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)

// Customer is the aggregate root for a billable party.
//
// Balance is a denormalized cache of the customer's ledger position;
// it is only ever written by the ledger repository, atomically with
// the posting that changes it. Positive means the customer owes the
// business.
type Customer struct {
	shared.AccountAggregateRoot
	Name    string            `gorm:"type:varchar(200);not null"`
	State   string            `gorm:"type:varchar(100)"`
	GSTIN   string            `gorm:"type:varchar(15);index"`
	Phone   string            `gorm:"type:varchar(50)"`
	Email   string            `gorm:"type:varchar(200)"`
	Address string            `gorm:"type:text"`
	Balance valueobject.Money `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer
func NewCustomer(accountID uuid.UUID, name, state, gstin string) (*Customer, error) {
	if accountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Account ID cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	gstin = strings.ToUpper(strings.TrimSpace(gstin))
	if gstin != "" && !gstinPattern.MatchString(gstin) {
		return nil, shared.NewDomainError("INVALID_GSTIN", "GSTIN is not a valid 15-character identifier")
	}

	return &Customer{
		AccountAggregateRoot: shared.NewAccountAggregateRoot(accountID),
		Name:                 name,
		State:                state,
		GSTIN:                gstin,
		Balance:              valueobject.ZeroINR(),
	}, nil
}

// IsRegistered reports whether the customer has a GSTIN
func (c *Customer) IsRegistered() bool {
	return c.GSTIN != ""
}

// Update changes the customer's contact details
func (c *Customer) Update(name, state, phone, email, address string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	c.Name = name
	c.State = state
	c.Phone = phone
	c.Email = email
	c.Address = address
	return nil
}

// SetGSTIN sets or clears the customer's GSTIN
func (c *Customer) SetGSTIN(gstin string) error {
	gstin = strings.ToUpper(strings.TrimSpace(gstin))
	if gstin != "" && !gstinPattern.MatchString(gstin) {
		return shared.NewDomainError("INVALID_GSTIN", "GSTIN is not a valid 15-character identifier")
	}
	c.GSTIN = gstin
	return nil
}

// ValidGSTIN reports whether the string is a well-formed GSTIN
func ValidGSTIN(gstin string) bool {
	return gstinPattern.MatchString(strings.ToUpper(strings.TrimSpace(gstin)))
}
