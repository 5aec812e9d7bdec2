package billing

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gstbill/backend/internal/domain/shared"
	"github.com/gstbill/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Standard GST slabs offered in the UI. Not enforced as a hard
// invariant; a custom rate is accepted.
var StandardGSTRates = []decimal.Decimal{
	decimal.NewFromInt(0),
	decimal.NewFromInt(5),
	decimal.NewFromInt(12),
	decimal.NewFromInt(18),
	decimal.NewFromInt(28),
}

// LineItem represents a single billable line on a document
type LineItem struct {
	Description string            `json:"description"`
	HSNCode     string            `json:"hsn_code"`
	Quantity    decimal.Decimal   `json:"quantity"`
	Rate        valueobject.Money `json:"rate"`
	GSTRate     decimal.Decimal   `json:"gst_rate"` // percentage
}

// NewLineItem creates a validated line item
func NewLineItem(description, hsnCode string, quantity decimal.Decimal, rate valueobject.Money, gstRate decimal.Decimal) (LineItem, error) {
	item := LineItem{
		Description: description,
		HSNCode:     hsnCode,
		Quantity:    quantity,
		Rate:        rate,
		GSTRate:     gstRate,
	}
	if err := item.Validate(); err != nil {
		return LineItem{}, err
	}
	return item, nil
}

// Validate checks the line item's hard invariants
func (i LineItem) Validate() error {
	if i.Description == "" {
		return shared.NewDomainError("INVALID_LINE_ITEM", "Line item description cannot be empty")
	}
	if i.Quantity.IsNegative() {
		return shared.NewDomainError("INVALID_LINE_ITEM", "Line item quantity cannot be negative")
	}
	if i.Rate.IsNegative() {
		return shared.NewDomainError("INVALID_LINE_ITEM", "Line item rate cannot be negative")
	}
	if i.GSTRate.IsNegative() {
		return shared.NewDomainError("INVALID_LINE_ITEM", "Line item GST rate cannot be negative")
	}
	return nil
}

// Amount returns quantity x rate
func (i LineItem) Amount() valueobject.Money {
	return i.Rate.Multiply(i.Quantity)
}

// TaxAmount returns quantity x rate x gstRate / 100
func (i LineItem) TaxAmount() valueobject.Money {
	return i.Amount().CalculatePercentage(i.GSTRate)
}

// LineItems is a slice of LineItem stored as JSONB on the owning document
type LineItems []LineItem

// Validate validates every item in the collection
func (items LineItems) Validate() error {
	for idx, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("line item %d: %w", idx+1, err)
		}
	}
	return nil
}

// Value implements driver.Valuer for JSONB storage
func (items LineItems) Value() (driver.Value, error) {
	if items == nil {
		return "[]", nil
	}
	return json.Marshal(items)
}

// Scan implements sql.Scanner for JSONB retrieval
func (items *LineItems) Scan(value interface{}) error {
	if value == nil {
		*items = LineItems{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan LineItems: unsupported type")
	}

	if len(bytes) == 0 {
		*items = LineItems{}
		return nil
	}

	return json.Unmarshal(bytes, items)
}
