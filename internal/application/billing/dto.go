package billing

import (
	"time"

	"github.com/gstbill/backend/internal/domain/billing"
	"github.com/gstbill/backend/internal/domain/shared"
	"github.com/gstbill/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItemInput is one billable line in a create/edit request
type LineItemInput struct {
	Description string          `json:"description"`
	HSNCode     string          `json:"hsn_code"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	GSTRate     decimal.Decimal `json:"gst_rate"`
}

// CreateDocumentInput carries everything needed to finalize a new document
type CreateDocumentInput struct {
	AccountID      uuid.UUID
	CustomerID     uuid.UUID
	Kind           billing.DocumentKind
	Date           time.Time
	Items          []LineItemInput
	Reason         string
	SupplyOverride *billing.SupplyType
	Export         billing.ExportDetails
}

// EditDocumentInput carries an edit to an already-finalized document
type EditDocumentInput struct {
	AccountID      uuid.UUID
	DocumentID     uuid.UUID
	Items          []LineItemInput
	SupplyOverride *billing.SupplyType
	Export         billing.ExportDetails
	DisplayNumber  string // optional printed-number override
}

// DocumentResult is the outcome of a document operation: the persisted
// document, any non-blocking consistency warnings, and the customer's
// balance after the ledger effect.
type DocumentResult struct {
	Document *billing.Document `json:"document"`
	Warnings shared.Warnings   `json:"warnings,omitempty"`
	Balance  valueobject.Money `json:"customer_balance"`
}

// toLineItems converts and validates request lines
func toLineItems(inputs []LineItemInput) (billing.LineItems, error) {
	items := make(billing.LineItems, 0, len(inputs))
	for _, in := range inputs {
		item, err := billing.NewLineItem(
			in.Description,
			in.HSNCode,
			in.Quantity,
			valueobject.NewMoneyINR(in.Rate),
			in.GSTRate,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
