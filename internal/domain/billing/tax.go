package billing

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/gstbill/backend/internal/domain/shared/valueobject"
)

// TaxResult holds the computed tax split for a document.
// Invariant: CGST+SGST+IGST == TaxAmount, and exactly one of the two
// modes holds - intra-state (CGST == SGST == TaxAmount/2, IGST == 0) or
// inter-state (IGST == TaxAmount, CGST == SGST == 0).
type TaxResult struct {
	Subtotal   valueobject.Money `json:"subtotal"`
	TaxAmount  valueobject.Money `json:"tax_amount"`
	CGST       valueobject.Money `json:"cgst"`
	SGST       valueobject.Money `json:"sgst"`
	IGST       valueobject.Money `json:"igst"`
	GrandTotal valueobject.Money `json:"grand_total"`
	InterState bool              `json:"inter_state"`
}

// ZeroTaxResult returns an all-zero result
func ZeroTaxResult() TaxResult {
	zero := valueobject.ZeroINR()
	return TaxResult{
		Subtotal:   zero,
		TaxAmount:  zero,
		CGST:       zero,
		SGST:       zero,
		IGST:       zero,
		GrandTotal: zero,
	}
}

// IsZero reports whether the document carries no value at all
func (r TaxResult) IsZero() bool {
	return r.GrandTotal.IsZero()
}

// ComputeTax computes the subtotal, tax amount and the CGST/SGST/IGST
// split for a set of line items.
//
// Intra-state supply (customer in the supplier's own state) splits the
// tax equally between CGST and SGST; inter-state supply charges the
// full tax as IGST. An unknown or unset customer state is treated as
// intra-state: the conservative default is to bill in the supplier's
// own state.
//
// A zero-item or all-zero input yields an all-zero result; callers must
// reject that before emitting a ledger posting.
func ComputeTax(items LineItems, supplierState, customerState string) TaxResult {
	subtotal := valueobject.ZeroINR()
	taxAmount := valueobject.ZeroINR()
	for _, item := range items {
		subtotal = subtotal.MustAdd(item.Amount())
		taxAmount = taxAmount.MustAdd(item.TaxAmount())
	}

	result := TaxResult{
		Subtotal:   subtotal,
		TaxAmount:  taxAmount,
		CGST:       valueobject.ZeroINR(),
		SGST:       valueobject.ZeroINR(),
		IGST:       valueobject.ZeroINR(),
		GrandTotal: subtotal.MustAdd(taxAmount),
		InterState: IsInterState(supplierState, customerState),
	}

	if result.InterState {
		result.IGST = taxAmount
	} else {
		half := taxAmount.Half()
		result.CGST = half
		result.SGST = half
	}
	return result
}

// IsInterState reports whether a supply between the two states is
// inter-state. An empty customer state defaults to intra-state.
func IsInterState(supplierState, customerState string) bool {
	return customerState != "" && customerState != supplierState
}

// Value implements driver.Valuer for JSONB storage
func (r TaxResult) Value() (driver.Value, error) {
	return json.Marshal(r)
}

// Scan implements sql.Scanner for JSONB retrieval
func (r *TaxResult) Scan(value interface{}) error {
	if value == nil {
		*r = ZeroTaxResult()
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan TaxResult: unsupported type")
	}

	if len(bytes) == 0 {
		*r = ZeroTaxResult()
		return nil
	}

	return json.Unmarshal(bytes, r)
}
