package billing

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/gstbill/backend/internal/domain/shared"
	"github.com/gstbill/backend/internal/domain/shared/valueobject"
)

// SupplyType is the statutory GSTR-1 bucket a document is reported under
type SupplyType string

const (
	SupplyTypeB2B    SupplyType = "B2B"    // Registered customer (has GSTIN)
	SupplyTypeB2CS   SupplyType = "B2CS"   // Unregistered, small
	SupplyTypeB2CL   SupplyType = "B2CL"   // Unregistered, large inter-state
	SupplyTypeSEZWP  SupplyType = "SEZWP"  // SEZ with payment of tax
	SupplyTypeSEZWOP SupplyType = "SEZWOP" // SEZ without payment of tax
	SupplyTypeEXPWP  SupplyType = "EXPWP"  // Export with payment of tax
	SupplyTypeEXPWOP SupplyType = "EXPWOP" // Export without payment of tax
	SupplyTypeDE     SupplyType = "DE"     // Deemed export
)

// B2CLThreshold is the invoice value above which an inter-state supply
// to an unregistered customer is reported as B2CL instead of B2CS.
var B2CLThreshold = valueobject.NewMoneyINRFromInt(250000)

// String returns the string representation of SupplyType
func (s SupplyType) String() string {
	return string(s)
}

// IsValid returns true if the supply type is valid
func (s SupplyType) IsValid() bool {
	switch s {
	case SupplyTypeB2B, SupplyTypeB2CS, SupplyTypeB2CL,
		SupplyTypeSEZWP, SupplyTypeSEZWOP,
		SupplyTypeEXPWP, SupplyTypeEXPWOP, SupplyTypeDE:
		return true
	}
	return false
}

// IsExport returns true for the export buckets
func (s SupplyType) IsExport() bool {
	return s == SupplyTypeEXPWP || s == SupplyTypeEXPWOP
}

// IsSEZ returns true for the SEZ buckets
func (s SupplyType) IsSEZ() bool {
	return s == SupplyTypeSEZWP || s == SupplyTypeSEZWOP
}

// NeedsShippingDetails returns true when the bucket requires port and
// shipping bill information on the document
func (s SupplyType) NeedsShippingDetails() bool {
	return s.IsExport() || s.IsSEZ()
}

// ClassificationInput carries the customer attributes the classifier
// reads. The GSTIN is the only registration signal; state comparison
// uses the same convention as the tax splitter.
type ClassificationInput struct {
	CustomerGSTIN string
	CustomerState string
	SupplierState string
	TotalValue    valueobject.Money
}

// ClassifySupply derives the GSTR-1 supply type for a document.
//
// A manual override always wins; the SEZ, export and deemed-export
// buckets are only reachable through it. Auto-detection: a customer
// with a GSTIN is B2B; an unregistered inter-state customer above the
// B2CL threshold is B2CL; everything else, including an unknown
// customer state, falls through to B2CS. Classification never fails.
func ClassifySupply(input ClassificationInput, override *SupplyType) SupplyType {
	if override != nil && override.IsValid() {
		return *override
	}

	if input.CustomerGSTIN != "" {
		return SupplyTypeB2B
	}

	if IsInterState(input.SupplierState, input.CustomerState) {
		above, err := input.TotalValue.GreaterThan(B2CLThreshold)
		if err == nil && above {
			return SupplyTypeB2CL
		}
	}

	return SupplyTypeB2CS
}

// ExportDetails carries the shipping fields required for export and SEZ
// supplies. They are optional at save time; missing fields produce
// warnings, not errors.
type ExportDetails struct {
	PortCode           string `json:"port_code,omitempty"`
	ShippingBillNumber string `json:"shipping_bill_number,omitempty"`
	ShippingBillDate   string `json:"shipping_bill_date,omitempty"`
	DestinationCountry string `json:"destination_country,omitempty"`
}

// IsEmpty reports whether no shipping field is set
func (d ExportDetails) IsEmpty() bool {
	return d.PortCode == "" && d.ShippingBillNumber == "" &&
		d.ShippingBillDate == "" && d.DestinationCountry == ""
}

// Value implements driver.Valuer for JSONB storage
func (d ExportDetails) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan implements sql.Scanner for JSONB retrieval
func (d *ExportDetails) Scan(value interface{}) error {
	if value == nil {
		*d = ExportDetails{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan ExportDetails: unsupported type")
	}

	if len(bytes) == 0 {
		*d = ExportDetails{}
		return nil
	}

	return json.Unmarshal(bytes, d)
}

// CheckExportDetails returns warnings for shipping fields that are
// missing on an export/SEZ document. Returns nil for domestic buckets.
func CheckExportDetails(supplyType SupplyType, details ExportDetails) shared.Warnings {
	if !supplyType.NeedsShippingDetails() {
		return nil
	}

	var warnings shared.Warnings
	if details.PortCode == "" {
		warnings = warnings.Add("MISSING_PORT_CODE", "Port code is missing for an export/SEZ supply")
	}
	if details.ShippingBillNumber == "" {
		warnings = warnings.Add("MISSING_SHIPPING_BILL_NUMBER", "Shipping bill number is missing for an export/SEZ supply")
	}
	if details.ShippingBillDate == "" {
		warnings = warnings.Add("MISSING_SHIPPING_BILL_DATE", "Shipping bill date is missing for an export/SEZ supply")
	}
	if details.DestinationCountry == "" {
		warnings = warnings.Add("MISSING_DESTINATION_COUNTRY", "Destination country is missing for an export/SEZ supply")
	}
	return warnings
}
