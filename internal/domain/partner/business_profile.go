package partner

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"

	"github.com/gstbill/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SeriesPrefixes maps a document kind name to the number prefix the
// account uses for that stream. Stored as JSONB.
type SeriesPrefixes map[string]string

// Value implements driver.Valuer for JSONB storage
func (p SeriesPrefixes) Value() (driver.Value, error) {
	if p == nil {
		return "{}", nil
	}
	return json.Marshal(p)
}

// Scan implements sql.Scanner for JSONB retrieval
func (p *SeriesPrefixes) Scan(value interface{}) error {
	if value == nil {
		*p = SeriesPrefixes{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan SeriesPrefixes: unsupported type")
	}

	if len(bytes) == 0 {
		*p = SeriesPrefixes{}
		return nil
	}

	return json.Unmarshal(bytes, p)
}

// BusinessProfile is the supplier-side record for one account: the
// state used for intra/inter-state decisions, the account's GSTIN, and
// per-series numbering preferences.
type BusinessProfile struct {
	shared.BaseEntity
	AccountID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	LegalName string         `gorm:"type:varchar(200);not null"`
	State     string         `gorm:"type:varchar(100);not null"`
	GSTIN     string         `gorm:"type:varchar(15)"`
	Prefixes  SeriesPrefixes `gorm:"type:jsonb"`
	// HSNDigits is the minimum HSN code length the account's turnover
	// bracket requires on line items.
	HSNDigits int `gorm:"not null;default:4"`
}

// TableName returns the table name for GORM
func (BusinessProfile) TableName() string {
	return "business_profiles"
}

// NewBusinessProfile creates a new profile
func NewBusinessProfile(accountID uuid.UUID, legalName, state, gstin string) (*BusinessProfile, error) {
	if accountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Account ID cannot be empty")
	}
	if strings.TrimSpace(legalName) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Legal name cannot be empty")
	}
	if strings.TrimSpace(state) == "" {
		return nil, shared.NewDomainError("INVALID_STATE", "Business state cannot be empty")
	}
	gstin = strings.ToUpper(strings.TrimSpace(gstin))
	if gstin != "" && !gstinPattern.MatchString(gstin) {
		return nil, shared.NewDomainError("INVALID_GSTIN", "GSTIN is not a valid 15-character identifier")
	}

	return &BusinessProfile{
		BaseEntity: shared.NewBaseEntity(),
		AccountID:  accountID,
		LegalName:  legalName,
		State:      state,
		GSTIN:      gstin,
		Prefixes:   SeriesPrefixes{},
		HSNDigits:  4,
	}, nil
}

// PrefixFor returns the configured prefix for a document kind, or the
// given default when none is set.
func (p *BusinessProfile) PrefixFor(kind string, fallback string) string {
	if prefix, ok := p.Prefixes[kind]; ok && prefix != "" {
		return prefix
	}
	return fallback
}

// SetPrefix stores a numbering prefix preference for a document kind
func (p *BusinessProfile) SetPrefix(kind, prefix string) error {
	if prefix == "" {
		return shared.NewDomainError("INVALID_PREFIX", "Series prefix cannot be empty")
	}
	if p.Prefixes == nil {
		p.Prefixes = SeriesPrefixes{}
	}
	p.Prefixes[kind] = prefix
	return nil
}

// CheckHSN returns a warning when the HSN code on a line item is
// shorter than the account's turnover bracket requires. Missing or
// short codes never block saving.
func (p *BusinessProfile) CheckHSN(hsnCode string) *shared.Warning {
	if len(hsnCode) >= p.HSNDigits {
		return nil
	}
	w := shared.NewWarning("HSN_TOO_SHORT", "HSN code is shorter than the turnover bracket requires")
	return &w
}
