// Package identity allocates globally unique professional identifiers
// under concurrent registration.
package identity

import (
	"context"
	"fmt"
	"regexp"

	"github.com/gstbill/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// IdentifierPrefix is the fixed prefix of every professional identifier
const IdentifierPrefix = "BHP"

var designationPattern = regexp.MustCompile(`^[A-Z]{1,4}$`)

// FormatIdentifier renders a professional identifier:
// "BHP" + designation code + zero-padded 5-digit counter.
func FormatIdentifier(designationCode string, counter int64) string {
	return fmt.Sprintf("%s%s%05d", IdentifierPrefix, designationCode, counter)
}

// ValidDesignationCode reports whether the code is usable in an identifier
func ValidDesignationCode(code string) bool {
	return designationPattern.MatchString(code)
}

// Identifier is an allocated professional identifier. Authoritative is
// false when the value came from the randomized fallback path instead
// of the atomic counter; such values are best-effort only and collision
// probability is reduced, not eliminated.
type Identifier struct {
	Value         string `json:"value"`
	Authoritative bool   `json:"authoritative"`
}

// Allocator hands out identifiers. Implementations must perform a
// single atomic increment-and-read on a shared counter record - never
// a read-then-write in two steps - so concurrent callers can never
// compute the same next value.
type Allocator interface {
	Allocate(ctx context.Context, designationCode string) (Identifier, error)
}

// Professional is a registered professional with an allocated identifier
type Professional struct {
	shared.BaseEntity
	Identifier      string `gorm:"type:varchar(20);not null;uniqueIndex"`
	DesignationCode string `gorm:"type:varchar(10);not null;index"`
	Name            string `gorm:"type:varchar(200);not null"`
	Email           string `gorm:"type:varchar(200)"`
	Phone           string `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (Professional) TableName() string {
	return "professionals"
}

// NewProfessional creates a professional with an already-allocated identifier
func NewProfessional(identifier Identifier, designationCode, name string) (*Professional, error) {
	if identifier.Value == "" {
		return nil, shared.NewDomainError("INVALID_IDENTIFIER", "Identifier cannot be empty")
	}
	if !ValidDesignationCode(designationCode) {
		return nil, shared.NewDomainError("INVALID_DESIGNATION", "Designation code must be 1-4 upper-case letters")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Professional name cannot be empty")
	}

	return &Professional{
		BaseEntity:      shared.NewBaseEntity(),
		Identifier:      identifier.Value,
		DesignationCode: designationCode,
		Name:            name,
	}, nil
}

// ProfessionalRepository defines persistence for professionals
type ProfessionalRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Professional, error)
	FindByIdentifier(ctx context.Context, identifier string) (*Professional, error)
	Save(ctx context.Context, professional *Professional) error
}
