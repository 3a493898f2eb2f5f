// Package uid provides DICOM Unique Identifier (UID) validation, generation,
// and the transfer-syntax UID constants this library recognizes.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_9
package uid

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidUID is returned when a UID string violates the PS3.5 rules.
var ErrInvalidUID = errors.New("invalid UID")

// IsValid reports whether s is a syntactically valid DICOM UID.
//
// Validation rules per DICOM Part 5 Section 9.1:
//   - at most 64 characters
//   - digits and periods only
//   - no leading/trailing/consecutive periods
//   - no leading zeros in a component (except "0" itself)
func IsValid(s string) bool {
	if s == "" || len(s) > 64 {
		return false
	}
	if s[0] == '.' || s[len(s)-1] == '.' {
		return false
	}

	components := strings.Split(s, ".")
	if len(components) < 2 {
		return false
	}
	for _, comp := range components {
		if comp == "" {
			return false
		}
		if len(comp) > 1 && comp[0] == '0' {
			return false
		}
		for _, ch := range comp {
			if ch < '0' || ch > '9' {
				return false
			}
		}
	}
	return true
}

// Validate returns an error describing why s is not a valid UID, or nil.
func Validate(s string) error {
	if !IsValid(s) {
		return fmt.Errorf("%w: %q", ErrInvalidUID, s)
	}
	return nil
}

// Generate creates a new unique DICOM UID in the "2.25.<integer>" form,
// where the integer is the decimal rendering of a random UUID. This is the
// standard UUID-derived UID construction from PS3.5 Annex B.2.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_B.2
func Generate() string {
	u := uuid.New()
	n := new(big.Int).SetBytes(u[:])
	return "2.25." + n.String()
}
