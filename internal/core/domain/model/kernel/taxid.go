package kernel

import (
	"fmt"
	"strings"

	"purchases/internal/pkg/errs"
	"purchases/internal/pkg/guard"
)

// ErrTaxIDIsNotConstructed is returned when attempting to use an improperly
// initialized TaxID. Tax ids must be created via NewTaxID.
var ErrTaxIDIsNotConstructed = errs.NewValueIsRequiredError(
	"tax id must be created via NewTaxID constructor")

const taxIDDigits = 11

// TaxID is an immutable value object holding a customer tax id (CPF).
// Input is accepted either as eleven bare digits or in the punctuated
// 000.000.000-00 form; the canonical representation is always punctuated.
// Both check digits are verified on construction.
type TaxID struct { //nolint:recvcheck //using for validation
	digits string

	guard guard.ConstructorGuard
}

// NewTaxID creates a TaxID from its string form, verifying length and both
// CPF check digits.
func NewTaxID(value string) (TaxID, error) {
	if value == "" {
		return TaxID{}, errs.NewValueIsRequiredError("taxId")
	}

	digits := strings.NewReplacer(".", "", "-", "").Replace(value)
	if len(digits) != taxIDDigits || !isAllDigits(digits) {
		return TaxID{}, errs.NewValueIsInvalidErrorWithCause("taxId",
			fmt.Errorf("%q is not an eleven-digit tax id", value))
	}
	if allSame(digits) {
		return TaxID{}, errs.NewValueIsInvalidErrorWithCause("taxId",
			fmt.Errorf("%q has no valid check digits", value))
	}
	if digits[9] != checkDigit(digits[:9], 10) || digits[10] != checkDigit(digits[:10], 11) {
		return TaxID{}, errs.NewValueIsInvalidErrorWithCause("taxId",
			fmt.Errorf("%q has invalid check digits", value))
	}

	return TaxID{
		digits: digits,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// String returns the tax id in its punctuated 000.000.000-00 form.
func (t TaxID) String() string {
	d := t.digits
	return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11]
}

// Digits returns the eleven bare digits of the tax id.
func (t TaxID) Digits() string {
	return t.digits
}

// IsEqual compares two tax ids by value.
func (t TaxID) IsEqual(other TaxID) bool {
	return t.digits == other.digits
}

// Validate ensures the TaxID was created through NewTaxID.
func (t TaxID) Validate() error {
	return t.guard.Validate(ErrTaxIDIsNotConstructed)
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func allSame(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

// checkDigit computes a CPF check digit over prefix using descending weights
// starting at firstWeight.
func checkDigit(prefix string, firstWeight int) byte {
	sum := 0
	for i := range len(prefix) {
		sum += int(prefix[i]-'0') * (firstWeight - i)
	}
	d := (sum * 10) % 11 % 10
	return byte('0' + d)
}
