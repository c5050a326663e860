package kernel

import (
	"fmt"
	"regexp"

	"purchases/internal/pkg/errs"
	"purchases/internal/pkg/guard"
)

// ZipCodePrefixLength is the number of leading characters that define a
// delivery locality. Purchases whose zip codes share this prefix are close
// enough to be delivered together.
const ZipCodePrefixLength = 4

// ErrZipCodeIsNotConstructed is returned when attempting to use an improperly
// initialized ZipCode. Zip codes must be created via NewZipCode.
var ErrZipCodeIsNotConstructed = errs.NewValueIsRequiredError(
	"zip code must be created via NewZipCode constructor")

var zipCodePattern = regexp.MustCompile(`^\d{5}-\d{3}$`)

// ZipCode is an immutable value object holding a delivery postal code in the
// fixed-width form DDDDD-DDD. The zero value is invalid and fails validation.
//
// Example:
//
//	zip, err := kernel.NewZipCode("12380-000")
//	if err != nil {
//	    // handle validation error
//	}
//	zip.Prefix() // "1238"
type ZipCode struct { //nolint:recvcheck //using for validation
	value string

	guard guard.ConstructorGuard
}

// NewZipCode creates a ZipCode from its string form.
// The input must match DDDDD-DDD exactly; anything else is rejected.
func NewZipCode(value string) (ZipCode, error) {
	if value == "" {
		return ZipCode{}, errs.NewValueIsRequiredError("zipCode")
	}
	if !zipCodePattern.MatchString(value) {
		return ZipCode{}, errs.NewValueIsInvalidErrorWithCause("zipCode",
			fmt.Errorf("%q does not match the DDDDD-DDD format", value))
	}

	return ZipCode{
		value: value,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// String returns the zip code in its DDDDD-DDD form.
func (z ZipCode) String() string {
	return z.value
}

// Prefix returns the leading ZipCodePrefixLength characters of the zip code.
// Zip codes sharing a prefix belong to the same delivery locality.
func (z ZipCode) Prefix() string {
	return z.value[:ZipCodePrefixLength]
}

// IsEqual compares two zip codes by value.
func (z ZipCode) IsEqual(other ZipCode) bool {
	return z.value == other.value
}

// Validate ensures the ZipCode was created through NewZipCode.
func (z ZipCode) Validate() error {
	return z.guard.Validate(ErrZipCodeIsNotConstructed)
}
