// Package kernel provides core domain primitives used throughout the purchase
// lifecycle model.
//
// The package includes:
//   - UUID: a value object for unique identifiers with validation and comparison
//   - ZipCode: a fixed-width delivery postal code (DDDDD-DDD) with locality prefix
//   - TaxID: a customer tax id (CPF) with check-digit validation
//
// These primitives enforce domain invariants and validation rules, ensuring that
// domain objects are always in a valid state. They are immutable and safe for
// concurrent use.
package kernel
