// Package services provides domain services that operate across multiple
// purchase aggregates. It implements business logic that doesn't naturally
// belong to a single aggregate root.
//
// The package includes:
//   - DeliveryGrouper: partitions zip-ordered paid purchases into contiguous
//     delivery groups keyed by postal-code prefix
//   - GroupIDGenerator: mints unique, monotonically increasing delivery group
//     ids from millisecond timestamps
package services
