package ports

import (
	"context"

	"purchases/internal/core/domain/model/kernel"
	"purchases/internal/core/domain/model/purchase"
)

// PurchaseRepository defines the persistence contract for purchase aggregates.
type PurchaseRepository interface {
	// Add persists a new purchase aggregate with its line items.
	Add(ctx context.Context, aggregate *purchase.Purchase) error

	// Update persists changes to an existing purchase, honoring the
	// aggregate's optimistic-concurrency version: the write is rejected
	// with a version conflict when the stored version no longer matches.
	Update(ctx context.Context, aggregate *purchase.Purchase) error

	// Get retrieves a purchase by its unique identifier, items included.
	Get(ctx context.Context, id kernel.UUID) (*purchase.Purchase, error)

	// GetAllPaidOrderedByZipCode retrieves every purchase in Paid status,
	// ordered ascending by delivery zip code (lexicographic string order).
	// Used by dispatch to build contiguous delivery groups.
	GetAllPaidOrderedByZipCode(ctx context.Context) ([]*purchase.Purchase, error)
}
