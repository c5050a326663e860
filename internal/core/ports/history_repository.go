package ports

import (
	"context"

	"purchases/internal/core/domain/model/history"
	"purchases/internal/core/domain/model/kernel"
)

// HistoryRepository defines the persistence contract for the append-only
// status history.
type HistoryRepository interface {
	// Append inserts a status record unconditionally. No existence check is
	// performed against the referenced purchase id; the history accepts
	// records for ids it has never seen.
	Append(ctx context.Context, record history.StatusRecord) error

	// GetByPurchaseID retrieves all records for a purchase in insertion
	// order. An empty result is returned as an empty slice, not an error.
	GetByPurchaseID(ctx context.Context, purchaseID kernel.UUID) ([]history.StatusRecord, error)
}
