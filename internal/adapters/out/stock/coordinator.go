// Package stock coordinates stock adjustments for purchase line items.
package stock

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"purchases/internal/core/domain/model/kernel"
	"purchases/internal/core/ports"
)

// ReservationCoordinator applies stock reservations and releases through the
// product catalog. Every adjustment carries an idempotency key of
// purchase id, product id and direction: a retried adjustment that already
// went through is a no-op instead of a double application. Keys are marked
// applied only after the catalog call succeeds, so a failed call stays
// retryable.
type ReservationCoordinator struct {
	catalog ports.ProductCatalog
	logger  *slog.Logger

	mu      sync.Mutex
	applied map[string]struct{}
}

// NewReservationCoordinator creates a coordinator over the given catalog.
func NewReservationCoordinator(catalog ports.ProductCatalog, logger *slog.Logger) *ReservationCoordinator {
	return &ReservationCoordinator{
		catalog: catalog,
		logger:  logger.With("component", "stock-coordinator"),
		applied: make(map[string]struct{}),
	}
}

// Reserve subtracts a purchase item's quantity from the product's stock.
func (c *ReservationCoordinator) Reserve(ctx context.Context, purchaseID, productID kernel.UUID, quantity int) error {
	return c.adjust(ctx, purchaseID, productID, -quantity, "reserve")
}

// Release returns a purchase item's quantity to the product's stock.
// Called on cancellation to compensate an earlier reservation.
func (c *ReservationCoordinator) Release(ctx context.Context, purchaseID, productID kernel.UUID, quantity int) error {
	return c.adjust(ctx, purchaseID, productID, quantity, "release")
}

func (c *ReservationCoordinator) adjust(
	ctx context.Context, purchaseID, productID kernel.UUID, delta int, direction string,
) error {
	key := fmt.Sprintf("%s:%s:%s", purchaseID.String(), productID.String(), direction)

	c.mu.Lock()
	_, alreadyApplied := c.applied[key]
	c.mu.Unlock()

	if alreadyApplied {
		c.logger.Info("skipping already applied stock adjustment",
			"purchase_id", purchaseID.String(),
			"product_id", productID.String(),
			"direction", direction)
		return nil
	}

	if err := c.catalog.AdjustStock(ctx, productID, delta); err != nil {
		c.logger.Error("stock adjustment failed",
			"purchase_id", purchaseID.String(),
			"product_id", productID.String(),
			"direction", direction,
			"error", err)
		return err
	}

	c.mu.Lock()
	c.applied[key] = struct{}{}
	c.mu.Unlock()

	c.logger.Info("stock adjusted",
		"purchase_id", purchaseID.String(),
		"product_id", productID.String(),
		"delta", delta)
	return nil
}
