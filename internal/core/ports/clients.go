package ports

import (
	"context"

	"purchases/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// CustomerRecord is the contact and address data returned by the customer
// directory for a tax id. The purchase denormalizes these fields at creation.
type CustomerRecord struct {
	FullName string
	ZipCode  string
	Address  string
	City     string
	State    string
	Country  string
}

// CustomerDirectory is the remote lookup of customer data by tax id.
// Calls are synchronous request/response over JSON; an unknown tax id yields
// a not-found error.
type CustomerDirectory interface {
	FindCustomer(ctx context.Context, taxID kernel.TaxID) (CustomerRecord, error)
}

// ProductRecord is the catalog's view of one product: current price and
// available stock quantity.
type ProductRecord struct {
	ID          kernel.UUID
	Name        string
	Description string
	Price       decimal.Decimal
	Quantity    int
}

// ProductCatalog is the remote product catalog. Calls are synchronous
// request/response over JSON with no retry at this layer.
type ProductCatalog interface {
	// FindProduct returns the catalog record for a product id, or a
	// not-found error when the id is unknown.
	FindProduct(ctx context.Context, id kernel.UUID) (ProductRecord, error)

	// AdjustStock applies a signed delta to a product's stock quantity.
	// Negative deltas reserve stock, positive deltas release it.
	AdjustStock(ctx context.Context, id kernel.UUID, delta int) error

	// SaveProduct upserts a product record, keyed by name.
	// Used by the price adjustment batch job.
	SaveProduct(ctx context.Context, record ProductRecord) error
}

// StockReservator coordinates stock adjustments for a purchase's items:
// reservations at creation and releases on cancellation. Implementations
// must be idempotent per (purchase, product, direction) so that a caller
// retry after a transient failure cannot double-apply an adjustment.
type StockReservator interface {
	Reserve(ctx context.Context, purchaseID, productID kernel.UUID, quantity int) error
	Release(ctx context.Context, purchaseID, productID kernel.UUID, quantity int) error
}
