// Package queries contains read-only operations over the purchase store.
// Query handlers bypass the domain aggregates and read projections straight
// from the database, following the query side of the CQRS split.
package queries

import (
	"time"

	"purchases/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// PurchaseResponse is the read model of a purchase, line items included.
type PurchaseResponse struct {
	ID            kernel.UUID
	TaxID         string
	CustomerName  string
	ZipCode       string
	Address       string
	DeliveryGroup *string
	TotalAmount   decimal.Decimal
	Status        string
	Items         []PurchaseItemResponse
}

// PurchaseItemResponse is one line item of the purchase read model.
type PurchaseItemResponse struct {
	ProductID kernel.UUID
	Quantity  int
	UnitPrice decimal.Decimal
}

// StatusRecordResponse is one row of a purchase's status history.
type StatusRecordResponse struct {
	PurchaseID kernel.UUID
	Status     string
	StatusDate time.Time
}
