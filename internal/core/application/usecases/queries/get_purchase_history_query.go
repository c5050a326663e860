package queries

import (
	"errors"

	"purchases/internal/core/domain/model/kernel"
	"purchases/internal/pkg/guard"
)

var ErrGetPurchaseHistoryQueryIsNotConstructed = errors.New(
	"GetPurchaseHistoryQuery must be created via NewGetPurchaseHistoryQuery constructor",
)

// GetPurchaseHistoryQuery retrieves the status history of one purchase in
// insertion order.
type GetPurchaseHistoryQuery struct {
	purchaseID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetPurchaseHistoryQuery creates a query for a purchase's history.
func NewGetPurchaseHistoryQuery(purchaseID kernel.UUID) (GetPurchaseHistoryQuery, error) {
	if err := purchaseID.Validate(); err != nil {
		return GetPurchaseHistoryQuery{}, err
	}

	return GetPurchaseHistoryQuery{
		purchaseID: purchaseID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPurchaseHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetPurchaseHistoryQueryIsNotConstructed)
}

// PurchaseID returns the identifier whose history is being read.
func (q GetPurchaseHistoryQuery) PurchaseID() kernel.UUID {
	return q.purchaseID
}
