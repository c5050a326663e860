package queries

import (
	"errors"

	"purchases/internal/core/domain/model/kernel"
	"purchases/internal/pkg/guard"
)

var ErrGetPurchaseByIDQueryIsNotConstructed = errors.New(
	"GetPurchaseByIDQuery must be created via NewGetPurchaseByIDQuery constructor",
)

// GetPurchaseByIDQuery retrieves a single purchase with its line items.
//
// Example:
//
//	query, err := NewGetPurchaseByIDQuery(purchaseID)
//	if err != nil {
//	    return err
//	}
//	response, err := handler.Handle(ctx, query)
type GetPurchaseByIDQuery struct {
	purchaseID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetPurchaseByIDQuery creates a query for one purchase.
func NewGetPurchaseByIDQuery(purchaseID kernel.UUID) (GetPurchaseByIDQuery, error) {
	if err := purchaseID.Validate(); err != nil {
		return GetPurchaseByIDQuery{}, err
	}

	return GetPurchaseByIDQuery{
		purchaseID: purchaseID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPurchaseByIDQuery) Validate() error {
	return q.guard.Validate(ErrGetPurchaseByIDQueryIsNotConstructed)
}

// PurchaseID returns the identifier being looked up.
func (q GetPurchaseByIDQuery) PurchaseID() kernel.UUID {
	return q.purchaseID
}
