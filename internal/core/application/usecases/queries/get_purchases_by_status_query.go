package queries

import (
	"errors"

	"purchases/internal/core/domain/model/purchase"
	"purchases/internal/pkg/guard"
)

var ErrGetPurchasesByStatusQueryIsNotConstructed = errors.New(
	"GetPurchasesByStatusQuery must be created via NewGetPurchasesByStatusQuery constructor",
)

// GetPurchasesByStatusQuery retrieves every purchase in a given lifecycle
// status. The status label is matched case-insensitively, so "pago" and
// "PAGO" name the same status.
//
// Example:
//
//	query, err := NewGetPurchasesByStatusQuery("pago")
//	if err != nil {
//	    return err // unknown status label
//	}
//	purchases, err := handler.Handle(ctx, query)
type GetPurchasesByStatusQuery struct {
	status purchase.Status

	guard guard.ConstructorGuard
}

// NewGetPurchasesByStatusQuery creates a query for purchases in the status
// named by the label. Unknown labels are rejected.
func NewGetPurchasesByStatusQuery(label string) (GetPurchasesByStatusQuery, error) {
	status, err := purchase.StatusFromLabel(label)
	if err != nil {
		return GetPurchasesByStatusQuery{}, err
	}

	return GetPurchasesByStatusQuery{
		status: status,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPurchasesByStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetPurchasesByStatusQueryIsNotConstructed)
}

// Status returns the resolved lifecycle status.
func (q GetPurchasesByStatusQuery) Status() purchase.Status {
	return q.status
}
