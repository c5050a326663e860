package commands

import (
	"errors"

	"purchases/internal/core/domain/model/kernel"
	"purchases/internal/pkg/guard"
)

var ErrCancelPurchaseCommandIsNotConstructed = errors.New(
	"CancelPurchaseCommand must be created via NewCancelPurchaseCommand constructor",
)

// CancelPurchaseCommand represents a cancellation request for a purchase
// that has not been paid yet.
type CancelPurchaseCommand struct { //nolint:recvcheck //using for validation
	purchaseID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCancelPurchaseCommand creates a command to cancel a purchase.
func NewCancelPurchaseCommand(purchaseID kernel.UUID) (CancelPurchaseCommand, error) {
	if err := purchaseID.Validate(); err != nil {
		return CancelPurchaseCommand{}, err
	}

	return CancelPurchaseCommand{
		purchaseID: purchaseID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelPurchaseCommand) Validate() error {
	return c.guard.Validate(ErrCancelPurchaseCommandIsNotConstructed)
}

// PurchaseID returns the identifier of the purchase being canceled.
func (c CancelPurchaseCommand) PurchaseID() kernel.UUID {
	return c.purchaseID
}
