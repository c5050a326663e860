package commands

import (
	"errors"

	"purchases/internal/core/domain/model/kernel"
	"purchases/internal/pkg/guard"
)

var ErrDeliverPurchaseCommandIsNotConstructed = errors.New(
	"DeliverPurchaseCommand must be created via NewDeliverPurchaseCommand constructor",
)

// DeliverPurchaseCommand represents a delivery confirmation for a dispatched
// purchase.
type DeliverPurchaseCommand struct { //nolint:recvcheck //using for validation
	purchaseID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeliverPurchaseCommand creates a command to mark a purchase delivered.
func NewDeliverPurchaseCommand(purchaseID kernel.UUID) (DeliverPurchaseCommand, error) {
	if err := purchaseID.Validate(); err != nil {
		return DeliverPurchaseCommand{}, err
	}

	return DeliverPurchaseCommand{
		purchaseID: purchaseID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeliverPurchaseCommand) Validate() error {
	return c.guard.Validate(ErrDeliverPurchaseCommandIsNotConstructed)
}

// PurchaseID returns the identifier of the purchase being delivered.
func (c DeliverPurchaseCommand) PurchaseID() kernel.UUID {
	return c.purchaseID
}
