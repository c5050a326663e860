package commands

import (
	"errors"

	"purchases/internal/core/domain/model/kernel"
	"purchases/internal/pkg/guard"
)

var ErrPayPurchaseCommandIsNotConstructed = errors.New(
	"PayPurchaseCommand must be created via NewPayPurchaseCommand constructor",
)

// PayPurchaseCommand represents a payment confirmation for a purchase.
type PayPurchaseCommand struct { //nolint:recvcheck //using for validation
	purchaseID kernel.UUID

	guard guard.ConstructorGuard
}

// NewPayPurchaseCommand creates a command to mark a purchase as paid.
func NewPayPurchaseCommand(purchaseID kernel.UUID) (PayPurchaseCommand, error) {
	if err := purchaseID.Validate(); err != nil {
		return PayPurchaseCommand{}, err
	}

	return PayPurchaseCommand{
		purchaseID: purchaseID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PayPurchaseCommand) Validate() error {
	return c.guard.Validate(ErrPayPurchaseCommandIsNotConstructed)
}

// PurchaseID returns the identifier of the purchase being paid.
func (c PayPurchaseCommand) PurchaseID() kernel.UUID {
	return c.purchaseID
}
