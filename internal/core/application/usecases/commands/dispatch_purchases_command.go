package commands

import (
	"errors"

	"purchases/internal/pkg/guard"
)

var ErrDispatchPurchasesCommandIsNotConstructed = errors.New(
	"DispatchPurchasesCommand must be created via NewDispatchPurchasesCommand constructor",
)

// DispatchPurchasesCommand triggers the grouping of all paid purchases into
// delivery batches. Purchases sharing a zip code prefix with their neighbor
// in zip order land in the same batch and move to waiting-delivery.
//
// Example:
//
//	cmd := NewDispatchPurchasesCommand()
//	handler := NewDispatchPurchasesCommandHandler(uowFactory, grouper)
//	dispatched, err := handler.Handle(ctx, cmd)
type DispatchPurchasesCommand struct {
	guard guard.ConstructorGuard
}

// NewDispatchPurchasesCommand creates a new command to trigger dispatching.
// This is a parameterless command that processes every paid purchase.
func NewDispatchPurchasesCommand() DispatchPurchasesCommand {
	return DispatchPurchasesCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *DispatchPurchasesCommand) Validate() error {
	return c.guard.Validate(
		ErrDispatchPurchasesCommandIsNotConstructed,
	)
}
