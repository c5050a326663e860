package commands

import (
	"errors"

	"purchases/internal/core/domain/model/kernel"
	"purchases/internal/pkg/guard"
)

var (
	ErrCreatePurchaseCommandIsNotConstructed = errors.New(
		"CreatePurchaseCommand must be created via NewCreatePurchaseCommand constructor",
	)
	ErrItemsAreRequired      = errors.New("at least one item is required")
	ErrQuantityIsInvalid     = errors.New("item quantity must be greater than 0")
	ErrProductIDIsInvalid    = errors.New("item product id is invalid")
	ErrProductIDIsDuplicated = errors.New("item product ids must be unique")
)

// ItemRequest is one requested line item: a product and how many units the
// customer wants. Prices are not part of the request; they are snapshotted
// from the catalog by the handler.
type ItemRequest struct {
	ProductID kernel.UUID
	Quantity  int
}

// CreatePurchaseCommand represents a request to create a new purchase for a
// customer identified by tax id.
//
// Example:
//
//	purchaseID := kernel.NewUUID()
//	cmd, err := NewCreatePurchaseCommand(purchaseID, taxID, items)
//	if err != nil {
//	    return fmt.Errorf("invalid purchase data: %w", err)
//	}
//
//	created, err := handler.Handle(ctx, cmd)
type CreatePurchaseCommand struct { //nolint:recvcheck //using for validation
	purchaseID kernel.UUID
	taxID      kernel.TaxID
	items      []ItemRequest

	guard guard.ConstructorGuard
}

// NewCreatePurchaseCommand creates a command to register a new purchase.
// Validates the purchase id, the tax id and that every item names a product
// with a positive quantity.
func NewCreatePurchaseCommand(
	purchaseID kernel.UUID, taxID kernel.TaxID, items []ItemRequest,
) (CreatePurchaseCommand, error) {
	command := CreatePurchaseCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setPurchaseID(purchaseID),
		command.setTaxID(taxID),
		command.setItems(items),
	); err != nil {
		return CreatePurchaseCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreatePurchaseCommand) Validate() error {
	return c.guard.Validate(ErrCreatePurchaseCommandIsNotConstructed)
}

// PurchaseID returns the identifier assigned to the new purchase.
func (c CreatePurchaseCommand) PurchaseID() kernel.UUID {
	return c.purchaseID
}

// TaxID returns the customer's tax id.
func (c CreatePurchaseCommand) TaxID() kernel.TaxID {
	return c.taxID
}

// Items returns the requested line items.
func (c CreatePurchaseCommand) Items() []ItemRequest {
	return c.items
}

func (c *CreatePurchaseCommand) setPurchaseID(purchaseID kernel.UUID) error {
	if err := purchaseID.Validate(); err != nil {
		return err
	}

	c.purchaseID = purchaseID
	return nil
}

func (c *CreatePurchaseCommand) setTaxID(taxID kernel.TaxID) error {
	if err := taxID.Validate(); err != nil {
		return err
	}

	c.taxID = taxID
	return nil
}

func (c *CreatePurchaseCommand) setItems(items []ItemRequest) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	// One line per product: the reservation coordinator adjusts stock per
	// purchase and product, so a product split over two lines would only
	// reserve the first one.
	seen := make(map[kernel.UUID]struct{}, len(items))
	for _, item := range items {
		if err := item.ProductID.Validate(); err != nil {
			return ErrProductIDIsInvalid
		}
		if item.Quantity <= 0 {
			return ErrQuantityIsInvalid
		}
		if _, ok := seen[item.ProductID]; ok {
			return ErrProductIDIsDuplicated
		}
		seen[item.ProductID] = struct{}{}
	}

	c.items = items
	return nil
}
