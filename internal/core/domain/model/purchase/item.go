package purchase

import (
	"fmt"

	"purchases/internal/core/domain/model/kernel"
	"purchases/internal/pkg/errs"
	"purchases/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrItemIsNotConstructed is returned when an Item was not created through
// the NewItem factory method.
var ErrItemIsNotConstructed = errs.NewValueIsRequiredError(
	"item must be created via NewItem constructor")

// Item is one purchase line: a product, the ordered quantity, and the unit
// price as quoted by the catalog at creation time. Items are owned exclusively
// by their Purchase and are immutable once set; the price snapshot is what
// keeps the purchase total stable when catalog prices later change.
type Item struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	quantity  int
	unitPrice decimal.Decimal

	guard guard.ConstructorGuard
}

// NewItem creates a purchase line with validation.
// Quantity must be positive and the unit price non-negative.
func NewItem(productID kernel.UUID, quantity int, unitPrice decimal.Decimal) (Item, error) {
	if err := productID.Validate(); err != nil {
		return Item{}, err
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if unitPrice.IsNegative() {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("%s is negative", unitPrice))
	}

	return Item{
		productID: productID,
		quantity:  quantity,
		unitPrice: unitPrice,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// ProductID returns the ordered product's identifier.
func (i Item) ProductID() kernel.UUID {
	return i.productID
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the per-unit price snapshot taken at purchase creation.
func (i Item) UnitPrice() decimal.Decimal {
	return i.unitPrice
}

// Subtotal returns unit price times quantity.
func (i Item) Subtotal() decimal.Decimal {
	return i.unitPrice.Mul(decimal.NewFromInt(int64(i.quantity)))
}

// Validate ensures the Item was created through NewItem.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}
