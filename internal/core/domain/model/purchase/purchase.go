package purchase

import (
	"errors"

	"purchases/internal/core/domain/model/kernel"
	"purchases/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrPurchaseIsNotConstructed is returned when a Purchase instance was not
	// created through NewPurchase or RestorePurchase. This ensures all
	// purchases are properly validated.
	ErrPurchaseIsNotConstructed = errors.New("Purchase must be created via NewPurchase or RestorePurchase")

	// ErrNoItems is returned when a purchase is created without line items.
	ErrNoItems = errs.NewValueIsRequiredError("purchase requires at least one item")

	// ErrDeliveryGroupAlreadyAssigned is returned when dispatch attempts to
	// reassign a delivery group. The group is set exactly once.
	ErrDeliveryGroupAlreadyAssigned = errs.NewDataIntegrityError(
		"delivery group is already assigned and cannot change")

	// ErrDeliveryGroupIsRequired is returned when dispatch is attempted
	// without a group id.
	ErrDeliveryGroupIsRequired = errs.NewValueIsRequiredError("deliveryGroup")
)

// Purchase is the aggregate root for one customer order. It carries the
// customer snapshot taken at creation (name, zip code, concatenated address),
// the ordered line items with their price snapshots, the running lifecycle
// status, and the delivery group assigned at dispatch.
//
// Purchase maintains these invariants:
//   - totalAmount is computed once at creation from the item price snapshots
//     and never recomputed, even if catalog prices later change
//   - the delivery group is set exactly once, at the Paid -> WaitingDelivery
//     transition, and never changes afterward
//   - items are immutable once set
//   - status transitions follow the lifecycle state machine in Status
//
// The version field supports optimistic concurrency: repositories reject
// updates whose expected version no longer matches the stored row, so two
// racing writers cannot silently overwrite each other.
type Purchase struct {
	id            kernel.UUID
	taxID         kernel.TaxID
	customerName  string
	zipCode       kernel.ZipCode
	address       string
	deliveryGroup *string
	totalAmount   decimal.Decimal
	status        Status
	items         []Item
	version       int64

	isConstructed bool
}

// NewPurchase creates a purchase in WaitingPayment status.
// Customer name, zip code and address come from the customer directory lookup
// performed by the caller; items carry the catalog price snapshots. The total
// amount is fixed here as the sum of unit price times quantity over all items.
func NewPurchase(
	id kernel.UUID,
	taxID kernel.TaxID,
	customerName string,
	zipCode kernel.ZipCode,
	address string,
	items []Item,
) (*Purchase, error) {
	p := &Purchase{
		status:        WaitingPayment,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setCustomer(taxID, customerName, zipCode, address),
		p.setItems(items),
	); err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, item := range p.items {
		total = total.Add(item.Subtotal())
	}
	p.totalAmount = total

	return p, nil
}

// RestorePurchase reconstructs a purchase from persistence.
// Unlike NewPurchase it accepts the stored status, delivery group, total
// amount and version as-is; the total is never recomputed from the items.
func RestorePurchase(
	id kernel.UUID,
	taxID kernel.TaxID,
	customerName string,
	zipCode kernel.ZipCode,
	address string,
	deliveryGroup *string,
	totalAmount decimal.Decimal,
	status Status,
	items []Item,
	version int64,
) (*Purchase, error) {
	p := &Purchase{
		totalAmount:   totalAmount,
		deliveryGroup: deliveryGroup,
		version:       version,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setCustomer(taxID, customerName, zipCode, address),
		p.setItems(items),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	p.status = status

	return p, nil
}

// Validate ensures the Purchase instance was properly constructed.
// Called when reconstructing purchases from persistence and before writes.
func (p *Purchase) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPurchaseIsNotConstructed
	}
	return nil
}

// IsEqual compares two purchases by their unique identifiers.
func (p *Purchase) IsEqual(other *Purchase) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the purchase's unique identifier.
func (p *Purchase) ID() kernel.UUID {
	return p.id
}

// TaxID returns the customer's tax id.
func (p *Purchase) TaxID() kernel.TaxID {
	return p.taxID
}

// CustomerName returns the customer name snapshot taken at creation.
func (p *Purchase) CustomerName() string {
	return p.customerName
}

// ZipCode returns the delivery postal code.
func (p *Purchase) ZipCode() kernel.ZipCode {
	return p.zipCode
}

// Address returns the concatenated delivery address snapshot.
func (p *Purchase) Address() string {
	return p.address
}

// DeliveryGroup returns the assigned delivery group id.
// Returns nil until the purchase is dispatched.
func (p *Purchase) DeliveryGroup() *string {
	return p.deliveryGroup
}

// TotalAmount returns the purchase total fixed at creation time.
func (p *Purchase) TotalAmount() decimal.Decimal {
	return p.totalAmount
}

// Status returns the current lifecycle status.
func (p *Purchase) Status() Status {
	return p.status
}

// Items returns the ordered line items. The returned slice is a copy;
// items cannot be mutated through it.
func (p *Purchase) Items() []Item {
	items := make([]Item, len(p.items))
	copy(items, p.items)
	return items
}

// Version returns the optimistic-concurrency version loaded from storage.
func (p *Purchase) Version() int64 {
	return p.version
}

// Pay marks the purchase as paid.
// Allowed only from WaitingPayment; otherwise returns an integrity violation
// carrying the current and attempted statuses, leaving the purchase unchanged.
func (p *Purchase) Pay() error {
	newStatus, err := p.status.Pay()
	if err != nil {
		return err
	}

	p.status = newStatus
	return nil
}

// Cancel marks the purchase as canceled.
// Allowed only from WaitingPayment. The caller is responsible for releasing
// the stock reserved at creation, one adjustment per item.
func (p *Purchase) Cancel() error {
	newStatus, err := p.status.Cancel()
	if err != nil {
		return err
	}

	p.status = newStatus
	return nil
}

// Dispatch assigns the purchase to a delivery group and moves it to
// WaitingDelivery. Allowed only from Paid, and only once: the delivery group
// can never be reassigned.
func (p *Purchase) Dispatch(deliveryGroup string) error {
	if deliveryGroup == "" {
		return ErrDeliveryGroupIsRequired
	}
	if p.deliveryGroup != nil {
		return ErrDeliveryGroupAlreadyAssigned
	}

	newStatus, err := p.status.Dispatch()
	if err != nil {
		return err
	}

	p.status = newStatus
	p.deliveryGroup = &deliveryGroup
	return nil
}

// Deliver marks the purchase as delivered.
// Allowed only from WaitingDelivery; the rejection message names the
// blocking status.
func (p *Purchase) Deliver() error {
	newStatus, err := p.status.Deliver()
	if err != nil {
		return err
	}

	p.status = newStatus
	return nil
}

func (p *Purchase) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Purchase) setCustomer(taxID kernel.TaxID, name string, zipCode kernel.ZipCode, address string) error {
	if err := taxID.Validate(); err != nil {
		return err
	}
	if err := zipCode.Validate(); err != nil {
		return err
	}
	if name == "" {
		return errs.NewValueIsRequiredError("customerName")
	}
	if address == "" {
		return errs.NewValueIsRequiredError("deliveryAddress")
	}

	p.taxID = taxID
	p.customerName = name
	p.zipCode = zipCode
	p.address = address
	return nil
}

func (p *Purchase) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrNoItems
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	p.items = make([]Item, len(items))
	copy(p.items, items)
	return nil
}
