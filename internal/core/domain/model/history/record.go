// Package history provides the immutable audit trail of purchase status
// transitions. Records are append-only: once written they are never updated
// or deleted, and the purchase id they reference is not checked for
// existence, since records may arrive for purchases owned elsewhere.
package history

import (
	"time"

	"purchases/internal/core/domain/model/kernel"
	"purchases/internal/pkg/errs"
	"purchases/internal/pkg/guard"
)

// ErrRecordIsNotConstructed is returned when a StatusRecord was not created
// through NewStatusRecord or RestoreStatusRecord.
var ErrRecordIsNotConstructed = errs.NewValueIsRequiredError(
	"status record must be created via NewStatusRecord constructor")

// StatusRecord is one immutable entry in a purchase's status history: which
// status the purchase entered and when. Every status transition produces
// exactly one record.
type StatusRecord struct { //nolint:recvcheck //using for validation
	id         kernel.UUID
	purchaseID kernel.UUID
	status     string
	statusDate time.Time

	guard guard.ConstructorGuard
}

// NewStatusRecord creates a history entry for a purchase entering a status.
// The purchase id is recorded as given, without an existence check.
func NewStatusRecord(purchaseID kernel.UUID, status string, statusDate time.Time) (StatusRecord, error) {
	return RestoreStatusRecord(kernel.NewUUID(), purchaseID, status, statusDate)
}

// RestoreStatusRecord reconstructs a history entry from persistence.
func RestoreStatusRecord(id, purchaseID kernel.UUID, status string, statusDate time.Time) (StatusRecord, error) {
	if err := id.Validate(); err != nil {
		return StatusRecord{}, err
	}
	if err := purchaseID.Validate(); err != nil {
		return StatusRecord{}, err
	}
	if status == "" {
		return StatusRecord{}, errs.NewValueIsRequiredError("status")
	}
	if statusDate.IsZero() {
		return StatusRecord{}, errs.NewValueIsRequiredError("statusDate")
	}

	return StatusRecord{
		id:         id,
		purchaseID: purchaseID,
		status:     status,
		statusDate: statusDate,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// ID returns the record's unique identifier.
func (r StatusRecord) ID() kernel.UUID {
	return r.id
}

// PurchaseID returns the id of the purchase the record belongs to.
func (r StatusRecord) PurchaseID() kernel.UUID {
	return r.purchaseID
}

// Status returns the status label the purchase entered.
func (r StatusRecord) Status() string {
	return r.status
}

// StatusDate returns when the purchase entered the status.
func (r StatusRecord) StatusDate() time.Time {
	return r.statusDate
}

// Validate ensures the record was created through a constructor.
func (r StatusRecord) Validate() error {
	return r.guard.Validate(ErrRecordIsNotConstructed)
}
