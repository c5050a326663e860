package purchase

import (
	"fmt"
	"strings"

	"purchases/internal/pkg/errs"
)

// Status represents the lifecycle state of a purchase.
// It implements a state machine with defined transitions:
//
//	WaitingPayment ──┬──> Paid ──> WaitingDelivery ──> Delivered
//	                 └──> Canceled
//
// Paid is reached by payment; Canceled is terminal. Dispatching moves paid
// purchases to WaitingDelivery, and delivery confirmation finishes the cycle.
//
// Status is a value object that validates state transitions and provides the
// persistence/display labels used by the original sales and logistics contract.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// WaitingPayment is the initial status when a purchase is created.
	WaitingPayment

	// Paid indicates payment was received; the purchase awaits dispatch.
	Paid

	// Canceled is terminal; reserved stock has been released.
	Canceled

	// WaitingDelivery indicates the purchase was batched into a delivery group.
	WaitingDelivery

	// Delivered is the final state of a successful purchase.
	Delivered
)

// Caller-facing transition rejection messages, kept verbatim from the
// sales/logistics API contract.
const (
	statusNotValidMessage       = "Não foi possível mudar o pedido do status %s para o status %s"
	notPossibleToDeliverMessage = "Não é possível entregar pedido com o status: %s"
)

func statusLabels() map[Status]string {
	return map[Status]string{
		Unknown:         "DESCONHECIDO",
		WaitingPayment:  "AGUARDANDO PAGAMENTO",
		Paid:            "PAGO",
		Canceled:        "CANCELADO",
		WaitingDelivery: "AGUARDANDO ENTREGA",
		Delivered:       "ENTREGUE",
	}
}

func validStatusLabels() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		WaitingPayment:  "AGUARDANDO PAGAMENTO",
		Paid:            "PAGO",
		Canceled:        "CANCELADO",
		WaitingDelivery: "AGUARDANDO ENTREGA",
		Delivered:       "ENTREGUE",
	}
}

// StatusFromLabel resolves a status from its persistence/display label.
// Matching is case-insensitive. Returns an error for unrecognized labels.
func StatusFromLabel(label string) (Status, error) {
	for status, l := range validStatusLabels() {
		if strings.EqualFold(l, label) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a known status", label))
}

// Validate checks if the Status value is a member of the lifecycle.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := validStatusLabels()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the Portuguese label of the status as persisted and exposed
// by the API. Implements fmt.Stringer; safe on any Status value.
func (s Status) String() string {
	if label, ok := statusLabels()[s]; ok {
		return label
	}
	return "DESCONHECIDO"
}

// Pay transitions the status to Paid.
// Only WaitingPayment purchases can be paid; any other current status yields
// an integrity violation carrying both statuses.
func (s Status) Pay() (Status, error) {
	if s != WaitingPayment {
		return 0, errs.NewDataIntegrityError(
			fmt.Sprintf(statusNotValidMessage, s.String(), Paid.String()))
	}
	return Paid, nil
}

// Cancel transitions the status to Canceled.
// Only WaitingPayment purchases can be canceled; a second cancellation of the
// same purchase is rejected here, which also protects the stock release from
// being applied twice.
func (s Status) Cancel() (Status, error) {
	if s != WaitingPayment {
		return 0, errs.NewDataIntegrityError(
			fmt.Sprintf(statusNotValidMessage, s.String(), Canceled.String()))
	}
	return Canceled, nil
}

// Dispatch transitions the status to WaitingDelivery.
// Only Paid purchases are eligible for delivery grouping.
func (s Status) Dispatch() (Status, error) {
	if s != Paid {
		return 0, errs.NewDataIntegrityError(
			fmt.Sprintf(statusNotValidMessage, s.String(), WaitingDelivery.String()))
	}
	return WaitingDelivery, nil
}

// Deliver transitions the status to Delivered.
// Only WaitingDelivery purchases can be delivered; the rejection message
// names the blocking status.
func (s Status) Deliver() (Status, error) {
	if s != WaitingDelivery {
		return 0, errs.NewDataIntegrityError(
			fmt.Sprintf(notPossibleToDeliverMessage, s.String()))
	}
	return Delivered, nil
}
