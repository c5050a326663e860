package commands

import (
	"context"
	"time"

	"purchases/internal/core/domain/model/history"
	"purchases/internal/core/domain/model/purchase"
)

// PayPurchaseCommandHandler moves a purchase from waiting-payment to paid.
// The status change and the matching history row are committed atomically;
// the version check on the update rejects a concurrent pay/cancel race.
type PayPurchaseCommandHandler struct {
	uowFactory UoWFactory
}

// NewPayPurchaseCommandHandler creates a handler for payment confirmations.
func NewPayPurchaseCommandHandler(uowFactory UoWFactory) PayPurchaseCommandHandler {
	return PayPurchaseCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the payment command. Returns the updated purchase, a
// not-found error for an unknown id, or a data integrity error when the
// purchase is not awaiting payment.
func (h PayPurchaseCommandHandler) Handle(
	ctx context.Context, cmd PayPurchaseCommand,
) (*purchase.Purchase, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	purchaseRepo := uow.PurchaseRepository()
	aggregate, err := purchaseRepo.Get(ctx, cmd.PurchaseID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.Pay(); err != nil {
		return nil, err
	}

	if err = purchaseRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	record, err := history.NewStatusRecord(aggregate.ID(), aggregate.Status().String(), time.Now())
	if err != nil {
		return nil, err
	}

	if err = uow.HistoryRepository().Append(ctx, record); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
