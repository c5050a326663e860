package commands

import (
	"context"
	"fmt"
	"time"

	"purchases/internal/core/domain/model/history"
)

const deliveredMessage = "Pedido %s entregue"

// DeliverPurchaseCommandHandler confirms the delivery of a dispatched
// purchase. Only purchases in waiting-delivery can be delivered; the error
// for any other status names the blocking status.
type DeliverPurchaseCommandHandler struct {
	uowFactory UoWFactory
}

// NewDeliverPurchaseCommandHandler creates a handler for delivery
// confirmations.
func NewDeliverPurchaseCommandHandler(uowFactory UoWFactory) DeliverPurchaseCommandHandler {
	return DeliverPurchaseCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the delivery confirmation. On success it returns the
// confirmation message naming the purchase id.
func (h DeliverPurchaseCommandHandler) Handle(
	ctx context.Context, cmd DeliverPurchaseCommand,
) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	purchaseRepo := uow.PurchaseRepository()
	aggregate, err := purchaseRepo.Get(ctx, cmd.PurchaseID())
	if err != nil {
		return "", err
	}

	if err = aggregate.Deliver(); err != nil {
		return "", err
	}

	if err = purchaseRepo.Update(ctx, aggregate); err != nil {
		return "", err
	}

	record, err := history.NewStatusRecord(aggregate.ID(), aggregate.Status().String(), time.Now())
	if err != nil {
		return "", err
	}

	if err = uow.HistoryRepository().Append(ctx, record); err != nil {
		return "", err
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	return fmt.Sprintf(deliveredMessage, aggregate.ID().String()), nil
}
