package commands

import (
	"context"
	"log/slog"
	"time"

	"purchases/internal/core/domain/model/history"
	"purchases/internal/core/domain/model/purchase"
	"purchases/internal/core/ports"
)

// CancelPurchaseCommandHandler cancels a purchase that is still awaiting
// payment and compensates the stock reserved at creation. The cancellation
// and its history row commit atomically; the releases happen afterwards and
// are deduplicated by the reservation coordinator, so a second cancel
// attempt (rejected by the status machine) can never double-release.
type CancelPurchaseCommandHandler struct {
	uowFactory UoWFactory
	reservator ports.StockReservator
	logger     *slog.Logger
}

// NewCancelPurchaseCommandHandler creates a handler for cancellations.
func NewCancelPurchaseCommandHandler(
	uowFactory UoWFactory, reservator ports.StockReservator, logger *slog.Logger,
) CancelPurchaseCommandHandler {
	return CancelPurchaseCommandHandler{
		uowFactory: uowFactory,
		reservator: reservator,
		logger:     logger.With("component", "cancel-purchase"),
	}
}

// Handle processes the cancellation command. Returns the updated purchase, a
// not-found error for an unknown id, or a data integrity error when the
// purchase already left the waiting-payment status.
func (h CancelPurchaseCommandHandler) Handle(
	ctx context.Context, cmd CancelPurchaseCommand,
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

	if err = aggregate.Cancel(); err != nil {
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

	// Return exactly the quantities reserved at creation.
	for _, item := range aggregate.Items() {
		if releaseErr := h.reservator.Release(ctx, aggregate.ID(), item.ProductID(), item.Quantity()); releaseErr != nil {
			h.logger.Error("stock release failed after cancellation",
				"purchase_id", aggregate.ID().String(),
				"product_id", item.ProductID().String(),
				"error", releaseErr)
		}
	}

	return aggregate, nil
}
