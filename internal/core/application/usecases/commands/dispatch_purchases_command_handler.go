package commands

import (
	"context"
	"time"

	"purchases/internal/core/domain/model/history"
	"purchases/internal/core/domain/model/purchase"
	"purchases/internal/core/domain/services"
)

// DispatchPurchasesCommandHandler groups paid purchases into delivery
// batches and moves them to waiting-delivery. Each purchase commits in its
// own transaction: a failure mid-batch leaves the purchases already
// processed advanced, and a rerun picks up only the paid ones that remain.
//
// Example:
//
//	handler := NewDispatchPurchasesCommandHandler(uowFactory, grouper)
//	dispatched, err := handler.Handle(ctx, NewDispatchPurchasesCommand())
//	if err != nil {
//	    log.Printf("dispatch interrupted after %d purchases: %v", len(dispatched), err)
//	}
type DispatchPurchasesCommandHandler struct {
	uowFactory UoWFactory
	grouper    services.DeliveryGrouper
}

// NewDispatchPurchasesCommandHandler creates a handler for dispatching.
func NewDispatchPurchasesCommandHandler(
	uowFactory UoWFactory, grouper services.DeliveryGrouper,
) DispatchPurchasesCommandHandler {
	return DispatchPurchasesCommandHandler{
		uowFactory: uowFactory,
		grouper:    grouper,
	}
}

// Handle processes the dispatch command. Reads all paid purchases ordered by
// zip code, partitions them into batches by zip code prefix and advances
// every purchase to waiting-delivery with its batch's group id. Returns the
// purchases in update order; with nothing to dispatch the result is empty
// and nothing is written.
func (h DispatchPurchasesCommandHandler) Handle(
	ctx context.Context, cmd DispatchPurchasesCommand,
) ([]*purchase.Purchase, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	paid, err := h.loadPaid(ctx)
	if err != nil {
		return nil, err
	}

	dispatched := make([]*purchase.Purchase, 0, len(paid))
	for _, batch := range h.grouper.Partition(paid) {
		for _, aggregate := range batch.Purchases {
			if err := h.dispatchOne(ctx, aggregate, batch.GroupID); err != nil {
				return dispatched, err
			}
			dispatched = append(dispatched, aggregate)
		}
	}

	return dispatched, nil
}

func (h DispatchPurchasesCommandHandler) loadPaid(ctx context.Context) ([]*purchase.Purchase, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	paid, err := uow.PurchaseRepository().GetAllPaidOrderedByZipCode(ctx)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return paid, nil
}

// dispatchOne advances a single purchase in its own transaction. The history
// row is timestamped per update, not per batch.
func (h DispatchPurchasesCommandHandler) dispatchOne(
	ctx context.Context, aggregate *purchase.Purchase, groupID string,
) error {
	if err := aggregate.Dispatch(groupID); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.PurchaseRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	record, err := history.NewStatusRecord(aggregate.ID(), aggregate.Status().String(), time.Now())
	if err != nil {
		return err
	}

	if err = uow.HistoryRepository().Append(ctx, record); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
