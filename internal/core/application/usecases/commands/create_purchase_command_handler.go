package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"purchases/internal/core/domain/model/history"
	"purchases/internal/core/domain/model/kernel"
	"purchases/internal/core/domain/model/purchase"
	"purchases/internal/core/ports"
	"purchases/internal/pkg/errs"
)

const insufficientStockMessage = "Estoque insuficiente para o produto %s"

// CreatePurchaseCommandHandler handles the business logic for purchase
// creation. Looks up the customer, snapshots catalog prices into the line
// items and persists the purchase in waiting-payment status. Stock
// reservation and the first history row happen after the purchase commit:
// their failure is logged but never rolls the purchase back.
//
// Example:
//
//	handler := NewCreatePurchaseCommandHandler(uowFactory, directory, catalog, reservator, logger)
//	cmd, _ := NewCreatePurchaseCommand(kernel.NewUUID(), taxID, items)
//
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("purchase creation failed: %w", err)
//	}
type CreatePurchaseCommandHandler struct {
	uowFactory UoWFactory
	directory  ports.CustomerDirectory
	catalog    ports.ProductCatalog
	reservator ports.StockReservator
	logger     *slog.Logger
}

// NewCreatePurchaseCommandHandler creates a handler for purchase creation.
func NewCreatePurchaseCommandHandler(
	uowFactory UoWFactory,
	directory ports.CustomerDirectory,
	catalog ports.ProductCatalog,
	reservator ports.StockReservator,
	logger *slog.Logger,
) CreatePurchaseCommandHandler {
	return CreatePurchaseCommandHandler{
		uowFactory: uowFactory,
		directory:  directory,
		catalog:    catalog,
		reservator: reservator,
		logger:     logger.With("component", "create-purchase"),
	}
}

// Handle processes the purchase creation command.
// The customer lookup and every product lookup must succeed before anything
// is written; an unknown customer or product surfaces as a not-found error
// and an item exceeding the available stock as a data integrity error.
func (h *CreatePurchaseCommandHandler) Handle(
	ctx context.Context, cmd CreatePurchaseCommand,
) (*purchase.Purchase, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	customer, err := h.directory.FindCustomer(ctx, cmd.TaxID())
	if err != nil {
		return nil, err
	}

	zipCode, err := kernel.NewZipCode(customer.ZipCode)
	if err != nil {
		return nil, err
	}

	items, err := h.buildItems(ctx, cmd.Items())
	if err != nil {
		return nil, err
	}

	aggregate, err := purchase.NewPurchase(
		cmd.PurchaseID(),
		cmd.TaxID(),
		customer.FullName,
		zipCode,
		deliveryAddress(customer),
		items,
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.PurchaseRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	// The purchase is committed; reservation and history are best-effort
	// follow-ups. The coordinator's idempotency keys keep a later retry of
	// a failed reservation from double-applying.
	h.reserveStock(ctx, aggregate)
	h.appendHistory(ctx, aggregate)

	return aggregate, nil
}

func (h *CreatePurchaseCommandHandler) buildItems(
	ctx context.Context, requests []ItemRequest,
) ([]purchase.Item, error) {
	items := make([]purchase.Item, 0, len(requests))
	for _, request := range requests {
		product, err := h.catalog.FindProduct(ctx, request.ProductID)
		if err != nil {
			return nil, err
		}

		if product.Quantity < request.Quantity {
			return nil, errs.NewDataIntegrityError(
				fmt.Sprintf(insufficientStockMessage, request.ProductID))
		}

		item, err := purchase.NewItem(request.ProductID, request.Quantity, product.Price)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

// deliveryAddress denormalizes the customer's full address into the single
// line stored on the purchase.
func deliveryAddress(customer ports.CustomerRecord) string {
	return fmt.Sprintf("%s, %s - %s, %s",
		customer.Address, customer.City, customer.State, customer.Country)
}

func (h *CreatePurchaseCommandHandler) reserveStock(ctx context.Context, aggregate *purchase.Purchase) {
	for _, item := range aggregate.Items() {
		if err := h.reservator.Reserve(ctx, aggregate.ID(), item.ProductID(), item.Quantity()); err != nil {
			h.logger.Error("stock reservation failed after purchase commit",
				"purchase_id", aggregate.ID().String(),
				"product_id", item.ProductID().String(),
				"error", err)
		}
	}
}

func (h *CreatePurchaseCommandHandler) appendHistory(ctx context.Context, aggregate *purchase.Purchase) {
	record, err := history.NewStatusRecord(aggregate.ID(), aggregate.Status().String(), time.Now())
	if err != nil {
		h.logger.Error("building history record failed",
			"purchase_id", aggregate.ID().String(), "error", err)
		return
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		h.logger.Error("history transaction failed",
			"purchase_id", aggregate.ID().String(), "error", err)
		return
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.HistoryRepository().Append(ctx, record); err != nil {
		h.logger.Error("history append failed",
			"purchase_id", aggregate.ID().String(), "error", err)
		return
	}

	if err = uow.Commit(ctx); err != nil {
		h.logger.Error("history commit failed",
			"purchase_id", aggregate.ID().String(), "error", err)
	}
}
