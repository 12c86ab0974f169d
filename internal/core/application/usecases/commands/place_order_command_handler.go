package commands

import (
	"context"

	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/locker"
)

// PlaceOrderCommandHandler handles the business logic for order placement.
// Placement reserves stock for every line item and moves the order from
// PENDING to PLACED in one transaction: either all items are reserved and
// the order is placed, or nothing changes.
//
// Example:
//
//	handler := NewPlaceOrderCommandHandler(uowFactory, ledger, locks, publisher)
//	cmd, _ := NewPlaceOrderCommand(orderID)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order placement failed: %w", err)
//	}
type PlaceOrderCommandHandler struct {
	uowFactory UoWFactory
	ledger     *services.InventoryLedger
	orderLocks *locker.KeyedMutex
	publisher  ports.NotificationPublisher
}

// NewPlaceOrderCommandHandler creates a handler for order placement operations.
// The keyed mutex serializes operations on the same order; it must be the
// same instance shared by all order lifecycle handlers.
func NewPlaceOrderCommandHandler(
	uowFactory UoWFactory,
	ledger *services.InventoryLedger,
	orderLocks *locker.KeyedMutex,
	publisher ports.NotificationPublisher,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		ledger:     ledger,
		orderLocks: orderLocks,
		publisher:  publisher,
	}
}

// Handle processes the order placement command.
// Reserves stock item by item inside the transaction; the first item that
// cannot be reserved rolls back every reservation already made.
func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	h.orderLocks.Lock(cmd.OrderID().String())
	defer h.orderLocks.Unlock(cmd.OrderID().String())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.Place(); err != nil {
		return err
	}

	productRepo := uow.ProductRepository()
	for _, item := range aggregate.Items() {
		if err = h.ledger.Reserve(ctx, productRepo, item.ProductName(), item.Quantity()); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, "order placed: "+aggregate.ID().String())
	return nil
}
