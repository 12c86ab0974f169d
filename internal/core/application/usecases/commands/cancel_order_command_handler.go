package commands

import (
	"context"

	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/locker"
)

// CancelOrderCommandHandler handles the business logic for order cancellation.
// Cancelling a placed or paid order returns its reserved stock to inventory;
// cancelling a pending order touches no inventory. Shipped orders cannot be
// cancelled, and cancelling twice fails on the second attempt.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	ledger     *services.InventoryLedger
	orderLocks *locker.KeyedMutex
	publisher  ports.NotificationPublisher
}

// NewCancelOrderCommandHandler creates a handler for order cancellation
// operations. The keyed mutex must be the same instance shared by all order
// lifecycle handlers.
func NewCancelOrderCommandHandler(
	uowFactory UoWFactory,
	ledger *services.InventoryLedger,
	orderLocks *locker.KeyedMutex,
	publisher ports.NotificationPublisher,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		ledger:     ledger,
		orderLocks: orderLocks,
		publisher:  publisher,
	}
}

// Handle processes the order cancellation command.
// Stock is released only for orders whose status had reserved it.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	releaseStock := aggregate.Status().RequiresStockRelease()
	if err = aggregate.Cancel(); err != nil {
		return err
	}

	if releaseStock {
		productRepo := uow.ProductRepository()
		for _, item := range aggregate.Items() {
			if err = h.ledger.Release(ctx, productRepo, item.ProductName(), item.Quantity()); err != nil {
				return err
			}
		}
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, "order cancelled: "+aggregate.ID().String())
	return nil
}
