package commands

import (
	"context"

	"orderflow/internal/pkg/locker"
)

// AddOrderItemCommandHandler handles appending line items to an order.
// The item is added to the aggregate and the total recomputed; inventory is
// not consulted here, reservation happens only when the order is placed.
// No notification is published for item additions.
type AddOrderItemCommandHandler struct {
	uowFactory OrderUoWFactory
	orderLocks *locker.KeyedMutex
}

// NewAddOrderItemCommandHandler creates a handler for item addition
// operations. The keyed mutex must be the same instance shared by all order
// lifecycle handlers.
func NewAddOrderItemCommandHandler(
	uowFactory OrderUoWFactory,
	orderLocks *locker.KeyedMutex,
) AddOrderItemCommandHandler {
	return AddOrderItemCommandHandler{
		uowFactory: uowFactory,
		orderLocks: orderLocks,
	}
}

// Handle processes the item addition command.
func (h *AddOrderItemCommandHandler) Handle(ctx context.Context, cmd AddOrderItemCommand) error {
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

	if err = aggregate.AddItem(cmd.Item()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
