package commands

import (
	"context"

	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/locker"
)

// UpdateOrderStatusCommandHandler handles administrative status overrides.
// No transition rules apply and no inventory is touched: forcing an order
// between PLACED and CANCELLED leaves reservations exactly as they were.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	orderLocks *locker.KeyedMutex
	publisher  ports.NotificationPublisher
}

// NewUpdateOrderStatusCommandHandler creates a handler for status override
// operations. The keyed mutex must be the same instance shared by all order
// lifecycle handlers.
func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	orderLocks *locker.KeyedMutex,
	publisher ports.NotificationPublisher,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		orderLocks: orderLocks,
		publisher:  publisher,
	}
}

// Handle processes the status override command.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
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

	if err = aggregate.ForceStatus(cmd.Status()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, "order "+aggregate.ID().String()+" status changed to: "+cmd.Status().String())
	return nil
}
