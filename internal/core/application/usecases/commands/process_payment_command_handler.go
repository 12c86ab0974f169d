package commands

import (
	"context"

	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/locker"
)

// ProcessPaymentCommandHandler handles the business logic for payment
// processing. The order's total amount is charged through the dispatcher's
// executor for the requested method; on success the order is marked PAID
// with the method recorded on it.
type ProcessPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	dispatcher *services.PaymentDispatcher
	orderLocks *locker.KeyedMutex
	publisher  ports.NotificationPublisher
}

// NewProcessPaymentCommandHandler creates a handler for payment operations.
// The dispatcher carries the registered payment executors; the keyed mutex
// must be the same instance shared by all order lifecycle handlers.
func NewProcessPaymentCommandHandler(
	uowFactory OrderUoWFactory,
	dispatcher *services.PaymentDispatcher,
	orderLocks *locker.KeyedMutex,
	publisher ports.NotificationPublisher,
) ProcessPaymentCommandHandler {
	return ProcessPaymentCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		orderLocks: orderLocks,
		publisher:  publisher,
	}
}

// Handle processes the payment command.
// The status transition is checked before the executor runs so that an order
// that cannot be paid never reaches the payment provider.
func (h *ProcessPaymentCommandHandler) Handle(ctx context.Context, cmd ProcessPaymentCommand) error {
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

	if err = aggregate.MarkPaid(cmd.PaymentMethod()); err != nil {
		return err
	}

	if err = h.dispatcher.Pay(ctx, cmd.PaymentMethod(), aggregate.TotalAmount()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, "payment processed for order: "+aggregate.ID().String())
	return nil
}
