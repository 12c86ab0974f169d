package commands

import (
	"context"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Runs the validation chain against current inventory, persists the order
// in PENDING status and announces the creation on the notification bus.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, chain, publisher)
//	cmd, _ := NewCreateOrderCommand(kernel.NewUUID(), "Alice", items)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// Order is now pending and ready to be placed
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	validators *services.ValidationChain
	publisher  ports.NotificationPublisher
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires a UoWFactory for transactional persistence, the validation chain
// every new order must pass, and a publisher for lifecycle notifications.
func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	validators *services.ValidationChain,
	publisher ports.NotificationPublisher,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		validators: validators,
		publisher:  publisher,
	}
}

// Handle processes the order creation command.
// The order only reaches the repository after every validator in the chain
// accepts it. Stock is NOT reserved here; reservation happens on placement.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	newOrder, err := order.NewOrder(cmd.OrderID(), cmd.CustomerName(), cmd.Items())
	if err != nil {
		return err
	}

	if err = h.validators.Validate(ctx, uow.ProductRepository(), newOrder); err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, "order created: "+newOrder.ID().String())
	return nil
}
