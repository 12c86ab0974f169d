package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var (
	ErrProcessPaymentCommandIsNotConstructed = errors.New(
		"ProcessPaymentCommand must be created via NewProcessPaymentCommand constructor",
	)
)

// ProcessPaymentCommand represents a request to pay for a placed order
// with a named payment method.
type ProcessPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	paymentMethod string

	guard guard.ConstructorGuard
}

// NewProcessPaymentCommand creates a command to pay for the order with the
// given id using paymentMethod. The method name is resolved against the
// dispatcher's registry at handling time, not here.
func NewProcessPaymentCommand(orderID kernel.UUID, paymentMethod string) (ProcessPaymentCommand, error) {
	cmd := ProcessPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPaymentMethod(paymentMethod),
	); err != nil {
		return ProcessPaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ProcessPaymentCommand) Validate() error {
	return c.guard.Validate(ErrProcessPaymentCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to pay for.
func (c ProcessPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PaymentMethod returns the requested payment method name.
func (c ProcessPaymentCommand) PaymentMethod() string {
	return c.paymentMethod
}

func (c *ProcessPaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ProcessPaymentCommand) setPaymentMethod(paymentMethod string) error {
	if paymentMethod == "" {
		return errs.NewValueIsRequiredError("paymentMethod")
	}

	c.paymentMethod = paymentMethod
	return nil
}
