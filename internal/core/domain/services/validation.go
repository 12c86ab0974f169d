package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrValidationFailed is the sentinel for candidate orders rejected by the
// validation chain. The failure is recoverable: the caller may fix the
// order and resubmit it.
var ErrValidationFailed = errors.New("order validation failed")

// ValidationFailedError carries the reason a candidate order was rejected.
type ValidationFailedError struct {
	Reason string
	Cause  error
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidationFailed, e.Reason)
}

func (e *ValidationFailedError) Unwrap() error {
	return ErrValidationFailed
}

// NewValidationFailedError creates a ValidationFailedError with the given reason.
func NewValidationFailedError(reason string) *ValidationFailedError {
	return &ValidationFailedError{Reason: reason}
}

// NewValidationFailedErrorWithCause creates a ValidationFailedError wrapping
// the underlying cause of the rejection.
func NewValidationFailedErrorWithCause(reason string, cause error) *ValidationFailedError {
	return &ValidationFailedError{Reason: reason, Cause: cause}
}

// OrderValidator is one link of the validation chain. Implementations check
// a single concern, never mutate the order, and reject with a
// ValidationFailedError.
type OrderValidator interface {
	Validate(ctx context.Context, products ports.ProductRepository, o *order.Order) error
}

// ValidationChain runs an ordered sequence of validators against a candidate
// order. The first failure halts the chain; later validators do not run.
// The chain is configured once and is stateless afterwards.
type ValidationChain struct {
	validators []OrderValidator
}

// NewValidationChain creates a chain running the given validators in order.
func NewValidationChain(validators ...OrderValidator) ValidationChain {
	return ValidationChain{validators: validators}
}

// NewDefaultValidationChain creates the standard chain for candidate orders:
// inventory availability first, then customer and payment-data sanity.
func NewDefaultValidationChain() ValidationChain {
	return NewValidationChain(
		InventoryValidator{},
		CustomerDetailsValidator{},
	)
}

// Validate runs the chain against the candidate order.
// Returns the first validator's failure unchanged, or nil when all pass.
func (c ValidationChain) Validate(
	ctx context.Context,
	products ports.ProductRepository,
	o *order.Order,
) error {
	if err := o.Validate(); err != nil {
		return err
	}

	for _, v := range c.validators {
		if err := v.Validate(ctx, products, o); err != nil {
			return err
		}
	}

	return nil
}

// InventoryValidator checks that every line item references an existing
// product with sufficient stock. Read-only: no stock is reserved here.
type InventoryValidator struct{}

// Validate rejects the order if any item's product is missing or short on stock.
func (InventoryValidator) Validate(
	ctx context.Context,
	products ports.ProductRepository,
	o *order.Order,
) error {
	for _, item := range o.Items() {
		p, err := products.GetByName(ctx, item.ProductName())
		if err != nil {
			if errors.Is(err, errs.ErrObjectNotFound) {
				return NewValidationFailedErrorWithCause(
					fmt.Sprintf("product not found: %s", item.ProductName()), err)
			}
			return err
		}

		if !p.IsInStock(item.Quantity()) {
			return NewValidationFailedError(
				fmt.Sprintf("insufficient stock for product: %s", item.ProductName()))
		}
	}

	return nil
}

// CustomerDetailsValidator checks the sanity of the order's customer and
// payment data: a present customer name and a positive total amount.
type CustomerDetailsValidator struct{}

// Validate rejects the order if the total is not positive or the customer
// name is blank.
func (CustomerDetailsValidator) Validate(
	_ context.Context,
	_ ports.ProductRepository,
	o *order.Order,
) error {
	if o.TotalAmount().LessThanOrEqual(decimal.Zero) {
		return NewValidationFailedError("order total amount must be greater than 0")
	}

	if strings.TrimSpace(o.CustomerName()) == "" {
		return NewValidationFailedError("customer name is required")
	}

	return nil
}
