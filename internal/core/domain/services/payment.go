package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrUnknownPaymentMethod is the sentinel for payment method keys with
	// no registered executor.
	ErrUnknownPaymentMethod = errors.New("unknown payment method")

	// ErrInvalidAmount is the sentinel for payment amounts that are not positive.
	ErrInvalidAmount = errors.New("payment amount must be greater than 0")
)

// UnknownPaymentMethodError indicates that no executor is registered for
// the requested payment method key.
type UnknownPaymentMethodError struct {
	Method string
}

func (e *UnknownPaymentMethodError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnknownPaymentMethod, e.Method)
}

func (e *UnknownPaymentMethodError) Unwrap() error {
	return ErrUnknownPaymentMethod
}

// InvalidAmountError indicates that a payment executor rejected the amount.
type InvalidAmountError struct {
	Amount decimal.Decimal
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidAmount, e.Amount)
}

func (e *InvalidAmountError) Unwrap() error {
	return ErrInvalidAmount
}

// PaymentHandler executes a pay-or-fail operation for a given amount.
// Handlers are pure functions of the amount; no state is retained between
// calls. Success is the absence of an error.
type PaymentHandler func(ctx context.Context, amount decimal.Decimal) error

// PaymentDispatcher resolves payment method keys to their executors.
// Method keys are case-insensitive. Adding a payment method is a
// registration at startup, not a change to the dispatcher.
//
// Example:
//
//	dispatcher := services.NewPaymentDispatcher()
//	dispatcher.Register("CreditCard", services.NewCreditCardPayment(logger))
//
//	err := dispatcher.Pay(ctx, "creditcard", order.TotalAmount())
//	if errors.Is(err, services.ErrUnknownPaymentMethod) {
//	    // no executor registered for this key
//	}
type PaymentDispatcher struct {
	handlers map[string]PaymentHandler
}

// NewPaymentDispatcher creates a dispatcher with no registered methods.
func NewPaymentDispatcher() *PaymentDispatcher {
	return &PaymentDispatcher{
		handlers: make(map[string]PaymentHandler),
	}
}

// Register binds a payment method key to its executor.
// The key is lower-cased; registering an existing key replaces its executor.
func (d *PaymentDispatcher) Register(method string, handler PaymentHandler) {
	d.handlers[strings.ToLower(method)] = handler
}

// Pay resolves method to its executor and invokes it with amount.
// Fails with UnknownPaymentMethodError when no executor is registered;
// executor failures are propagated unchanged.
func (d *PaymentDispatcher) Pay(ctx context.Context, method string, amount decimal.Decimal) error {
	handler, ok := d.handlers[strings.ToLower(method)]
	if !ok {
		return &UnknownPaymentMethodError{Method: method}
	}

	return handler(ctx, amount)
}

// NewCreditCardPayment creates the credit card payment executor.
// Fails with InvalidAmountError for non-positive amounts; otherwise the
// payment is logged as processed. A production deployment would call out
// to a payment gateway here.
func NewCreditCardPayment(logger *slog.Logger) PaymentHandler {
	logger = logger.With("channel", "creditcard")
	return func(ctx context.Context, amount decimal.Decimal) error {
		if amount.LessThanOrEqual(decimal.Zero) {
			return &InvalidAmountError{Amount: amount}
		}

		logger.InfoContext(ctx, "credit card payment processed", "amount", amount.String())
		return nil
	}
}

// NewPayPalPayment creates the PayPal payment executor.
// Fails with InvalidAmountError for non-positive amounts.
func NewPayPalPayment(logger *slog.Logger) PaymentHandler {
	logger = logger.With("channel", "paypal")
	return func(ctx context.Context, amount decimal.Decimal) error {
		if amount.LessThanOrEqual(decimal.Zero) {
			return &InvalidAmountError{Amount: amount}
		}

		logger.InfoContext(ctx, "paypal payment processed", "amount", amount.String())
		return nil
	}
}
