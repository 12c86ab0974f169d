package order

import (
	"errors"
	"fmt"

	"orderflow/internal/pkg/errs"
)

var (
	// ErrOrderAlreadyCancelled is returned when cancelling an order that is
	// already in Cancelled status.
	ErrOrderAlreadyCancelled = errors.New("order is already cancelled")

	// ErrCannotCancelShipped is returned when cancelling an order that has
	// already been shipped.
	ErrCannotCancelShipped = errors.New("cannot cancel a shipped order")
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	Pending ──> Placed ──> Paid ──> Shipped
//	   │          │          │
//	   └──────────┴──────────┴──> Cancelled
//
// Shipped and Cancelled are terminal with respect to cancellation.
// Administrative overrides via Order.ForceStatus bypass this machine.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a validated order that has not been
	// placed yet. No inventory is reserved while an order is Pending.
	Pending

	// Placed indicates the order's items have been reserved from inventory.
	Placed

	// Paid indicates payment was processed for the order.
	Paid

	// Shipped indicates the order has left the warehouse.
	// Shipped orders can no longer be cancelled.
	Shipped

	// Cancelled indicates the order was cancelled and any reserved
	// inventory was released.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Pending:   "PENDING",
		Placed:    "PLACED",
		Paid:      "PAID",
		Shipped:   "SHIPPED",
		Cancelled: "CANCELLED",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "PENDING",
		Placed:    "PLACED",
		Paid:      "PAID",
		Shipped:   "SHIPPED",
		Cancelled: "CANCELLED",
	}
}

// StatusFromString parses a status from its string representation.
// Returns an error for strings that do not name a valid status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// Unknown (0) and any other values outside the defined set are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the uppercase name of the status ("PENDING", "PLACED", ...).
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Place transitions the status to Placed.
//
// Valid transitions:
//   - Pending -> Placed (normal placement after creation)
//   - Paid -> Placed (pre-paid order placement)
//
// Placing an already placed order is rejected so its inventory cannot be
// reserved twice.
func (s Status) Place() (Status, error) {
	if s != Pending && s != Paid {
		return 0, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to place", s))
	}

	return Placed, nil
}

// Pay transitions the status to Paid.
//
// Valid transitions:
//   - Placed -> Paid (payment for a placed order)
//   - Paid -> Paid (repeated payment confirmation)
func (s Status) Pay() (Status, error) {
	if s != Placed && s != Paid {
		return 0, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to pay", s))
	}

	return Paid, nil
}

// Cancel transitions the status to Cancelled.
//
// Returns ErrOrderAlreadyCancelled for Cancelled orders and
// ErrCannotCancelShipped for Shipped orders; both leave the order as is.
// Any other valid status may be cancelled.
func (s Status) Cancel() (Status, error) {
	switch s {
	case Cancelled:
		return 0, ErrOrderAlreadyCancelled
	case Shipped:
		return 0, ErrCannotCancelShipped
	}

	if err := s.Validate(); err != nil {
		return 0, err
	}

	return Cancelled, nil
}

// RequiresStockRelease reports whether cancelling an order in this status
// must return its item quantities to inventory. Only Placed and Paid orders
// hold reservations.
func (s Status) RequiresStockRelease() bool {
	return s == Placed || s == Paid
}
