// Package order contains the Order aggregate of the order-processing core.
// An Order owns its line items, keeps its total amount in sync with them,
// and enforces the status state machine governing placement, payment and
// cancellation.
package order
