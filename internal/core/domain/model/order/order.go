package order

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through the NewOrder or RestoreOrder factory methods. This ensures all
// orders are properly validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Order represents a customer order. It is the aggregate root that manages
// the order lifecycle from creation through placement, payment and
// cancellation.
//
// Order follows these invariants:
//   - Must have a valid unique identifier
//   - Customer name must not be empty
//   - Total amount equals the sum of its items' subtotals and is recomputed
//     whenever items change
//   - Status transitions follow the state machine in Status, except for the
//     administrative ForceStatus override
//   - Payment method stays empty until payment is processed
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	id            kernel.UUID
	customerName  string
	status        Status
	totalAmount   decimal.Decimal
	paymentMethod string
	items         []Item

	isConstructed bool
}

// NewOrder creates a new Order in Pending status with validation.
// The total amount is computed from the provided items.
//
// Parameters:
//   - id: Unique identifier for the order (must be a valid UUID)
//   - customerName: Name of the ordering customer (must not be empty)
//   - items: Line items of the order (each must be constructed via NewItem)
func NewOrder(id kernel.UUID, customerName string, items []Item) (*Order, error) {
	o := &Order{
		status:        Pending,
		totalAmount:   decimal.Zero,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerName(customerName),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	o.recomputeTotal()
	return o, nil
}

// RestoreOrder reconstructs an Order from persisted state.
// Used by persistence adapters; the persisted status and payment method are
// trusted but still validated, and the total is restored as persisted.
func RestoreOrder(
	id kernel.UUID,
	customerName string,
	status Status,
	totalAmount decimal.Decimal,
	paymentMethod string,
	items []Item,
) (*Order, error) {
	o := &Order{
		paymentMethod: paymentMethod,
		totalAmount:   totalAmount,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerName(customerName),
		o.setItems(items),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	o.status = status
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
// Returns ErrOrderIsNotConstructed for zero-value instances.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerName returns the name of the ordering customer.
func (o *Order) CustomerName() string {
	return o.customerName
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// TotalAmount returns the sum of the items' subtotals.
func (o *Order) TotalAmount() decimal.Decimal {
	return o.totalAmount
}

// PaymentMethod returns the payment method used to pay the order.
// Empty until payment has been processed.
func (o *Order) PaymentMethod() string {
	return o.paymentMethod
}

// Items returns a copy of the order's line items in insertion order.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// AddItem appends a line item to the order and recomputes the total amount.
// Adding an item performs no validation against inventory and reserves
// nothing; inventory effects happen only when the order is placed.
func (o *Order) AddItem(item Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	o.items = append(o.items, item)
	o.totalAmount = o.totalAmount.Add(item.Subtotal())
	return nil
}

// Place marks the order as Placed.
// The caller is responsible for reserving the items' quantities from
// inventory as part of the same operation.
func (o *Order) Place() error {
	newStatus, err := o.status.Place()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// MarkPaid records the payment method and marks the order as Paid.
// Called after the payment dispatcher reported success.
func (o *Order) MarkPaid(paymentMethod string) error {
	if paymentMethod == "" {
		return errs.NewValueIsRequiredError("paymentMethod")
	}

	newStatus, err := o.status.Pay()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.paymentMethod = paymentMethod
	return nil
}

// Cancel marks the order as Cancelled.
//
// Returns ErrOrderAlreadyCancelled or ErrCannotCancelShipped without
// modifying the order when the current status forbids cancellation.
// Check Status().RequiresStockRelease() before calling to learn whether
// reserved inventory must be returned.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// ForceStatus sets the status directly, bypassing the state machine.
// Administrative escape hatch: no transition validation and no inventory
// effects. Callers moving an order into or out of Placed/Cancelled must
// handle inventory themselves.
func (o *Order) ForceStatus(newStatus Status) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

func (o *Order) recomputeTotal() {
	total := decimal.Zero
	for _, item := range o.items {
		total = total.Add(item.Subtotal())
	}
	o.totalAmount = total
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerName(customerName string) error {
	if customerName == "" {
		return errs.NewValueIsRequiredError("customerName")
	}
	o.customerName = customerName
	return nil
}

func (o *Order) setItems(items []Item) error {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}
