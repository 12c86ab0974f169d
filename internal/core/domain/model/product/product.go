package product

import (
	"errors"
	"fmt"

	"orderflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrProductIsNotConstructed is returned when a Product instance was not created
	// through the NewProduct or RestoreProduct factory methods.
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

	// ErrInsufficientStock is the sentinel for stock reservations that exceed
	// the available quantity.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// InsufficientStockError indicates that a stock reservation requested more units
// than the product currently has available. The reservation has no effect on stock.
type InsufficientStockError struct {
	Name      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product: %s (requested: %d, available: %d)",
		e.Name, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// Product represents a catalog item tracked by the inventory ledger.
//
// Product follows these invariants:
//   - Name is unique within the catalog and must not be empty
//   - Price must be positive
//   - Stock quantity never goes negative
//   - Can only be created through NewProduct or RestoreProduct
//
// Stock is mutated only through ReduceStock and IncreaseStock so the
// non-negative invariant holds at all times.
type Product struct {
	name          string
	price         decimal.Decimal
	stockQuantity int

	isConstructed bool
}

// NewProduct creates a new Product instance with validation.
//
// Parameters:
//   - name: Unique product name (must not be empty)
//   - price: Unit price (must be greater than zero)
//   - stockQuantity: Units available (must not be negative)
//
// Returns the created product, or a validation error if any parameter is invalid.
func NewProduct(name string, price decimal.Decimal, stockQuantity int) (*Product, error) {
	p := &Product{
		isConstructed: true,
	}

	if err := errors.Join(
		p.setName(name),
		p.setPrice(price),
		p.setStockQuantity(stockQuantity),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreProduct reconstructs a Product from persisted state.
// The same invariants as NewProduct apply; persistence must not be able to
// smuggle an invalid product back into the domain.
func RestoreProduct(name string, price decimal.Decimal, stockQuantity int) (*Product, error) {
	return NewProduct(name, price, stockQuantity)
}

// Validate ensures the Product instance was properly constructed.
// Returns ErrProductIsNotConstructed for zero-value instances.
func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}

	return nil
}

// IsEqual compares two products by name, the catalog identity.
func (p *Product) IsEqual(other *Product) bool {
	return other != nil && p.name == other.name
}

// Name returns the unique product name.
func (p *Product) Name() string {
	return p.name
}

// Price returns the current unit price.
func (p *Product) Price() decimal.Decimal {
	return p.price
}

// StockQuantity returns the number of units currently available.
func (p *Product) StockQuantity() int {
	return p.stockQuantity
}

// IsInStock reports whether the requested quantity can be reserved.
func (p *Product) IsInStock(quantity int) bool {
	return p.stockQuantity >= quantity
}

// ReduceStock decrements stock by quantity, reserving units for an order.
//
// Returns an InsufficientStockError and leaves stock unchanged when quantity
// exceeds the available stock. Quantity must be positive.
func (p *Product) ReduceStock(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	if quantity > p.stockQuantity {
		return &InsufficientStockError{
			Name:      p.name,
			Requested: quantity,
			Available: p.stockQuantity,
		}
	}

	p.stockQuantity -= quantity
	return nil
}

// IncreaseStock increments stock by quantity, restoring previously reserved units.
// Quantity must be positive.
func (p *Product) IncreaseStock(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	p.stockQuantity += quantity
	return nil
}

func (p *Product) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Product) setPrice(price decimal.Decimal) error {
	if price.LessThanOrEqual(decimal.Zero) {
		return errs.NewValueIsInvalidErrorWithCause("price",
			fmt.Errorf("%s is not greater than 0", price))
	}
	p.price = price
	return nil
}

func (p *Product) setStockQuantity(stockQuantity int) error {
	if stockQuantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause("stockQuantity",
			fmt.Errorf("%d is negative", stockQuantity))
	}
	p.stockQuantity = stockQuantity
	return nil
}
