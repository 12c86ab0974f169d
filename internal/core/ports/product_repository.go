package ports

import (
	"context"

	"orderflow/internal/core/domain/model/product"
)

// ProductRepository defines the persistence contract for the product catalog.
// Products are identified by their unique name.
type ProductRepository interface {
	// Add persists a new product to the catalog.
	Add(ctx context.Context, aggregate *product.Product) error

	// Update persists changes to an existing product, including its stock.
	Update(ctx context.Context, aggregate *product.Product) error

	// GetByName retrieves a product by its unique name.
	// Returns errs.ObjectNotFoundError when no product with that name exists.
	GetByName(ctx context.Context, name string) (*product.Product, error)

	// ReserveStock atomically decrements the product's stock by quantity.
	// The decrement is guarded at the store, so concurrent transactions
	// cannot overdraw the stock regardless of what they read earlier.
	// Returns product.InsufficientStockError when quantity exceeds the
	// available stock and errs.ObjectNotFoundError when the product does
	// not exist; in both cases stock is left unchanged.
	ReserveStock(ctx context.Context, name string, quantity int) error

	// ReleaseStock atomically increments the product's stock by quantity,
	// restoring previously reserved units. Returns errs.ObjectNotFoundError
	// when the product does not exist.
	ReleaseStock(ctx context.Context, name string, quantity int) error
}
