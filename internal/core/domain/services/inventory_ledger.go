package services

import (
	"context"

	"orderflow/internal/core/domain/model/product"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/locker"
)

// InventoryLedger applies stock adjustments to the product catalog.
//
// Adjustments go through the repository's atomic ReserveStock/ReleaseStock
// operations, which apply guarded deltas at the store. That keeps two
// transactions that each read the same committed stock from overwriting
// each other's reservation when they commit. A per-product mutex
// additionally serializes in-process callers. The ledger itself is
// stateless apart from its locks; product state lives in the repository
// passed to each call, which binds the adjustment to the caller's
// transaction.
//
// Example:
//
//	ledger := services.NewInventoryLedger()
//	if err := ledger.Reserve(ctx, products, "Laptop", 2); err != nil {
//	    // product missing or insufficient stock; nothing was changed
//	    return err
//	}
type InventoryLedger struct {
	locks *locker.KeyedMutex
}

// NewInventoryLedger creates an InventoryLedger with its own lock registry.
// A single instance must be shared by all callers that touch the same
// catalog for the per-product serialization to hold.
func NewInventoryLedger() *InventoryLedger {
	return &InventoryLedger{
		locks: locker.NewKeyedMutex(),
	}
}

// Reserve decrements the product's stock by quantity.
//
// Fails with product.InsufficientStockError when quantity exceeds the
// available stock and with errs.ObjectNotFoundError when the product does
// not exist; in both cases stock is left unchanged.
func (l *InventoryLedger) Reserve(
	ctx context.Context,
	products ports.ProductRepository,
	productName string,
	quantity int,
) error {
	l.locks.Lock(productName)
	defer l.locks.Unlock(productName)

	return products.ReserveStock(ctx, productName, quantity)
}

// Release increments the product's stock by quantity, restoring previously
// reserved units. Fails with errs.ObjectNotFoundError when the product does
// not exist.
func (l *InventoryLedger) Release(
	ctx context.Context,
	products ports.ProductRepository,
	productName string,
	quantity int,
) error {
	l.locks.Lock(productName)
	defer l.locks.Unlock(productName)

	return products.ReleaseStock(ctx, productName, quantity)
}

// Lookup returns the current state of the named product.
// Fails with errs.ObjectNotFoundError when the product does not exist.
func (l *InventoryLedger) Lookup(
	ctx context.Context,
	products ports.ProductRepository,
	productName string,
) (*product.Product, error) {
	return products.GetByName(ctx, productName)
}
