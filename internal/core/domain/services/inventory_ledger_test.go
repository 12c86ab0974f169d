package services_test

import (
	"context"
	"sync"
	"testing"

	"orderflow/internal/core/domain/model/product"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProductRepository is an in-memory ProductRepository for service tests.
type fakeProductRepository struct {
	mu       sync.Mutex
	products map[string]*product.Product
}

func newFakeProductRepository(products ...*product.Product) *fakeProductRepository {
	repo := &fakeProductRepository{products: make(map[string]*product.Product)}
	for _, p := range products {
		repo.products[p.Name()] = p
	}
	return repo
}

func (r *fakeProductRepository) Add(_ context.Context, p *product.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.Name()] = p
	return nil
}

func (r *fakeProductRepository) Update(_ context.Context, p *product.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.Name()] = p
	return nil
}

func (r *fakeProductRepository) GetByName(_ context.Context, name string) (*product.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[name]
	if !ok {
		return nil, errs.NewObjectNotFoundError("product", name)
	}
	restored, err := product.RestoreProduct(p.Name(), p.Price(), p.StockQuantity())
	if err != nil {
		return nil, err
	}
	return restored, nil
}

func (r *fakeProductRepository) ReserveStock(_ context.Context, name string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[name]
	if !ok {
		return errs.NewObjectNotFoundError("product", name)
	}
	return p.ReduceStock(quantity)
}

func (r *fakeProductRepository) ReleaseStock(_ context.Context, name string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[name]
	if !ok {
		return errs.NewObjectNotFoundError("product", name)
	}
	return p.IncreaseStock(quantity)
}

func (r *fakeProductRepository) stock(t *testing.T, name string) int {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[name]
	require.True(t, ok, "product %s not in repository", name)
	return p.StockQuantity()
}

func newLaptop(t *testing.T, stock int) *product.Product {
	t.Helper()
	p, err := product.NewProduct("Laptop", decimal.RequireFromString("999.99"), stock)
	require.NoError(t, err)
	return p
}

func TestInventoryLedger_Reserve(t *testing.T) {
	ctx := t.Context()

	t.Run("decrements stock", func(t *testing.T) {
		repo := newFakeProductRepository(newLaptop(t, 10))
		ledger := services.NewInventoryLedger()

		require.NoError(t, ledger.Reserve(ctx, repo, "Laptop", 2))
		assert.Equal(t, 8, repo.stock(t, "Laptop"))
	})

	t.Run("fails with InsufficientStock and leaves stock unchanged", func(t *testing.T) {
		repo := newFakeProductRepository(newLaptop(t, 3))
		ledger := services.NewInventoryLedger()

		err := ledger.Reserve(ctx, repo, "Laptop", 4)

		require.ErrorIs(t, err, product.ErrInsufficientStock)
		assert.Equal(t, 3, repo.stock(t, "Laptop"))
	})

	t.Run("fails with ObjectNotFound for unknown product", func(t *testing.T) {
		repo := newFakeProductRepository()
		ledger := services.NewInventoryLedger()

		err := ledger.Reserve(ctx, repo, "Laptop", 1)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestInventoryLedger_Release(t *testing.T) {
	ctx := t.Context()

	t.Run("increments stock", func(t *testing.T) {
		repo := newFakeProductRepository(newLaptop(t, 8))
		ledger := services.NewInventoryLedger()

		require.NoError(t, ledger.Release(ctx, repo, "Laptop", 2))
		assert.Equal(t, 10, repo.stock(t, "Laptop"))
	})

	t.Run("fails with ObjectNotFound for unknown product", func(t *testing.T) {
		repo := newFakeProductRepository()
		ledger := services.NewInventoryLedger()

		err := ledger.Release(ctx, repo, "Laptop", 1)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestInventoryLedger_ReserveThenRelease_RestoresStock(t *testing.T) {
	ctx := t.Context()
	repo := newFakeProductRepository(newLaptop(t, 10))
	ledger := services.NewInventoryLedger()

	require.NoError(t, ledger.Reserve(ctx, repo, "Laptop", 7))
	require.NoError(t, ledger.Release(ctx, repo, "Laptop", 7))

	assert.Equal(t, 10, repo.stock(t, "Laptop"))
}

func TestInventoryLedger_Lookup(t *testing.T) {
	ctx := t.Context()
	repo := newFakeProductRepository(newLaptop(t, 10))
	ledger := services.NewInventoryLedger()

	p, err := ledger.Lookup(ctx, repo, "Laptop")
	require.NoError(t, err)
	assert.Equal(t, "Laptop", p.Name())

	_, err = ledger.Lookup(ctx, repo, "Phone")
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestInventoryLedger_ConcurrentReservations(t *testing.T) {
	ctx := t.Context()
	repo := newFakeProductRepository(newLaptop(t, 100))
	ledger := services.NewInventoryLedger()

	const goroutines = 100

	var wg sync.WaitGroup
	wg.Add(goroutines)
	failures := make(chan error, goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			if err := ledger.Reserve(ctx, repo, "Laptop", 2); err != nil {
				failures <- err
			}
		}()
	}
	wg.Wait()
	close(failures)

	// 100 units cover 50 reservations of 2; the rest must fail cleanly
	// and stock must never go negative.
	failed := 0
	for err := range failures {
		require.ErrorIs(t, err, product.ErrInsufficientStock)
		failed++
	}
	assert.Equal(t, goroutines-50, failed)
	assert.Equal(t, 0, repo.stock(t, "Laptop"))
}
