package productrepo

import (
	"context"
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/product"
	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormProductRepository implements ProductRepository using GORM.
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM product repository.
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Add saves a new product to the database.
func (r *GormProductRepository) Add(ctx context.Context, p *product.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}

	dto := fromDomain(p)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an existing product to the database.
func (r *GormProductRepository) Update(ctx context.Context, p *product.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}

	dto := fromDomain(p)
	result := r.db.WithContext(ctx).Model(&ProductDTO{}).
		Where("name = ?", dto.Name).
		Select("Price", "StockQuantity").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// ReserveStock decrements the product's stock by quantity with a guarded
// delta: the WHERE clause re-checks availability on the locked row, so a
// concurrent transaction that committed in between cannot be overwritten
// and stock never goes negative.
func (r *GormProductRepository) ReserveStock(ctx context.Context, name string, quantity int) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	result := r.db.WithContext(ctx).Model(&ProductDTO{}).
		Where("name = ? AND stock_quantity >= ?", name, quantity).
		Update("stock_quantity", gorm.Expr("stock_quantity - ?", quantity))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		// Either the product is missing or the stock is short; re-read
		// to report which.
		p, err := r.GetByName(ctx, name)
		if err != nil {
			return err
		}
		return &product.InsufficientStockError{
			Name:      name,
			Requested: quantity,
			Available: p.StockQuantity(),
		}
	}

	return nil
}

// ReleaseStock increments the product's stock by quantity as a delta, so
// concurrent releases and reservations compose instead of overwriting each
// other.
func (r *GormProductRepository) ReleaseStock(ctx context.Context, name string, quantity int) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	result := r.db.WithContext(ctx).Model(&ProductDTO{}).
		Where("name = ?", name).
		Update("stock_quantity", gorm.Expr("stock_quantity + ?", quantity))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("product", name)
	}

	return nil
}

// GetByName retrieves a product by its unique name.
func (r *GormProductRepository) GetByName(ctx context.Context, name string) (*product.Product, error) {
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}

	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product", name)
		}
		return nil, err
	}

	return toDomain(dto)
}
