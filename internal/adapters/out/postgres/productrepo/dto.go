// Package productrepo provides data transfer objects and mapping functions for
// product persistence. Products form the inventory the order flow reserves
// from and releases back to.
package productrepo

import (
	"orderflow/internal/core/domain/model/product"

	"github.com/shopspring/decimal"
)

// ProductDTO represents the database structure for persisting products.
// Products are identified by their unique name.
type ProductDTO struct {
	Name          string          `gorm:"type:varchar(255);primaryKey"`
	Price         decimal.Decimal `gorm:"type:decimal(14,2)"`
	StockQuantity int             `gorm:"not null"`
}

// TableName specifies the database table name for product entities.
func (ProductDTO) TableName() string {
	return "products"
}

// fromDomain converts a product domain entity to its database representation.
func fromDomain(p *product.Product) ProductDTO {
	return ProductDTO{
		Name:          p.Name(),
		Price:         p.Price(),
		StockQuantity: p.StockQuantity(),
	}
}

// toDomain converts a database DTO to a product domain entity.
func toDomain(dto ProductDTO) (*product.Product, error) {
	return product.RestoreProduct(dto.Name, dto.Price, dto.StockQuantity)
}
