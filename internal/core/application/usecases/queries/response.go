// Package queries contains the read side of the order-processing core.
// Query handlers read the order tables directly and return flat response
// models, bypassing the aggregate construction the write side requires.
package queries

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderResponse represents an order as returned by the read-side queries.
type OrderResponse struct {
	ID            kernel.UUID
	CustomerName  string
	Status        string
	TotalAmount   decimal.Decimal
	PaymentMethod string
	Items         []OrderItemResponse
}

// OrderItemResponse represents a single order line in query responses.
type OrderItemResponse struct {
	ProductName string
	Quantity    int
	Price       decimal.Decimal
}

// scanOrders reads order rows from the given result set and resolves their
// line items. Rows must be selected as (id, customer_name, status,
// total_amount, payment_method).
func scanOrders(ctx context.Context, db *gorm.DB, rows ordersRows) ([]OrderResponse, error) {
	orders := make([]OrderResponse, 0)

	for rows.Next() {
		var (
			id            uuid.UUID
			customerName  string
			status        int
			totalAmount   decimal.Decimal
			paymentMethod string
		)

		if err := rows.Scan(&id, &customerName, &status, &totalAmount, &paymentMethod); err != nil {
			return nil, err
		}

		orderID, err := kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}

		orders = append(orders, OrderResponse{
			ID:            orderID,
			CustomerName:  customerName,
			Status:        order.Status(status).String(),
			TotalAmount:   totalAmount,
			PaymentMethod: paymentMethod,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := loadItems(ctx, db, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}

	return orders, nil
}

// ordersRows is the subset of sql.Rows the order scanners use.
type ordersRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

// loadItems fetches the line items of one order in insertion order.
func loadItems(ctx context.Context, db *gorm.DB, orderID kernel.UUID) ([]OrderItemResponse, error) {
	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			product_name,
			quantity,
			price
		FROM order_items
		WHERE order_id = ?
		ORDER BY id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItemResponse, 0)
	for rows.Next() {
		var item OrderItemResponse
		if err = rows.Scan(&item.ProductName, &item.Quantity, &item.Price); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}
