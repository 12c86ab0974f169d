package queries

import (
	"context"
	"database/sql"
	"errors"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderByIDQueryHandler retrieves a single order from the database.
type GetOrderByIDQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderByIDQueryHandler creates a handler for single-order queries.
func NewGetOrderByIDQueryHandler(db *gorm.DB) GetOrderByIDQueryHandler {
	return GetOrderByIDQueryHandler{db: db}
}

// Handle executes the query. Returns an ObjectNotFoundError when no order
// with the requested id exists.
func (h GetOrderByIDQueryHandler) Handle(
	ctx context.Context,
	query GetOrderByIDQuery,
) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	var (
		id            uuid.UUID
		customerName  string
		status        int
		totalAmount   decimal.Decimal
		paymentMethod string
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_name,
			status,
			total_amount,
			payment_method
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	err := row.Scan(&id, &customerName, &status, &totalAmount, &paymentMethod)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return OrderResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return OrderResponse{}, err
	}

	items, err := loadItems(ctx, h.db, query.OrderID())
	if err != nil {
		return OrderResponse{}, err
	}

	return OrderResponse{
		ID:            query.OrderID(),
		CustomerName:  customerName,
		Status:        order.Status(status).String(),
		TotalAmount:   totalAmount,
		PaymentMethod: paymentMethod,
		Items:         items,
	}, nil
}
