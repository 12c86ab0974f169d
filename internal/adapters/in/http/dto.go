package http

import (
	"orderflow/internal/core/application/usecases/queries"

	"github.com/shopspring/decimal"
)

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest is the JSON body for POST /api/orders.
type CreateOrderRequest struct {
	CustomerName string             `json:"customer_name"`
	Items        []OrderItemRequest `json:"items"`
}

// OrderItemRequest describes one order line in create and add-item requests.
type OrderItemRequest struct {
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// CreateOrderResponse returns the identifier of a newly created order.
type CreateOrderResponse struct {
	ID string `json:"id"`
}

// UpdateStatusRequest is the JSON body for PUT /api/orders/:id/status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// OrderResponse is the JSON representation of an order on the read side.
type OrderResponse struct {
	ID            string              `json:"id"`
	CustomerName  string              `json:"customer_name"`
	Status        string              `json:"status"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	PaymentMethod string              `json:"payment_method,omitempty"`
	Items         []OrderItemResponse `json:"items"`
}

// OrderItemResponse is the JSON representation of one order line.
type OrderItemResponse struct {
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

func toOrderResponse(o queries.OrderResponse) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		}
	}

	return OrderResponse{
		ID:            o.ID.String(),
		CustomerName:  o.CustomerName,
		Status:        o.Status,
		TotalAmount:   o.TotalAmount,
		PaymentMethod: o.PaymentMethod,
		Items:         items,
	}
}

func toOrderResponses(orders []queries.OrderResponse) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = toOrderResponse(o)
	}
	return responses
}
