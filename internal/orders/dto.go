package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/db/models"
	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/enums"
)

// OrderItemDTO is a purchased line as snapshotted at checkout.
type OrderItemDTO struct {
	ID           uuid.UUID       `json:"id"`
	ProductID    *uuid.UUID      `json:"product_id,omitempty"`
	ProductName  string          `json:"product_name"`
	ProductPrice decimal.Decimal `json:"product_price"`
	Quantity     int             `json:"quantity"`
}

// OrderDTO is the client-facing order representation.
type OrderDTO struct {
	ID              uuid.UUID         `json:"id"`
	TotalAmount     decimal.Decimal   `json:"total_amount"`
	Status          enums.OrderStatus `json:"status"`
	PaymentID       *string           `json:"payment_id,omitempty"`
	ShippingAddress *string           `json:"shipping_address,omitempty"`
	Items           []OrderItemDTO    `json:"items"`
	CreatedAt       time.Time         `json:"created_at"`
}

// OrderListResult is a cursor-paginated page of a user's orders.
type OrderListResult struct {
	Orders     []OrderDTO `json:"orders"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

// ToDTO converts a persisted order with its items.
func ToDTO(order models.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemDTO{
			ID:           item.ID,
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			ProductPrice: item.ProductPrice,
			Quantity:     item.Quantity,
		})
	}
	return OrderDTO{
		ID:              order.ID,
		TotalAmount:     order.TotalAmount,
		Status:          order.Status,
		PaymentID:       order.PaymentID,
		ShippingAddress: order.ShippingAddress,
		Items:           items,
		CreatedAt:       order.CreatedAt,
	}
}
