package checkout

import (
	"time"

	"github.com/bookhaven/backend/internal/domain/checkout"
	"github.com/bookhaven/backend/internal/domain/order"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SessionDTO is the wizard state returned to clients. Payment details are
// never echoed back, only whether they have been captured.
type SessionDTO struct {
	Step            checkout.Step          `json:"step"`
	Shipping        *checkout.ShippingInfo `json:"shipping,omitempty"`
	PaymentCaptured bool                   `json:"payment_captured"`
	TotalItems      int                    `json:"total_items"`
	TotalAmount     decimal.Decimal        `json:"total_amount"`
}

// SubmitShippingInput carries the shipping form
type SubmitShippingInput struct {
	UserID   uuid.UUID
	Shipping checkout.ShippingInfo
}

// PlaceOrderInput carries the payment form and the client's idempotency key
type PlaceOrderInput struct {
	UserID         uuid.UUID
	Payment        checkout.PaymentInfo
	IdempotencyKey string
}

// OrderConfirmationDTO is what the confirmation page renders
type OrderConfirmationDTO struct {
	OrderID     uuid.UUID             `json:"order_id"`
	OrderNumber string                `json:"order_number"`
	Status      order.OrderStatus     `json:"status"`
	Items       []OrderItemDTO        `json:"items"`
	TotalItems  int                   `json:"total_items"`
	TotalAmount decimal.Decimal       `json:"total_amount"`
	Shipping    order.ShippingAddress `json:"shipping"`
	Payment     order.PaymentRecord   `json:"payment"`
	PlacedAt    time.Time             `json:"placed_at"`
}

// OrderItemDTO is one snapshot line of a placed order
type OrderItemDTO struct {
	BookID   uuid.UUID       `json:"book_id"`
	Title    string          `json:"title"`
	Author   string          `json:"author"`
	Cover    string          `json:"cover"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// ToOrderConfirmationDTO converts a placed order to its transport shape
func ToOrderConfirmationDTO(o *order.Order) *OrderConfirmationDTO {
	items := make([]OrderItemDTO, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemDTO{
			BookID:   item.BookID,
			Title:    item.Title,
			Author:   item.Author,
			Cover:    item.Cover,
			Price:    item.Price,
			Quantity: item.Quantity,
			Subtotal: item.Subtotal(),
		}
	}
	return &OrderConfirmationDTO{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		Status:      o.Status,
		Items:       items,
		TotalItems:  o.TotalItems(),
		TotalAmount: o.TotalAmount,
		Shipping:    o.Shipping,
		Payment:     o.Payment,
		PlacedAt:    o.PlacedAt,
	}
}
