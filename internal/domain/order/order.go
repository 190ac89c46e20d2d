package order

import (
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/bookhaven/backend/internal/domain/cart"
	"github.com/bookhaven/backend/internal/domain/checkout"
	"github.com/bookhaven/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the fulfillment state of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusProcessing || target == OrderStatusCancelled
	case OrderStatusProcessing:
		return target == OrderStatusShipped || target == OrderStatusCancelled
	case OrderStatusShipped:
		return target == OrderStatusDelivered
	case OrderStatusDelivered, OrderStatusCancelled:
		return false
	}
	return false
}

// OrderItem is an immutable snapshot of one cart line at placement time.
// Later catalog edits never change what an existing order shows.
type OrderItem struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	BookID   uuid.UUID       `gorm:"type:uuid;not null"`
	Title    string          `gorm:"not null"`
	Author   string
	Cover    string
	Price    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Quantity int             `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// Subtotal returns price x quantity for this line
func (i *OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ShippingAddress is the delivery snapshot embedded in an order row
type ShippingAddress struct {
	FullName string `gorm:"column:ship_full_name" json:"full_name"`
	Address  string `gorm:"column:ship_address" json:"address"`
	City     string `gorm:"column:ship_city" json:"city"`
	State    string `gorm:"column:ship_state" json:"state"`
	ZipCode  string `gorm:"column:ship_zip_code" json:"zip_code"`
	Email    string `gorm:"column:ship_email" json:"email"`
	Phone    string `gorm:"column:ship_phone" json:"phone,omitempty"`
}

// PaymentRecord is what an order keeps of the card: the masked number and
// the holder name. The full number and CVV never reach this type.
type PaymentRecord struct {
	CardMasked string `gorm:"column:card_masked" json:"card_masked"`
	CardHolder string `gorm:"column:card_holder" json:"card_holder"`
}

// Order is the aggregate root for a placed order. Everything on it is a
// snapshot taken at placement; orders are never edited, only moved through
// fulfillment statuses.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber string          `gorm:"uniqueIndex;not null"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status      OrderStatus     `gorm:"not null;default:'PENDING'"`
	Items       []OrderItem     `gorm:"foreignKey:OrderID"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Shipping    ShippingAddress `gorm:"embedded"`
	Payment     PaymentRecord   `gorm:"embedded"`
	PlacedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// GenerateOrderNumber returns a random six digit order number in
// [100000, 999999]. Uniqueness is enforced by the caller against storage.
func GenerateOrderNumber() string {
	return strconv.Itoa(100000 + rand.IntN(900000))
}

// MaskCardNumber redacts a card number down to its trailing four characters
func MaskCardNumber(cardNumber string) string {
	last4 := cardNumber
	if len(cardNumber) > 4 {
		last4 = cardNumber[len(cardNumber)-4:]
	}
	return "xxxx-xxxx-xxxx-" + last4
}

// NewOrder builds an order from the cart and the checkout forms. Cart lines
// are deep-copied into order items and the total is recomputed from the
// snapshot, so the order stays consistent even if the cart changes after.
func NewOrder(userID uuid.UUID, orderNumber string, shoppingCart *cart.Cart,
	shipping checkout.ShippingInfo, payment checkout.PaymentInfo) (*Order, error) {

	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if shoppingCart == nil || shoppingCart.IsEmpty() {
		return nil, shared.ErrEmptyCart
	}
	if fields := shipping.Validate(); len(fields) > 0 {
		return nil, shared.NewValidationError("Shipping details are invalid", fields)
	}
	if fields := payment.Validate(); len(fields) > 0 {
		return nil, shared.NewValidationError("Payment details are invalid", fields)
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		UserID:            userID,
		Status:            OrderStatusPending,
		Shipping: ShippingAddress{
			FullName: shipping.FullName,
			Address:  shipping.Address,
			City:     shipping.City,
			State:    shipping.State,
			ZipCode:  shipping.ZipCode,
			Email:    shipping.Email,
			Phone:    shipping.Phone,
		},
		Payment: PaymentRecord{
			CardMasked: MaskCardNumber(payment.CardNumber),
			CardHolder: payment.CardHolder,
		},
		PlacedAt: time.Now(),
	}

	total := decimal.Zero
	o.Items = make([]OrderItem, 0, len(shoppingCart.Items))
	for _, line := range shoppingCart.Items {
		item := OrderItem{
			ID:       uuid.New(),
			OrderID:  o.ID,
			BookID:   line.BookID,
			Title:    line.Title,
			Author:   line.Author,
			Cover:    line.Cover,
			Price:    line.Price,
			Quantity: line.Quantity,
		}
		total = total.Add(item.Subtotal())
		o.Items = append(o.Items, item)
	}
	o.TotalAmount = total

	o.AddDomainEvent(NewOrderPlacedEvent(o))
	return o, nil
}

// TotalItems returns the sum of all line quantities
func (o *Order) TotalItems() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

func (o *Order) transition(target OrderStatus) error {
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION",
			"Cannot change order status from "+o.Status.String()+" to "+target.String())
	}
	o.Status = target
	o.UpdatedAt = time.Now()
	return nil
}

// StartProcessing moves a pending order into fulfillment
func (o *Order) StartProcessing() error {
	if err := o.transition(OrderStatusProcessing); err != nil {
		return err
	}
	o.AddDomainEvent(NewOrderStatusChangedEvent(o))
	return nil
}

// Ship marks the order as handed to the carrier
func (o *Order) Ship() error {
	if err := o.transition(OrderStatusShipped); err != nil {
		return err
	}
	o.AddDomainEvent(NewOrderStatusChangedEvent(o))
	return nil
}

// Deliver marks the order as received by the customer
func (o *Order) Deliver() error {
	if err := o.transition(OrderStatusDelivered); err != nil {
		return err
	}
	o.AddDomainEvent(NewOrderStatusChangedEvent(o))
	return nil
}

// Cancel cancels an order that has not shipped yet
func (o *Order) Cancel() error {
	if err := o.transition(OrderStatusCancelled); err != nil {
		return err
	}
	o.AddDomainEvent(NewOrderStatusChangedEvent(o))
	return nil
}
