package cart

import (
	"github.com/bookhaven/backend/internal/domain/cart"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItemDTO is one line of the cart as returned to clients
type CartItemDTO struct {
	BookID   uuid.UUID       `json:"book_id"`
	Title    string          `json:"title"`
	Author   string          `json:"author"`
	Cover    string          `json:"cover"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// CartDTO is the cart with its derived totals
type CartDTO struct {
	Items       []CartItemDTO   `json:"items"`
	TotalItems  int             `json:"total_items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// AddItemInput adds one copy of a book to the cart
type AddItemInput struct {
	UserID uuid.UUID
	BookID uuid.UUID
}

// UpdateQuantityInput sets the quantity of a cart line
type UpdateQuantityInput struct {
	UserID   uuid.UUID
	BookID   uuid.UUID
	Quantity int
}

// ToCartDTO converts a cart aggregate to its transport shape
func ToCartDTO(c *cart.Cart) *CartDTO {
	items := make([]CartItemDTO, len(c.Items))
	for i, item := range c.Items {
		items[i] = CartItemDTO{
			BookID:   item.BookID,
			Title:    item.Title,
			Author:   item.Author,
			Cover:    item.Cover,
			Price:    item.Price,
			Quantity: item.Quantity,
			Subtotal: item.Subtotal(),
		}
	}
	return &CartDTO{
		Items:       items,
		TotalItems:  c.TotalItems(),
		TotalAmount: c.TotalAmount(),
	}
}
