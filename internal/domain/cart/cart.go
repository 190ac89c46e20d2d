package cart

import (
	"time"

	"github.com/bookhaven/backend/internal/domain/shared"
	"github.com/bookhaven/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem represents a single book line in a shopping cart.
// Title, author and cover are denormalized from the catalog at add time so
// the cart can render without a catalog round trip.
type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CartID    uuid.UUID `gorm:"type:uuid;not null;index"`
	BookID    uuid.UUID `gorm:"type:uuid;not null"`
	Title     string
	Author    string
	Cover     string
	Price     decimal.Decimal `gorm:"type:numeric(12,2)"`
	Quantity  int             `gorm:"not null"`
	Position  int             `gorm:"not null"` // insertion order, retained for display
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (CartItem) TableName() string {
	return "cart_items"
}

// Subtotal returns price x quantity for this line
func (i *CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is the aggregate root for a shopper's in-progress selection.
// At most one item per distinct book ID may exist at any time; totals are
// always derived from the items, never stored independently.
type Cart struct {
	shared.BaseAggregateRoot
	UserID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	Items  []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Cart) TableName() string {
	return "carts"
}

// NewCart creates an empty cart for a user
func NewCart(userID uuid.UUID) (*Cart, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	return &Cart{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Items:             make([]CartItem, 0),
	}, nil
}

// AddItem adds a book to the cart. If the book is already present its
// quantity is incremented by one; otherwise a new line with quantity 1 is
// appended. Safe to call repeatedly, there are no error conditions.
func (c *Cart) AddItem(bookID uuid.UUID, title, author, cover string, price valueobject.Money) {
	for idx := range c.Items {
		if c.Items[idx].BookID == bookID {
			c.Items[idx].Quantity++
			c.Items[idx].UpdatedAt = time.Now()
			c.UpdatedAt = time.Now()
			return
		}
	}

	now := time.Now()
	c.Items = append(c.Items, CartItem{
		ID:        uuid.New(),
		CartID:    c.ID,
		BookID:    bookID,
		Title:     title,
		Author:    author,
		Cover:     cover,
		Price:     price.Amount(),
		Quantity:  1,
		Position:  len(c.Items),
		CreatedAt: now,
		UpdatedAt: now,
	})
	c.UpdatedAt = now
}

// RemoveItem deletes the line for the given book. Removing a book that is
// not in the cart is a no-op, not an error.
func (c *Cart) RemoveItem(bookID uuid.UUID) {
	for idx, item := range c.Items {
		if item.BookID == bookID {
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			for p := idx; p < len(c.Items); p++ {
				c.Items[p].Position = p
			}
			c.UpdatedAt = time.Now()
			return
		}
	}
}

// UpdateItemQuantity sets the quantity for the given book's line exactly as
// given. The cart itself does not enforce a floor; callers are expected to
// clamp the quantity to >= 1 before calling.
func (c *Cart) UpdateItemQuantity(bookID uuid.UUID, quantity int) error {
	for idx := range c.Items {
		if c.Items[idx].BookID == bookID {
			c.Items[idx].Quantity = quantity
			c.Items[idx].UpdatedAt = time.Now()
			c.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Book is not in the cart")
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.Items = make([]CartItem, 0)
	c.UpdatedAt = time.Now()
}

// IsEmpty returns true if the cart holds no items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// TotalItems returns the sum of all line quantities
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// TotalAmount returns the sum of price x quantity over all lines
func (c *Cart) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// GetTotalAmountMoney returns the total as a Money value object
func (c *Cart) GetTotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(c.TotalAmount())
}

// GetItemByBook returns the line for a book, or nil if absent
func (c *Cart) GetItemByBook(bookID uuid.UUID) *CartItem {
	for idx := range c.Items {
		if c.Items[idx].BookID == bookID {
			return &c.Items[idx]
		}
	}
	return nil
}
