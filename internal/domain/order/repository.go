package order

import (
	"context"

	"github.com/bookhaven/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderRepository defines persistence operations for orders
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)
	// FindByUser returns the user's orders, most recently placed first
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (*shared.Paginated[Order], error)
	// ExistsByOrderNumber reports whether the number is already taken
	ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error)
	Save(ctx context.Context, order *Order) error
	Update(ctx context.Context, order *Order) error
}
