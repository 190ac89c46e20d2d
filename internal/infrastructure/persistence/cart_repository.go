package persistence

import (
	"context"
	"errors"

	"github.com/bookhaven/backend/internal/domain/cart"
	"github.com/bookhaven/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCartRepository implements CartRepository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// FindByUser returns the user's cart with items in display order
func (r *GormCartRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	var c cart.Cart
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&c, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Save persists the cart and its items. Lines removed from the aggregate are
// deleted so the table mirrors the in-memory cart exactly.
func (r *GormCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(c).Error; err != nil {
			return err
		}

		keep := make([]uuid.UUID, 0, len(c.Items))
		for i := range c.Items {
			c.Items[i].CartID = c.ID
			keep = append(keep, c.Items[i].ID)
		}

		cleanup := tx.Where("cart_id = ?", c.ID)
		if len(keep) > 0 {
			cleanup = cleanup.Where("id NOT IN ?", keep)
		}
		if err := cleanup.Delete(&cart.CartItem{}).Error; err != nil {
			return err
		}

		if len(c.Items) > 0 {
			if err := tx.Save(c.Items).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteByUser removes the user's cart and all its items
func (r *GormCartRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c cart.Cart
		if err := tx.First(&c, "user_id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		if err := tx.Where("cart_id = ?", c.ID).Delete(&cart.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&cart.Cart{}, "id = ?", c.ID).Error
	})
}

// Ensure GormCartRepository implements CartRepository
var _ cart.CartRepository = (*GormCartRepository)(nil)
