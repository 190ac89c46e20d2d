package cart

import (
	"context"
	"errors"

	"github.com/bookhaven/backend/internal/domain/cart"
	"github.com/bookhaven/backend/internal/domain/catalog"
	"github.com/bookhaven/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CartCache is a read-through cache in front of the cart store. A miss is
// reported as shared.ErrNotFound; cache failures are soft, the service
// falls back to the repository.
type CartCache interface {
	Get(ctx context.Context, userID uuid.UUID) (*cart.Cart, error)
	Set(ctx context.Context, c *cart.Cart) error
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

// CartService handles shopping cart operations
type CartService struct {
	cartRepo cart.CartRepository
	bookRepo catalog.BookRepository
	cache    CartCache
	logger   *zap.Logger
}

// NewCartService creates a new cart service
func NewCartService(
	cartRepo cart.CartRepository,
	bookRepo catalog.BookRepository,
	cache CartCache,
	logger *zap.Logger,
) *CartService {
	return &CartService{
		cartRepo: cartRepo,
		bookRepo: bookRepo,
		cache:    cache,
		logger:   logger,
	}
}

// GetCart returns the user's cart, creating an empty one on first access
func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*CartDTO, error) {
	c, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToCartDTO(c), nil
}

// AddItem puts one copy of a book into the cart. Adding a book that is
// already there bumps its quantity instead of creating a second line.
func (s *CartService) AddItem(ctx context.Context, input AddItemInput) (*CartDTO, error) {
	book, err := s.bookRepo.FindByID(ctx, input.BookID)
	if err != nil {
		return nil, shared.NewDomainError("BOOK_NOT_FOUND", "Book not found")
	}
	if !book.InStock {
		return nil, shared.NewDomainError("BOOK_OUT_OF_STOCK", "Book is out of stock")
	}

	c, err := s.loadOrCreate(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	c.AddItem(book.ID, book.Title, book.Author, book.Cover, book.GetPriceMoney())

	if err := s.persist(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("Item added to cart",
		zap.String("user_id", input.UserID.String()),
		zap.String("book_id", input.BookID.String()))

	return ToCartDTO(c), nil
}

// RemoveItem deletes a book's line from the cart. Unknown books are
// ignored so a double-click on remove never errors.
func (s *CartService) RemoveItem(ctx context.Context, userID, bookID uuid.UUID) (*CartDTO, error) {
	c, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	c.RemoveItem(bookID)

	if err := s.persist(ctx, c); err != nil {
		return nil, err
	}
	return ToCartDTO(c), nil
}

// UpdateQuantity sets a line's quantity. Quantities below one are rejected
// here; removal is an explicit separate action.
func (s *CartService) UpdateQuantity(ctx context.Context, input UpdateQuantityInput) (*CartDTO, error) {
	if input.Quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}

	c, err := s.loadOrCreate(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if err := c.UpdateItemQuantity(input.BookID, input.Quantity); err != nil {
		return nil, err
	}

	if err := s.persist(ctx, c); err != nil {
		return nil, err
	}
	return ToCartDTO(c), nil
}

// Clear empties the user's cart
func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) (*CartDTO, error) {
	c, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	c.Clear()

	if err := s.persist(ctx, c); err != nil {
		return nil, err
	}
	return ToCartDTO(c), nil
}

func (s *CartService) loadOrCreate(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, userID); err == nil {
			return cached, nil
		} else if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Cart cache read failed", zap.Error(err))
		}
	}

	c, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		c, err = cart.NewCart(userID)
		if err != nil {
			return nil, err
		}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, c); err != nil {
			s.logger.Warn("Cart cache write failed", zap.Error(err))
		}
	}
	return c, nil
}

func (s *CartService) persist(ctx context.Context, c *cart.Cart) error {
	if err := s.cartRepo.Save(ctx, c); err != nil {
		s.logger.Error("Failed to save cart", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to save cart")
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, c); err != nil {
			s.logger.Warn("Cart cache write failed", zap.Error(err))
		}
	}
	return nil
}
