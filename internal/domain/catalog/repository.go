package catalog

import (
	"context"

	"github.com/bookhaven/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SortKey names the orderings the browse page offers
type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortRating    SortKey = "rating"
)

// IsValid checks if the sort key is one the storefront supports
func (s SortKey) IsValid() bool {
	switch s {
	case SortFeatured, SortPriceLow, SortPriceHigh, SortRating:
		return true
	}
	return false
}

// BookQuery captures the browse page's filter and ordering controls.
// Zero values mean "no constraint": empty search matches everything, nil
// genre means all genres, empty sort falls back to featured.
type BookQuery struct {
	Search string
	Genre  *Genre
	Sort   SortKey
	Filter shared.Filter
}

// BookRepository defines persistence operations for catalog books
type BookRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Book, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Book, error)
	// Query returns books matching the search text (title or author,
	// case-insensitive substring) and genre, ordered by the sort key
	Query(ctx context.Context, query BookQuery) (*shared.Paginated[Book], error)
	// FindFeatured returns the featured shelf, newest first
	FindFeatured(ctx context.Context, limit int) ([]Book, error)
	Save(ctx context.Context, book *Book) error
	Update(ctx context.Context, book *Book) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ListingRepository defines persistence operations for seller listings
type ListingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookListing, error)
	FindBySeller(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) (*shared.Paginated[BookListing], error)
	FindByStatus(ctx context.Context, status ListingStatus, filter shared.Filter) (*shared.Paginated[BookListing], error)
	Save(ctx context.Context, listing *BookListing) error
	Update(ctx context.Context, listing *BookListing) error
}
