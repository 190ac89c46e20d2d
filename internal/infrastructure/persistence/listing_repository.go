package persistence

import (
	"context"
	"errors"

	"github.com/bookhaven/backend/internal/domain/catalog"
	"github.com/bookhaven/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormListingRepository implements ListingRepository using GORM
type GormListingRepository struct {
	db *gorm.DB
}

// NewGormListingRepository creates a new GormListingRepository
func NewGormListingRepository(db *gorm.DB) *GormListingRepository {
	return &GormListingRepository{db: db}
}

// FindByID finds a listing by its ID
func (r *GormListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.BookListing, error) {
	var listing catalog.BookListing
	if err := r.db.WithContext(ctx).First(&listing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &listing, nil
}

// FindBySeller returns the seller's listings, newest first
func (r *GormListingRepository) FindBySeller(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) (*shared.Paginated[catalog.BookListing], error) {
	return r.findPaginated(ctx, filter, "seller_id = ?", sellerID)
}

// FindByStatus returns listings in the given review state, oldest first so
// the review queue is processed in submission order
func (r *GormListingRepository) FindByStatus(ctx context.Context, status catalog.ListingStatus, filter shared.Filter) (*shared.Paginated[catalog.BookListing], error) {
	base := r.db.WithContext(ctx).Model(&catalog.BookListing{}).Where("status = ?", status)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, err
	}

	var listings []catalog.BookListing
	if err := base.
		Order("created_at ASC").
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&listings).Error; err != nil {
		return nil, err
	}

	result := shared.NewPaginated(listings, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Save creates a listing
func (r *GormListingRepository) Save(ctx context.Context, listing *catalog.BookListing) error {
	return r.db.WithContext(ctx).Create(listing).Error
}

// Update updates an existing listing
func (r *GormListingRepository) Update(ctx context.Context, listing *catalog.BookListing) error {
	result := r.db.WithContext(ctx).Save(listing)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormListingRepository) findPaginated(ctx context.Context, filter shared.Filter, cond string, args ...interface{}) (*shared.Paginated[catalog.BookListing], error) {
	base := r.db.WithContext(ctx).Model(&catalog.BookListing{}).Where(cond, args...)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, err
	}

	orderBy := ValidateSortField(filter.OrderBy, ListingSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)

	var listings []catalog.BookListing
	if err := base.
		Order(orderBy + " " + orderDir).
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&listings).Error; err != nil {
		return nil, err
	}

	result := shared.NewPaginated(listings, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Ensure GormListingRepository implements ListingRepository
var _ catalog.ListingRepository = (*GormListingRepository)(nil)
