package persistence

import (
	"context"
	"errors"

	"github.com/bookhaven/backend/internal/domain/catalog"
	"github.com/bookhaven/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBookRepository implements BookRepository using GORM
type GormBookRepository struct {
	db *gorm.DB
}

// NewGormBookRepository creates a new GormBookRepository
func NewGormBookRepository(db *gorm.DB) *GormBookRepository {
	return &GormBookRepository{db: db}
}

// FindByID finds a book by its ID
func (r *GormBookRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Book, error) {
	var book catalog.Book
	if err := r.db.WithContext(ctx).First(&book, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &book, nil
}

// FindByIDs finds multiple books by their IDs
func (r *GormBookRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Book, error) {
	if len(ids) == 0 {
		return []catalog.Book{}, nil
	}

	var books []catalog.Book
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// Query returns books matching the search text and genre, ordered by the
// requested sort key
func (r *GormBookRepository) Query(ctx context.Context, query catalog.BookQuery) (*shared.Paginated[catalog.Book], error) {
	base := r.db.WithContext(ctx).Model(&catalog.Book{})

	if query.Search != "" {
		searchPattern := "%" + query.Search + "%"
		base = base.Where("title ILIKE ? OR author ILIKE ?", searchPattern, searchPattern)
	}
	if query.Genre != nil {
		base = base.Where("genre = ?", *query.Genre)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, err
	}

	var books []catalog.Book
	if err := base.
		Order(orderClauseForSort(query.Sort)).
		Offset(query.Filter.Offset()).
		Limit(query.Filter.PageSize).
		Find(&books).Error; err != nil {
		return nil, err
	}

	result := shared.NewPaginated(books, total, query.Filter.Page, query.Filter.PageSize)
	return &result, nil
}

// FindFeatured returns up to limit featured books, newest first
func (r *GormBookRepository) FindFeatured(ctx context.Context, limit int) ([]catalog.Book, error) {
	var books []catalog.Book
	if err := r.db.WithContext(ctx).
		Where("featured = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// Save creates a book
func (r *GormBookRepository) Save(ctx context.Context, book *catalog.Book) error {
	return r.db.WithContext(ctx).Create(book).Error
}

// Update updates an existing book
func (r *GormBookRepository) Update(ctx context.Context, book *catalog.Book) error {
	result := r.db.WithContext(ctx).Save(book)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete deletes a book
func (r *GormBookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Book{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// orderClauseForSort maps a browse sort key to a SQL order clause. Featured
// ordering puts the curated shelf first and falls back to newest arrivals.
func orderClauseForSort(sort catalog.SortKey) string {
	switch sort {
	case catalog.SortPriceLow:
		return "price ASC"
	case catalog.SortPriceHigh:
		return "price DESC"
	case catalog.SortRating:
		return "rating DESC, rating_count DESC"
	default:
		return "featured DESC, created_at DESC"
	}
}

// Ensure GormBookRepository implements BookRepository
var _ catalog.BookRepository = (*GormBookRepository)(nil)
