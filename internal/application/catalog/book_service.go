package catalog

import (
	"context"

	"github.com/bookhaven/backend/internal/domain/catalog"
	"github.com/bookhaven/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// featuredShelfSize is how many titles the storefront's featured strip shows
const featuredShelfSize = 8

// BookService handles catalog queries for the browse and detail pages
type BookService struct {
	bookRepo catalog.BookRepository
	logger   *zap.Logger
}

// NewBookService creates a new book service
func NewBookService(bookRepo catalog.BookRepository, logger *zap.Logger) *BookService {
	return &BookService{
		bookRepo: bookRepo,
		logger:   logger,
	}
}

// ListBooks returns a page of books matching the browse controls. Unknown
// genre or sort values are rejected rather than silently ignored.
func (s *BookService) ListBooks(ctx context.Context, input ListBooksInput) (*shared.Paginated[BookDTO], error) {
	filter := shared.DefaultFilter()
	if input.Page > 0 {
		filter.Page = input.Page
	}
	if input.PageSize > 0 && input.PageSize <= 100 {
		filter.PageSize = input.PageSize
	}

	query := catalog.BookQuery{
		Search: input.Search,
		Sort:   catalog.SortFeatured,
		Filter: filter,
	}

	if input.Genre != "" {
		genre := catalog.Genre(input.Genre)
		if !genre.IsValid() {
			return nil, shared.NewDomainError("INVALID_GENRE", "Unknown genre: "+input.Genre)
		}
		query.Genre = &genre
	}

	if input.Sort != "" {
		sort := catalog.SortKey(input.Sort)
		if !sort.IsValid() {
			return nil, shared.NewDomainError("INVALID_SORT", "Unknown sort: "+input.Sort)
		}
		query.Sort = sort
	}

	page, err := s.bookRepo.Query(ctx, query)
	if err != nil {
		s.logger.Error("Book query failed", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list books")
	}

	result := shared.NewPaginated(ToBookDTOs(page.Items), page.Total, page.Page, page.PageSize)
	return &result, nil
}

// GetBook returns one catalog entry by ID
func (s *BookService) GetBook(ctx context.Context, id uuid.UUID) (*BookDTO, error) {
	book, err := s.bookRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewDomainError("BOOK_NOT_FOUND", "Book not found")
	}
	return ToBookDTO(book), nil
}

// GetFeatured returns the featured shelf for the home page
func (s *BookService) GetFeatured(ctx context.Context) ([]BookDTO, error) {
	books, err := s.bookRepo.FindFeatured(ctx, featuredShelfSize)
	if err != nil {
		s.logger.Error("Featured query failed", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load featured books")
	}
	return ToBookDTOs(books), nil
}

// Genres returns the closed set of browse categories
func (s *BookService) Genres() []catalog.Genre {
	return catalog.AllGenres()
}
