package catalog

import (
	"time"

	"github.com/bookhaven/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookDTO is a catalog entry as returned to clients
type BookDTO struct {
	ID          uuid.UUID         `json:"id"`
	Title       string            `json:"title"`
	Author      string            `json:"author"`
	Description string            `json:"description"`
	Genre       catalog.Genre     `json:"genre"`
	Condition   catalog.Condition `json:"condition"`
	Price       decimal.Decimal   `json:"price"`
	Cover       string            `json:"cover"`
	Rating      float64           `json:"rating"`
	RatingCount int               `json:"rating_count"`
	Publisher   string            `json:"publisher,omitempty"`
	PublishDate *time.Time        `json:"publish_date,omitempty"`
	Pages       int               `json:"pages,omitempty"`
	ISBN        string            `json:"isbn,omitempty"`
	Language    string            `json:"language"`
	Featured    bool              `json:"featured"`
	InStock     bool              `json:"in_stock"`
}

// ListBooksInput carries the browse page's controls
type ListBooksInput struct {
	Search   string
	Genre    string
	Sort     string
	Page     int
	PageSize int
}

// SubmitListingInput is the sell form plus the uploaded cover image
type SubmitListingInput struct {
	SellerID    uuid.UUID
	Title       string
	Author      string
	Description string
	Genre       string
	Condition   string
	Price       decimal.Decimal
	CoverData   []byte
	CoverType   string // MIME type of the uploaded image
}

// ListingDTO is a seller's listing as returned to clients
type ListingDTO struct {
	ID           uuid.UUID             `json:"id"`
	Title        string                `json:"title"`
	Author       string                `json:"author"`
	Description  string                `json:"description"`
	Genre        catalog.Genre         `json:"genre"`
	Condition    catalog.Condition     `json:"condition"`
	Price        decimal.Decimal       `json:"price"`
	Cover        string                `json:"cover"`
	Status       catalog.ListingStatus `json:"status"`
	RejectReason string                `json:"reject_reason,omitempty"`
	BookID       *uuid.UUID            `json:"book_id,omitempty"`
	SubmittedAt  time.Time             `json:"submitted_at"`
}

// ToBookDTO converts a book aggregate to its transport shape
func ToBookDTO(b *catalog.Book) *BookDTO {
	return &BookDTO{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Description: b.Description,
		Genre:       b.Genre,
		Condition:   b.Condition,
		Price:       b.Price,
		Cover:       b.Cover,
		Rating:      b.Rating,
		RatingCount: b.RatingCount,
		Publisher:   b.Publisher,
		PublishDate: b.PublishDate,
		Pages:       b.Pages,
		ISBN:        b.ISBN,
		Language:    b.Language,
		Featured:    b.Featured,
		InStock:     b.InStock,
	}
}

// ToBookDTOs converts a slice of book aggregates
func ToBookDTOs(books []catalog.Book) []BookDTO {
	dtos := make([]BookDTO, len(books))
	for i := range books {
		dtos[i] = *ToBookDTO(&books[i])
	}
	return dtos
}

// ToListingDTO converts a listing aggregate to its transport shape
func ToListingDTO(l *catalog.BookListing) *ListingDTO {
	return &ListingDTO{
		ID:           l.ID,
		Title:        l.Title,
		Author:       l.Author,
		Description:  l.Description,
		Genre:        l.Genre,
		Condition:    l.Condition,
		Price:        l.Price,
		Cover:        l.Cover,
		Status:       l.Status,
		RejectReason: l.RejectReason,
		BookID:       l.BookID,
		SubmittedAt:  l.CreatedAt,
	}
}
