package catalog

import (
	"time"

	"github.com/bookhaven/backend/internal/domain/shared"
	"github.com/bookhaven/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ListingStatus represents the review state of a seller's listing
type ListingStatus string

const (
	ListingStatusPending  ListingStatus = "PENDING"
	ListingStatusApproved ListingStatus = "APPROVED"
	ListingStatusRejected ListingStatus = "REJECTED"
)

// IsValid checks if the status is a valid ListingStatus
func (s ListingStatus) IsValid() bool {
	switch s {
	case ListingStatusPending, ListingStatusApproved, ListingStatusRejected:
		return true
	}
	return false
}

// String returns the string representation of ListingStatus
func (s ListingStatus) String() string {
	return string(s)
}

// BookListing is a seller's submission offering a used book for sale.
// It waits in pending review; on approval a Book is created from it.
type BookListing struct {
	shared.BaseAggregateRoot
	SellerID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title        string          `gorm:"type:varchar(300);not null"`
	Author       string          `gorm:"type:varchar(200);not null"`
	Description  string          `gorm:"type:text;not null"`
	Genre        Genre           `gorm:"type:varchar(30);not null"`
	Condition    Condition       `gorm:"type:varchar(20);not null"`
	Price        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Cover        string          `gorm:"type:text;not null"`
	Status       ListingStatus   `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	RejectReason string          `gorm:"type:text"`
	BookID       *uuid.UUID      `gorm:"type:uuid"` // set once approved
}

// TableName returns the table name for GORM
func (BookListing) TableName() string {
	return "book_listings"
}

// NewBookListing creates a pending listing from a seller's sell form.
// The same fields the catalog requires of a book are required here, plus
// the physical condition of the copy.
func NewBookListing(sellerID uuid.UUID, title, author, description string,
	genre Genre, condition Condition, price valueobject.Money, cover string) (*BookListing, error) {

	if sellerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SELLER", "Seller ID cannot be empty")
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title is required")
	}
	if author == "" {
		return nil, shared.NewDomainError("INVALID_AUTHOR", "Author is required")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description is required")
	}
	if !genre.IsValid() {
		return nil, shared.NewDomainError("INVALID_GENRE", "Unknown genre: "+genre.String())
	}
	if !condition.IsValid() {
		return nil, shared.NewDomainError("INVALID_CONDITION", "Unknown condition: "+condition.String())
	}
	if !price.IsPositive() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price must be greater than zero")
	}
	if cover == "" {
		return nil, shared.NewDomainError("INVALID_COVER", "Cover image is required")
	}

	listing := &BookListing{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SellerID:          sellerID,
		Title:             title,
		Author:            author,
		Description:       description,
		Genre:             genre,
		Condition:         condition,
		Price:             price.Amount(),
		Cover:             cover,
		Status:            ListingStatusPending,
	}

	listing.AddDomainEvent(NewListingSubmittedEvent(listing))
	return listing, nil
}

// Approve accepts the listing and records the catalog entry created for it
func (l *BookListing) Approve(bookID uuid.UUID) error {
	if l.Status != ListingStatusPending {
		return shared.NewDomainError("INVALID_LISTING_STATUS",
			"Only pending listings can be approved")
	}
	if bookID == uuid.Nil {
		return shared.NewDomainError("INVALID_BOOK", "Book ID cannot be empty")
	}
	l.Status = ListingStatusApproved
	l.BookID = &bookID
	l.UpdatedAt = time.Now()
	l.AddDomainEvent(NewListingReviewedEvent(l, EventTypeListingApproved))
	return nil
}

// Reject declines the listing with a reason shown to the seller
func (l *BookListing) Reject(reason string) error {
	if l.Status != ListingStatusPending {
		return shared.NewDomainError("INVALID_LISTING_STATUS",
			"Only pending listings can be rejected")
	}
	l.Status = ListingStatusRejected
	l.RejectReason = reason
	l.UpdatedAt = time.Now()
	l.AddDomainEvent(NewListingReviewedEvent(l, EventTypeListingRejected))
	return nil
}

// ToBook builds the catalog entry for an approved listing
func (l *BookListing) ToBook() (*Book, error) {
	book, err := NewBook(l.Title, l.Author, l.Description, l.Genre,
		valueobject.NewMoneyUSD(l.Price), l.Cover)
	if err != nil {
		return nil, err
	}
	if err := book.SetCondition(l.Condition); err != nil {
		return nil, err
	}
	return book, nil
}
