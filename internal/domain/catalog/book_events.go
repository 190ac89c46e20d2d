package catalog

import (
	"github.com/bookhaven/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constants
const (
	AggregateTypeBook    = "Book"
	AggregateTypeListing = "BookListing"
)

// Event type constants
const (
	EventTypeBookAdded        = "BookAdded"
	EventTypeListingSubmitted = "ListingSubmitted"
	EventTypeListingApproved  = "ListingApproved"
	EventTypeListingRejected  = "ListingRejected"
)

// BookAddedEvent is raised when a title enters the catalog
type BookAddedEvent struct {
	shared.BaseDomainEvent
	BookID uuid.UUID `json:"book_id"`
	Title  string    `json:"title"`
	Author string    `json:"author"`
	Genre  Genre     `json:"genre"`
}

// NewBookAddedEvent creates a new BookAddedEvent
func NewBookAddedEvent(b *Book) *BookAddedEvent {
	return &BookAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBookAdded, AggregateTypeBook, b.ID),
		BookID:          b.ID,
		Title:           b.Title,
		Author:          b.Author,
		Genre:           b.Genre,
	}
}

// EventType returns the event type name
func (e *BookAddedEvent) EventType() string {
	return EventTypeBookAdded
}

// ListingSubmittedEvent is raised when a seller submits a book for review
type ListingSubmittedEvent struct {
	shared.BaseDomainEvent
	ListingID uuid.UUID `json:"listing_id"`
	SellerID  uuid.UUID `json:"seller_id"`
	Title     string    `json:"title"`
	Genre     Genre     `json:"genre"`
}

// NewListingSubmittedEvent creates a new ListingSubmittedEvent
func NewListingSubmittedEvent(l *BookListing) *ListingSubmittedEvent {
	return &ListingSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeListingSubmitted, AggregateTypeListing, l.ID),
		ListingID:       l.ID,
		SellerID:        l.SellerID,
		Title:           l.Title,
		Genre:           l.Genre,
	}
}

// EventType returns the event type name
func (e *ListingSubmittedEvent) EventType() string {
	return EventTypeListingSubmitted
}

// ListingReviewedEvent is raised when a listing is approved or rejected
type ListingReviewedEvent struct {
	shared.BaseDomainEvent
	ListingID uuid.UUID     `json:"listing_id"`
	SellerID  uuid.UUID     `json:"seller_id"`
	Status    ListingStatus `json:"status"`
	Reason    string        `json:"reason,omitempty"`
}

// NewListingReviewedEvent creates a new ListingReviewedEvent
func NewListingReviewedEvent(l *BookListing, eventType string) *ListingReviewedEvent {
	return &ListingReviewedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeListing, l.ID),
		ListingID:       l.ID,
		SellerID:        l.SellerID,
		Status:          l.Status,
		Reason:          l.RejectReason,
	}
}
