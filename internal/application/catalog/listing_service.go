package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/bookhaven/backend/internal/domain/catalog"
	"github.com/bookhaven/backend/internal/domain/shared"
	"github.com/bookhaven/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxCoverSize caps uploaded cover images at 5 MiB
const maxCoverSize = 5 << 20

// CoverStorage stores uploaded cover images and returns the public
// location clients should use to render them.
type CoverStorage interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// ListingService handles the sell-your-books flow: sellers submit used
// books, staff review them, approved ones become catalog entries.
type ListingService struct {
	listingRepo catalog.ListingRepository
	bookRepo    catalog.BookRepository
	covers      CoverStorage
	publisher   shared.EventPublisher
	logger      *zap.Logger
}

// NewListingService creates a new listing service
func NewListingService(
	listingRepo catalog.ListingRepository,
	bookRepo catalog.BookRepository,
	covers CoverStorage,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *ListingService {
	return &ListingService{
		listingRepo: listingRepo,
		bookRepo:    bookRepo,
		covers:      covers,
		publisher:   publisher,
		logger:      logger,
	}
}

// SubmitListing stores the cover image and creates a pending listing
func (s *ListingService) SubmitListing(ctx context.Context, input SubmitListingInput) (*ListingDTO, error) {
	if len(input.CoverData) == 0 {
		return nil, shared.NewDomainError("INVALID_COVER", "Cover image is required")
	}
	if len(input.CoverData) > maxCoverSize {
		return nil, shared.NewDomainError("COVER_TOO_LARGE", "Cover image exceeds the 5 MB limit")
	}
	if !strings.HasPrefix(input.CoverType, "image/") {
		return nil, shared.NewDomainError("INVALID_COVER", "Cover must be an image")
	}

	key := fmt.Sprintf("listings/%s/%s", input.SellerID, uuid.New())
	coverURL, err := s.covers.Upload(ctx, key, input.CoverType, input.CoverData)
	if err != nil {
		s.logger.Error("Cover upload failed", zap.Error(err))
		return nil, shared.NewDomainError("COVER_UPLOAD_FAILED", "Failed to store cover image")
	}

	listing, err := catalog.NewBookListing(
		input.SellerID,
		input.Title,
		input.Author,
		input.Description,
		catalog.Genre(input.Genre),
		catalog.Condition(input.Condition),
		valueobject.NewMoneyUSD(input.Price),
		coverURL,
	)
	if err != nil {
		return nil, err
	}

	if err := s.listingRepo.Save(ctx, listing); err != nil {
		s.logger.Error("Failed to save listing", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save listing")
	}

	s.publishEvents(ctx, listing)

	s.logger.Info("Listing submitted",
		zap.String("listing_id", listing.ID.String()),
		zap.String("seller_id", input.SellerID.String()),
		zap.String("title", input.Title))

	return ToListingDTO(listing), nil
}

// MyListings returns the seller's submissions, newest first
func (s *ListingService) MyListings(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) (*shared.Paginated[ListingDTO], error) {
	page, err := s.listingRepo.FindBySeller(ctx, sellerID, filter)
	if err != nil {
		s.logger.Error("Listing query failed", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list submissions")
	}

	dtos := make([]ListingDTO, len(page.Items))
	for i := range page.Items {
		dtos[i] = *ToListingDTO(&page.Items[i])
	}
	result := shared.NewPaginated(dtos, page.Total, page.Page, page.PageSize)
	return &result, nil
}

// PendingListings returns the review queue
func (s *ListingService) PendingListings(ctx context.Context, filter shared.Filter) (*shared.Paginated[ListingDTO], error) {
	page, err := s.listingRepo.FindByStatus(ctx, catalog.ListingStatusPending, filter)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load review queue")
	}

	dtos := make([]ListingDTO, len(page.Items))
	for i := range page.Items {
		dtos[i] = *ToListingDTO(&page.Items[i])
	}
	result := shared.NewPaginated(dtos, page.Total, page.Page, page.PageSize)
	return &result, nil
}

// ApproveListing accepts a pending listing and publishes it to the catalog
func (s *ListingService) ApproveListing(ctx context.Context, listingID uuid.UUID) (*ListingDTO, error) {
	listing, err := s.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		return nil, shared.NewDomainError("LISTING_NOT_FOUND", "Listing not found")
	}

	book, err := listing.ToBook()
	if err != nil {
		return nil, err
	}
	if err := s.bookRepo.Save(ctx, book); err != nil {
		s.logger.Error("Failed to save approved book", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to publish book")
	}

	if err := listing.Approve(book.ID); err != nil {
		return nil, err
	}
	if err := s.listingRepo.Update(ctx, listing); err != nil {
		s.logger.Error("Failed to update listing", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update listing")
	}

	s.publishEvents(ctx, listing)

	s.logger.Info("Listing approved",
		zap.String("listing_id", listingID.String()),
		zap.String("book_id", book.ID.String()))

	return ToListingDTO(listing), nil
}

// RejectListing declines a pending listing with a reason for the seller
func (s *ListingService) RejectListing(ctx context.Context, listingID uuid.UUID, reason string) (*ListingDTO, error) {
	listing, err := s.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		return nil, shared.NewDomainError("LISTING_NOT_FOUND", "Listing not found")
	}

	if err := listing.Reject(reason); err != nil {
		return nil, err
	}
	if err := s.listingRepo.Update(ctx, listing); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update listing")
	}

	s.publishEvents(ctx, listing)
	return ToListingDTO(listing), nil
}

func (s *ListingService) publishEvents(ctx context.Context, listing *catalog.BookListing) {
	if s.publisher == nil {
		return
	}
	for _, event := range listing.GetDomainEvents() {
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("Failed to publish domain event",
				zap.String("event_type", event.EventType()), zap.Error(err))
		}
	}
	listing.ClearDomainEvents()
}
