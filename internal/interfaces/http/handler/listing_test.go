package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	catalogapp "github.com/bookhaven/backend/internal/application/catalog"
	"github.com/bookhaven/backend/internal/domain/catalog"
	"github.com/bookhaven/backend/internal/domain/shared"
	"github.com/bookhaven/backend/internal/domain/shared/valueobject"
	"github.com/bookhaven/backend/internal/infrastructure/auth"
	"github.com/bookhaven/backend/internal/interfaces/http/dto"
	"github.com/bookhaven/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockListingRepository implements catalog.ListingRepository for testing
type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.BookListing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.BookListing), args.Error(1)
}

func (m *MockListingRepository) FindBySeller(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) (*shared.Paginated[catalog.BookListing], error) {
	args := m.Called(ctx, sellerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[catalog.BookListing]), args.Error(1)
}

func (m *MockListingRepository) FindByStatus(ctx context.Context, status catalog.ListingStatus, filter shared.Filter) (*shared.Paginated[catalog.BookListing], error) {
	args := m.Called(ctx, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[catalog.BookListing]), args.Error(1)
}

func (m *MockListingRepository) Save(ctx context.Context, listing *catalog.BookListing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *MockListingRepository) Update(ctx context.Context, listing *catalog.BookListing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

// MockCoverStorage implements catalogapp.CoverStorage for testing
type MockCoverStorage struct {
	mock.Mock
}

func (m *MockCoverStorage) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, key, contentType, data)
	return args.String(0), args.Error(1)
}

func newListingHandler(listingRepo *MockListingRepository, bookRepo *MockBookRepository, covers *MockCoverStorage) *ListingHandler {
	svc := catalogapp.NewListingService(listingRepo, bookRepo, covers, nil, zap.NewNop())
	return NewListingHandler(svc)
}

func testListing(t *testing.T, sellerID uuid.UUID) *catalog.BookListing {
	t.Helper()
	listing, err := catalog.NewBookListing(
		sellerID,
		"A Wizard of Earthsea",
		"Ursula K. Le Guin",
		"Well-loved paperback",
		catalog.GenreFiction,
		catalog.ConditionVeryGood,
		valueobject.NewMoneyUSDFromFloat(6.50),
		"covers/earthsea.jpg",
	)
	require.NoError(t, err)
	listing.ClearDomainEvents()
	return listing
}

func newMultipartRequest(t *testing.T, userID uuid.UUID, fields map[string]string, withCover bool) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if withCover {
		part, err := mw.CreatePart(map[string][]string{
			"Content-Disposition": {`form-data; name="cover"; filename="cover.jpg"`},
			"Content-Type":        {"image/jpeg"},
		})
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/listings", &buf)
	c.Request.Header.Set("Content-Type", mw.FormDataContentType())
	c.Set(middleware.JWTUserIDKey, userID.String())
	return c, w
}

func listingFormFields() map[string]string {
	return map[string]string{
		"title":       "A Wizard of Earthsea",
		"author":      "Ursula K. Le Guin",
		"description": "Well-loved paperback",
		"genre":       "fiction",
		"condition":   "very-good",
		"price":       "6.50",
	}
}

func TestListingHandler_SubmitListing(t *testing.T) {
	gin.SetMode(gin.TestMode)

	listingRepo := new(MockListingRepository)
	covers := new(MockCoverStorage)
	sellerID := uuid.New()

	covers.On("Upload", mock.Anything, mock.AnythingOfType("string"), "image/jpeg", mock.Anything).
		Return("https://cdn.example.com/covers/abc.jpg", nil)
	listingRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.BookListing")).Return(nil)

	h := newListingHandler(listingRepo, new(MockBookRepository), covers)

	c, w := newMultipartRequest(t, sellerID, listingFormFields(), true)
	h.SubmitListing(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "A Wizard of Earthsea", data["title"])
	assert.Equal(t, "PENDING", data["status"])
	assert.Equal(t, "https://cdn.example.com/covers/abc.jpg", data["cover"])

	listingRepo.AssertExpectations(t)
	covers.AssertExpectations(t)
}

func TestListingHandler_SubmitListing_MissingCover(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := newListingHandler(new(MockListingRepository), new(MockBookRepository), new(MockCoverStorage))

	c, w := newMultipartRequest(t, uuid.New(), listingFormFields(), false)
	h.SubmitListing(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListingHandler_SubmitListing_BadPrice(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := newListingHandler(new(MockListingRepository), new(MockBookRepository), new(MockCoverStorage))

	fields := listingFormFields()
	fields["price"] = "six dollars"
	c, w := newMultipartRequest(t, uuid.New(), fields, true)
	h.SubmitListing(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListingHandler_MyListings(t *testing.T) {
	gin.SetMode(gin.TestMode)

	listingRepo := new(MockListingRepository)
	sellerID := uuid.New()

	listings := []catalog.BookListing{*testListing(t, sellerID)}
	page := shared.NewPaginated(listings, 1, 1, 20)
	listingRepo.On("FindBySeller", mock.Anything, sellerID, mock.AnythingOfType("shared.Filter")).Return(&page, nil)

	h := newListingHandler(listingRepo, new(MockBookRepository), new(MockCoverStorage))

	c, w := newCartTestContext(t, sellerID, http.MethodGet, "/listings/mine", nil)
	h.MyListings(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	items := resp.Data.([]interface{})
	require.Len(t, items, 1)
}

func TestListingHandler_ApproveListing(t *testing.T) {
	gin.SetMode(gin.TestMode)

	listingRepo := new(MockListingRepository)
	bookRepo := new(MockBookRepository)
	sellerID := uuid.New()
	listing := testListing(t, sellerID)

	listingRepo.On("FindByID", mock.Anything, listing.ID).Return(listing, nil)
	bookRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Book")).Return(nil)
	listingRepo.On("Update", mock.Anything, listing).Return(nil)

	h := newListingHandler(listingRepo, bookRepo, new(MockCoverStorage))

	c, w := newCartTestContext(t, uuid.New(), http.MethodPost, "/listings/"+listing.ID.String()+"/approve", nil)
	c.Params = gin.Params{{Key: "id", Value: listing.ID.String()}}
	h.ApproveListing(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "APPROVED", data["status"])
	assert.NotEmpty(t, data["book_id"])
}

func TestListingHandler_ApproveListing_SellerCannotSelfApprove(t *testing.T) {
	gin.SetMode(gin.TestMode)

	listingRepo := new(MockListingRepository)
	sellerID := uuid.New()
	listing := testListing(t, sellerID)

	h := newListingHandler(listingRepo, new(MockBookRepository), new(MockCoverStorage))

	// The moderation routes sit behind the staff gate; a seller hitting
	// approve with their own shopper token must get 403 and the listing
	// must stay pending.
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.JWTClaimsKey, &auth.Claims{UserID: sellerID.String()})
		c.Set(middleware.JWTUserIDKey, sellerID.String())
	})
	router.POST("/listings/:id/approve", middleware.RequireStaff(), h.ApproveListing)

	req := httptest.NewRequest(http.MethodPost, "/listings/"+listing.ID.String()+"/approve", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, catalog.ListingStatusPending, listing.Status)
	listingRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	listingRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestListingHandler_ApproveListing_StaffAllowed(t *testing.T) {
	gin.SetMode(gin.TestMode)

	listingRepo := new(MockListingRepository)
	bookRepo := new(MockBookRepository)
	listing := testListing(t, uuid.New())

	listingRepo.On("FindByID", mock.Anything, listing.ID).Return(listing, nil)
	bookRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Book")).Return(nil)
	listingRepo.On("Update", mock.Anything, listing).Return(nil)

	h := newListingHandler(listingRepo, bookRepo, new(MockCoverStorage))

	staffID := uuid.New()
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.JWTClaimsKey, &auth.Claims{UserID: staffID.String(), IsStaff: true})
		c.Set(middleware.JWTUserIDKey, staffID.String())
	})
	router.POST("/listings/:id/approve", middleware.RequireStaff(), h.ApproveListing)

	req := httptest.NewRequest(http.MethodPost, "/listings/"+listing.ID.String()+"/approve", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	listingRepo.AssertExpectations(t)
}

func TestListingHandler_RejectListing(t *testing.T) {
	gin.SetMode(gin.TestMode)

	listingRepo := new(MockListingRepository)
	sellerID := uuid.New()
	listing := testListing(t, sellerID)

	listingRepo.On("FindByID", mock.Anything, listing.ID).Return(listing, nil)
	listingRepo.On("Update", mock.Anything, listing).Return(nil)

	h := newListingHandler(listingRepo, new(MockBookRepository), new(MockCoverStorage))

	c, w := newCartTestContext(t, uuid.New(), http.MethodPost, "/listings/"+listing.ID.String()+"/reject",
		RejectListingRequest{Reason: "Cover photo is too blurry"})
	c.Params = gin.Params{{Key: "id", Value: listing.ID.String()}}
	h.RejectListing(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "REJECTED", data["status"])
	assert.Equal(t, "Cover photo is too blurry", data["reject_reason"])
}

func TestListingHandler_RejectListing_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)

	listingRepo := new(MockListingRepository)
	listingID := uuid.New()
	listingRepo.On("FindByID", mock.Anything, listingID).Return(nil, shared.ErrNotFound)

	h := newListingHandler(listingRepo, new(MockBookRepository), new(MockCoverStorage))

	c, w := newCartTestContext(t, uuid.New(), http.MethodPost, "/listings/"+listingID.String()+"/reject",
		RejectListingRequest{Reason: "Duplicate submission"})
	c.Params = gin.Params{{Key: "id", Value: listingID.String()}}
	h.RejectListing(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
