package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	catalogapp "github.com/bookhaven/backend/internal/application/catalog"
	"github.com/bookhaven/backend/internal/domain/catalog"
	"github.com/bookhaven/backend/internal/domain/shared"
	"github.com/bookhaven/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newBookHandler(bookRepo *MockBookRepository) *BookHandler {
	return NewBookHandler(catalogapp.NewBookService(bookRepo, zap.NewNop()))
}

func TestBookHandler_ListBooks(t *testing.T) {
	gin.SetMode(gin.TestMode)

	bookRepo := new(MockBookRepository)
	books := []catalog.Book{
		*testBook(uuid.New(), "Dune", "12.50", true),
		*testBook(uuid.New(), "Neuromancer", "9.99", true),
	}
	page := shared.NewPaginated(books, 2, 1, 20)
	bookRepo.On("Query", mock.Anything, mock.AnythingOfType("catalog.BookQuery")).Return(&page, nil)

	h := newBookHandler(bookRepo)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/catalog/books?search=dune&genre=fiction&sort=price_asc", nil)

	h.ListBooks(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(2), resp.Meta.Total)

	items := resp.Data.([]interface{})
	assert.Len(t, items, 2)
}

func TestBookHandler_ListBooks_InvalidSort(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := newBookHandler(new(MockBookRepository))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/catalog/books?sort=bogus", nil)

	h.ListBooks(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookHandler_ListBooks_UnknownGenre(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := newBookHandler(new(MockBookRepository))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/catalog/books?genre=cookbooks", nil)

	h.ListBooks(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrCodeInvalidInput, resp.Error.Code)
}

func TestBookHandler_GetBook(t *testing.T) {
	gin.SetMode(gin.TestMode)

	bookRepo := new(MockBookRepository)
	bookID := uuid.New()
	bookRepo.On("FindByID", mock.Anything, bookID).Return(testBook(bookID, "Dune", "12.50", true), nil)

	h := newBookHandler(bookRepo)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/catalog/books/"+bookID.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: bookID.String()}}

	h.GetBook(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "Dune", data["title"])
	assert.Equal(t, bookID.String(), data["id"])
}

func TestBookHandler_GetBook_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)

	bookRepo := new(MockBookRepository)
	bookID := uuid.New()
	bookRepo.On("FindByID", mock.Anything, bookID).Return(nil, shared.ErrNotFound)

	h := newBookHandler(bookRepo)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/catalog/books/"+bookID.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: bookID.String()}}

	h.GetBook(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookHandler_GetBook_InvalidID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := newBookHandler(new(MockBookRepository))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/catalog/books/not-a-uuid", nil)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	h.GetBook(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookHandler_GetFeatured(t *testing.T) {
	gin.SetMode(gin.TestMode)

	bookRepo := new(MockBookRepository)
	featured := []catalog.Book{*testBook(uuid.New(), "Dune", "12.50", true)}
	bookRepo.On("FindFeatured", mock.Anything, 8).Return(featured, nil)

	h := newBookHandler(bookRepo)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/catalog/featured", nil)

	h.GetFeatured(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	items := resp.Data.([]interface{})
	assert.Len(t, items, 1)
}

func TestBookHandler_ListGenres(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := newBookHandler(new(MockBookRepository))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/catalog/genres", nil)

	h.ListGenres(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	genres := resp.Data.([]interface{})
	assert.Contains(t, genres, "fiction")
	assert.Contains(t, genres, "non-fiction")
}
