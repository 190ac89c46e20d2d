package handler

import (
	"github.com/bookhaven/backend/internal/application/catalog"
	"github.com/bookhaven/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BookHandler handles catalog browsing endpoints
type BookHandler struct {
	BaseHandler
	bookService *catalog.BookService
}

// NewBookHandler creates a new book handler
func NewBookHandler(bookService *catalog.BookService) *BookHandler {
	return &BookHandler{
		bookService: bookService,
	}
}

// ListBooksRequest is the catalog browse query
type ListBooksRequest struct {
	Search   string `form:"search"`
	Genre    string `form:"genre"`
	Sort     string `form:"sort" binding:"omitempty,oneof=featured price_asc price_desc rating title"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ListBooks returns a page of the catalog, filtered and sorted
func (h *BookHandler) ListBooks(c *gin.Context) {
	var req ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.bookService.ListBooks(c.Request.Context(), catalog.ListBooksInput{
		Search:   req.Search,
		Genre:    req.Genre,
		Sort:     req.Sort,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetBook returns a single book by ID
func (h *BookHandler) GetBook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid book ID")
		return
	}

	book, err := h.bookService.GetBook(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, book)
}

// GetFeatured returns the books picked for the storefront landing page
func (h *BookHandler) GetFeatured(c *gin.Context) {
	books, err := h.bookService.GetFeatured(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, books)
}

// ListGenres returns the fixed set of browsable genres
func (h *BookHandler) ListGenres(c *gin.Context) {
	h.Success(c, h.bookService.Genres())
}
