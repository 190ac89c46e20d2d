package handler

import (
	"github.com/bookhaven/backend/internal/application/cart"
	"github.com/bookhaven/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CartHandler handles shopping cart endpoints
type CartHandler struct {
	BaseHandler
	cartService *cart.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *cart.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

// AddItemRequest adds one copy of a book to the cart
type AddItemRequest struct {
	BookID uuid.UUID `json:"book_id" binding:"required"`
}

// UpdateQuantityRequest sets the quantity of a cart line
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1,max=99"`
}

// GetCart returns the authenticated shopper's cart
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.cartService.GetCart(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// AddItem adds one copy of a book to the cart
func (h *CartHandler) AddItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.cartService.AddItem(c.Request.Context(), cart.AddItemInput{
		UserID: userID,
		BookID: req.BookID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// UpdateQuantity sets the quantity of a cart line
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid book ID")
		return
	}

	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.cartService.UpdateQuantity(c.Request.Context(), cart.UpdateQuantityInput{
		UserID:   userID,
		BookID:   bookID,
		Quantity: req.Quantity,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RemoveItem removes a cart line entirely
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid book ID")
		return
	}

	result, err := h.cartService.RemoveItem(c.Request.Context(), userID, bookID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Clear removes every line from the cart
func (h *CartHandler) Clear(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.cartService.Clear(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
