package handler

import (
	appcheckout "github.com/bookhaven/backend/internal/application/checkout"
	"github.com/bookhaven/backend/internal/domain/checkout"
	"github.com/gin-gonic/gin"
)

// IdempotencyKeyHeader carries the client's key for safe order retries
const IdempotencyKeyHeader = "Idempotency-Key"

// CheckoutHandler handles the three-step checkout wizard
type CheckoutHandler struct {
	BaseHandler
	checkoutService *appcheckout.CheckoutService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *appcheckout.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// ShippingRequest is the shipping step form.
// Field-level validation lives in the domain so the service can return
// per-field messages for the form.
type ShippingRequest struct {
	FullName string `json:"full_name"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zip_code"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// PaymentRequest is the payment step form
type PaymentRequest struct {
	CardNumber string `json:"card_number"`
	CardHolder string `json:"card_holder"`
	ExpiryDate string `json:"expiry_date"`
	CVV        string `json:"cvv"`
}

// Start begins a checkout session at the cart review step
func (h *CheckoutHandler) Start(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	session, err := h.checkoutService.Start(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, session)
}

// GetSession returns the current checkout session
func (h *CheckoutHandler) GetSession(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	session, err := h.checkoutService.GetSession(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}

// Proceed advances the wizard to the next step
func (h *CheckoutHandler) Proceed(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	session, err := h.checkoutService.Proceed(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}

// Back returns the wizard to the previous step
func (h *CheckoutHandler) Back(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	session, err := h.checkoutService.Back(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}

// SubmitShipping validates and stores the shipping form, then advances
// the wizard to the payment step
func (h *CheckoutHandler) SubmitShipping(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ShippingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	session, err := h.checkoutService.SubmitShipping(c.Request.Context(), appcheckout.SubmitShippingInput{
		UserID: userID,
		Shipping: checkout.ShippingInfo{
			FullName: req.FullName,
			Address:  req.Address,
			City:     req.City,
			State:    req.State,
			ZipCode:  req.ZipCode,
			Email:    req.Email,
			Phone:    req.Phone,
		},
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}

// PlaceOrder captures payment and turns the cart into an order.
// Clients may send an Idempotency-Key header so retries of the same
// submission return the original order instead of placing a second one.
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	confirmation, err := h.checkoutService.PlaceOrder(c.Request.Context(), appcheckout.PlaceOrderInput{
		UserID: userID,
		Payment: checkout.PaymentInfo{
			CardNumber: req.CardNumber,
			CardHolder: req.CardHolder,
			ExpiryDate: req.ExpiryDate,
			CVV:        req.CVV,
		},
		IdempotencyKey: c.GetHeader(IdempotencyKeyHeader),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, confirmation)
}
