package handler

import (
	"errors"
	"io"

	"github.com/bookhaven/backend/internal/application/catalog"
	"github.com/bookhaven/backend/internal/domain/shared"
	"github.com/bookhaven/backend/internal/interfaces/http/dto"
	"github.com/bookhaven/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxCoverSize caps uploaded cover images at 5 MiB
const MaxCoverSize = 5 << 20

// ListingHandler handles sell-your-books endpoints
type ListingHandler struct {
	BaseHandler
	listingService *catalog.ListingService
}

// NewListingHandler creates a new listing handler
func NewListingHandler(listingService *catalog.ListingService) *ListingHandler {
	return &ListingHandler{
		listingService: listingService,
	}
}

// SubmitListingRequest is the sell form, bound from multipart fields.
// The cover image arrives as the "cover" file part.
type SubmitListingRequest struct {
	Title       string `form:"title" binding:"required,max=200"`
	Author      string `form:"author" binding:"required,max=200"`
	Description string `form:"description" binding:"max=2000"`
	Genre       string `form:"genre" binding:"required"`
	Condition   string `form:"condition" binding:"required"`
	Price       string `form:"price" binding:"required"`
}

// RejectListingRequest carries the moderation reject reason
type RejectListingRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// SubmitListing accepts a used-book listing with its cover image
// and queues it for moderation
func (h *ListingHandler) SubmitListing(c *gin.Context) {
	sellerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req SubmitListingRequest
	if err := c.ShouldBind(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		h.BadRequest(c, "Invalid price")
		return
	}

	coverData, coverType, err := readCoverUpload(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.listingService.SubmitListing(c.Request.Context(), catalog.SubmitListingInput{
		SellerID:    sellerID,
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		Genre:       req.Genre,
		Condition:   req.Condition,
		Price:       price,
		CoverData:   coverData,
		CoverType:   coverType,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// MyListings returns the authenticated seller's listings
func (h *ListingHandler) MyListings(c *gin.Context) {
	sellerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.listingService.MyListings(c.Request.Context(), sellerID, shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// PendingListings returns listings awaiting moderation
func (h *ListingHandler) PendingListings(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.listingService.PendingListings(c.Request.Context(), shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ApproveListing approves a pending listing, publishing it to the catalog
func (h *ListingHandler) ApproveListing(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid listing ID")
		return
	}

	result, err := h.listingService.ApproveListing(c.Request.Context(), listingID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RejectListing rejects a pending listing with a reason for the seller
func (h *ListingHandler) RejectListing(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid listing ID")
		return
	}

	var req RejectListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.listingService.RejectListing(c.Request.Context(), listingID, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// readCoverUpload reads the "cover" multipart file, enforcing the size cap.
// Returns the raw bytes and the declared content type.
func readCoverUpload(c *gin.Context) ([]byte, string, error) {
	fileHeader, err := c.FormFile("cover")
	if err != nil {
		return nil, "", errors.New("Cover image is required")
	}
	if fileHeader.Size > MaxCoverSize {
		return nil, "", errors.New("Cover image must be 5MB or smaller")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxCoverSize))
	if err != nil {
		return nil, "", err
	}

	return data, fileHeader.Header.Get("Content-Type"), nil
}
