package handlers

import (
	"strconv"

	"github.com/gigflow/backend/internal/middleware"
	"github.com/gigflow/backend/internal/services"
	"github.com/gigflow/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BidHandler struct {
	bidService    *services.BidService
	hiringService *services.HiringService
}

func NewBidHandler(db *gorm.DB, hub *services.NotifyHub) *BidHandler {
	return &BidHandler{
		bidService:    services.NewBidService(db),
		hiringService: services.NewHiringService(db, hub),
	}
}

// Create submits a bid on an open gig.
// POST /api/bids
func (h *BidHandler) Create(c *gin.Context) {
	var req services.CreateBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "please provide gig_id, message, and proposed_price")
		return
	}

	bid, err := h.bidService.Create(middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "bid submitted successfully", gin.H{"bid": bid})
}

// ListForGig returns the bids on a gig, visible to its owner only.
// GET /api/bids/:id (gig id)
func (h *BidHandler) ListForGig(c *gin.Context) {
	gigID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.NotFound(c, "gig not found")
		return
	}

	bids, err := h.bidService.ListForGig(uint(gigID), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"count": len(bids), "bids": bids})
}

// MySubmitted returns the authenticated user's bids.
// GET /api/bids/my/submitted
func (h *BidHandler) MySubmitted(c *gin.Context) {
	bids, err := h.bidService.ListBySubmitter(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"count": len(bids), "bids": bids})
}

// Hire accepts a bid, assigning the gig to its freelancer and rejecting
// every other bid on it.
// PATCH /api/bids/:id/hire (bid id)
func (h *BidHandler) Hire(c *gin.Context) {
	bidID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.NotFound(c, "bid not found")
		return
	}

	bid, err := h.hiringService.Hire(uint(bidID), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessMessage(c, "freelancer hired successfully", gin.H{"bid": bid})
}
