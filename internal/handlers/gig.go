package handlers

import (
	"strconv"

	"github.com/gigflow/backend/internal/middleware"
	"github.com/gigflow/backend/internal/services"
	"github.com/gigflow/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type GigHandler struct {
	gigService *services.GigService
}

func NewGigHandler(db *gorm.DB) *GigHandler {
	return &GigHandler{
		gigService: services.NewGigService(db),
	}
}

// List returns all open gigs, optionally filtered by a search term.
// GET /api/gigs?search=
func (h *GigHandler) List(c *gin.Context) {
	gigs, err := h.gigService.ListOpen(c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"count": len(gigs), "gigs": gigs})
}

// GetByID returns a single gig.
// GET /api/gigs/:id
func (h *GigHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.NotFound(c, "gig not found")
		return
	}

	gig, err := h.gigService.GetByID(uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"gig": gig})
}

// Create posts a new gig owned by the authenticated user.
// POST /api/gigs
func (h *GigHandler) Create(c *gin.Context) {
	var req services.CreateGigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "please provide title, description, and budget")
		return
	}

	gig, err := h.gigService.Create(middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "gig created successfully", gin.H{"gig": gig})
}

// MyPosted returns the gigs posted by the authenticated user.
// GET /api/gigs/my/posted
func (h *GigHandler) MyPosted(c *gin.Context) {
	gigs, err := h.gigService.ListByOwner(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"count": len(gigs), "gigs": gigs})
}

// Update applies a partial update to a gig the user owns.
// PUT /api/gigs/:id
func (h *GigHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.NotFound(c, "gig not found")
		return
	}

	var req services.UpdateGigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	gig, err := h.gigService.Update(uint(id), middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessMessage(c, "gig updated successfully", gin.H{"gig": gig})
}

// Delete removes a gig the user owns.
// DELETE /api/gigs/:id
func (h *GigHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.NotFound(c, "gig not found")
		return
	}

	if err := h.gigService.Delete(uint(id), middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessMessage(c, "gig deleted successfully", nil)
}
