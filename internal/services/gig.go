package services

import (
	"errors"
	"strings"

	"github.com/gigflow/backend/internal/models"
	"github.com/gigflow/backend/pkg/response"
	"gorm.io/gorm"
)

const (
	maxGigTitleLen       = 100
	maxGigDescriptionLen = 1000
)

type GigService struct {
	db *gorm.DB
}

func NewGigService(db *gorm.DB) *GigService {
	return &GigService{db: db}
}

type CreateGigRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Budget      *float64 `json:"budget"`
}

type UpdateGigRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Budget      *float64 `json:"budget"`
}

func validateGigTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return response.NewValidation("please provide a title")
	}
	if len(title) > maxGigTitleLen {
		return response.NewValidation("title cannot be more than 100 characters")
	}
	return nil
}

func validateGigDescription(description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return response.NewValidation("please provide a description")
	}
	if len(description) > maxGigDescriptionLen {
		return response.NewValidation("description cannot be more than 1000 characters")
	}
	return nil
}

func validateGigBudget(budget *float64) error {
	if budget == nil {
		return response.NewValidation("please provide a budget")
	}
	if *budget < 0 {
		return response.NewValidation("budget must be a positive number")
	}
	return nil
}

// Create validates the request and stores a new open gig owned by ownerID.
func (s *GigService) Create(ownerID uint, req *CreateGigRequest) (*models.Gig, error) {
	if err := validateGigTitle(req.Title); err != nil {
		return nil, err
	}
	if err := validateGigDescription(req.Description); err != nil {
		return nil, err
	}
	if err := validateGigBudget(req.Budget); err != nil {
		return nil, err
	}

	gig := models.Gig{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Budget:      *req.Budget,
		OwnerID:     ownerID,
		Status:      models.GigOpen,
	}

	if err := s.db.Create(&gig).Error; err != nil {
		return nil, err
	}

	s.db.Preload("Owner").First(&gig, gig.ID)
	return &gig, nil
}

// ListOpen returns open gigs. Without a search term they are ordered newest
// first. With one, only gigs whose title or description match are returned,
// title matches ranking above description-only matches, ties newest first.
func (s *GigService) ListOpen(search string) ([]models.Gig, error) {
	var gigs []models.Gig

	query := s.db.Preload("Owner").Where("status = ?", models.GigOpen)

	search = strings.TrimSpace(search)
	if search != "" {
		pattern := "%" + search + "%"
		query = query.
			Select("gigs.*, CASE WHEN title LIKE ? THEN 0 ELSE 1 END AS relevance", pattern).
			Where("title LIKE ? OR description LIKE ?", pattern, pattern).
			Order("relevance, created_at DESC")
	} else {
		query = query.Order("created_at DESC")
	}

	if err := query.Find(&gigs).Error; err != nil {
		return nil, err
	}

	return gigs, nil
}

// GetByID returns a gig with its owner and hired freelancer resolved.
func (s *GigService) GetByID(id uint) (*models.Gig, error) {
	var gig models.Gig
	if err := s.db.Preload("Owner").Preload("HiredFreelancer").First(&gig, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("gig not found")
		}
		return nil, err
	}
	return &gig, nil
}

// ListByOwner returns the gigs posted by a user, newest first, with the
// hired freelancer resolved where one exists.
func (s *GigService) ListByOwner(ownerID uint) ([]models.Gig, error) {
	var gigs []models.Gig
	err := s.db.Preload("HiredFreelancer").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&gigs).Error
	if err != nil {
		return nil, err
	}
	return gigs, nil
}

// Update applies a partial update to a gig. Only the owner may update, and
// only while the gig is still open.
func (s *GigService) Update(id uint, requesterID uint, req *UpdateGigRequest) (*models.Gig, error) {
	var gig models.Gig
	if err := s.db.First(&gig, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("gig not found")
		}
		return nil, err
	}

	if gig.OwnerID != requesterID {
		return nil, response.NewAuthorization("not authorized to update this gig")
	}
	if gig.Status == models.GigAssigned {
		return nil, response.NewConflict("cannot update an assigned gig")
	}

	updates := make(map[string]interface{})

	if req.Title != nil {
		if err := validateGigTitle(*req.Title); err != nil {
			return nil, err
		}
		updates["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		if err := validateGigDescription(*req.Description); err != nil {
			return nil, err
		}
		updates["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Budget != nil {
		if err := validateGigBudget(req.Budget); err != nil {
			return nil, err
		}
		updates["budget"] = *req.Budget
	}

	if len(updates) > 0 {
		if err := s.db.Model(&gig).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	s.db.Preload("Owner").First(&gig, gig.ID)
	return &gig, nil
}

// Delete removes a gig. Only the owner may delete, and only while the gig
// is still open. Bids against the gig are intentionally left in place.
func (s *GigService) Delete(id uint, requesterID uint) error {
	var gig models.Gig
	if err := s.db.First(&gig, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("gig not found")
		}
		return err
	}

	if gig.OwnerID != requesterID {
		return response.NewAuthorization("not authorized to delete this gig")
	}
	if gig.Status == models.GigAssigned {
		return response.NewConflict("cannot delete an assigned gig")
	}

	return s.db.Delete(&gig).Error
}
