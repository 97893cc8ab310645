package services

import (
	"errors"
	"strings"

	"github.com/gigflow/backend/internal/models"
	"github.com/gigflow/backend/pkg/response"
	"gorm.io/gorm"
)

const maxBidMessageLen = 500

type BidService struct {
	db *gorm.DB
}

func NewBidService(db *gorm.DB) *BidService {
	return &BidService{db: db}
}

type CreateBidRequest struct {
	GigID         uint     `json:"gig_id"`
	Message       string   `json:"message"`
	ProposedPrice *float64 `json:"proposed_price"`
}

// isDuplicateKeyError reports whether err is a unique-constraint violation.
// Checked per dialect because not every driver maps to gorm's sentinel.
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // sqlite
		strings.Contains(msg, "Duplicate entry") || // mysql
		strings.Contains(msg, "duplicate key value") // postgres
}

// Create validates and stores a new pending bid. Guards, in order: input
// validation, gig existence, gig still open, no self-bid, no duplicate bid.
// The duplicate check runs pre-emptively and is backstopped by the unique
// index on (gig_id, freelancer_id) to close the create race.
func (s *BidService) Create(freelancerID uint, req *CreateBidRequest) (*models.Bid, error) {
	if req.GigID == 0 {
		return nil, response.NewValidation("please provide a gig id")
	}
	if strings.TrimSpace(req.Message) == "" {
		return nil, response.NewValidation("please provide a message")
	}
	if len(strings.TrimSpace(req.Message)) > maxBidMessageLen {
		return nil, response.NewValidation("message cannot be more than 500 characters")
	}
	if req.ProposedPrice == nil {
		return nil, response.NewValidation("please provide a proposed price")
	}
	if *req.ProposedPrice < 0 {
		return nil, response.NewValidation("proposed price must be a positive number")
	}

	var gig models.Gig
	if err := s.db.First(&gig, req.GigID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("gig not found")
		}
		return nil, err
	}

	if gig.Status != models.GigOpen {
		return nil, response.NewConflict("this gig is no longer accepting bids")
	}

	if gig.OwnerID == freelancerID {
		return nil, response.NewAuthorization("you cannot bid on your own gig")
	}

	var existing int64
	s.db.Model(&models.Bid{}).
		Where("gig_id = ? AND freelancer_id = ?", req.GigID, freelancerID).
		Count(&existing)
	if existing > 0 {
		return nil, response.NewConflict("you have already submitted a bid for this gig")
	}

	bid := models.Bid{
		GigID:         req.GigID,
		FreelancerID:  freelancerID,
		Message:       strings.TrimSpace(req.Message),
		ProposedPrice: *req.ProposedPrice,
		Status:        models.BidPending,
	}

	if err := s.db.Create(&bid).Error; err != nil {
		if isDuplicateKeyError(err) {
			return nil, response.NewConflict("you have already submitted a bid for this gig")
		}
		return nil, err
	}

	s.db.Preload("Freelancer").First(&bid, bid.ID)
	return &bid, nil
}

// ListForGig returns all bids on a gig, newest first, with the freelancer
// resolved. Only the gig owner may view them.
func (s *BidService) ListForGig(gigID uint, requesterID uint) ([]models.Bid, error) {
	var gig models.Gig
	if err := s.db.First(&gig, gigID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("gig not found")
		}
		return nil, err
	}

	if gig.OwnerID != requesterID {
		return nil, response.NewAuthorization("only the gig owner can view bids")
	}

	var bids []models.Bid
	err := s.db.Preload("Freelancer").
		Where("gig_id = ?", gigID).
		Order("created_at DESC").
		Find(&bids).Error
	if err != nil {
		return nil, err
	}
	return bids, nil
}

// ListBySubmitter returns a freelancer's bids, newest first, each resolved
// with its parent gig.
func (s *BidService) ListBySubmitter(freelancerID uint) ([]models.Bid, error) {
	var bids []models.Bid
	err := s.db.Preload("Gig").
		Where("freelancer_id = ?", freelancerID).
		Order("created_at DESC").
		Find(&bids).Error
	if err != nil {
		return nil, err
	}
	return bids, nil
}
