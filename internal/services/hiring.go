package services

import (
	"errors"

	"github.com/gigflow/backend/internal/models"
	"github.com/gigflow/backend/pkg/logger"
	"github.com/gigflow/backend/pkg/response"
	"gorm.io/gorm"
)

// HiringService executes the hiring transaction: exactly one bid becomes
// hired while its gig transitions open → assigned and every sibling bid is
// rejected, all inside a single atomic unit.
type HiringService struct {
	db  *gorm.DB
	hub *NotifyHub
}

func NewHiringService(db *gorm.DB, hub *NotifyHub) *HiringService {
	return &HiringService{db: db, hub: hub}
}

// Hire transitions the bid to hired on behalf of the gig owner.
//
// Guards run on a fresh read inside the transaction: the bid must exist, the
// requester must own the gig, and the gig must still be open. The gig row
// update is additionally keyed on status = open, so of two racing calls
// exactly one commits; the other fails the guard and receives a conflict.
// Nothing is persisted when any step fails.
//
// On commit the hired freelancer is notified asynchronously, best effort:
// delivery failure is logged and never affects the result.
func (s *HiringService) Hire(bidID uint, requesterID uint) (*models.Bid, error) {
	var gigID, freelancerID uint

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var bid models.Bid
		if err := tx.Preload("Gig").First(&bid, bidID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewNotFound("bid not found")
			}
			return err
		}

		if bid.Gig == nil {
			// Orphaned bid, the gig was deleted while still open
			return response.NewNotFound("gig not found")
		}
		gig := bid.Gig

		if gig.OwnerID != requesterID {
			return response.NewAuthorization("only the gig owner can hire a freelancer")
		}

		if gig.Status != models.GigOpen {
			return response.NewConflict("this gig has already been assigned")
		}

		// Guarded transition keyed on the gig's current status. A racing
		// hire that committed first leaves zero rows affected here.
		res := tx.Model(&models.Gig{}).
			Where("id = ? AND status = ?", gig.ID, models.GigOpen).
			Updates(map[string]interface{}{
				"status":              models.GigAssigned,
				"hired_freelancer_id": bid.FreelancerID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return response.NewConflict("this gig has already been assigned")
		}

		if err := tx.Model(&models.Bid{}).
			Where("id = ?", bid.ID).
			Update("status", models.BidHired).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Bid{}).
			Where("gig_id = ? AND id <> ?", gig.ID, bid.ID).
			Update("status", models.BidRejected).Error; err != nil {
			return err
		}

		gigID = gig.ID
		freelancerID = bid.FreelancerID
		return nil
	})

	if err != nil {
		var appErr *response.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		logger.Error().Err(err).Uint("bid_id", bidID).Msg("hiring transaction failed")
		return nil, response.NewTransaction("failed to hire freelancer, please try again")
	}

	var hired models.Bid
	if err := s.db.Preload("Freelancer").Preload("Gig").Preload("Gig.Owner").
		First(&hired, bidID).Error; err != nil {
		return nil, err
	}

	// Post-commit hook, outside the transaction boundary
	go s.hub.NotifyHired(freelancerID, gigID, hired.Gig.Title)

	return &hired, nil
}
