package models

import "time"

// BidStatus is the lifecycle state of a bid.
type BidStatus string

const (
	BidPending  BidStatus = "pending"
	BidHired    BidStatus = "hired"
	BidRejected BidStatus = "rejected"
)

// Bid represents a freelancer's proposal against a specific open gig.
// A freelancer may submit at most one bid per gig, enforced by the
// composite unique index on (gig_id, freelancer_id).
type Bid struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	GigID         uint      `gorm:"not null;uniqueIndex:idx_bids_gig_freelancer;index:idx_bids_gig_status" json:"gig_id"`
	Gig           *Gig      `gorm:"foreignKey:GigID" json:"gig,omitempty"`
	FreelancerID  uint      `gorm:"not null;uniqueIndex:idx_bids_gig_freelancer;index" json:"freelancer_id"`
	Freelancer    *User     `gorm:"foreignKey:FreelancerID" json:"freelancer,omitempty"`
	Message       string    `gorm:"size:500;not null" json:"message"`
	ProposedPrice float64   `gorm:"not null" json:"proposed_price"`
	Status        BidStatus `gorm:"size:20;not null;default:pending;index:idx_bids_gig_status" json:"status"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Bid) TableName() string { return "bids" }
