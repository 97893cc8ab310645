package models

import "time"

// GigStatus is the lifecycle state of a gig.
type GigStatus string

const (
	GigOpen     GigStatus = "open"     // accepting bids
	GigAssigned GigStatus = "assigned" // a freelancer has been hired, terminal
)

// Gig represents a posted job with a budget, owned by one user.
// Invariant: HiredFreelancerID is non-nil if and only if Status is assigned.
type Gig struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Title             string    `gorm:"size:100;not null" json:"title"`
	Description       string    `gorm:"size:1000;not null" json:"description"`
	Budget            float64   `gorm:"not null" json:"budget"`
	OwnerID           uint      `gorm:"index;not null" json:"owner_id"`
	Owner             *User     `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Status            GigStatus `gorm:"size:20;not null;default:open;index:idx_gigs_status_created" json:"status"`
	HiredFreelancerID *uint     `json:"hired_freelancer_id"`
	HiredFreelancer   *User     `gorm:"foreignKey:HiredFreelancerID" json:"hired_freelancer,omitempty"`
	CreatedAt         time.Time `gorm:"index:idx_gigs_status_created" json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (Gig) TableName() string { return "gigs" }
