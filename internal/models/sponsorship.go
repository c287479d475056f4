package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	SponsorshipActive   = "active"
	SponsorshipCanceled = "canceled"
)

// Sponsorship links one sponsor to one child. The composite unique index
// closes the duplicate-pair race at the storage layer; the service-level
// pre-check only exists to produce a friendlier error message.
type Sponsorship struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SponsorID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_sponsorships_pair" json:"sponsor_id"`
	ChildID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_sponsorships_pair" json:"child_id"`
	StartDate time.Time `gorm:"not null" json:"start_date"`
	Status    string    `gorm:"size:20;default:'active'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Sponsor *User `gorm:"foreignKey:SponsorID;constraint:OnDelete:CASCADE" json:"-"`
	Child   *User `gorm:"foreignKey:ChildID;constraint:OnDelete:CASCADE" json:"-"`
}
