package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	PaymentCompleted = "completed"
	PaymentPending   = "pending"
	PaymentFailed    = "failed"
)

// Payment records a transaction a sponsor made for a child. Creation requires
// an active sponsorship between the pair; transaction IDs are globally unique
// (enforced by the index, pre-checked for a descriptive error).
type Payment struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SponsorID     uuid.UUID `gorm:"type:uuid;not null;index" json:"sponsor_id"`
	ChildID       uuid.UUID `gorm:"type:uuid;not null;index" json:"child_id"`
	Amount        float64   `gorm:"not null" json:"amount"`
	Currency      string    `gorm:"size:10;default:'KSh'" json:"currency"`
	TransactionID string    `gorm:"size:100;not null;uniqueIndex" json:"transaction_id"`
	PaymentMethod string    `gorm:"size:50;not null" json:"payment_method"`
	Status        string    `gorm:"size:20;default:'completed'" json:"status"`
	PaymentDate   time.Time `json:"payment_date"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Sponsor *User `gorm:"foreignKey:SponsorID;constraint:OnDelete:CASCADE" json:"-"`
	Child   *User `gorm:"foreignKey:ChildID;constraint:OnDelete:CASCADE" json:"-"`
}
