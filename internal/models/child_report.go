package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ReportUnread = "unread"
	ReportRead   = "read"
)

// ChildReport is a progress or status note about a child, written by admins
// and readable by the child's sponsors.
type ChildReport struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ChildID    uuid.UUID `gorm:"type:uuid;not null;index" json:"child_id"`
	ReportDate time.Time `gorm:"not null" json:"report_date"`
	ReportType string    `gorm:"size:50;not null" json:"report_type"`
	Details    string    `gorm:"type:text;not null" json:"details"`
	Status     string    `gorm:"size:10;not null;default:'unread'" json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Child *User `gorm:"foreignKey:ChildID;constraint:OnDelete:CASCADE" json:"-"`
}
