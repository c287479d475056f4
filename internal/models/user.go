package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Role is the closed set of account roles. Every policy decision switches
// exhaustively over these three values.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleSponsor Role = "sponsor"
	RoleChild   Role = "child"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSponsor, RoleChild:
		return true
	}
	return false
}

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// User covers all three roles. Date of birth, gender, background info and the
// image gallery are only populated for child accounts.
type User struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName      string         `gorm:"size:100;not null" json:"first_name"`
	LastName       string         `gorm:"size:100;not null" json:"last_name"`
	Role           Role           `gorm:"size:20;not null;index" json:"role"`
	Username       string         `gorm:"size:100;not null;uniqueIndex" json:"username"`
	HashedPassword string         `gorm:"not null" json:"-"`
	Email          *string        `gorm:"size:255;uniqueIndex" json:"email,omitempty"`
	PhoneNumber    string         `gorm:"size:30" json:"phone_number,omitempty"`
	DateOfBirth    *time.Time     `json:"date_of_birth,omitempty"`
	Gender         *Gender        `gorm:"size:10" json:"gender,omitempty"`
	BackgroundInfo string         `gorm:"type:text" json:"background_info,omitempty"`
	ProfileImage   string         `gorm:"size:500" json:"profile_image,omitempty"`
	ImageGallery   datatypes.JSON `json:"image_gallery,omitempty"`
	IsActive       bool           `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}
