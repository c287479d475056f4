package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/watotocare/sponsorship-backend/internal/models"
)

type CreateUserRequest struct {
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Username       string     `json:"username"`
	Password       string     `json:"password"`
	Role           string     `json:"role"`
	Email          *string    `json:"email"`
	PhoneNumber    string     `json:"phone_number"`
	DateOfBirth    *time.Time `json:"date_of_birth"`
	Gender         *string    `json:"gender"`
	BackgroundInfo string     `json:"background_info"`
	ProfileImage   string     `json:"profile_image"`
	ImageGallery   []string   `json:"image_gallery"`
}

// UserPatch carries optional fields for partial updates. Nil means unchanged.
type UserPatch struct {
	FirstName      *string    `json:"first_name"`
	LastName       *string    `json:"last_name"`
	Password       *string    `json:"password"`
	Email          *string    `json:"email"`
	PhoneNumber    *string    `json:"phone_number"`
	DateOfBirth    *time.Time `json:"date_of_birth"`
	Gender         *string    `json:"gender"`
	BackgroundInfo *string    `json:"background_info"`
	ProfileImage   *string    `json:"profile_image"`
	ImageGallery   []string   `json:"image_gallery"`
	IsActive       *bool      `json:"is_active"`
}

type UserResponse struct {
	ID             uuid.UUID      `json:"id"`
	FirstName      string         `json:"first_name"`
	LastName       string         `json:"last_name"`
	Username       string         `json:"username"`
	Role           string         `json:"role"`
	Email          *string        `json:"email"`
	PhoneNumber    string         `json:"phone_number,omitempty"`
	DateOfBirth    *time.Time     `json:"date_of_birth,omitempty"`
	Gender         *string        `json:"gender,omitempty"`
	BackgroundInfo string         `json:"background_info,omitempty"`
	ProfileImage   string         `json:"profile_image,omitempty"`
	ImageGallery   datatypes.JSON `json:"image_gallery,omitempty"`
	IsActive       bool           `json:"is_active"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func NewUserResponse(u *models.User) UserResponse {
	var gender *string
	if u.Gender != nil {
		g := string(*u.Gender)
		gender = &g
	}
	return UserResponse{
		ID:             u.ID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Username:       u.Username,
		Role:           string(u.Role),
		Email:          u.Email,
		PhoneNumber:    u.PhoneNumber,
		DateOfBirth:    u.DateOfBirth,
		Gender:         gender,
		BackgroundInfo: u.BackgroundInfo,
		ProfileImage:   u.ProfileImage,
		ImageGallery:   u.ImageGallery,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

// UserListResponse returns both the overall user count and the count
// after role filtering, alongside the page of users.
type UserListResponse struct {
	TotalUsers    int64          `json:"total_users"`
	FilteredCount int64          `json:"filtered_count"`
	TotalPages    int            `json:"total_pages"`
	Page          int            `json:"page"`
	PageSize      int            `json:"page_size"`
	Users         []UserResponse `json:"users"`
}
