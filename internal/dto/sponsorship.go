package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/watotocare/sponsorship-backend/internal/models"
)

type CreateSponsorshipRequest struct {
	SponsorID uuid.UUID  `json:"sponsor_id"`
	ChildID   uuid.UUID  `json:"child_id"`
	StartDate *time.Time `json:"start_date"`
}

type SponsorshipPatch struct {
	Status    *string    `json:"status"`
	StartDate *time.Time `json:"start_date"`
}

type SponsorshipResponse struct {
	ID        uuid.UUID `json:"id"`
	SponsorID uuid.UUID `json:"sponsor_id"`
	ChildID   uuid.UUID `json:"child_id"`
	StartDate time.Time `json:"start_date"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewSponsorshipResponse(s *models.Sponsorship) SponsorshipResponse {
	return SponsorshipResponse{
		ID:        s.ID,
		SponsorID: s.SponsorID,
		ChildID:   s.ChildID,
		StartDate: s.StartDate,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
