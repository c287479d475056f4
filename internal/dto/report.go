package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/watotocare/sponsorship-backend/internal/models"
)

type CreateReportRequest struct {
	ChildID    uuid.UUID  `json:"child_id"`
	ReportDate *time.Time `json:"report_date"`
	ReportType string     `json:"report_type"`
	Details    string     `json:"details"`
}

type ReportPatch struct {
	ReportDate *time.Time `json:"report_date"`
	ReportType *string    `json:"report_type"`
	Details    *string    `json:"details"`
	Status     *string    `json:"status"`
}

type ReportResponse struct {
	ID         uuid.UUID `json:"id"`
	ChildID    uuid.UUID `json:"child_id"`
	ReportDate time.Time `json:"report_date"`
	ReportType string    `json:"report_type"`
	Details    string    `json:"details"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewReportResponse(r *models.ChildReport) ReportResponse {
	return ReportResponse{
		ID:         r.ID,
		ChildID:    r.ChildID,
		ReportDate: r.ReportDate,
		ReportType: r.ReportType,
		Details:    r.Details,
		Status:     r.Status,
		CreatedAt:  r.CreatedAt,
	}
}

// ChildDetailResponse aggregates everything a sponsor sees about a
// sponsored child on the detail page.
type ChildDetailResponse struct {
	PersonalInfo struct {
		ID             uuid.UUID  `json:"id"`
		FirstName      string     `json:"first_name"`
		LastName       string     `json:"last_name"`
		DateOfBirth    *time.Time `json:"date_of_birth"`
		Age            *int       `json:"age"`
		Gender         *string    `json:"gender"`
		BackgroundInfo string     `json:"background_info"`
		ProfileImage   string     `json:"profile_image"`
	} `json:"personal_info"`
	Sponsorship struct {
		ID             uuid.UUID `json:"id"`
		StartDate      time.Time `json:"start_date"`
		Status         string    `json:"status"`
		DurationMonths int       `json:"duration_months"`
	} `json:"sponsorship"`
	Payments struct {
		TotalContributed float64           `json:"total_contributed"`
		History          []PaymentResponse `json:"history"`
	} `json:"payments"`
	Reports []ReportResponse `json:"reports"`
	Gallery []string         `json:"gallery"`
}
