package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/watotocare/sponsorship-backend/internal/models"
)

type CreatePaymentRequest struct {
	SponsorID     uuid.UUID  `json:"sponsor_id"`
	ChildID       uuid.UUID  `json:"child_id"`
	Amount        float64    `json:"amount"`
	Currency      *string    `json:"currency"`
	PaymentMethod string     `json:"payment_method"`
	TransactionID string     `json:"transaction_id"`
	Status        *string    `json:"status"`
	PaymentDate   *time.Time `json:"payment_date"`
}

// PaymentPatch carries optional fields for partial updates. Nil means unchanged.
type PaymentPatch struct {
	Amount        *float64   `json:"amount"`
	Currency      *string    `json:"currency"`
	PaymentMethod *string    `json:"payment_method"`
	TransactionID *string    `json:"transaction_id"`
	Status        *string    `json:"status"`
	PaymentDate   *time.Time `json:"payment_date"`
}

type PaymentResponse struct {
	ID            uuid.UUID `json:"id"`
	SponsorID     uuid.UUID `json:"sponsor_id"`
	ChildID       uuid.UUID `json:"child_id"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	PaymentMethod string    `json:"payment_method"`
	TransactionID string    `json:"transaction_id"`
	Status        string    `json:"status"`
	PaymentDate   time.Time `json:"payment_date"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewPaymentResponse(p *models.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID,
		SponsorID:     p.SponsorID,
		ChildID:       p.ChildID,
		Amount:        p.Amount,
		Currency:      p.Currency,
		PaymentMethod: p.PaymentMethod,
		TransactionID: p.TransactionID,
		Status:        p.Status,
		PaymentDate:   p.PaymentDate,
		CreatedAt:     p.CreatedAt,
	}
}

// PersonSummary is an embedded sponsor or child snippet on detail responses.
type PersonSummary struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Username  string    `json:"username"`
}

func NewPersonSummary(u *models.User) PersonSummary {
	return PersonSummary{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
	}
}

type PaymentDetailResponse struct {
	PaymentResponse
	Sponsor PersonSummary `json:"sponsor"`
	Child   PersonSummary `json:"child"`
}
