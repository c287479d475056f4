package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/watotocare/sponsorship-backend/internal/dto"
	"github.com/watotocare/sponsorship-backend/internal/integrity"
	"github.com/watotocare/sponsorship-backend/internal/models"
	"github.com/watotocare/sponsorship-backend/internal/pagination"
	"github.com/watotocare/sponsorship-backend/internal/policy"
)

type PaymentService struct {
	db      *gorm.DB
	guard   *policy.Guard
	checker *integrity.Checker
}

func NewPaymentService(db *gorm.DB, guard *policy.Guard, checker *integrity.Checker) *PaymentService {
	return &PaymentService{db: db, guard: guard, checker: checker}
}

// Create records a payment. Only an admin or the paying sponsor may record
// it, the pair must have an active sponsorship, and the transaction ID must
// be globally unique.
func (s *PaymentService) Create(principal *models.User, req dto.CreatePaymentRequest) (*models.Payment, error) {
	if principal.Role != models.RoleAdmin && principal.ID != req.SponsorID {
		return nil, policy.Forbidden("You do not have permission to create this payment")
	}

	if _, err := s.checker.Sponsor(req.SponsorID); err != nil {
		return nil, err
	}
	if _, err := s.checker.Child(req.ChildID); err != nil {
		return nil, err
	}
	if err := s.checker.ActiveSponsorship(req.SponsorID, req.ChildID); err != nil {
		return nil, err
	}

	if req.Amount <= 0 {
		return nil, policy.Validation("Amount must be greater than zero")
	}
	if req.TransactionID == "" {
		return nil, policy.Validation("Transaction ID is required")
	}
	if req.PaymentMethod == "" {
		return nil, policy.Validation("Payment method is required")
	}
	if err := s.checker.TransactionIDAvailable(req.TransactionID, uuid.Nil); err != nil {
		return nil, err
	}

	payment := models.Payment{
		ID:            uuid.New(),
		SponsorID:     req.SponsorID,
		ChildID:       req.ChildID,
		Amount:        req.Amount,
		Currency:      "KSh",
		TransactionID: req.TransactionID,
		PaymentMethod: req.PaymentMethod,
		Status:        models.PaymentCompleted,
		PaymentDate:   time.Now().UTC(),
	}
	if req.Currency != nil {
		payment.Currency = *req.Currency
	}
	if req.Status != nil {
		payment.Status = *req.Status
	}
	if req.PaymentDate != nil {
		payment.PaymentDate = req.PaymentDate.UTC()
	}

	if err := s.db.Create(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// List fetches payments filtered by sponsor, child, or both. At least one
// filter is required; a filter that matches nothing is a not-found, not an
// empty page.
func (s *PaymentService) List(principal *models.User, sponsorID, childID *uuid.UUID, params pagination.Params) (*pagination.Page[models.Payment], error) {
	if sponsorID == nil && childID == nil {
		return nil, policy.InvalidState("Either 'sponsor_id' or 'child_id' must be provided.")
	}

	query := s.db.Model(&models.Payment{})

	if sponsorID != nil {
		if _, err := s.checker.Sponsor(*sponsorID); err != nil {
			return nil, err
		}
		if err := s.guard.RequireSelfOrAdmin(principal, *sponsorID); err != nil {
			return nil, err
		}
		query = query.Where("sponsor_id = ?", *sponsorID)
	}

	if childID != nil {
		if _, err := s.checker.Child(*childID); err != nil {
			return nil, err
		}
		if err := s.guard.CanViewChild(principal, *childID); err != nil {
			return nil, err
		}
		if sponsorID != nil {
			if err := s.checker.SponsorshipLinked(*sponsorID, *childID); err != nil {
				return nil, err
			}
		}
		query = query.Where("child_id = ?", *childID)
	}

	page, err := pagination.Paginate[models.Payment](query, params)
	if err != nil {
		return nil, err
	}
	if len(page.Items) == 0 {
		return nil, policy.NotFound("No payments found")
	}
	return page, nil
}

// Get fetches one payment with embedded sponsor and child summaries.
func (s *PaymentService) Get(principal *models.User, id uuid.UUID) (*dto.PaymentDetailResponse, error) {
	var payment models.Payment
	err := s.db.First(&payment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, policy.NotFound("Payment not found")
	}
	if err != nil {
		return nil, err
	}

	if err := s.guard.CanViewPayment(principal, &payment); err != nil {
		return nil, err
	}

	var sponsor, child models.User
	if err := s.db.First(&sponsor, "id = ?", payment.SponsorID).Error; err != nil {
		return nil, err
	}
	if err := s.db.First(&child, "id = ?", payment.ChildID).Error; err != nil {
		return nil, err
	}

	return &dto.PaymentDetailResponse{
		PaymentResponse: dto.NewPaymentResponse(&payment),
		Sponsor:         dto.NewPersonSummary(&sponsor),
		Child:           dto.NewPersonSummary(&child),
	}, nil
}

// Update patches a payment. Admin only; a changed transaction ID must stay
// unique, but re-sending the current value is a no-op, not a conflict.
func (s *PaymentService) Update(principal *models.User, id uuid.UUID, patch dto.PaymentPatch) (*models.Payment, error) {
	if err := s.guard.RequireAdmin(principal); err != nil {
		return nil, err
	}

	var payment models.Payment
	err := s.db.First(&payment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, policy.NotFound("Payment not found")
	}
	if err != nil {
		return nil, err
	}

	if patch.TransactionID != nil {
		if err := s.checker.TransactionIDAvailable(*patch.TransactionID, payment.ID); err != nil {
			return nil, err
		}
		payment.TransactionID = *patch.TransactionID
	}
	if patch.Amount != nil {
		if *patch.Amount <= 0 {
			return nil, policy.Validation("Amount must be greater than zero")
		}
		payment.Amount = *patch.Amount
	}
	if patch.Currency != nil {
		payment.Currency = *patch.Currency
	}
	if patch.PaymentMethod != nil {
		payment.PaymentMethod = *patch.PaymentMethod
	}
	if patch.Status != nil {
		payment.Status = *patch.Status
	}
	if patch.PaymentDate != nil {
		payment.PaymentDate = patch.PaymentDate.UTC()
	}

	if err := s.db.Save(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// Delete removes a payment record. Admin only.
func (s *PaymentService) Delete(principal *models.User, id uuid.UUID) error {
	if err := s.guard.RequireAdmin(principal); err != nil {
		return err
	}

	var payment models.Payment
	err := s.db.First(&payment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return policy.NotFound("Payment not found")
	}
	if err != nil {
		return err
	}

	return s.db.Delete(&payment).Error
}
