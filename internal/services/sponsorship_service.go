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

type SponsorshipService struct {
	db      *gorm.DB
	guard   *policy.Guard
	checker *integrity.Checker
}

func NewSponsorshipService(db *gorm.DB, guard *policy.Guard, checker *integrity.Checker) *SponsorshipService {
	return &SponsorshipService{db: db, guard: guard, checker: checker}
}

// Create links a sponsor to a child. Admin only; one sponsorship per pair.
func (s *SponsorshipService) Create(principal *models.User, req dto.CreateSponsorshipRequest) (*models.Sponsorship, error) {
	if err := s.guard.RequireAdmin(principal); err != nil {
		return nil, err
	}

	if _, err := s.checker.Child(req.ChildID); err != nil {
		return nil, err
	}
	if _, err := s.checker.Sponsor(req.SponsorID); err != nil {
		return nil, err
	}
	if err := s.checker.NoDuplicateSponsorship(req.SponsorID, req.ChildID); err != nil {
		return nil, err
	}

	startDate := time.Now().UTC()
	if req.StartDate != nil {
		startDate = *req.StartDate
	}

	sponsorship := models.Sponsorship{
		ID:        uuid.New(),
		SponsorID: req.SponsorID,
		ChildID:   req.ChildID,
		StartDate: startDate,
		Status:    models.SponsorshipActive,
	}

	if err := s.db.Create(&sponsorship).Error; err != nil {
		return nil, err
	}
	return &sponsorship, nil
}

// SponsoredChildren lists the children linked to a sponsor. Sponsors may only
// ask for their own list.
func (s *SponsorshipService) SponsoredChildren(principal *models.User, sponsorID uuid.UUID, params pagination.Params) (*pagination.Page[models.User], error) {
	if _, err := s.checker.Sponsor(sponsorID); err != nil {
		return nil, err
	}
	if err := s.guard.RequireSelfOrAdmin(principal, sponsorID); err != nil {
		return nil, err
	}

	query := s.db.Model(&models.User{}).
		Joins("JOIN sponsorships ON users.id = sponsorships.child_id").
		Where("sponsorships.sponsor_id = ?", sponsorID)

	page, err := pagination.Paginate[models.User](query, params)
	if err != nil {
		return nil, err
	}
	if page.TotalCount == 0 {
		return nil, policy.NotFound("No children sponsored by this sponsor")
	}
	return page, nil
}

// SponsorOfChild returns the sponsor linked to a child by the earliest
// sponsorship record.
func (s *SponsorshipService) SponsorOfChild(principal *models.User, childID uuid.UUID) (*models.User, error) {
	var child models.User
	err := s.db.Where("id = ? AND role = ?", childID, models.RoleChild).First(&child).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, policy.NotFound("Child not found or is not a registered child")
	}
	if err != nil {
		return nil, err
	}

	var sponsorship models.Sponsorship
	err = s.db.Where("child_id = ?", childID).Order("created_at").First(&sponsorship).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, policy.NotFound("This child does not have a sponsor")
	}
	if err != nil {
		return nil, err
	}

	var sponsor models.User
	err = s.db.First(&sponsor, "id = ?", sponsorship.SponsorID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, policy.NotFound("Sponsor not found")
	}
	if err != nil {
		return nil, err
	}
	return &sponsor, nil
}

// Update patches a sponsorship's status or start date. Admin only.
func (s *SponsorshipService) Update(principal *models.User, id uuid.UUID, patch dto.SponsorshipPatch) (*models.Sponsorship, error) {
	if err := s.guard.RequireAdmin(principal); err != nil {
		return nil, err
	}

	var sponsorship models.Sponsorship
	err := s.db.First(&sponsorship, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, policy.NotFound("Sponsorship not found")
	}
	if err != nil {
		return nil, err
	}

	if patch.Status != nil {
		switch *patch.Status {
		case models.SponsorshipActive, models.SponsorshipCanceled:
			sponsorship.Status = *patch.Status
		default:
			return nil, policy.Validation("Status must be one of: active, canceled")
		}
	}
	if patch.StartDate != nil {
		sponsorship.StartDate = *patch.StartDate
	}

	if err := s.db.Save(&sponsorship).Error; err != nil {
		return nil, err
	}
	return &sponsorship, nil
}

// Delete removes a sponsorship record. Admin only.
func (s *SponsorshipService) Delete(principal *models.User, id uuid.UUID) error {
	if err := s.guard.RequireAdmin(principal); err != nil {
		return err
	}

	var sponsorship models.Sponsorship
	err := s.db.First(&sponsorship, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return policy.NotFound("Sponsorship not found")
	}
	if err != nil {
		return err
	}

	return s.db.Delete(&sponsorship).Error
}
