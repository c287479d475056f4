package services

import (
	"encoding/json"
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

// SponsorService backs the sponsor portal: everything is scoped to the
// logged-in sponsor's own children, payments and reports.
type SponsorService struct {
	db      *gorm.DB
	guard   *policy.Guard
	checker *integrity.Checker
}

func NewSponsorService(db *gorm.DB, guard *policy.Guard, checker *integrity.Checker) *SponsorService {
	return &SponsorService{db: db, guard: guard, checker: checker}
}

// Children lists the principal's sponsored children.
func (s *SponsorService) Children(principal *models.User, params pagination.Params) (*pagination.Page[models.User], error) {
	query := s.db.Model(&models.User{}).
		Joins("JOIN sponsorships ON users.id = sponsorships.child_id").
		Where("sponsorships.sponsor_id = ?", principal.ID)

	page, err := pagination.Paginate[models.User](query, params)
	if err != nil {
		return nil, err
	}
	if page.TotalCount == 0 {
		return nil, policy.NotFound("No children sponsored by this sponsor")
	}
	return page, nil
}

// ChildDetail aggregates a sponsored child's profile, sponsorship status,
// payment history and reports into one view. When the viewer is a sponsor the
// sponsorship section reflects their own link to the child; for admins it
// falls back to the child's earliest sponsorship.
func (s *SponsorService) ChildDetail(principal *models.User, childID uuid.UUID) (*dto.ChildDetailResponse, error) {
	child, err := s.checker.Child(childID)
	if err != nil {
		return nil, err
	}

	if err := s.guard.CanViewChild(principal, childID); err != nil {
		return nil, err
	}

	var sponsorship models.Sponsorship
	query := s.db.Where("child_id = ?", childID)
	if principal.Role == models.RoleSponsor {
		query = query.Where("sponsor_id = ?", principal.ID)
	}
	err = query.Order("created_at").First(&sponsorship).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	hasSponsorship := err == nil

	var payments []models.Payment
	if err := s.db.Where("child_id = ?", childID).Order("payment_date").Find(&payments).Error; err != nil {
		return nil, err
	}

	var reports []models.ChildReport
	if err := s.db.Where("child_id = ?", childID).Order("report_date").Find(&reports).Error; err != nil {
		return nil, err
	}

	detail := &dto.ChildDetailResponse{}
	detail.PersonalInfo.ID = child.ID
	detail.PersonalInfo.FirstName = child.FirstName
	detail.PersonalInfo.LastName = child.LastName
	detail.PersonalInfo.DateOfBirth = child.DateOfBirth
	detail.PersonalInfo.BackgroundInfo = child.BackgroundInfo
	detail.PersonalInfo.ProfileImage = child.ProfileImage
	if child.DateOfBirth != nil {
		age := ageInYears(*child.DateOfBirth, time.Now())
		detail.PersonalInfo.Age = &age
	}
	if child.Gender != nil {
		g := string(*child.Gender)
		detail.PersonalInfo.Gender = &g
	}

	if hasSponsorship {
		detail.Sponsorship.ID = sponsorship.ID
		detail.Sponsorship.StartDate = sponsorship.StartDate
		detail.Sponsorship.Status = sponsorship.Status
		detail.Sponsorship.DurationMonths = int(time.Since(sponsorship.StartDate).Hours() / 24 / 30)
	}

	detail.Payments.History = make([]dto.PaymentResponse, 0, len(payments))
	for i := range payments {
		detail.Payments.TotalContributed += payments[i].Amount
		detail.Payments.History = append(detail.Payments.History, dto.NewPaymentResponse(&payments[i]))
	}

	detail.Reports = make([]dto.ReportResponse, 0, len(reports))
	for i := range reports {
		detail.Reports = append(detail.Reports, dto.NewReportResponse(&reports[i]))
	}

	detail.Gallery = []string{}
	if len(child.ImageGallery) > 0 {
		var gallery []string
		if err := json.Unmarshal(child.ImageGallery, &gallery); err == nil {
			detail.Gallery = gallery
		}
	}

	return detail, nil
}

// Payments lists the principal's own payments. Sponsor role only.
func (s *SponsorService) Payments(principal *models.User, params pagination.Params) (*pagination.Page[models.Payment], error) {
	if err := s.guard.RequireSponsor(principal); err != nil {
		return nil, err
	}

	query := s.db.Model(&models.Payment{}).Where("sponsor_id = ?", principal.ID)

	page, err := pagination.Paginate[models.Payment](query, params)
	if err != nil {
		return nil, err
	}
	if len(page.Items) == 0 {
		return nil, policy.NotFound("No payments found")
	}
	return page, nil
}

// Reports lists reports across all of the principal's sponsored children.
func (s *SponsorService) Reports(principal *models.User, params pagination.Params) (*pagination.Page[models.ChildReport], error) {
	if err := s.guard.RequireSponsor(principal); err != nil {
		return nil, err
	}

	var childIDs []uuid.UUID
	err := s.db.Model(&models.Sponsorship{}).
		Where("sponsor_id = ?", principal.ID).
		Pluck("child_id", &childIDs).Error
	if err != nil {
		return nil, err
	}
	if len(childIDs) == 0 {
		return nil, policy.NotFound("No sponsored children found")
	}

	query := s.db.Model(&models.ChildReport{}).Where("child_id IN ?", childIDs)

	page, err := pagination.Paginate[models.ChildReport](query, params)
	if err != nil {
		return nil, err
	}
	if len(page.Items) == 0 {
		return nil, policy.NotFound("No reports found for your sponsored children")
	}
	return page, nil
}

// Report fetches one report, provided the principal sponsors its child.
func (s *SponsorService) Report(principal *models.User, reportID uuid.UUID) (*models.ChildReport, error) {
	if err := s.guard.RequireSponsor(principal); err != nil {
		return nil, err
	}

	var report models.ChildReport
	err := s.db.First(&report, "id = ?", reportID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, policy.NotFound("Report not found")
	}
	if err != nil {
		return nil, err
	}

	var count int64
	err = s.db.Model(&models.Sponsorship{}).
		Where("sponsor_id = ? AND child_id = ?", principal.ID, report.ChildID).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, policy.Forbidden("You are not authorized to view this report")
	}
	return &report, nil
}

func ageInYears(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}
