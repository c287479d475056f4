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

type ReportService struct {
	db      *gorm.DB
	guard   *policy.Guard
	checker *integrity.Checker
}

func NewReportService(db *gorm.DB, guard *policy.Guard, checker *integrity.Checker) *ReportService {
	return &ReportService{db: db, guard: guard, checker: checker}
}

// Create writes a progress report for a child. Admin only.
func (s *ReportService) Create(principal *models.User, req dto.CreateReportRequest) (*models.ChildReport, error) {
	if err := s.guard.RequireAdmin(principal); err != nil {
		return nil, err
	}

	if _, err := s.checker.Child(req.ChildID); err != nil {
		return nil, err
	}

	if req.ReportType == "" {
		return nil, policy.Validation("Report type is required")
	}
	if req.Details == "" {
		return nil, policy.Validation("Report details are required")
	}

	reportDate := time.Now().UTC()
	if req.ReportDate != nil {
		reportDate = *req.ReportDate
	}

	report := models.ChildReport{
		ID:         uuid.New(),
		ChildID:    req.ChildID,
		ReportDate: reportDate,
		ReportType: req.ReportType,
		Details:    req.Details,
		Status:     models.ReportUnread,
	}

	if err := s.db.Create(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// List fetches reports filtered by child, sponsor, or both. At least one
// filter is required. Sponsors only see reports for children they sponsor.
func (s *ReportService) List(principal *models.User, childID, sponsorID *uuid.UUID, params pagination.Params) (*pagination.Page[models.ChildReport], error) {
	if childID == nil && sponsorID == nil {
		return nil, policy.InvalidState("Either 'child_id' or 'sponsor_id' must be provided.")
	}

	query := s.db.Model(&models.ChildReport{})

	switch {
	case childID != nil && sponsorID != nil:
		if _, err := s.checker.Child(*childID); err != nil {
			return nil, err
		}
		if _, err := s.checker.Sponsor(*sponsorID); err != nil {
			return nil, err
		}
		if err := s.checker.SponsorshipLinked(*sponsorID, *childID); err != nil {
			return nil, err
		}
		if err := s.guard.RequireSelfOrAdmin(principal, *sponsorID); err != nil {
			return nil, err
		}
		query = query.Where("child_id = ?", *childID)

	case childID != nil:
		if _, err := s.checker.Child(*childID); err != nil {
			return nil, err
		}
		if err := s.guard.CanViewChild(principal, *childID); err != nil {
			return nil, err
		}
		query = query.Where("child_id = ?", *childID)

	default:
		if err := s.guard.RequireSelfOrAdmin(principal, *sponsorID); err != nil {
			return nil, err
		}
		if _, err := s.checker.Sponsor(*sponsorID); err != nil {
			return nil, err
		}

		var childIDs []uuid.UUID
		err := s.db.Model(&models.Sponsorship{}).
			Where("sponsor_id = ?", *sponsorID).
			Pluck("child_id", &childIDs).Error
		if err != nil {
			return nil, err
		}
		if len(childIDs) == 0 {
			return nil, policy.NotFound("No sponsored children found")
		}
		query = query.Where("child_id IN ?", childIDs)
	}

	page, err := pagination.Paginate[models.ChildReport](query, params)
	if err != nil {
		return nil, err
	}
	if len(page.Items) == 0 {
		return nil, policy.NotFound("No reports found")
	}
	return page, nil
}

// Update patches a report. Admin only.
func (s *ReportService) Update(principal *models.User, id uuid.UUID, patch dto.ReportPatch) (*models.ChildReport, error) {
	if err := s.guard.RequireAdmin(principal); err != nil {
		return nil, err
	}

	report, err := s.get(id)
	if err != nil {
		return nil, err
	}

	if patch.ReportDate != nil {
		report.ReportDate = *patch.ReportDate
	}
	if patch.ReportType != nil {
		report.ReportType = *patch.ReportType
	}
	if patch.Details != nil {
		report.Details = *patch.Details
	}
	if patch.Status != nil {
		switch *patch.Status {
		case models.ReportUnread, models.ReportRead:
			report.Status = *patch.Status
		default:
			return nil, policy.Validation("Status must be one of: unread, read")
		}
	}

	if err := s.db.Save(report).Error; err != nil {
		return nil, err
	}
	return report, nil
}

// Delete removes a report. Admin only.
func (s *ReportService) Delete(principal *models.User, id uuid.UUID) error {
	if err := s.guard.RequireAdmin(principal); err != nil {
		return err
	}

	report, err := s.get(id)
	if err != nil {
		return err
	}
	return s.db.Delete(report).Error
}

// MarkRead flips a report's status to read. Admins can mark any report;
// sponsors only reports of children they sponsor.
func (s *ReportService) MarkRead(principal *models.User, id uuid.UUID) (*models.ChildReport, error) {
	report, err := s.get(id)
	if err != nil {
		return nil, err
	}

	if _, err := s.checker.Child(report.ChildID); err != nil {
		return nil, policy.NotFound("Associated child not found")
	}

	if err := s.guard.CanViewChild(principal, report.ChildID); err != nil {
		return nil, err
	}

	report.Status = models.ReportRead
	if err := s.db.Save(report).Error; err != nil {
		return nil, err
	}
	return report, nil
}

func (s *ReportService) get(id uuid.UUID) (*models.ChildReport, error) {
	var report models.ChildReport
	err := s.db.First(&report, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, policy.NotFound("Report not found")
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}
