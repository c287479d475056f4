package services

import (
	"gorm.io/gorm"

	"github.com/watotocare/sponsorship-backend/internal/dto"
	"github.com/watotocare/sponsorship-backend/internal/models"
	"github.com/watotocare/sponsorship-backend/internal/pagination"
	"github.com/watotocare/sponsorship-backend/internal/policy"
)

// AdminService backs the admin dashboard and the system-wide listings. Unlike
// the filtered payment and report lists, these return an empty page rather
// than a not-found when nothing matches.
type AdminService struct {
	db    *gorm.DB
	guard *policy.Guard
}

func NewAdminService(db *gorm.DB, guard *policy.Guard) *AdminService {
	return &AdminService{db: db, guard: guard}
}

// Dashboard collects system-wide counts and the all-time payment total. An
// empty database yields zeros, not errors.
func (s *AdminService) Dashboard(principal *models.User) (*dto.DashboardStats, error) {
	if err := s.guard.RequireAdmin(principal); err != nil {
		return nil, err
	}

	stats := &dto.DashboardStats{}

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&stats.TotalUsers, s.db.Model(&models.User{})},
		{&stats.TotalSponsors, s.db.Model(&models.User{}).Where("role = ?", models.RoleSponsor)},
		{&stats.TotalChildren, s.db.Model(&models.User{}).Where("role = ?", models.RoleChild)},
		{&stats.TotalSponsorships, s.db.Model(&models.Sponsorship{})},
		{&stats.ActiveSponsorships, s.db.Model(&models.Sponsorship{}).Where("status = ?", models.SponsorshipActive)},
		{&stats.TotalPayments, s.db.Model(&models.Payment{})},
		{&stats.UnreadReports, s.db.Model(&models.ChildReport{}).Where("status = ?", models.ReportUnread)},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	err := s.db.Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.TotalAmount).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// Sponsors lists all sponsor accounts.
func (s *AdminService) Sponsors(principal *models.User, params pagination.Params) (*pagination.Page[models.User], error) {
	if err := s.guard.RequireAdmin(principal); err != nil {
		return nil, err
	}
	query := s.db.Model(&models.User{}).Where("role = ?", models.RoleSponsor)
	return pagination.Paginate[models.User](query, params)
}

// Children lists all child accounts.
func (s *AdminService) Children(principal *models.User, params pagination.Params) (*pagination.Page[models.User], error) {
	if err := s.guard.RequireAdmin(principal); err != nil {
		return nil, err
	}
	query := s.db.Model(&models.User{}).Where("role = ?", models.RoleChild)
	return pagination.Paginate[models.User](query, params)
}

// Payments lists all payment records.
func (s *AdminService) Payments(principal *models.User, params pagination.Params) (*pagination.Page[models.Payment], error) {
	if err := s.guard.RequireAdmin(principal); err != nil {
		return nil, err
	}
	return pagination.Paginate[models.Payment](s.db.Model(&models.Payment{}), params)
}

// Sponsorships lists all sponsorship records.
func (s *AdminService) Sponsorships(principal *models.User, params pagination.Params) (*pagination.Page[models.Sponsorship], error) {
	if err := s.guard.RequireAdmin(principal); err != nil {
		return nil, err
	}
	return pagination.Paginate[models.Sponsorship](s.db.Model(&models.Sponsorship{}), params)
}

// Reports lists all child reports.
func (s *AdminService) Reports(principal *models.User, params pagination.Params) (*pagination.Page[models.ChildReport], error) {
	if err := s.guard.RequireAdmin(principal); err != nil {
		return nil, err
	}
	return pagination.Paginate[models.ChildReport](s.db.Model(&models.ChildReport{}), params)
}
