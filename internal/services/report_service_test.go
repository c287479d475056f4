package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watotocare/sponsorship-backend/internal/dto"
	"github.com/watotocare/sponsorship-backend/internal/models"
	"github.com/watotocare/sponsorship-backend/internal/pagination"
	"github.com/watotocare/sponsorship-backend/internal/policy"
)

func TestCreateReport(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, models.RoleAdmin, "admin")
	child := seedUser(t, db, models.RoleChild, "child1")
	svc := NewReportService(db, newGuard(db), newChecker(db))

	report, err := svc.Create(admin, dto.CreateReportRequest{
		ChildID:    child.ID,
		ReportType: "education",
		Details:    "Top of the class this term",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ReportUnread, report.Status)
	assert.False(t, report.ReportDate.IsZero())
}

func TestCreateReportRequiresAdmin(t *testing.T) {
	db := newTestDB(t)
	sponsor := seedUser(t, db, models.RoleSponsor, "sponsor1")
	child := seedUser(t, db, models.RoleChild, "child1")
	svc := NewReportService(db, newGuard(db), newChecker(db))

	_, err := svc.Create(sponsor, dto.CreateReportRequest{
		ChildID:    child.ID,
		ReportType: "health",
		Details:    "Checkup done",
	})
	requireKind(t, err, policy.KindForbidden)
}

func TestCreateReportChildMustExist(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, models.RoleAdmin, "admin")
	sponsor := seedUser(t, db, models.RoleSponsor, "sponsor1")
	svc := NewReportService(db, newGuard(db), newChecker(db))

	// A sponsor-role ID is not a child.
	_, err := svc.Create(admin, dto.CreateReportRequest{
		ChildID:    sponsor.ID,
		ReportType: "health",
		Details:    "Checkup done",
	})
	requireKind(t, err, policy.KindNotFound)
}

func TestListReportsRequiresFilter(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, models.RoleAdmin, "admin")
	svc := NewReportService(db, newGuard(db), newChecker(db))

	_, err := svc.List(admin, nil, nil, pagination.Params{})
	requireKind(t, err, policy.KindInvalidState)
}

func TestListReportsByChildScopedToSponsors(t *testing.T) {
	db := newTestDB(t)
	sponsor := seedUser(t, db, models.RoleSponsor, "sponsor1")
	other := seedUser(t, db, models.RoleSponsor, "sponsor2")
	child := seedUser(t, db, models.RoleChild, "child1")
	seedSponsorship(t, db, sponsor.ID, child.ID, models.SponsorshipActive)
	seedReport(t, db, child.ID, "education")
	svc := NewReportService(db, newGuard(db), newChecker(db))

	_, err := svc.List(other, &child.ID, nil, pagination.Params{})
	requireKind(t, err, policy.KindForbidden)

	page, err := svc.List(sponsor, &child.ID, nil, pagination.Params{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalCount)
}

func TestListReportsPairMustBeLinked(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, models.RoleAdmin, "admin")
	sponsor := seedUser(t, db, models.RoleSponsor, "sponsor1")
	child := seedUser(t, db, models.RoleChild, "child1")
	seedReport(t, db, child.ID, "education")
	svc := NewReportService(db, newGuard(db), newChecker(db))

	_, err := svc.List(admin, &child.ID, &sponsor.ID, pagination.Params{})
	requireKind(t, err, policy.KindInvalidState)
}

func TestListReportsEmptyIsNotFound(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, models.RoleAdmin, "admin")
	sponsor := seedUser(t, db, models.RoleSponsor, "sponsor1")
	child := seedUser(t, db, models.RoleChild, "child1")
	seedSponsorship(t, db, sponsor.ID, child.ID, models.SponsorshipActive)
	svc := NewReportService(db, newGuard(db), newChecker(db))

	_, err := svc.List(admin, &child.ID, nil, pagination.Params{})
	requireKind(t, err, policy.KindNotFound)
}

func TestUpdateReportStatusValidation(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, models.RoleAdmin, "admin")
	child := seedUser(t, db, models.RoleChild, "child1")
	report := seedReport(t, db, child.ID, "education")
	svc := NewReportService(db, newGuard(db), newChecker(db))

	read := models.ReportRead
	updated, err := svc.Update(admin, report.ID, dto.ReportPatch{Status: &read})
	require.NoError(t, err)
	assert.Equal(t, models.ReportRead, updated.Status)

	bogus := "archived"
	_, err = svc.Update(admin, report.ID, dto.ReportPatch{Status: &bogus})
	requireKind(t, err, policy.KindValidation)
}

func TestMarkReadBySponsor(t *testing.T) {
	db := newTestDB(t)
	sponsor := seedUser(t, db, models.RoleSponsor, "sponsor1")
	other := seedUser(t, db, models.RoleSponsor, "sponsor2")
	child := seedUser(t, db, models.RoleChild, "child1")
	seedSponsorship(t, db, sponsor.ID, child.ID, models.SponsorshipActive)
	report := seedReport(t, db, child.ID, "education")
	svc := NewReportService(db, newGuard(db), newChecker(db))

	_, err := svc.MarkRead(other, report.ID)
	requireKind(t, err, policy.KindForbidden)

	updated, err := svc.MarkRead(sponsor, report.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReportRead, updated.Status)
}

func TestDeleteReport(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, models.RoleAdmin, "admin")
	child := seedUser(t, db, models.RoleChild, "child1")
	report := seedReport(t, db, child.ID, "education")
	svc := NewReportService(db, newGuard(db), newChecker(db))

	require.NoError(t, svc.Delete(admin, report.ID))

	err := svc.Delete(admin, report.ID)
	requireKind(t, err, policy.KindNotFound)
}
