package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watotocare/sponsorship-backend/internal/models"
	"github.com/watotocare/sponsorship-backend/internal/pagination"
	"github.com/watotocare/sponsorship-backend/internal/policy"
)

func TestDashboardEmptyDatabase(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, models.RoleAdmin, "admin")
	svc := NewAdminService(db, newGuard(db))

	stats, err := svc.Dashboard(admin)
	require.NoError(t, err)

	assert.Equal(t, int64(1), stats.TotalUsers)
	assert.Zero(t, stats.TotalSponsors)
	assert.Zero(t, stats.TotalChildren)
	assert.Zero(t, stats.TotalPayments)
	assert.Zero(t, stats.TotalAmount)
	assert.Zero(t, stats.UnreadReports)
}

func TestDashboardCounts(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, models.RoleAdmin, "admin")
	sponsor := seedUser(t, db, models.RoleSponsor, "sponsor1")
	child := seedUser(t, db, models.RoleChild, "child1")
	child2 := seedUser(t, db, models.RoleChild, "child2")
	seedSponsorship(t, db, sponsor.ID, child.ID, models.SponsorshipActive)
	seedSponsorship(t, db, sponsor.ID, child2.ID, models.SponsorshipCanceled)
	seedPayment(t, db, sponsor.ID, child.ID, 1000, "TX001")
	seedPayment(t, db, sponsor.ID, child.ID, 2500.50, "TX002")
	seedReport(t, db, child.ID, "education")
	svc := NewAdminService(db, newGuard(db))

	stats, err := svc.Dashboard(admin)
	require.NoError(t, err)

	assert.Equal(t, int64(4), stats.TotalUsers)
	assert.Equal(t, int64(1), stats.TotalSponsors)
	assert.Equal(t, int64(2), stats.TotalChildren)
	assert.Equal(t, int64(2), stats.TotalSponsorships)
	assert.Equal(t, int64(1), stats.ActiveSponsorships)
	assert.Equal(t, int64(2), stats.TotalPayments)
	assert.InDelta(t, 3500.50, stats.TotalAmount, 0.001)
	assert.Equal(t, int64(1), stats.UnreadReports)
}

func TestDashboardJSONKeys(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, models.RoleAdmin, "admin")
	svc := NewAdminService(db, newGuard(db))

	stats, err := svc.Dashboard(admin)
	require.NoError(t, err)

	raw, err := json.Marshal(stats)
	require.NoError(t, err)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &body))

	for _, key := range []string{
		"total_sponsors", "total_children", "total_payments", "total_amount",
	} {
		assert.Contains(t, body, key)
	}
}

func TestDashboardRequiresAdmin(t *testing.T) {
	db := newTestDB(t)
	sponsor := seedUser(t, db, models.RoleSponsor, "sponsor1")
	svc := NewAdminService(db, newGuard(db))

	_, err := svc.Dashboard(sponsor)
	requireKind(t, err, policy.KindForbidden)
}

func TestAdminListingsReturnEmptyPages(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, models.RoleAdmin, "admin")
	svc := NewAdminService(db, newGuard(db))

	sponsors, err := svc.Sponsors(admin, pagination.Params{})
	require.NoError(t, err)
	assert.Empty(t, sponsors.Items)
	assert.Zero(t, sponsors.TotalCount)

	payments, err := svc.Payments(admin, pagination.Params{})
	require.NoError(t, err)
	assert.Empty(t, payments.Items)

	sponsorships, err := svc.Sponsorships(admin, pagination.Params{})
	require.NoError(t, err)
	assert.Empty(t, sponsorships.Items)

	reports, err := svc.Reports(admin, pagination.Params{})
	require.NoError(t, err)
	assert.Empty(t, reports.Items)
}

func TestAdminChildrenListing(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, models.RoleAdmin, "admin")
	seedUser(t, db, models.RoleChild, "child1")
	seedUser(t, db, models.RoleChild, "child2")
	seedUser(t, db, models.RoleSponsor, "sponsor1")
	svc := NewAdminService(db, newGuard(db))

	page, err := svc.Children(admin, pagination.Params{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalCount)
	for _, u := range page.Items {
		assert.Equal(t, models.RoleChild, u.Role)
	}
}
