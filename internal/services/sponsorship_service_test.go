package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watotocare/sponsorship-backend/internal/dto"
	"github.com/watotocare/sponsorship-backend/internal/models"
	"github.com/watotocare/sponsorship-backend/internal/pagination"
	"github.com/watotocare/sponsorship-backend/internal/policy"
)

func TestCreateSponsorship(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, models.RoleAdmin, "admin")
	sponsor := seedUser(t, db, models.RoleSponsor, "sponsor1")
	child := seedUser(t, db, models.RoleChild, "child1")
	svc := NewSponsorshipService(db, newGuard(db), newChecker(db))

	sponsorship, err := svc.Create(admin, dto.CreateSponsorshipRequest{
		SponsorID: sponsor.ID,
		ChildID:   child.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, models.SponsorshipActive, sponsorship.Status)
	assert.False(t, sponsorship.StartDate.IsZero())
}

func TestCreateSponsorshipRequiresAdmin(t *testing.T) {
	db := newTestDB(t)
	sponsor := seedUser(t, db, models.RoleSponsor, "sponsor1")
	child := seedUser(t, db, models.RoleChild, "child1")
	svc := NewSponsorshipService(db, newGuard(db), newChecker(db))

	_, err := svc.Create(sponsor, dto.CreateSponsorshipRequest{
		SponsorID: sponsor.ID,
		ChildID:   child.ID,
	})
	requireKind(t, err, policy.KindForbidden)
}

func TestCreateSponsorshipDuplicatePair(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, models.RoleAdmin, "admin")
	sponsor := seedUser(t, db, models.RoleSponsor, "sponsor1")
	child := seedUser(t, db, models.RoleChild, "child1")
	seedSponsorship(t, db, sponsor.ID, child.ID, models.SponsorshipCanceled)
	svc := NewSponsorshipService(db, newGuard(db), newChecker(db))

	// A canceled sponsorship still blocks a second one for the same pair.
	_, err := svc.Create(admin, dto.CreateSponsorshipRequest{
		SponsorID: sponsor.ID,
		ChildID:   child.ID,
	})
	requireKind(t, err, policy.KindConflict)
}

func TestCreateSponsorshipRoleMismatch(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, models.RoleAdmin, "admin")
	sponsor := seedUser(t, db, models.RoleSponsor, "sponsor1")
	child := seedUser(t, db, models.RoleChild, "child1")
	svc := NewSponsorshipService(db, newGuard(db), newChecker(db))

	// Swapped IDs: neither fits the required role.
	_, err := svc.Create(admin, dto.CreateSponsorshipRequest{
		SponsorID: child.ID,
		ChildID:   sponsor.ID,
	})
	requireKind(t, err, policy.KindNotFound)
}

func TestSponsoredChildrenScopedToSelf(t *testing.T) {
	db := newTestDB(t)
	sponsor := seedUser(t, db, models.RoleSponsor, "sponsor1")
	other := seedUser(t, db, models.RoleSponsor, "sponsor2")
	child := seedUser(t, db, models.RoleChild, "child1")
	seedSponsorship(t, db, sponsor.ID, child.ID, models.SponsorshipActive)
	svc := NewSponsorshipService(db, newGuard(db), newChecker(db))

	_, err := svc.SponsoredChildren(other, sponsor.ID, pagination.Params{})
	requireKind(t, err, policy.KindForbidden)

	page, err := svc.SponsoredChildren(sponsor, sponsor.ID, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, child.ID, page.Items[0].ID)
}

func TestSponsoredChildrenNoneFound(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, models.RoleAdmin, "admin")
	sponsor := seedUser(t, db, models.RoleSponsor, "sponsor1")
	svc := NewSponsorshipService(db, newGuard(db), newChecker(db))

	_, err := svc.SponsoredChildren(admin, sponsor.ID, pagination.Params{})
	requireKind(t, err, policy.KindNotFound)
}

func TestSponsorOfChild(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, models.RoleAdmin, "admin")
	sponsor := seedUser(t, db, models.RoleSponsor, "sponsor1")
	child := seedUser(t, db, models.RoleChild, "child1")
	orphan := seedUser(t, db, models.RoleChild, "child2")
	seedSponsorship(t, db, sponsor.ID, child.ID, models.SponsorshipActive)
	svc := NewSponsorshipService(db, newGuard(db), newChecker(db))

	got, err := svc.SponsorOfChild(admin, child.ID)
	require.NoError(t, err)
	assert.Equal(t, sponsor.ID, got.ID)

	_, err = svc.SponsorOfChild(admin, orphan.ID)
	requireKind(t, err, policy.KindNotFound)
}

func TestUpdateSponsorshipStatus(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, models.RoleAdmin, "admin")
	sponsor := seedUser(t, db, models.RoleSponsor, "sponsor1")
	child := seedUser(t, db, models.RoleChild, "child1")
	sponsorship := seedSponsorship(t, db, sponsor.ID, child.ID, models.SponsorshipActive)
	svc := NewSponsorshipService(db, newGuard(db), newChecker(db))

	canceled := models.SponsorshipCanceled
	updated, err := svc.Update(admin, sponsorship.ID, dto.SponsorshipPatch{Status: &canceled})
	require.NoError(t, err)
	assert.Equal(t, models.SponsorshipCanceled, updated.Status)

	bogus := "paused"
	_, err = svc.Update(admin, sponsorship.ID, dto.SponsorshipPatch{Status: &bogus})
	requireKind(t, err, policy.KindValidation)
}

func TestDeleteSponsorship(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, models.RoleAdmin, "admin")
	sponsor := seedUser(t, db, models.RoleSponsor, "sponsor1")
	child := seedUser(t, db, models.RoleChild, "child1")
	sponsorship := seedSponsorship(t, db, sponsor.ID, child.ID, models.SponsorshipActive)
	svc := NewSponsorshipService(db, newGuard(db), newChecker(db))

	require.NoError(t, svc.Delete(admin, sponsorship.ID))

	err := svc.Delete(admin, sponsorship.ID)
	requireKind(t, err, policy.KindNotFound)
}

func TestSponsoredChildrenPagination(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, models.RoleAdmin, "admin")
	sponsor := seedUser(t, db, models.RoleSponsor, "sponsor1")
	for i := 0; i < 25; i++ {
		child := seedUser(t, db, models.RoleChild, fmt.Sprintf("child%02d", i))
		seedSponsorship(t, db, sponsor.ID, child.ID, models.SponsorshipActive)
	}
	svc := NewSponsorshipService(db, newGuard(db), newChecker(db))

	page, err := svc.SponsoredChildren(admin, sponsor.ID, pagination.Params{Page: 3, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(25), page.TotalCount)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Items, 5)
}
