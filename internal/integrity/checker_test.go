package integrity

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/watotocare/sponsorship-backend/internal/models"
	"github.com/watotocare/sponsorship-backend/internal/policy"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Sponsorship{}, &models.Payment{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role models.Role) *models.User {
	t.Helper()
	user := &models.User{
		ID:             uuid.New(),
		FirstName:      "Test",
		LastName:       "User",
		Username:       string(role) + "-" + uuid.NewString()[:8],
		HashedPassword: "x",
		Role:           role,
		IsActive:       true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func requireKind(t *testing.T, err error, kind policy.Kind) {
	t.Helper()
	require.Error(t, err)
	got, ok := policy.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, kind, got)
}

func TestSponsorAndChildRoleMatched(t *testing.T) {
	db := newTestDB(t)
	k := NewChecker(db)
	sponsor := seedUser(t, db, models.RoleSponsor)
	child := seedUser(t, db, models.RoleChild)

	got, err := k.Sponsor(sponsor.ID)
	require.NoError(t, err)
	assert.Equal(t, sponsor.ID, got.ID)

	// A child-role ID does not resolve as a sponsor, and vice versa.
	_, err = k.Sponsor(child.ID)
	requireKind(t, err, policy.KindNotFound)
	_, err = k.Child(sponsor.ID)
	requireKind(t, err, policy.KindNotFound)

	_, err = k.Sponsor(uuid.New())
	requireKind(t, err, policy.KindNotFound)
}

func TestActiveSponsorship(t *testing.T) {
	db := newTestDB(t)
	k := NewChecker(db)
	sponsor := seedUser(t, db, models.RoleSponsor)
	child := seedUser(t, db, models.RoleChild)

	err := k.ActiveSponsorship(sponsor.ID, child.ID)
	requireKind(t, err, policy.KindInvalidState)

	s := &models.Sponsorship{
		ID: uuid.New(), SponsorID: sponsor.ID, ChildID: child.ID,
		Status: models.SponsorshipCanceled,
	}
	require.NoError(t, db.Create(s).Error)

	err = k.ActiveSponsorship(sponsor.ID, child.ID)
	requireKind(t, err, policy.KindInvalidState)

	require.NoError(t, db.Model(s).Update("status", models.SponsorshipActive).Error)
	assert.NoError(t, k.ActiveSponsorship(sponsor.ID, child.ID))
}

func TestSponsorshipLinkedIgnoresStatus(t *testing.T) {
	db := newTestDB(t)
	k := NewChecker(db)
	sponsor := seedUser(t, db, models.RoleSponsor)
	child := seedUser(t, db, models.RoleChild)

	err := k.SponsorshipLinked(sponsor.ID, child.ID)
	requireKind(t, err, policy.KindInvalidState)

	require.NoError(t, db.Create(&models.Sponsorship{
		ID: uuid.New(), SponsorID: sponsor.ID, ChildID: child.ID,
		Status: models.SponsorshipCanceled,
	}).Error)

	assert.NoError(t, k.SponsorshipLinked(sponsor.ID, child.ID))
}

func TestNoDuplicateSponsorship(t *testing.T) {
	db := newTestDB(t)
	k := NewChecker(db)
	sponsor := seedUser(t, db, models.RoleSponsor)
	child := seedUser(t, db, models.RoleChild)

	assert.NoError(t, k.NoDuplicateSponsorship(sponsor.ID, child.ID))

	require.NoError(t, db.Create(&models.Sponsorship{
		ID: uuid.New(), SponsorID: sponsor.ID, ChildID: child.ID,
		Status: models.SponsorshipCanceled,
	}).Error)

	err := k.NoDuplicateSponsorship(sponsor.ID, child.ID)
	requireKind(t, err, policy.KindConflict)
}

func TestTransactionIDAvailable(t *testing.T) {
	db := newTestDB(t)
	k := NewChecker(db)
	sponsor := seedUser(t, db, models.RoleSponsor)
	child := seedUser(t, db, models.RoleChild)

	payment := &models.Payment{
		ID: uuid.New(), SponsorID: sponsor.ID, ChildID: child.ID,
		Amount: 100, TransactionID: "TX001", PaymentMethod: "Mpesa",
	}
	require.NoError(t, db.Create(payment).Error)

	assert.NoError(t, k.TransactionIDAvailable("TX999", uuid.Nil))

	err := k.TransactionIDAvailable("TX001", uuid.Nil)
	requireKind(t, err, policy.KindConflict)

	// The payment being updated may keep its own transaction ID.
	assert.NoError(t, k.TransactionIDAvailable("TX001", payment.ID))
}

func TestDuplicatePairRejectedByIndex(t *testing.T) {
	db := newTestDB(t)
	sponsor := seedUser(t, db, models.RoleSponsor)
	child := seedUser(t, db, models.RoleChild)

	require.NoError(t, db.Create(&models.Sponsorship{
		ID: uuid.New(), SponsorID: sponsor.ID, ChildID: child.ID,
		Status: models.SponsorshipActive,
	}).Error)

	// The composite unique index backstops the pre-check.
	err := db.Create(&models.Sponsorship{
		ID: uuid.New(), SponsorID: sponsor.ID, ChildID: child.ID,
		Status: models.SponsorshipActive,
	}).Error
	assert.Error(t, err)
}
