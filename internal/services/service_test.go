package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/watotocare/sponsorship-backend/internal/config"
	"github.com/watotocare/sponsorship-backend/internal/integrity"
	"github.com/watotocare/sponsorship-backend/internal/models"
	"github.com/watotocare/sponsorship-backend/internal/policy"
)

const testPassword = "Test1234!"

// bcrypt hash of testPassword, precomputed so tests don't pay the hashing
// cost for every fixture user.
var testHash string

func init() {
	var err error
	testHash, err = HashPassword(testPassword)
	if err != nil {
		panic(err)
	}
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Sponsorship{},
		&models.Payment{},
		&models.ChildReport{},
	)
	require.NoError(t, err)
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret: "test-secret",
		JWTExpiry: 168 * time.Hour,
	}
}

func seedUser(t *testing.T, db *gorm.DB, role models.Role, username string) *models.User {
	t.Helper()
	user := &models.User{
		ID:             uuid.New(),
		FirstName:      "Test",
		LastName:       "User",
		Username:       username,
		HashedPassword: testHash,
		Role:           role,
		IsActive:       true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedSponsorship(t *testing.T, db *gorm.DB, sponsorID, childID uuid.UUID, status string) *models.Sponsorship {
	t.Helper()
	sponsorship := &models.Sponsorship{
		ID:        uuid.New(),
		SponsorID: sponsorID,
		ChildID:   childID,
		StartDate: time.Now().AddDate(0, -6, 0),
		Status:    status,
	}
	require.NoError(t, db.Create(sponsorship).Error)
	return sponsorship
}

func seedPayment(t *testing.T, db *gorm.DB, sponsorID, childID uuid.UUID, amount float64, txID string) *models.Payment {
	t.Helper()
	payment := &models.Payment{
		ID:            uuid.New(),
		SponsorID:     sponsorID,
		ChildID:       childID,
		Amount:        amount,
		Currency:      "KSh",
		TransactionID: txID,
		PaymentMethod: "Mpesa",
		Status:        models.PaymentCompleted,
		PaymentDate:   time.Now(),
	}
	require.NoError(t, db.Create(payment).Error)
	return payment
}

func seedReport(t *testing.T, db *gorm.DB, childID uuid.UUID, reportType string) *models.ChildReport {
	t.Helper()
	report := &models.ChildReport{
		ID:         uuid.New(),
		ChildID:    childID,
		ReportDate: time.Now(),
		ReportType: reportType,
		Details:    "Doing well in school",
		Status:     models.ReportUnread,
	}
	require.NoError(t, db.Create(report).Error)
	return report
}

func newGuard(db *gorm.DB) *policy.Guard {
	return policy.NewGuard(db)
}

func newChecker(db *gorm.DB) *integrity.Checker {
	return integrity.NewChecker(db)
}

func requireKind(t *testing.T, err error, kind policy.Kind) {
	t.Helper()
	require.Error(t, err)
	got, ok := policy.KindOf(err)
	require.True(t, ok, "expected a policy error, got %v", err)
	require.Equal(t, kind, got, "unexpected error kind for %v", err)
}
