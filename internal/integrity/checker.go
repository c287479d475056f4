// Package integrity validates that referenced entities exist with the right
// role and that required sponsorship relationships hold before dependent
// records are written.
package integrity

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/watotocare/sponsorship-backend/internal/models"
	"github.com/watotocare/sponsorship-backend/internal/policy"
)

type Checker struct {
	db *gorm.DB
}

func NewChecker(db *gorm.DB) *Checker {
	return &Checker{db: db}
}

// Sponsor resolves id to a sponsor-role user.
func (k *Checker) Sponsor(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := k.db.Where("id = ? AND role = ?", id, models.RoleSponsor).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, policy.NotFound("Sponsor not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Child resolves id to a child-role user.
func (k *Checker) Child(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := k.db.Where("id = ? AND role = ?", id, models.RoleChild).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, policy.NotFound("Child not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ActiveSponsorship is the precondition for recording a payment.
func (k *Checker) ActiveSponsorship(sponsorID, childID uuid.UUID) error {
	var count int64
	err := k.db.Model(&models.Sponsorship{}).
		Where("sponsor_id = ? AND child_id = ? AND status = ?", sponsorID, childID, models.SponsorshipActive).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return policy.InvalidState("No active sponsorship found between the sponsor and child. Create sponsorship first.")
	}
	return nil
}

// SponsorshipLinked verifies a sponsor/child filter pair is consistent:
// both exist but no sponsorship links them is an invalid combination.
func (k *Checker) SponsorshipLinked(sponsorID, childID uuid.UUID) error {
	var count int64
	err := k.db.Model(&models.Sponsorship{}).
		Where("sponsor_id = ? AND child_id = ?", sponsorID, childID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return policy.InvalidState("No sponsorship relationship exists between the sponsor and child")
	}
	return nil
}

// NoDuplicateSponsorship rejects a second sponsorship for the same pair,
// whatever its status. The composite unique index is the real guarantee.
func (k *Checker) NoDuplicateSponsorship(sponsorID, childID uuid.UUID) error {
	var count int64
	err := k.db.Model(&models.Sponsorship{}).
		Where("sponsor_id = ? AND child_id = ?", sponsorID, childID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return policy.Conflict("Child already sponsored by this sponsor")
	}
	return nil
}

// TransactionIDAvailable checks global transaction-id uniqueness. exclude
// skips the payment being updated so a no-op update of the same value passes.
func (k *Checker) TransactionIDAvailable(transactionID string, exclude uuid.UUID) error {
	query := k.db.Model(&models.Payment{}).Where("transaction_id = ?", transactionID)
	if exclude != uuid.Nil {
		query = query.Where("id <> ?", exclude)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return policy.Conflict("Transaction ID already exists")
	}
	return nil
}
