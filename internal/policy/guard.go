package policy

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/watotocare/sponsorship-backend/internal/models"
)

const msgNoPermission = "You do not have permission to perform this action"

// Guard decides whether a resolved principal may perform an action on a
// target resource, based on role and sponsorship relationships.
type Guard struct {
	db *gorm.DB
}

func NewGuard(db *gorm.DB) *Guard {
	return &Guard{db: db}
}

// RequireAdmin gates admin-designated actions.
func (g *Guard) RequireAdmin(principal *models.User) error {
	switch principal.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleSponsor, models.RoleChild:
		return Forbidden(msgNoPermission)
	}
	return Forbidden(msgNoPermission)
}

// RequireSponsor gates sponsor-only self-scoped views.
func (g *Guard) RequireSponsor(principal *models.User) error {
	switch principal.Role {
	case models.RoleSponsor:
		return nil
	case models.RoleAdmin, models.RoleChild:
		return Forbidden("Only sponsors can access this resource")
	}
	return Forbidden("Only sponsors can access this resource")
}

// CanReadUser permits profile reads. Admin-role targets are readable only by
// other admins.
func (g *Guard) CanReadUser(principal, target *models.User) error {
	if target.Role == models.RoleAdmin && principal.Role != models.RoleAdmin {
		return Forbidden(msgNoPermission)
	}
	return nil
}

// RequireSelfOrAdmin gates sponsor-scoped listings: a sponsor may only ask
// for their own data, never another sponsor's by parameter substitution.
func (g *Guard) RequireSelfOrAdmin(principal *models.User, ownerID uuid.UUID) error {
	if principal.Role == models.RoleAdmin || principal.ID == ownerID {
		return nil
	}
	return Forbidden("You do not have permission to access this resource")
}

// CanViewPayment permits the admin, the paying sponsor, or the receiving
// child.
func (g *Guard) CanViewPayment(principal *models.User, payment *models.Payment) error {
	if principal.Role == models.RoleAdmin {
		return nil
	}
	if principal.ID == payment.SponsorID || principal.ID == payment.ChildID {
		return nil
	}
	return Forbidden("You do not have permission to view this payment")
}

// CanViewChild permits the admin or any sponsor linked to the child by a
// sponsorship record, regardless of its status.
func (g *Guard) CanViewChild(principal *models.User, childID uuid.UUID) error {
	if principal.Role == models.RoleAdmin {
		return nil
	}

	var count int64
	err := g.db.Model(&models.Sponsorship{}).
		Where("sponsor_id = ? AND child_id = ?", principal.ID, childID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return Forbidden("You do not have permission to view this child's data")
	}
	return nil
}

// DenySelfDelete rejects deleting one's own account, admins included.
func (g *Guard) DenySelfDelete(principal *models.User, targetID uuid.UUID) error {
	if principal.ID == targetID {
		return Validation("You cannot delete your own account")
	}
	return nil
}
