package policy

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/watotocare/sponsorship-backend/internal/models"
)

// UserID extracts the principal's user ID from the verified JWT in context.
func UserID(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return uuid.Nil, Unauthenticated("Unauthorized: invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, Unauthenticated("Unauthorized: invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, Unauthenticated("Unauthorized: missing subject claim")
	}

	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, Unauthenticated("Unauthorized: malformed subject claim")
	}
	return id, nil
}

// Resolve loads the principal's User row. A valid token whose account has
// since been deleted is treated as unauthenticated, not forbidden: the
// identity no longer exists.
func Resolve(db *gorm.DB, c *fiber.Ctx) (*models.User, error) {
	id, err := UserID(c)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, Unauthenticated("User no longer exists")
		}
		return nil, err
	}
	return &user, nil
}
