package services

import (
	"errors"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/watotocare/sponsorship-backend/internal/config"
	"github.com/watotocare/sponsorship-backend/internal/dto"
	"github.com/watotocare/sponsorship-backend/internal/models"
	"github.com/watotocare/sponsorship-backend/internal/policy"
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

// Login verifies credentials and issues a signed token. An unknown username
// and a wrong password fail differently on purpose.
func (s *AuthService) Login(req dto.LoginRequest) (*dto.LoginResponse, error) {
	var user models.User
	err := s.db.Where("username = ?", req.Username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, policy.NotFound("User not found")
	}
	if err != nil {
		return nil, err
	}

	if err := CheckPassword(user.HashedPassword, req.Password); err != nil {
		return nil, policy.Unauthenticated("Incorrect password")
	}

	token, err := s.createToken(&user)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		ID:          user.ID,
		Username:    user.Username,
		Role:        string(user.Role),
		AccessToken: token,
		TokenType:   "bearer",
	}, nil
}

func (s *AuthService) createToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      user.ID.String(),
		"username": user.Username,
		"role":     string(user.Role),
		"iat":      now.Unix(),
		"exp":      now.Add(s.cfg.JWTExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func CheckPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// ValidatePassword enforces the account password rules: 8 to 64 characters
// with at least one uppercase letter, one lowercase letter, one digit and one
// special character, and no whitespace anywhere.
func ValidatePassword(password string) error {
	msg := "Password must be 8-64 chars long, contain 1 uppercase, 1 lowercase, 1 digit, 1 special character, and no spaces."

	runes := []rune(password)
	if len(runes) < 8 || len(runes) > 64 {
		return policy.Validation(msg)
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range runes {
		switch {
		case unicode.IsSpace(r):
			return policy.Validation(msg)
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}

	if !hasUpper || !hasLower || !hasDigit || !hasSpecial {
		return policy.Validation(msg)
	}
	return nil
}
