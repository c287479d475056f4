package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/watotocare/sponsorship-backend/internal/dto"
	"github.com/watotocare/sponsorship-backend/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
	tokenTTL    time.Duration
}

func NewAuthHandler(authService *services.AuthService, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, tokenTTL: tokenTTL}
}

// Login authenticates by username and password. The token is returned in the
// body and also set as an HTTP-only cookie for browser clients.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Username == "" || req.Password == "" {
		return badRequest(c, "Username and password are required")
	}

	resp, err := h.authService.Login(req)
	if err != nil {
		return respondError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    resp.AccessToken,
		Expires:  time.Now().Add(h.tokenTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return respond(c, fiber.StatusCreated, "Login successful", resp)
}

// Logout clears the access token cookie.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return respond(c, fiber.StatusOK, "Logged out successfully", nil)
}
