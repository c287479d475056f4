package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/watotocare/sponsorship-backend/internal/config"
	"github.com/watotocare/sponsorship-backend/internal/handlers"
	"github.com/watotocare/sponsorship-backend/internal/middleware"
)

type Handlers struct {
	Auth        *handlers.AuthHandler
	Health      *handlers.HealthHandler
	User        *handlers.UserHandler
	Sponsorship *handlers.SponsorshipHandler
	Payment     *handlers.PaymentHandler
	Report      *handlers.ReportHandler
	Sponsor     *handlers.SponsorHandler
	Admin       *handlers.AdminHandler
}

func Setup(app *fiber.App, cfg *config.Config, h Handlers) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", h.Health.Check)

	// Auth is public, with a stricter per-IP limit on login attempts
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/login", h.Auth.Login)
	api.Post("/auth/logout", middleware.JWTProtected(cfg), h.Auth.Logout)

	// Everything below requires a valid token; role checks happen in the
	// services against the principal's DB row.
	protected := api.Group("", middleware.JWTProtected(cfg))

	users := protected.Group("/users")
	users.Post("", h.User.Create)
	users.Get("", h.User.List)
	users.Get("/me", h.User.Me)
	users.Get("/:id", h.User.Get)
	users.Put("/:id", h.User.Update)
	users.Delete("/:id", h.User.Delete)

	sponsorships := protected.Group("/sponsorships")
	sponsorships.Post("", h.Sponsorship.Create)
	sponsorships.Get("", h.Sponsorship.SponsorOfChild)
	sponsorships.Get("/:sponsor_id", h.Sponsorship.SponsoredChildren)
	sponsorships.Patch("/:id", h.Sponsorship.Update)
	sponsorships.Delete("/:id", h.Sponsorship.Delete)

	payments := protected.Group("/payments")
	payments.Post("", h.Payment.Create)
	payments.Get("", h.Payment.List)
	payments.Get("/:id", h.Payment.Get)
	payments.Patch("/:id", h.Payment.Update)
	payments.Delete("/:id", h.Payment.Delete)

	reports := protected.Group("/reports")
	reports.Post("", h.Report.Create)
	reports.Get("", h.Report.List)
	reports.Patch("/:id/read", h.Report.MarkRead)
	reports.Patch("/:id", h.Report.Update)
	reports.Delete("/:id", h.Report.Delete)

	sponsors := protected.Group("/sponsors")
	sponsors.Get("/children", h.Sponsor.Children)
	sponsors.Get("/children/:id", h.Sponsor.ChildDetail)
	sponsors.Get("/payments", h.Sponsor.Payments)
	sponsors.Get("/reports", h.Sponsor.Reports)
	sponsors.Get("/reports/:id", h.Sponsor.Report)

	admin := protected.Group("/admin")
	admin.Get("/dashboard", h.Admin.Dashboard)
	admin.Get("/sponsors", h.Admin.Sponsors)
	admin.Get("/children", h.Admin.Children)
	admin.Get("/payments", h.Admin.Payments)
	admin.Get("/sponsorships", h.Admin.Sponsorships)
	admin.Get("/child-reports", h.Admin.Reports)
}
