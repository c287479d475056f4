package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/watotocare/sponsorship-backend/internal/dto"
	"github.com/watotocare/sponsorship-backend/internal/policy"
	"github.com/watotocare/sponsorship-backend/internal/services"
)

// SponsorHandler serves the sponsor portal routes, all scoped to the
// logged-in sponsor.
type SponsorHandler struct {
	db             *gorm.DB
	sponsorService *services.SponsorService
}

func NewSponsorHandler(db *gorm.DB, sponsorService *services.SponsorService) *SponsorHandler {
	return &SponsorHandler{db: db, sponsorService: sponsorService}
}

func (h *SponsorHandler) Children(c *fiber.Ctx) error {
	principal, err := policy.Resolve(h.db, c)
	if err != nil {
		return respondError(c, err)
	}

	page, err := h.sponsorService.Children(principal, pageParams(c))
	if err != nil {
		return respondError(c, err)
	}

	children := make([]dto.UserResponse, 0, len(page.Items))
	for i := range page.Items {
		children = append(children, dto.NewUserResponse(&page.Items[i]))
	}

	return respond(c, fiber.StatusOK, "Sponsored children retrieved successfully", fiber.Map{
		"page":           page.Page,
		"page_size":      page.PageSize,
		"total_children": page.TotalCount,
		"total_pages":    page.TotalPages,
		"children":       children,
	})
}

func (h *SponsorHandler) ChildDetail(c *fiber.Ctx) error {
	principal, err := policy.Resolve(h.db, c)
	if err != nil {
		return respondError(c, err)
	}

	childID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	detail, err := h.sponsorService.ChildDetail(principal, childID)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Child details retrieved successfully", detail)
}

func (h *SponsorHandler) Payments(c *fiber.Ctx) error {
	principal, err := policy.Resolve(h.db, c)
	if err != nil {
		return respondError(c, err)
	}

	page, err := h.sponsorService.Payments(principal, pageParams(c))
	if err != nil {
		return respondError(c, err)
	}

	payments := make([]dto.PaymentResponse, 0, len(page.Items))
	for i := range page.Items {
		payments = append(payments, dto.NewPaymentResponse(&page.Items[i]))
	}

	return respond(c, fiber.StatusOK, "Sponsor payments retrieved successfully", fiber.Map{
		"page":           page.Page,
		"page_size":      page.PageSize,
		"total_payments": page.TotalCount,
		"total_pages":    page.TotalPages,
		"payments":       payments,
	})
}

func (h *SponsorHandler) Reports(c *fiber.Ctx) error {
	principal, err := policy.Resolve(h.db, c)
	if err != nil {
		return respondError(c, err)
	}

	page, err := h.sponsorService.Reports(principal, pageParams(c))
	if err != nil {
		return respondError(c, err)
	}

	reports := make([]dto.ReportResponse, 0, len(page.Items))
	for i := range page.Items {
		reports = append(reports, dto.NewReportResponse(&page.Items[i]))
	}

	return respond(c, fiber.StatusOK, "Reports retrieved successfully", fiber.Map{
		"page":          page.Page,
		"page_size":     page.PageSize,
		"total_reports": page.TotalCount,
		"total_pages":   page.TotalPages,
		"reports":       reports,
	})
}

func (h *SponsorHandler) Report(c *fiber.Ctx) error {
	principal, err := policy.Resolve(h.db, c)
	if err != nil {
		return respondError(c, err)
	}

	reportID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	report, err := h.sponsorService.Report(principal, reportID)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Report retrieved successfully", dto.NewReportResponse(report))
}
