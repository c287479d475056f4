package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/watotocare/sponsorship-backend/internal/dto"
	"github.com/watotocare/sponsorship-backend/internal/policy"
	"github.com/watotocare/sponsorship-backend/internal/services"
)

type AdminHandler struct {
	db           *gorm.DB
	adminService *services.AdminService
}

func NewAdminHandler(db *gorm.DB, adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{db: db, adminService: adminService}
}

func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	principal, err := policy.Resolve(h.db, c)
	if err != nil {
		return respondError(c, err)
	}

	stats, err := h.adminService.Dashboard(principal)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Admin dashboard statistics retrieved successfully", stats)
}

func (h *AdminHandler) Sponsors(c *fiber.Ctx) error {
	principal, err := policy.Resolve(h.db, c)
	if err != nil {
		return respondError(c, err)
	}

	page, err := h.adminService.Sponsors(principal, pageParams(c))
	if err != nil {
		return respondError(c, err)
	}
	if len(page.Items) == 0 {
		return respond(c, fiber.StatusOK, "No sponsors found", []dto.UserResponse{})
	}

	sponsors := make([]dto.UserResponse, 0, len(page.Items))
	for i := range page.Items {
		sponsors = append(sponsors, dto.NewUserResponse(&page.Items[i]))
	}

	return respond(c, fiber.StatusOK, "Sponsors retrieved successfully", fiber.Map{
		"page":           page.Page,
		"page_size":      page.PageSize,
		"total_sponsors": page.TotalCount,
		"total_pages":    page.TotalPages,
		"sponsors":       sponsors,
	})
}

func (h *AdminHandler) Children(c *fiber.Ctx) error {
	principal, err := policy.Resolve(h.db, c)
	if err != nil {
		return respondError(c, err)
	}

	page, err := h.adminService.Children(principal, pageParams(c))
	if err != nil {
		return respondError(c, err)
	}
	if len(page.Items) == 0 {
		return respond(c, fiber.StatusOK, "No children found", []dto.UserResponse{})
	}

	children := make([]dto.UserResponse, 0, len(page.Items))
	for i := range page.Items {
		children = append(children, dto.NewUserResponse(&page.Items[i]))
	}

	return respond(c, fiber.StatusOK, "Children retrieved successfully", fiber.Map{
		"page":           page.Page,
		"page_size":      page.PageSize,
		"total_children": page.TotalCount,
		"total_pages":    page.TotalPages,
		"children":       children,
	})
}

func (h *AdminHandler) Payments(c *fiber.Ctx) error {
	principal, err := policy.Resolve(h.db, c)
	if err != nil {
		return respondError(c, err)
	}

	page, err := h.adminService.Payments(principal, pageParams(c))
	if err != nil {
		return respondError(c, err)
	}
	if len(page.Items) == 0 {
		return respond(c, fiber.StatusOK, "No payments found", []dto.PaymentResponse{})
	}

	payments := make([]dto.PaymentResponse, 0, len(page.Items))
	for i := range page.Items {
		payments = append(payments, dto.NewPaymentResponse(&page.Items[i]))
	}

	return respond(c, fiber.StatusOK, "Payments retrieved successfully", fiber.Map{
		"page":           page.Page,
		"page_size":      page.PageSize,
		"total_payments": page.TotalCount,
		"total_pages":    page.TotalPages,
		"payments":       payments,
	})
}

func (h *AdminHandler) Sponsorships(c *fiber.Ctx) error {
	principal, err := policy.Resolve(h.db, c)
	if err != nil {
		return respondError(c, err)
	}

	page, err := h.adminService.Sponsorships(principal, pageParams(c))
	if err != nil {
		return respondError(c, err)
	}
	if len(page.Items) == 0 {
		return respond(c, fiber.StatusOK, "No sponsorships found", []dto.SponsorshipResponse{})
	}

	sponsorships := make([]dto.SponsorshipResponse, 0, len(page.Items))
	for i := range page.Items {
		sponsorships = append(sponsorships, dto.NewSponsorshipResponse(&page.Items[i]))
	}

	return respond(c, fiber.StatusOK, "Sponsorships retrieved successfully", fiber.Map{
		"page":               page.Page,
		"page_size":          page.PageSize,
		"total_sponsorships": page.TotalCount,
		"total_pages":        page.TotalPages,
		"sponsorships":       sponsorships,
	})
}

func (h *AdminHandler) Reports(c *fiber.Ctx) error {
	principal, err := policy.Resolve(h.db, c)
	if err != nil {
		return respondError(c, err)
	}

	page, err := h.adminService.Reports(principal, pageParams(c))
	if err != nil {
		return respondError(c, err)
	}
	if len(page.Items) == 0 {
		return respond(c, fiber.StatusOK, "No child reports found", []dto.ReportResponse{})
	}

	reports := make([]dto.ReportResponse, 0, len(page.Items))
	for i := range page.Items {
		reports = append(reports, dto.NewReportResponse(&page.Items[i]))
	}

	return respond(c, fiber.StatusOK, "Child reports retrieved successfully", fiber.Map{
		"page":                page.Page,
		"page_size":           page.PageSize,
		"total_child_reports": page.TotalCount,
		"total_pages":         page.TotalPages,
		"child_reports":       reports,
	})
}
