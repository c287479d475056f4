package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/watotocare/sponsorship-backend/internal/dto"
	"github.com/watotocare/sponsorship-backend/internal/policy"
	"github.com/watotocare/sponsorship-backend/internal/services"
)

type ReportHandler struct {
	db            *gorm.DB
	reportService *services.ReportService
}

func NewReportHandler(db *gorm.DB, reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{db: db, reportService: reportService}
}

func (h *ReportHandler) Create(c *fiber.Ctx) error {
	principal, err := policy.Resolve(h.db, c)
	if err != nil {
		return respondError(c, err)
	}

	var req dto.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.ChildID == uuid.Nil {
		return badRequest(c, "child_id is required")
	}

	report, err := h.reportService.Create(principal, req)
	if err != nil {
		return respondError(c, err)
	}

	c.Set("Location", "/reports/"+report.ID.String())
	return respond(c, fiber.StatusCreated, "Child report created successfully",
		dto.NewReportResponse(report))
}

func (h *ReportHandler) List(c *fiber.Ctx) error {
	principal, err := policy.Resolve(h.db, c)
	if err != nil {
		return respondError(c, err)
	}

	childID, err := parseOptionalID(c, "child_id")
	if err != nil {
		return respondError(c, err)
	}
	sponsorID, err := parseOptionalID(c, "sponsor_id")
	if err != nil {
		return respondError(c, err)
	}

	page, err := h.reportService.List(principal, childID, sponsorID, pageParams(c))
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

func (h *ReportHandler) Update(c *fiber.Ctx) error {
	principal, err := policy.Resolve(h.db, c)
	if err != nil {
		return respondError(c, err)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var patch dto.ReportPatch
	if err := c.BodyParser(&patch); err != nil {
		return badRequest(c, "Invalid request body")
	}

	report, err := h.reportService.Update(principal, id, patch)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Report updated successfully", dto.NewReportResponse(report))
}

func (h *ReportHandler) Delete(c *fiber.Ctx) error {
	principal, err := policy.Resolve(h.db, c)
	if err != nil {
		return respondError(c, err)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.reportService.Delete(principal, id); err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Report deleted successfully", fiber.Map{"report_id": id})
}

func (h *ReportHandler) MarkRead(c *fiber.Ctx) error {
	principal, err := policy.Resolve(h.db, c)
	if err != nil {
		return respondError(c, err)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	report, err := h.reportService.MarkRead(principal, id)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Report marked as read successfully",
		dto.NewReportResponse(report))
}
