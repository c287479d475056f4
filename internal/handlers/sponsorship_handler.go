package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/watotocare/sponsorship-backend/internal/dto"
	"github.com/watotocare/sponsorship-backend/internal/policy"
	"github.com/watotocare/sponsorship-backend/internal/services"
)

type SponsorshipHandler struct {
	db                 *gorm.DB
	sponsorshipService *services.SponsorshipService
}

func NewSponsorshipHandler(db *gorm.DB, sponsorshipService *services.SponsorshipService) *SponsorshipHandler {
	return &SponsorshipHandler{db: db, sponsorshipService: sponsorshipService}
}

func (h *SponsorshipHandler) Create(c *fiber.Ctx) error {
	principal, err := policy.Resolve(h.db, c)
	if err != nil {
		return respondError(c, err)
	}

	var req dto.CreateSponsorshipRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.SponsorID == uuid.Nil || req.ChildID == uuid.Nil {
		return badRequest(c, "sponsor_id and child_id are required")
	}

	sponsorship, err := h.sponsorshipService.Create(principal, req)
	if err != nil {
		return respondError(c, err)
	}

	c.Set("Location", "/sponsorships/"+sponsorship.ID.String())
	return respond(c, fiber.StatusCreated, "Sponsorship added successfully",
		dto.NewSponsorshipResponse(sponsorship))
}

// SponsoredChildren lists the children a given sponsor supports.
func (h *SponsorshipHandler) SponsoredChildren(c *fiber.Ctx) error {
	principal, err := policy.Resolve(h.db, c)
	if err != nil {
		return respondError(c, err)
	}

	sponsorID, err := parseID(c, "sponsor_id")
	if err != nil {
		return respondError(c, err)
	}

	page, err := h.sponsorshipService.SponsoredChildren(principal, sponsorID, pageParams(c))
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

// SponsorOfChild returns the sponsor linked to the child in the query.
func (h *SponsorshipHandler) SponsorOfChild(c *fiber.Ctx) error {
	principal, err := policy.Resolve(h.db, c)
	if err != nil {
		return respondError(c, err)
	}

	childID, err := parseOptionalID(c, "child_id")
	if err != nil {
		return respondError(c, err)
	}
	if childID == nil {
		return badRequest(c, "child_id is required")
	}

	sponsor, err := h.sponsorshipService.SponsorOfChild(principal, *childID)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Sponsor retrieved successfully", dto.NewUserResponse(sponsor))
}

func (h *SponsorshipHandler) Update(c *fiber.Ctx) error {
	principal, err := policy.Resolve(h.db, c)
	if err != nil {
		return respondError(c, err)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var patch dto.SponsorshipPatch
	if err := c.BodyParser(&patch); err != nil {
		return badRequest(c, "Invalid request body")
	}

	sponsorship, err := h.sponsorshipService.Update(principal, id, patch)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Sponsorship updated successfully",
		dto.NewSponsorshipResponse(sponsorship))
}

func (h *SponsorshipHandler) Delete(c *fiber.Ctx) error {
	principal, err := policy.Resolve(h.db, c)
	if err != nil {
		return respondError(c, err)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.sponsorshipService.Delete(principal, id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
