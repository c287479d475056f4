package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/watotocare/sponsorship-backend/internal/dto"
	"github.com/watotocare/sponsorship-backend/internal/policy"
	"github.com/watotocare/sponsorship-backend/internal/services"
)

type PaymentHandler struct {
	db             *gorm.DB
	paymentService *services.PaymentService
}

func NewPaymentHandler(db *gorm.DB, paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{db: db, paymentService: paymentService}
}

func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	principal, err := policy.Resolve(h.db, c)
	if err != nil {
		return respondError(c, err)
	}

	var req dto.CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.SponsorID == uuid.Nil || req.ChildID == uuid.Nil {
		return badRequest(c, "sponsor_id and child_id are required")
	}

	payment, err := h.paymentService.Create(principal, req)
	if err != nil {
		return respondError(c, err)
	}

	c.Set("Location", "/payments/"+payment.ID.String())
	return respond(c, fiber.StatusCreated, "Payment recorded successfully",
		dto.NewPaymentResponse(payment))
}

func (h *PaymentHandler) List(c *fiber.Ctx) error {
	principal, err := policy.Resolve(h.db, c)
	if err != nil {
		return respondError(c, err)
	}

	sponsorID, err := parseOptionalID(c, "sponsor_id")
	if err != nil {
		return respondError(c, err)
	}
	childID, err := parseOptionalID(c, "child_id")
	if err != nil {
		return respondError(c, err)
	}

	page, err := h.paymentService.List(principal, sponsorID, childID, pageParams(c))
	if err != nil {
		return respondError(c, err)
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

func (h *PaymentHandler) Get(c *fiber.Ctx) error {
	principal, err := policy.Resolve(h.db, c)
	if err != nil {
		return respondError(c, err)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	detail, err := h.paymentService.Get(principal, id)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Payment retrieved successfully", detail)
}

func (h *PaymentHandler) Update(c *fiber.Ctx) error {
	principal, err := policy.Resolve(h.db, c)
	if err != nil {
		return respondError(c, err)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var patch dto.PaymentPatch
	if err := c.BodyParser(&patch); err != nil {
		return badRequest(c, "Invalid request body")
	}

	payment, err := h.paymentService.Update(principal, id, patch)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "Payment updated successfully",
		dto.NewPaymentResponse(payment))
}

func (h *PaymentHandler) Delete(c *fiber.Ctx) error {
	principal, err := policy.Resolve(h.db, c)
	if err != nil {
		return respondError(c, err)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.paymentService.Delete(principal, id); err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK,
		fmt.Sprintf("Payment with ID %s has been deleted successfully", id), nil)
}
