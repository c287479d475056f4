package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/watotocare/sponsorship-backend/internal/dto"
	"github.com/watotocare/sponsorship-backend/internal/pagination"
	"github.com/watotocare/sponsorship-backend/internal/policy"
)

// respondError maps a service error onto its HTTP status. Non-policy errors
// are internal failures: logged with detail, reported without it.
func respondError(c *fiber.Ctx, err error) error {
	status := policy.Status(err)
	if status == fiber.StatusInternalServerError {
		slog.Error("request failed",
			"method", c.Method(),
			"path", c.Path(),
			"error", err.Error(),
		)
		return c.Status(status).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	return c.Status(status).JSON(dto.ErrorResponse{
		Error: true, Message: err.Error(),
	})
}

func respond(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(dto.Envelope{Message: message, Data: data})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}

// parseID reads a UUID path parameter.
func parseID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, policy.Validation("Invalid " + name)
	}
	return id, nil
}

// parseOptionalID reads a UUID query parameter, nil when absent.
func parseOptionalID(c *fiber.Ctx, name string) (*uuid.UUID, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, policy.Validation("Invalid " + name)
	}
	return &id, nil
}

func pageParams(c *fiber.Ctx) pagination.Params {
	return pagination.Params{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", pagination.DefaultPageSize),
	}.Normalize()
}
