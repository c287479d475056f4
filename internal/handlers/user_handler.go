package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/watotocare/sponsorship-backend/internal/dto"
	"github.com/watotocare/sponsorship-backend/internal/policy"
	"github.com/watotocare/sponsorship-backend/internal/services"
)

type UserHandler struct {
	db          *gorm.DB
	userService *services.UserService
}

func NewUserHandler(db *gorm.DB, userService *services.UserService) *UserHandler {
	return &UserHandler{db: db, userService: userService}
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	principal, err := policy.Resolve(h.db, c)
	if err != nil {
		return respondError(c, err)
	}

	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.userService.Create(principal, req)
	if err != nil {
		return respondError(c, err)
	}

	c.Set("Location", "/users/"+user.ID.String())
	return respond(c, fiber.StatusCreated, "User successfully registered", dto.NewUserResponse(user))
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	principal, err := policy.Resolve(h.db, c)
	if err != nil {
		return respondError(c, err)
	}

	filters := services.UserFilters{
		FirstName: c.Query("first_name"),
		LastName:  c.Query("last_name"),
		Role:      c.Query("role"),
		Gender:    c.Query("gender"),
	}

	resp, err := h.userService.List(principal, filters, pageParams(c))
	if err != nil {
		return respondError(c, err)
	}

	message := "Users retrieved successfully"
	if resp.TotalPages == 0 {
		message = "No users found"
	}
	return respond(c, fiber.StatusOK, message, resp)
}

func (h *UserHandler) Me(c *fiber.Ctx) error {
	principal, err := policy.Resolve(h.db, c)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "User profile retrieved successfully", dto.NewUserResponse(principal))
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	principal, err := policy.Resolve(h.db, c)
	if err != nil {
		return respondError(c, err)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	user, err := h.userService.Get(principal, id)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "User profile retrieved successfully", dto.NewUserResponse(user))
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	principal, err := policy.Resolve(h.db, c)
	if err != nil {
		return respondError(c, err)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var patch dto.UserPatch
	if err := c.BodyParser(&patch); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.userService.Update(principal, id, patch)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK, "User updated successfully", dto.NewUserResponse(user))
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	principal, err := policy.Resolve(h.db, c)
	if err != nil {
		return respondError(c, err)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.userService.Delete(principal, id); err != nil {
		return respondError(c, err)
	}
	return respond(c, fiber.StatusOK,
		fmt.Sprintf("User with ID %s has been deleted successfully", id), nil)
}
