package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/noc-fault-service/internal/api/dto"
	"github.com/spec-kit/noc-fault-service/internal/domain"
	"github.com/spec-kit/noc-fault-service/internal/service"
	apperrors "github.com/spec-kit/noc-fault-service/pkg/util"
)

// UsersHandler manages authentication and account administration.
type UsersHandler struct {
	auth      *service.AuthService
	directory *service.DirectoryService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService, directory *service.DirectoryService) *UsersHandler {
	return &UsersHandler{auth: authService, directory: directory}
}

// Login POST /auth/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	user, token, exp, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.LoginResponse{
		Token:     token,
		ExpiresAt: exp,
		User:      userResponse(user),
	})
}

// Register POST /auth/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	user, err := h.auth.Register(c.UserContext(), req.Username, req.Email, req.Password, domain.UserRole(req.Role), req.DepartmentID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": userResponse(user)})
}

// CreateUser POST /users (admin).
func (h *UsersHandler) CreateUser(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	user, err := h.auth.Register(c.UserContext(), req.Username, req.Email, req.Password, domain.UserRole(req.Role), req.DepartmentID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": userResponse(user)})
}

// ListUsers GET /users (admin).
func (h *UsersHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.directory.ListUsers(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, userResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetUser GET /users/:id (admin).
func (h *UsersHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.directory.GetUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(user)})
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		Role:         string(user.Role),
		DepartmentID: user.DepartmentID,
		CreatedAt:    user.CreatedAt,
	}
}
