package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/noc-fault-service/internal/api/dto"
	"github.com/spec-kit/noc-fault-service/internal/service"
	apperrors "github.com/spec-kit/noc-fault-service/pkg/util"
)

// DepartmentsHandler manages department endpoints.
type DepartmentsHandler struct {
	directory *service.DirectoryService
}

// NewDepartmentsHandler constructs handler.
func NewDepartmentsHandler(directory *service.DirectoryService) *DepartmentsHandler {
	return &DepartmentsHandler{directory: directory}
}

// ListDepartments GET /departments.
func (h *DepartmentsHandler) ListDepartments(c *fiber.Ctx) error {
	departments, err := h.directory.ListDepartments(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.DepartmentResponse, 0, len(departments))
	for _, dept := range departments {
		items = append(items, dto.DepartmentResponse{ID: dept.ID, Name: dept.Name})
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateDepartment POST /departments (admin).
func (h *DepartmentsHandler) CreateDepartment(c *fiber.Ctx) error {
	var req dto.CreateDepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	dept, err := h.directory.CreateDepartment(c.UserContext(), req.Name)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.DepartmentResponse{ID: dept.ID, Name: dept.Name}})
}
