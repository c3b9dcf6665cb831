package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/noc-fault-service/internal/api/dto"
	"github.com/spec-kit/noc-fault-service/internal/domain"
	"github.com/spec-kit/noc-fault-service/internal/service"
	apperrors "github.com/spec-kit/noc-fault-service/pkg/util"
)

// CustomersHandler manages customer endpoints.
type CustomersHandler struct {
	directory *service.DirectoryService
}

// NewCustomersHandler constructs handler.
func NewCustomersHandler(directory *service.DirectoryService) *CustomersHandler {
	return &CustomersHandler{directory: directory}
}

// ListCustomers GET /customers.
func (h *CustomersHandler) ListCustomers(c *fiber.Ctx) error {
	customers, err := h.directory.ListCustomers(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		items = append(items, customerResponse(&customers[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateCustomer POST /customers.
func (h *CustomersHandler) CreateCustomer(c *fiber.Ctx) error {
	var req dto.CreateCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	customer, err := h.directory.CreateCustomer(c.UserContext(), &domain.Customer{
		Company:    req.Company,
		CircuitID:  req.CircuitID,
		Type:       req.Type,
		Location:   req.Location,
		IPAddress:  req.IPAddress,
		PopSite:    req.PopSite,
		Email:      req.Email,
		SwitchInfo: req.SwitchInfo,
		Owner:      req.Owner,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": customerResponse(customer)})
}
