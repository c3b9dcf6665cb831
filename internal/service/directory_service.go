package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/noc-fault-service/internal/domain"
	"github.com/spec-kit/noc-fault-service/internal/repository"
	apperrors "github.com/spec-kit/noc-fault-service/pkg/util"
)

// DirectoryService manages the reference entities faults point at:
// departments, customers and user accounts.
type DirectoryService struct {
	departments repository.DepartmentRepository
	customers   repository.CustomerRepository
	users       repository.UserRepository
}

// NewDirectoryService constructs the service.
func NewDirectoryService(departments repository.DepartmentRepository, customers repository.CustomerRepository, users repository.UserRepository) *DirectoryService {
	return &DirectoryService{departments: departments, customers: customers, users: users}
}

// ListDepartments returns all departments ordered by name.
func (s *DirectoryService) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	return s.departments.List(ctx)
}

// CreateDepartment creates a department.
func (s *DirectoryService) CreateDepartment(ctx context.Context, name string) (*domain.Department, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.NewValidationError("department name is required", nil)
	}
	dept := &domain.Department{Name: strings.TrimSpace(name)}
	if err := s.departments.Create(ctx, dept); err != nil {
		return nil, err
	}
	return dept, nil
}

// ListCustomers returns all customers ordered by company.
func (s *DirectoryService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.customers.List(ctx)
}

// CreateCustomer creates a customer account.
func (s *DirectoryService) CreateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if strings.TrimSpace(customer.Company) == "" || strings.TrimSpace(customer.CircuitID) == "" {
		return nil, apperrors.NewValidationError("company and circuit id are required", nil)
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// ListUsers returns all accounts, newest first.
func (s *DirectoryService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// GetUser loads one account by id.
func (s *DirectoryService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return nil, err
	}
	return user, nil
}
