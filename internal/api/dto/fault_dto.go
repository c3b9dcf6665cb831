package dto

import (
	"time"

	"github.com/spec-kit/noc-fault-service/internal/domain"
)

// CreateFaultRequest payload.
type CreateFaultRequest struct {
	Description  string  `json:"description"`
	Type         string  `json:"type"`
	Location     string  `json:"location"`
	Owner        string  `json:"owner"`
	Status       string  `json:"status"`
	PendingHours float64 `json:"pending_hours"`
	CustomerID   string  `json:"customer_id"`
	DepartmentID string  `json:"assigned_to_id"`
}

// UpdateFaultRequest payload. Patch fields distinguish absent keys from
// explicit nulls, so optional text fields can be cleared.
type UpdateFaultRequest struct {
	Description  domain.Patch[string]  `json:"description"`
	Type         domain.Patch[string]  `json:"type"`
	Location     domain.Patch[string]  `json:"location"`
	Owner        domain.Patch[string]  `json:"owner"`
	Status       domain.Patch[string]  `json:"status"`
	PendingHours domain.Patch[float64] `json:"pending_hours"`
	CustomerID   domain.Patch[string]  `json:"customer_id"`
	DepartmentID domain.Patch[string]  `json:"assigned_to_id"`
	Note         string                `json:"note"`
}

// CreateNoteRequest payload.
type CreateNoteRequest struct {
	Content string `json:"content"`
}

// FaultResponse is the canonical fault rendering.
type FaultResponse struct {
	ID           string     `json:"id"`
	TicketNumber string     `json:"ticket_number"`
	Description  string     `json:"description"`
	Type         string     `json:"type"`
	Location     string     `json:"location"`
	Owner        string     `json:"owner"`
	Severity     string     `json:"severity"`
	Status       string     `json:"status"`
	PendingHours float64    `json:"pending_hours"`
	CustomerID   string     `json:"customer_id"`
	DepartmentID string     `json:"assigned_to_id"`
	ResolvedAt   *time.Time `json:"resolved_at"`
	ClosedAt     *time.Time `json:"closed_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// FaultDetailResponse nests display collaborators.
type FaultDetailResponse struct {
	FaultResponse
	Customer       *CustomerResponse   `json:"customer,omitempty"`
	Department     *DepartmentResponse `json:"department,omitempty"`
	Notes          []NoteResponse      `json:"notes"`
	ResolvedByName string              `json:"resolved_by,omitempty"`
	ClosedByName   string              `json:"closed_by,omitempty"`
}

// NoteResponse renders a fault note.
type NoteResponse struct {
	ID           string    `json:"id"`
	FaultID      string    `json:"fault_id"`
	Content      string    `json:"content"`
	AuthorID     string    `json:"author_id"`
	AuthorName   string    `json:"author_name"`
	DepartmentID *string   `json:"department_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// HistoryResponse renders one transition record.
type HistoryResponse struct {
	ID             string    `json:"id"`
	PreviousStatus string    `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	ActorID        string    `json:"actor_id"`
	ActorName      string    `json:"actor_name"`
	Note           string    `json:"note,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// DepartmentResponse renders a department.
type DepartmentResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreateDepartmentRequest payload.
type CreateDepartmentRequest struct {
	Name string `json:"name"`
}
