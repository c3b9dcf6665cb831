package domain

import "time"

// FaultStatus enumerates lifecycle states for faults.
type FaultStatus string

const (
	FaultStatusOpen       FaultStatus = "Open"
	FaultStatusInProgress FaultStatus = "In Progress"
	FaultStatusResolved   FaultStatus = "Resolved"
	FaultStatusClosed     FaultStatus = "Closed"
)

// Fault is the aggregate for a logged network issue.
type Fault struct {
	ID           string
	TicketNumber string
	Description  string
	Type         string
	Location     string
	Owner        string
	Severity     Severity
	Status       FaultStatus
	PendingHours float64
	CustomerID   string
	DepartmentID string
	ResolvedAt   *time.Time
	ClosedAt     *time.Time
	ResolvedByID *string
	ClosedByID   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsLive reports whether pending hours and severity are still recomputed on
// every read. Resolved and Closed faults keep the values frozen at transition.
func (f *Fault) IsLive() bool {
	return f.Status == FaultStatusOpen || f.Status == FaultStatusInProgress
}
