package events

import (
	"time"

	"github.com/spec-kit/noc-fault-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventFaultCreated       EventType = "fault_created"
	EventFaultStatusChanged EventType = "fault_status_changed"
	EventFaultNoteAdded     EventType = "fault_note_added"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string       `json:"id"`
	Type      EventType    `json:"type"`
	FaultID   string       `json:"fault_id"`
	Actor     domain.Actor `json:"actor"`
	Timestamp time.Time    `json:"timestamp"`
	Payload   interface{}  `json:"payload"`
}

// FaultCreatedPayload payload.
type FaultCreatedPayload struct {
	TicketNumber string             `json:"ticket_number"`
	DepartmentID string             `json:"department_id"`
	CustomerID   string             `json:"customer_id"`
	Severity     domain.Severity    `json:"severity"`
	Status       domain.FaultStatus `json:"status"`
}

// FaultStatusChangedPayload payload.
type FaultStatusChangedPayload struct {
	PreviousStatus domain.FaultStatus `json:"previous_status"`
	NewStatus      domain.FaultStatus `json:"new_status"`
	Severity       domain.Severity    `json:"severity"`
	PendingHours   float64            `json:"pending_hours"`
	Note           string             `json:"note,omitempty"`
}

// FaultNoteAddedPayload payload.
type FaultNoteAddedPayload struct {
	NoteID         string `json:"note_id"`
	ContentPreview string `json:"content_preview"`
}
