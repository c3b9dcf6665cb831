package domain

import "time"

// FaultHistory is an immutable audit record of one status transition.
// Exactly one row exists per status-changing update; edits that leave the
// status untouched write nothing here.
type FaultHistory struct {
	ID             string
	FaultID        string
	PreviousStatus FaultStatus
	NewStatus      FaultStatus
	ActorID        string
	ActorName      string
	Note           string
	CreatedAt      time.Time
}
