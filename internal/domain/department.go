package domain

import "time"

// Department represents a NOC department that faults are routed to.
type Department struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
