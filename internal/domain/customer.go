package domain

import "time"

// Customer represents a circuit-owning customer account. Company and circuit
// id are the attributes faults are searched by.
type Customer struct {
	ID         string
	Company    string
	CircuitID  string
	Type       string
	Location   string
	IPAddress  string
	PopSite    string
	Email      string
	SwitchInfo string
	Owner      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
