package domain

// allowedTransitions centralizes the status graph. Every status may move to
// every other status, including reopening a Resolved or Closed fault;
// tightening the policy later only means editing this table.
var allowedTransitions = map[FaultStatus][]FaultStatus{
	FaultStatusOpen:       {FaultStatusInProgress, FaultStatusResolved, FaultStatusClosed},
	FaultStatusInProgress: {FaultStatusOpen, FaultStatusResolved, FaultStatusClosed},
	FaultStatusResolved:   {FaultStatusOpen, FaultStatusInProgress, FaultStatusClosed},
	FaultStatusClosed:     {FaultStatusOpen, FaultStatusInProgress, FaultStatusResolved},
}

// ValidStatus reports whether s is a known fault status.
func ValidStatus(s FaultStatus) bool {
	_, ok := allowedTransitions[s]
	return ok
}

// CanTransition reports whether moving from current to next is allowed.
func CanTransition(current, next FaultStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a status freezes pending hours and severity.
func IsTerminal(s FaultStatus) bool {
	return s == FaultStatusResolved || s == FaultStatusClosed
}
