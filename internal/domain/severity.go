package domain

import (
	"math"
	"time"
)

// Severity is the ordinal urgency label derived from pending hours.
type Severity string

const (
	SeverityLow      Severity = "Low"
	SeverityMedium   Severity = "Medium"
	SeverityHigh     Severity = "High"
	SeverityCritical Severity = "Critical"
)

// ClassifySeverity maps elapsed pending hours onto a severity label.
// Intervals are half-open with an inclusive lower bound; negative input is
// clamped to zero rather than rejected.
func ClassifySeverity(pendingHours float64) Severity {
	if pendingHours < 0 {
		pendingHours = 0
	}
	switch {
	case pendingHours < 4:
		return SeverityLow
	case pendingHours < 12:
		return SeverityMedium
	case pendingHours < 24:
		return SeverityHigh
	default:
		return SeverityCritical
	}
}

// PendingHoursSince returns the elapsed hours between from and now, rounded
// to one decimal place.
func PendingHoursSince(from, now time.Time) float64 {
	hours := now.Sub(from).Hours()
	if hours < 0 {
		hours = 0
	}
	return math.Round(hours*10) / 10
}
