package domain

import "time"

// FaultNote is a free-text annotation on a fault, separate from the
// transition history. The author's department is captured at authorship time.
type FaultNote struct {
	ID           string
	FaultID      string
	Content      string
	AuthorID     string
	AuthorName   string
	DepartmentID *string
	CreatedAt    time.Time
}
