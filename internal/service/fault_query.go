package service

import (
	"strings"

	"github.com/spec-kit/noc-fault-service/internal/domain"
	"github.com/spec-kit/noc-fault-service/internal/repository"
)

// FilterAll is the sentinel criteria value that imposes no constraint.
const FilterAll = "all"

// FaultSearchCriteria captures the listing and export filter parameters as
// they arrive from the client.
type FaultSearchCriteria struct {
	Status       string
	DepartmentID string
	Severity     string
	SearchText   string
}

// ComposeFaultFilter builds the predicate description shared by the listing
// and export paths. Exact-match constraints are added for non-sentinel
// status, department and severity values; a non-empty search text adds the
// OR clause over ticket number, description, type and the customer ids the
// text resolved to. Empty search text means no search, which is distinct
// from a search that matched no customers.
func ComposeFaultFilter(criteria FaultSearchCriteria, customerIDs []string) repository.FaultFilter {
	filter := repository.FaultFilter{}

	if constrained(criteria.Status) {
		status := domain.FaultStatus(criteria.Status)
		filter.Status = &status
	}
	if constrained(criteria.DepartmentID) {
		dept := criteria.DepartmentID
		filter.DepartmentID = &dept
	}
	if constrained(criteria.Severity) {
		severity := domain.Severity(criteria.Severity)
		filter.Severity = &severity
	}
	if search := strings.TrimSpace(criteria.SearchText); search != "" {
		filter.SearchText = search
		filter.CustomerIDs = customerIDs
	}
	return filter
}

func constrained(value string) bool {
	value = strings.TrimSpace(value)
	return value != "" && value != FilterAll
}
