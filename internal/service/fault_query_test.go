package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/noc-fault-service/internal/domain"
)

func TestComposeFaultFilterSentinels(t *testing.T) {
	filter := ComposeFaultFilter(FaultSearchCriteria{
		Status:       FilterAll,
		DepartmentID: FilterAll,
		Severity:     "",
	}, nil)

	assert.Nil(t, filter.Status)
	assert.Nil(t, filter.DepartmentID)
	assert.Nil(t, filter.Severity)
	assert.Empty(t, filter.SearchText)
}

func TestComposeFaultFilterExactMatch(t *testing.T) {
	filter := ComposeFaultFilter(FaultSearchCriteria{
		Status:       "Open",
		DepartmentID: "dept-noc",
		Severity:     "Critical",
	}, nil)

	require.NotNil(t, filter.Status)
	assert.Equal(t, domain.FaultStatusOpen, *filter.Status)
	require.NotNil(t, filter.DepartmentID)
	assert.Equal(t, "dept-noc", *filter.DepartmentID)
	require.NotNil(t, filter.Severity)
	assert.Equal(t, domain.SeverityCritical, *filter.Severity)
}

func TestComposeFaultFilterSearch(t *testing.T) {
	filter := ComposeFaultFilter(FaultSearchCriteria{SearchText: "  fiber  "}, []string{"cust-1", "cust-2"})
	assert.Equal(t, "fiber", filter.SearchText)
	assert.Equal(t, []string{"cust-1", "cust-2"}, filter.CustomerIDs)

	// A search that resolved no customers still searches the text columns.
	filter = ComposeFaultFilter(FaultSearchCriteria{SearchText: "fiber"}, nil)
	assert.Equal(t, "fiber", filter.SearchText)
	assert.Empty(t, filter.CustomerIDs)

	// Blank search text is no search at all; resolved ids are dropped.
	filter = ComposeFaultFilter(FaultSearchCriteria{SearchText: "   "}, []string{"cust-1"})
	assert.Empty(t, filter.SearchText)
	assert.Empty(t, filter.CustomerIDs)
}
