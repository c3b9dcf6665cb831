package repository

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/noc-fault-service/internal/domain"
)

func TestBuildFaultQueryNoFilter(t *testing.T) {
	query, args := buildFaultQuery(FaultFilter{})

	assert.Contains(t, query, "FROM faults")
	assert.Contains(t, query, "WHERE 1=1")
	assert.Contains(t, query, "ORDER BY created_at DESC")
	assert.NotContains(t, query, "LIMIT")
	assert.Empty(t, args)
}

func TestBuildFaultQueryExactMatches(t *testing.T) {
	status := domain.FaultStatusOpen
	dept := "dept-noc"
	severity := domain.SeverityCritical

	query, args := buildFaultQuery(FaultFilter{
		Status:       &status,
		DepartmentID: &dept,
		Severity:     &severity,
	})

	assert.Contains(t, query, "status=$1")
	assert.Contains(t, query, "assigned_to_id=$2")
	assert.Contains(t, query, "severity=$3")
	assert.Equal(t, []any{status, dept, severity}, args)
}

func TestBuildFaultQuerySearch(t *testing.T) {
	query, args := buildFaultQuery(FaultFilter{SearchText: "  Fiber  "})

	assert.Contains(t, query, "LOWER(ticket_number) LIKE $1")
	assert.Contains(t, query, "LOWER(description) LIKE $1")
	assert.Contains(t, query, "LOWER(type) LIKE $1")
	assert.NotContains(t, query, "customer_id IN")
	// The search pattern is trimmed, lowercased and wrapped for contains.
	assert.Equal(t, []any{"%fiber%"}, args)
}

func TestBuildFaultQuerySearchWithCustomers(t *testing.T) {
	query, args := buildFaultQuery(FaultFilter{
		SearchText:  "acme",
		CustomerIDs: []string{"cust-1", "cust-2"},
	})

	assert.Contains(t, query, "customer_id IN ($2,$3)")
	assert.Equal(t, []any{"%acme%", "cust-1", "cust-2"}, args)

	// All search alternatives live in one parenthesized OR group.
	start := strings.Index(query, "(LOWER(ticket_number)")
	require.Positive(t, start)
	end := strings.Index(query[start:], "))")
	require.Positive(t, end)
	group := query[start : start+end+2]
	assert.Equal(t, 3, strings.Count(group, " OR "))
}

func TestBuildFaultQueryPagination(t *testing.T) {
	query, _ := buildFaultQuery(FaultFilter{Limit: 50, Offset: 100})
	assert.True(t, strings.HasSuffix(query, "LIMIT 50 OFFSET 100"))

	query, _ = buildFaultQuery(FaultFilter{Limit: 50, Offset: -5})
	assert.True(t, strings.HasSuffix(query, "LIMIT 50 OFFSET 0"))
}
