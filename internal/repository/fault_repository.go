package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/noc-fault-service/internal/domain"
)

// FaultFilter is the predicate description the query composer produces. The
// listing and export paths both translate it here, so their filter semantics
// cannot drift apart.
type FaultFilter struct {
	Status       *domain.FaultStatus
	DepartmentID *string
	Severity     *domain.Severity

	// SearchText, when non-empty, adds an OR clause across ticket number,
	// description and type. CustomerIDs carries the customer identifiers the
	// search text resolved to; when non-empty they extend the OR clause.
	SearchText  string
	CustomerIDs []string

	Limit  int
	Offset int
}

// FaultRepository encapsulates fault persistence.
type FaultRepository interface {
	Create(ctx context.Context, fault *domain.Fault) error
	Update(ctx context.Context, fault *domain.Fault) error
	// UpdateWithHistory persists the fault and appends the history row in a
	// single transaction; either both commit or neither.
	UpdateWithHistory(ctx context.Context, fault *domain.Fault, entry *domain.FaultHistory) error
	GetByID(ctx context.Context, id string) (*domain.Fault, error)
	ListWithFilter(ctx context.Context, filter FaultFilter) ([]domain.Fault, error)
}

type faultRepository struct {
	pool *pgxpool.Pool
}

// NewFaultRepository instantiates repository.
func NewFaultRepository(pool *pgxpool.Pool) FaultRepository {
	return &faultRepository{pool: pool}
}

const faultColumns = `id, ticket_number, description, type, location, owner, severity, status,
               pending_hours, customer_id, assigned_to_id, resolved_at, closed_at,
               resolved_by_id, closed_by_id, created_at, updated_at`

func (r *faultRepository) Create(ctx context.Context, fault *domain.Fault) error {
	const query = `
        INSERT INTO faults (ticket_number, description, type, location, owner, severity, status,
                            pending_hours, customer_id, assigned_to_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		fault.TicketNumber,
		fault.Description,
		fault.Type,
		fault.Location,
		fault.Owner,
		fault.Severity,
		fault.Status,
		fault.PendingHours,
		fault.CustomerID,
		fault.DepartmentID,
	).Scan(&fault.ID, &fault.CreatedAt, &fault.UpdatedAt)
}

const faultUpdateQuery = `
        UPDATE faults SET description=$1, type=$2, location=$3, owner=$4, severity=$5, status=$6,
            pending_hours=$7, customer_id=$8, assigned_to_id=$9, resolved_at=$10, closed_at=$11,
            resolved_by_id=$12, closed_by_id=$13, updated_at=NOW()
        WHERE id=$14`

func faultUpdateArgs(fault *domain.Fault) []any {
	return []any{
		fault.Description,
		fault.Type,
		fault.Location,
		fault.Owner,
		fault.Severity,
		fault.Status,
		fault.PendingHours,
		fault.CustomerID,
		fault.DepartmentID,
		fault.ResolvedAt,
		fault.ClosedAt,
		fault.ResolvedByID,
		fault.ClosedByID,
		fault.ID,
	}
}

func (r *faultRepository) Update(ctx context.Context, fault *domain.Fault) error {
	cmd, err := r.pool.Exec(ctx, faultUpdateQuery, faultUpdateArgs(fault)...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *faultRepository) UpdateWithHistory(ctx context.Context, fault *domain.Fault, entry *domain.FaultHistory) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	cmd, err := tx.Exec(ctx, faultUpdateQuery, faultUpdateArgs(fault)...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	if err := insertFaultHistory(ctx, tx, entry); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *faultRepository) GetByID(ctx context.Context, id string) (*domain.Fault, error) {
	query := `SELECT ` + faultColumns + ` FROM faults WHERE id=$1`
	var fault domain.Fault
	if err := r.pool.QueryRow(ctx, query, id).Scan(faultScanTargets(&fault)...); err != nil {
		return nil, err
	}
	return &fault, nil
}

func (r *faultRepository) ListWithFilter(ctx context.Context, filter FaultFilter) ([]domain.Fault, error) {
	query, args := buildFaultQuery(filter)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFaults(rows)
}

func buildFaultQuery(filter FaultFilter) (string, []any) {
	base := `SELECT ` + faultColumns + ` FROM faults`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.DepartmentID != nil {
		args = append(args, *filter.DepartmentID)
		clauses = append(clauses, fmt.Sprintf("assigned_to_id=$%d", len(args)))
	}
	if filter.Severity != nil {
		args = append(args, *filter.Severity)
		clauses = append(clauses, fmt.Sprintf("severity=$%d", len(args)))
	}
	if search := strings.TrimSpace(filter.SearchText); search != "" {
		args = append(args, "%"+strings.ToLower(search)+"%")
		placeholder := fmt.Sprintf("$%d", len(args))
		or := []string{
			fmt.Sprintf("LOWER(ticket_number) LIKE %s", placeholder),
			fmt.Sprintf("LOWER(description) LIKE %s", placeholder),
			fmt.Sprintf("LOWER(type) LIKE %s", placeholder),
		}
		if len(filter.CustomerIDs) > 0 {
			placeholders := make([]string, len(filter.CustomerIDs))
			for i, id := range filter.CustomerIDs {
				args = append(args, id)
				placeholders[i] = fmt.Sprintf("$%d", len(args))
			}
			or = append(or, fmt.Sprintf("customer_id IN (%s)", strings.Join(placeholders, ",")))
		}
		clauses = append(clauses, "("+strings.Join(or, " OR ")+")")
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC`, base, strings.Join(clauses, " AND "))
	if filter.Limit > 0 {
		offset := filter.Offset
		if offset < 0 {
			offset = 0
		}
		query = fmt.Sprintf("%s LIMIT %d OFFSET %d", query, filter.Limit, offset)
	}
	return query, args
}

func faultScanTargets(fault *domain.Fault) []any {
	return []any{
		&fault.ID,
		&fault.TicketNumber,
		&fault.Description,
		&fault.Type,
		&fault.Location,
		&fault.Owner,
		&fault.Severity,
		&fault.Status,
		&fault.PendingHours,
		&fault.CustomerID,
		&fault.DepartmentID,
		&fault.ResolvedAt,
		&fault.ClosedAt,
		&fault.ResolvedByID,
		&fault.ClosedByID,
		&fault.CreatedAt,
		&fault.UpdatedAt,
	}
}

func scanFaults(rows pgx.Rows) ([]domain.Fault, error) {
	var result []domain.Fault
	for rows.Next() {
		var fault domain.Fault
		if err := rows.Scan(faultScanTargets(&fault)...); err != nil {
			return nil, err
		}
		result = append(result, fault)
	}
	return result, rows.Err()
}
