package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/noc-fault-service/internal/domain"
)

// FaultHistoryRepository stores transition audit entries. Rows are append
// only; there is no update or delete path.
type FaultHistoryRepository interface {
	Create(ctx context.Context, entry *domain.FaultHistory) error
	ListByFault(ctx context.Context, faultID string) ([]domain.FaultHistory, error)
}

type faultHistoryRepository struct {
	pool *pgxpool.Pool
}

// NewFaultHistoryRepository builds repository.
func NewFaultHistoryRepository(pool *pgxpool.Pool) FaultHistoryRepository {
	return &faultHistoryRepository{pool: pool}
}

// rowQuerier is satisfied by both *pgxpool.Pool and pgx.Tx, so the fault
// repository can append history inside its transaction.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func insertFaultHistory(ctx context.Context, q rowQuerier, entry *domain.FaultHistory) error {
	const query = `
        INSERT INTO fault_history (fault_id, previous_status, new_status, actor_id, note)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return q.QueryRow(ctx, query,
		entry.FaultID,
		entry.PreviousStatus,
		entry.NewStatus,
		entry.ActorID,
		entry.Note,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *faultHistoryRepository) Create(ctx context.Context, entry *domain.FaultHistory) error {
	return insertFaultHistory(ctx, r.pool, entry)
}

func (r *faultHistoryRepository) ListByFault(ctx context.Context, faultID string) ([]domain.FaultHistory, error) {
	const query = `
        SELECT h.id, h.fault_id, h.previous_status, h.new_status, h.actor_id, COALESCE(u.username, ''), h.note, h.created_at
        FROM fault_history h
        LEFT JOIN users u ON u.id = h.actor_id
        WHERE h.fault_id=$1 ORDER BY h.created_at DESC`
	rows, err := r.pool.Query(ctx, query, faultID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.FaultHistory
	for rows.Next() {
		var entry domain.FaultHistory
		if err := rows.Scan(
			&entry.ID,
			&entry.FaultID,
			&entry.PreviousStatus,
			&entry.NewStatus,
			&entry.ActorID,
			&entry.ActorName,
			&entry.Note,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
