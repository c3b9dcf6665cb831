package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/noc-fault-service/internal/domain"
)

// FaultNoteRepository stores free-text fault annotations.
type FaultNoteRepository interface {
	Create(ctx context.Context, note *domain.FaultNote) error
	ListByFault(ctx context.Context, faultID string) ([]domain.FaultNote, error)
}

type faultNoteRepository struct {
	pool *pgxpool.Pool
}

// NewFaultNoteRepository builds repository.
func NewFaultNoteRepository(pool *pgxpool.Pool) FaultNoteRepository {
	return &faultNoteRepository{pool: pool}
}

func (r *faultNoteRepository) Create(ctx context.Context, note *domain.FaultNote) error {
	const query = `
        INSERT INTO fault_notes (fault_id, content, author_id, department_id)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		note.FaultID,
		note.Content,
		note.AuthorID,
		note.DepartmentID,
	).Scan(&note.ID, &note.CreatedAt)
}

func (r *faultNoteRepository) ListByFault(ctx context.Context, faultID string) ([]domain.FaultNote, error) {
	const query = `
        SELECT n.id, n.fault_id, n.content, n.author_id, COALESCE(u.username, ''), n.department_id, n.created_at
        FROM fault_notes n
        LEFT JOIN users u ON u.id = n.author_id
        WHERE n.fault_id=$1 ORDER BY n.created_at DESC`
	rows, err := r.pool.Query(ctx, query, faultID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.FaultNote
	for rows.Next() {
		var note domain.FaultNote
		if err := rows.Scan(
			&note.ID,
			&note.FaultID,
			&note.Content,
			&note.AuthorID,
			&note.AuthorName,
			&note.DepartmentID,
			&note.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, note)
	}
	return result, rows.Err()
}
