package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/noc-fault-service/internal/domain"
)

// CustomerRepository manages customer persistence.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
	// SearchIDs resolves the customers whose company or circuit id contains
	// the text, case-insensitively. The query composer feeds the result into
	// the fault search OR clause.
	SearchIDs(ctx context.Context, text string) ([]string, error)
}

type customerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository builds the repository.
func NewCustomerRepository(pool *pgxpool.Pool) CustomerRepository {
	return &customerRepository{pool: pool}
}

const customerColumns = `id, company, circuit_id, type, location, ip_address, pop_site, email, switch_info, owner, created_at, updated_at`

func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	const query = `
        INSERT INTO customers (company, circuit_id, type, location, ip_address, pop_site, email, switch_info, owner)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		customer.Company,
		customer.CircuitID,
		customer.Type,
		customer.Location,
		customer.IPAddress,
		customer.PopSite,
		customer.Email,
		customer.SwitchInfo,
		customer.Owner,
	).Scan(&customer.ID, &customer.CreatedAt, &customer.UpdatedAt)
}

func (r *customerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id=$1`
	var customer domain.Customer
	if err := r.pool.QueryRow(ctx, query, id).Scan(customerScanTargets(&customer)...); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY company ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCustomers(rows)
}

func (r *customerRepository) SearchIDs(ctx context.Context, text string) ([]string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	const query = `
        SELECT id FROM customers
        WHERE LOWER(company) LIKE $1 OR LOWER(circuit_id) LIKE $1`
	rows, err := r.pool.Query(ctx, query, "%"+strings.ToLower(text)+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func customerScanTargets(customer *domain.Customer) []any {
	return []any{
		&customer.ID,
		&customer.Company,
		&customer.CircuitID,
		&customer.Type,
		&customer.Location,
		&customer.IPAddress,
		&customer.PopSite,
		&customer.Email,
		&customer.SwitchInfo,
		&customer.Owner,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	}
}

func scanCustomers(rows pgx.Rows) ([]domain.Customer, error) {
	var result []domain.Customer
	for rows.Next() {
		var customer domain.Customer
		if err := rows.Scan(customerScanTargets(&customer)...); err != nil {
			return nil, err
		}
		result = append(result, customer)
	}
	return result, rows.Err()
}
