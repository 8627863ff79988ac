package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/xela07ax/insurance-backoffice/internal/domain"
)

type CustomerRepo struct {
	pool *pgxpool.Pool
}

func NewCustomerRepo(pool *pgxpool.Pool) *CustomerRepo {
	return &CustomerRepo{pool: pool}
}

func (r *CustomerRepo) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	query := `
		SELECT id, first_name, last_name, email, address, phone
		FROM customers
		WHERE id = $1`

	c := &domain.Customer{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Address, &c.Phone,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Возвращаем nil для 404 в хендлере
		}
		return nil, err
	}
	return c, nil
}

func (r *CustomerRepo) GetAll(ctx context.Context) ([]domain.Customer, error) {
	query := `SELECT id, first_name, last_name, email, address, phone FROM customers ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCustomers(rows)
}

// Create вставляет запись и проставляет сгенерированный БД идентификатор.
func (r *CustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	query := `
		INSERT INTO customers (first_name, last_name, email, address, phone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := r.pool.QueryRow(ctx, query, c.FirstName, c.LastName, c.Email, c.Address, c.Phone).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("postgres: failed to create customer: %w", err)
	}
	return nil
}

func (r *CustomerRepo) Update(ctx context.Context, c *domain.Customer) error {
	query := `
		UPDATE customers
		SET first_name = $1, last_name = $2, email = $3, address = $4, phone = $5
		WHERE id = $6`

	ct, err := r.pool.Exec(ctx, query, c.FirstName, c.LastName, c.Email, c.Address, c.Phone, c.ID)
	if err != nil {
		return fmt.Errorf("postgres: failed to update customer: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CustomerRepo) Delete(ctx context.Context, id int64) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete customer: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SearchByLastName — регистронезависимый поиск по подстроке фамилии.
func (r *CustomerRepo) SearchByLastName(ctx context.Context, lastName string) ([]domain.Customer, error) {
	query := `
		SELECT id, first_name, last_name, email, address, phone
		FROM customers
		WHERE last_name ILIKE '%' || $1 || '%'
		ORDER BY id`

	rows, err := r.pool.Query(ctx, query, lastName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCustomers(rows)
}

func (r *CustomerRepo) SearchByEmail(ctx context.Context, email string) ([]domain.Customer, error) {
	query := `
		SELECT id, first_name, last_name, email, address, phone
		FROM customers
		WHERE email ILIKE '%' || $1 || '%'
		ORDER BY id`

	rows, err := r.pool.Query(ctx, query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCustomers(rows)
}

func scanCustomers(rows pgx.Rows) ([]domain.Customer, error) {
	var results []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Address, &c.Phone); err != nil {
			return nil, err
		}
		results = append(results, c)
	}
	return results, rows.Err()
}
