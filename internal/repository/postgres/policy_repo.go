package postgres

/*
Файл policy_repo.go отвечает за хранение страховых полисов.
Внешняя ссылка customer_id намеренно не имеет FK-ограничения:
клиенты живут в другом сервисе, связка разрешается на чтении.
*/

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/xela07ax/insurance-backoffice/internal/domain"
)

type PolicyRepo struct {
	pool *pgxpool.Pool
}

func NewPolicyRepo(pool *pgxpool.Pool) *PolicyRepo {
	return &PolicyRepo{pool: pool}
}

func (r *PolicyRepo) GetByID(ctx context.Context, id int64) (*domain.Policy, error) {
	query := `
		SELECT id, type, start_date, end_date, coverage_amount, customer_id
		FROM policies
		WHERE id = $1`

	p := &domain.Policy{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Type, &p.StartDate, &p.EndDate, &p.CoverageAmount, &p.CustomerID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Возвращаем nil для 404 в хендлере
		}
		return nil, err
	}
	return p, nil
}

func (r *PolicyRepo) GetAll(ctx context.Context) ([]domain.Policy, error) {
	query := `SELECT id, type, start_date, end_date, coverage_amount, customer_id FROM policies ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPolicies(rows)
}

// GetByCustomerID возвращает все полисы клиента (индексная выборка).
func (r *PolicyRepo) GetByCustomerID(ctx context.Context, customerID int64) ([]domain.Policy, error) {
	query := `
		SELECT id, type, start_date, end_date, coverage_amount, customer_id
		FROM policies
		WHERE customer_id = $1
		ORDER BY id`

	rows, err := r.pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPolicies(rows)
}

func (r *PolicyRepo) Create(ctx context.Context, p *domain.Policy) error {
	query := `
		INSERT INTO policies (type, start_date, end_date, coverage_amount, customer_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := r.pool.QueryRow(ctx, query, p.Type, p.StartDate, p.EndDate, p.CoverageAmount, p.CustomerID).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("postgres: failed to create policy: %w", err)
	}
	return nil
}

// Update перезаписывает атрибуты полиса. customer_id не меняется:
// полис нельзя переписать на другого клиента.
func (r *PolicyRepo) Update(ctx context.Context, p *domain.Policy) error {
	query := `
		UPDATE policies
		SET type = $1, start_date = $2, end_date = $3, coverage_amount = $4
		WHERE id = $5`

	ct, err := r.pool.Exec(ctx, query, p.Type, p.StartDate, p.EndDate, p.CoverageAmount, p.ID)
	if err != nil {
		return fmt.Errorf("postgres: failed to update policy: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PolicyRepo) Delete(ctx context.Context, id int64) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM policies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete policy: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanPolicies(rows pgx.Rows) ([]domain.Policy, error) {
	var results []domain.Policy
	for rows.Next() {
		var p domain.Policy
		if err := rows.Scan(&p.ID, &p.Type, &p.StartDate, &p.EndDate, &p.CoverageAmount, &p.CustomerID); err != nil {
			return nil, err
		}
		results = append(results, p)
	}
	return results, rows.Err()
}
