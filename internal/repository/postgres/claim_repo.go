package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/xela07ax/insurance-backoffice/internal/domain"
)

type ClaimRepo struct {
	pool *pgxpool.Pool
}

func NewClaimRepo(pool *pgxpool.Pool) *ClaimRepo {
	return &ClaimRepo{pool: pool}
}

func (r *ClaimRepo) GetByID(ctx context.Context, id int64) (*domain.Claim, error) {
	query := `
		SELECT id, date, description, claimed_amount, settled_amount, status, policy_id
		FROM claims
		WHERE id = $1`

	c := &domain.Claim{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Date, &c.Description, &c.ClaimedAmount, &c.SettledAmount, &c.Status, &c.PolicyID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func (r *ClaimRepo) GetAll(ctx context.Context) ([]domain.Claim, error) {
	query := `SELECT id, date, description, claimed_amount, settled_amount, status, policy_id FROM claims ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanClaims(rows)
}

func (r *ClaimRepo) GetByPolicyID(ctx context.Context, policyID int64) ([]domain.Claim, error) {
	query := `
		SELECT id, date, description, claimed_amount, settled_amount, status, policy_id
		FROM claims
		WHERE policy_id = $1
		ORDER BY id`

	rows, err := r.pool.Query(ctx, query, policyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanClaims(rows)
}

func (r *ClaimRepo) Create(ctx context.Context, c *domain.Claim) error {
	query := `
		INSERT INTO claims (date, description, claimed_amount, settled_amount, status, policy_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := r.pool.QueryRow(ctx, query,
		c.Date, c.Description, c.ClaimedAmount, c.SettledAmount, c.Status, c.PolicyID,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("postgres: failed to create claim: %w", err)
	}
	return nil
}

// Update перезаписывает требование целиком (last-write-wins,
// никакого optimistic locking по контракту).
func (r *ClaimRepo) Update(ctx context.Context, c *domain.Claim) error {
	query := `
		UPDATE claims
		SET date = $1, description = $2, claimed_amount = $3, settled_amount = $4, status = $5
		WHERE id = $6`

	ct, err := r.pool.Exec(ctx, query,
		c.Date, c.Description, c.ClaimedAmount, c.SettledAmount, c.Status, c.ID,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to update claim: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ClaimRepo) Delete(ctx context.Context, id int64) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM claims WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete claim: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanClaims(rows pgx.Rows) ([]domain.Claim, error) {
	var results []domain.Claim
	for rows.Next() {
		var c domain.Claim
		if err := rows.Scan(&c.ID, &c.Date, &c.Description, &c.ClaimedAmount, &c.SettledAmount, &c.Status, &c.PolicyID); err != nil {
			return nil, err
		}
		results = append(results, c)
	}
	return results, rows.Err()
}
