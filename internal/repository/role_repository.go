package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cybervibe/helpdesk/internal/domain"
)

// RoleRepository defines access to the role table. GetByUserID returns
// pgx.ErrNoRows for accounts without a role row; interpreting that as least
// privilege is the resolver's job, not the repository's.
type RoleRepository interface {
	GetByUserID(ctx context.Context, userID string) (domain.Role, error)
	Set(ctx context.Context, userID string, role domain.Role) error
	ListAll(ctx context.Context) (map[string]domain.Role, error)
}

type roleRepository struct {
	pool *pgxpool.Pool
}

// NewRoleRepository returns a Postgres-backed implementation.
func NewRoleRepository(pool *pgxpool.Pool) RoleRepository {
	return &roleRepository{pool: pool}
}

func (r *roleRepository) GetByUserID(ctx context.Context, userID string) (domain.Role, error) {
	const query = `SELECT role FROM user_roles WHERE user_id=$1`
	var role domain.Role
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&role); err != nil {
		return "", err
	}
	return role, nil
}

func (r *roleRepository) Set(ctx context.Context, userID string, role domain.Role) error {
	const query = `
        INSERT INTO user_roles (user_id, role)
        VALUES ($1, $2)
        ON CONFLICT (user_id) DO UPDATE SET role=EXCLUDED.role`
	_, err := r.pool.Exec(ctx, query, userID, role)
	return err
}

func (r *roleRepository) ListAll(ctx context.Context) (map[string]domain.Role, error) {
	rows, err := r.pool.Query(ctx, `SELECT user_id, role FROM user_roles`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]domain.Role)
	for rows.Next() {
		var userID string
		var role domain.Role
		if err := rows.Scan(&userID, &role); err != nil {
			return nil, err
		}
		result[userID] = role
	}
	return result, rows.Err()
}
