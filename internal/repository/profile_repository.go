package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cybervibe/helpdesk/internal/domain"
)

// ProfileRepository defines persistence access for display profiles.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	GetByUsername(ctx context.Context, username string) (*domain.Profile, error)
	ListAll(ctx context.Context) ([]domain.Profile, error)
}

type profileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository returns a Postgres-backed implementation.
func NewProfileRepository(pool *pgxpool.Pool) ProfileRepository {
	return &profileRepository{pool: pool}
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	const query = `
        INSERT INTO profiles (user_id, username, full_name)
        VALUES ($1, $2, $3)`
	_, err := r.pool.Exec(ctx, query, profile.UserID, profile.Username, profile.FullName)
	return err
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	const query = `
        SELECT user_id, username, full_name
        FROM profiles WHERE user_id=$1`
	return r.fetchSingle(ctx, query, userID)
}

func (r *profileRepository) GetByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	const query = `
        SELECT user_id, username, full_name
        FROM profiles WHERE username=$1`
	return r.fetchSingle(ctx, query, username)
}

func (r *profileRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Profile, error) {
	var profile domain.Profile
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&profile.UserID,
		&profile.Username,
		&profile.FullName,
	); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) ListAll(ctx context.Context) ([]domain.Profile, error) {
	const query = `
        SELECT user_id, username, full_name
        FROM profiles ORDER BY username`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Profile
	for rows.Next() {
		var profile domain.Profile
		if err := rows.Scan(&profile.UserID, &profile.Username, &profile.FullName); err != nil {
			return nil, err
		}
		result = append(result, profile)
	}
	return result, rows.Err()
}
