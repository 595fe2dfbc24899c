package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-jobboard-backend/internal/domain"
)

type userRepo struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

// CreateWithProfile inserts the user plus its role profile in one transaction
// so a failed profile insert never leaves a roleless user behind.
func (r *userRepo) CreateWithProfile(ctx context.Context, user *domain.User, candidate *domain.CandidateProfile, employer *domain.EmployerProfile) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	err = tx.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, role, is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, FALSE, $5, $5)
		RETURNING id`,
		user.Username, user.Email, user.PasswordHash, user.Role, now,
	).Scan(&user.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrDuplicate
		}
		return err
	}

	switch {
	case candidate != nil:
		candidate.UserID = user.ID
		candidate.CreatedAt = now
		candidate.UpdatedAt = now
		err = tx.QueryRow(ctx, `
			INSERT INTO candidate_profiles (user_id, created_at, updated_at)
			VALUES ($1, $2, $2)
			RETURNING id`,
			user.ID, now,
		).Scan(&candidate.ID)
	case employer != nil:
		employer.UserID = user.ID
		employer.CreatedAt = now
		employer.UpdatedAt = now
		err = tx.QueryRow(ctx, `
			INSERT INTO employer_profiles (user_id, company_name, created_at, updated_at)
			VALUES ($1, $2, $3, $3)
			RETURNING id`,
			user.ID, employer.CompanyName, now,
		).Scan(&employer.ID)
	}
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.get(ctx, `WHERE id = $1`, id)
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.get(ctx, `WHERE email = $1`, email)
}

func (r *userRepo) get(ctx context.Context, where string, arg any) (*domain.User, error) {
	query := `
		SELECT id, username, email, password_hash, role, is_deleted, created_at, updated_at
		FROM users ` + where

	var user domain.User
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.Role, &user.IsDeleted, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
