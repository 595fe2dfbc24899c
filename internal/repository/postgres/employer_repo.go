package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"go-jobboard-backend/internal/domain"
)

type employerRepo struct {
	db *pgxpool.Pool
}

// NewEmployerRepository creates a new employer profile repository
func NewEmployerRepository(db *pgxpool.Pool) domain.EmployerRepository {
	return &employerRepo{db: db}
}

func (r *employerRepo) GetByID(ctx context.Context, id int64) (*domain.EmployerProfile, error) {
	return r.get(ctx, `WHERE id = $1`, id)
}

func (r *employerRepo) GetByUserID(ctx context.Context, userID int64) (*domain.EmployerProfile, error) {
	return r.get(ctx, `WHERE user_id = $1`, userID)
}

func (r *employerRepo) get(ctx context.Context, where string, arg any) (*domain.EmployerProfile, error) {
	query := `
		SELECT id, user_id, company_name, company_image_url, description,
			contact_phone, contact_email, industry, contract_type, benefits,
			created_at, updated_at
		FROM employer_profiles ` + where

	var profile domain.EmployerProfile
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&profile.ID, &profile.UserID, &profile.CompanyName, &profile.CompanyImageURL,
		&profile.Description, &profile.ContactPhone, &profile.ContactEmail,
		pq.Array(&profile.Industry), pq.Array(&profile.ContractType), pq.Array(&profile.Benefits),
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *employerRepo) Update(ctx context.Context, profile *domain.EmployerProfile) error {
	query := `
		UPDATE employer_profiles SET
			company_name = $2, company_image_url = $3, description = $4,
			contact_phone = $5, contact_email = $6,
			industry = $7, contract_type = $8, benefits = $9,
			updated_at = NOW()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		profile.ID, profile.CompanyName, profile.CompanyImageURL, profile.Description,
		profile.ContactPhone, profile.ContactEmail,
		pq.Array(profile.Industry), pq.Array(profile.ContractType), pq.Array(profile.Benefits),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
