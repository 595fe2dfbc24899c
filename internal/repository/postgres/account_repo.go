package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-jobboard-backend/internal/domain"
)

type accountRepo struct {
	db *pgxpool.Pool
}

// NewAccountRepository creates the repository backing account anonymization.
func NewAccountRepository(db *pgxpool.Pool) domain.AccountRepository {
	return &accountRepo{db: db}
}

// Anonymize scrubs every personally identifying field tied to the user in one
// transaction. Deactivated job offers and soft-deleted CVs are kept so
// historical applications stay readable.
func (r *accountRepo) Anonymize(ctx context.Context, userID int64, username, email, companyPlaceholder string) (*domain.AnonymizeSummary, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Lock the user row for the duration of the scrub.
	var exists bool
	err = tx.QueryRow(ctx, `SELECT TRUE FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&exists)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	summary := &domain.AnonymizeSummary{
		UserID:             userID,
		AnonymizedUsername: username,
		AnonymizedEmail:    email,
	}

	// 1. Candidate side: null personal fields, drop links, soft-delete CVs.
	var candidateProfileID int64
	err = tx.QueryRow(ctx, `SELECT id FROM candidate_profiles WHERE user_id = $1`, userID).Scan(&candidateProfileID)
	switch err {
	case nil:
		summary.HadCandidateProfile = true

		_, err = tx.Exec(ctx, `
			UPDATE candidate_profiles SET
				name = NULL, last_name = NULL, description = NULL,
				birthday = NULL, phone_number = NULL, place = NULL,
				experience = NULL, skills = NULL, education = NULL,
				updated_at = NOW()
			WHERE id = $1`, candidateProfileID)
		if err != nil {
			return nil, fmt.Errorf("failed to scrub candidate profile: %w", err)
		}

		if _, err = tx.Exec(ctx, `DELETE FROM profile_links WHERE candidate_profile_id = $1`, candidateProfileID); err != nil {
			return nil, fmt.Errorf("failed to delete profile links: %w", err)
		}

		if _, err = tx.Exec(ctx, `UPDATE candidate_cvs SET is_deleted = TRUE WHERE candidate_profile_id = $1`, candidateProfileID); err != nil {
			return nil, fmt.Errorf("failed to soft-delete CVs: %w", err)
		}
	case pgx.ErrNoRows:
		// no candidate profile
	default:
		return nil, err
	}

	// 2. Employer side: placeholder company name, scrub contact data,
	// deactivate offers without deleting them.
	var employerProfileID int64
	err = tx.QueryRow(ctx, `SELECT id FROM employer_profiles WHERE user_id = $1`, userID).Scan(&employerProfileID)
	switch err {
	case nil:
		summary.HadEmployerProfile = true

		_, err = tx.Exec(ctx, `
			UPDATE employer_profiles SET
				company_name = $2, company_image_url = NULL, description = NULL,
				contact_phone = NULL, contact_email = NULL,
				industry = NULL, contract_type = NULL, benefits = NULL,
				updated_at = NOW()
			WHERE id = $1`, employerProfileID, companyPlaceholder)
		if err != nil {
			return nil, fmt.Errorf("failed to scrub employer profile: %w", err)
		}

		if _, err = tx.Exec(ctx, `UPDATE job_offers SET is_active = FALSE, updated_at = NOW() WHERE employer_profile_id = $1`, employerProfileID); err != nil {
			return nil, fmt.Errorf("failed to deactivate job offers: %w", err)
		}
	case pgx.ErrNoRows:
		// no employer profile
	default:
		return nil, err
	}

	// 3. OAuth linkages.
	if _, err = tx.Exec(ctx, `DELETE FROM additional_credentials WHERE user_id = $1`, userID); err != nil {
		return nil, fmt.Errorf("failed to delete additional credentials: %w", err)
	}

	// 4. Finally rename the user and drop the credential.
	_, err = tx.Exec(ctx, `
		UPDATE users SET
			username = $2, email = $3, password_hash = NULL,
			is_deleted = TRUE, updated_at = NOW()
		WHERE id = $1`, userID, username, email)
	if err != nil {
		return nil, fmt.Errorf("failed to anonymize user row: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return summary, nil
}
