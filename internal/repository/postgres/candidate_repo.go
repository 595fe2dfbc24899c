package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-jobboard-backend/internal/domain"
)

type candidateRepo struct {
	db *pgxpool.Pool
}

// NewCandidateRepository creates a new candidate profile repository
func NewCandidateRepository(db *pgxpool.Pool) domain.CandidateRepository {
	return &candidateRepo{db: db}
}

const candidateColumns = `id, user_id, name, last_name, description, birthday,
	phone_number, place, experience, skills, education, created_at, updated_at`

func (r *candidateRepo) GetByID(ctx context.Context, id int64) (*domain.CandidateProfile, error) {
	return r.get(ctx, `WHERE id = $1`, id)
}

func (r *candidateRepo) GetByUserID(ctx context.Context, userID int64) (*domain.CandidateProfile, error) {
	return r.get(ctx, `WHERE user_id = $1`, userID)
}

func (r *candidateRepo) get(ctx context.Context, where string, arg any) (*domain.CandidateProfile, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidate_profiles ` + where

	var profile domain.CandidateProfile
	var experience, skills, education []byte
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&profile.ID, &profile.UserID, &profile.Name, &profile.LastName,
		&profile.Description, &profile.Birthday, &profile.PhoneNumber, &profile.Place,
		&experience, &skills, &education, &profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if err := unmarshalProfileLists(&profile, experience, skills, education); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *candidateRepo) Update(ctx context.Context, profile *domain.CandidateProfile) error {
	experience, skills, education, err := marshalProfileLists(profile)
	if err != nil {
		return err
	}

	query := `
		UPDATE candidate_profiles SET
			name = $2, last_name = $3, description = $4, birthday = $5,
			phone_number = $6, place = $7, experience = $8, skills = $9,
			education = $10, updated_at = NOW()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		profile.ID, profile.Name, profile.LastName, profile.Description,
		profile.Birthday, profile.PhoneNumber, profile.Place,
		experience, skills, education,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *candidateRepo) GetLinks(ctx context.Context, profileID int64) ([]domain.ProfileLink, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, candidate_profile_id, name, url FROM profile_links WHERE candidate_profile_id = $1 ORDER BY id`,
		profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []domain.ProfileLink
	for rows.Next() {
		var l domain.ProfileLink
		if err := rows.Scan(&l.ID, &l.CandidateProfileID, &l.Name, &l.URL); err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

func (r *candidateRepo) ReplaceLinks(ctx context.Context, profileID int64, links []domain.ProfileLink) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM profile_links WHERE candidate_profile_id = $1`, profileID); err != nil {
		return fmt.Errorf("failed to clear profile links: %w", err)
	}
	for i := range links {
		err := tx.QueryRow(ctx,
			`INSERT INTO profile_links (candidate_profile_id, name, url) VALUES ($1, $2, $3) RETURNING id`,
			profileID, links[i].Name, links[i].URL,
		).Scan(&links[i].ID)
		if err != nil {
			return fmt.Errorf("failed to insert profile link: %w", err)
		}
		links[i].CandidateProfileID = profileID
	}

	return tx.Commit(ctx)
}

// marshalProfileLists encodes the ordered JSON list fields for storage. The
// JSONB encoding is this layer's concern; the domain only sees typed slices.
func marshalProfileLists(p *domain.CandidateProfile) (experience, skills, education []byte, err error) {
	if experience, err = json.Marshal(p.Experience); err != nil {
		return nil, nil, nil, err
	}
	if skills, err = json.Marshal(p.Skills); err != nil {
		return nil, nil, nil, err
	}
	if education, err = json.Marshal(p.Education); err != nil {
		return nil, nil, nil, err
	}
	return experience, skills, education, nil
}

func unmarshalProfileLists(p *domain.CandidateProfile, experience, skills, education []byte) error {
	if len(experience) > 0 {
		if err := json.Unmarshal(experience, &p.Experience); err != nil {
			return err
		}
	}
	if len(skills) > 0 {
		if err := json.Unmarshal(skills, &p.Skills); err != nil {
			return err
		}
	}
	if len(education) > 0 {
		if err := json.Unmarshal(education, &p.Education); err != nil {
			return err
		}
	}
	return nil
}
