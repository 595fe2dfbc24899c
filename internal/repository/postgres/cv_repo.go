package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-jobboard-backend/internal/domain"
)

type cvRepo struct {
	db *pgxpool.Pool
}

// NewCVRepository creates a new candidate CV repository
func NewCVRepository(db *pgxpool.Pool) domain.CVRepository {
	return &cvRepo{db: db}
}

func (r *cvRepo) Create(ctx context.Context, cv *domain.CandidateCV) error {
	query := `
		INSERT INTO candidate_cvs (candidate_profile_id, name, cv_url, cv_json, is_deleted, created_at)
		VALUES ($1, $2, $3, $4, FALSE, $5)
		RETURNING id`

	cv.CreatedAt = time.Now()
	return r.db.QueryRow(ctx, query,
		cv.CandidateProfileID, cv.Name, cv.CvURL, []byte(cv.CvJSON), cv.CreatedAt,
	).Scan(&cv.ID)
}

func (r *cvRepo) GetOwned(ctx context.Context, id, candidateProfileID int64) (*domain.CandidateCV, error) {
	query := `
		SELECT id, candidate_profile_id, name, cv_url, cv_json, is_deleted, created_at
		FROM candidate_cvs
		WHERE id = $1 AND candidate_profile_id = $2 AND is_deleted = FALSE`

	var cv domain.CandidateCV
	var cvJSON []byte
	err := r.db.QueryRow(ctx, query, id, candidateProfileID).Scan(
		&cv.ID, &cv.CandidateProfileID, &cv.Name, &cv.CvURL, &cvJSON,
		&cv.IsDeleted, &cv.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	cv.CvJSON = cvJSON
	return &cv, nil
}

func (r *cvRepo) ListByProfile(ctx context.Context, candidateProfileID int64) ([]domain.CandidateCV, error) {
	query := `
		SELECT id, candidate_profile_id, name, cv_url, cv_json, is_deleted, created_at
		FROM candidate_cvs
		WHERE candidate_profile_id = $1 AND is_deleted = FALSE
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, candidateProfileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cvs []domain.CandidateCV
	for rows.Next() {
		var cv domain.CandidateCV
		var cvJSON []byte
		if err := rows.Scan(
			&cv.ID, &cv.CandidateProfileID, &cv.Name, &cv.CvURL, &cvJSON,
			&cv.IsDeleted, &cv.CreatedAt,
		); err != nil {
			return nil, err
		}
		cv.CvJSON = cvJSON
		cvs = append(cvs, cv)
	}
	return cvs, rows.Err()
}

func (r *cvRepo) SoftDelete(ctx context.Context, id, candidateProfileID int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE candidate_cvs SET is_deleted = TRUE WHERE id = $1 AND candidate_profile_id = $2 AND is_deleted = FALSE`,
		id, candidateProfileID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
