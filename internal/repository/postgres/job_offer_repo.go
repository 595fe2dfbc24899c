package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-jobboard-backend/internal/domain"
)

type jobOfferRepo struct {
	db *pgxpool.Pool
}

// NewJobOfferRepository creates a new job offer repository
func NewJobOfferRepository(db *pgxpool.Pool) domain.JobOfferRepository {
	return &jobOfferRepo{db: db}
}

func (r *jobOfferRepo) Create(ctx context.Context, offer *domain.JobOffer) error {
	query := `
		INSERT INTO job_offers (employer_profile_id, title, description, salary_from,
			salary_to, is_active, expire_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING id`

	now := time.Now()
	offer.CreatedAt = now
	offer.UpdatedAt = now

	return r.db.QueryRow(ctx, query,
		offer.EmployerProfileID, offer.Title, offer.Description,
		offer.SalaryFrom, offer.SalaryTo, offer.IsActive, offer.ExpireDate, now,
	).Scan(&offer.ID)
}

func (r *jobOfferRepo) GetByID(ctx context.Context, id int64) (*domain.JobOffer, error) {
	query := `
		SELECT o.id, o.employer_profile_id, o.title, o.description, o.salary_from,
			o.salary_to, o.is_active, o.expire_date, o.created_at, o.updated_at,
			e.company_name, e.company_image_url
		FROM job_offers o
		JOIN employer_profiles e ON o.employer_profile_id = e.id
		WHERE o.id = $1`

	var offer domain.JobOffer
	err := r.db.QueryRow(ctx, query, id).Scan(
		&offer.ID, &offer.EmployerProfileID, &offer.Title, &offer.Description,
		&offer.SalaryFrom, &offer.SalaryTo, &offer.IsActive, &offer.ExpireDate,
		&offer.CreatedAt, &offer.UpdatedAt,
		&offer.CompanyName, &offer.CompanyImageURL,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &offer, nil
}

func (r *jobOfferRepo) FetchActive(ctx context.Context, limit, offset int) ([]domain.JobOffer, int64, error) {
	return r.fetch(ctx,
		`WHERE o.is_active = TRUE AND o.expire_date >= NOW()`,
		nil, limit, offset)
}

func (r *jobOfferRepo) FetchByEmployer(ctx context.Context, employerProfileID int64, limit, offset int) ([]domain.JobOffer, int64, error) {
	return r.fetch(ctx,
		`WHERE o.employer_profile_id = $3`,
		[]any{employerProfileID}, limit, offset)
}

func (r *jobOfferRepo) fetch(ctx context.Context, where string, extra []any, limit, offset int) ([]domain.JobOffer, int64, error) {
	query := fmt.Sprintf(`
		SELECT o.id, o.employer_profile_id, o.title, o.description, o.salary_from,
			o.salary_to, o.is_active, o.expire_date, o.created_at, o.updated_at,
			e.company_name, e.company_image_url,
			COUNT(*) OVER() AS total
		FROM job_offers o
		JOIN employer_profiles e ON o.employer_profile_id = e.id
		%s
		ORDER BY o.created_at DESC
		LIMIT $1 OFFSET $2`, where)

	args := append([]any{limit, offset}, extra...)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var offers []domain.JobOffer
	var total int64
	for rows.Next() {
		var offer domain.JobOffer
		if err := rows.Scan(
			&offer.ID, &offer.EmployerProfileID, &offer.Title, &offer.Description,
			&offer.SalaryFrom, &offer.SalaryTo, &offer.IsActive, &offer.ExpireDate,
			&offer.CreatedAt, &offer.UpdatedAt,
			&offer.CompanyName, &offer.CompanyImageURL,
			&total,
		); err != nil {
			return nil, 0, err
		}
		offers = append(offers, offer)
	}
	return offers, total, rows.Err()
}

func (r *jobOfferRepo) Update(ctx context.Context, offer *domain.JobOffer) error {
	query := `
		UPDATE job_offers SET
			title = $2, description = $3, salary_from = $4, salary_to = $5,
			is_active = $6, expire_date = $7, updated_at = NOW()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		offer.ID, offer.Title, offer.Description, offer.SalaryFrom,
		offer.SalaryTo, offer.IsActive, offer.ExpireDate,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobOfferRepo) Deactivate(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE job_offers SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobOfferRepo) GetQuestions(ctx context.Context, jobOfferID int64) ([]domain.RecruitmentQuestion, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, job_offer_id, question FROM recruitment_questions WHERE job_offer_id = $1 ORDER BY id`,
		jobOfferID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []domain.RecruitmentQuestion
	for rows.Next() {
		var q domain.RecruitmentQuestion
		if err := rows.Scan(&q.ID, &q.JobOfferID, &q.Question); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// ReplaceQuestions swaps the offer's question set atomically. Questions that
// already have answers survive the clearing delete; payload rows carrying an
// id update the surviving row, or are re-inserted when the clear removed it.
func (r *jobOfferRepo) ReplaceQuestions(ctx context.Context, jobOfferID int64, questions []domain.RecruitmentQuestion) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM recruitment_questions
		 WHERE job_offer_id = $1
		   AND id NOT IN (SELECT recruitment_question_id FROM candidate_answers)`,
		jobOfferID); err != nil {
		return fmt.Errorf("failed to clear questions: %w", err)
	}

	for i := range questions {
		if questions[i].ID != 0 {
			tag, err := tx.Exec(ctx,
				`UPDATE recruitment_questions SET question = $1 WHERE id = $2 AND job_offer_id = $3`,
				questions[i].Question, questions[i].ID, jobOfferID)
			if err != nil {
				return fmt.Errorf("failed to update question: %w", err)
			}
			if tag.RowsAffected() > 0 {
				questions[i].JobOfferID = jobOfferID
				continue
			}
			// cleared above (no answers yet), re-insert under a new id
		}
		err := tx.QueryRow(ctx,
			`INSERT INTO recruitment_questions (job_offer_id, question) VALUES ($1, $2) RETURNING id`,
			jobOfferID, questions[i].Question,
		).Scan(&questions[i].ID)
		if err != nil {
			return fmt.Errorf("failed to insert question: %w", err)
		}
		questions[i].JobOfferID = jobOfferID
	}

	return tx.Commit(ctx)
}

func (r *jobOfferRepo) GetTest(ctx context.Context, jobOfferID int64) (*domain.RecruitmentTest, error) {
	var test domain.RecruitmentTest
	var content []byte
	err := r.db.QueryRow(ctx,
		`SELECT id, job_offer_id, test_json, created_at FROM recruitment_tests WHERE job_offer_id = $1`,
		jobOfferID,
	).Scan(&test.ID, &test.JobOfferID, &content, &test.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(content, &test.Content); err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *jobOfferRepo) UpsertTest(ctx context.Context, test *domain.RecruitmentTest) error {
	content, err := json.Marshal(test.Content)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO recruitment_tests (job_offer_id, test_json, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (job_offer_id) DO UPDATE SET test_json = EXCLUDED.test_json
		RETURNING id, created_at`

	return r.db.QueryRow(ctx, query, test.JobOfferID, content).Scan(&test.ID, &test.CreatedAt)
}
