package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-jobboard-backend/internal/domain"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

// CreateWithAnswers inserts the application and its answers as one unit. The
// unique index on (candidate_profile_id, job_offer_id) is the duplicate
// arbiter; a violation surfaces as domain.ErrDuplicate.
func (r *applicationRepo) CreateWithAnswers(ctx context.Context, app *domain.Application, answers []domain.CandidateAnswer) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO applications (candidate_profile_id, job_offer_id, cv_id, message, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING id`

	now := time.Now()
	app.CreatedAt = now
	app.UpdatedAt = now
	if app.Status == "" {
		app.Status = domain.StatusPending
	}

	err = tx.QueryRow(ctx, query,
		app.CandidateProfileID, app.JobOfferID, app.CvID, app.Message, app.Status, now,
	).Scan(&app.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrDuplicate
		}
		return err
	}

	for i := range answers {
		answers[i].ApplicationID = app.ID
		err := tx.QueryRow(ctx,
			`INSERT INTO candidate_answers (application_id, recruitment_question_id, answer)
			 VALUES ($1, $2, $3) RETURNING id`,
			app.ID, answers[i].RecruitmentQuestionID, answers[i].Answer,
		).Scan(&answers[i].ID)
		if err != nil {
			return fmt.Errorf("failed to insert answer: %w", err)
		}
	}

	return tx.Commit(ctx)
}

const applicationColumns = `a.id, a.candidate_profile_id, a.job_offer_id, a.cv_id,
	a.message, a.status, a.created_at, a.updated_at`

func (r *applicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications a WHERE a.id = $1`

	var app domain.Application
	err := r.db.QueryRow(ctx, query, id).Scan(
		&app.ID, &app.CandidateProfileID, &app.JobOfferID, &app.CvID,
		&app.Message, &app.Status, &app.CreatedAt, &app.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

// GetAggregate loads the application read model: application, offer with
// company, CV, answers, and employer response. Meetings come from the meeting
// repository; the usecase attaches them.
func (r *applicationRepo) GetAggregate(ctx context.Context, id int64) (*domain.ApplicationAggregate, error) {
	app, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	agg := &domain.ApplicationAggregate{Application: app, Answers: []domain.CandidateAnswer{}}

	offerQuery := `
		SELECT o.id, o.employer_profile_id, o.title, o.description, o.salary_from,
			o.salary_to, o.is_active, o.expire_date, o.created_at, o.updated_at,
			e.company_name, e.company_image_url
		FROM job_offers o
		JOIN employer_profiles e ON o.employer_profile_id = e.id
		WHERE o.id = $1`
	var offer domain.JobOffer
	err = r.db.QueryRow(ctx, offerQuery, app.JobOfferID).Scan(
		&offer.ID, &offer.EmployerProfileID, &offer.Title, &offer.Description,
		&offer.SalaryFrom, &offer.SalaryTo, &offer.IsActive, &offer.ExpireDate,
		&offer.CreatedAt, &offer.UpdatedAt,
		&offer.CompanyName, &offer.CompanyImageURL,
	)
	if err != nil {
		return nil, err
	}
	agg.JobOffer = &offer

	var cv domain.CandidateCV
	var cvJSON []byte
	err = r.db.QueryRow(ctx,
		`SELECT id, candidate_profile_id, name, cv_url, cv_json, is_deleted, created_at
		 FROM candidate_cvs WHERE id = $1`, app.CvID,
	).Scan(&cv.ID, &cv.CandidateProfileID, &cv.Name, &cv.CvURL, &cvJSON, &cv.IsDeleted, &cv.CreatedAt)
	if err != nil && err != pgx.ErrNoRows {
		return nil, err
	}
	if err == nil {
		cv.CvJSON = cvJSON
		agg.CV = &cv
	}

	if agg.Answers, err = r.GetAnswers(ctx, id); err != nil {
		return nil, err
	}

	var resp domain.ApplicationResponse
	err = r.db.QueryRow(ctx,
		`SELECT id, application_id, response, created_at FROM application_responses WHERE application_id = $1`, id,
	).Scan(&resp.ID, &resp.ApplicationID, &resp.Response, &resp.CreatedAt)
	if err != nil && err != pgx.ErrNoRows {
		return nil, err
	}
	if err == nil {
		agg.Response = &resp
	}

	return agg, nil
}

func (r *applicationRepo) FetchByCandidate(ctx context.Context, candidateProfileID int64, status *domain.ApplicationStatus, limit, offset int) ([]domain.Application, int64, error) {
	query := `
		SELECT ` + applicationColumns + `,
			j.title, e.company_name,
			COUNT(*) OVER() AS total
		FROM applications a
		JOIN job_offers j ON a.job_offer_id = j.id
		JOIN employer_profiles e ON j.employer_profile_id = e.id
		WHERE a.candidate_profile_id = $1
		  AND ($2::text IS NULL OR a.status = $2)
		ORDER BY a.created_at DESC
		LIMIT $3 OFFSET $4`

	rows, err := r.db.Query(ctx, query, candidateProfileID, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var applications []domain.Application
	var total int64
	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(
			&app.ID, &app.CandidateProfileID, &app.JobOfferID, &app.CvID,
			&app.Message, &app.Status, &app.CreatedAt, &app.UpdatedAt,
			&app.JobTitle, &app.CompanyName,
			&total,
		); err != nil {
			return nil, 0, err
		}
		applications = append(applications, app)
	}
	return applications, total, rows.Err()
}

func (r *applicationRepo) FetchByJobOffer(ctx context.Context, jobOfferID int64) ([]domain.Application, error) {
	query := `
		SELECT ` + applicationColumns + `,
			TRIM(COALESCE(c.name, '') || ' ' || COALESCE(c.last_name, ''))
		FROM applications a
		JOIN candidate_profiles c ON a.candidate_profile_id = c.id
		WHERE a.job_offer_id = $1
		ORDER BY a.created_at DESC`

	rows, err := r.db.Query(ctx, query, jobOfferID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []domain.Application
	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(
			&app.ID, &app.CandidateProfileID, &app.JobOfferID, &app.CvID,
			&app.Message, &app.Status, &app.CreatedAt, &app.UpdatedAt,
			&app.CandidateName,
		); err != nil {
			return nil, err
		}
		applications = append(applications, app)
	}
	return applications, rows.Err()
}

func (r *applicationRepo) Update(ctx context.Context, id int64, status domain.ApplicationStatus, message *string) error {
	query := `
		UPDATE applications SET
			status = $2,
			message = COALESCE($3, message),
			updated_at = NOW()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, status, message)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReplaceAnswers swaps the full answer set atomically: delete everything,
// then bulk-insert the new rows.
func (r *applicationRepo) ReplaceAnswers(ctx context.Context, applicationID int64, answers []domain.CandidateAnswer) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM candidate_answers WHERE application_id = $1`, applicationID); err != nil {
		return fmt.Errorf("failed to clear answers: %w", err)
	}
	for i := range answers {
		answers[i].ApplicationID = applicationID
		err := tx.QueryRow(ctx,
			`INSERT INTO candidate_answers (application_id, recruitment_question_id, answer)
			 VALUES ($1, $2, $3) RETURNING id`,
			applicationID, answers[i].RecruitmentQuestionID, answers[i].Answer,
		).Scan(&answers[i].ID)
		if err != nil {
			return fmt.Errorf("failed to insert answer: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (r *applicationRepo) GetAnswers(ctx context.Context, applicationID int64) ([]domain.CandidateAnswer, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, application_id, recruitment_question_id, answer
		 FROM candidate_answers WHERE application_id = $1 ORDER BY id`, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	answers := []domain.CandidateAnswer{}
	for rows.Next() {
		var ans domain.CandidateAnswer
		if err := rows.Scan(&ans.ID, &ans.ApplicationID, &ans.RecruitmentQuestionID, &ans.Answer); err != nil {
			return nil, err
		}
		answers = append(answers, ans)
	}
	return answers, rows.Err()
}

// DeleteWithAnswers removes answers before the parent row to satisfy
// referential integrity, in one transaction. Meetings and responses are also
// dropped; only PENDING/CANCELED applications reach this path, which never
// carry either in practice.
func (r *applicationRepo) DeleteWithAnswers(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM candidate_answers WHERE application_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete answers: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM meetings WHERE application_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete meetings: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM application_responses WHERE application_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete response: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return tx.Commit(ctx)
}

func (r *applicationRepo) CountByStatus(ctx context.Context, candidateProfileID int64) (*domain.ApplicationStats, error) {
	rows, err := r.db.Query(ctx,
		`SELECT status, COUNT(*) FROM applications WHERE candidate_profile_id = $1 GROUP BY status`,
		candidateProfileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats domain.ApplicationStats
	for rows.Next() {
		var status domain.ApplicationStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		switch status {
		case domain.StatusPending:
			stats.Pending = count
		case domain.StatusAccepted:
			stats.Accepted = count
		case domain.StatusRejected:
			stats.Rejected = count
		case domain.StatusCanceled:
			stats.Canceled = count
		}
		stats.Total += count
	}
	return &stats, rows.Err()
}

func (r *applicationRepo) UpsertResponse(ctx context.Context, resp *domain.ApplicationResponse) error {
	query := `
		INSERT INTO application_responses (application_id, response, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (application_id) DO UPDATE SET response = EXCLUDED.response
		RETURNING id, created_at`

	return r.db.QueryRow(ctx, query, resp.ApplicationID, resp.Response).Scan(&resp.ID, &resp.CreatedAt)
}
