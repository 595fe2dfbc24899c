package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-jobboard-backend/internal/domain"
)

type meetingRepo struct {
	db *pgxpool.Pool
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *pgxpool.Pool) domain.MeetingRepository {
	return &meetingRepo{db: db}
}

const meetingColumns = `id, application_id, date_time, type, contributors,
	online_meeting_url, message, created_at, updated_at`

func (r *meetingRepo) Create(ctx context.Context, meeting *domain.Meeting) error {
	query := `
		INSERT INTO meetings (application_id, date_time, type, contributors,
			online_meeting_url, message, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING id`

	now := time.Now()
	meeting.CreatedAt = now
	meeting.UpdatedAt = now

	return r.db.QueryRow(ctx, query,
		meeting.ApplicationID, meeting.DateTime, meeting.Type, meeting.Contributors,
		meeting.OnlineMeetingURL, meeting.Message, now,
	).Scan(&meeting.ID)
}

func (r *meetingRepo) GetByID(ctx context.Context, id int64) (*domain.Meeting, error) {
	var m domain.Meeting
	err := r.db.QueryRow(ctx,
		`SELECT `+meetingColumns+` FROM meetings WHERE id = $1`, id,
	).Scan(
		&m.ID, &m.ApplicationID, &m.DateTime, &m.Type, &m.Contributors,
		&m.OnlineMeetingURL, &m.Message, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *meetingRepo) Update(ctx context.Context, meeting *domain.Meeting) error {
	query := `
		UPDATE meetings SET
			date_time = $2, type = $3, contributors = $4,
			online_meeting_url = $5, message = $6, updated_at = NOW()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		meeting.ID, meeting.DateTime, meeting.Type, meeting.Contributors,
		meeting.OnlineMeetingURL, meeting.Message,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *meetingRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM meetings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *meetingRepo) FetchByApplication(ctx context.Context, applicationID int64) ([]domain.Meeting, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+meetingColumns+` FROM meetings WHERE application_id = $1 ORDER BY date_time`,
		applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMeetings(rows)
}

func (r *meetingRepo) FetchByEmployerRange(ctx context.Context, employerProfileID int64, from, to *time.Time) ([]domain.Meeting, error) {
	query := `
		SELECT m.id, m.application_id, m.date_time, m.type, m.contributors,
			m.online_meeting_url, m.message, m.created_at, m.updated_at
		FROM meetings m
		JOIN applications a ON m.application_id = a.id
		JOIN job_offers o ON a.job_offer_id = o.id
		WHERE o.employer_profile_id = $1
		  AND ($2::timestamptz IS NULL OR m.date_time >= $2)
		  AND ($3::timestamptz IS NULL OR m.date_time <= $3)
		ORDER BY m.date_time`

	rows, err := r.db.Query(ctx, query, employerProfileID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMeetings(rows)
}

func scanMeetings(rows pgx.Rows) ([]domain.Meeting, error) {
	var meetings []domain.Meeting
	for rows.Next() {
		var m domain.Meeting
		if err := rows.Scan(
			&m.ID, &m.ApplicationID, &m.DateTime, &m.Type, &m.Contributors,
			&m.OnlineMeetingURL, &m.Message, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		meetings = append(meetings, m)
	}
	return meetings, rows.Err()
}
