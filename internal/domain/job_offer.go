package domain

import (
	"context"
	"time"
)

type JobOffer struct {
	ID                int64     `json:"id"`
	EmployerProfileID int64     `json:"employer_profile_id"`
	Title             string    `json:"title" validate:"required,min=3,max=150"`
	Description       string    `json:"description" validate:"required,max=10000"`
	SalaryFrom        *float64  `json:"salary_from,omitempty" validate:"omitempty,gte=0"`
	SalaryTo          *float64  `json:"salary_to,omitempty" validate:"omitempty,gte=0"`
	IsActive          bool      `json:"is_active"`
	ExpireDate        time.Time `json:"expire_date" validate:"required"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	// Joined data for list responses
	CompanyName     *string `json:"company_name,omitempty"`
	CompanyImageURL *string `json:"company_image_url,omitempty"`
}

// Open reports whether the offer still accepts applications.
func (o *JobOffer) Open(now time.Time) bool {
	return o.IsActive && !o.ExpireDate.Before(now)
}

// RecruitmentQuestion is an employer-defined free-text question on an offer.
type RecruitmentQuestion struct {
	ID         int64  `json:"id"`
	JobOfferID int64  `json:"job_offer_id"`
	Question   string `json:"question" validate:"required,max=1000"`
}

// Recruitment test question types
const (
	TestQuestionText     = "text"
	TestQuestionChoice   = "choice"
	TestQuestionMultiple = "multiple"
)

// TestQuestion is one question of a recruitment test. For choice/multiple
// questions Options must be non-empty; CorrectAnswer is matched against them.
type TestQuestion struct {
	Question      string   `json:"question" validate:"required,max=1000"`
	Type          string   `json:"type" validate:"required,oneof=text choice multiple"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer *string  `json:"correctAnswer,omitempty"`
}

// RecruitmentTestContent is the validated shape stored in test_json.
type RecruitmentTestContent struct {
	Title     string         `json:"title" validate:"required,max=200"`
	Questions []TestQuestion `json:"questions" validate:"required,min=1,dive"`
}

// RecruitmentTest is the zero-or-one AI-assisted test attached to an offer.
type RecruitmentTest struct {
	ID         int64                  `json:"id"`
	JobOfferID int64                  `json:"job_offer_id"`
	Content    RecruitmentTestContent `json:"test_json"`
	CreatedAt  time.Time              `json:"created_at"`
}

type JobOfferRepository interface {
	Create(ctx context.Context, offer *JobOffer) error
	GetByID(ctx context.Context, id int64) (*JobOffer, error)
	FetchActive(ctx context.Context, limit, offset int) ([]JobOffer, int64, error)
	FetchByEmployer(ctx context.Context, employerProfileID int64, limit, offset int) ([]JobOffer, int64, error)
	Update(ctx context.Context, offer *JobOffer) error
	Deactivate(ctx context.Context, id int64) error
	GetQuestions(ctx context.Context, jobOfferID int64) ([]RecruitmentQuestion, error)
	ReplaceQuestions(ctx context.Context, jobOfferID int64, questions []RecruitmentQuestion) error
	GetTest(ctx context.Context, jobOfferID int64) (*RecruitmentTest, error)
	UpsertTest(ctx context.Context, test *RecruitmentTest) error
}

type JobOfferUsecase interface {
	Create(ctx context.Context, userID int64, offer *JobOffer) error
	Get(ctx context.Context, id int64) (*JobOffer, error)
	ListActive(ctx context.Context, page, pageSize int) ([]JobOffer, int64, error)
	ListMine(ctx context.Context, userID int64, page, pageSize int) ([]JobOffer, int64, error)
	Update(ctx context.Context, userID int64, offer *JobOffer) error
	Deactivate(ctx context.Context, userID, id int64) error
	ReplaceQuestions(ctx context.Context, userID, jobOfferID int64, questions []RecruitmentQuestion) error
	AttachTest(ctx context.Context, userID, jobOfferID int64, content RecruitmentTestContent) (*RecruitmentTest, error)
	GetTest(ctx context.Context, userID, jobOfferID int64) (*RecruitmentTest, error)
}
