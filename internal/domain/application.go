package domain

import (
	"context"
	"time"
)

// Application is a candidate's submission against one job offer. At most one
// application may exist per (candidate_profile_id, job_offer_id) pair,
// enforced by a unique index.
type Application struct {
	ID                 int64             `json:"id"`
	CandidateProfileID int64             `json:"candidate_profile_id"`
	JobOfferID         int64             `json:"job_offer_id"`
	CvID               int64             `json:"cv_id"`
	Message            *string           `json:"message,omitempty"`
	Status             ApplicationStatus `json:"status"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`

	// Joined data for list responses
	JobTitle      *string `json:"job_title,omitempty"`
	CompanyName   *string `json:"company_name,omitempty"`
	CandidateName *string `json:"candidate_name,omitempty"`
}

// CandidateAnswer is the candidate's response to one recruitment question of
// the applied-to offer. One answer per question per application.
type CandidateAnswer struct {
	ID                    int64  `json:"id"`
	ApplicationID         int64  `json:"application_id"`
	RecruitmentQuestionID int64  `json:"recruitment_question_id"`
	Answer                string `json:"answer" validate:"required,max=5000"`
}

// ApplicationResponse is the employer's zero-or-one free-text reply.
type ApplicationResponse struct {
	ID            int64     `json:"id"`
	ApplicationID int64     `json:"application_id"`
	Response      string    `json:"response" validate:"required,max=5000"`
	CreatedAt     time.Time `json:"created_at"`
}

// ApplicationAggregate is the full read model returned to callers.
type ApplicationAggregate struct {
	Application *Application         `json:"application"`
	JobOffer    *JobOffer            `json:"job_offer,omitempty"`
	CV          *CandidateCV         `json:"cv,omitempty"`
	Answers     []CandidateAnswer    `json:"answers"`
	Response    *ApplicationResponse `json:"response,omitempty"`
	Meetings    []Meeting            `json:"meetings,omitempty"`
}

// ApplicationStats counts a candidate's applications grouped by status.
type ApplicationStats struct {
	Pending  int64 `json:"pending"`
	Accepted int64 `json:"accepted"`
	Rejected int64 `json:"rejected"`
	Canceled int64 `json:"canceled"`
	Total    int64 `json:"total"`
}

// AnswerInput is one submitted answer.
type AnswerInput struct {
	RecruitmentQuestionID int64  `json:"recruitment_question_id" validate:"required"`
	Answer                string `json:"answer" validate:"required,max=5000"`
}

// SubmitApplicationInput carries a new application.
type SubmitApplicationInput struct {
	JobOfferID int64         `json:"job_offer_id" validate:"required"`
	CvID       int64         `json:"cv_id" validate:"required"`
	Message    *string       `json:"message,omitempty" validate:"omitempty,max=5000"`
	Answers    []AnswerInput `json:"answers" validate:"dive"`
}

// ApplicationQuestions is the questions view for one application: the offer's
// questions, the candidate's current answers, and whether they may still edit.
type ApplicationQuestions struct {
	Questions []RecruitmentQuestion `json:"questions"`
	Answers   []CandidateAnswer     `json:"answers"`
	CanEdit   bool                  `json:"can_edit"`
}

type ApplicationRepository interface {
	// CreateWithAnswers inserts the application row and its answer rows in one
	// transaction. A unique violation on (candidate_profile_id, job_offer_id)
	// is reported as ErrDuplicate.
	CreateWithAnswers(ctx context.Context, app *Application, answers []CandidateAnswer) error
	GetByID(ctx context.Context, id int64) (*Application, error)
	GetAggregate(ctx context.Context, id int64) (*ApplicationAggregate, error)
	FetchByCandidate(ctx context.Context, candidateProfileID int64, status *ApplicationStatus, limit, offset int) ([]Application, int64, error)
	FetchByJobOffer(ctx context.Context, jobOfferID int64) ([]Application, error)
	Update(ctx context.Context, id int64, status ApplicationStatus, message *string) error
	// ReplaceAnswers deletes all answer rows then bulk-inserts the new set,
	// atomically.
	ReplaceAnswers(ctx context.Context, applicationID int64, answers []CandidateAnswer) error
	GetAnswers(ctx context.Context, applicationID int64) ([]CandidateAnswer, error)
	// DeleteWithAnswers removes answers then the application row in one
	// transaction.
	DeleteWithAnswers(ctx context.Context, id int64) error
	CountByStatus(ctx context.Context, candidateProfileID int64) (*ApplicationStats, error)
	UpsertResponse(ctx context.Context, resp *ApplicationResponse) error
}

type ApplicationUsecase interface {
	// Candidate operations
	Submit(ctx context.Context, userID int64, input SubmitApplicationInput) (*ApplicationAggregate, error)
	Get(ctx context.Context, userID, id int64) (*ApplicationAggregate, error)
	List(ctx context.Context, userID int64, page, pageSize int, status string) ([]Application, int64, error)
	CandidateUpdate(ctx context.Context, userID, id int64, status, message *string) (*ApplicationAggregate, error)
	ReplaceAnswers(ctx context.Context, userID, id int64, answers []AnswerInput) error
	Delete(ctx context.Context, userID, id int64) error
	Stats(ctx context.Context, userID int64) (*ApplicationStats, error)
	Questions(ctx context.Context, userID, id int64) (*ApplicationQuestions, error)

	// Employer operations
	ListForOffer(ctx context.Context, userID, jobOfferID int64) ([]Application, error)
	Decide(ctx context.Context, userID, id int64, status ApplicationStatus) error
	Respond(ctx context.Context, userID, id int64, text string) (*ApplicationResponse, error)
	ExportForOffer(ctx context.Context, userID, jobOfferID int64) ([]byte, error)
}
