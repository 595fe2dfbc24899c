package usecase

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/xuri/excelize/v2"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/validation"
)

// StatsCache caches per-candidate application stats. Implementations are
// best-effort: a miss or a failure just falls through to the database.
type StatsCache interface {
	Get(ctx context.Context, candidateProfileID int64) (*domain.ApplicationStats, bool)
	Set(ctx context.Context, candidateProfileID int64, stats *domain.ApplicationStats)
	Invalidate(ctx context.Context, candidateProfileID int64)
}

type applicationUsecase struct {
	profileGuard
	applicationRepo domain.ApplicationRepository
	jobOfferRepo    domain.JobOfferRepository
	cvRepo          domain.CVRepository
	meetingRepo     domain.MeetingRepository
	statsCache      StatsCache
	validate        *validator.Validate
}

// NewApplicationUsecase creates a new application usecase. statsCache may be
// nil when no cache backend is configured.
func NewApplicationUsecase(
	applicationRepo domain.ApplicationRepository,
	jobOfferRepo domain.JobOfferRepository,
	cvRepo domain.CVRepository,
	meetingRepo domain.MeetingRepository,
	candidateRepo domain.CandidateRepository,
	employerRepo domain.EmployerRepository,
	statsCache StatsCache,
	validate *validator.Validate,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		profileGuard:    profileGuard{candidateRepo: candidateRepo, employerRepo: employerRepo},
		applicationRepo: applicationRepo,
		jobOfferRepo:    jobOfferRepo,
		cvRepo:          cvRepo,
		meetingRepo:     meetingRepo,
		statsCache:      statsCache,
		validate:        validate,
	}
}

// Submit creates a PENDING application plus its answers in one transaction.
func (uc *applicationUsecase) Submit(ctx context.Context, userID int64, input domain.SubmitApplicationInput) (*domain.ApplicationAggregate, error) {
	profile, err := uc.candidateProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := uc.validate.Struct(input); err != nil {
		return nil, apperror.Validation("Invalid application data", validation.FieldErrors(err))
	}

	offer, err := uc.openOffer(ctx, input.JobOfferID)
	if err != nil {
		return nil, err
	}

	if _, err := uc.cvRepo.GetOwned(ctx, input.CvID, profile.ID); err != nil {
		if err == domain.ErrNotFound {
			return nil, apperror.NotFound("CV not found")
		}
		return nil, apperror.Internal(err)
	}

	answers, err := uc.buildAnswers(ctx, offer.ID, input.Answers)
	if err != nil {
		return nil, err
	}

	app := &domain.Application{
		CandidateProfileID: profile.ID,
		JobOfferID:         offer.ID,
		CvID:               input.CvID,
		Message:            input.Message,
		Status:             domain.StatusPending,
	}
	if err := uc.applicationRepo.CreateWithAnswers(ctx, app, answers); err != nil {
		if err == domain.ErrDuplicate {
			return nil, apperror.BadRequest("You have already applied to this job offer")
		}
		return nil, apperror.Internal(err)
	}

	uc.invalidateStats(ctx, profile.ID)
	return uc.aggregate(ctx, app.ID)
}

func (uc *applicationUsecase) Get(ctx context.Context, userID, id int64) (*domain.ApplicationAggregate, error) {
	profile, err := uc.candidateProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	app, err := uc.ownedApplication(ctx, id, profile)
	if err != nil {
		return nil, err
	}
	return uc.aggregate(ctx, app.ID)
}

func (uc *applicationUsecase) List(ctx context.Context, userID int64, page, pageSize int, status string) ([]domain.Application, int64, error) {
	profile, err := uc.candidateProfile(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	var statusFilter *domain.ApplicationStatus
	if status != "" {
		s := domain.ApplicationStatus(status)
		if !s.Valid() {
			return nil, 0, apperror.BadRequest("Invalid status filter")
		}
		statusFilter = &s
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	apps, total, err := uc.applicationRepo.FetchByCandidate(ctx, profile.ID, statusFilter, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	return apps, total, nil
}

// CandidateUpdate applies the only transitions a candidate may make: status
// to CANCELED while PENDING, and message edits while PENDING.
func (uc *applicationUsecase) CandidateUpdate(ctx context.Context, userID, id int64, status, message *string) (*domain.ApplicationAggregate, error) {
	profile, err := uc.candidateProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	app, err := uc.ownedApplication(ctx, id, profile)
	if err != nil {
		return nil, err
	}

	newStatus := app.Status
	if status != nil {
		requested := domain.ApplicationStatus(*status)
		if requested != domain.StatusCanceled {
			return nil, apperror.Forbidden("Candidates may only cancel an application")
		}
		if !domain.CanTransition(app.Status, requested) {
			return nil, apperror.BadRequest("Application can no longer be canceled")
		}
		newStatus = requested
	}

	if message != nil && app.Status != domain.StatusPending {
		return nil, apperror.BadRequest("Message can only be changed while the application is pending")
	}

	if err := uc.applicationRepo.Update(ctx, id, newStatus, message); err != nil {
		return nil, apperror.Internal(err)
	}

	uc.invalidateStats(ctx, profile.ID)
	return uc.aggregate(ctx, id)
}

// ReplaceAnswers swaps the full answer set atomically; only while PENDING.
func (uc *applicationUsecase) ReplaceAnswers(ctx context.Context, userID, id int64, answers []domain.AnswerInput) error {
	profile, err := uc.candidateProfile(ctx, userID)
	if err != nil {
		return err
	}
	app, err := uc.ownedApplication(ctx, id, profile)
	if err != nil {
		return err
	}
	if app.Status != domain.StatusPending {
		return apperror.BadRequest("Answers can only be changed while the application is pending")
	}

	rows, err := uc.buildAnswers(ctx, app.JobOfferID, answers)
	if err != nil {
		return err
	}
	if err := uc.applicationRepo.ReplaceAnswers(ctx, id, rows); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// Delete removes the application and its answers; only PENDING or CANCELED
// applications can be deleted.
func (uc *applicationUsecase) Delete(ctx context.Context, userID, id int64) error {
	profile, err := uc.candidateProfile(ctx, userID)
	if err != nil {
		return err
	}
	app, err := uc.ownedApplication(ctx, id, profile)
	if err != nil {
		return err
	}
	if app.Status != domain.StatusPending && app.Status != domain.StatusCanceled {
		return apperror.BadRequest("Only pending or canceled applications can be deleted")
	}

	if err := uc.applicationRepo.DeleteWithAnswers(ctx, id); err != nil {
		return apperror.Internal(err)
	}
	uc.invalidateStats(ctx, profile.ID)
	return nil
}

func (uc *applicationUsecase) Stats(ctx context.Context, userID int64) (*domain.ApplicationStats, error) {
	profile, err := uc.candidateProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if uc.statsCache != nil {
		if stats, ok := uc.statsCache.Get(ctx, profile.ID); ok {
			return stats, nil
		}
	}

	stats, err := uc.applicationRepo.CountByStatus(ctx, profile.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if uc.statsCache != nil {
		uc.statsCache.Set(ctx, profile.ID, stats)
	}
	return stats, nil
}

func (uc *applicationUsecase) Questions(ctx context.Context, userID, id int64) (*domain.ApplicationQuestions, error) {
	profile, err := uc.candidateProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	app, err := uc.ownedApplication(ctx, id, profile)
	if err != nil {
		return nil, err
	}

	questions, err := uc.jobOfferRepo.GetQuestions(ctx, app.JobOfferID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	answers, err := uc.applicationRepo.GetAnswers(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &domain.ApplicationQuestions{
		Questions: questions,
		Answers:   answers,
		CanEdit:   app.Status == domain.StatusPending,
	}, nil
}

// ListForOffer returns the applications to one of the employer's offers.
func (uc *applicationUsecase) ListForOffer(ctx context.Context, userID, jobOfferID int64) ([]domain.Application, error) {
	offer, err := uc.ownedOffer(ctx, userID, jobOfferID)
	if err != nil {
		return nil, err
	}
	apps, err := uc.applicationRepo.FetchByJobOffer(ctx, offer.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

// Decide applies an employer decision through the same transition table the
// candidate path uses.
func (uc *applicationUsecase) Decide(ctx context.Context, userID, id int64, status domain.ApplicationStatus) error {
	if status != domain.StatusAccepted && status != domain.StatusRejected {
		return apperror.BadRequest("Status must be ACCEPTED or REJECTED")
	}

	app, err := uc.employerApplication(ctx, userID, id)
	if err != nil {
		return err
	}
	if !domain.CanTransition(app.Status, status) {
		return apperror.BadRequest("Application status can no longer be changed")
	}

	if err := uc.applicationRepo.Update(ctx, id, status, nil); err != nil {
		return apperror.Internal(err)
	}
	uc.invalidateStats(ctx, app.CandidateProfileID)
	return nil
}

func (uc *applicationUsecase) Respond(ctx context.Context, userID, id int64, text string) (*domain.ApplicationResponse, error) {
	if text == "" {
		return nil, apperror.BadRequest("Response text is required")
	}
	if _, err := uc.employerApplication(ctx, userID, id); err != nil {
		return nil, err
	}

	resp := &domain.ApplicationResponse{ApplicationID: id, Response: text}
	if err := uc.applicationRepo.UpsertResponse(ctx, resp); err != nil {
		return nil, apperror.Internal(err)
	}
	return resp, nil
}

// ExportForOffer renders the offer's applications as an XLSX sheet.
func (uc *applicationUsecase) ExportForOffer(ctx context.Context, userID, jobOfferID int64) ([]byte, error) {
	offer, err := uc.ownedOffer(ctx, userID, jobOfferID)
	if err != nil {
		return nil, err
	}
	apps, err := uc.applicationRepo.FetchByJobOffer(ctx, offer.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	headers := []string{"ID", "Candidate", "Status", "Message", "Submitted"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for row, app := range apps {
		values := []any{
			app.ID,
			deref(app.CandidateName),
			string(app.Status),
			deref(app.Message),
			app.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, apperror.Internal(err)
	}
	return buf.Bytes(), nil
}

// openOffer loads the offer and rejects inactive or expired ones. Both cases
// read as NOT_FOUND to the caller.
func (uc *applicationUsecase) openOffer(ctx context.Context, id int64) (*domain.JobOffer, error) {
	offer, err := uc.jobOfferRepo.GetByID(ctx, id)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, apperror.NotFound("Job offer not found")
		}
		return nil, apperror.Internal(err)
	}
	if !offer.Open(nowFunc()) {
		return nil, apperror.NotFound("Job offer is no longer accepting applications")
	}
	return offer, nil
}

// buildAnswers validates that every answer references a question of the given
// offer, exactly once, and returns the rows to insert.
func (uc *applicationUsecase) buildAnswers(ctx context.Context, jobOfferID int64, inputs []domain.AnswerInput) ([]domain.CandidateAnswer, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	questions, err := uc.jobOfferRepo.GetQuestions(ctx, jobOfferID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	known := make(map[int64]bool, len(questions))
	for _, q := range questions {
		known[q.ID] = true
	}

	seen := make(map[int64]bool, len(inputs))
	answers := make([]domain.CandidateAnswer, 0, len(inputs))
	for _, in := range inputs {
		if !known[in.RecruitmentQuestionID] {
			return nil, apperror.BadRequest(fmt.Sprintf("Question %d does not belong to this job offer", in.RecruitmentQuestionID))
		}
		if seen[in.RecruitmentQuestionID] {
			return nil, apperror.BadRequest(fmt.Sprintf("Duplicate answer for question %d", in.RecruitmentQuestionID))
		}
		seen[in.RecruitmentQuestionID] = true
		answers = append(answers, domain.CandidateAnswer{
			RecruitmentQuestionID: in.RecruitmentQuestionID,
			Answer:                in.Answer,
		})
	}
	return answers, nil
}

func (uc *applicationUsecase) ownedApplication(ctx context.Context, id int64, profile *domain.CandidateProfile) (*domain.Application, error) {
	app, err := uc.applicationRepo.GetByID(ctx, id)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal(err)
	}
	if err := ownApplication(app, profile); err != nil {
		return nil, err
	}
	return app, nil
}

// ownedOffer resolves the employer profile and verifies it owns the offer.
func (uc *applicationUsecase) ownedOffer(ctx context.Context, userID, jobOfferID int64) (*domain.JobOffer, error) {
	profile, err := uc.employerProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	offer, err := uc.jobOfferRepo.GetByID(ctx, jobOfferID)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, apperror.NotFound("Job offer not found")
		}
		return nil, apperror.Internal(err)
	}
	if err := ownOffer(offer, profile); err != nil {
		return nil, err
	}
	return offer, nil
}

// employerApplication verifies the employer owns the offer the application
// targets and returns the application.
func (uc *applicationUsecase) employerApplication(ctx context.Context, userID, id int64) (*domain.Application, error) {
	app, err := uc.applicationRepo.GetByID(ctx, id)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal(err)
	}
	if _, err := uc.ownedOffer(ctx, userID, app.JobOfferID); err != nil {
		return nil, err
	}
	return app, nil
}

func (uc *applicationUsecase) aggregate(ctx context.Context, id int64) (*domain.ApplicationAggregate, error) {
	agg, err := uc.applicationRepo.GetAggregate(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if agg.Meetings, err = uc.meetingRepo.FetchByApplication(ctx, id); err != nil {
		return nil, apperror.Internal(err)
	}
	return agg, nil
}

func (uc *applicationUsecase) invalidateStats(ctx context.Context, candidateProfileID int64) {
	if uc.statsCache != nil {
		uc.statsCache.Invalidate(ctx, candidateProfileID)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
