package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/validation"
)

func init() {
	logger.Log = zap.NewNop()
}

// Mock Repositories

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) CreateWithProfile(ctx context.Context, user *domain.User, candidate *domain.CandidateProfile, employer *domain.EmployerProfile) error {
	return m.Called(ctx, user, candidate, employer).Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockCandidateRepo struct {
	mock.Mock
}

func (m *MockCandidateRepo) GetByID(ctx context.Context, id int64) (*domain.CandidateProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CandidateProfile), args.Error(1)
}
func (m *MockCandidateRepo) GetByUserID(ctx context.Context, userID int64) (*domain.CandidateProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CandidateProfile), args.Error(1)
}
func (m *MockCandidateRepo) Update(ctx context.Context, profile *domain.CandidateProfile) error {
	return m.Called(ctx, profile).Error(0)
}
func (m *MockCandidateRepo) GetLinks(ctx context.Context, profileID int64) ([]domain.ProfileLink, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProfileLink), args.Error(1)
}
func (m *MockCandidateRepo) ReplaceLinks(ctx context.Context, profileID int64, links []domain.ProfileLink) error {
	return m.Called(ctx, profileID, links).Error(0)
}

type MockEmployerRepo struct {
	mock.Mock
}

func (m *MockEmployerRepo) GetByID(ctx context.Context, id int64) (*domain.EmployerProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmployerProfile), args.Error(1)
}
func (m *MockEmployerRepo) GetByUserID(ctx context.Context, userID int64) (*domain.EmployerProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmployerProfile), args.Error(1)
}
func (m *MockEmployerRepo) Update(ctx context.Context, profile *domain.EmployerProfile) error {
	return m.Called(ctx, profile).Error(0)
}

type MockJobOfferRepo struct {
	mock.Mock
}

func (m *MockJobOfferRepo) Create(ctx context.Context, offer *domain.JobOffer) error {
	return m.Called(ctx, offer).Error(0)
}
func (m *MockJobOfferRepo) GetByID(ctx context.Context, id int64) (*domain.JobOffer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobOffer), args.Error(1)
}
func (m *MockJobOfferRepo) FetchActive(ctx context.Context, limit, offset int) ([]domain.JobOffer, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.JobOffer), args.Get(1).(int64), args.Error(2)
}
func (m *MockJobOfferRepo) FetchByEmployer(ctx context.Context, employerProfileID int64, limit, offset int) ([]domain.JobOffer, int64, error) {
	args := m.Called(ctx, employerProfileID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.JobOffer), args.Get(1).(int64), args.Error(2)
}
func (m *MockJobOfferRepo) Update(ctx context.Context, offer *domain.JobOffer) error {
	return m.Called(ctx, offer).Error(0)
}
func (m *MockJobOfferRepo) Deactivate(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockJobOfferRepo) GetQuestions(ctx context.Context, jobOfferID int64) ([]domain.RecruitmentQuestion, error) {
	args := m.Called(ctx, jobOfferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecruitmentQuestion), args.Error(1)
}
func (m *MockJobOfferRepo) ReplaceQuestions(ctx context.Context, jobOfferID int64, questions []domain.RecruitmentQuestion) error {
	return m.Called(ctx, jobOfferID, questions).Error(0)
}
func (m *MockJobOfferRepo) GetTest(ctx context.Context, jobOfferID int64) (*domain.RecruitmentTest, error) {
	args := m.Called(ctx, jobOfferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecruitmentTest), args.Error(1)
}
func (m *MockJobOfferRepo) UpsertTest(ctx context.Context, test *domain.RecruitmentTest) error {
	return m.Called(ctx, test).Error(0)
}

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) CreateWithAnswers(ctx context.Context, app *domain.Application, answers []domain.CandidateAnswer) error {
	return m.Called(ctx, app, answers).Error(0)
}
func (m *MockApplicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) GetAggregate(ctx context.Context, id int64) (*domain.ApplicationAggregate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApplicationAggregate), args.Error(1)
}
func (m *MockApplicationRepo) FetchByCandidate(ctx context.Context, candidateProfileID int64, status *domain.ApplicationStatus, limit, offset int) ([]domain.Application, int64, error) {
	args := m.Called(ctx, candidateProfileID, status, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Application), args.Get(1).(int64), args.Error(2)
}
func (m *MockApplicationRepo) FetchByJobOffer(ctx context.Context, jobOfferID int64) ([]domain.Application, error) {
	args := m.Called(ctx, jobOfferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) Update(ctx context.Context, id int64, status domain.ApplicationStatus, message *string) error {
	return m.Called(ctx, id, status, message).Error(0)
}
func (m *MockApplicationRepo) ReplaceAnswers(ctx context.Context, applicationID int64, answers []domain.CandidateAnswer) error {
	return m.Called(ctx, applicationID, answers).Error(0)
}
func (m *MockApplicationRepo) GetAnswers(ctx context.Context, applicationID int64) ([]domain.CandidateAnswer, error) {
	args := m.Called(ctx, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CandidateAnswer), args.Error(1)
}
func (m *MockApplicationRepo) DeleteWithAnswers(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockApplicationRepo) CountByStatus(ctx context.Context, candidateProfileID int64) (*domain.ApplicationStats, error) {
	args := m.Called(ctx, candidateProfileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApplicationStats), args.Error(1)
}
func (m *MockApplicationRepo) UpsertResponse(ctx context.Context, resp *domain.ApplicationResponse) error {
	return m.Called(ctx, resp).Error(0)
}

type MockMeetingRepo struct {
	mock.Mock
}

func (m *MockMeetingRepo) Create(ctx context.Context, meeting *domain.Meeting) error {
	return m.Called(ctx, meeting).Error(0)
}
func (m *MockMeetingRepo) GetByID(ctx context.Context, id int64) (*domain.Meeting, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Meeting), args.Error(1)
}
func (m *MockMeetingRepo) Update(ctx context.Context, meeting *domain.Meeting) error {
	return m.Called(ctx, meeting).Error(0)
}
func (m *MockMeetingRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockMeetingRepo) FetchByApplication(ctx context.Context, applicationID int64) ([]domain.Meeting, error) {
	args := m.Called(ctx, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Meeting), args.Error(1)
}
func (m *MockMeetingRepo) FetchByEmployerRange(ctx context.Context, employerProfileID int64, from, to *time.Time) ([]domain.Meeting, error) {
	args := m.Called(ctx, employerProfileID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Meeting), args.Error(1)
}

type MockCVRepo struct {
	mock.Mock
}

func (m *MockCVRepo) Create(ctx context.Context, cv *domain.CandidateCV) error {
	return m.Called(ctx, cv).Error(0)
}
func (m *MockCVRepo) GetOwned(ctx context.Context, id, candidateProfileID int64) (*domain.CandidateCV, error) {
	args := m.Called(ctx, id, candidateProfileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CandidateCV), args.Error(1)
}
func (m *MockCVRepo) ListByProfile(ctx context.Context, candidateProfileID int64) ([]domain.CandidateCV, error) {
	args := m.Called(ctx, candidateProfileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CandidateCV), args.Error(1)
}
func (m *MockCVRepo) SoftDelete(ctx context.Context, id, candidateProfileID int64) error {
	return m.Called(ctx, id, candidateProfileID).Error(0)
}

type MockAccountRepo struct {
	mock.Mock
}

func (m *MockAccountRepo) Anonymize(ctx context.Context, userID int64, username, email, companyPlaceholder string) (*domain.AnonymizeSummary, error) {
	args := m.Called(ctx, userID, username, email, companyPlaceholder)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnonymizeSummary), args.Error(1)
}

type MockStatsCache struct {
	mock.Mock
}

func (m *MockStatsCache) Get(ctx context.Context, candidateProfileID int64) (*domain.ApplicationStats, bool) {
	args := m.Called(ctx, candidateProfileID)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*domain.ApplicationStats), args.Bool(1)
}
func (m *MockStatsCache) Set(ctx context.Context, candidateProfileID int64, stats *domain.ApplicationStats) {
	m.Called(ctx, candidateProfileID, stats)
}
func (m *MockStatsCache) Invalidate(ctx context.Context, candidateProfileID int64) {
	m.Called(ctx, candidateProfileID)
}

// Fixtures

type applicationFixture struct {
	applicationRepo *MockApplicationRepo
	jobOfferRepo    *MockJobOfferRepo
	cvRepo          *MockCVRepo
	meetingRepo     *MockMeetingRepo
	candidateRepo   *MockCandidateRepo
	employerRepo    *MockEmployerRepo
	uc              domain.ApplicationUsecase
}

func newApplicationFixture(cache usecase.StatsCache) *applicationFixture {
	f := &applicationFixture{
		applicationRepo: new(MockApplicationRepo),
		jobOfferRepo:    new(MockJobOfferRepo),
		cvRepo:          new(MockCVRepo),
		meetingRepo:     new(MockMeetingRepo),
		candidateRepo:   new(MockCandidateRepo),
		employerRepo:    new(MockEmployerRepo),
	}
	f.uc = usecase.NewApplicationUsecase(
		f.applicationRepo, f.jobOfferRepo, f.cvRepo, f.meetingRepo,
		f.candidateRepo, f.employerRepo, cache, validator.New(),
	)
	return f
}

func openOffer(id, employerProfileID int64) *domain.JobOffer {
	return &domain.JobOffer{
		ID:                id,
		EmployerProfileID: employerProfileID,
		Title:             "Backend Engineer",
		Description:       "Go services",
		IsActive:          true,
		ExpireDate:        time.Now().Add(30 * 24 * time.Hour),
	}
}

func assertCode(t *testing.T, err error, code int) {
	t.Helper()
	assert.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	if assert.True(t, ok, "expected *apperror.AppError, got %T", err) {
		assert.Equal(t, code, appErr.Code)
	}
}

// Tests

func TestSubmitApplication(t *testing.T) {
	ctx := context.Background()
	profile := &domain.CandidateProfile{ID: 10, UserID: 1}

	t.Run("Should create a pending application with answers", func(t *testing.T) {
		f := newApplicationFixture(nil)
		f.candidateRepo.On("GetByUserID", ctx, int64(1)).Return(profile, nil)
		f.jobOfferRepo.On("GetByID", ctx, int64(5)).Return(openOffer(5, 20), nil)
		f.cvRepo.On("GetOwned", ctx, int64(7), int64(10)).Return(&domain.CandidateCV{ID: 7}, nil)
		f.jobOfferRepo.On("GetQuestions", ctx, int64(5)).Return([]domain.RecruitmentQuestion{{ID: 100, JobOfferID: 5}}, nil)
		f.applicationRepo.On("CreateWithAnswers", ctx, mock.AnythingOfType("*domain.Application"), mock.AnythingOfType("[]domain.CandidateAnswer")).
			Return(nil).
			Run(func(args mock.Arguments) {
				app := args.Get(1).(*domain.Application)
				assert.Equal(t, domain.StatusPending, app.Status)
				assert.Equal(t, int64(10), app.CandidateProfileID)
				app.ID = 42
			})
		f.applicationRepo.On("GetAggregate", ctx, int64(42)).Return(&domain.ApplicationAggregate{
			Application: &domain.Application{ID: 42, Status: domain.StatusPending},
		}, nil)
		f.meetingRepo.On("FetchByApplication", ctx, int64(42)).Return(nil, nil)

		agg, err := f.uc.Submit(ctx, 1, domain.SubmitApplicationInput{
			JobOfferID: 5,
			CvID:       7,
			Answers:    []domain.AnswerInput{{RecruitmentQuestionID: 100, Answer: "Five years of Go"}},
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(42), agg.Application.ID)
	})

	t.Run("Should reject a second application to the same offer", func(t *testing.T) {
		f := newApplicationFixture(nil)
		f.candidateRepo.On("GetByUserID", ctx, int64(1)).Return(profile, nil)
		f.jobOfferRepo.On("GetByID", ctx, int64(5)).Return(openOffer(5, 20), nil)
		f.cvRepo.On("GetOwned", ctx, int64(7), int64(10)).Return(&domain.CandidateCV{ID: 7}, nil)
		f.applicationRepo.On("CreateWithAnswers", ctx, mock.Anything, mock.Anything).Return(domain.ErrDuplicate)

		_, err := f.uc.Submit(ctx, 1, domain.SubmitApplicationInput{JobOfferID: 5, CvID: 7})
		assertCode(t, err, 400)
		assert.Contains(t, err.Error(), "already applied")
	})

	t.Run("Should hide expired offers as not found", func(t *testing.T) {
		f := newApplicationFixture(nil)
		expired := openOffer(5, 20)
		expired.ExpireDate = time.Now().Add(-24 * time.Hour)
		f.candidateRepo.On("GetByUserID", ctx, int64(1)).Return(profile, nil)
		f.jobOfferRepo.On("GetByID", ctx, int64(5)).Return(expired, nil)

		_, err := f.uc.Submit(ctx, 1, domain.SubmitApplicationInput{JobOfferID: 5, CvID: 7})
		assertCode(t, err, 404)
	})

	t.Run("Should hide another candidate's CV as not found", func(t *testing.T) {
		f := newApplicationFixture(nil)
		f.candidateRepo.On("GetByUserID", ctx, int64(1)).Return(profile, nil)
		f.jobOfferRepo.On("GetByID", ctx, int64(5)).Return(openOffer(5, 20), nil)
		f.cvRepo.On("GetOwned", ctx, int64(7), int64(10)).Return(nil, domain.ErrNotFound)

		_, err := f.uc.Submit(ctx, 1, domain.SubmitApplicationInput{JobOfferID: 5, CvID: 7})
		assertCode(t, err, 404)
	})

	t.Run("Should reject answers to questions of another offer", func(t *testing.T) {
		f := newApplicationFixture(nil)
		f.candidateRepo.On("GetByUserID", ctx, int64(1)).Return(profile, nil)
		f.jobOfferRepo.On("GetByID", ctx, int64(5)).Return(openOffer(5, 20), nil)
		f.cvRepo.On("GetOwned", ctx, int64(7), int64(10)).Return(&domain.CandidateCV{ID: 7}, nil)
		f.jobOfferRepo.On("GetQuestions", ctx, int64(5)).Return([]domain.RecruitmentQuestion{{ID: 100}}, nil)

		_, err := f.uc.Submit(ctx, 1, domain.SubmitApplicationInput{
			JobOfferID: 5,
			CvID:       7,
			Answers:    []domain.AnswerInput{{RecruitmentQuestionID: 999, Answer: "n/a"}},
		})
		assertCode(t, err, 400)
		f.applicationRepo.AssertNotCalled(t, "CreateWithAnswers", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should reject duplicate answers to the same question", func(t *testing.T) {
		f := newApplicationFixture(nil)
		f.candidateRepo.On("GetByUserID", ctx, int64(1)).Return(profile, nil)
		f.jobOfferRepo.On("GetByID", ctx, int64(5)).Return(openOffer(5, 20), nil)
		f.cvRepo.On("GetOwned", ctx, int64(7), int64(10)).Return(&domain.CandidateCV{ID: 7}, nil)
		f.jobOfferRepo.On("GetQuestions", ctx, int64(5)).Return([]domain.RecruitmentQuestion{{ID: 100}}, nil)

		_, err := f.uc.Submit(ctx, 1, domain.SubmitApplicationInput{
			JobOfferID: 5,
			CvID:       7,
			Answers: []domain.AnswerInput{
				{RecruitmentQuestionID: 100, Answer: "first"},
				{RecruitmentQuestionID: 100, Answer: "second"},
			},
		})
		assertCode(t, err, 400)
	})
}

func TestCandidateUpdate(t *testing.T) {
	ctx := context.Background()
	profile := &domain.CandidateProfile{ID: 10, UserID: 1}

	strPtr := func(s string) *string { return &s }

	t.Run("Should forbid candidates from setting any status but CANCELED", func(t *testing.T) {
		f := newApplicationFixture(nil)
		f.candidateRepo.On("GetByUserID", ctx, int64(1)).Return(profile, nil)
		f.applicationRepo.On("GetByID", ctx, int64(42)).Return(&domain.Application{
			ID: 42, CandidateProfileID: 10, Status: domain.StatusPending,
		}, nil)

		_, err := f.uc.CandidateUpdate(ctx, 1, 42, strPtr("ACCEPTED"), nil)
		assertCode(t, err, 403)
		f.applicationRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should refuse to cancel a decided application", func(t *testing.T) {
		f := newApplicationFixture(nil)
		f.candidateRepo.On("GetByUserID", ctx, int64(1)).Return(profile, nil)
		f.applicationRepo.On("GetByID", ctx, int64(42)).Return(&domain.Application{
			ID: 42, CandidateProfileID: 10, Status: domain.StatusAccepted,
		}, nil)

		_, err := f.uc.CandidateUpdate(ctx, 1, 42, strPtr("CANCELED"), nil)
		assertCode(t, err, 400)
	})

	t.Run("Should cancel a pending application", func(t *testing.T) {
		f := newApplicationFixture(nil)
		f.candidateRepo.On("GetByUserID", ctx, int64(1)).Return(profile, nil)
		f.applicationRepo.On("GetByID", ctx, int64(42)).Return(&domain.Application{
			ID: 42, CandidateProfileID: 10, Status: domain.StatusPending,
		}, nil)
		f.applicationRepo.On("Update", ctx, int64(42), domain.StatusCanceled, (*string)(nil)).Return(nil)
		f.applicationRepo.On("GetAggregate", ctx, int64(42)).Return(&domain.ApplicationAggregate{
			Application: &domain.Application{ID: 42, Status: domain.StatusCanceled},
		}, nil)
		f.meetingRepo.On("FetchByApplication", ctx, int64(42)).Return([]domain.Meeting{{ID: 9, ApplicationID: 42}}, nil)

		agg, err := f.uc.CandidateUpdate(ctx, 1, 42, strPtr("CANCELED"), nil)
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusCanceled, agg.Application.Status)
		assert.Len(t, agg.Meetings, 1)
	})

	t.Run("Should refuse message edits once decided", func(t *testing.T) {
		f := newApplicationFixture(nil)
		f.candidateRepo.On("GetByUserID", ctx, int64(1)).Return(profile, nil)
		f.applicationRepo.On("GetByID", ctx, int64(42)).Return(&domain.Application{
			ID: 42, CandidateProfileID: 10, Status: domain.StatusRejected,
		}, nil)

		_, err := f.uc.CandidateUpdate(ctx, 1, 42, nil, strPtr("please reconsider"))
		assertCode(t, err, 400)
	})

	t.Run("Should hide another candidate's application as not found", func(t *testing.T) {
		f := newApplicationFixture(nil)
		f.candidateRepo.On("GetByUserID", ctx, int64(1)).Return(profile, nil)
		f.applicationRepo.On("GetByID", ctx, int64(42)).Return(&domain.Application{
			ID: 42, CandidateProfileID: 99, Status: domain.StatusPending,
		}, nil)

		_, err := f.uc.CandidateUpdate(ctx, 1, 42, strPtr("CANCELED"), nil)
		assertCode(t, err, 404)
	})
}

func TestDeleteApplication(t *testing.T) {
	ctx := context.Background()
	profile := &domain.CandidateProfile{ID: 10, UserID: 1}

	t.Run("Should delete while pending", func(t *testing.T) {
		f := newApplicationFixture(nil)
		f.candidateRepo.On("GetByUserID", ctx, int64(1)).Return(profile, nil)
		f.applicationRepo.On("GetByID", ctx, int64(42)).Return(&domain.Application{
			ID: 42, CandidateProfileID: 10, Status: domain.StatusPending,
		}, nil)
		f.applicationRepo.On("DeleteWithAnswers", ctx, int64(42)).Return(nil)

		assert.NoError(t, f.uc.Delete(ctx, 1, 42))
	})

	t.Run("Should refuse to delete a decided application", func(t *testing.T) {
		f := newApplicationFixture(nil)
		f.candidateRepo.On("GetByUserID", ctx, int64(1)).Return(profile, nil)
		f.applicationRepo.On("GetByID", ctx, int64(42)).Return(&domain.Application{
			ID: 42, CandidateProfileID: 10, Status: domain.StatusAccepted,
		}, nil)

		err := f.uc.Delete(ctx, 1, 42)
		assertCode(t, err, 400)
		f.applicationRepo.AssertNotCalled(t, "DeleteWithAnswers", mock.Anything, mock.Anything)
	})
}

func TestReplaceAnswers(t *testing.T) {
	ctx := context.Background()
	profile := &domain.CandidateProfile{ID: 10, UserID: 1}

	t.Run("Should refuse once the application is decided", func(t *testing.T) {
		f := newApplicationFixture(nil)
		f.candidateRepo.On("GetByUserID", ctx, int64(1)).Return(profile, nil)
		f.applicationRepo.On("GetByID", ctx, int64(42)).Return(&domain.Application{
			ID: 42, CandidateProfileID: 10, Status: domain.StatusAccepted,
		}, nil)

		err := f.uc.ReplaceAnswers(ctx, 1, 42, []domain.AnswerInput{{RecruitmentQuestionID: 100, Answer: "x"}})
		assertCode(t, err, 400)
	})

	t.Run("Should replace the full set while pending", func(t *testing.T) {
		f := newApplicationFixture(nil)
		f.candidateRepo.On("GetByUserID", ctx, int64(1)).Return(profile, nil)
		f.applicationRepo.On("GetByID", ctx, int64(42)).Return(&domain.Application{
			ID: 42, CandidateProfileID: 10, JobOfferID: 5, Status: domain.StatusPending,
		}, nil)
		f.jobOfferRepo.On("GetQuestions", ctx, int64(5)).Return([]domain.RecruitmentQuestion{{ID: 100}}, nil)
		f.applicationRepo.On("ReplaceAnswers", ctx, int64(42), mock.AnythingOfType("[]domain.CandidateAnswer")).Return(nil)

		err := f.uc.ReplaceAnswers(ctx, 1, 42, []domain.AnswerInput{{RecruitmentQuestionID: 100, Answer: "updated"}})
		assert.NoError(t, err)
	})
}

func TestEmployerDecide(t *testing.T) {
	ctx := context.Background()
	employer := &domain.EmployerProfile{ID: 20, UserID: 2, CompanyName: "ACME"}

	setup := func(f *applicationFixture, status domain.ApplicationStatus) {
		f.applicationRepo.On("GetByID", ctx, int64(42)).Return(&domain.Application{
			ID: 42, CandidateProfileID: 10, JobOfferID: 5, Status: status,
		}, nil)
		f.employerRepo.On("GetByUserID", ctx, int64(2)).Return(employer, nil)
		f.jobOfferRepo.On("GetByID", ctx, int64(5)).Return(openOffer(5, 20), nil)
	}

	t.Run("Should accept a pending application", func(t *testing.T) {
		f := newApplicationFixture(nil)
		setup(f, domain.StatusPending)
		f.applicationRepo.On("Update", ctx, int64(42), domain.StatusAccepted, (*string)(nil)).Return(nil)

		assert.NoError(t, f.uc.Decide(ctx, 2, 42, domain.StatusAccepted))
	})

	t.Run("Should refuse CANCELED as an employer decision", func(t *testing.T) {
		f := newApplicationFixture(nil)
		err := f.uc.Decide(ctx, 2, 42, domain.StatusCanceled)
		assertCode(t, err, 400)
	})

	t.Run("Should refuse to change a terminal status", func(t *testing.T) {
		f := newApplicationFixture(nil)
		setup(f, domain.StatusRejected)

		err := f.uc.Decide(ctx, 2, 42, domain.StatusAccepted)
		assertCode(t, err, 400)
		f.applicationRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should hide applications to another employer's offer", func(t *testing.T) {
		f := newApplicationFixture(nil)
		f.applicationRepo.On("GetByID", ctx, int64(42)).Return(&domain.Application{
			ID: 42, JobOfferID: 5, Status: domain.StatusPending,
		}, nil)
		f.employerRepo.On("GetByUserID", ctx, int64(2)).Return(employer, nil)
		f.jobOfferRepo.On("GetByID", ctx, int64(5)).Return(openOffer(5, 999), nil)

		err := f.uc.Decide(ctx, 2, 42, domain.StatusAccepted)
		assertCode(t, err, 404)
	})
}

func TestApplicationStats(t *testing.T) {
	ctx := context.Background()
	profile := &domain.CandidateProfile{ID: 10, UserID: 1}
	stats := &domain.ApplicationStats{Pending: 2, Accepted: 1, Total: 3}

	t.Run("Should serve from cache on a hit", func(t *testing.T) {
		cache := new(MockStatsCache)
		f := newApplicationFixture(cache)
		f.candidateRepo.On("GetByUserID", ctx, int64(1)).Return(profile, nil)
		cache.On("Get", ctx, int64(10)).Return(stats, true)

		got, err := f.uc.Stats(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, stats, got)
		f.applicationRepo.AssertNotCalled(t, "CountByStatus", mock.Anything, mock.Anything)
	})

	t.Run("Should fall through to the database and fill the cache", func(t *testing.T) {
		cache := new(MockStatsCache)
		f := newApplicationFixture(cache)
		f.candidateRepo.On("GetByUserID", ctx, int64(1)).Return(profile, nil)
		cache.On("Get", ctx, int64(10)).Return(nil, false)
		f.applicationRepo.On("CountByStatus", ctx, int64(10)).Return(stats, nil)
		cache.On("Set", ctx, int64(10), stats).Return()

		got, err := f.uc.Stats(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, stats, got)
		cache.AssertExpectations(t)
	})

	t.Run("Should work without any cache", func(t *testing.T) {
		f := newApplicationFixture(nil)
		f.candidateRepo.On("GetByUserID", ctx, int64(1)).Return(profile, nil)
		f.applicationRepo.On("CountByStatus", ctx, int64(10)).Return(stats, nil)

		got, err := f.uc.Stats(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), got.Total)
	})
}

func TestMeetingGuards(t *testing.T) {
	ctx := context.Background()
	employer := &domain.EmployerProfile{ID: 20, UserID: 2, CompanyName: "ACME"}

	newFixture := func() (*MockMeetingRepo, *MockApplicationRepo, *MockJobOfferRepo, *MockEmployerRepo, domain.MeetingUsecase) {
		meetingRepo := new(MockMeetingRepo)
		applicationRepo := new(MockApplicationRepo)
		jobOfferRepo := new(MockJobOfferRepo)
		candidateRepo := new(MockCandidateRepo)
		employerRepo := new(MockEmployerRepo)
		uc := usecase.NewMeetingUsecase(meetingRepo, applicationRepo, jobOfferRepo, candidateRepo, employerRepo, validator.New())
		return meetingRepo, applicationRepo, jobOfferRepo, employerRepo, uc
	}

	t.Run("Should schedule a meeting on my offer's application", func(t *testing.T) {
		meetingRepo, applicationRepo, jobOfferRepo, employerRepo, uc := newFixture()
		employerRepo.On("GetByUserID", ctx, int64(2)).Return(employer, nil)
		applicationRepo.On("GetByID", ctx, int64(42)).Return(&domain.Application{ID: 42, JobOfferID: 5}, nil)
		jobOfferRepo.On("GetByID", ctx, int64(5)).Return(openOffer(5, 20), nil)
		meetingRepo.On("Create", ctx, mock.AnythingOfType("*domain.Meeting")).Return(nil)

		meeting, err := uc.Create(ctx, 2, 42, &domain.Meeting{
			DateTime: time.Now().Add(48 * time.Hour),
			Type:     domain.MeetingOnline,
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(42), meeting.ApplicationID)
	})

	t.Run("Should hide applications to offers I do not own", func(t *testing.T) {
		_, applicationRepo, jobOfferRepo, employerRepo, uc := newFixture()
		employerRepo.On("GetByUserID", ctx, int64(2)).Return(employer, nil)
		applicationRepo.On("GetByID", ctx, int64(42)).Return(&domain.Application{ID: 42, JobOfferID: 5}, nil)
		jobOfferRepo.On("GetByID", ctx, int64(5)).Return(openOffer(5, 999), nil)

		_, err := uc.Create(ctx, 2, 42, &domain.Meeting{
			DateTime: time.Now().Add(48 * time.Hour),
			Type:     domain.MeetingOffline,
		})
		assertCode(t, err, 404)
	})

	t.Run("Should reject an unknown meeting type", func(t *testing.T) {
		_, applicationRepo, jobOfferRepo, employerRepo, uc := newFixture()
		employerRepo.On("GetByUserID", ctx, int64(2)).Return(employer, nil)
		applicationRepo.On("GetByID", ctx, int64(42)).Return(&domain.Application{ID: 42, JobOfferID: 5}, nil)
		jobOfferRepo.On("GetByID", ctx, int64(5)).Return(openOffer(5, 20), nil)

		_, err := uc.Create(ctx, 2, 42, &domain.Meeting{
			DateTime: time.Now().Add(48 * time.Hour),
			Type:     "HYBRID",
		})
		assertCode(t, err, 400)
	})

	t.Run("Should apply partial updates only to provided fields", func(t *testing.T) {
		meetingRepo, applicationRepo, jobOfferRepo, employerRepo, uc := newFixture()
		contributors := "Anna, Marek"
		existing := &domain.Meeting{
			ID:            7,
			ApplicationID: 42,
			DateTime:      time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC),
			Type:          domain.MeetingOffline,
			Contributors:  &contributors,
		}
		employerRepo.On("GetByUserID", ctx, int64(2)).Return(employer, nil)
		meetingRepo.On("GetByID", ctx, int64(7)).Return(existing, nil)
		applicationRepo.On("GetByID", ctx, int64(42)).Return(&domain.Application{ID: 42, JobOfferID: 5}, nil)
		jobOfferRepo.On("GetByID", ctx, int64(5)).Return(openOffer(5, 20), nil)
		meetingRepo.On("Update", ctx, mock.AnythingOfType("*domain.Meeting")).Return(nil)

		newTime := time.Date(2026, 9, 11, 14, 0, 0, 0, time.UTC)
		updated, err := uc.Update(ctx, 2, 7, domain.MeetingUpdate{DateTime: &newTime})
		assert.NoError(t, err)
		assert.Equal(t, newTime, updated.DateTime)
		assert.Equal(t, domain.MeetingOffline, updated.Type)
		assert.Equal(t, &contributors, updated.Contributors)
	})
}

func TestDeleteAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("Should return not found for an unknown user", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		accountRepo := new(MockAccountRepo)
		uc := usecase.NewAccountUsecase(userRepo, accountRepo)
		userRepo.On("GetByID", ctx, int64(99)).Return(nil, domain.ErrNotFound)

		_, err := uc.DeleteAccount(ctx, 99)
		assertCode(t, err, 404)
		accountRepo.AssertNotCalled(t, "Anonymize", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should anonymize with placeholder identifiers", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		accountRepo := new(MockAccountRepo)
		uc := usecase.NewAccountUsecase(userRepo, accountRepo)
		userRepo.On("GetByID", ctx, int64(3)).Return(&domain.User{ID: 3, Role: domain.RoleEmployer}, nil)

		summary := &domain.AnonymizeSummary{UserID: 3, HadEmployerProfile: true}
		accountRepo.On("Anonymize", ctx, int64(3),
			mock.MatchedBy(func(username string) bool {
				return assert.Regexp(t, `^deleted_user_3_\d+$`, username)
			}),
			mock.MatchedBy(func(email string) bool {
				return assert.Regexp(t, `^deleted_3_\d+@anonymized\.local$`, email)
			}),
			"Usunięta firma 3",
		).Return(summary, nil)

		got, err := uc.DeleteAccount(ctx, 3)
		assert.NoError(t, err)
		assert.Equal(t, summary, got)
		accountRepo.AssertExpectations(t)
	})
}

func TestCandidateProfileLinks(t *testing.T) {
	ctx := context.Background()
	profile := &domain.CandidateProfile{ID: 10, UserID: 1}

	newFixture := func() (*MockCandidateRepo, domain.CandidateUsecase) {
		candidateRepo := new(MockCandidateRepo)
		validate := validator.New()
		validation.RegisterValidators(validate)
		uc := usecase.NewCandidateUsecase(candidateRepo, new(MockEmployerRepo), validate)
		return candidateRepo, uc
	}

	t.Run("Should attach links to the fetched profile", func(t *testing.T) {
		candidateRepo, uc := newFixture()
		candidateRepo.On("GetByUserID", ctx, int64(1)).Return(profile, nil)
		candidateRepo.On("GetLinks", ctx, int64(10)).Return([]domain.ProfileLink{
			{ID: 1, CandidateProfileID: 10, Name: "Portfolio", URL: "https://jan.dev"},
		}, nil)

		got, err := uc.GetProfile(ctx, 1)
		assert.NoError(t, err)
		if assert.Len(t, got.Links, 1) {
			assert.Equal(t, "Portfolio", got.Links[0].Name)
		}
	})

	t.Run("Should replace the link set on update", func(t *testing.T) {
		candidateRepo, uc := newFixture()
		candidateRepo.On("GetByUserID", ctx, int64(1)).Return(profile, nil)
		candidateRepo.On("Update", ctx, mock.AnythingOfType("*domain.CandidateProfile")).Return(nil)
		links := []domain.ProfileLink{{Name: "GitHub", URL: "https://github.com/jan"}}
		candidateRepo.On("ReplaceLinks", ctx, int64(10), links).Return(nil)

		err := uc.UpdateProfile(ctx, 1, &domain.CandidateProfile{Links: links})
		assert.NoError(t, err)
		candidateRepo.AssertExpectations(t)
	})

	t.Run("Should reject links with an invalid URL", func(t *testing.T) {
		candidateRepo, uc := newFixture()
		candidateRepo.On("GetByUserID", ctx, int64(1)).Return(profile, nil)

		err := uc.UpdateProfile(ctx, 1, &domain.CandidateProfile{
			Links: []domain.ProfileLink{{Name: "Broken", URL: "not-a-url"}},
		})
		assertCode(t, err, 400)
		candidateRepo.AssertNotCalled(t, "ReplaceLinks", mock.Anything, mock.Anything, mock.Anything)
	})
}
