package usecase

import (
	"context"

	"github.com/go-playground/validator/v10"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/validation"
)

type jobOfferUsecase struct {
	profileGuard
	jobOfferRepo domain.JobOfferRepository
	validate     *validator.Validate
}

// NewJobOfferUsecase creates a new job offer usecase
func NewJobOfferUsecase(
	jobOfferRepo domain.JobOfferRepository,
	candidateRepo domain.CandidateRepository,
	employerRepo domain.EmployerRepository,
	validate *validator.Validate,
) domain.JobOfferUsecase {
	return &jobOfferUsecase{
		profileGuard: profileGuard{candidateRepo: candidateRepo, employerRepo: employerRepo},
		jobOfferRepo: jobOfferRepo,
		validate:     validate,
	}
}

func (uc *jobOfferUsecase) Create(ctx context.Context, userID int64, offer *domain.JobOffer) error {
	profile, err := uc.employerProfile(ctx, userID)
	if err != nil {
		return err
	}
	if err := uc.validate.Struct(offer); err != nil {
		return apperror.Validation("Invalid job offer data", validation.FieldErrors(err))
	}
	if offer.ExpireDate.Before(nowFunc()) {
		return apperror.BadRequest("Expire date must be in the future")
	}

	offer.EmployerProfileID = profile.ID
	offer.IsActive = true
	if err := uc.jobOfferRepo.Create(ctx, offer); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (uc *jobOfferUsecase) Get(ctx context.Context, id int64) (*domain.JobOffer, error) {
	offer, err := uc.jobOfferRepo.GetByID(ctx, id)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, apperror.NotFound("Job offer not found")
		}
		return nil, apperror.Internal(err)
	}
	return offer, nil
}

func (uc *jobOfferUsecase) ListActive(ctx context.Context, page, pageSize int) ([]domain.JobOffer, int64, error) {
	limit, offset := normalizePage(page, pageSize)
	offers, total, err := uc.jobOfferRepo.FetchActive(ctx, limit, offset)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	return offers, total, nil
}

func (uc *jobOfferUsecase) ListMine(ctx context.Context, userID int64, page, pageSize int) ([]domain.JobOffer, int64, error) {
	profile, err := uc.employerProfile(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	limit, offset := normalizePage(page, pageSize)
	offers, total, err := uc.jobOfferRepo.FetchByEmployer(ctx, profile.ID, limit, offset)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	return offers, total, nil
}

func (uc *jobOfferUsecase) Update(ctx context.Context, userID int64, offer *domain.JobOffer) error {
	existing, err := uc.guardOffer(ctx, userID, offer.ID)
	if err != nil {
		return err
	}
	if err := uc.validate.Struct(offer); err != nil {
		return apperror.Validation("Invalid job offer data", validation.FieldErrors(err))
	}

	offer.EmployerProfileID = existing.EmployerProfileID
	if err := uc.jobOfferRepo.Update(ctx, offer); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// Deactivate turns the offer off instead of deleting it, so historical
// applications keep their target.
func (uc *jobOfferUsecase) Deactivate(ctx context.Context, userID, id int64) error {
	if _, err := uc.guardOffer(ctx, userID, id); err != nil {
		return err
	}
	if err := uc.jobOfferRepo.Deactivate(ctx, id); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (uc *jobOfferUsecase) ReplaceQuestions(ctx context.Context, userID, jobOfferID int64, questions []domain.RecruitmentQuestion) error {
	if _, err := uc.guardOffer(ctx, userID, jobOfferID); err != nil {
		return err
	}
	for i := range questions {
		if err := uc.validate.Struct(&questions[i]); err != nil {
			return apperror.Validation("Invalid question", validation.FieldErrors(err))
		}
	}
	if err := uc.jobOfferRepo.ReplaceQuestions(ctx, jobOfferID, questions); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// AttachTest validates and stores the recruitment test content. Choice
// questions must list options, and the correct answer must be one of them.
func (uc *jobOfferUsecase) AttachTest(ctx context.Context, userID, jobOfferID int64, content domain.RecruitmentTestContent) (*domain.RecruitmentTest, error) {
	if _, err := uc.guardOffer(ctx, userID, jobOfferID); err != nil {
		return nil, err
	}
	if err := uc.validate.Struct(content); err != nil {
		return nil, apperror.Validation("Invalid test content", validation.FieldErrors(err))
	}
	for _, q := range content.Questions {
		if q.Type == domain.TestQuestionText {
			continue
		}
		if len(q.Options) == 0 {
			return nil, apperror.BadRequest("Choice questions require options")
		}
		if q.CorrectAnswer != nil && !contains(q.Options, *q.CorrectAnswer) {
			return nil, apperror.BadRequest("Correct answer must be one of the options")
		}
	}

	test := &domain.RecruitmentTest{JobOfferID: jobOfferID, Content: content}
	if err := uc.jobOfferRepo.UpsertTest(ctx, test); err != nil {
		return nil, apperror.Internal(err)
	}
	return test, nil
}

// GetTest returns the offer's recruitment test. Tests carry the correct
// answers, so only the owning employer may read them.
func (uc *jobOfferUsecase) GetTest(ctx context.Context, userID, jobOfferID int64) (*domain.RecruitmentTest, error) {
	if _, err := uc.guardOffer(ctx, userID, jobOfferID); err != nil {
		return nil, err
	}
	test, err := uc.jobOfferRepo.GetTest(ctx, jobOfferID)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, apperror.NotFound("This job offer has no recruitment test")
		}
		return nil, apperror.Internal(err)
	}
	return test, nil
}

func (uc *jobOfferUsecase) guardOffer(ctx context.Context, userID, id int64) (*domain.JobOffer, error) {
	profile, err := uc.employerProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	offer, err := uc.jobOfferRepo.GetByID(ctx, id)
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

func normalizePage(page, pageSize int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return pageSize, (page - 1) * pageSize
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
