package usecase

import (
	"context"
	"encoding/json"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
)

type cvUsecase struct {
	profileGuard
	cvRepo domain.CVRepository
}

// NewCVUsecase creates a new CV usecase
func NewCVUsecase(
	cvRepo domain.CVRepository,
	candidateRepo domain.CandidateRepository,
	employerRepo domain.EmployerRepository,
) domain.CVUsecase {
	return &cvUsecase{
		profileGuard: profileGuard{candidateRepo: candidateRepo, employerRepo: employerRepo},
		cvRepo:       cvRepo,
	}
}

// CreateGenerated stores an AI-generated CV that exists only as JSON.
func (uc *cvUsecase) CreateGenerated(ctx context.Context, userID int64, name string, cvJSON json.RawMessage) (*domain.CandidateCV, error) {
	profile, err := uc.candidateProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, apperror.BadRequest("CV name is required")
	}
	if len(cvJSON) == 0 || !json.Valid(cvJSON) {
		return nil, apperror.BadRequest("CV content must be valid JSON")
	}

	cv := &domain.CandidateCV{
		CandidateProfileID: profile.ID,
		Name:               name,
		CvJSON:             cvJSON,
	}
	if err := uc.cvRepo.Create(ctx, cv); err != nil {
		return nil, apperror.Internal(err)
	}
	return cv, nil
}

// AttachUploaded records an uploaded PDF: the delivery URL plus a
// `{public_id}` pointer into external storage.
func (uc *cvUsecase) AttachUploaded(ctx context.Context, userID int64, name, cvURL, publicID string) (*domain.CandidateCV, error) {
	profile, err := uc.candidateProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, apperror.BadRequest("CV name is required")
	}

	pointer, err := json.Marshal(domain.StoredFilePointer{PublicID: publicID})
	if err != nil {
		return nil, apperror.Internal(err)
	}

	cv := &domain.CandidateCV{
		CandidateProfileID: profile.ID,
		Name:               name,
		CvURL:              &cvURL,
		CvJSON:             pointer,
	}
	if err := uc.cvRepo.Create(ctx, cv); err != nil {
		return nil, apperror.Internal(err)
	}
	return cv, nil
}

func (uc *cvUsecase) List(ctx context.Context, userID int64) ([]domain.CandidateCV, error) {
	profile, err := uc.candidateProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	cvs, err := uc.cvRepo.ListByProfile(ctx, profile.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return cvs, nil
}

// Delete soft-deletes the CV; the stored file is left to the retention
// process.
func (uc *cvUsecase) Delete(ctx context.Context, userID, id int64) error {
	profile, err := uc.candidateProfile(ctx, userID)
	if err != nil {
		return err
	}
	if err := uc.cvRepo.SoftDelete(ctx, id, profile.ID); err != nil {
		if err == domain.ErrNotFound {
			return apperror.NotFound("CV not found")
		}
		return apperror.Internal(err)
	}
	return nil
}
