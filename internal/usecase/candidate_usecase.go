package usecase

import (
	"context"

	"github.com/go-playground/validator/v10"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/validation"
)

type candidateUsecase struct {
	profileGuard
	validate *validator.Validate
}

// NewCandidateUsecase creates a new candidate usecase
func NewCandidateUsecase(
	candidateRepo domain.CandidateRepository,
	employerRepo domain.EmployerRepository,
	validate *validator.Validate,
) domain.CandidateUsecase {
	return &candidateUsecase{
		profileGuard: profileGuard{candidateRepo: candidateRepo, employerRepo: employerRepo},
		validate:     validate,
	}
}

func (uc *candidateUsecase) GetProfile(ctx context.Context, userID int64) (*domain.CandidateProfile, error) {
	profile, err := uc.candidateProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	links, err := uc.candidateRepo.GetLinks(ctx, profile.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	profile.Links = links
	return profile, nil
}

// UpdateProfile validates the typed list fields (experience, skills,
// education, links) at the domain boundary before handing them to storage.
// The links set is replaced wholesale with the payload.
func (uc *candidateUsecase) UpdateProfile(ctx context.Context, userID int64, profile *domain.CandidateProfile) error {
	existing, err := uc.candidateProfile(ctx, userID)
	if err != nil {
		return err
	}
	if err := uc.validate.Struct(profile); err != nil {
		return apperror.Validation("Invalid profile data", validation.FieldErrors(err))
	}

	// Identity comes from the session, never from the payload.
	profile.ID = existing.ID
	profile.UserID = existing.UserID

	if err := uc.candidateRepo.Update(ctx, profile); err != nil {
		return apperror.Internal(err)
	}
	if err := uc.candidateRepo.ReplaceLinks(ctx, profile.ID, profile.Links); err != nil {
		return apperror.Internal(err)
	}
	return nil
}
