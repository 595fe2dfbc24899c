package usecase

import (
	"context"

	"github.com/go-playground/validator/v10"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/validation"
)

type employerUsecase struct {
	profileGuard
	validate *validator.Validate
}

// NewEmployerUsecase creates a new employer usecase
func NewEmployerUsecase(
	candidateRepo domain.CandidateRepository,
	employerRepo domain.EmployerRepository,
	validate *validator.Validate,
) domain.EmployerUsecase {
	return &employerUsecase{
		profileGuard: profileGuard{candidateRepo: candidateRepo, employerRepo: employerRepo},
		validate:     validate,
	}
}

func (uc *employerUsecase) GetProfile(ctx context.Context, userID int64) (*domain.EmployerProfile, error) {
	return uc.employerProfile(ctx, userID)
}

func (uc *employerUsecase) UpdateProfile(ctx context.Context, userID int64, profile *domain.EmployerProfile) error {
	existing, err := uc.employerProfile(ctx, userID)
	if err != nil {
		return err
	}
	if err := uc.validate.Struct(profile); err != nil {
		return apperror.Validation("Invalid profile data", validation.FieldErrors(err))
	}

	profile.ID = existing.ID
	profile.UserID = existing.UserID

	if err := uc.employerRepo.Update(ctx, profile); err != nil {
		return apperror.Internal(err)
	}
	return nil
}
