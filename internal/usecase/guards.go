package usecase

import (
	"context"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
)

// nowFunc is swapped out in tests that pin the clock.
var nowFunc = time.Now

// profileGuard resolves the caller's profile per request and verifies entity
// ownership before any mutation. Absence of ownership is reported as
// NOT_FOUND, not FORBIDDEN, so callers cannot probe for existence.
type profileGuard struct {
	candidateRepo domain.CandidateRepository
	employerRepo  domain.EmployerRepository
}

// candidateProfile resolves the candidate profile for the session user.
func (g *profileGuard) candidateProfile(ctx context.Context, userID int64) (*domain.CandidateProfile, error) {
	profile, err := g.candidateRepo.GetByUserID(ctx, userID)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, apperror.NotFound("Candidate profile not found")
		}
		return nil, apperror.Internal(err)
	}
	return profile, nil
}

// employerProfile resolves the employer profile for the session user.
func (g *profileGuard) employerProfile(ctx context.Context, userID int64) (*domain.EmployerProfile, error) {
	profile, err := g.employerRepo.GetByUserID(ctx, userID)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, apperror.NotFound("Employer profile not found")
		}
		return nil, apperror.Internal(err)
	}
	return profile, nil
}

// ownApplication verifies the application belongs to the candidate.
func ownApplication(app *domain.Application, profile *domain.CandidateProfile) error {
	if app.CandidateProfileID != profile.ID {
		return apperror.NotFound("Application not found")
	}
	return nil
}

// ownOffer verifies the job offer belongs to the employer.
func ownOffer(offer *domain.JobOffer, profile *domain.EmployerProfile) error {
	if offer.EmployerProfileID != profile.ID {
		return apperror.NotFound("Job offer not found")
	}
	return nil
}
