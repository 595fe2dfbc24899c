package usecase

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/validation"
)

type meetingUsecase struct {
	profileGuard
	meetingRepo     domain.MeetingRepository
	applicationRepo domain.ApplicationRepository
	jobOfferRepo    domain.JobOfferRepository
	validate        *validator.Validate
}

// NewMeetingUsecase creates a new meeting usecase
func NewMeetingUsecase(
	meetingRepo domain.MeetingRepository,
	applicationRepo domain.ApplicationRepository,
	jobOfferRepo domain.JobOfferRepository,
	candidateRepo domain.CandidateRepository,
	employerRepo domain.EmployerRepository,
	validate *validator.Validate,
) domain.MeetingUsecase {
	return &meetingUsecase{
		profileGuard:    profileGuard{candidateRepo: candidateRepo, employerRepo: employerRepo},
		meetingRepo:     meetingRepo,
		applicationRepo: applicationRepo,
		jobOfferRepo:    jobOfferRepo,
		validate:        validate,
	}
}

// Create schedules a meeting on an application to one of the employer's
// offers. No double-booking check exists; this is a plain CRUD surface.
func (uc *meetingUsecase) Create(ctx context.Context, userID, applicationID int64, meeting *domain.Meeting) (*domain.Meeting, error) {
	if _, err := uc.guardApplication(ctx, userID, applicationID); err != nil {
		return nil, err
	}

	meeting.ApplicationID = applicationID
	if err := uc.validate.Struct(meeting); err != nil {
		return nil, apperror.Validation("Invalid meeting data", validation.FieldErrors(err))
	}

	if err := uc.meetingRepo.Create(ctx, meeting); err != nil {
		return nil, apperror.Internal(err)
	}
	return meeting, nil
}

// Update applies partial changes to a meeting the employer owns.
func (uc *meetingUsecase) Update(ctx context.Context, userID, id int64, update domain.MeetingUpdate) (*domain.Meeting, error) {
	meeting, err := uc.guardMeeting(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if update.DateTime != nil {
		meeting.DateTime = *update.DateTime
	}
	if update.Type != nil {
		meeting.Type = *update.Type
	}
	if update.Contributors != nil {
		meeting.Contributors = update.Contributors
	}
	if update.OnlineMeetingURL != nil {
		meeting.OnlineMeetingURL = update.OnlineMeetingURL
	}
	if update.Message != nil {
		meeting.Message = update.Message
	}

	if err := uc.validate.Struct(meeting); err != nil {
		return nil, apperror.Validation("Invalid meeting data", validation.FieldErrors(err))
	}
	if err := uc.meetingRepo.Update(ctx, meeting); err != nil {
		return nil, apperror.Internal(err)
	}
	return meeting, nil
}

func (uc *meetingUsecase) Delete(ctx context.Context, userID, id int64) error {
	if _, err := uc.guardMeeting(ctx, userID, id); err != nil {
		return err
	}
	if err := uc.meetingRepo.Delete(ctx, id); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// List returns the employer's meetings, optionally bounded by a date range.
func (uc *meetingUsecase) List(ctx context.Context, userID int64, from, to *time.Time) ([]domain.Meeting, error) {
	profile, err := uc.employerProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	meetings, err := uc.meetingRepo.FetchByEmployerRange(ctx, profile.ID, from, to)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return meetings, nil
}

// guardApplication verifies the application targets an offer owned by the
// session employer.
func (uc *meetingUsecase) guardApplication(ctx context.Context, userID, applicationID int64) (*domain.Application, error) {
	profile, err := uc.employerProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	app, err := uc.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal(err)
	}
	offer, err := uc.jobOfferRepo.GetByID(ctx, app.JobOfferID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if err := ownOffer(offer, profile); err != nil {
		return nil, apperror.NotFound("Application not found")
	}
	return app, nil
}

func (uc *meetingUsecase) guardMeeting(ctx context.Context, userID, id int64) (*domain.Meeting, error) {
	meeting, err := uc.meetingRepo.GetByID(ctx, id)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, apperror.NotFound("Meeting not found")
		}
		return nil, apperror.Internal(err)
	}
	if _, err := uc.guardApplication(ctx, userID, meeting.ApplicationID); err != nil {
		return nil, apperror.NotFound("Meeting not found")
	}
	return meeting, nil
}
