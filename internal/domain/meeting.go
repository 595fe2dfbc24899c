package domain

import (
	"context"
	"time"
)

// Meeting types
const (
	MeetingOnline  = "ONLINE"
	MeetingOffline = "OFFLINE"
)

// Meeting is an interview tied to one application. OnlineMeetingURL is only
// meaningful when Type is ONLINE. No conflict detection exists.
type Meeting struct {
	ID               int64     `json:"id"`
	ApplicationID    int64     `json:"application_id"`
	DateTime         time.Time `json:"date_time" validate:"required"`
	Type             string    `json:"type" validate:"required,oneof=ONLINE OFFLINE"`
	Contributors     *string   `json:"contributors,omitempty" validate:"omitempty,max=1000"`
	OnlineMeetingURL *string   `json:"online_meeting_url,omitempty" validate:"omitempty,url"`
	Message          *string   `json:"message,omitempty" validate:"omitempty,max=5000"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// MeetingUpdate carries partial meeting changes; nil fields are left as-is.
type MeetingUpdate struct {
	DateTime         *time.Time `json:"date_time,omitempty"`
	Type             *string    `json:"type,omitempty" validate:"omitempty,oneof=ONLINE OFFLINE"`
	Contributors     *string    `json:"contributors,omitempty" validate:"omitempty,max=1000"`
	OnlineMeetingURL *string    `json:"online_meeting_url,omitempty" validate:"omitempty,url"`
	Message          *string    `json:"message,omitempty" validate:"omitempty,max=5000"`
}

type MeetingRepository interface {
	Create(ctx context.Context, meeting *Meeting) error
	GetByID(ctx context.Context, id int64) (*Meeting, error)
	Update(ctx context.Context, meeting *Meeting) error
	Delete(ctx context.Context, id int64) error
	FetchByApplication(ctx context.Context, applicationID int64) ([]Meeting, error)
	// FetchByEmployerRange lists meetings across every application to the
	// employer's offers, optionally bounded by [from, to].
	FetchByEmployerRange(ctx context.Context, employerProfileID int64, from, to *time.Time) ([]Meeting, error)
}

type MeetingUsecase interface {
	Create(ctx context.Context, userID, applicationID int64, meeting *Meeting) (*Meeting, error)
	Update(ctx context.Context, userID, id int64, update MeetingUpdate) (*Meeting, error)
	Delete(ctx context.Context, userID, id int64) error
	List(ctx context.Context, userID int64, from, to *time.Time) ([]Meeting, error)
}
