package domain

import (
	"context"
	"encoding/json"
	"time"
)

// CandidateCV is a stored CV. CvURL is NULL for AI-generated CVs that exist
// only as JSON; for uploaded PDFs CvJSON holds a `{"public_id": ...}` pointer
// into external storage.
type CandidateCV struct {
	ID                 int64           `json:"id"`
	CandidateProfileID int64           `json:"candidate_profile_id"`
	Name               string          `json:"name" validate:"required,max=150"`
	CvURL              *string         `json:"cv_url,omitempty"`
	CvJSON             json.RawMessage `json:"cv_json,omitempty"`
	IsDeleted          bool            `json:"is_deleted"`
	CreatedAt          time.Time       `json:"created_at"`
}

// StoredFilePointer is the cvJson payload for uploaded PDFs.
type StoredFilePointer struct {
	PublicID string `json:"public_id"`
}

type CVRepository interface {
	Create(ctx context.Context, cv *CandidateCV) error
	// GetOwned returns the CV only when it belongs to the given profile and is
	// not soft-deleted; otherwise ErrNotFound.
	GetOwned(ctx context.Context, id, candidateProfileID int64) (*CandidateCV, error)
	ListByProfile(ctx context.Context, candidateProfileID int64) ([]CandidateCV, error)
	SoftDelete(ctx context.Context, id, candidateProfileID int64) error
}

type CVUsecase interface {
	CreateGenerated(ctx context.Context, userID int64, name string, cvJSON json.RawMessage) (*CandidateCV, error)
	AttachUploaded(ctx context.Context, userID int64, name, cvURL, publicID string) (*CandidateCV, error)
	List(ctx context.Context, userID int64) ([]CandidateCV, error)
	Delete(ctx context.Context, userID, id int64) error
}
