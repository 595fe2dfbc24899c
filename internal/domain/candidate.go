package domain

import (
	"context"
	"time"
)

// Skill levels
const (
	SkillBeginner     = "BEGINNER"
	SkillIntermediate = "INTERMEDIATE"
	SkillAdvanced     = "ADVANCED"
	SkillExpert       = "EXPERT"
)

// Skill is one entry of a candidate's ordered skill list.
type Skill struct {
	Name  string `json:"name" validate:"required,max=100"`
	Level string `json:"level" validate:"required,oneof=BEGINNER INTERMEDIATE ADVANCED EXPERT"`
}

// ExperienceEntry is one entry of a candidate's ordered work history.
type ExperienceEntry struct {
	Company     string  `json:"company" validate:"required,max=150"`
	Position    string  `json:"position" validate:"required,max=150"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
}

// EducationEntry is one entry of a candidate's ordered education history.
type EducationEntry struct {
	School    string  `json:"school" validate:"required,max=150"`
	Degree    *string `json:"degree,omitempty" validate:"omitempty,max=150"`
	Field     *string `json:"field,omitempty" validate:"omitempty,max=150"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
}

// CandidateProfile holds a candidate's personal data. All personal fields are
// nullable so anonymization can scrub them while the row survives.
type CandidateProfile struct {
	ID          int64             `json:"id"`
	UserID      int64             `json:"user_id"`
	Name        *string           `json:"name,omitempty" validate:"omitempty,max=100"`
	LastName    *string           `json:"last_name,omitempty" validate:"omitempty,max=100"`
	Description *string           `json:"description,omitempty" validate:"omitempty,max=2000"`
	Birthday    *time.Time        `json:"birthday,omitempty"`
	PhoneNumber *string           `json:"phone_number,omitempty" validate:"omitempty,valid_phone"`
	Place       *string           `json:"place,omitempty" validate:"omitempty,max=150"`
	Experience  []ExperienceEntry `json:"experience" validate:"dive"`
	Skills      []Skill           `json:"skills" validate:"dive"`
	Education   []EducationEntry  `json:"education" validate:"dive"`
	Links       []ProfileLink     `json:"links" validate:"dive"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// ProfileLink is an external link (portfolio, LinkedIn…) attached to a profile.
type ProfileLink struct {
	ID                 int64  `json:"id"`
	CandidateProfileID int64  `json:"candidate_profile_id"`
	Name               string `json:"name" validate:"required,max=100"`
	URL                string `json:"url" validate:"required,url"`
}

type CandidateRepository interface {
	GetByID(ctx context.Context, id int64) (*CandidateProfile, error)
	GetByUserID(ctx context.Context, userID int64) (*CandidateProfile, error)
	Update(ctx context.Context, profile *CandidateProfile) error
	GetLinks(ctx context.Context, profileID int64) ([]ProfileLink, error)
	ReplaceLinks(ctx context.Context, profileID int64, links []ProfileLink) error
}

type CandidateUsecase interface {
	GetProfile(ctx context.Context, userID int64) (*CandidateProfile, error)
	UpdateProfile(ctx context.Context, userID int64, profile *CandidateProfile) error
}
