package domain

import (
	"context"
	"time"
)

// EmployerProfile holds an employer's company data. CompanyName stays non-null
// even after anonymization (replaced with a placeholder).
type EmployerProfile struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	CompanyName     string    `json:"company_name" validate:"required,max=150"`
	CompanyImageURL *string   `json:"company_image_url,omitempty" validate:"omitempty,url"`
	Description     *string   `json:"description,omitempty" validate:"omitempty,max=5000"`
	ContactPhone    *string   `json:"contact_phone,omitempty" validate:"omitempty,valid_phone"`
	ContactEmail    *string   `json:"contact_email,omitempty" validate:"omitempty,email"`
	Industry        []string  `json:"industry"`
	ContractType    []string  `json:"contract_type"`
	Benefits        []string  `json:"benefits"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type EmployerRepository interface {
	GetByID(ctx context.Context, id int64) (*EmployerProfile, error)
	GetByUserID(ctx context.Context, userID int64) (*EmployerProfile, error)
	Update(ctx context.Context, profile *EmployerProfile) error
}

type EmployerUsecase interface {
	GetProfile(ctx context.Context, userID int64) (*EmployerProfile, error)
	UpdateProfile(ctx context.Context, userID int64, profile *EmployerProfile) error
}
