package domain

import (
	"context"
	"time"
)

// User roles
const (
	RoleCandidate = "CANDIDATE"
	RoleEmployer  = "EMPLOYER"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash *string   `json:"-"` // NULL after anonymization
	Role         string    `json:"role"`
	IsDeleted    bool      `json:"is_deleted"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type UserRepository interface {
	// CreateWithProfile inserts the user and its role profile in one
	// transaction. Exactly one of candidate/employer must be non-nil.
	CreateWithProfile(ctx context.Context, user *User, candidate *CandidateProfile, employer *EmployerProfile) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// RegisterInput carries a new account. CompanyName is required for employers.
type RegisterInput struct {
	Username    string  `json:"username" validate:"required,min=3,max=50"`
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=8,max=100"`
	Role        string  `json:"role" validate:"required,oneof=CANDIDATE EMPLOYER"`
	CompanyName *string `json:"company_name,omitempty" validate:"omitempty,max=150"`
}

type AuthUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*User, error)
	// Login returns the user and a signed bearer token.
	Login(ctx context.Context, email, password string) (*User, string, error)
}
