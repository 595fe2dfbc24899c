package usecase

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/validation"
)

type authUsecase struct {
	userRepo  domain.UserRepository
	validate  *validator.Validate
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	userRepo domain.UserRepository,
	validate *validator.Validate,
	jwtSecret string,
	tokenTTL time.Duration,
) domain.AuthUsecase {
	return &authUsecase{
		userRepo:  userRepo,
		validate:  validate,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

// Register creates the user plus the profile row matching its role in a
// single transaction.
func (uc *authUsecase) Register(ctx context.Context, input domain.RegisterInput) (*domain.User, error) {
	if err := uc.validate.Struct(input); err != nil {
		return nil, apperror.Validation("Invalid registration data", validation.FieldErrors(err))
	}
	if input.Role == domain.RoleEmployer && (input.CompanyName == nil || *input.CompanyName == "") {
		return nil, apperror.BadRequest("Company name is required for employer accounts")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	hashStr := string(hash)

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: &hashStr,
		Role:         input.Role,
	}

	var candidate *domain.CandidateProfile
	var employer *domain.EmployerProfile
	switch input.Role {
	case domain.RoleCandidate:
		candidate = &domain.CandidateProfile{}
	case domain.RoleEmployer:
		employer = &domain.EmployerProfile{CompanyName: *input.CompanyName}
	}

	if err := uc.userRepo.CreateWithProfile(ctx, user, candidate, employer); err != nil {
		if err == domain.ErrDuplicate {
			return nil, apperror.BadRequest("Username or email is already taken")
		}
		return nil, apperror.Internal(err)
	}

	return user, nil
}

func (uc *authUsecase) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		// Same failure for unknown email and wrong password.
		return nil, "", apperror.Unauthorized("Invalid email or password")
	}
	if user.IsDeleted || user.PasswordHash == nil {
		return nil, "", apperror.Unauthorized("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperror.Unauthorized("Invalid email or password")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(uc.tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(uc.jwtSecret)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}

	return user, token, nil
}
