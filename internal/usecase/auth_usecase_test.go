package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/usecase"
)

const testSecret = "test-secret"

func newAuthFixture() (*MockUserRepo, domain.AuthUsecase) {
	userRepo := new(MockUserRepo)
	uc := usecase.NewAuthUsecase(userRepo, validator.New(), testSecret, time.Hour)
	return userRepo, uc
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Should create a candidate with an empty profile in one call", func(t *testing.T) {
		userRepo, uc := newAuthFixture()
		userRepo.On("CreateWithProfile", ctx,
			mock.AnythingOfType("*domain.User"),
			mock.AnythingOfType("*domain.CandidateProfile"),
			(*domain.EmployerProfile)(nil),
		).Return(nil).Run(func(args mock.Arguments) {
			u := args.Get(1).(*domain.User)
			assert.NotNil(t, u.PasswordHash)
			assert.NotEqual(t, "s3cretpass", *u.PasswordHash)
			u.ID = 1
		})

		user, err := uc.Register(ctx, domain.RegisterInput{
			Username: "jan.kowalski",
			Email:    "jan@example.com",
			Password: "s3cretpass",
			Role:     domain.RoleCandidate,
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.RoleCandidate, user.Role)
		userRepo.AssertExpectations(t)
	})

	t.Run("Should pass the company name through for employers", func(t *testing.T) {
		userRepo, uc := newAuthFixture()
		company := "ACME Sp. z o.o."
		userRepo.On("CreateWithProfile", ctx,
			mock.AnythingOfType("*domain.User"),
			(*domain.CandidateProfile)(nil),
			mock.MatchedBy(func(p *domain.EmployerProfile) bool {
				return p.CompanyName == company
			}),
		).Return(nil)

		_, err := uc.Register(ctx, domain.RegisterInput{
			Username:    "acme",
			Email:       "hr@acme.com",
			Password:    "s3cretpass",
			Role:        domain.RoleEmployer,
			CompanyName: &company,
		})
		assert.NoError(t, err)
		userRepo.AssertExpectations(t)
	})

	t.Run("Should require a company name for employers", func(t *testing.T) {
		_, uc := newAuthFixture()
		_, err := uc.Register(ctx, domain.RegisterInput{
			Username: "acme",
			Email:    "hr@acme.com",
			Password: "s3cretpass",
			Role:     domain.RoleEmployer,
		})
		assertCode(t, err, 400)
	})

	t.Run("Should reject a taken email", func(t *testing.T) {
		userRepo, uc := newAuthFixture()
		userRepo.On("CreateWithProfile", ctx, mock.Anything, mock.Anything, mock.Anything).Return(domain.ErrDuplicate)

		_, err := uc.Register(ctx, domain.RegisterInput{
			Username: "jan.kowalski",
			Email:    "jan@example.com",
			Password: "s3cretpass",
			Role:     domain.RoleCandidate,
		})
		assertCode(t, err, 400)
		assert.Contains(t, err.Error(), "already taken")
	})

	t.Run("Should reject invalid input with field details", func(t *testing.T) {
		_, uc := newAuthFixture()
		_, err := uc.Register(ctx, domain.RegisterInput{
			Username: "x",
			Email:    "not-an-email",
			Password: "short",
			Role:     "ADMIN",
		})
		assertCode(t, err, 400)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	hashed := func(pass string) *string {
		h, _ := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.MinCost)
		s := string(h)
		return &s
	}

	t.Run("Should return a signed token with subject and role", func(t *testing.T) {
		userRepo, uc := newAuthFixture()
		userRepo.On("GetByEmail", ctx, "jan@example.com").Return(&domain.User{
			ID: 7, Email: "jan@example.com", Role: domain.RoleCandidate, PasswordHash: hashed("s3cretpass"),
		}, nil)

		user, token, err := uc.Login(ctx, "jan@example.com", "s3cretpass")
		assert.NoError(t, err)
		assert.Equal(t, int64(7), user.ID)

		parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
			return []byte(testSecret), nil
		})
		assert.NoError(t, err)
		claims := parsed.Claims.(jwt.MapClaims)
		assert.Equal(t, float64(7), claims["sub"])
		assert.Equal(t, domain.RoleCandidate, claims["role"])
	})

	t.Run("Should not reveal whether the email exists", func(t *testing.T) {
		userRepo, uc := newAuthFixture()
		userRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, domain.ErrNotFound)

		_, _, errUnknown := uc.Login(ctx, "ghost@example.com", "whatever")

		userRepo2, uc2 := newAuthFixture()
		userRepo2.On("GetByEmail", ctx, "jan@example.com").Return(&domain.User{
			ID: 7, PasswordHash: hashed("rightpass"),
		}, nil)
		_, _, errWrongPass := uc2.Login(ctx, "jan@example.com", "wrongpass")

		assertCode(t, errUnknown, 401)
		assertCode(t, errWrongPass, 401)
		assert.Equal(t, errUnknown.Error(), errWrongPass.Error())
	})

	t.Run("Should reject anonymized accounts", func(t *testing.T) {
		userRepo, uc := newAuthFixture()
		userRepo.On("GetByEmail", ctx, "deleted_3_1700000000@anonymized.local").Return(&domain.User{
			ID: 3, IsDeleted: true, PasswordHash: nil,
		}, nil)

		_, _, err := uc.Login(ctx, "deleted_3_1700000000@anonymized.local", "anything")
		assertCode(t, err, 401)
	})
}
