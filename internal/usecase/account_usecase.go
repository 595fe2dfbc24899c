package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"
)

type accountUsecase struct {
	userRepo    domain.UserRepository
	accountRepo domain.AccountRepository
}

// NewAccountUsecase creates a new account usecase
func NewAccountUsecase(userRepo domain.UserRepository, accountRepo domain.AccountRepository) domain.AccountUsecase {
	return &accountUsecase{userRepo: userRepo, accountRepo: accountRepo}
}

// DeleteAccount anonymizes the account. Re-running on an already anonymized
// account is safe; the identifiers just get a fresh timestamp.
func (uc *accountUsecase) DeleteAccount(ctx context.Context, userID int64) (*domain.AnonymizeSummary, error) {
	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		if err == domain.ErrNotFound {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}

	ts := nowFunc().Unix()
	username := fmt.Sprintf("deleted_user_%d_%d", userID, ts)
	email := fmt.Sprintf("deleted_%d_%d@anonymized.local", userID, ts)
	companyPlaceholder := fmt.Sprintf("Usunięta firma %d", userID)

	summary, err := uc.accountRepo.Anonymize(ctx, userID, username, email, companyPlaceholder)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}

	logger.Log.Info("account anonymized",
		zap.Int64("user_id", summary.UserID),
		zap.Bool("had_candidate_profile", summary.HadCandidateProfile),
		zap.Bool("had_employer_profile", summary.HadEmployerProfile),
	)
	return summary, nil
}
