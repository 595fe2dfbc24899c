package domain

import "context"

// AnonymizeSummary is the audit record returned by account anonymization.
type AnonymizeSummary struct {
	UserID              int64  `json:"user_id"`
	HadCandidateProfile bool   `json:"had_candidate_profile"`
	HadEmployerProfile  bool   `json:"had_employer_profile"`
	AnonymizedUsername  string `json:"anonymized_username"`
	AnonymizedEmail     string `json:"anonymized_email"`
}

// AccountRepository performs the multi-table anonymization as one transaction:
// candidate personal fields nulled, profile links hard-deleted, CVs
// soft-deleted, employer profile scrubbed (company name replaced with the
// given placeholder), job offers deactivated, additional credentials deleted,
// and finally the user row renamed and marked deleted.
type AccountRepository interface {
	Anonymize(ctx context.Context, userID int64, username, email, companyPlaceholder string) (*AnonymizeSummary, error)
}

type AccountUsecase interface {
	// DeleteAccount anonymizes the account and returns the audit summary.
	// A missing user is reported as ErrNotFound with no mutation.
	DeleteAccount(ctx context.Context, userID int64) (*AnonymizeSummary, error)
}
