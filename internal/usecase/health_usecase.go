package usecase

import (
	"context"
	"time"
)

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

type healthUsecase struct {
	checks map[string]func(ctx context.Context) error
}

// NewHealthUsecase builds a health check over named dependency probes
// (database, cache). A nil probe map still reports overall status.
func NewHealthUsecase(checks map[string]func(ctx context.Context) error) HealthUsecase {
	return &healthUsecase{checks: checks}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	result := map[string]string{"status": "ok"}
	for name, probe := range u.checks {
		if err := probe(ctx); err != nil {
			result[name] = "unavailable"
			result["status"] = "degraded"
			continue
		}
		result[name] = "ok"
	}
	return result
}
