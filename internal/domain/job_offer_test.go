package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJobOfferOpen(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	t.Run("Should accept active offers until the expire date", func(t *testing.T) {
		offer := &JobOffer{IsActive: true, ExpireDate: now.Add(24 * time.Hour)}
		assert.True(t, offer.Open(now))
	})

	t.Run("Should accept on the expire date itself", func(t *testing.T) {
		offer := &JobOffer{IsActive: true, ExpireDate: now}
		assert.True(t, offer.Open(now))
	})

	t.Run("Should reject expired offers", func(t *testing.T) {
		offer := &JobOffer{IsActive: true, ExpireDate: now.Add(-time.Minute)}
		assert.False(t, offer.Open(now))
	})

	t.Run("Should reject deactivated offers regardless of date", func(t *testing.T) {
		offer := &JobOffer{IsActive: false, ExpireDate: now.Add(24 * time.Hour)}
		assert.False(t, offer.Open(now))
	})
}
