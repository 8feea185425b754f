package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"lostfound-backend/internal/domain"
)

func TestUser_BanActive(t *testing.T) {
	now := time.Now().UTC()

	t.Run("Not Banned", func(t *testing.T) {
		u := &domain.User{IsBanned: false}
		assert.False(t, u.BanActive(now))
	})

	t.Run("Indefinite Ban", func(t *testing.T) {
		u := &domain.User{IsBanned: true, BanUntil: nil}
		assert.True(t, u.BanActive(now))
	})

	t.Run("Ban Still Running", func(t *testing.T) {
		until := now.Add(time.Hour)
		u := &domain.User{IsBanned: true, BanUntil: &until}
		assert.True(t, u.BanActive(now))
	})

	t.Run("Ban Expired", func(t *testing.T) {
		until := now.Add(-time.Hour)
		u := &domain.User{IsBanned: true, BanUntil: &until}
		assert.False(t, u.BanActive(now))
	})
}

func TestHostel_IsValid(t *testing.T) {
	assert.True(t, domain.HostelBoys.IsValid())
	assert.True(t, domain.HostelGirls.IsValid())
	assert.False(t, domain.Hostel("mixed").IsValid())
}
