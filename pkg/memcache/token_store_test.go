package mem

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokensConsumeIsSingleUse(t *testing.T) {
	s := NewTokens()
	s.Set("reset:a@example.com", "tok", time.Minute)

	v, ok := s.Peek("reset:a@example.com")
	assert.True(t, ok)
	assert.Equal(t, "tok", v)

	assert.Equal(t, "tok", s.Consume("reset:a@example.com"))
	assert.Equal(t, "", s.Consume("reset:a@example.com"))
}

func TestTokensExpire(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewTokens()
	s.now = func() time.Time { return now }

	s.Set("verify:a@example.com", "123456", 15*time.Minute)
	s.Set("verify:b@example.com", "654321", time.Hour)

	now = now.Add(16 * time.Minute)

	_, ok := s.Peek("verify:a@example.com")
	assert.False(t, ok)
	assert.Equal(t, 1, s.Sweep())

	v, ok := s.Peek("verify:b@example.com")
	assert.True(t, ok)
	assert.Equal(t, "654321", v)
}

func TestTokensDelete(t *testing.T) {
	s := NewTokens()
	s.Set("k", "v", time.Minute)
	s.Delete("k")
	_, ok := s.Peek("k")
	assert.False(t, ok)
}

func TestTokensIncr(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewTokens()
	s.now = func() time.Time { return now }

	assert.Equal(t, 1, s.Incr("verify-attempts:a@example.com", 15*time.Minute))
	assert.Equal(t, 2, s.Incr("verify-attempts:a@example.com", 15*time.Minute))

	now = now.Add(16 * time.Minute)
	assert.Equal(t, 1, s.Incr("verify-attempts:a@example.com", 15*time.Minute))
}
