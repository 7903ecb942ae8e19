package mem

import (
	"strconv"
	"sync"
	"time"
)

// TokenStore keeps short-lived single-use values such as email verification
// codes, password reset tokens and, without Redis, login sessions.
type TokenStore interface {
	Set(key string, value string, ttl time.Duration)

	// Consume returns the value for key if not expired and removes it.
	// Returns "" if missing/expired.
	Consume(key string) string

	Peek(key string) (string, bool)

	Delete(key string)

	// Incr bumps the counter under key and returns the new value. A missing
	// or expired counter restarts at 1 and lives for ttl.
	Incr(key string, ttl time.Duration) int
}

type entry struct {
	value     string
	expiresAt time.Time
}

type Tokens struct {
	mu   sync.RWMutex
	data map[string]entry
	now  func() time.Time
}

func NewTokens() *Tokens {
	return &Tokens{
		data: make(map[string]entry),
		now:  time.Now,
	}
}

func (s *Tokens) Set(key string, value string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = entry{
		value:     value,
		expiresAt: s.now().Add(ttl),
	}
}

func (s *Tokens) Consume(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[key]
	if !ok {
		return ""
	}
	delete(s.data, key)
	if s.now().After(e.expiresAt) {
		return ""
	}
	return e.value
}

func (s *Tokens) Peek(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[key]
	if !ok || s.now().After(e.expiresAt) {
		return "", false
	}
	return e.value, true
}

func (s *Tokens) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
}

func (s *Tokens) Incr(key string, ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e, ok := s.data[key]
	if !ok || now.After(e.expiresAt) {
		s.data[key] = entry{value: "1", expiresAt: now.Add(ttl)}
		return 1
	}
	n, _ := strconv.Atoi(e.value)
	n++
	e.value = strconv.Itoa(n)
	s.data[key] = e
	return n
}

// Sweep drops expired entries and reports how many were removed.
func (s *Tokens) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for k, e := range s.data {
		if now.After(e.expiresAt) {
			delete(s.data, k)
			removed++
		}
	}
	return removed
}
