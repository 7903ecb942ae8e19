package testutils

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"swasthsetu/internal/events"
	"swasthsetu/internal/models/db_models"
)

// Documents is an in-memory storage.DocumentStore.
type Documents struct {
	mu      sync.Mutex
	Objects map[string][]byte
	Err     error
}

func NewDocuments() *Documents {
	return &Documents{Objects: map[string][]byte{}}
}

func (d *Documents) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	if d.Err != nil {
		return d.Err
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Objects[key] = body
	return nil
}

func (d *Documents) PresignedURL(_ context.Context, key string, _ time.Duration) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.Objects[key]; !ok {
		return "", errors.New("object not found")
	}
	return "https://documents.local/" + key + "?signed=1", nil
}

// Publisher records events instead of sending them.
type Publisher struct {
	mu     sync.Mutex
	Events []events.SymptomChecked
	Err    error
}

func (p *Publisher) PublishSymptomChecked(_ context.Context, event events.SymptomChecked) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.Events = append(p.Events, event)
	return nil
}

func (p *Publisher) Close() error { return nil }

// Logger discards output but keeps entries for assertions.
func Logger() (logrus.FieldLogger, *test.Hook) {
	log, hook := test.NewNullLogger()
	return log, hook
}

// SeedProfile stores a profile for userID and returns it.
func (s *Store) SeedProfile(userID uuid.UUID) *db_models.MigrantProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := &db_models.MigrantProfile{UserID: userID, HealthID: "SS-2026-ABCDEFGH", FullName: "Ravi Kumar"}
	s.stamp(&p.BaseModel)
	s.Profiles[userID] = p
	cp := *p
	return &cp
}
