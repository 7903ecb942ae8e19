// Package testutils holds in-memory repository fakes shared by service and
// controller tests.
package testutils

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"swasthsetu/internal/models/db_models"
)

// Store is an in-memory stand-in for every repository. Err, when set, is
// returned by every call. Calls counts repository invocations. Creates honour
// the unique indexes on user email and profile user_id.
type Store struct {
	mu sync.Mutex

	Err   error
	Calls int

	Users         map[uuid.UUID]*db_models.User
	Profiles      map[uuid.UUID]*db_models.MigrantProfile
	HealthRecords []*db_models.HealthRecord
	Vaccinations  []*db_models.Vaccination
	Alerts        []*db_models.Alert
	Symptoms      []*db_models.Symptom
	Clinics       []*db_models.Clinic

	clock time.Time
}

func NewStore() *Store {
	return &Store{
		Users:    map[uuid.UUID]*db_models.User{},
		Profiles: map[uuid.UUID]*db_models.MigrantProfile{},
		clock:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *Store) enter() error {
	s.mu.Lock()
	s.Calls++
	return s.Err
}

func (s *Store) stamp(b *db_models.BaseModel) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	// strictly increasing so "newest first" ordering is deterministic
	s.clock = s.clock.Add(time.Second)
	b.CreatedAt = s.clock
	b.UpdatedAt = s.clock
}

// Users

type UserRepo struct{ *Store }

func (r UserRepo) Create(_ context.Context, user *db_models.User) error {
	defer r.mu.Unlock()
	if err := r.enter(); err != nil {
		return err
	}
	for _, u := range r.Users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	r.stamp(&user.BaseModel)
	cp := *user
	r.Users[user.ID] = &cp
	return nil
}

func (r UserRepo) FindByID(_ context.Context, id uuid.UUID) (*db_models.User, error) {
	defer r.mu.Unlock()
	if err := r.enter(); err != nil {
		return nil, err
	}
	if u, ok := r.Users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r UserRepo) FindByEmail(_ context.Context, email string) (*db_models.User, error) {
	defer r.mu.Unlock()
	if err := r.enter(); err != nil {
		return nil, err
	}
	for _, u := range r.Users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r UserRepo) UpdateFields(_ context.Context, id uuid.UUID, fields map[string]interface{}) error {
	defer r.mu.Unlock()
	if err := r.enter(); err != nil {
		return err
	}
	u, ok := r.Users[id]
	if !ok {
		return nil
	}
	for k, v := range fields {
		switch k {
		case "is_verified":
			u.IsVerified = v.(bool)
		case "password_hash":
			u.PasswordHash = v.(string)
		case "role":
			u.Role = v.(db_models.Role)
		}
	}
	return nil
}

// Profiles are keyed by user id.

type ProfileRepo struct{ *Store }

func (r ProfileRepo) Create(_ context.Context, profile *db_models.MigrantProfile) error {
	defer r.mu.Unlock()
	if err := r.enter(); err != nil {
		return err
	}
	if _, ok := r.Profiles[profile.UserID]; ok {
		return gorm.ErrDuplicatedKey
	}
	r.stamp(&profile.BaseModel)
	cp := *profile
	r.Profiles[profile.UserID] = &cp
	return nil
}

func (r ProfileRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*db_models.MigrantProfile, error) {
	defer r.mu.Unlock()
	if err := r.enter(); err != nil {
		return nil, err
	}
	if p, ok := r.Profiles[userID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r ProfileRepo) HealthIDExists(_ context.Context, healthID string) (bool, error) {
	defer r.mu.Unlock()
	if err := r.enter(); err != nil {
		return false, err
	}
	for _, p := range r.Profiles {
		if p.HealthID == healthID {
			return true, nil
		}
	}
	return false, nil
}

func (r ProfileRepo) Save(_ context.Context, profile *db_models.MigrantProfile) error {
	defer r.mu.Unlock()
	if err := r.enter(); err != nil {
		return err
	}
	cp := *profile
	r.Profiles[profile.UserID] = &cp
	return nil
}

// Health records

type HealthRecordRepo struct{ *Store }

func (r HealthRecordRepo) Create(_ context.Context, record *db_models.HealthRecord) error {
	defer r.mu.Unlock()
	if err := r.enter(); err != nil {
		return err
	}
	r.stamp(&record.BaseModel)
	cp := *record
	r.HealthRecords = append(r.HealthRecords, &cp)
	return nil
}

func (r HealthRecordRepo) ListByMigrant(_ context.Context, migrantID uuid.UUID) ([]db_models.HealthRecord, error) {
	defer r.mu.Unlock()
	if err := r.enter(); err != nil {
		return nil, err
	}
	out := []db_models.HealthRecord{}
	for _, rec := range r.HealthRecords {
		if rec.MigrantID == migrantID {
			out = append(out, *rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r HealthRecordRepo) FindForMigrant(_ context.Context, id, migrantID uuid.UUID) (*db_models.HealthRecord, error) {
	defer r.mu.Unlock()
	if err := r.enter(); err != nil {
		return nil, err
	}
	for _, rec := range r.HealthRecords {
		if rec.ID == id && rec.MigrantID == migrantID {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, nil
}

// Vaccinations

type VaccinationRepo struct{ *Store }

func (r VaccinationRepo) Create(_ context.Context, v *db_models.Vaccination) error {
	defer r.mu.Unlock()
	if err := r.enter(); err != nil {
		return err
	}
	r.stamp(&v.BaseModel)
	cp := *v
	r.Vaccinations = append(r.Vaccinations, &cp)
	return nil
}

func (r VaccinationRepo) ListByMigrant(_ context.Context, migrantID uuid.UUID) ([]db_models.Vaccination, error) {
	defer r.mu.Unlock()
	if err := r.enter(); err != nil {
		return nil, err
	}
	out := []db_models.Vaccination{}
	for _, v := range r.Vaccinations {
		if v.MigrantID == migrantID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r VaccinationRepo) FindForMigrant(_ context.Context, id, migrantID uuid.UUID) (*db_models.Vaccination, error) {
	defer r.mu.Unlock()
	if err := r.enter(); err != nil {
		return nil, err
	}
	for _, v := range r.Vaccinations {
		if v.ID == id && v.MigrantID == migrantID {
			cp := *v
			return &cp, nil
		}
	}
	return nil, nil
}

func (r VaccinationRepo) Save(_ context.Context, v *db_models.Vaccination) error {
	defer r.mu.Unlock()
	if err := r.enter(); err != nil {
		return err
	}
	for i, existing := range r.Vaccinations {
		if existing.ID == v.ID {
			cp := *v
			r.Vaccinations[i] = &cp
		}
	}
	return nil
}

// Alerts

type AlertRepo struct{ *Store }

func visible(a *db_models.Alert, migrantID *uuid.UUID) bool {
	return a.MigrantID == nil || (migrantID != nil && *a.MigrantID == *migrantID)
}

func (r AlertRepo) Create(_ context.Context, alert *db_models.Alert) error {
	defer r.mu.Unlock()
	if err := r.enter(); err != nil {
		return err
	}
	r.stamp(&alert.BaseModel)
	cp := *alert
	r.Alerts = append(r.Alerts, &cp)
	return nil
}

func (r AlertRepo) ListVisible(_ context.Context, migrantID *uuid.UUID) ([]db_models.Alert, error) {
	defer r.mu.Unlock()
	if err := r.enter(); err != nil {
		return nil, err
	}
	out := []db_models.Alert{}
	for i := len(r.Alerts) - 1; i >= 0; i-- {
		if visible(r.Alerts[i], migrantID) {
			out = append(out, *r.Alerts[i])
		}
	}
	return out, nil
}

func (r AlertRepo) FindVisible(_ context.Context, id uuid.UUID, migrantID *uuid.UUID) (*db_models.Alert, error) {
	defer r.mu.Unlock()
	if err := r.enter(); err != nil {
		return nil, err
	}
	for _, a := range r.Alerts {
		if a.ID == id && visible(a, migrantID) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r AlertRepo) LatestVisible(_ context.Context, migrantID *uuid.UUID) (*db_models.Alert, error) {
	defer r.mu.Unlock()
	if err := r.enter(); err != nil {
		return nil, err
	}
	for i := len(r.Alerts) - 1; i >= 0; i-- {
		if visible(r.Alerts[i], migrantID) {
			cp := *r.Alerts[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r AlertRepo) MarkRead(_ context.Context, id uuid.UUID) error {
	defer r.mu.Unlock()
	if err := r.enter(); err != nil {
		return err
	}
	for _, a := range r.Alerts {
		if a.ID == id {
			a.IsRead = true
		}
	}
	return nil
}

// Symptoms

type SymptomRepo struct{ *Store }

func (r SymptomRepo) Create(_ context.Context, symptom *db_models.Symptom) error {
	defer r.mu.Unlock()
	if err := r.enter(); err != nil {
		return err
	}
	r.stamp(&symptom.BaseModel)
	cp := *symptom
	r.Symptoms = append(r.Symptoms, &cp)
	return nil
}

func (r SymptomRepo) ListByUser(_ context.Context, userID uuid.UUID, limit int) ([]db_models.Symptom, error) {
	defer r.mu.Unlock()
	if err := r.enter(); err != nil {
		return nil, err
	}
	out := []db_models.Symptom{}
	for i := len(r.Symptoms) - 1; i >= 0 && len(out) < limit; i-- {
		if r.Symptoms[i].UserID == userID {
			out = append(out, *r.Symptoms[i])
		}
	}
	return out, nil
}

// Clinics

type ClinicRepo struct{ *Store }

func (r ClinicRepo) List(_ context.Context, location string) ([]db_models.Clinic, error) {
	defer r.mu.Unlock()
	if err := r.enter(); err != nil {
		return nil, err
	}
	loc := strings.ToLower(strings.TrimSpace(location))
	out := []db_models.Clinic{}
	for _, c := range r.Clinics {
		fields := strings.ToLower(strings.Join([]string{c.Name, c.Address, c.District, c.City, c.State}, "|"))
		if loc == "" || strings.Contains(fields, loc) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r ClinicRepo) Upsert(_ context.Context, clinic *db_models.Clinic) error {
	defer r.mu.Unlock()
	if err := r.enter(); err != nil {
		return err
	}
	for _, c := range r.Clinics {
		if c.Name == clinic.Name {
			*clinic = *c
			return nil
		}
	}
	r.stamp(&clinic.BaseModel)
	cp := *clinic
	r.Clinics = append(r.Clinics, &cp)
	return nil
}
