package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swasthsetu/internal/models/db_models"
	"swasthsetu/internal/models/request_models"
	"swasthsetu/internal/testutils"
	"swasthsetu/pkg/utils"
)

func newProfileFixture() (*testutils.Store, *ProfileService) {
	store := testutils.NewStore()
	log, _ := testutils.Logger()
	svc := NewProfileService(testutils.ProfileRepo{Store: store}, log).(*ProfileService)
	return store, svc
}

func TestGetProfile_NotFound(t *testing.T) {
	_, svc := newProfileFixture()

	_, err := svc.GetProfile(context.Background(), uuid.New())
	assert.ErrorIs(t, err, utils.ErrProfileNotFound)
}

func TestCreateProfile_AssignsHealthID(t *testing.T) {
	_, svc := newProfileFixture()
	userID := uuid.New()

	profile, err := svc.CreateProfile(context.Background(), userID, request_models.CreateProfileRequest{
		FullName: "Asha Devi",
		State:    "Kerala",
	})
	require.NoError(t, err)
	assert.True(t, utils.IsHealthID(profile.HealthID), profile.HealthID)
	assert.Equal(t, userID, profile.UserID)

	got, err := svc.GetProfile(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, profile.HealthID, got.HealthID)
	assert.Equal(t, "Kerala", got.State)
}

func TestCreateProfile_Duplicate(t *testing.T) {
	_, svc := newProfileFixture()
	userID := uuid.New()
	req := request_models.CreateProfileRequest{FullName: "Asha Devi"}

	_, err := svc.CreateProfile(context.Background(), userID, req)
	require.NoError(t, err)
	_, err = svc.CreateProfile(context.Background(), userID, req)
	assert.ErrorIs(t, err, utils.ErrProfileAlreadyExists)
}

func TestCreateProfile_RegeneratesOnCollision(t *testing.T) {
	store, svc := newProfileFixture()
	store.SeedProfile(uuid.New()) // holds SS-2026-ABCDEFGH

	ids := []string{"SS-2026-ABCDEFGH", "SS-2026-ZZZZZZZZ"}
	calls := 0
	svc.newHealthID = func(time.Time) (string, error) {
		id := ids[calls]
		calls++
		return id, nil
	}

	profile, err := svc.CreateProfile(context.Background(), uuid.New(), request_models.CreateProfileRequest{FullName: "Mohan"})
	require.NoError(t, err)
	assert.Equal(t, "SS-2026-ZZZZZZZZ", profile.HealthID)
	assert.Equal(t, 2, calls)
}

func TestCreateProfile_GivesUpAfterRepeatedCollisions(t *testing.T) {
	store, svc := newProfileFixture()
	store.SeedProfile(uuid.New())
	svc.newHealthID = func(time.Time) (string, error) { return "SS-2026-ABCDEFGH", nil }

	_, err := svc.CreateProfile(context.Background(), uuid.New(), request_models.CreateProfileRequest{FullName: "Mohan"})
	require.Error(t, err)
	assert.Len(t, store.Profiles, 1)
}

func TestUpdateProfile_PartialFields(t *testing.T) {
	store, svc := newProfileFixture()
	userID := uuid.New()
	seeded := store.SeedProfile(userID)

	phone := "+91-9000000000"
	updated, err := svc.UpdateProfile(context.Background(), userID, request_models.UpdateProfileRequest{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, phone, updated.Phone)
	assert.Equal(t, seeded.FullName, updated.FullName)
	assert.Equal(t, seeded.HealthID, updated.HealthID)
}

func TestGetProfile_DatabaseError(t *testing.T) {
	store, svc := newProfileFixture()
	store.Err = errors.New("db is down")

	_, err := svc.GetProfile(context.Background(), uuid.New())
	assert.ErrorIs(t, err, utils.ErrDatabaseError)
}

// staleProfileRepo misses the first lookups, as a concurrent request would.
type staleProfileRepo struct {
	testutils.ProfileRepo
	misses int
}

func (r *staleProfileRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*db_models.MigrantProfile, error) {
	if r.misses > 0 {
		r.misses--
		return nil, nil
	}
	return r.ProfileRepo.FindByUserID(ctx, userID)
}

func TestCreateProfile_UniqueViolationIsConflict(t *testing.T) {
	store := testutils.NewStore()
	log, _ := testutils.Logger()
	userID := uuid.New()
	store.SeedProfile(userID)

	svc := NewProfileService(&staleProfileRepo{ProfileRepo: testutils.ProfileRepo{Store: store}, misses: 1}, log)

	_, err := svc.CreateProfile(context.Background(), userID, request_models.CreateProfileRequest{FullName: "Asha Devi"})
	assert.ErrorIs(t, err, utils.ErrProfileAlreadyExists)
	assert.Len(t, store.Profiles, 1)
}
