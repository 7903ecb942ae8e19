package services

import (
	"context"
	"encoding/json"
	"strings"
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

func TestHealthRecords_RequireProfile(t *testing.T) {
	store := testutils.NewStore()
	log, _ := testutils.Logger()
	svc := NewHealthRecordService(testutils.HealthRecordRepo{Store: store}, testutils.ProfileRepo{Store: store}, nil, log)

	_, err := svc.ListRecords(context.Background(), uuid.New())
	assert.ErrorIs(t, err, utils.ErrProfileNotFound)
}

func TestHealthRecords_CreateAndListNewestFirst(t *testing.T) {
	store := testutils.NewStore()
	log, _ := testutils.Logger()
	svc := NewHealthRecordService(testutils.HealthRecordRepo{Store: store}, testutils.ProfileRepo{Store: store}, nil, log)
	userID := uuid.New()
	store.SeedProfile(userID)
	ctx := context.Background()

	_, err := svc.CreateRecord(ctx, userID, request_models.CreateHealthRecordRequest{
		RecordType: "visit",
		Date:       time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Title:      "OPD visit",
	})
	require.NoError(t, err)
	lab, err := svc.CreateRecord(ctx, userID, request_models.CreateHealthRecordRequest{
		RecordType: "lab",
		Date:       time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		Title:      "CBC",
		Metadata:   json.RawMessage(`{"hb": 13.2}`),
	})
	require.NoError(t, err)

	records, err := svc.ListRecords(ctx, userID)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, lab.ID, records[0].ID)
	assert.JSONEq(t, `{}`, string(records[1].Metadata))
}

func TestHealthRecords_RejectsNonObjectMetadata(t *testing.T) {
	store := testutils.NewStore()
	log, _ := testutils.Logger()
	svc := NewHealthRecordService(testutils.HealthRecordRepo{Store: store}, testutils.ProfileRepo{Store: store}, nil, log)
	userID := uuid.New()
	store.SeedProfile(userID)

	_, err := svc.CreateRecord(context.Background(), userID, request_models.CreateHealthRecordRequest{
		RecordType: "visit",
		Date:       time.Now(),
		Title:      "x",
		Metadata:   json.RawMessage(`[1,2]`),
	})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestHealthRecords_UploadWithoutStorage(t *testing.T) {
	store := testutils.NewStore()
	log, _ := testutils.Logger()
	svc := NewHealthRecordService(testutils.HealthRecordRepo{Store: store}, testutils.ProfileRepo{Store: store}, nil, log)

	_, err := svc.UploadDocument(context.Background(), uuid.New(), DocumentUpload{FileName: "a.pdf", Size: 1, Body: strings.NewReader("x")})
	assert.ErrorIs(t, err, utils.ErrStorageUnavailable)
}

func TestHealthRecords_UploadAndLink(t *testing.T) {
	store := testutils.NewStore()
	docs := testutils.NewDocuments()
	log, _ := testutils.Logger()
	svc := NewHealthRecordService(testutils.HealthRecordRepo{Store: store}, testutils.ProfileRepo{Store: store}, docs, log)
	userID := uuid.New()
	profile := store.SeedProfile(userID)
	ctx := context.Background()

	body := "%PDF-1.4 report"
	record, err := svc.UploadDocument(ctx, userID, DocumentUpload{
		FileName:    "Report.PDF",
		ContentType: "application/pdf",
		Size:        int64(len(body)),
		Body:        strings.NewReader(body),
	})
	require.NoError(t, err)
	assert.Equal(t, db_models.RecordTypeDocument, record.RecordType)
	assert.Equal(t, "Report.PDF", record.Title)

	var meta DocumentMetadata
	require.NoError(t, json.Unmarshal(record.Metadata, &meta))
	assert.True(t, strings.HasPrefix(meta.ObjectKey, "records/"+profile.ID.String()+"/"))
	assert.True(t, strings.HasSuffix(meta.ObjectKey, ".pdf"))
	assert.Equal(t, body, string(docs.Objects[meta.ObjectKey]))

	link, err := svc.DocumentLink(ctx, userID, record.ID)
	require.NoError(t, err)
	assert.Contains(t, link.URL, meta.ObjectKey)

	// another migrant cannot reach it
	other := uuid.New()
	store.SeedProfile(other)
	_, err = svc.DocumentLink(ctx, other, record.ID)
	assert.ErrorIs(t, err, utils.ErrRecordNotFound)
}

func newVaccinationFixture(now time.Time) (*testutils.Store, *VaccinationService) {
	store := testutils.NewStore()
	svc := NewVaccinationService(testutils.VaccinationRepo{Store: store}, testutils.ProfileRepo{Store: store}).(*VaccinationService)
	svc.now = func() time.Time { return now }
	return store, svc
}

func TestVaccination_CompletedGetsTodayIST(t *testing.T) {
	// 20:00 UTC is already the next day in India.
	now := time.Date(2026, 5, 10, 20, 0, 0, 0, time.UTC)
	store, svc := newVaccinationFixture(now)
	userID := uuid.New()
	store.SeedProfile(userID)

	v, err := svc.CreateVaccination(context.Background(), userID, request_models.CreateVaccinationRequest{
		VaccineName: "Hepatitis B",
		Status:      "completed",
	})
	require.NoError(t, err)
	require.NotNil(t, v.CompletedDate)
	assert.Equal(t, 11, v.CompletedDate.Day())
	assert.Equal(t, 1, v.DoseNumber)
}

func TestVaccination_UpdateStatus(t *testing.T) {
	store, svc := newVaccinationFixture(time.Now())
	userID := uuid.New()
	store.SeedProfile(userID)
	ctx := context.Background()

	v, err := svc.CreateVaccination(ctx, userID, request_models.CreateVaccinationRequest{VaccineName: "Td", Status: "scheduled"})
	require.NoError(t, err)
	assert.Nil(t, v.CompletedDate)

	status := "completed"
	updated, err := svc.UpdateVaccination(ctx, userID, v.ID, request_models.UpdateVaccinationRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, db_models.VaccinationCompleted, updated.Status)
	assert.NotNil(t, updated.CompletedDate)
	assert.Equal(t, "Td", updated.VaccineName)
}

func TestVaccination_UpdateOtherMigrantsEntry(t *testing.T) {
	store, svc := newVaccinationFixture(time.Now())
	owner, intruder := uuid.New(), uuid.New()
	store.SeedProfile(owner)
	store.SeedProfile(intruder)
	ctx := context.Background()

	v, err := svc.CreateVaccination(ctx, owner, request_models.CreateVaccinationRequest{VaccineName: "Td", Status: "pending"})
	require.NoError(t, err)

	status := "completed"
	_, err = svc.UpdateVaccination(ctx, intruder, v.ID, request_models.UpdateVaccinationRequest{Status: &status})
	assert.ErrorIs(t, err, utils.ErrRecordNotFound)
}
