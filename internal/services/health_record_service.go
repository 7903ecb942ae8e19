package services

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"swasthsetu/internal/models/db_models"
	"swasthsetu/internal/models/request_models"
	"swasthsetu/internal/models/response_models"
	"swasthsetu/internal/repositories"
	"swasthsetu/internal/storage"
	"swasthsetu/pkg/utils"
)

const documentLinkTTL = 15 * time.Minute

// DocumentUpload is a file received from a multipart form.
type DocumentUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
	Title       string
	Description string
	Date        time.Time
}

type DocumentMetadata struct {
	ObjectKey   string `json:"objectKey"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

type HealthRecordServiceInterface interface {
	ListRecords(ctx context.Context, userID uuid.UUID) ([]db_models.HealthRecord, error)
	CreateRecord(ctx context.Context, userID uuid.UUID, request request_models.CreateHealthRecordRequest) (*db_models.HealthRecord, error)
	UploadDocument(ctx context.Context, userID uuid.UUID, upload DocumentUpload) (*db_models.HealthRecord, error)
	DocumentLink(ctx context.Context, userID, recordID uuid.UUID) (*response_models.DocumentLinkResponse, error)
}

type HealthRecordService struct {
	recordRepo  repositories.HealthRecordRepository
	profileRepo repositories.ProfileRepository
	documents   storage.DocumentStore
	log         logrus.FieldLogger
}

// NewHealthRecordService accepts a nil documents store; uploads then fail
// with utils.ErrStorageUnavailable.
func NewHealthRecordService(
	recordRepo repositories.HealthRecordRepository,
	profileRepo repositories.ProfileRepository,
	documents storage.DocumentStore,
	log logrus.FieldLogger,
) HealthRecordServiceInterface {
	return &HealthRecordService{
		recordRepo:  recordRepo,
		profileRepo: profileRepo,
		documents:   documents,
		log:         log,
	}
}

func (s *HealthRecordService) ListRecords(ctx context.Context, userID uuid.UUID) ([]db_models.HealthRecord, error) {
	migrantID, err := migrantIDFor(ctx, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}

	records, err := s.recordRepo.ListByMigrant(ctx, migrantID)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	return records, nil
}

func (s *HealthRecordService) CreateRecord(ctx context.Context, userID uuid.UUID, request request_models.CreateHealthRecordRequest) (*db_models.HealthRecord, error) {
	recordType := db_models.RecordType(request.RecordType)
	if !recordType.Valid() {
		return nil, utils.InvalidInput("unknown record type %q", request.RecordType)
	}

	metadata, err := normalizeMetadata(request.Metadata)
	if err != nil {
		return nil, err
	}

	migrantID, err := migrantIDFor(ctx, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}

	record := &db_models.HealthRecord{
		MigrantID:   migrantID,
		RecordType:  recordType,
		Date:        request.Date,
		Title:       strings.TrimSpace(request.Title),
		Description: request.Description,
		Metadata:    metadata,
	}
	if err := s.recordRepo.Create(ctx, record); err != nil {
		return nil, utils.DatabaseError(err)
	}
	return record, nil
}

// normalizeMetadata accepts an absent/null value or a JSON object.
func normalizeMetadata(raw json.RawMessage) (datatypes.JSON, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return datatypes.JSON("{}"), nil
	}
	var obj map[string]interface{}
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, utils.InvalidInput("metadata must be a JSON object")
	}
	return datatypes.JSON(trimmed), nil
}

func (s *HealthRecordService) UploadDocument(ctx context.Context, userID uuid.UUID, upload DocumentUpload) (*db_models.HealthRecord, error) {
	if s.documents == nil {
		return nil, utils.ErrStorageUnavailable
	}
	if upload.Size <= 0 {
		return nil, utils.InvalidInput("file is empty")
	}

	migrantID, err := migrantIDFor(ctx, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}

	contentType := upload.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := path.Join("records", migrantID.String(), uuid.NewString()+strings.ToLower(path.Ext(upload.FileName)))

	if err := s.documents.Put(ctx, key, upload.Body, upload.Size, contentType); err != nil {
		s.log.WithError(err).WithField("object_key", key).Error("uploading document")
		return nil, err
	}

	metadata, err := json.Marshal(DocumentMetadata{
		ObjectKey:   key,
		FileName:    upload.FileName,
		ContentType: contentType,
		Size:        upload.Size,
	})
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(upload.Title)
	if title == "" {
		title = upload.FileName
	}
	date := upload.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	record := &db_models.HealthRecord{
		MigrantID:   migrantID,
		RecordType:  db_models.RecordTypeDocument,
		Date:        date,
		Title:       title,
		Description: upload.Description,
		Metadata:    datatypes.JSON(metadata),
	}
	if err := s.recordRepo.Create(ctx, record); err != nil {
		return nil, utils.DatabaseError(err)
	}
	return record, nil
}

func (s *HealthRecordService) DocumentLink(ctx context.Context, userID, recordID uuid.UUID) (*response_models.DocumentLinkResponse, error) {
	if s.documents == nil {
		return nil, utils.ErrStorageUnavailable
	}

	migrantID, err := migrantIDFor(ctx, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}

	record, err := s.recordRepo.FindForMigrant(ctx, recordID, migrantID)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	if record == nil || record.RecordType != db_models.RecordTypeDocument {
		return nil, utils.ErrRecordNotFound
	}

	var meta DocumentMetadata
	if err := json.Unmarshal(record.Metadata, &meta); err != nil || meta.ObjectKey == "" {
		return nil, utils.ErrRecordNotFound
	}

	link, err := s.documents.PresignedURL(ctx, meta.ObjectKey, documentLinkTTL)
	if err != nil {
		return nil, err
	}
	return &response_models.DocumentLinkResponse{
		URL:       link,
		ExpiresAt: time.Now().Add(documentLinkTTL),
	}, nil
}
