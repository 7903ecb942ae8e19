package db_models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type RecordType string

const (
	RecordTypeVisit        RecordType = "visit"
	RecordTypeImmunization RecordType = "immunization"
	RecordTypeLab          RecordType = "lab"
	RecordTypeDocument     RecordType = "document"
)

func (t RecordType) Valid() bool {
	switch t {
	case RecordTypeVisit, RecordTypeImmunization, RecordTypeLab, RecordTypeDocument:
		return true
	}
	return false
}

type HealthRecord struct {
	BaseModel
	MigrantID   uuid.UUID      `gorm:"type:uuid;index;not null" json:"migrantId"`
	RecordType  RecordType     `gorm:"type:varchar(20);not null" json:"recordType"`
	Date        time.Time      `gorm:"not null" json:"date"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	Metadata    datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"metadata,omitempty"`
}
