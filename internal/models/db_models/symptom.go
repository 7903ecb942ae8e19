package db_models

import "github.com/google/uuid"

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Symptom is written once per self-check and never updated.
type Symptom struct {
	BaseModel
	UserID         uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	Fever          bool      `gorm:"not null" json:"fever"`
	Cough          bool      `gorm:"not null" json:"cough"`
	Fatigue        bool      `gorm:"not null" json:"fatigue"`
	OtherSymptoms  string    `gorm:"type:text" json:"otherSymptoms,omitempty"`
	RiskLevel      RiskLevel `gorm:"type:varchar(10);not null" json:"riskLevel"`
	Recommendation string    `gorm:"type:text;not null" json:"recommendation"`
}
