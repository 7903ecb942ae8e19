package request_models

import (
	"encoding/json"
	"time"
)

type CreateHealthRecordRequest struct {
	RecordType  string          `json:"recordType" binding:"required,oneof=visit immunization lab document"`
	Date        time.Time       `json:"date" binding:"required"`
	Title       string          `json:"title" binding:"required,max=200"`
	Description string          `json:"description"`
	Metadata    json.RawMessage `json:"metadata"`
}

type CreateVaccinationRequest struct {
	VaccineName   string     `json:"vaccineName" binding:"required,max=120"`
	DoseNumber    int        `json:"doseNumber" binding:"omitempty,min=1,max=10"`
	Status        string     `json:"status" binding:"required,oneof=completed pending scheduled"`
	ScheduledDate *time.Time `json:"scheduledDate"`
	CompletedDate *time.Time `json:"completedDate"`
	Provider      string     `json:"provider"`
	Notes         string     `json:"notes"`
}

type UpdateVaccinationRequest struct {
	VaccineName   *string    `json:"vaccineName" binding:"omitempty,max=120"`
	DoseNumber    *int       `json:"doseNumber" binding:"omitempty,min=1,max=10"`
	Status        *string    `json:"status" binding:"omitempty,oneof=completed pending scheduled"`
	ScheduledDate *time.Time `json:"scheduledDate"`
	CompletedDate *time.Time `json:"completedDate"`
	Provider      *string    `json:"provider"`
	Notes         *string    `json:"notes"`
}

type CreateAlertRequest struct {
	Title     string  `json:"title" binding:"required,max=200"`
	Message   string  `json:"message" binding:"required"`
	Severity  string  `json:"severity" binding:"omitempty,oneof=info warning critical"`
	MigrantID *string `json:"migrantId" binding:"omitempty,uuid"`
}

// SymptomCheckRequest flags default to false when omitted.
type SymptomCheckRequest struct {
	Fever         bool   `json:"fever"`
	Cough         bool   `json:"cough"`
	Fatigue       bool   `json:"fatigue"`
	OtherSymptoms string `json:"otherSymptoms" binding:"max=1000"`
}

type ChatRequest struct {
	Message string `json:"message" binding:"required,max=2000"`
}
