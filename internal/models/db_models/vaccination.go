package db_models

import (
	"time"

	"github.com/google/uuid"
)

type VaccinationStatus string

const (
	VaccinationCompleted VaccinationStatus = "completed"
	VaccinationPending   VaccinationStatus = "pending"
	VaccinationScheduled VaccinationStatus = "scheduled"
)

func (s VaccinationStatus) Valid() bool {
	switch s {
	case VaccinationCompleted, VaccinationPending, VaccinationScheduled:
		return true
	}
	return false
}

type Vaccination struct {
	BaseModel
	MigrantID     uuid.UUID         `gorm:"type:uuid;index;not null" json:"migrantId"`
	VaccineName   string            `gorm:"not null" json:"vaccineName"`
	DoseNumber    int               `gorm:"not null;default:1" json:"doseNumber"`
	Status        VaccinationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	ScheduledDate *time.Time        `json:"scheduledDate,omitempty"`
	CompletedDate *time.Time        `json:"completedDate,omitempty"`
	Provider      string            `json:"provider,omitempty"`
	Notes         string            `gorm:"type:text" json:"notes,omitempty"`
}
