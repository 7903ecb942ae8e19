package db_models

import (
	"time"

	"github.com/google/uuid"
)

type MigrantProfile struct {
	BaseModel
	UserID   uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`
	HealthID string    `gorm:"uniqueIndex;not null" json:"healthId"`

	FullName          string     `gorm:"not null" json:"fullName"`
	DateOfBirth       *time.Time `json:"dateOfBirth,omitempty"`
	Gender            string     `json:"gender,omitempty"`
	Phone             string     `json:"phone,omitempty"`
	Address           string     `json:"address,omitempty"`
	State             string     `json:"state,omitempty"`
	District          string     `json:"district,omitempty"`
	OriginState       string     `json:"originState,omitempty"`
	Occupation        string     `json:"occupation,omitempty"`
	Employer          string     `json:"employer,omitempty"`
	Language          string     `json:"language,omitempty"`
	BloodGroup        string     `gorm:"type:varchar(5)" json:"bloodGroup,omitempty"`
	Allergies         string     `gorm:"type:text" json:"allergies,omitempty"`
	ChronicConditions string     `gorm:"type:text" json:"chronicConditions,omitempty"`

	EmergencyContactName  string `json:"emergencyContactName,omitempty"`
	EmergencyContactPhone string `json:"emergencyContactPhone,omitempty"`

	HealthRecords []HealthRecord `gorm:"foreignKey:MigrantID" json:"-"`
	Vaccinations  []Vaccination  `gorm:"foreignKey:MigrantID" json:"-"`
}
