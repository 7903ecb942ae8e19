package db_models

import "github.com/google/uuid"

type AlertSeverity string

const (
	AlertInfo     AlertSeverity = "info"
	AlertWarning  AlertSeverity = "warning"
	AlertCritical AlertSeverity = "critical"
)

// Alert with a nil MigrantID is global and visible to every user.
type Alert struct {
	BaseModel
	MigrantID *uuid.UUID    `gorm:"type:uuid;index" json:"migrantId,omitempty"`
	Title     string        `gorm:"not null" json:"title"`
	Message   string        `gorm:"type:text;not null" json:"message"`
	Severity  AlertSeverity `gorm:"type:varchar(20);not null;default:'info'" json:"severity"`
	IsRead    bool          `gorm:"not null;default:false" json:"isRead"`
}

func (a *Alert) IsGlobal() bool { return a.MigrantID == nil }
