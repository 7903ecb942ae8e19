package db_models

import "github.com/lib/pq"

type Clinic struct {
	BaseModel
	Name         string         `gorm:"uniqueIndex;not null" json:"name"`
	Address      string         `json:"address"`
	District     string         `json:"district"`
	City         string         `json:"city"`
	State        string         `json:"state"`
	Phone        string         `json:"phone,omitempty"`
	Latitude     float64        `json:"latitude"`
	Longitude    float64        `json:"longitude"`
	OpeningHours string         `json:"openingHours,omitempty"`
	Services     pq.StringArray `gorm:"type:text[]" json:"services"`
	IsFree       bool           `gorm:"not null;default:true" json:"isFree"`
}
