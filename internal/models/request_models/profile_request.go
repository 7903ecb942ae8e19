package request_models

import "time"

type CreateProfileRequest struct {
	FullName              string     `json:"fullName" binding:"required,min=2,max=120"`
	DateOfBirth           *time.Time `json:"dateOfBirth"`
	Gender                string     `json:"gender" binding:"omitempty,oneof=male female other"`
	Phone                 string     `json:"phone" binding:"omitempty,max=20"`
	Address               string     `json:"address"`
	State                 string     `json:"state"`
	District              string     `json:"district"`
	OriginState           string     `json:"originState"`
	Occupation            string     `json:"occupation"`
	Employer              string     `json:"employer"`
	Language              string     `json:"language"`
	BloodGroup            string     `json:"bloodGroup" binding:"omitempty,max=5"`
	Allergies             string     `json:"allergies"`
	ChronicConditions     string     `json:"chronicConditions"`
	EmergencyContactName  string     `json:"emergencyContactName"`
	EmergencyContactPhone string     `json:"emergencyContactPhone" binding:"omitempty,max=20"`
}

// UpdateProfileRequest only changes the fields that are present in the body.
type UpdateProfileRequest struct {
	FullName              *string    `json:"fullName" binding:"omitempty,min=2,max=120"`
	DateOfBirth           *time.Time `json:"dateOfBirth"`
	Gender                *string    `json:"gender" binding:"omitempty,oneof=male female other"`
	Phone                 *string    `json:"phone" binding:"omitempty,max=20"`
	Address               *string    `json:"address"`
	State                 *string    `json:"state"`
	District              *string    `json:"district"`
	OriginState           *string    `json:"originState"`
	Occupation            *string    `json:"occupation"`
	Employer              *string    `json:"employer"`
	Language              *string    `json:"language"`
	BloodGroup            *string    `json:"bloodGroup" binding:"omitempty,max=5"`
	Allergies             *string    `json:"allergies"`
	ChronicConditions     *string    `json:"chronicConditions"`
	EmergencyContactName  *string    `json:"emergencyContactName"`
	EmergencyContactPhone *string    `json:"emergencyContactPhone" binding:"omitempty,max=20"`
}
