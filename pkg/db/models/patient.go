package models

import "time"

// Patient is a registered patient account. PatientID is the public opaque
// identifier (PAT-...) used in API paths and tokens.
type Patient struct {
	ID               uint      `gorm:"primaryKey" json:"-"`
	PatientID        string    `gorm:"uniqueIndex;not null" json:"patientId"`
	Name             string    `gorm:"not null" json:"name"`
	Email            string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash     string    `gorm:"not null" json:"-"`
	DateOfBirth      time.Time `gorm:"not null" json:"dateOfBirth"`
	BloodGroup       string    `gorm:"not null" json:"bloodGroup"`
	EmergencyContact string    `gorm:"not null" json:"emergencyContact"`
	Address          string    `gorm:"not null" json:"address"`
	RegisteredBy     string    `gorm:"not null;default:self" json:"registeredBy"`
	CreatedAt        time.Time `json:"createdAt"`
}
