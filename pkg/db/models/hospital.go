package models

import "time"

// Hospital is a registered hospital account.
type Hospital struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	HospitalID   string    `gorm:"uniqueIndex;not null" json:"hospitalId"`
	HospitalName string    `gorm:"not null" json:"hospitalName"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
