package models

import "time"

// BloodUnit tracks available units per (hospital, blood type) pair. The pair
// is the upsert key: exactly one live row per pair, mutated in place and
// never deleted.
type BloodUnit struct {
	HospitalID     string    `gorm:"primaryKey" json:"hospitalId"`
	BloodType      string    `gorm:"primaryKey" json:"bloodType"`
	AvailableUnits int       `gorm:"not null;default:0" json:"availableUnits"`
	LastUpdated    time.Time `gorm:"not null" json:"lastUpdated"`
}
