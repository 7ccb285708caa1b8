package models

import "time"

// Alert statuses shared by both alert kinds.
const (
	AlertStatusActive   = "active"
	AlertStatusResolved = "resolved"
)

// Emergency alert defaults applied when the caller omits them.
const (
	EmergencyTypeGeneral    = "general"
	EmergencyPriorityMedium = "medium"
)

// CriticalStockAlert records a (hospital, blood type) pair dropping below the
// stock threshold. CurrentUnits and Threshold are snapshots taken at creation
// time; they do not track later ledger changes.
type CriticalStockAlert struct {
	ID              uint                 `gorm:"primaryKey" json:"-"`
	AlertID         string               `gorm:"uniqueIndex;not null" json:"alertId"`
	HospitalID      string               `gorm:"index:idx_critical_pair;not null" json:"hospitalId"`
	HospitalName    string               `gorm:"not null" json:"hospitalName"`
	BloodType       string               `gorm:"index:idx_critical_pair;not null" json:"bloodType"`
	CurrentUnits    int                  `gorm:"not null" json:"currentUnits"`
	Threshold       int                  `gorm:"not null" json:"threshold"`
	Status          string               `gorm:"not null;default:active" json:"status"`
	CreatedAt       time.Time            `json:"createdAt"`
	Acknowledgments []AlertAcknowledgment `gorm:"foreignKey:AlertID;references:AlertID" json:"acknowledgedBy"`
}

// EmergencyAlert is a hospital-broadcast free-text alert. Immutable except
// for appended acknowledgments; resolution happens only by direct external
// action.
type EmergencyAlert struct {
	ID              uint                 `gorm:"primaryKey" json:"-"`
	AlertID         string               `gorm:"uniqueIndex;not null" json:"alertId"`
	HospitalID      string               `gorm:"not null" json:"hospitalId"`
	HospitalName    string               `gorm:"not null" json:"hospitalName"`
	Message         string               `gorm:"not null" json:"message"`
	Type            string               `gorm:"not null;default:general" json:"type"`
	Priority        string               `gorm:"not null;default:medium" json:"priority"`
	Status          string               `gorm:"not null;default:active" json:"status"`
	CreatedAt       time.Time            `json:"createdAt"`
	Acknowledgments []AlertAcknowledgment `gorm:"foreignKey:AlertID;references:AlertID" json:"acknowledgedBy"`
}

// AlertAcknowledgment is an append-only response entry. Alert ids are
// globally unique across both alert kinds, so one table serves both.
type AlertAcknowledgment struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	AlertID      string    `gorm:"index;not null" json:"-"`
	HospitalID   string    `gorm:"not null" json:"hospitalId"`
	HospitalName string    `gorm:"not null" json:"hospitalName"`
	Response     string    `json:"response"`
	Timestamp    time.Time `gorm:"not null" json:"timestamp"`
}
