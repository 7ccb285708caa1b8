package models

import "time"

// Visit is a hospital-authored clinical record attached to a patient.
type Visit struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	VisitID      string    `gorm:"uniqueIndex;not null" json:"visitId"`
	PatientID    string    `gorm:"index;not null" json:"patientId"`
	HospitalID   string    `gorm:"not null" json:"hospitalId"`
	HospitalName string    `gorm:"not null" json:"hospitalName"`
	VisitDate    time.Time `gorm:"not null" json:"visitDate"`
	Diagnosis    string    `gorm:"not null" json:"diagnosis"`
	Prescription string    `gorm:"not null" json:"prescription"`
	LabResults   string    `json:"labResults,omitempty"`
	DoctorName   string    `gorm:"not null" json:"doctorName"`
	Notes        string    `json:"notes,omitempty"`
}
