package patients

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sanarehealth/medledger-backend/pkg/db/models"
)

// Repository manages persistence for patient accounts.
type Repository interface {
	Create(ctx context.Context, patient *models.Patient) error
	FindByEmail(ctx context.Context, email string) (*models.Patient, error)
	FindByPatientID(ctx context.Context, patientID string) (*models.Patient, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a patients repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, patient *models.Patient) error {
	return r.db.WithContext(ctx).Create(patient).Error
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*models.Patient, error) {
	var patient models.Patient
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&patient).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *repository) FindByPatientID(ctx context.Context, patientID string) (*models.Patient, error) {
	var patient models.Patient
	err := r.db.WithContext(ctx).Where("patient_id = ?", patientID).First(&patient).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &patient, nil
}
