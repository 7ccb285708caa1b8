package visits

import (
	"context"

	"gorm.io/gorm"

	"github.com/sanarehealth/medledger-backend/pkg/db/models"
)

// Repository manages persistence for visit records.
type Repository interface {
	Create(ctx context.Context, visit *models.Visit) error
	ListByPatientID(ctx context.Context, patientID string) ([]models.Visit, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a visits repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, visit *models.Visit) error {
	return r.db.WithContext(ctx).Create(visit).Error
}

func (r *repository) ListByPatientID(ctx context.Context, patientID string) ([]models.Visit, error) {
	var visits []models.Visit
	if err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("visit_date DESC").
		Find(&visits).Error; err != nil {
		return nil, err
	}
	return visits, nil
}
