package hospitals

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sanarehealth/medledger-backend/pkg/db/models"
)

// Repository manages persistence for hospital accounts.
type Repository interface {
	Create(ctx context.Context, hospital *models.Hospital) error
	FindByEmail(ctx context.Context, email string) (*models.Hospital, error)
	FindByHospitalID(ctx context.Context, hospitalID string) (*models.Hospital, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a hospitals repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, hospital *models.Hospital) error {
	return r.db.WithContext(ctx).Create(hospital).Error
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*models.Hospital, error) {
	var hospital models.Hospital
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&hospital).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &hospital, nil
}

func (r *repository) FindByHospitalID(ctx context.Context, hospitalID string) (*models.Hospital, error) {
	var hospital models.Hospital
	err := r.db.WithContext(ctx).Where("hospital_id = ?", hospitalID).First(&hospital).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &hospital, nil
}
