package inventory

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sanarehealth/medledger-backend/pkg/db/models"
)

// Repository manages persistence for blood stock records.
type Repository interface {
	Get(ctx context.Context, hospitalID, bloodType string) (*models.BloodUnit, error)
	ListByHospital(ctx context.Context, hospitalID string) ([]models.BloodUnit, error)
	Increment(ctx context.Context, hospitalID, bloodType string, units int, now time.Time) (*models.BloodUnit, error)
	Decrement(ctx context.Context, hospitalID, bloodType string, units int, now time.Time) (*models.BloodUnit, bool, error)
	SetAbsolute(ctx context.Context, hospitalID, bloodType string, units int, now time.Time) (*models.BloodUnit, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an inventory repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Get(ctx context.Context, hospitalID, bloodType string) (*models.BloodUnit, error) {
	var record models.BloodUnit
	err := r.db.WithContext(ctx).
		Where("hospital_id = ? AND blood_type = ?", hospitalID, bloodType).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) ListByHospital(ctx context.Context, hospitalID string) ([]models.BloodUnit, error) {
	var records []models.BloodUnit
	if err := r.db.WithContext(ctx).
		Where("hospital_id = ?", hospitalID).
		Order("blood_type ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Increment upserts the pair row and adds units atomically.
func (r *repository) Increment(ctx context.Context, hospitalID, bloodType string, units int, now time.Time) (*models.BloodUnit, error) {
	record := models.BloodUnit{
		HospitalID:     hospitalID,
		BloodType:      bloodType,
		AvailableUnits: units,
		LastUpdated:    now,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "hospital_id"}, {Name: "blood_type"}},
			DoUpdates: clause.Assignments(map[string]any{
				"available_units": gorm.Expr("blood_units.available_units + ?", units),
				"last_updated":    now,
			}),
		}).
		Create(&record).Error
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, hospitalID, bloodType)
}

// Decrement subtracts units with a conditional update so the count can never
// go negative under concurrent callers. The second return is false when the
// row is missing or holds fewer units than requested.
func (r *repository) Decrement(ctx context.Context, hospitalID, bloodType string, units int, now time.Time) (*models.BloodUnit, bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.BloodUnit{}).
		Where("hospital_id = ? AND blood_type = ? AND available_units >= ?", hospitalID, bloodType, units).
		Updates(map[string]any{
			"available_units": gorm.Expr("available_units - ?", units),
			"last_updated":    now,
		})
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, false, nil
	}
	record, err := r.Get(ctx, hospitalID, bloodType)
	if err != nil {
		return nil, false, err
	}
	return record, true, nil
}

// SetAbsolute upserts the pair row to an exact count.
func (r *repository) SetAbsolute(ctx context.Context, hospitalID, bloodType string, units int, now time.Time) (*models.BloodUnit, error) {
	record := models.BloodUnit{
		HospitalID:     hospitalID,
		BloodType:      bloodType,
		AvailableUnits: units,
		LastUpdated:    now,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "hospital_id"}, {Name: "blood_type"}},
			DoUpdates: clause.Assignments(map[string]any{
				"available_units": units,
				"last_updated":    now,
			}),
		}).
		Create(&record).Error
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, hospitalID, bloodType)
}
