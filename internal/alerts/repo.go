package alerts

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sanarehealth/medledger-backend/pkg/db/models"
)

// Repository manages persistence for both alert kinds and their
// acknowledgments.
type Repository interface {
	CreateCritical(ctx context.Context, alert *models.CriticalStockAlert) error
	FindActiveCriticalByPair(ctx context.Context, hospitalID, bloodType string) (*models.CriticalStockAlert, error)
	ResolveCriticalByPair(ctx context.Context, hospitalID, bloodType string) error
	ListActiveCritical(ctx context.Context) ([]models.CriticalStockAlert, error)
	FindCriticalByAlertID(ctx context.Context, alertID string) (*models.CriticalStockAlert, error)

	CreateEmergency(ctx context.Context, alert *models.EmergencyAlert) error
	ListActiveEmergency(ctx context.Context) ([]models.EmergencyAlert, error)
	FindEmergencyByAlertID(ctx context.Context, alertID string) (*models.EmergencyAlert, error)

	AppendAcknowledgment(ctx context.Context, ack *models.AlertAcknowledgment) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an alerts repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateCritical(ctx context.Context, alert *models.CriticalStockAlert) error {
	return r.db.WithContext(ctx).Create(alert).Error
}

func (r *repository) FindActiveCriticalByPair(ctx context.Context, hospitalID, bloodType string) (*models.CriticalStockAlert, error) {
	var alert models.CriticalStockAlert
	err := r.db.WithContext(ctx).
		Where("hospital_id = ? AND blood_type = ? AND status = ?", hospitalID, bloodType, models.AlertStatusActive).
		First(&alert).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &alert, nil
}

// ResolveCriticalByPair flips every active alert for the pair to resolved in
// one statement.
func (r *repository) ResolveCriticalByPair(ctx context.Context, hospitalID, bloodType string) error {
	return r.db.WithContext(ctx).
		Model(&models.CriticalStockAlert{}).
		Where("hospital_id = ? AND blood_type = ? AND status = ?", hospitalID, bloodType, models.AlertStatusActive).
		Update("status", models.AlertStatusResolved).Error
}

func (r *repository) ListActiveCritical(ctx context.Context) ([]models.CriticalStockAlert, error) {
	var list []models.CriticalStockAlert
	if err := r.db.WithContext(ctx).
		Preload("Acknowledgments").
		Where("status = ?", models.AlertStatusActive).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *repository) FindCriticalByAlertID(ctx context.Context, alertID string) (*models.CriticalStockAlert, error) {
	var alert models.CriticalStockAlert
	err := r.db.WithContext(ctx).
		Preload("Acknowledgments").
		Where("alert_id = ?", alertID).
		First(&alert).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &alert, nil
}

func (r *repository) CreateEmergency(ctx context.Context, alert *models.EmergencyAlert) error {
	return r.db.WithContext(ctx).Create(alert).Error
}

func (r *repository) ListActiveEmergency(ctx context.Context) ([]models.EmergencyAlert, error) {
	var list []models.EmergencyAlert
	if err := r.db.WithContext(ctx).
		Preload("Acknowledgments").
		Where("status = ?", models.AlertStatusActive).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *repository) FindEmergencyByAlertID(ctx context.Context, alertID string) (*models.EmergencyAlert, error) {
	var alert models.EmergencyAlert
	err := r.db.WithContext(ctx).
		Preload("Acknowledgments").
		Where("alert_id = ?", alertID).
		First(&alert).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &alert, nil
}

func (r *repository) AppendAcknowledgment(ctx context.Context, ack *models.AlertAcknowledgment) error {
	return r.db.WithContext(ctx).Create(ack).Error
}
