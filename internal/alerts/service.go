package alerts

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sanarehealth/medledger-backend/internal/broadcast"
	"github.com/sanarehealth/medledger-backend/pkg/db/models"
	pkgerrors "github.com/sanarehealth/medledger-backend/pkg/errors"
	"github.com/sanarehealth/medledger-backend/pkg/ids"
	"github.com/sanarehealth/medledger-backend/pkg/logger"
)

// Service is the alert state machine for critical stock and emergency alerts.
type Service interface {
	CheckThreshold(ctx context.Context, hospitalID, hospitalName, bloodType string, newUnits int) error
	ResolveIfRecovered(ctx context.Context, hospitalID, bloodType string, newUnits int) error
	ListCritical(ctx context.Context) ([]models.CriticalStockAlert, error)
	AcknowledgeCritical(ctx context.Context, input AcknowledgeInput) (*models.CriticalStockAlert, error)

	RaiseEmergency(ctx context.Context, input RaiseEmergencyInput) (*models.EmergencyAlert, error)
	ListEmergency(ctx context.Context) ([]models.EmergencyAlert, error)
	AcknowledgeEmergency(ctx context.Context, input AcknowledgeInput) (*models.EmergencyAlert, error)
}

// AcknowledgeInput captures a hospital's response to an alert.
type AcknowledgeInput struct {
	AlertID      string
	HospitalID   string
	HospitalName string
	Response     string
}

// RaiseEmergencyInput captures a hospital-raised emergency broadcast.
type RaiseEmergencyInput struct {
	HospitalID   string
	HospitalName string
	Message      string
	Type         string
	Priority     string
}

type service struct {
	repo      Repository
	publisher broadcast.Publisher
	threshold int
	logg      *logger.Logger
	now       func() time.Time

	// pairLocks serializes alert creation per (hospital, blood type) pair so
	// concurrent threshold crossings cannot open two active alerts.
	mu        sync.Mutex
	pairLocks map[string]*sync.Mutex
}

// NewService wires the alert state machine.
func NewService(repo Repository, publisher broadcast.Publisher, threshold int, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("alerts repository required")
	}
	if publisher == nil {
		return nil, fmt.Errorf("broadcast publisher required")
	}
	if threshold <= 0 {
		return nil, fmt.Errorf("threshold must be positive, got %d", threshold)
	}
	return &service{
		repo:      repo,
		publisher: publisher,
		threshold: threshold,
		logg:      logg,
		now:       time.Now,
		pairLocks: map[string]*sync.Mutex{},
	}, nil
}

func (s *service) pairLock(hospitalID, bloodType string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := hospitalID + "|" + bloodType
	lock, ok := s.pairLocks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.pairLocks[key] = lock
	}
	return lock
}

func (s *service) CheckThreshold(ctx context.Context, hospitalID, hospitalName, bloodType string, newUnits int) error {
	if newUnits >= s.threshold {
		return s.ResolveIfRecovered(ctx, hospitalID, bloodType, newUnits)
	}

	lock := s.pairLock(hospitalID, bloodType)
	lock.Lock()
	defer lock.Unlock()

	existing, err := s.repo.FindActiveCriticalByPair(ctx, hospitalID, bloodType)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find active alert")
	}
	if existing != nil {
		// Already alerted for this pair; repeated low readings stay quiet.
		return nil
	}

	alert := &models.CriticalStockAlert{
		AlertID:         ids.New(ids.PrefixAlert),
		HospitalID:      hospitalID,
		HospitalName:    hospitalName,
		BloodType:       bloodType,
		CurrentUnits:    newUnits,
		Threshold:       s.threshold,
		Status:          models.AlertStatusActive,
		CreatedAt:       s.now().UTC(),
		Acknowledgments: []models.AlertAcknowledgment{},
	}
	if err := s.repo.CreateCritical(ctx, alert); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create critical alert")
	}

	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"alert_id":      alert.AlertID,
			"hospital_id":   hospitalID,
			"blood_type":    bloodType,
			"current_units": newUnits,
		})
		s.logg.Warn(logCtx, "alerts.critical_stock.created")
	}

	s.publisher.Publish(ctx, broadcast.Event{
		Event: "criticalStock",
		Data: map[string]any{
			"alertId":      alert.AlertID,
			"hospitalId":   alert.HospitalID,
			"hospitalName": alert.HospitalName,
			"bloodType":    alert.BloodType,
			"currentUnits": alert.CurrentUnits,
		},
	})
	return nil
}

func (s *service) ResolveIfRecovered(ctx context.Context, hospitalID, bloodType string, newUnits int) error {
	if newUnits < s.threshold {
		return nil
	}
	if err := s.repo.ResolveCriticalByPair(ctx, hospitalID, bloodType); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve critical alerts")
	}
	return nil
}

func (s *service) ListCritical(ctx context.Context) ([]models.CriticalStockAlert, error) {
	list, err := s.repo.ListActiveCritical(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list critical alerts")
	}
	return list, nil
}

func (s *service) AcknowledgeCritical(ctx context.Context, input AcknowledgeInput) (*models.CriticalStockAlert, error) {
	if err := validateAcknowledge(input); err != nil {
		return nil, err
	}
	alert, err := s.repo.FindCriticalByAlertID(ctx, input.AlertID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find critical alert")
	}
	if alert == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "alert not found")
	}
	if err := s.appendAck(ctx, input); err != nil {
		return nil, err
	}
	return s.repo.FindCriticalByAlertID(ctx, input.AlertID)
}

func (s *service) RaiseEmergency(ctx context.Context, input RaiseEmergencyInput) (*models.EmergencyAlert, error) {
	if strings.TrimSpace(input.Message) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message is required")
	}
	if input.HospitalID == "" || input.HospitalName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "hospital id and name are required")
	}

	alertType := input.Type
	if alertType == "" {
		alertType = models.EmergencyTypeGeneral
	}
	priority := input.Priority
	if priority == "" {
		priority = models.EmergencyPriorityMedium
	}

	alert := &models.EmergencyAlert{
		AlertID:         ids.New(ids.PrefixEmergency),
		HospitalID:      input.HospitalID,
		HospitalName:    input.HospitalName,
		Message:         input.Message,
		Type:            alertType,
		Priority:        priority,
		Status:          models.AlertStatusActive,
		CreatedAt:       s.now().UTC(),
		Acknowledgments: []models.AlertAcknowledgment{},
	}
	if err := s.repo.CreateEmergency(ctx, alert); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create emergency alert")
	}

	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"alert_id":    alert.AlertID,
			"hospital_id": alert.HospitalID,
			"priority":    alert.Priority,
		})
		s.logg.Warn(logCtx, "alerts.emergency.raised")
	}

	s.publisher.Publish(ctx, broadcast.Event{
		Event: "emergencyAlert",
		Data: map[string]any{
			"alertId":      alert.AlertID,
			"hospitalName": alert.HospitalName,
			"message":      alert.Message,
			"type":         alert.Type,
			"priority":     alert.Priority,
			"timestamp":    alert.CreatedAt,
		},
	})
	return alert, nil
}

func (s *service) ListEmergency(ctx context.Context) ([]models.EmergencyAlert, error) {
	list, err := s.repo.ListActiveEmergency(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list emergency alerts")
	}
	return list, nil
}

func (s *service) AcknowledgeEmergency(ctx context.Context, input AcknowledgeInput) (*models.EmergencyAlert, error) {
	if err := validateAcknowledge(input); err != nil {
		return nil, err
	}
	alert, err := s.repo.FindEmergencyByAlertID(ctx, input.AlertID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find emergency alert")
	}
	if alert == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "alert not found")
	}
	if err := s.appendAck(ctx, input); err != nil {
		return nil, err
	}
	return s.repo.FindEmergencyByAlertID(ctx, input.AlertID)
}

func (s *service) appendAck(ctx context.Context, input AcknowledgeInput) error {
	ack := &models.AlertAcknowledgment{
		AlertID:      input.AlertID,
		HospitalID:   input.HospitalID,
		HospitalName: input.HospitalName,
		Response:     input.Response,
		Timestamp:    s.now().UTC(),
	}
	if err := s.repo.AppendAcknowledgment(ctx, ack); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append acknowledgment")
	}
	return nil
}

func validateAcknowledge(input AcknowledgeInput) error {
	if input.AlertID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "alert id is required")
	}
	if input.HospitalID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "hospital id is required")
	}
	return nil
}
