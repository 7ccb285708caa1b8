package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/sanarehealth/medledger-backend/pkg/db/models"
	pkgerrors "github.com/sanarehealth/medledger-backend/pkg/errors"
)

// StockAlerter is the slice of the alert state machine the ledger drives.
// Keeping it local avoids a dependency on the alerts package internals.
type StockAlerter interface {
	// CheckThreshold runs the full bidirectional check: create an alert when
	// the count is below threshold, resolve active alerts when it recovered.
	CheckThreshold(ctx context.Context, hospitalID, hospitalName, bloodType string, newUnits int) error
	// ResolveIfRecovered only resolves; it never creates.
	ResolveIfRecovered(ctx context.Context, hospitalID, bloodType string, newUnits int) error
}

// Service defines the blood stock ledger operations.
type Service interface {
	AddUnits(ctx context.Context, input StockChangeInput) (*models.BloodUnit, error)
	RemoveUnits(ctx context.Context, input StockChangeInput) (*models.BloodUnit, error)
	SetUnits(ctx context.Context, input SetUnitsInput) (*models.BloodUnit, error)
	List(ctx context.Context, hospitalID string) ([]models.BloodUnit, error)
}

// StockChangeInput captures a relative stock mutation.
type StockChangeInput struct {
	HospitalID   string
	HospitalName string
	BloodType    string
	Units        int
}

// SetUnitsInput captures an absolute stock write.
type SetUnitsInput struct {
	HospitalID     string
	HospitalName   string
	BloodType      string
	AvailableUnits int
}

type service struct {
	repo    Repository
	alerter StockAlerter
	now     func() time.Time
}

// NewService wires the ledger with its repository and the alert hook.
func NewService(repo Repository, alerter StockAlerter) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if alerter == nil {
		return nil, fmt.Errorf("stock alerter required")
	}
	return &service{repo: repo, alerter: alerter, now: time.Now}, nil
}

func (s *service) AddUnits(ctx context.Context, input StockChangeInput) (*models.BloodUnit, error) {
	if err := validateChange(input); err != nil {
		return nil, err
	}

	record, err := s.repo.Increment(ctx, input.HospitalID, input.BloodType, input.Units, s.now().UTC())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "increment stock")
	}

	// Additions only ever resolve; they never open an alert even when the
	// count is still below threshold.
	if err := s.alerter.ResolveIfRecovered(ctx, input.HospitalID, input.BloodType, record.AvailableUnits); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *service) RemoveUnits(ctx context.Context, input StockChangeInput) (*models.BloodUnit, error) {
	if err := validateChange(input); err != nil {
		return nil, err
	}

	record, ok, err := s.repo.Decrement(ctx, input.HospitalID, input.BloodType, input.Units, s.now().UTC())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrement stock")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeInsufficientStock, "insufficient blood units").
			WithDetails(map[string]any{
				"bloodType": input.BloodType,
				"requested": input.Units,
			})
	}

	if err := s.alerter.CheckThreshold(ctx, input.HospitalID, input.HospitalName, input.BloodType, record.AvailableUnits); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *service) SetUnits(ctx context.Context, input SetUnitsInput) (*models.BloodUnit, error) {
	if input.HospitalID == "" || input.BloodType == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "hospital id and blood type are required")
	}
	if input.AvailableUnits < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "available units must be zero or more")
	}

	record, err := s.repo.SetAbsolute(ctx, input.HospitalID, input.BloodType, input.AvailableUnits, s.now().UTC())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "set stock")
	}

	if err := s.alerter.CheckThreshold(ctx, input.HospitalID, input.HospitalName, input.BloodType, record.AvailableUnits); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *service) List(ctx context.Context, hospitalID string) ([]models.BloodUnit, error) {
	if hospitalID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "hospital id is required")
	}
	records, err := s.repo.ListByHospital(ctx, hospitalID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stock")
	}
	return records, nil
}

func validateChange(input StockChangeInput) error {
	if input.HospitalID == "" || input.BloodType == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "hospital id and blood type are required")
	}
	if input.Units <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "units must be greater than zero")
	}
	return nil
}
