package hospitals

import (
	"context"
	"fmt"
	"strings"

	"github.com/sanarehealth/medledger-backend/pkg/config"
	"github.com/sanarehealth/medledger-backend/pkg/db/models"
	pkgerrors "github.com/sanarehealth/medledger-backend/pkg/errors"
	"github.com/sanarehealth/medledger-backend/pkg/ids"
	"github.com/sanarehealth/medledger-backend/pkg/security"
)

// Service defines hospital account operations.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*models.Hospital, error)
	FindByEmail(ctx context.Context, email string) (*models.Hospital, error)
	GetByHospitalID(ctx context.Context, hospitalID string) (*models.Hospital, error)
}

// RegisterInput captures the data needed to create a hospital account.
type RegisterInput struct {
	HospitalName string
	Email        string
	Password     string
}

type service struct {
	repo     Repository
	password config.PasswordConfig
}

// NewService wires the hospital account service.
func NewService(repo Repository, password config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("hospitals repository required")
	}
	return &service{repo: repo, password: password}, nil
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*models.Hospital, error) {
	if strings.TrimSpace(input.HospitalName) == "" ||
		strings.TrimSpace(input.Email) == "" ||
		input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "hospital name, email and password are required")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup hospital email")
	}
	if existing != nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
	}

	hash, err := security.HashPassword(input.Password, s.password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	hospital := &models.Hospital{
		HospitalID:   ids.New(ids.PrefixHospital),
		HospitalName: input.HospitalName,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, hospital); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create hospital")
	}
	return hospital, nil
}

func (s *service) FindByEmail(ctx context.Context, email string) (*models.Hospital, error) {
	hospital, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup hospital email")
	}
	return hospital, nil
}

func (s *service) GetByHospitalID(ctx context.Context, hospitalID string) (*models.Hospital, error) {
	if hospitalID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "hospital id is required")
	}
	hospital, err := s.repo.FindByHospitalID(ctx, hospitalID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup hospital")
	}
	if hospital == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "hospital not found")
	}
	return hospital, nil
}
