package hospitals

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sanarehealth/medledger-backend/pkg/config"
	"github.com/sanarehealth/medledger-backend/pkg/db/models"
	pkgerrors "github.com/sanarehealth/medledger-backend/pkg/errors"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	dsn := "file:hospitals_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Hospital{}))

	svc, err := NewService(NewRepository(db), config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	})
	require.NoError(t, err)
	return svc
}

func TestRegisterCreatesHospital(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	hospital, err := svc.Register(context.Background(), RegisterInput{
		HospitalName: "General Hospital",
		Email:        "Admin@General.org",
		Password:     "strong-password",
	})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hospital.HospitalID, "HOSP-"))
	require.Equal(t, "admin@general.org", hospital.Email)
	require.NotEqual(t, "strong-password", hospital.PasswordHash)
}

func TestRegisterRequiresAllFields(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	_, err := svc.Register(context.Background(), RegisterInput{
		HospitalName: "General Hospital",
		Email:        "admin@general.org",
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()
	input := RegisterInput{
		HospitalName: "General Hospital",
		Email:        "admin@general.org",
		Password:     "strong-password",
	}
	_, err := svc.Register(ctx, input)
	require.NoError(t, err)

	_, err = svc.Register(ctx, input)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeConflict, typed.Code())
}
