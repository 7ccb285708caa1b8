package alerts

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sanarehealth/medledger-backend/internal/broadcast"
	"github.com/sanarehealth/medledger-backend/pkg/db/models"
	pkgerrors "github.com/sanarehealth/medledger-backend/pkg/errors"
)

type fakePublisher struct {
	mu     sync.Mutex
	events []broadcast.Event
}

func (f *fakePublisher) Publish(ctx context.Context, event broadcast.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

func (f *fakePublisher) byName(name string) []broadcast.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []broadcast.Event
	for _, event := range f.events {
		if event.Event == name {
			matched = append(matched, event)
		}
	}
	return matched
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:alerts_" + uuid.NewString() + "?mode=memory&cache=shared"
	// Both alert kinds share the acknowledgments table, so constraint
	// creation is skipped to keep the schema identical to production.
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.CriticalStockAlert{},
		&models.EmergencyAlert{},
		&models.AlertAcknowledgment{},
	))
	return db
}

func newTestService(t *testing.T, threshold int) (Service, *fakePublisher) {
	t.Helper()
	publisher := &fakePublisher{}
	svc, err := NewService(NewRepository(newTestDB(t)), publisher, threshold, nil)
	require.NoError(t, err)
	return svc, publisher
}

func TestCheckThresholdCreatesSingleAlert(t *testing.T) {
	t.Parallel()

	svc, publisher := newTestService(t, 10)
	ctx := context.Background()

	require.NoError(t, svc.CheckThreshold(ctx, "HOSP-1", "General", "O-", 7))
	require.NoError(t, svc.CheckThreshold(ctx, "HOSP-1", "General", "O-", 5))
	require.NoError(t, svc.CheckThreshold(ctx, "HOSP-1", "General", "O-", 2))

	active, err := svc.ListCritical(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, 7, active[0].CurrentUnits)
	require.Equal(t, 10, active[0].Threshold)

	events := publisher.byName("criticalStock")
	require.Len(t, events, 1)
	data := events[0].Data.(map[string]any)
	require.Equal(t, active[0].AlertID, data["alertId"])
	require.Equal(t, "O-", data["bloodType"])
	require.Equal(t, 7, data["currentUnits"])
}

func TestCheckThresholdResolvesOnRecovery(t *testing.T) {
	t.Parallel()

	svc, publisher := newTestService(t, 10)
	ctx := context.Background()

	require.NoError(t, svc.CheckThreshold(ctx, "HOSP-1", "General", "A+", 4))
	require.NoError(t, svc.CheckThreshold(ctx, "HOSP-1", "General", "A+", 10))

	active, err := svc.ListCritical(ctx)
	require.NoError(t, err)
	require.Empty(t, active)

	// Recovery emits nothing.
	require.Len(t, publisher.byName("criticalStock"), 1)
}

func TestResolveIfRecoveredNeverCreates(t *testing.T) {
	t.Parallel()

	svc, publisher := newTestService(t, 10)
	ctx := context.Background()

	// Below threshold via the resolve-only half must not open an alert.
	require.NoError(t, svc.ResolveIfRecovered(ctx, "HOSP-1", "B+", 3))

	active, err := svc.ListCritical(ctx)
	require.NoError(t, err)
	require.Empty(t, active)
	require.Empty(t, publisher.byName("criticalStock"))
}

func TestAlertLifecycleScenario(t *testing.T) {
	t.Parallel()

	// 15 units, remove 8 (7 left, alert), add 5 (12, resolved), remove 3
	// (9, new alert with a distinct id).
	svc, publisher := newTestService(t, 10)
	ctx := context.Background()

	require.NoError(t, svc.CheckThreshold(ctx, "HOSP-1", "General", "O-", 7))
	first, err := svc.ListCritical(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)

	require.NoError(t, svc.ResolveIfRecovered(ctx, "HOSP-1", "O-", 12))
	active, err := svc.ListCritical(ctx)
	require.NoError(t, err)
	require.Empty(t, active)

	require.NoError(t, svc.CheckThreshold(ctx, "HOSP-1", "General", "O-", 9))
	second, err := svc.ListCritical(ctx)
	require.NoError(t, err)
	require.Len(t, second, 1)
	require.Equal(t, 9, second[0].CurrentUnits)
	require.NotEqual(t, first[0].AlertID, second[0].AlertID)

	require.Len(t, publisher.byName("criticalStock"), 2)
}

func TestConcurrentCrossingsCreateOneAlert(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, 10)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = svc.CheckThreshold(ctx, "HOSP-1", "General", "AB-", 3)
		}()
	}
	wg.Wait()

	active, err := svc.ListCritical(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
}

func TestAcknowledgeCritical(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, 10)
	ctx := context.Background()

	_, err := svc.AcknowledgeCritical(ctx, AcknowledgeInput{
		AlertID: "ALERT-UNKNOWN", HospitalID: "HOSP-2", HospitalName: "Mercy",
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	require.NoError(t, svc.CheckThreshold(ctx, "HOSP-1", "General", "O+", 2))
	active, err := svc.ListCritical(ctx)
	require.NoError(t, err)
	alertID := active[0].AlertID

	updated, err := svc.AcknowledgeCritical(ctx, AcknowledgeInput{
		AlertID: alertID, HospitalID: "HOSP-2", HospitalName: "Mercy", Response: "sending 5 units",
	})
	require.NoError(t, err)
	require.Len(t, updated.Acknowledgments, 1)
	require.Equal(t, "HOSP-2", updated.Acknowledgments[0].HospitalID)

	// Acknowledging a resolved alert still appends and keeps prior entries.
	require.NoError(t, svc.ResolveIfRecovered(ctx, "HOSP-1", "O+", 20))
	updated, err = svc.AcknowledgeCritical(ctx, AcknowledgeInput{
		AlertID: alertID, HospitalID: "HOSP-3", HospitalName: "St. Jude",
	})
	require.NoError(t, err)
	require.Equal(t, models.AlertStatusResolved, updated.Status)
	require.Len(t, updated.Acknowledgments, 2)
}

func TestRaiseEmergencyDefaultsAndEvent(t *testing.T) {
	t.Parallel()

	svc, publisher := newTestService(t, 10)
	ctx := context.Background()

	_, err := svc.RaiseEmergency(ctx, RaiseEmergencyInput{
		HospitalID: "HOSP-1", HospitalName: "General", Message: "   ",
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())

	alert, err := svc.RaiseEmergency(ctx, RaiseEmergencyInput{
		HospitalID: "HOSP-1", HospitalName: "General", Message: "mass casualty incoming",
	})
	require.NoError(t, err)
	require.Equal(t, models.EmergencyTypeGeneral, alert.Type)
	require.Equal(t, models.EmergencyPriorityMedium, alert.Priority)
	require.Equal(t, models.AlertStatusActive, alert.Status)

	events := publisher.byName("emergencyAlert")
	require.Len(t, events, 1)
	data := events[0].Data.(map[string]any)
	require.Equal(t, alert.AlertID, data["alertId"])
	require.Equal(t, "mass casualty incoming", data["message"])

	active, err := svc.ListEmergency(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
}

func TestAcknowledgeEmergency(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, 10)
	ctx := context.Background()

	alert, err := svc.RaiseEmergency(ctx, RaiseEmergencyInput{
		HospitalID: "HOSP-1", HospitalName: "General", Message: "need O- donors",
		Type: "blood_shortage", Priority: "high",
	})
	require.NoError(t, err)
	require.Equal(t, "blood_shortage", alert.Type)
	require.Equal(t, "high", alert.Priority)

	updated, err := svc.AcknowledgeEmergency(ctx, AcknowledgeInput{
		AlertID: alert.AlertID, HospitalID: "HOSP-2", HospitalName: "Mercy", Response: "on our way",
	})
	require.NoError(t, err)
	require.Len(t, updated.Acknowledgments, 1)
	require.Equal(t, "on our way", updated.Acknowledgments[0].Response)
}
