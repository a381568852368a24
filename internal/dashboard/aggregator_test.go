package dashboard

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"HealthoraConsole/internal/access"
	"HealthoraConsole/internal/client"
	"HealthoraConsole/pkg/errors"
	"HealthoraConsole/pkg/logger"
)

// stubBackend возвращает заранее заданные ответы и считает обращения
type stubBackend struct {
	summaryErr error
	expiryErr  error
	calls      atomic.Int32
}

func (s *stubBackend) DashboardSummary(ctx context.Context) (*client.DashboardSummary, error) {
	s.calls.Add(1)
	if s.summaryErr != nil {
		return nil, s.summaryErr
	}
	return &client.DashboardSummary{UsableStock: 120, TotalStock: 150, LowStockAlerts: 3, TotalPatients: 42}, nil
}

func (s *stubBackend) DashboardExpiry(ctx context.Context) ([]client.ExpiryRow, error) {
	s.calls.Add(1)
	if s.expiryErr != nil {
		return nil, s.expiryErr
	}
	return []client.ExpiryRow{{BatchID: 1, DrugName: "Amoxicillin", DaysLeft: 12}}, nil
}

func (s *stubBackend) DashboardNotifications(ctx context.Context) ([]string, error) {
	s.calls.Add(1)
	return []string{"3 препарата с низким остатком"}, nil
}

func (s *stubBackend) DashboardAccess(ctx context.Context) (*client.DashboardAccess, error) {
	s.calls.Add(1)
	return &client.DashboardAccess{
		Role:        "pharmacy_manager",
		DisplayName: "Pharmacy Manager",
		Modules:     []string{"dashboard", "drugs", "inventory", "ai_report"},
		Permissions: []string{"view_dashboard_summary", "view_drugs", "add_drug", "add_batch", "view_inventory", "update_inventory", "view_ai_report"},
	}, nil
}

func (s *stubBackend) Me(ctx context.Context) (*client.UserProfile, error) {
	s.calls.Add(1)
	return &client.UserProfile{UserID: 7, Username: "manager", Role: "pharmacy_manager", IsActive: true}, nil
}

// TestAggregator_LoadCollectsAllReads проверяет, что снимок собирается
// из всех пяти чтений и шлюз доступа строится из дескриптора
func TestAggregator_LoadCollectsAllReads(t *testing.T) {
	backend := &stubBackend{}
	agg := NewAggregator(backend, logger.NewNopLogger())

	snapshot, err := agg.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(5), backend.calls.Load())
	assert.Equal(t, 120, snapshot.Summary.UsableStock)
	assert.Len(t, snapshot.Expiry, 1)
	assert.Len(t, snapshot.Notifications, 1)
	assert.Equal(t, "manager", snapshot.Profile.Username)

	require.NotNil(t, snapshot.Gate)
	assert.True(t, snapshot.Gate.Allows(access.PermAddBatch))
	assert.False(t, snapshot.Gate.Allows(access.PermManageUsers))
	assert.True(t, snapshot.Gate.CanAccessModule(access.ModuleAIReport))
	assert.False(t, snapshot.Gate.CanAccessModule(access.ModuleUsers))
}

// TestAggregator_FirstErrorWins проверяет, что ошибка любого чтения
// прерывает загрузку и частичный снимок не возвращается
func TestAggregator_FirstErrorWins(t *testing.T) {
	backend := &stubBackend{
		summaryErr: errors.New(errors.ErrUnavailable, errors.GenericRequestFailed),
	}
	agg := NewAggregator(backend, logger.NewNopLogger())

	snapshot, err := agg.Load(context.Background())
	require.Error(t, err)
	assert.Nil(t, snapshot)
	assert.Equal(t, errors.GenericRequestFailed, err.Error())
}

// TestAggregator_RefreshSeesNewData проверяет, что повторная загрузка
// опрашивает бэкенд заново
func TestAggregator_RefreshSeesNewData(t *testing.T) {
	backend := &stubBackend{}
	agg := NewAggregator(backend, logger.NewNopLogger())

	_, err := agg.Load(context.Background())
	require.NoError(t, err)

	_, err = agg.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(10), backend.calls.Load())
}
