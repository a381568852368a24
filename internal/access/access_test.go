package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"HealthoraConsole/pkg/errors"
)

// TestGate_SystemAdmin проверяет полный набор разрешений администратора
func TestGate_SystemAdmin(t *testing.T) {
	gate := NewGate(
		[]string{"manage_users", "view_dashboard_summary", "view_patients",
			"view_drugs", "view_inventory", "view_ai_report"},
		[]string{"dashboard", "users", "patients", "drugs", "inventory", "ai_report", "settings"},
	)

	assert.True(t, gate.Allows(PermManageUsers))
	assert.True(t, gate.Allows(PermViewAIReport))
	assert.False(t, gate.Allows(PermAddBatch))

	assert.True(t, gate.CanAccessModule(ModuleUsers))
	assert.True(t, gate.CanAccessModule(ModuleSettings))
}

// TestGate_StaffPharmacist проверяет ограниченный набор рядового фармацевта
func TestGate_StaffPharmacist(t *testing.T) {
	gate := NewGate(
		[]string{"view_dashboard_summary", "view_drugs", "view_inventory", "update_inventory"},
		[]string{"dashboard", "drugs", "inventory"},
	)

	assert.True(t, gate.Allows(PermUpdateInventory))
	assert.False(t, gate.Allows(PermManageUsers))
	assert.False(t, gate.Allows(PermAddDrug))

	assert.True(t, gate.CanAccessModule(ModuleInventory))
	assert.False(t, gate.CanAccessModule(ModuleUsers))
	assert.False(t, gate.CanAccessModule(ModulePatients))
}

// TestGate_RequireReturnsForbidden проверяет локальную ошибку без запроса к серверу
func TestGate_RequireReturnsForbidden(t *testing.T) {
	gate := NewGate([]string{"view_drugs"}, []string{"drugs"})

	require.NoError(t, gate.Require(PermViewDrugs))

	err := gate.Require(PermManageUsers)
	require.Error(t, err)

	var appErr *errors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)
}

// TestGate_UnknownStringsIgnored проверяет, что неизвестные строки бэкенда
// не попадают в набор разрешений
func TestGate_UnknownStringsIgnored(t *testing.T) {
	gate := NewGate(
		[]string{"view_drugs", "future_permission"},
		[]string{"drugs"},
	)

	assert.True(t, gate.Allows(PermViewDrugs))
	assert.Len(t, gate.Permissions(), 1)
}

// TestGate_EmptyDeniesEverything проверяет поведение пустого дескриптора
func TestGate_EmptyDeniesEverything(t *testing.T) {
	gate := NewGate(nil, nil)

	assert.False(t, gate.Allows(PermViewDashboardSummary))
	assert.False(t, gate.CanAccessModule(ModuleDashboard))
	assert.Error(t, gate.Require(PermViewDashboardSummary))
}

// TestParsePermission проверяет разбор строк разрешений
func TestParsePermission(t *testing.T) {
	p, err := ParsePermission("add_batch")
	require.NoError(t, err)
	assert.Equal(t, PermAddBatch, p)

	_, err = ParsePermission("delete_everything")
	assert.Error(t, err)
}
