package cmd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"

	"HealthoraConsole/internal/client"
	"HealthoraConsole/internal/session"
	"HealthoraConsole/pkg/config"
	"HealthoraConsole/pkg/errors"
	"HealthoraConsole/pkg/logger"
	"HealthoraConsole/pkg/metrics"
)

// setupTestApp подменяет зависимости команд тестовым бэкендом
func setupTestApp(t *testing.T, handler http.Handler) *httptest.Server {
	t.Setenv("HEALTHORA_HOME", t.TempDir())

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg = config.DefaultConfig()
	cfg.API.BaseURL = server.URL
	appLogger = logger.NewNopLogger()
	appMetrics = metrics.NewMetrics("healthora_console")
	sessionManager = session.NewManager(session.NewMemoryStore(), session.NewMemoryStore(), appLogger)
	apiClient = client.NewClient(server.URL, 5*time.Second, sessionManager, appLogger, appMetrics)

	return server
}

// accessDescriptor отдает дескриптор доступа с заданными разрешениями
func accessDescriptor(permissions []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(client.DashboardAccess{
			Role:        "staff_pharmacist",
			DisplayName: "Staff Pharmacist",
			Modules:     []string{"dashboard", "drugs", "inventory"},
			Permissions: permissions,
		})
	}
}

// requireForbidden проверяет, что ошибка сформирована локально как отказ в доступе
func requireForbidden(t *testing.T, err error) {
	require.Error(t, err)

	var appErr *errors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)
}

// TestBatchExpire_RequiresAddBatch проверяет, что списание партии закрыто
// для ролей с правом корректировки остатка, но без права приемки
func TestBatchExpire_RequiresAddBatch(t *testing.T) {
	mutated := false

	mux := http.NewServeMux()
	mux.HandleFunc("/api/dashboard-access", accessDescriptor(
		[]string{"view_dashboard_summary", "view_drugs", "view_inventory", "update_inventory"}))
	mux.HandleFunc("/api/drug-batches/5/mark-expired", func(w http.ResponseWriter, r *http.Request) {
		mutated = true
		json.NewEncoder(w).Encode(client.InventoryRow{BatchID: 5})
	})
	setupTestApp(t, mux)

	err := handleBatchExpire(batchExpireCmd, []string{"5"})
	requireForbidden(t, err)
	assert.False(t, mutated, "бэкенд не должен получать запрос при локальном отказе")
}

// TestBatchExpire_AllowedWithAddBatch проверяет списание с правом приемки
func TestBatchExpire_AllowedWithAddBatch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/dashboard-access", accessDescriptor(
		[]string{"view_inventory", "update_inventory", "add_batch"}))
	mux.HandleFunc("/api/drug-batches/5/mark-expired", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(client.InventoryRow{BatchID: 5, DrugName: "Amoxicillin", BatchNo: "AMX-001"})
	})
	setupTestApp(t, mux)

	require.NoError(t, handleBatchExpire(batchExpireCmd, []string{"5"}))
}

// TestDrugsDisable_RequiresAddDrug проверяет, что отключение препарата
// закрыто для ролей без права добавления в справочник
func TestDrugsDisable_RequiresAddDrug(t *testing.T) {
	mutated := false

	mux := http.NewServeMux()
	mux.HandleFunc("/api/dashboard-access", accessDescriptor(
		[]string{"view_dashboard_summary", "view_drugs", "view_inventory", "update_inventory"}))
	mux.HandleFunc("/api/drugs/3/disable", func(w http.ResponseWriter, r *http.Request) {
		mutated = true
		json.NewEncoder(w).Encode(client.Drug{DrugID: 3})
	})
	setupTestApp(t, mux)

	err := handleDrugsDisable(drugsDisableCmd, []string{"3"})
	requireForbidden(t, err)
	assert.False(t, mutated)
}

// TestDrugsUpdate_RequiresAddDrug проверяет локальный отказ на изменении препарата
func TestDrugsUpdate_RequiresAddDrug(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/dashboard-access", accessDescriptor([]string{"view_drugs"}))
	setupTestApp(t, mux)

	require.NoError(t, drugsUpdateCmd.Flags().Set("name", "Amoxicillin Forte"))
	t.Cleanup(func() {
		drugsUpdateCmd.Flags().Set("name", "")
	})

	err := handleDrugsUpdate(drugsUpdateCmd, []string{"3"})
	requireForbidden(t, err)
}

// TestPatientsArchive_RequiresViewPatients проверяет, что архивирование
// пациента закрыто для складских ролей
func TestPatientsArchive_RequiresViewPatients(t *testing.T) {
	mutated := false

	mux := http.NewServeMux()
	mux.HandleFunc("/api/dashboard-access", accessDescriptor(
		[]string{"view_dashboard_summary", "view_drugs", "view_inventory", "update_inventory"}))
	mux.HandleFunc("/api/patients/9/archive", func(w http.ResponseWriter, r *http.Request) {
		mutated = true
		json.NewEncoder(w).Encode(client.Patient{PatientID: 9})
	})
	setupTestApp(t, mux)

	err := handlePatientsArchive(patientsArchiveCmd, []string{"9"})
	requireForbidden(t, err)
	assert.False(t, mutated)
}

// TestPatientsUpdate_AllowedWithViewPatients проверяет изменение пациента
// ролью с доступом к картотеке
func TestPatientsUpdate_AllowedWithViewPatients(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/dashboard-access", accessDescriptor(
		[]string{"view_dashboard_summary", "view_patients", "add_patients"}))
	mux.HandleFunc("/api/patients/9", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(client.Patient{PatientID: 9, Name: "Ivanov"})
	})
	setupTestApp(t, mux)

	require.NoError(t, patientsUpdateCmd.Flags().Set("name", "Ivanov"))
	t.Cleanup(func() {
		patientsUpdateCmd.Flags().Set("name", "")
	})

	require.NoError(t, handlePatientsUpdate(patientsUpdateCmd, []string{"9"}))
}

// TestInventoryUpdate_ShowListRefetches проверяет повторное чтение
// списка партий после корректировки остатка
func TestInventoryUpdate_ShowListRefetches(t *testing.T) {
	refetched := false

	mux := http.NewServeMux()
	mux.HandleFunc("/api/dashboard-access", accessDescriptor(
		[]string{"view_inventory", "update_inventory"}))
	mux.HandleFunc("/api/inventory/7", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(client.InventoryRow{BatchID: 7, QuantityAvailable: 25})
	})
	mux.HandleFunc("/api/inventory", func(w http.ResponseWriter, r *http.Request) {
		refetched = true
		json.NewEncoder(w).Encode([]client.InventoryRow{{BatchID: 7, QuantityAvailable: 25}})
	})
	setupTestApp(t, mux)

	require.NoError(t, inventoryUpdateCmd.Flags().Set("quantity", "25"))
	require.NoError(t, inventoryUpdateCmd.Flags().Set("show-list", "true"))
	t.Cleanup(func() {
		inventoryUpdateCmd.Flags().Set("quantity", "-1")
		inventoryUpdateCmd.Flags().Set("show-list", "false")
	})

	require.NoError(t, handleInventoryUpdate(inventoryUpdateCmd, []string{"7"}))
	assert.True(t, refetched, "список партий должен перечитываться после записи")
}

// TestInitApp_ConfiguresTracing проверяет, что инициализация консоли
// ставит настоящий провайдер трассировки вместо пустого глобального
func TestInitApp_ConfiguresTracing(t *testing.T) {
	t.Setenv("HEALTHORA_HOME", t.TempDir())

	require.NoError(t, initApp())

	_, ok := otel.GetTracerProvider().(*tracesdk.TracerProvider)
	assert.True(t, ok, "глобальный провайдер должен быть из SDK")
}
