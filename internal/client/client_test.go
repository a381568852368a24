package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"HealthoraConsole/pkg/errors"
	"HealthoraConsole/pkg/logger"
	"HealthoraConsole/pkg/metrics"
)

// staticTokens простая реализация TokenSource для тестов
type staticTokens struct {
	token string
}

func (s *staticTokens) AccessToken() string {
	return s.token
}

// newTestClient создает клиент, направленный на тестовый сервер
func newTestClient(serverURL, token string) *Client {
	return NewClient(
		serverURL,
		5*time.Second,
		&staticTokens{token: token},
		logger.NewNopLogger(),
		metrics.NewMetrics("healthora_client_test"),
	)
}

// TestClient_BearerHeader проверяет передачу токена в заголовке Authorization
func TestClient_BearerHeader(t *testing.T) {
	var gotAuth, gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		json.NewEncoder(w).Encode(&UserProfile{Username: "admin", Role: "system_admin"})
	}))
	defer server.Close()

	c := newTestClient(server.URL, "secret-token")
	profile, err := c.Me(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "admin", profile.Username)
}

// TestClient_AnonymousRequest проверяет запрос без токена
func TestClient_AnonymousRequest(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(&LoginResponse{Token: "t", Role: "system_admin", DisplayName: "System Admin"})
	}))
	defer server.Close()

	c := newTestClient(server.URL, "")
	resp, err := c.Login(context.Background(), "admin", "admin123")

	require.NoError(t, err)
	assert.Empty(t, gotAuth)
	assert.Equal(t, "t", resp.Token)
}

// TestClient_ErrorDetailPropagation проверяет, что сообщение сервера
// из поля detail доходит до вызывающего без изменений
func TestClient_ErrorDetailPropagation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"detail":"forbidden"}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, "token")
	_, err := c.ListInventory(context.Background())

	require.Error(t, err)
	assert.Equal(t, "forbidden", err.Error())

	apiErr, ok := err.(*errors.Error)
	require.True(t, ok)
	assert.Equal(t, errors.ErrForbidden, apiErr.Code)
}

// TestClient_UnparseableErrorBody проверяет общее сообщение при кривом теле ошибки
func TestClient_UnparseableErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("not json at all"))
	}))
	defer server.Close()

	c := newTestClient(server.URL, "token")
	_, err := c.DashboardSummary(context.Background())

	require.Error(t, err)
	assert.Equal(t, errors.GenericRequestFailed, err.Error())
}

// TestClient_TransportFailure проверяет обработку сетевой ошибки
func TestClient_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // сервер уже закрыт - соединение не установится

	c := newTestClient(server.URL, "token")
	_, err := c.DashboardSummary(context.Background())

	require.Error(t, err)
	apiErr, ok := err.(*errors.Error)
	require.True(t, ok)
	assert.Equal(t, errors.ErrUnavailable, apiErr.Code)
}

// TestClient_MutationBody проверяет тело и метод мутирующего запроса
func TestClient_MutationBody(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody InventoryUpdate
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(&InventoryRow{BatchID: 7, QuantityAvailable: 120})
	}))
	defer server.Close()

	c := newTestClient(server.URL, "token")
	row, err := c.UpdateInventory(context.Background(), 7, 120)

	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/api/inventory/7", gotPath)
	assert.Equal(t, 120, gotBody.QuantityAvailable)
	assert.Equal(t, 7, row.BatchID)
}

// TestClient_ExpiryDateParsing проверяет разбор дат бэкенда
func TestClient_ExpiryDateParsing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"batch_id":1,"drug_name":"Amoxicillin","batch_no":"B123","expiry_date":"2026-10-15","days_left":45,"quantity_available":40}]`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, "token")
	rows, err := c.DashboardExpiry(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2026-10-15", rows[0].ExpiryDate.String())
	assert.Equal(t, 45, rows[0].DaysLeft)
}

// TestClient_DeleteUser проверяет запрос удаления без тела ответа
func TestClient_DeleteUser(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Write([]byte(`{"message":"User deleted"}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, "token")
	err := c.DeleteUser(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/api/users/3", gotPath)
}
