package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestNewMetrics проверяет создание системы метрик
func TestNewMetrics(t *testing.T) {
	m := NewMetrics("healthora_test")
	if m == nil {
		t.Fatal("Expected metrics, got nil")
	}

	if m.Tracer == nil {
		t.Error("Expected tracer to be initialized")
	}

	// Повторное создание не должно паниковать на уже зарегистрированных метриках
	m2 := NewMetrics("healthora_test")
	if m2 == nil {
		t.Fatal("Expected metrics on second call, got nil")
	}
}

// TestCommandExecuted проверяет регистрацию выполнения команды
func TestCommandExecuted(t *testing.T) {
	m := NewMetrics("healthora_cmd_test")

	before := testutil.ToFloat64(m.CommandCount.WithLabelValues("inventory list", "success"))
	m.CommandExecuted("inventory list", true, 120*time.Millisecond)
	after := testutil.ToFloat64(m.CommandCount.WithLabelValues("inventory list", "success"))

	if after != before+1 {
		t.Errorf("Expected command counter to increase by 1, got %f -> %f", before, after)
	}
}

// TestAPIRequest_ErrorCounting проверяет учет ошибок API
func TestAPIRequest_ErrorCounting(t *testing.T) {
	m := NewMetrics("healthora_api_test")
	ctx := context.Background()

	m.APIRequest(ctx, "GET", "/api/inventory", 200, 30*time.Millisecond)
	m.APIRequest(ctx, "GET", "/api/inventory", 403, 25*time.Millisecond)
	m.APIRequest(ctx, "GET", "/api/inventory", 502, 40*time.Millisecond)

	clientErrors := testutil.ToFloat64(m.ErrorsCount.WithLabelValues("GET", "/api/inventory", "client_error"))
	if clientErrors != 1 {
		t.Errorf("Expected 1 client error, got %f", clientErrors)
	}

	serverErrors := testutil.ToFloat64(m.ErrorsCount.WithLabelValues("GET", "/api/inventory", "server_error"))
	if serverErrors != 1 {
		t.Errorf("Expected 1 server error, got %f", serverErrors)
	}
}

// TestCommandTimer проверяет таймер команды
func TestCommandTimer(t *testing.T) {
	m := NewMetrics("healthora_timer_test")

	timer := m.NewCommandTimer("dashboard")
	timer.Finish(false)

	errorCount := testutil.ToFloat64(m.CommandCount.WithLabelValues("dashboard", "error"))
	if errorCount != 1 {
		t.Errorf("Expected 1 failed command, got %f", errorCount)
	}
}

// TestStartSpan проверяет начало трассировки
func TestStartSpan(t *testing.T) {
	if err := InitializeOpenTelemetry("healthora_trace_test", "1.0.0"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	m := NewMetrics("healthora_trace_test")
	ctx, span := m.StartSpan(context.Background(), "GET", "/api/dashboard-summary")
	if ctx == nil {
		t.Fatal("Expected context, got nil")
	}
	if span == nil {
		t.Fatal("Expected span, got nil")
	}
	span.End()
}
