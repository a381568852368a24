package logger

import (
	"errors"
	"testing"
	"time"
)

// TestNewLogger_Levels проверяет создание логгера с разными уровнями
func TestNewLogger_Levels(t *testing.T) {
	levels := []string{"debug", "info", "warn", "error", "unknown"}
	for _, level := range levels {
		log, err := NewLogger("dev", level, "healthora-console")
		if err != nil {
			t.Fatalf("Expected no error for level %q, got %v", level, err)
		}
		if log == nil {
			t.Fatalf("Expected logger for level %q, got nil", level)
		}
	}
}

// TestNewLogger_ProdEncoder проверяет создание логгера в prod окружении
func TestNewLogger_ProdEncoder(t *testing.T) {
	log, err := NewLogger("prod", "info", "healthora-console")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Логгер должен работать без паники
	log.Info("test message", String("key", "value"))
	log.Warn("test warning", Int("count", 1))
}

// TestLoggerWith проверяет добавление полей к логгеру
func TestLoggerWith(t *testing.T) {
	log := NewNopLogger()
	child := log.With(String("module", "inventory"))
	if child == nil {
		t.Fatal("Expected child logger, got nil")
	}

	// Дочерний логгер должен быть независим от родителя
	if child == log {
		t.Error("Expected new logger instance from With")
	}
}

// TestFieldConstructors проверяет конструкторы полей
func TestFieldConstructors(t *testing.T) {
	fields := []Field{
		String("s", "value"),
		Int("i", 42),
		Int64("i64", 42),
		Float64("f", 4.2),
		Bool("b", true),
		Duration("d", time.Second),
		Any("a", map[string]int{"x": 1}),
	}
	if len(fields) != 7 {
		t.Errorf("Expected 7 fields, got %d", len(fields))
	}

	log := NewNopLogger()
	log.Info("all fields", fields...)
}

// TestErrorField проверяет поле с ошибкой
func TestErrorField(t *testing.T) {
	f := Error(errors.New("boom"))
	if f.Field.String != "boom" {
		t.Errorf("Expected field value \"boom\", got %s", f.Field.String)
	}

	// nil ошибка не должна вызывать панику
	f = Error(nil)
	if f.Field.String != "nil" {
		t.Errorf("Expected field value \"nil\", got %s", f.Field.String)
	}
}
