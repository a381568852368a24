package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestLoadConfig_DefaultValues проверяет загрузку значений по умолчанию
func TestLoadConfig_DefaultValues(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Check default values
	if config.API.BaseURL != "http://localhost:8000" {
		t.Errorf("Expected API base_url to be \"http://localhost:8000\", got %s", config.API.BaseURL)
	}
	if config.API.Timeout != 30 {
		t.Errorf("Expected API timeout to be 30, got %d", config.API.Timeout)
	}
	if config.Logger.Level != "info" {
		t.Errorf("Expected logger level to be \"info\", got %s", config.Logger.Level)
	}
	if config.Session.Backend != "file" {
		t.Errorf("Expected session backend to be \"file\", got %s", config.Session.Backend)
	}
	if config.Output.Format != "table" {
		t.Errorf("Expected output format to be \"table\", got %s", config.Output.Format)
	}
	if !config.Output.Colors {
		t.Error("Expected output colors to be enabled by default")
	}
}

// TestLoadConfig_FileOverride проверяет переопределение значений из файла
func TestLoadConfig_FileOverride(t *testing.T) {
	tempFile := filepath.Join(t.TempDir(), "config.yaml")
	configContent := `api:
  base_url: "https://healthora.example.com"
  timeout: 10
logger:
  level: "debug"
  environment: "prod"
session:
  backend: "redis"
redis:
  addr: "redis:6379"
  db: 2
output:
  format: "json"
  colors: false
`

	err := os.WriteFile(tempFile, []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}

	config, err := LoadConfig(tempFile)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if config.API.BaseURL != "https://healthora.example.com" {
		t.Errorf("Expected overridden base_url, got %s", config.API.BaseURL)
	}
	if config.API.Timeout != 10 {
		t.Errorf("Expected timeout 10, got %d", config.API.Timeout)
	}
	if config.Session.Backend != "redis" {
		t.Errorf("Expected session backend \"redis\", got %s", config.Session.Backend)
	}
	if config.Redis.Addr != "redis:6379" {
		t.Errorf("Expected redis addr \"redis:6379\", got %s", config.Redis.Addr)
	}
	if config.Output.Format != "json" {
		t.Errorf("Expected output format \"json\", got %s", config.Output.Format)
	}
}

// TestSaveAndReload проверяет сохранение и повторную загрузку конфигурации
func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	config := DefaultConfig()
	config.Path = path
	config.SetAPISettings("http://healthora.local:8000", 15)
	config.SetOutputSettings("yaml", false)

	if err := config.Save(); err != nil {
		t.Fatalf("Expected no error on save, got %v", err)
	}

	reloaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Expected no error on reload, got %v", err)
	}

	if reloaded.API.BaseURL != "http://healthora.local:8000" {
		t.Errorf("Expected saved base_url, got %s", reloaded.API.BaseURL)
	}
	if reloaded.API.Timeout != 15 {
		t.Errorf("Expected saved timeout 15, got %d", reloaded.API.Timeout)
	}
	if reloaded.Output.Format != "yaml" {
		t.Errorf("Expected saved output format \"yaml\", got %s", reloaded.Output.Format)
	}
}

// TestValidate проверяет валидацию конфигурации
func TestValidate(t *testing.T) {
	config := DefaultConfig()
	if err := config.Validate(); err != nil {
		t.Errorf("Expected default config to be valid, got %v", err)
	}

	config = DefaultConfig()
	config.API.BaseURL = ""
	if err := config.Validate(); err == nil {
		t.Error("Expected error for empty base_url")
	}

	config = DefaultConfig()
	config.API.BaseURL = "not a url"
	if err := config.Validate(); err == nil {
		t.Error("Expected error for malformed base_url")
	}

	config = DefaultConfig()
	config.API.Timeout = 0
	if err := config.Validate(); err == nil {
		t.Error("Expected error for non-positive timeout")
	}

	config = DefaultConfig()
	config.Output.Format = "xml"
	if err := config.Validate(); err == nil {
		t.Error("Expected error for unsupported output format")
	}

	config = DefaultConfig()
	config.Session.Backend = "memcached"
	if err := config.Validate(); err == nil {
		t.Error("Expected error for unsupported session backend")
	}
}
