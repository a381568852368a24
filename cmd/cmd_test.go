package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"HealthoraConsole/internal/dashboard"
)

// TestParseID проверяет разбор идентификаторов из аргументов
func TestParseID(t *testing.T) {
	id, err := parseID("42", "партии")
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	_, err = parseID("abc", "партии")
	assert.Error(t, err)

	_, err = parseID("0", "партии")
	assert.Error(t, err)

	_, err = parseID("-5", "партии")
	assert.Error(t, err)
}

// TestParseRiskFlag проверяет разбор корзины риска
func TestParseRiskFlag(t *testing.T) {
	risk, err := parseRiskFlag("high")
	require.NoError(t, err)
	assert.Equal(t, dashboard.RiskHigh, risk)

	risk, err = parseRiskFlag("")
	require.NoError(t, err)
	assert.Empty(t, risk)

	_, err = parseRiskFlag("critical")
	assert.Error(t, err)
}

// TestParseDateFlag проверяет разбор даты из флага
func TestParseDateFlag(t *testing.T) {
	date, err := parseDateFlag("2026-09-15")
	require.NoError(t, err)
	assert.Equal(t, "2026-09-15", date.String())

	_, err = parseDateFlag("15.09.2026")
	assert.Error(t, err)
}

// TestRootCommandTree проверяет, что все разделы консоли зарегистрированы
func TestRootCommandTree(t *testing.T) {
	expected := []string{"auth", "dashboard", "users", "patients", "drugs", "inventory", "reports", "config", "completion"}

	registered := make(map[string]bool)
	for _, sub := range rootCmd.Commands() {
		registered[sub.Name()] = true
	}

	for _, name := range expected {
		assert.True(t, registered[name], "команда %s не зарегистрирована", name)
	}
}
