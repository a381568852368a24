package output

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"
)

// FormatType представляет тип форматирования вывода
type FormatType string

const (
	FormatTable FormatType = "table"
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
)

// Formatter интерфейс для форматирования вывода
type Formatter interface {
	Format(data interface{}) (string, error)
}

// TableFormatter форматирует данные в виде таблицы
type TableFormatter struct{}

func NewTableFormatter() *TableFormatter {
	return &TableFormatter{}
}

func (f *TableFormatter) Format(data interface{}) (string, error) {
	switch v := data.(type) {
	case *TableData:
		return v.String(), nil
	case *PrettyTable:
		return v.String(), nil
	default:
		return fmt.Sprintf("%v", v), nil
	}
}

// JSONFormatter форматирует данные в JSON
type JSONFormatter struct {
	Pretty bool
}

func NewJSONFormatter(pretty bool) *JSONFormatter {
	return &JSONFormatter{Pretty: pretty}
}

func (f *JSONFormatter) Format(data interface{}) (string, error) {
	var output []byte
	var err error

	if f.Pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}

	return string(output), nil
}

// YAMLFormatter форматирует данные в YAML
type YAMLFormatter struct{}

func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

func (f *YAMLFormatter) Format(data interface{}) (string, error) {
	output, err := yaml.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}

	return string(output), nil
}

// GetFormatter возвращает подходящий форматировщик
func GetFormatter(format FormatType, pretty bool) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(pretty)
	case FormatYAML:
		return NewYAMLFormatter()
	case FormatTable:
		fallthrough
	default:
		return NewTableFormatter()
	}
}

// ParseFormat разбирает формат из строки флага или переменной окружения
func ParseFormat(raw string) (FormatType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "table":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "yaml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("неизвестный формат вывода: %s", raw)
	}
}

// DetectFormat определяет формат из переменной окружения
func DetectFormat() FormatType {
	if format := os.Getenv("HEALTHORA_FORMAT"); format != "" {
		if parsed, err := ParseFormat(format); err == nil {
			return parsed
		}
	}
	return FormatTable
}

// DetectColors определяет нужно ли использовать цвета
func DetectColors() bool {
	if colors := os.Getenv("HEALTHORA_COLORS"); colors != "" {
		return strings.ToLower(colors) == "true"
	}

	return isTerminal()
}

// isTerminal проверяет, что вывод идет в терминал
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}

	return (fi.Mode() & os.ModeCharDevice) != 0
}
