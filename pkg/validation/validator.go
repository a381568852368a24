package validation

import (
	"fmt"
	"net/url"
	"strings"
)

// Validator предоставляет общие функции валидации
type Validator struct{}

// NewValidator создает новый Validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateRequiredFields проверяет обязательные поля запроса
func (v *Validator) ValidateRequiredFields(req map[string]interface{}, requiredFields map[string]string) error {
	for field, fieldName := range requiredFields {
		value, exists := req[field]
		if !exists || value == nil || value == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
	}
	return nil
}

// ValidateURL проверяет корректность URL
func (v *Validator) ValidateURL(target string, allowedSchemes []string) error {
	if target == "" {
		return fmt.Errorf("target is required")
	}

	parsedURL, err := url.Parse(target)
	if err != nil {
		return fmt.Errorf("invalid URL format: %w", err)
	}

	// Проверяем схему
	if len(allowedSchemes) > 0 {
		schemeValid := false
		for _, scheme := range allowedSchemes {
			if parsedURL.Scheme == scheme {
				schemeValid = true
				break
			}
		}
		if !schemeValid {
			return fmt.Errorf("URL must use one of allowed schemes %v, got: %s", allowedSchemes, parsedURL.Scheme)
		}
	}

	// Проверяем хост
	if parsedURL.Host == "" {
		return fmt.Errorf("URL must have a valid host")
	}

	if strings.ContainsAny(target, " \t\n\r") {
		return fmt.Errorf("URL contains invalid whitespace characters")
	}

	return nil
}

// ValidateUsername проверяет имя пользователя для входа
func (v *Validator) ValidateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("username is required")
	}
	if strings.ContainsAny(username, " \t\n\r") {
		return fmt.Errorf("username must not contain whitespace")
	}
	return nil
}

// ValidatePositiveInt проверяет, что значение положительное
func (v *Validator) ValidatePositiveInt(name string, value int) error {
	if value <= 0 {
		return fmt.Errorf("%s must be a positive number", name)
	}
	return nil
}
