package errors

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Error представляет кастомную ошибку с дополнительной информацией
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
	Cause   error     `json:"-"`
}

// ErrorCode представляет код ошибки
type ErrorCode string

// Определение кодов ошибок
const (
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrValidation   ErrorCode = "VALIDATION_ERROR"
	ErrUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrForbidden    ErrorCode = "FORBIDDEN"
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
	ErrConflict     ErrorCode = "CONFLICT"
	ErrUnavailable  ErrorCode = "UNAVAILABLE"
)

// Сообщение по умолчанию, когда сервер не прислал поле detail
const GenericRequestFailed = "Request failed"

// Error возвращает сообщение об ошибке
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap возвращает причину ошибки
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is проверяет, является ли ошибка указанного типа
func (e *Error) Is(target error) bool {
	if targetError, ok := target.(*Error); ok {
		return e.Code == targetError.Code
	}
	return false
}

// New создает новую кастомную ошибку
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap оборачивает существующую ошибку в кастомную
func Wrap(err error, code ErrorCode, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// WithDetails добавляет детали к ошибке
func (e *Error) WithDetails(details string) *Error {
	if e == nil {
		return nil
	}
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// detailBody описывает тело ошибки бэкенда HEALTHORA
type detailBody struct {
	Detail string `json:"detail"`
}

// FromHTTPResponse преобразует неуспешный HTTP ответ в кастомную ошибку.
// Бэкенд присылает JSON с полем detail; если тело не разбирается или поле
// отсутствует, используется общее сообщение.
func FromHTTPResponse(resp *http.Response) *Error {
	if resp == nil {
		return New(ErrInternal, GenericRequestFailed)
	}

	message := GenericRequestFailed
	if body, err := io.ReadAll(resp.Body); err == nil {
		var parsed detailBody
		if jsonErr := json.Unmarshal(body, &parsed); jsonErr == nil && parsed.Detail != "" {
			message = parsed.Detail
		}
	}

	return New(CodeFromHTTPStatus(resp.StatusCode), message)
}

// CodeFromHTTPStatus преобразует HTTP статус в код ошибки
func CodeFromHTTPStatus(status int) ErrorCode {
	switch status {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest:
		return ErrValidation
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusConflict:
		return ErrConflict
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return ErrUnavailable
	default:
		return ErrInternal
	}
}

// HTTPStatus возвращает соответствующий HTTP статус для ошибки
func (e *Error) HTTPStatus() int {
	if e == nil {
		return http.StatusOK
	}

	switch e.Code {
	case ErrNotFound:
		return http.StatusNotFound
	case ErrValidation:
		return http.StatusBadRequest
	case ErrUnauthorized:
		return http.StatusUnauthorized
	case ErrForbidden:
		return http.StatusForbidden
	case ErrConflict:
		return http.StatusConflict
	case ErrUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// GetUserMessage возвращает пользовательское сообщение об ошибке
func (e *Error) GetUserMessage() string {
	if e == nil {
		return ""
	}

	// Сообщение сервера показываем как есть
	if e.Message != "" && e.Message != GenericRequestFailed {
		return e.Message
	}

	switch e.Code {
	case ErrNotFound:
		return "Ресурс не найден"
	case ErrValidation:
		return "Ошибка валидации данных"
	case ErrUnauthorized:
		return "Не авторизован"
	case ErrForbidden:
		return "Доступ запрещен"
	case ErrConflict:
		return "Конфликт данных (например, дубликат)"
	case ErrUnavailable:
		return "Сервер временно недоступен"
	default:
		return "Произошла ошибка"
	}
}

// IsAuthError проверяет, связана ли ошибка с аутентификацией
func IsAuthError(err error) bool {
	if customErr, ok := err.(*Error); ok {
		return customErr.Code == ErrUnauthorized || customErr.Code == ErrForbidden
	}
	return false
}
