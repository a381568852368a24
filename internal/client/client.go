package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"HealthoraConsole/pkg/errors"
	"HealthoraConsole/pkg/logger"
	"HealthoraConsole/pkg/metrics"
)

// TokenSource выдает токен доступа для заголовка Authorization.
// Реализуется хранилищем сессии; пустая строка означает анонимный запрос.
type TokenSource interface {
	AccessToken() string
}

// Client представляет HTTP клиент для бэкенда HEALTHORA
type Client struct {
	baseURL string
	client  *http.Client
	logger  logger.Logger
	metrics *metrics.Metrics
	tokens  TokenSource
}

// NewClient создает новый HTTP клиент для бэкенда HEALTHORA
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, log logger.Logger, m *metrics.Metrics) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
		logger:  log,
		metrics: m,
		tokens:  tokens,
	}
}

// BaseURL возвращает базовый URL клиента
func (c *Client) BaseURL() string {
	return c.baseURL
}

// doRequest выполняет один запрос к бэкенду: кодирует тело, добавляет
// заголовки, разбирает ответ. Повторных попыток нет - одна попытка на вызов.
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			c.logger.Error("ошибка кодирования тела запроса", logger.Error(err))
			return errors.Wrap(err, errors.ErrInternal, "ошибка кодирования запроса")
		}
		reqBody = bytes.NewBuffer(jsonBody)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	url := fmt.Sprintf("%s%s", c.baseURL, path)
	httpReq, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		c.logger.Error("ошибка создания HTTP запроса", logger.Error(err))
		return errors.Wrap(err, errors.ErrInternal, "ошибка создания запроса")
	}

	httpReq.Header.Set("Content-Type", "application/json")

	// Добавляем токен, если пользователь аутентифицирован
	if c.tokens != nil {
		if token := c.tokens.AccessToken(); token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	ctx, span := c.metrics.StartSpan(ctx, method, path)
	defer span.End()

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	duration := time.Since(start)

	if err != nil {
		c.logger.Error("ошибка выполнения HTTP запроса",
			logger.String("method", method),
			logger.String("path", path),
			logger.Error(err))
		c.metrics.APIRequest(ctx, method, path, 0, duration)
		return errors.Wrap(err, errors.ErrUnavailable, errors.GenericRequestFailed)
	}
	defer resp.Body.Close()

	c.metrics.APIRequest(ctx, method, path, resp.StatusCode, duration)

	// Проверяем статус ответа
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := errors.FromHTTPResponse(resp)
		c.logger.Warn("бэкенд вернул ошибку",
			logger.String("method", method),
			logger.String("path", path),
			logger.Int("status", resp.StatusCode),
			logger.String("message", apiErr.Message))
		return apiErr
	}

	if out == nil {
		return nil
	}

	// Парсим ответ
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error("ошибка декодирования ответа",
			logger.String("path", path),
			logger.Error(err))
		return errors.Wrap(err, errors.ErrInternal, "ошибка декодирования ответа")
	}

	return nil
}

// get выполняет GET запрос
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}

// post выполняет POST запрос с JSON телом
func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}

// put выполняет PUT запрос с JSON телом
func (c *Client) put(ctx context.Context, path string, body, out interface{}) error {
	return c.doRequest(ctx, http.MethodPut, path, body, out)
}

// patch выполняет PATCH запрос
func (c *Client) patch(ctx context.Context, path string, body, out interface{}) error {
	return c.doRequest(ctx, http.MethodPatch, path, body, out)
}

// delete выполняет DELETE запрос
func (c *Client) delete(ctx context.Context, path string, out interface{}) error {
	return c.doRequest(ctx, http.MethodDelete, path, nil, out)
}
