package client

import (
	"context"
	"fmt"

	"HealthoraConsole/pkg/logger"
)

// Login выполняет вход пользователя
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	c.logger.Info("попытка входа пользователя", logger.String("username", username))

	var resp LoginResponse
	err := c.post(ctx, "/api/login", &LoginRequest{Username: username, Password: password}, &resp)
	if err != nil {
		return nil, err
	}

	c.logger.Info("пользователь успешно вошел",
		logger.String("username", username),
		logger.String("role", resp.Role))

	return &resp, nil
}

// Me возвращает профиль текущего пользователя
func (c *Client) Me(ctx context.Context) (*UserProfile, error) {
	var profile UserProfile
	if err := c.get(ctx, "/api/me", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// joinPath собирает путь эндпоинта с числовым идентификатором
func joinPath(base string, id int, suffix string) string {
	if suffix == "" {
		return fmt.Sprintf("%s/%d", base, id)
	}
	return fmt.Sprintf("%s/%d/%s", base, id, suffix)
}
