package client

import (
	"context"

	"HealthoraConsole/pkg/logger"
)

// ListUsers возвращает все учетные записи
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.get(ctx, "/api/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser создает новую учетную запись
func (c *Client) CreateUser(ctx context.Context, payload *UserCreate) (*User, error) {
	var user User
	if err := c.post(ctx, "/api/users", payload, &user); err != nil {
		return nil, err
	}

	c.logger.Info("учетная запись создана",
		logger.String("username", user.Username),
		logger.Int("user_id", user.UserID))

	return &user, nil
}

// UpdateUser изменяет учетную запись
func (c *Client) UpdateUser(ctx context.Context, userID int, payload *UserUpdate) (*User, error) {
	var user User
	if err := c.put(ctx, joinPath("/api/users", userID, ""), payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeactivateUser блокирует учетную запись
func (c *Client) DeactivateUser(ctx context.Context, userID int) (*User, error) {
	var user User
	if err := c.patch(ctx, joinPath("/api/users", userID, "deactivate"), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ResetUserPassword сбрасывает пароль учетной записи
func (c *Client) ResetUserPassword(ctx context.Context, userID int, password string) (*User, error) {
	body := map[string]string{"password": password}

	var user User
	if err := c.patch(ctx, joinPath("/api/users", userID, "reset-password"), body, &user); err != nil {
		return nil, err
	}

	c.logger.Info("пароль учетной записи сброшен", logger.Int("user_id", userID))

	return &user, nil
}

// DeleteUser удаляет учетную запись
func (c *Client) DeleteUser(ctx context.Context, userID int) error {
	if err := c.delete(ctx, joinPath("/api/users", userID, ""), nil); err != nil {
		return err
	}

	c.logger.Info("учетная запись удалена", logger.Int("user_id", userID))

	return nil
}

// ListRoles возвращает справочник ролей
func (c *Client) ListRoles(ctx context.Context) ([]Role, error) {
	var roles []Role
	if err := c.get(ctx, "/api/roles", &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// ListDepartments возвращает справочник отделений
func (c *Client) ListDepartments(ctx context.Context) ([]string, error) {
	var departments []string
	if err := c.get(ctx, "/api/departments", &departments); err != nil {
		return nil, err
	}
	return departments, nil
}
