package client

import "context"

// DashboardSummary возвращает сводку для карточек дашборда
func (c *Client) DashboardSummary(ctx context.Context) (*DashboardSummary, error) {
	var summary DashboardSummary
	if err := c.get(ctx, "/api/dashboard-summary", &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// DashboardExpiry возвращает список партий с риском истечения срока.
// Бэкенд сортирует по оставшимся дням и отдает не более десяти строк.
func (c *Client) DashboardExpiry(ctx context.Context) ([]ExpiryRow, error) {
	var rows []ExpiryRow
	if err := c.get(ctx, "/api/dashboard-expiry", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// DashboardNotifications возвращает уведомления для текущей роли
func (c *Client) DashboardNotifications(ctx context.Context) ([]string, error) {
	var notifications []string
	if err := c.get(ctx, "/api/dashboard-notifications", &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// DashboardAccess возвращает дескриптор доступа: модули и разрешения роли
func (c *Client) DashboardAccess(ctx context.Context) (*DashboardAccess, error) {
	var access DashboardAccess
	if err := c.get(ctx, "/api/dashboard-access", &access); err != nil {
		return nil, err
	}
	return &access, nil
}
