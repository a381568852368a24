package client

import (
	"context"

	"HealthoraConsole/pkg/logger"
)

// ListInventory возвращает все партии на складе
func (c *Client) ListInventory(ctx context.Context) ([]InventoryRow, error) {
	var rows []InventoryRow
	if err := c.get(ctx, "/api/inventory", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateInventory изменяет остаток партии
func (c *Client) UpdateInventory(ctx context.Context, batchID, quantity int) (*InventoryRow, error) {
	var row InventoryRow
	payload := &InventoryUpdate{QuantityAvailable: quantity}
	if err := c.put(ctx, joinPath("/api/inventory", batchID, ""), payload, &row); err != nil {
		return nil, err
	}

	c.logger.Info("остаток партии обновлен",
		logger.Int("batch_id", batchID),
		logger.Int("quantity", quantity))

	return &row, nil
}

// CreateBatch создает новую партию препарата
func (c *Client) CreateBatch(ctx context.Context, payload *BatchCreate) (*InventoryRow, error) {
	var row InventoryRow
	if err := c.post(ctx, "/api/drug-batches", payload, &row); err != nil {
		return nil, err
	}

	c.logger.Info("партия создана",
		logger.String("batch_no", row.BatchNo),
		logger.Int("batch_id", row.BatchID))

	return &row, nil
}

// MarkBatchExpired помечает партию как просроченную
func (c *Client) MarkBatchExpired(ctx context.Context, batchID int) (*InventoryRow, error) {
	var row InventoryRow
	if err := c.patch(ctx, joinPath("/api/drug-batches", batchID, "mark-expired"), nil, &row); err != nil {
		return nil, err
	}

	c.logger.Info("партия помечена как просроченная", logger.Int("batch_id", batchID))

	return &row, nil
}
