package client

import (
	"context"

	"HealthoraConsole/pkg/logger"
)

// ListDrugs возвращает справочник препаратов
func (c *Client) ListDrugs(ctx context.Context) ([]Drug, error) {
	var drugs []Drug
	if err := c.get(ctx, "/api/drugs", &drugs); err != nil {
		return nil, err
	}
	return drugs, nil
}

// CreateDrug создает препарат в справочнике
func (c *Client) CreateDrug(ctx context.Context, payload *DrugCreate) (*Drug, error) {
	var drug Drug
	if err := c.post(ctx, "/api/drugs", payload, &drug); err != nil {
		return nil, err
	}

	c.logger.Info("препарат создан",
		logger.String("drug_name", drug.DrugName),
		logger.Int("drug_id", drug.DrugID))

	return &drug, nil
}

// UpdateDrug изменяет препарат
func (c *Client) UpdateDrug(ctx context.Context, drugID int, payload *DrugUpdate) (*Drug, error) {
	var drug Drug
	if err := c.put(ctx, joinPath("/api/drugs", drugID, ""), payload, &drug); err != nil {
		return nil, err
	}
	return &drug, nil
}

// DisableDrug выводит препарат из оборота
func (c *Client) DisableDrug(ctx context.Context, drugID int) (*Drug, error) {
	var drug Drug
	if err := c.patch(ctx, joinPath("/api/drugs", drugID, "disable"), nil, &drug); err != nil {
		return nil, err
	}

	c.logger.Info("препарат выведен из оборота", logger.Int("drug_id", drugID))

	return &drug, nil
}
