package client

import (
	"context"

	"HealthoraConsole/pkg/logger"
)

// ListPatients возвращает всех неархивных пациентов
func (c *Client) ListPatients(ctx context.Context) ([]Patient, error) {
	var patients []Patient
	if err := c.get(ctx, "/api/patients", &patients); err != nil {
		return nil, err
	}
	return patients, nil
}

// CreatePatient регистрирует нового пациента
func (c *Client) CreatePatient(ctx context.Context, payload *PatientCreate) (*Patient, error) {
	var patient Patient
	if err := c.post(ctx, "/api/patients", payload, &patient); err != nil {
		return nil, err
	}

	c.logger.Info("пациент зарегистрирован", logger.Int("patient_id", patient.PatientID))

	return &patient, nil
}

// UpdatePatient изменяет данные пациента
func (c *Client) UpdatePatient(ctx context.Context, patientID int, payload *PatientUpdate) (*Patient, error) {
	var patient Patient
	if err := c.put(ctx, joinPath("/api/patients", patientID, ""), payload, &patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

// ArchivePatient переводит пациента в архив
func (c *Client) ArchivePatient(ctx context.Context, patientID int) (*Patient, error) {
	var patient Patient
	if err := c.patch(ctx, joinPath("/api/patients", patientID, "archive"), nil, &patient); err != nil {
		return nil, err
	}

	c.logger.Info("пациент переведен в архив", logger.Int("patient_id", patientID))

	return &patient, nil
}

// AIReport возвращает отчет аналитического модуля
func (c *Client) AIReport(ctx context.Context) (*AIReport, error) {
	var report AIReport
	if err := c.get(ctx, "/api/ai-report", &report); err != nil {
		return nil, err
	}
	return &report, nil
}
