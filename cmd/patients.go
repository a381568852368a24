package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"HealthoraConsole/internal/access"
	"HealthoraConsole/internal/client"
	"HealthoraConsole/internal/output"
	"HealthoraConsole/pkg/errors"
)

var patientsCmd = &cobra.Command{
	Use:   "patients",
	Short: "Управление пациентами",
	Long: `Команды для работы с картотекой пациентов: просмотр, регистрация,
изменение данных и архивирование.`,
}

var patientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Показать список пациентов",
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleError(handlePatientsList(cmd, args), cmd)
	},
}

var patientsCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Зарегистрировать пациента",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleError(handlePatientsCreate(cmd, args), cmd)
	},
}

var patientsUpdateCmd = &cobra.Command{
	Use:   "update [patient-id]",
	Short: "Изменить данные пациента",
	Long:  `Изменяет данные пациента. Передаются только заданные флаги.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleError(handlePatientsUpdate(cmd, args), cmd)
	},
}

var patientsArchiveCmd = &cobra.Command{
	Use:   "archive [patient-id]",
	Short: "Архивировать пациента",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleError(handlePatientsArchive(cmd, args), cmd)
	},
}

func init() {
	patientsCmd.AddCommand(patientsListCmd)
	patientsCmd.AddCommand(patientsCreateCmd)
	patientsCmd.AddCommand(patientsUpdateCmd)
	patientsCmd.AddCommand(patientsArchiveCmd)

	patientsCreateCmd.Flags().StringP("address", "a", "", "адрес")
	patientsCreateCmd.Flags().StringP("gender", "g", "", "пол")
	patientsCreateCmd.Flags().String("contact", "", "контактный телефон")
	patientsCreateCmd.Flags().String("dob", "", "дата рождения (YYYY-MM-DD)")

	patientsUpdateCmd.Flags().StringP("name", "n", "", "новое имя")
	patientsUpdateCmd.Flags().StringP("address", "a", "", "новый адрес")
	patientsUpdateCmd.Flags().StringP("gender", "g", "", "пол")
	patientsUpdateCmd.Flags().String("contact", "", "новый контактный телефон")
	patientsUpdateCmd.Flags().String("dob", "", "дата рождения (YYYY-MM-DD)")

	rootCmd.AddCommand(patientsCmd)
}

// parseDateFlag разбирает дату из строки флага
func parseDateFlag(raw string) (*client.Date, error) {
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, errors.New(errors.ErrValidation,
			fmt.Sprintf("некорректная дата %q, ожидается YYYY-MM-DD", raw))
	}
	date := client.Date{Time: parsed}
	return &date, nil
}

func handlePatientsList(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	patients, err := apiClient.ListPatients(ctx)
	if err != nil {
		return err
	}

	return printResult(patients, output.CreatePatientsTable(patients, useColors()))
}

func handlePatientsCreate(cmd *cobra.Command, args []string) error {
	payload := &client.PatientCreate{Name: args[0]}
	payload.Address, _ = cmd.Flags().GetString("address")
	payload.Gender, _ = cmd.Flags().GetString("gender")
	payload.Contact, _ = cmd.Flags().GetString("contact")

	if raw, _ := cmd.Flags().GetString("dob"); raw != "" {
		dob, err := parseDateFlag(raw)
		if err != nil {
			return err
		}
		payload.DOB = dob
	}

	ctx, cancel := commandContext()
	defer cancel()

	if err := requirePermission(ctx, access.PermAddPatients); err != nil {
		return err
	}

	patient, err := apiClient.CreatePatient(ctx, payload)
	if err != nil {
		return err
	}

	fmt.Printf("Пациент зарегистрирован: %s (id=%d)\n", patient.Name, patient.PatientID)
	return nil
}

func handlePatientsUpdate(cmd *cobra.Command, args []string) error {
	patientID, err := parseID(args[0], "пациента")
	if err != nil {
		return err
	}

	payload := &client.PatientUpdate{}
	if cmd.Flags().Changed("name") {
		name, _ := cmd.Flags().GetString("name")
		payload.Name = &name
	}
	if cmd.Flags().Changed("address") {
		address, _ := cmd.Flags().GetString("address")
		payload.Address = &address
	}
	if cmd.Flags().Changed("gender") {
		gender, _ := cmd.Flags().GetString("gender")
		payload.Gender = &gender
	}
	if cmd.Flags().Changed("contact") {
		contact, _ := cmd.Flags().GetString("contact")
		payload.Contact = &contact
	}
	if cmd.Flags().Changed("dob") {
		raw, _ := cmd.Flags().GetString("dob")
		dob, err := parseDateFlag(raw)
		if err != nil {
			return err
		}
		payload.DOB = dob
	}

	ctx, cancel := commandContext()
	defer cancel()

	if err := requirePermission(ctx, access.PermViewPatients); err != nil {
		return err
	}

	patient, err := apiClient.UpdatePatient(ctx, patientID, payload)
	if err != nil {
		return err
	}

	fmt.Printf("Данные пациента обновлены: %s\n", patient.Name)
	return nil
}

func handlePatientsArchive(cmd *cobra.Command, args []string) error {
	patientID, err := parseID(args[0], "пациента")
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	// Изменение и архивирование доступны тем же ролям, что и просмотр картотеки
	if err := requirePermission(ctx, access.PermViewPatients); err != nil {
		return err
	}

	patient, err := apiClient.ArchivePatient(ctx, patientID)
	if err != nil {
		return err
	}

	fmt.Printf("Пациент архивирован: %s\n", patient.Name)
	return nil
}
