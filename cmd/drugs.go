package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"HealthoraConsole/internal/access"
	"HealthoraConsole/internal/client"
	"HealthoraConsole/internal/output"
)

var drugsCmd = &cobra.Command{
	Use:   "drugs",
	Short: "Управление справочником препаратов",
	Long: `Команды для работы со справочником препаратов: просмотр,
добавление, изменение и отключение позиций.`,
}

var drugsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Показать справочник препаратов",
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleError(handleDrugsList(cmd, args), cmd)
	},
}

var drugsCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Добавить препарат",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleError(handleDrugsCreate(cmd, args), cmd)
	},
}

var drugsUpdateCmd = &cobra.Command{
	Use:   "update [drug-id]",
	Short: "Изменить препарат",
	Long:  `Изменяет препарат справочника. Передаются только заданные флаги.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleError(handleDrugsUpdate(cmd, args), cmd)
	},
}

var drugsDisableCmd = &cobra.Command{
	Use:   "disable [drug-id]",
	Short: "Отключить препарат",
	Long:  `Отключает позицию справочника без удаления истории партий.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleError(handleDrugsDisable(cmd, args), cmd)
	},
}

func init() {
	drugsCmd.AddCommand(drugsListCmd)
	drugsCmd.AddCommand(drugsCreateCmd)
	drugsCmd.AddCommand(drugsUpdateCmd)
	drugsCmd.AddCommand(drugsDisableCmd)

	drugsCreateCmd.Flags().StringP("generic", "g", "", "международное название")
	drugsCreateCmd.Flags().StringP("formulation", "f", "", "лекарственная форма")
	drugsCreateCmd.Flags().String("strength", "", "дозировка")
	drugsCreateCmd.Flags().String("schedule", "", "тип рецептурного отпуска")
	drugsCreateCmd.Flags().IntP("threshold", "t", 50, "порог низкого остатка")

	drugsUpdateCmd.Flags().StringP("name", "n", "", "новое название")
	drugsUpdateCmd.Flags().StringP("generic", "g", "", "международное название")
	drugsUpdateCmd.Flags().StringP("formulation", "f", "", "лекарственная форма")
	drugsUpdateCmd.Flags().String("strength", "", "дозировка")
	drugsUpdateCmd.Flags().String("schedule", "", "тип рецептурного отпуска")
	drugsUpdateCmd.Flags().IntP("threshold", "t", 0, "порог низкого остатка")

	rootCmd.AddCommand(drugsCmd)
}

func handleDrugsList(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	drugs, err := apiClient.ListDrugs(ctx)
	if err != nil {
		return err
	}

	return printResult(drugs, output.CreateDrugsTable(drugs, useColors()))
}

func handleDrugsCreate(cmd *cobra.Command, args []string) error {
	payload := &client.DrugCreate{DrugName: args[0]}
	payload.GenericName, _ = cmd.Flags().GetString("generic")
	payload.Formulation, _ = cmd.Flags().GetString("formulation")
	payload.Strength, _ = cmd.Flags().GetString("strength")
	payload.ScheduleType, _ = cmd.Flags().GetString("schedule")
	payload.LowStockThreshold, _ = cmd.Flags().GetInt("threshold")

	ctx, cancel := commandContext()
	defer cancel()

	if err := requirePermission(ctx, access.PermAddDrug); err != nil {
		return err
	}

	drug, err := apiClient.CreateDrug(ctx, payload)
	if err != nil {
		return err
	}

	fmt.Printf("Препарат добавлен: %s (id=%d)\n", drug.DrugName, drug.DrugID)
	return nil
}

func handleDrugsUpdate(cmd *cobra.Command, args []string) error {
	drugID, err := parseID(args[0], "препарата")
	if err != nil {
		return err
	}

	payload := &client.DrugUpdate{}
	if cmd.Flags().Changed("name") {
		name, _ := cmd.Flags().GetString("name")
		payload.DrugName = &name
	}
	if cmd.Flags().Changed("generic") {
		generic, _ := cmd.Flags().GetString("generic")
		payload.GenericName = &generic
	}
	if cmd.Flags().Changed("formulation") {
		formulation, _ := cmd.Flags().GetString("formulation")
		payload.Formulation = &formulation
	}
	if cmd.Flags().Changed("strength") {
		strength, _ := cmd.Flags().GetString("strength")
		payload.Strength = &strength
	}
	if cmd.Flags().Changed("schedule") {
		schedule, _ := cmd.Flags().GetString("schedule")
		payload.ScheduleType = &schedule
	}
	if cmd.Flags().Changed("threshold") {
		threshold, _ := cmd.Flags().GetInt("threshold")
		payload.LowStockThreshold = &threshold
	}

	ctx, cancel := commandContext()
	defer cancel()

	if err := requirePermission(ctx, access.PermAddDrug); err != nil {
		return err
	}

	drug, err := apiClient.UpdateDrug(ctx, drugID, payload)
	if err != nil {
		return err
	}

	fmt.Printf("Препарат обновлен: %s\n", drug.DrugName)
	return nil
}

func handleDrugsDisable(cmd *cobra.Command, args []string) error {
	drugID, err := parseID(args[0], "препарата")
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	if err := requirePermission(ctx, access.PermAddDrug); err != nil {
		return err
	}

	drug, err := apiClient.DisableDrug(ctx, drugID)
	if err != nil {
		return err
	}

	fmt.Printf("Препарат отключен: %s\n", drug.DrugName)
	return nil
}
