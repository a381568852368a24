package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"HealthoraConsole/internal/output"
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Аналитические отчеты",
	Long:  `Команды для получения аналитических отчетов с бэкенда.`,
}

// reportsAICmd represents the reports ai command
var reportsAICmd = &cobra.Command{
	Use:   "ai",
	Short: "Показать аналитический отчет",
	Long:  `Запрашивает сгенерированный бэкендом аналитический отчет по складу.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleError(handleAIReport(cmd, args), cmd)
	},
}

func init() {
	reportsCmd.AddCommand(reportsAICmd)
	rootCmd.AddCommand(reportsCmd)
}

func handleAIReport(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	timer := appMetrics.NewCommandTimer("reports_ai")

	report, err := apiClient.AIReport(ctx)
	if err != nil {
		timer.Finish(false)
		return err
	}
	timer.Finish(true)

	formatter, format, err := getFormatter()
	if err != nil {
		return err
	}

	if format != output.FormatTable {
		rendered, err := formatter.Format(report)
		if err != nil {
			return err
		}
		fmt.Println(rendered)
		return nil
	}

	fmt.Println(report.Message)
	return nil
}
