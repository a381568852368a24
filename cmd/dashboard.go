package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"HealthoraConsole/internal/dashboard"
	"HealthoraConsole/internal/output"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Сводки и риски дашборда",
	Long: `Команды дашборда: сводные карточки, партии с риском истечения
срока годности и уведомления текущей роли.`,
}

// dashboardShowCmd represents the dashboard show command
var dashboardShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Показать сводку дашборда",
	Long: `Загружает все данные дашборда параллельно и показывает сводные
карточки, уведомления и доступные роли модули.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleError(handleDashboardShow(cmd, args), cmd)
	},
}

// dashboardExpiryCmd represents the dashboard expiry command
var dashboardExpiryCmd = &cobra.Command{
	Use:   "expiry",
	Short: "Показать риски истечения срока годности",
	Long: `Показывает партии, срок годности которых истекает в пределах
выбранного порога дней. Каждой строке присваивается корзина риска.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleError(handleDashboardExpiry(cmd, args), cmd)
	},
}

func init() {
	dashboardCmd.AddCommand(dashboardShowCmd)
	dashboardCmd.AddCommand(dashboardExpiryCmd)

	dashboardExpiryCmd.Flags().IntP("threshold", "t", 30, "порог оставшихся дней (30, 60 или 90)")

	rootCmd.AddCommand(dashboardCmd)
}

func handleDashboardShow(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	timer := appMetrics.NewCommandTimer("dashboard_show")

	agg := dashboard.NewAggregator(apiClient, appLogger)
	snapshot, err := agg.Load(ctx)
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
		rendered, err := formatter.Format(snapshot.Summary)
		if err != nil {
			return err
		}
		fmt.Println(rendered)
		return nil
	}

	fmt.Printf("HEALTHORA: %s (%s)\n\n", snapshot.Access.DisplayName, snapshot.Access.Role)

	output.PrintTable(output.CreateSummaryTable(snapshot.Summary, useColors()))

	if len(snapshot.Notifications) > 0 {
		fmt.Println("Уведомления:")
		for _, notification := range snapshot.Notifications {
			fmt.Printf("  - %s\n", notification)
		}
		fmt.Println()
	}

	if len(snapshot.Expiry) > 0 {
		fmt.Println("Ближайшие риски истечения срока:")
		rated := dashboard.FilterExpiry(snapshot.Expiry, 90)
		output.PrintTable(output.CreateExpiryTable(rated, useColors()))
	}

	fmt.Printf("Доступные модули: %v\n", snapshot.Access.Modules)

	return nil
}

func handleDashboardExpiry(cmd *cobra.Command, args []string) error {
	threshold, _ := cmd.Flags().GetInt("threshold")
	switch threshold {
	case 30, 60, 90:
	default:
		return fmt.Errorf("порог должен быть 30, 60 или 90, получено %d", threshold)
	}

	ctx, cancel := commandContext()
	defer cancel()

	rows, err := apiClient.DashboardExpiry(ctx)
	if err != nil {
		return err
	}

	rated := dashboard.FilterExpiry(rows, threshold)

	return printResult(rated, output.CreateExpiryTable(rated, useColors()))
}
