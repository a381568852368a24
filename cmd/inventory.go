package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"HealthoraConsole/internal/access"
	"HealthoraConsole/internal/client"
	"HealthoraConsole/internal/dashboard"
	"HealthoraConsole/internal/output"
	"HealthoraConsole/pkg/errors"
)

var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Управление складскими остатками",
	Long: `Команды для работы со складом: просмотр партий с фильтрами,
сводка остатков по препаратам, корректировка количества, приемка
новых партий и списание просроченных.`,
}

var inventoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "Показать партии на складе",
	Long: `Показывает партии с вычисленным состоянием по сроку годности.
Поддерживает фильтры по препарату, корзине риска, потолку оставшихся
дней и подстроке названия или номера партии.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleError(handleInventoryList(cmd, args), cmd)
	},
}

var inventoryStockCmd = &cobra.Command{
	Use:   "stock",
	Short: "Показать остатки по препаратам",
	Long: `Группирует партии по препарату, суммируя остаток. Препараты
с остатком ниже порога помечаются флагом low.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleError(handleInventoryStock(cmd, args), cmd)
	},
}

var inventoryUpdateCmd = &cobra.Command{
	Use:   "update [batch-id]",
	Short: "Скорректировать остаток партии",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleError(handleInventoryUpdate(cmd, args), cmd)
	},
}

var batchCreateCmd = &cobra.Command{
	Use:   "add-batch",
	Short: "Принять новую партию",
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleError(handleBatchCreate(cmd, args), cmd)
	},
}

var batchExpireCmd = &cobra.Command{
	Use:   "mark-expired [batch-id]",
	Short: "Списать партию как просроченную",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleError(handleBatchExpire(cmd, args), cmd)
	},
}

func init() {
	inventoryCmd.AddCommand(inventoryListCmd)
	inventoryCmd.AddCommand(inventoryStockCmd)
	inventoryCmd.AddCommand(inventoryUpdateCmd)
	inventoryCmd.AddCommand(batchCreateCmd)
	inventoryCmd.AddCommand(batchExpireCmd)

	inventoryListCmd.Flags().Int("drug-id", 0, "фильтр по препарату")
	inventoryListCmd.Flags().String("risk", "", "фильтр по корзине риска (low, medium, high)")
	inventoryListCmd.Flags().String("max-days", "", "потолок оставшихся дней (число или all)")
	inventoryListCmd.Flags().String("search", "", "подстрока названия препарата или номера партии")

	inventoryStockCmd.Flags().Int("threshold", 0, "переопределить порог низкого остатка для всех препаратов")

	inventoryUpdateCmd.Flags().IntP("quantity", "q", -1, "новое количество")
	inventoryUpdateCmd.Flags().Bool("show-list", false, "показать обновленный список партий после записи")

	batchCreateCmd.Flags().Int("drug-id", 0, "идентификатор препарата")
	batchCreateCmd.Flags().String("batch-no", "", "номер партии")
	batchCreateCmd.Flags().String("expiry", "", "срок годности (YYYY-MM-DD)")
	batchCreateCmd.Flags().Float64("purchase-price", 0, "закупочная цена")
	batchCreateCmd.Flags().Float64("selling-price", 0, "отпускная цена")
	batchCreateCmd.Flags().IntP("quantity", "q", 0, "количество")

	rootCmd.AddCommand(inventoryCmd)
}

// parseRiskFlag разбирает корзину риска из флага
func parseRiskFlag(raw string) (dashboard.RiskLevel, error) {
	switch raw {
	case "":
		return "", nil
	case "low":
		return dashboard.RiskLow, nil
	case "medium":
		return dashboard.RiskMedium, nil
	case "high":
		return dashboard.RiskHigh, nil
	default:
		return "", errors.New(errors.ErrValidation,
			fmt.Sprintf("неизвестная корзина риска: %s", raw))
	}
}

// today возвращает текущую дату без времени
func today() client.Date {
	now := time.Now()
	return client.NewDate(now.Year(), now.Month(), now.Day())
}

func handleInventoryList(cmd *cobra.Command, args []string) error {
	drugID, _ := cmd.Flags().GetInt("drug-id")
	riskRaw, _ := cmd.Flags().GetString("risk")
	maxDays, _ := cmd.Flags().GetString("max-days")
	search, _ := cmd.Flags().GetString("search")

	risk, err := parseRiskFlag(riskRaw)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	rows, err := apiClient.ListInventory(ctx)
	if err != nil {
		return err
	}

	rated := dashboard.RateInventory(rows, today())
	filtered := dashboard.FilterBatches(rated, dashboard.BatchFilter{
		DrugID:  drugID,
		Risk:    risk,
		MaxDays: maxDays,
		Search:  search,
	})

	return printResult(filtered, output.CreateInventoryTable(filtered, useColors()))
}

func handleInventoryStock(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	rows, err := apiClient.ListInventory(ctx)
	if err != nil {
		return err
	}

	drugs, err := apiClient.ListDrugs(ctx)
	if err != nil {
		return err
	}

	var overrides map[int]int
	if threshold, _ := cmd.Flags().GetInt("threshold"); threshold > 0 {
		overrides = make(map[int]int, len(drugs))
		for _, drug := range drugs {
			overrides[drug.DrugID] = threshold
		}
	}

	groups := dashboard.GroupStock(rows, drugs, overrides)

	return printResult(groups, output.CreateStockTable(groups, useColors()))
}

func handleInventoryUpdate(cmd *cobra.Command, args []string) error {
	batchID, err := parseID(args[0], "партии")
	if err != nil {
		return err
	}

	quantity, _ := cmd.Flags().GetInt("quantity")
	if quantity < 0 {
		return errors.New(errors.ErrValidation, "количество должно быть неотрицательным")
	}

	ctx, cancel := commandContext()
	defer cancel()

	if err := requirePermission(ctx, access.PermUpdateInventory); err != nil {
		return err
	}

	row, err := apiClient.UpdateInventory(ctx, batchID, quantity)
	if err != nil {
		return err
	}

	fmt.Printf("Остаток обновлен: %s %s, количество %d\n", row.DrugName, row.BatchNo, row.QuantityAvailable)

	// Повторное чтение после записи, чтобы показанный список
	// соответствовал состоянию бэкенда
	if showList, _ := cmd.Flags().GetBool("show-list"); showList {
		rows, err := apiClient.ListInventory(ctx)
		if err != nil {
			return err
		}
		rated := dashboard.RateInventory(rows, today())
		output.PrintTable(output.CreateInventoryTable(rated, useColors()))
	}

	return nil
}

func handleBatchCreate(cmd *cobra.Command, args []string) error {
	drugID, _ := cmd.Flags().GetInt("drug-id")
	batchNo, _ := cmd.Flags().GetString("batch-no")
	expiryRaw, _ := cmd.Flags().GetString("expiry")
	purchasePrice, _ := cmd.Flags().GetFloat64("purchase-price")
	sellingPrice, _ := cmd.Flags().GetFloat64("selling-price")
	quantity, _ := cmd.Flags().GetInt("quantity")

	if drugID <= 0 || batchNo == "" || expiryRaw == "" || quantity <= 0 {
		return errors.New(errors.ErrValidation,
			"обязательны флаги --drug-id, --batch-no, --expiry и --quantity")
	}

	expiry, err := parseDateFlag(expiryRaw)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	if err := requirePermission(ctx, access.PermAddBatch); err != nil {
		return err
	}

	row, err := apiClient.CreateBatch(ctx, &client.BatchCreate{
		DrugID:            drugID,
		BatchNo:           batchNo,
		ExpiryDate:        *expiry,
		PurchasePrice:     purchasePrice,
		SellingPrice:      sellingPrice,
		QuantityAvailable: quantity,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Партия принята: %s %s (id=%d)\n", row.DrugName, row.BatchNo, row.BatchID)
	return nil
}

func handleBatchExpire(cmd *cobra.Command, args []string) error {
	batchID, err := parseID(args[0], "партии")
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	// Списание меняет состав партий, а не количество, поэтому бэкенд
	// требует разрешение приемки
	if err := requirePermission(ctx, access.PermAddBatch); err != nil {
		return err
	}

	row, err := apiClient.MarkBatchExpired(ctx, batchID)
	if err != nil {
		return err
	}

	fmt.Printf("Партия списана: %s %s\n", row.DrugName, row.BatchNo)
	return nil
}
