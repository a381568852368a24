package dashboard

import (
	"strconv"
	"strings"

	"HealthoraConsole/internal/client"
)

// RiskLevel представляет корзину риска истечения срока годности
type RiskLevel string

const (
	RiskHigh   RiskLevel = "high"
	RiskMedium RiskLevel = "medium"
	RiskLow    RiskLevel = "low"
)

// BatchStatus представляет состояние партии по сроку годности
type BatchStatus string

const (
	StatusExpired    BatchStatus = "expired"
	StatusNearExpiry BatchStatus = "near-expiry"
	StatusGood       BatchStatus = "good"
)

// DefaultLowStockThreshold применяется к препаратам без настроенного порога
const DefaultLowStockThreshold = 50

// RiskForDays возвращает корзину риска по оставшимся дням
func RiskForDays(daysLeft int) RiskLevel {
	switch {
	case daysLeft <= 30:
		return RiskHigh
	case daysLeft <= 60:
		return RiskMedium
	default:
		return RiskLow
	}
}

// StatusForDays возвращает состояние партии по оставшимся дням
func StatusForDays(daysLeft int) BatchStatus {
	switch {
	case daysLeft < 0:
		return StatusExpired
	case daysLeft <= 60:
		return StatusNearExpiry
	default:
		return StatusGood
	}
}

// RatedExpiryRow представляет строку риска с вычисленной корзиной
type RatedExpiryRow struct {
	client.ExpiryRow
	Risk RiskLevel
}

// FilterExpiry оставляет строки с daysLeft не больше порога и присваивает
// корзину риска. Повторное применение с тем же порогом не меняет результат.
func FilterExpiry(rows []client.ExpiryRow, threshold int) []RatedExpiryRow {
	result := make([]RatedExpiryRow, 0, len(rows))
	for _, row := range rows {
		if row.DaysLeft > threshold {
			continue
		}
		result = append(result, RatedExpiryRow{
			ExpiryRow: row,
			Risk:      RiskForDays(row.DaysLeft),
		})
	}
	return result
}

// StockGroup представляет остаток препарата, просуммированный по партиям
type StockGroup struct {
	DrugID     int
	DrugName   string
	BatchCount int
	TotalStock int
	Threshold  int
	Low        bool
}

// GroupStock группирует партии по препарату, суммируя остаток и считая
// партии. Порог берется из переопределения, затем из справочника, затем
// значение по умолчанию. Партии без записи в справочнике не отбрасываются.
func GroupStock(rows []client.InventoryRow, drugs []client.Drug, overrides map[int]int) []StockGroup {
	thresholds := make(map[int]int, len(drugs))
	for _, drug := range drugs {
		if drug.LowStockThreshold > 0 {
			thresholds[drug.DrugID] = drug.LowStockThreshold
		}
	}

	index := make(map[int]*StockGroup)
	order := make([]int, 0)

	for _, row := range rows {
		group, ok := index[row.DrugID]
		if !ok {
			group = &StockGroup{
				DrugID:   row.DrugID,
				DrugName: row.DrugName,
			}
			index[row.DrugID] = group
			order = append(order, row.DrugID)
		}
		group.BatchCount++
		group.TotalStock += row.QuantityAvailable
	}

	result := make([]StockGroup, 0, len(order))
	for _, drugID := range order {
		group := index[drugID]

		threshold := DefaultLowStockThreshold
		if configured, ok := thresholds[drugID]; ok {
			threshold = configured
		}
		if override, ok := overrides[drugID]; ok {
			threshold = override
		}

		group.Threshold = threshold
		group.Low = group.TotalStock < threshold
		result = append(result, *group)
	}

	return result
}

// BatchFilter описывает фильтры списка партий. Нулевые значения
// означают отсутствие фильтра.
type BatchFilter struct {
	DrugID int
	Risk   RiskLevel
	// MaxDays задается строкой: нечисловое значение означает "все"
	MaxDays string
	Search  string
}

// RatedInventoryRow представляет партию с вычисленным состоянием
type RatedInventoryRow struct {
	client.InventoryRow
	DaysLeft int
	Status   BatchStatus
	Risk     RiskLevel
}

// FilterBatches применяет фильтры к списку партий. Поиск сопоставляет
// подстроку с названием препарата и номером партии без учета регистра.
func FilterBatches(rows []RatedInventoryRow, filter BatchFilter) []RatedInventoryRow {
	maxDays, maxDaysSet := parseMaxDays(filter.MaxDays)
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	result := make([]RatedInventoryRow, 0, len(rows))
	for _, row := range rows {
		if filter.DrugID != 0 && row.DrugID != filter.DrugID {
			continue
		}
		if filter.Risk != "" && row.Risk != filter.Risk {
			continue
		}
		if maxDaysSet && row.DaysLeft > maxDays {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(row.DrugName), search) &&
			!strings.Contains(strings.ToLower(row.BatchNo), search) {
			continue
		}
		result = append(result, row)
	}
	return result
}

// parseMaxDays разбирает потолок оставшихся дней. Нечисловая строка
// отключает фильтр.
func parseMaxDays(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "all") {
		return 0, false
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return value, true
}

// RateInventory вычисляет оставшиеся дни, состояние и корзину риска
// для каждой партии относительно переданной даты.
func RateInventory(rows []client.InventoryRow, today client.Date) []RatedInventoryRow {
	result := make([]RatedInventoryRow, 0, len(rows))
	for _, row := range rows {
		daysLeft := int(row.ExpiryDate.Sub(today.Time).Hours() / 24)
		result = append(result, RatedInventoryRow{
			InventoryRow: row,
			DaysLeft:     daysLeft,
			Status:       StatusForDays(daysLeft),
			Risk:         RiskForDays(daysLeft),
		})
	}
	return result
}
