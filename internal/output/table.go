package output

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"HealthoraConsole/internal/client"
	"HealthoraConsole/internal/dashboard"
)

// TableData представляет данные для табличного вывода
type TableData struct {
	Headers []string
	Rows    []*TableRow
}

// TableRow представляет строку таблицы
type TableRow struct {
	Cells []string
	Style RowStyle
}

// RowStyle определяет стиль строки
type RowStyle int

const (
	StyleDefault RowStyle = iota
	StyleSuccess
	StyleError
	StyleWarning
)

// NewTableData создает новые табличные данные
func NewTableData(headers []string) *TableData {
	return &TableData{
		Headers: headers,
		Rows:    make([]*TableRow, 0),
	}
}

// AddRow добавляет строку
func (td *TableData) AddRow(cells ...string) {
	td.Rows = append(td.Rows, &TableRow{Cells: cells})
}

// AddRowWithStyle добавляет строку с указанием стиля
func (td *TableData) AddRowWithStyle(cells []string, style RowStyle) {
	td.Rows = append(td.Rows, &TableRow{Cells: cells, Style: style})
}

// String возвращает строковое представление таблицы
func (td *TableData) String() string {
	if len(td.Rows) == 0 {
		return "No data found"
	}

	var builder strings.Builder
	w := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)

	if len(td.Headers) > 0 {
		fmt.Fprintln(w, strings.Join(td.Headers, "\t"))
		separators := make([]string, len(td.Headers))
		for i := range separators {
			separators[i] = strings.Repeat("-", len(td.Headers[i]))
		}
		fmt.Fprintln(w, strings.Join(separators, "\t"))
	}

	for _, row := range td.Rows {
		fmt.Fprintln(w, strings.Join(row.Cells, "\t"))
	}

	w.Flush()
	return builder.String()
}

// PrettyTable табличный вывод с цветами по стилю строки
type PrettyTable struct {
	data      *TableData
	useColors bool
}

// NewPrettyTable создает новую таблицу
func NewPrettyTable(headers []string, useColors bool) *PrettyTable {
	return &PrettyTable{
		data:      NewTableData(headers),
		useColors: useColors,
	}
}

// AddRow добавляет строку
func (pt *PrettyTable) AddRow(cells ...string) {
	pt.data.AddRow(cells...)
}

// AddRowWithStyle добавляет строку с указанием стиля
func (pt *PrettyTable) AddRowWithStyle(cells []string, style RowStyle) {
	pt.data.AddRowWithStyle(cells, style)
}

// String возвращает отформатированную таблицу
func (pt *PrettyTable) String() string {
	if !pt.useColors {
		return pt.data.String()
	}

	return pt.applyColors()
}

// applyColors раскрашивает строки по их стилю
func (pt *PrettyTable) applyColors() string {
	var builder strings.Builder
	w := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)

	if len(pt.data.Headers) > 0 {
		fmt.Fprintf(w, "\033[1;34m%s\033[0m\n", strings.Join(pt.data.Headers, "\t"))
		separators := make([]string, len(pt.data.Headers))
		for i := range separators {
			separators[i] = strings.Repeat("-", len(pt.data.Headers[i]))
		}
		fmt.Fprintf(w, "\033[1;90m%s\033[0m\n", strings.Join(separators, "\t"))
	}

	for _, row := range pt.data.Rows {
		line := strings.Join(row.Cells, "\t")
		switch row.Style {
		case StyleSuccess:
			fmt.Fprintf(w, "\033[1;32m%s\033[0m\n", line)
		case StyleError:
			fmt.Fprintf(w, "\033[1;31m%s\033[0m\n", line)
		case StyleWarning:
			fmt.Fprintf(w, "\033[1;33m%s\033[0m\n", line)
		default:
			fmt.Fprintln(w, line)
		}
	}

	w.Flush()
	return builder.String()
}

// styleForRisk сопоставляет корзине риска стиль строки
func styleForRisk(risk dashboard.RiskLevel) RowStyle {
	switch risk {
	case dashboard.RiskHigh:
		return StyleError
	case dashboard.RiskMedium:
		return StyleWarning
	default:
		return StyleDefault
	}
}

// styleForStatus сопоставляет состоянию партии стиль строки
func styleForStatus(status dashboard.BatchStatus) RowStyle {
	switch status {
	case dashboard.StatusExpired:
		return StyleError
	case dashboard.StatusNearExpiry:
		return StyleWarning
	default:
		return StyleSuccess
	}
}

// CreateExpiryTable создает таблицу рисков истечения срока годности
func CreateExpiryTable(rows []dashboard.RatedExpiryRow, useColors bool) *PrettyTable {
	table := NewPrettyTable([]string{"Drug", "Batch", "Expiry", "Days Left", "Qty", "Risk"}, useColors)

	for _, row := range rows {
		table.AddRowWithStyle([]string{
			row.DrugName,
			row.BatchNo,
			row.ExpiryDate.String(),
			strconv.Itoa(row.DaysLeft),
			strconv.Itoa(row.QuantityAvailable),
			string(row.Risk),
		}, styleForRisk(row.Risk))
	}

	return table
}

// CreateStockTable создает таблицу остатков по препаратам
func CreateStockTable(groups []dashboard.StockGroup, useColors bool) *PrettyTable {
	table := NewPrettyTable([]string{"Drug", "Batches", "Total Stock", "Threshold", "Low"}, useColors)

	for _, group := range groups {
		style := StyleDefault
		low := "no"
		if group.Low {
			style = StyleError
			low = "yes"
		}
		table.AddRowWithStyle([]string{
			group.DrugName,
			strconv.Itoa(group.BatchCount),
			strconv.Itoa(group.TotalStock),
			strconv.Itoa(group.Threshold),
			low,
		}, style)
	}

	return table
}

// CreateInventoryTable создает таблицу партий на складе
func CreateInventoryTable(rows []dashboard.RatedInventoryRow, useColors bool) *PrettyTable {
	table := NewPrettyTable([]string{"ID", "Drug", "Batch", "Expiry", "Days Left", "Qty", "Status"}, useColors)

	for _, row := range rows {
		table.AddRowWithStyle([]string{
			strconv.Itoa(row.BatchID),
			row.DrugName,
			row.BatchNo,
			row.ExpiryDate.String(),
			strconv.Itoa(row.DaysLeft),
			strconv.Itoa(row.QuantityAvailable),
			string(row.Status),
		}, styleForStatus(row.Status))
	}

	return table
}

// CreateUsersTable создает таблицу учетных записей
func CreateUsersTable(users []client.User, useColors bool) *PrettyTable {
	table := NewPrettyTable([]string{"ID", "Username", "Role", "Department", "Status"}, useColors)

	for _, user := range users {
		status := "active"
		style := StyleSuccess
		if !user.IsActive {
			status = "inactive"
			style = StyleError
		}
		table.AddRowWithStyle([]string{
			strconv.Itoa(user.UserID),
			user.Username,
			user.RoleDisplayName,
			user.Department,
			status,
		}, style)
	}

	return table
}

// CreatePatientsTable создает таблицу пациентов
func CreatePatientsTable(patients []client.Patient, useColors bool) *PrettyTable {
	table := NewPrettyTable([]string{"ID", "Name", "Gender", "DOB", "Contact", "Archived"}, useColors)

	for _, patient := range patients {
		archived := "no"
		style := StyleDefault
		if patient.IsArchived {
			archived = "yes"
			style = StyleWarning
		}
		table.AddRowWithStyle([]string{
			strconv.Itoa(patient.PatientID),
			patient.Name,
			patient.Gender,
			patient.DOB.String(),
			patient.Contact,
			archived,
		}, style)
	}

	return table
}

// CreateDrugsTable создает таблицу справочника препаратов
func CreateDrugsTable(drugs []client.Drug, useColors bool) *PrettyTable {
	table := NewPrettyTable([]string{"ID", "Name", "Generic", "Strength", "Threshold", "Status"}, useColors)

	for _, drug := range drugs {
		status := "active"
		style := StyleDefault
		if !drug.IsActive {
			status = "disabled"
			style = StyleError
		}
		table.AddRowWithStyle([]string{
			strconv.Itoa(drug.DrugID),
			drug.DrugName,
			drug.GenericName,
			drug.Strength,
			strconv.Itoa(drug.LowStockThreshold),
			status,
		}, style)
	}

	return table
}

// CreateSummaryTable создает таблицу карточек дашборда
func CreateSummaryTable(summary *client.DashboardSummary, useColors bool) *PrettyTable {
	table := NewPrettyTable([]string{"Metric", "Value"}, useColors)

	table.AddRow("Usable stock", strconv.Itoa(summary.UsableStock))
	table.AddRow("Total stock", strconv.Itoa(summary.TotalStock))

	riskStyle := StyleDefault
	if summary.ExpiryRisk > 0 {
		riskStyle = StyleWarning
	}
	table.AddRowWithStyle([]string{"Expiry risk", strconv.Itoa(summary.ExpiryRisk)}, riskStyle)

	alertStyle := StyleDefault
	if summary.LowStockAlerts > 0 {
		alertStyle = StyleError
	}
	table.AddRowWithStyle([]string{"Low stock alerts", strconv.Itoa(summary.LowStockAlerts)}, alertStyle)

	table.AddRow("Total patients", strconv.Itoa(summary.TotalPatients))

	return table
}

// PrintTable выводит таблицу в консоль
func PrintTable(table *PrettyTable) {
	fmt.Println(table.String())
}
