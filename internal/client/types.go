package client

import (
	"fmt"
	"strings"
	"time"
)

// Date представляет календарную дату в формате бэкенда (YYYY-MM-DD)
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

// UnmarshalJSON разбирает дату из JSON
func (d *Date) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		d.Time = time.Time{}
		return nil
	}

	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return fmt.Errorf("некорректная дата %q: %w", value, err)
	}

	d.Time = parsed
	return nil
}

// MarshalJSON сериализует дату в JSON
func (d Date) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Time.Format(dateLayout) + `"`), nil
}

// String возвращает дату в формате бэкенда
func (d Date) String() string {
	if d.Time.IsZero() {
		return ""
	}
	return d.Time.Format(dateLayout)
}

// NewDate создает дату из компонентов
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// LoginRequest представляет запрос на вход
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse представляет ответ на вход
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	Token       string `json:"token"`
	TokenType   string `json:"token_type"`
	Role        string `json:"role"`
	DisplayName string `json:"display_name"`
}

// UserProfile представляет профиль текущего пользователя
type UserProfile struct {
	UserID      int    `json:"user_id"`
	Username    string `json:"username"`
	Role        string `json:"role"`
	DisplayName string `json:"display_name"`
	IsActive    bool   `json:"is_active"`
}

// DashboardSummary представляет сводку для дашборда
type DashboardSummary struct {
	UsableStock    int `json:"usable_stock"`
	TotalStock     int `json:"total_stock"`
	ExpiryRisk     int `json:"expiry_risk"`
	LowStockAlerts int `json:"low_stock_alerts"`
	TotalPatients  int `json:"total_patients"`
}

// ExpiryRow представляет строку списка рисков истечения срока годности
type ExpiryRow struct {
	BatchID           int    `json:"batch_id"`
	DrugName          string `json:"drug_name"`
	BatchNo           string `json:"batch_no"`
	ExpiryDate        Date   `json:"expiry_date"`
	DaysLeft          int    `json:"days_left"`
	QuantityAvailable int    `json:"quantity_available"`
}

// DashboardAccess представляет дескриптор доступа пользователя
type DashboardAccess struct {
	Role        string   `json:"role"`
	DisplayName string   `json:"display_name"`
	Modules     []string `json:"modules"`
	Permissions []string `json:"permissions"`
}

// InventoryRow представляет партию препарата на складе
type InventoryRow struct {
	BatchID           int     `json:"batch_id"`
	DrugID            int     `json:"drug_id"`
	DrugName          string  `json:"drug_name"`
	BatchNo           string  `json:"batch_no"`
	ExpiryDate        Date    `json:"expiry_date"`
	PurchasePrice     float64 `json:"purchase_price"`
	SellingPrice      float64 `json:"selling_price"`
	QuantityAvailable int     `json:"quantity_available"`
	IsExpired         bool    `json:"is_expired"`
}

// InventoryUpdate представляет запрос на обновление остатка партии
type InventoryUpdate struct {
	QuantityAvailable int `json:"quantity_available"`
}

// Drug представляет препарат справочника
type Drug struct {
	DrugID            int    `json:"drug_id"`
	DrugName          string `json:"drug_name"`
	GenericName       string `json:"generic_name,omitempty"`
	Formulation       string `json:"formulation,omitempty"`
	Strength          string `json:"strength,omitempty"`
	ScheduleType      string `json:"schedule_type,omitempty"`
	IsActive          bool   `json:"is_active"`
	LowStockThreshold int    `json:"low_stock_threshold"`
}

// DrugCreate представляет запрос на создание препарата
type DrugCreate struct {
	DrugName          string `json:"drug_name"`
	GenericName       string `json:"generic_name,omitempty"`
	Formulation       string `json:"formulation,omitempty"`
	Strength          string `json:"strength,omitempty"`
	ScheduleType      string `json:"schedule_type,omitempty"`
	LowStockThreshold int    `json:"low_stock_threshold"`
}

// DrugUpdate представляет запрос на изменение препарата
type DrugUpdate struct {
	DrugName          *string `json:"drug_name,omitempty"`
	GenericName       *string `json:"generic_name,omitempty"`
	Formulation       *string `json:"formulation,omitempty"`
	Strength          *string `json:"strength,omitempty"`
	ScheduleType      *string `json:"schedule_type,omitempty"`
	LowStockThreshold *int    `json:"low_stock_threshold,omitempty"`
	IsActive          *bool   `json:"is_active,omitempty"`
}

// BatchCreate представляет запрос на создание партии препарата
type BatchCreate struct {
	DrugID            int     `json:"drug_id"`
	BatchNo           string  `json:"batch_no"`
	ExpiryDate        Date    `json:"expiry_date"`
	PurchasePrice     float64 `json:"purchase_price"`
	SellingPrice      float64 `json:"selling_price"`
	QuantityAvailable int     `json:"quantity_available"`
}

// Role представляет роль пользователя
type Role struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

// User представляет учетную запись
type User struct {
	UserID          int    `json:"user_id"`
	Username        string `json:"username"`
	RoleID          int    `json:"role_id"`
	RoleName        string `json:"role_name"`
	RoleDisplayName string `json:"role_display_name"`
	Department      string `json:"department"`
	IsActive        bool   `json:"is_active"`
	CreatedAt       string `json:"created_at"`
}

// UserCreate представляет запрос на создание учетной записи
type UserCreate struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	RoleID     int    `json:"role_id"`
	Department string `json:"department"`
	IsActive   bool   `json:"is_active"`
}

// UserUpdate представляет запрос на изменение учетной записи
type UserUpdate struct {
	RoleID     *int    `json:"role_id,omitempty"`
	Department *string `json:"department,omitempty"`
	IsActive   *bool   `json:"is_active,omitempty"`
}

// Patient представляет пациента
type Patient struct {
	PatientID       int    `json:"patient_id"`
	Name            string `json:"name"`
	Address         string `json:"address,omitempty"`
	Gender          string `json:"gender,omitempty"`
	Contact         string `json:"contact,omitempty"`
	DOB             Date   `json:"dob"`
	CreatedByUserID int    `json:"created_by_user_id,omitempty"`
	CreatedAt       string `json:"created_at"`
	IsArchived      bool   `json:"is_archived"`
}

// PatientCreate представляет запрос на регистрацию пациента
type PatientCreate struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Gender  string `json:"gender,omitempty"`
	Contact string `json:"contact,omitempty"`
	DOB     *Date  `json:"dob,omitempty"`
}

// PatientUpdate представляет запрос на изменение данных пациента
type PatientUpdate struct {
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
	Gender  *string `json:"gender,omitempty"`
	Contact *string `json:"contact,omitempty"`
	DOB     *Date   `json:"dob,omitempty"`
}

// AIReport представляет ответ эндпоинта отчетов
type AIReport struct {
	Message string `json:"message"`
}
