package access

import (
	"fmt"

	"HealthoraConsole/pkg/errors"
)

// Permission представляет закрытое перечисление известных разрешений.
// Бэкенд оперирует строками; перечисление ловит опечатки на этапе компиляции.
type Permission string

const (
	PermManageUsers          Permission = "manage_users"
	PermViewDashboardSummary Permission = "view_dashboard_summary"
	PermViewPatients         Permission = "view_patients"
	PermAddPatients          Permission = "add_patients"
	PermViewDrugs            Permission = "view_drugs"
	PermAddDrug              Permission = "add_drug"
	PermAddBatch             Permission = "add_batch"
	PermViewInventory        Permission = "view_inventory"
	PermUpdateInventory      Permission = "update_inventory"
	PermViewAIReport         Permission = "view_ai_report"
)

// Module представляет раздел консоли, видимость которого зависит от роли
type Module string

const (
	ModuleDashboard Module = "dashboard"
	ModuleUsers     Module = "users"
	ModulePatients  Module = "patients"
	ModuleDrugs     Module = "drugs"
	ModuleInventory Module = "inventory"
	ModuleAIReport  Module = "ai_report"
	ModuleSettings  Module = "settings"
)

// knownPermissions множество всех известных разрешений
var knownPermissions = map[Permission]struct{}{
	PermManageUsers:          {},
	PermViewDashboardSummary: {},
	PermViewPatients:         {},
	PermAddPatients:          {},
	PermViewDrugs:            {},
	PermAddDrug:              {},
	PermAddBatch:             {},
	PermViewInventory:        {},
	PermUpdateInventory:      {},
	PermViewAIReport:         {},
}

// ParsePermission преобразует строку бэкенда в известное разрешение
func ParsePermission(raw string) (Permission, error) {
	p := Permission(raw)
	if _, ok := knownPermissions[p]; !ok {
		return "", fmt.Errorf("неизвестное разрешение: %s", raw)
	}
	return p, nil
}

// Gate проверяет разрешения и видимость модулей для текущей роли.
// Не кеширует ничего: состояние пересчитывается на каждое обращение.
type Gate struct {
	permissions map[Permission]struct{}
	modules     map[Module]struct{}
}

// NewGate создает новый Gate из дескриптора доступа бэкенда.
// Неизвестные строки игнорируются: новая версия бэкенда не должна
// ломать старую консоль.
func NewGate(permissions, modules []string) *Gate {
	g := &Gate{
		permissions: make(map[Permission]struct{}, len(permissions)),
		modules:     make(map[Module]struct{}, len(modules)),
	}

	for _, raw := range permissions {
		if p, err := ParsePermission(raw); err == nil {
			g.permissions[p] = struct{}{}
		}
	}

	for _, raw := range modules {
		g.modules[Module(raw)] = struct{}{}
	}

	return g
}

// Allows проверяет, разрешено ли действие
func (g *Gate) Allows(permission Permission) bool {
	_, ok := g.permissions[permission]
	return ok
}

// CanAccessModule проверяет видимость модуля
func (g *Gate) CanAccessModule(module Module) bool {
	_, ok := g.modules[module]
	return ok
}

// Require возвращает ошибку, если действие запрещено. Ошибка формируется
// на стороне консоли без обращения к серверу.
func (g *Gate) Require(permission Permission) error {
	if g.Allows(permission) {
		return nil
	}
	return errors.New(errors.ErrForbidden,
		fmt.Sprintf("действие требует разрешения %s, роль его не имеет", permission))
}

// Permissions возвращает отсортированный по бэкенду набор разрешений
func (g *Gate) Permissions() []Permission {
	result := make([]Permission, 0, len(g.permissions))
	for p := range g.permissions {
		result = append(result, p)
	}
	return result
}
