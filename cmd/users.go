package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"HealthoraConsole/internal/access"
	"HealthoraConsole/internal/client"
	"HealthoraConsole/internal/output"
	"HealthoraConsole/pkg/errors"
	"HealthoraConsole/pkg/validation"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Управление учетными записями",
	Long: `Команды для управления учетными записями операторов: просмотр,
создание, изменение роли, деактивация, сброс пароля и удаление.
Доступны только роли системного администратора.`,
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "Показать список учетных записей",
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleError(handleUsersList(cmd, args), cmd)
	},
}

var usersCreateCmd = &cobra.Command{
	Use:   "create [username]",
	Short: "Создать учетную запись",
	Long:  `Создает новую учетную запись с указанной ролью и отделом.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleError(handleUsersCreate(cmd, args), cmd)
	},
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update [user-id]",
	Short: "Изменить учетную запись",
	Long:  `Изменяет роль, отдел или активность учетной записи. Передаются только заданные флаги.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleError(handleUsersUpdate(cmd, args), cmd)
	},
}

var usersDeactivateCmd = &cobra.Command{
	Use:   "deactivate [user-id]",
	Short: "Деактивировать учетную запись",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleError(handleUsersDeactivate(cmd, args), cmd)
	},
}

var usersResetPasswordCmd = &cobra.Command{
	Use:   "reset-password [user-id]",
	Short: "Сбросить пароль учетной записи",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleError(handleUsersResetPassword(cmd, args), cmd)
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete [user-id]",
	Short: "Удалить учетную запись",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleError(handleUsersDelete(cmd, args), cmd)
	},
}

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "Показать список ролей",
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleError(handleRolesList(cmd, args), cmd)
	},
}

var departmentsCmd = &cobra.Command{
	Use:   "departments",
	Short: "Показать список отделов",
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleError(handleDepartmentsList(cmd, args), cmd)
	},
}

func init() {
	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersCreateCmd)
	usersCmd.AddCommand(usersUpdateCmd)
	usersCmd.AddCommand(usersDeactivateCmd)
	usersCmd.AddCommand(usersResetPasswordCmd)
	usersCmd.AddCommand(usersDeleteCmd)
	usersCmd.AddCommand(rolesCmd)
	usersCmd.AddCommand(departmentsCmd)

	usersCreateCmd.Flags().StringP("password", "p", "", "пароль новой учетной записи")
	usersCreateCmd.Flags().Int("role-id", 0, "идентификатор роли")
	usersCreateCmd.Flags().StringP("department", "d", "", "отдел")

	usersUpdateCmd.Flags().Int("role-id", 0, "новый идентификатор роли")
	usersUpdateCmd.Flags().StringP("department", "d", "", "новый отдел")
	usersUpdateCmd.Flags().Bool("active", true, "активность учетной записи")

	usersResetPasswordCmd.Flags().StringP("password", "p", "", "новый пароль")

	rootCmd.AddCommand(usersCmd)
}

// parseID разбирает числовой идентификатор из аргумента команды
func parseID(raw, what string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, errors.New(errors.ErrValidation,
			fmt.Sprintf("некорректный идентификатор %s: %s", what, raw))
	}
	return id, nil
}

func handleUsersList(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	users, err := apiClient.ListUsers(ctx)
	if err != nil {
		return err
	}

	return printResult(users, output.CreateUsersTable(users, useColors()))
}

func handleUsersCreate(cmd *cobra.Command, args []string) error {
	username := args[0]
	password, _ := cmd.Flags().GetString("password")
	roleID, _ := cmd.Flags().GetInt("role-id")
	department, _ := cmd.Flags().GetString("department")

	v := validation.NewValidator()
	if err := v.ValidateUsername(username); err != nil {
		return err
	}
	if err := v.ValidateRequiredFields(map[string]interface{}{
		"password":   password,
		"department": department,
	}, map[string]string{
		"password":   "пароль",
		"department": "отдел",
	}); err != nil {
		return err
	}
	if err := v.ValidatePositiveInt("role-id", roleID); err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	if err := requirePermission(ctx, access.PermManageUsers); err != nil {
		return err
	}

	user, err := apiClient.CreateUser(ctx, &client.UserCreate{
		Username:   username,
		Password:   password,
		RoleID:     roleID,
		Department: department,
		IsActive:   true,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Учетная запись создана: %s (id=%d)\n", user.Username, user.UserID)
	return nil
}

func handleUsersUpdate(cmd *cobra.Command, args []string) error {
	userID, err := parseID(args[0], "учетной записи")
	if err != nil {
		return err
	}

	payload := &client.UserUpdate{}
	if cmd.Flags().Changed("role-id") {
		roleID, _ := cmd.Flags().GetInt("role-id")
		payload.RoleID = &roleID
	}
	if cmd.Flags().Changed("department") {
		department, _ := cmd.Flags().GetString("department")
		payload.Department = &department
	}
	if cmd.Flags().Changed("active") {
		active, _ := cmd.Flags().GetBool("active")
		payload.IsActive = &active
	}

	if payload.RoleID == nil && payload.Department == nil && payload.IsActive == nil {
		return errors.New(errors.ErrValidation, "не задано ни одного изменения")
	}

	ctx, cancel := commandContext()
	defer cancel()

	if err := requirePermission(ctx, access.PermManageUsers); err != nil {
		return err
	}

	user, err := apiClient.UpdateUser(ctx, userID, payload)
	if err != nil {
		return err
	}

	fmt.Printf("Учетная запись обновлена: %s\n", user.Username)
	return nil
}

func handleUsersDeactivate(cmd *cobra.Command, args []string) error {
	userID, err := parseID(args[0], "учетной записи")
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	if err := requirePermission(ctx, access.PermManageUsers); err != nil {
		return err
	}

	user, err := apiClient.DeactivateUser(ctx, userID)
	if err != nil {
		return err
	}

	fmt.Printf("Учетная запись деактивирована: %s\n", user.Username)
	return nil
}

func handleUsersResetPassword(cmd *cobra.Command, args []string) error {
	userID, err := parseID(args[0], "учетной записи")
	if err != nil {
		return err
	}

	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		return errors.New(errors.ErrValidation, "новый пароль не задан")
	}

	ctx, cancel := commandContext()
	defer cancel()

	if err := requirePermission(ctx, access.PermManageUsers); err != nil {
		return err
	}

	user, err := apiClient.ResetUserPassword(ctx, userID, password)
	if err != nil {
		return err
	}

	fmt.Printf("Пароль сброшен: %s\n", user.Username)
	return nil
}

func handleUsersDelete(cmd *cobra.Command, args []string) error {
	userID, err := parseID(args[0], "учетной записи")
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	if err := requirePermission(ctx, access.PermManageUsers); err != nil {
		return err
	}

	if err := apiClient.DeleteUser(ctx, userID); err != nil {
		return err
	}

	fmt.Printf("Учетная запись удалена: id=%d\n", userID)
	return nil
}

func handleRolesList(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	roles, err := apiClient.ListRoles(ctx)
	if err != nil {
		return err
	}

	table := output.NewPrettyTable([]string{"ID", "Name", "Display Name"}, useColors())
	for _, role := range roles {
		table.AddRow(strconv.Itoa(role.ID), role.Name, role.DisplayName)
	}

	return printResult(roles, table)
}

func handleDepartmentsList(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	departments, err := apiClient.ListDepartments(ctx)
	if err != nil {
		return err
	}

	table := output.NewPrettyTable([]string{"Department"}, useColors())
	for _, department := range departments {
		table.AddRow(department)
	}

	return printResult(departments, table)
}
