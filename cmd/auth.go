package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"HealthoraConsole/internal/session"
	"HealthoraConsole/pkg/errors"
	"HealthoraConsole/pkg/logger"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Управление аутентификацией",
	Long: `Команды для управления аутентификацией операторов:
вход, выход и проверка статуса сессии.`,
}

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login [username]",
	Short: "Войти в систему",
	Long: `Выполняет вход оператора по имени пользователя и паролю.
С флагом --remember сессия сохраняется между запусками консоли,
без него живет только до завершения процесса.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleError(handleLogin(cmd, args), cmd)
	},
}

// logoutCmd represents the logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Выйти из системы",
	Long:  `Удаляет сохраненную сессию из всех областей хранения.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleError(handleLogout(cmd, args), cmd)
	},
}

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Проверить статус аутентификации",
	Long:  `Показывает текущую сессию и профиль оператора с бэкенда.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleError(handleAuthStatus(cmd, args), cmd)
	},
}

func init() {
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(statusCmd)

	// Login flags
	loginCmd.Flags().StringP("password", "p", "", "пароль (запрашивается интерактивно, если не задан)")
	loginCmd.Flags().BoolP("remember", "r", false, "сохранить сессию между запусками")

	rootCmd.AddCommand(authCmd)
}

func handleLogin(cmd *cobra.Command, args []string) error {
	username := ""
	if len(args) > 0 {
		username = args[0]
	}
	if username == "" {
		fmt.Print("Имя пользователя: ")
		if _, err := fmt.Scanln(&username); err != nil {
			return errors.New(errors.ErrValidation, "имя пользователя не задано")
		}
	}

	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		fmt.Print("Пароль: ")
		reader := bufio.NewReader(os.Stdin)
		raw, err := reader.ReadString('\n')
		if err != nil {
			return errors.Wrap(err, errors.ErrInternal, "ошибка чтения пароля")
		}
		password = strings.TrimRight(raw, "\r\n")
	}

	if password == "" {
		return errors.New(errors.ErrValidation, "пароль не задан")
	}

	remember, _ := cmd.Flags().GetBool("remember")

	ctx, cancel := commandContext()
	defer cancel()

	timer := appMetrics.NewCommandTimer("auth_login")

	response, err := apiClient.Login(ctx, username, password)
	if err != nil {
		timer.Finish(false)
		return err
	}

	// Бэкенд дублирует токен в двух полях, предпочитаем access_token
	token := response.AccessToken
	if token == "" {
		token = response.Token
	}

	err = sessionManager.Login(&session.Session{
		Token:       token,
		Username:    username,
		Role:        response.Role,
		DisplayName: response.DisplayName,
	}, remember)
	if err != nil {
		timer.Finish(false)
		return err
	}

	timer.Finish(true)

	scope := "до завершения процесса"
	if remember {
		scope = "между запусками"
	}
	fmt.Printf("Вход выполнен: %s (%s), сессия сохранена %s\n", response.DisplayName, response.Role, scope)

	return nil
}

func handleLogout(cmd *cobra.Command, args []string) error {
	if err := sessionManager.Logout(); err != nil {
		return err
	}

	fmt.Println("Выход выполнен, сессия удалена")
	return nil
}

func handleAuthStatus(cmd *cobra.Command, args []string) error {
	current, err := sessionManager.Current()
	if err != nil {
		fmt.Println("Не аутентифицирован, выполните: healthora auth login")
		return nil
	}

	ctx, cancel := commandContext()
	defer cancel()

	profile, err := apiClient.Me(ctx)
	if err != nil {
		// Токен есть, но бэкенд его не принимает
		if errors.IsAuthError(err) {
			fmt.Println("Сессия устарела, выполните вход заново")
			return nil
		}
		return err
	}

	appLogger.Debug("профиль получен", logger.String("username", profile.Username))

	fmt.Printf("Пользователь: %s (%s)\n", profile.DisplayName, profile.Username)
	fmt.Printf("Роль: %s\n", profile.Role)
	fmt.Printf("Сессия: %s\n", current.Username)

	return nil
}
