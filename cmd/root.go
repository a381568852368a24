package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"HealthoraConsole/internal/access"
	"HealthoraConsole/internal/client"
	"HealthoraConsole/internal/output"
	"HealthoraConsole/internal/session"
	"HealthoraConsole/pkg/config"
	pkgerrors "HealthoraConsole/pkg/errors"
	"HealthoraConsole/pkg/logger"
	"HealthoraConsole/pkg/metrics"
)

var (
	cfg            *config.Config
	appLogger      logger.Logger
	appMetrics     *metrics.Metrics
	sessionManager *session.Manager
	apiClient      *client.Client
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "healthora",
	Short: "HEALTHORA Console - Управление аптечной системой",
	Long: `HEALTHORA Console - инструмент командной строки для администрирования
аптечной системы HEALTHORA.

Поддерживает управление учетными записями, пациентами, справочником
препаратов, складскими остатками и просмотр сводок дашборда.`,
	Version: "1.0.0",
}

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return initApp()
	}

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.healthora/config.yaml)")
	rootCmd.PersistentFlags().StringP("server", "s", "", "адрес бэкенда (например: http://localhost:8000)")
	rootCmd.PersistentFlags().StringP("output", "o", "table", "output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	// Bind flags to viper
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server"))
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetEnvPrefix("HEALTHORA")
	viper.AutomaticEnv()
}

// initApp загружает конфигурацию и собирает зависимости команд
func initApp() error {
	var err error

	configPath := viper.GetString("config")
	if configPath == "" {
		configPath, err = config.GetConfigPath()
		if err != nil {
			return err
		}
	}

	cfg, err = config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	// Флаг командной строки важнее файла конфигурации
	if server := viper.GetString("server"); server != "" {
		cfg.API.BaseURL = server
	}

	level := cfg.Logger.Level
	if viper.GetBool("verbose") {
		level = "debug"
	}

	appLogger, err = logger.NewLogger(cfg.Logger.Environment, level, "healthora-console")
	if err != nil {
		return fmt.Errorf("ошибка инициализации логгера: %w", err)
	}

	// Провайдер трассировки ставится до создания метрик, чтобы спаны
	// запросов не уходили в пустой глобальный трейсер
	if err := metrics.InitializeOpenTelemetry("healthora-console", rootCmd.Version); err != nil {
		return fmt.Errorf("ошибка инициализации трассировки: %w", err)
	}

	appMetrics = metrics.NewMetrics("healthora_console")

	sessionManager, err = buildSessionManager()
	if err != nil {
		return err
	}

	apiClient = client.NewClient(
		cfg.API.BaseURL,
		time.Duration(cfg.API.Timeout)*time.Second,
		sessionManager,
		appLogger,
		appMetrics,
	)

	return nil
}

// buildSessionManager собирает менеджер сессии из настроенных областей.
// Долговременная область по умолчанию файловая; Redis включается
// настройкой session.backend для общих рабочих мест.
func buildSessionManager() (*session.Manager, error) {
	var durable session.Scope
	var err error

	switch cfg.Session.Backend {
	case "redis":
		durable, err = session.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, fmt.Errorf("ошибка подключения хранилища сессии: %w", err)
		}
	default:
		durable, err = session.NewFileStore()
		if err != nil {
			return nil, fmt.Errorf("ошибка создания хранилища сессии: %w", err)
		}
	}

	return session.NewManager(durable, session.NewMemoryStore(), appLogger), nil
}

// commandContext возвращает контекст с таймаутом на одну команду
func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(cfg.API.Timeout)*time.Second)
}

// requirePermission проверяет разрешение роли до обращения к бэкенду.
// Отказ формируется локально по дескриптору доступа.
func requirePermission(ctx context.Context, permission access.Permission) error {
	descriptor, err := apiClient.DashboardAccess(ctx)
	if err != nil {
		return err
	}

	gate := access.NewGate(descriptor.Permissions, descriptor.Modules)
	return gate.Require(permission)
}

// getFormatter возвращает форматировщик согласно флагу вывода
func getFormatter() (output.Formatter, output.FormatType, error) {
	format, err := output.ParseFormat(viper.GetString("output"))
	if err != nil {
		return nil, "", err
	}
	return output.GetFormatter(format, true), format, nil
}

// printResult выводит данные в выбранном формате. Табличный формат
// получает готовую таблицу, остальные - исходную структуру.
func printResult(data interface{}, table *output.PrettyTable) error {
	formatter, format, err := getFormatter()
	if err != nil {
		return err
	}

	var rendered string
	if format == output.FormatTable {
		rendered, err = formatter.Format(table)
	} else {
		rendered, err = formatter.Format(data)
	}
	if err != nil {
		return err
	}

	fmt.Println(rendered)
	return nil
}

// useColors определяет, раскрашивать ли таблицы
func useColors() bool {
	if cfg != nil && !cfg.Output.Colors {
		return false
	}
	return output.DetectColors()
}

// handleError приводит ошибки команд к единому виду
func handleError(err error, cmd *cobra.Command) error {
	if err == nil {
		return nil
	}

	var appErr *pkgerrors.Error
	if !errors.As(err, &appErr) {
		appErr = pkgerrors.New(pkgerrors.ErrInternal, err.Error())
	}

	if appLogger != nil {
		appLogger.Error("команда завершилась с ошибкой",
			logger.String("command", cmd.Name()),
			logger.Error(appErr))
	}

	return fmt.Errorf("%s: %s", cmd.Name(), appErr.GetUserMessage())
}
