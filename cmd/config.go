package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"HealthoraConsole/internal/output"
	"HealthoraConsole/pkg/errors"
	"HealthoraConsole/pkg/validation"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Управление конфигурацией консоли",
	Long: `Команды для просмотра и изменения конфигурации: адрес бэкенда,
таймаут запросов, формат вывода и отображаемое название системы.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Показать текущую конфигурацию",
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleError(handleConfigShow(cmd, args), cmd)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Изменить конфигурацию",
	Long:  `Изменяет настройки консоли и сохраняет файл конфигурации.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleError(handleConfigSet(cmd, args), cmd)
	},
}

var configSetNameCmd = &cobra.Command{
	Use:   "set-name [name]",
	Short: "Задать отображаемое название системы",
	Long: `Сохраняет название системы в настройках оператора. Название
переживает выход из системы.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleError(handleConfigSetName(cmd, args), cmd)
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configSetNameCmd)

	configSetCmd.Flags().String("server", "", "адрес бэкенда")
	configSetCmd.Flags().Int("timeout", 0, "таймаут запросов в секундах")
	configSetCmd.Flags().String("format", "", "формат вывода по умолчанию (table, json, yaml)")
	configSetCmd.Flags().String("session-backend", "", "хранилище сессии (file, redis)")

	rootCmd.AddCommand(configCmd)
}

func handleConfigShow(cmd *cobra.Command, args []string) error {
	formatter, format, err := getFormatter()
	if err != nil {
		return err
	}

	if format != output.FormatTable {
		rendered, err := formatter.Format(cfg)
		if err != nil {
			return err
		}
		fmt.Println(rendered)
		return nil
	}

	table := output.NewPrettyTable([]string{"Setting", "Value"}, useColors())
	table.AddRow("api.base_url", cfg.API.BaseURL)
	table.AddRow("api.timeout", fmt.Sprintf("%ds", cfg.API.Timeout))
	table.AddRow("logger.level", cfg.Logger.Level)
	table.AddRow("logger.environment", cfg.Logger.Environment)
	table.AddRow("session.backend", cfg.Session.Backend)
	table.AddRow("output.format", cfg.Output.Format)

	if name, err := sessionManager.SystemName(); err == nil && name != "" {
		table.AddRow("system.name", name)
	}

	output.PrintTable(table)
	return nil
}

func handleConfigSet(cmd *cobra.Command, args []string) error {
	changed := false

	if cmd.Flags().Changed("server") {
		server, _ := cmd.Flags().GetString("server")
		v := validation.NewValidator()
		if err := v.ValidateURL(server, []string{"http", "https"}); err != nil {
			return errors.Wrap(err, errors.ErrValidation, "некорректный адрес бэкенда")
		}
		cfg.API.BaseURL = server
		changed = true
	}

	if cmd.Flags().Changed("timeout") {
		timeout, _ := cmd.Flags().GetInt("timeout")
		if timeout <= 0 {
			return errors.New(errors.ErrValidation, "таймаут должен быть положительным")
		}
		cfg.API.Timeout = timeout
		changed = true
	}

	if cmd.Flags().Changed("format") {
		raw, _ := cmd.Flags().GetString("format")
		format, err := output.ParseFormat(raw)
		if err != nil {
			return errors.Wrap(err, errors.ErrValidation, "некорректный формат вывода")
		}
		cfg.Output.Format = string(format)
		changed = true
	}

	if cmd.Flags().Changed("session-backend") {
		backend, _ := cmd.Flags().GetString("session-backend")
		if backend != "file" && backend != "redis" {
			return errors.New(errors.ErrValidation, "хранилище сессии должно быть file или redis")
		}
		cfg.Session.Backend = backend
		changed = true
	}

	if !changed {
		return errors.New(errors.ErrValidation, "не задано ни одной настройки")
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := cfg.Save(); err != nil {
		return err
	}

	fmt.Println("Конфигурация сохранена")
	return nil
}

func handleConfigSetName(cmd *cobra.Command, args []string) error {
	if err := sessionManager.SetSystemName(args[0]); err != nil {
		return err
	}

	fmt.Printf("Название системы сохранено: %s\n", args[0])
	return nil
}
