package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore хранит сессию и настройки в домашней директории пользователя
type FileStore struct {
	sessionPath string
	prefsPath   string
}

// NewFileStore создает новое файловое хранилище сессии
func NewFileStore() (*FileStore, error) {
	// Сначала проверяем переменную окружения
	home := os.Getenv("HEALTHORA_HOME")
	if home == "" {
		// Если переменная не установлена, используем домашнюю директорию
		var err error
		home, err = os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("ошибка получения домашней директории: %w", err)
		}
		home = filepath.Join(home, ".healthora")
	}

	// Создаем директорию если она не существует
	if err := os.MkdirAll(home, 0700); err != nil {
		return nil, fmt.Errorf("ошибка создания директории %s: %w", home, err)
	}

	return &FileStore{
		sessionPath: filepath.Join(home, "session"),
		prefsPath:   filepath.Join(home, "preferences"),
	}, nil
}

// SaveSession сохраняет сессию в файл
func (fs *FileStore) SaveSession(session *Session) error {
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("ошибка сериализации сессии: %w", err)
	}

	if err := os.WriteFile(fs.sessionPath, data, 0600); err != nil {
		return fmt.Errorf("ошибка сохранения сессии: %w", err)
	}

	return nil
}

// LoadSession загружает сессию из файла
func (fs *FileStore) LoadSession() (*Session, error) {
	if _, err := os.Stat(fs.sessionPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("файл сессии не найден")
	}

	data, err := os.ReadFile(fs.sessionPath)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла сессии: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("ошибка десериализации сессии: %w", err)
	}

	return &session, nil
}

// HasSession проверяет наличие сохраненной сессии
func (fs *FileStore) HasSession() bool {
	_, err := os.Stat(fs.sessionPath)
	return !os.IsNotExist(err)
}

// ClearSession удаляет файл сессии
func (fs *FileStore) ClearSession() error {
	if err := os.Remove(fs.sessionPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("ошибка удаления файла сессии: %w", err)
	}
	return nil
}

// SetPreference сохраняет настройку. Настройки живут отдельным файлом
// и не очищаются при выходе из системы.
func (fs *FileStore) SetPreference(key, value string) error {
	prefs, err := fs.loadPreferences()
	if err != nil {
		return err
	}

	prefs[key] = value

	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("ошибка сериализации настроек: %w", err)
	}

	if err := os.WriteFile(fs.prefsPath, data, 0600); err != nil {
		return fmt.Errorf("ошибка сохранения настроек: %w", err)
	}

	return nil
}

// GetPreference возвращает значение настройки или пустую строку
func (fs *FileStore) GetPreference(key string) (string, error) {
	prefs, err := fs.loadPreferences()
	if err != nil {
		return "", err
	}
	return prefs[key], nil
}

// loadPreferences читает файл настроек
func (fs *FileStore) loadPreferences() (map[string]string, error) {
	prefs := make(map[string]string)

	if _, err := os.Stat(fs.prefsPath); os.IsNotExist(err) {
		return prefs, nil
	}

	data, err := os.ReadFile(fs.prefsPath)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла настроек: %w", err)
	}

	if err := json.Unmarshal(data, &prefs); err != nil {
		return nil, fmt.Errorf("ошибка десериализации настроек: %w", err)
	}

	return prefs, nil
}
