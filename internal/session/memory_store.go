package session

import (
	"fmt"
	"sync"
)

// MemoryStore хранит сессию в памяти процесса. Эфемерная область:
// сессия пропадает вместе с завершением консоли.
type MemoryStore struct {
	mu      sync.RWMutex
	session *Session
	prefs   map[string]string
}

// NewMemoryStore создает новое хранилище сессии в памяти
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		prefs: make(map[string]string),
	}
}

// SaveSession сохраняет сессию в памяти
func (ms *MemoryStore) SaveSession(session *Session) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	copied := *session
	ms.session = &copied
	return nil
}

// LoadSession загружает сессию из памяти
func (ms *MemoryStore) LoadSession() (*Session, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	if ms.session == nil {
		return nil, fmt.Errorf("сессия не найдена")
	}

	copied := *ms.session
	return &copied, nil
}

// HasSession проверяет наличие сессии
func (ms *MemoryStore) HasSession() bool {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	return ms.session != nil
}

// ClearSession удаляет сессию из памяти
func (ms *MemoryStore) ClearSession() error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.session = nil
	return nil
}

// SetPreference сохраняет настройку в памяти
func (ms *MemoryStore) SetPreference(key, value string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.prefs[key] = value
	return nil
}

// GetPreference возвращает значение настройки или пустую строку
func (ms *MemoryStore) GetPreference(key string) (string, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	return ms.prefs[key], nil
}
