package session

import (
	"HealthoraConsole/pkg/errors"
	"HealthoraConsole/pkg/logger"
)

// Manager управляет сессией поверх двух областей хранения.
// При входе сессия пишется ровно в одну область: долговременную при
// установленном флаге remember, иначе эфемерную. Чтение сначала смотрит
// в долговременную область, затем в эфемерную. Выход очищает обе,
// чтобы токен не оставался в невыбранной области.
type Manager struct {
	durable   Scope
	ephemeral Scope
	logger    logger.Logger
}

// NewManager создает новый менеджер сессии
func NewManager(durable, ephemeral Scope, log logger.Logger) *Manager {
	return &Manager{
		durable:   durable,
		ephemeral: ephemeral,
		logger:    log,
	}
}

// Login сохраняет сессию в выбранную область
func (m *Manager) Login(session *Session, remember bool) error {
	scope := m.ephemeral
	scopeName := "ephemeral"
	if remember {
		scope = m.durable
		scopeName = "durable"
	}

	if err := scope.SaveSession(session); err != nil {
		m.logger.Error("ошибка сохранения сессии",
			logger.String("scope", scopeName),
			logger.Error(err))
		return errors.Wrap(err, errors.ErrInternal, "ошибка сохранения сессии")
	}

	m.logger.Info("сессия сохранена",
		logger.String("username", session.Username),
		logger.String("role", session.Role),
		logger.String("scope", scopeName))

	return nil
}

// Current возвращает текущую сессию
func (m *Manager) Current() (*Session, error) {
	if m.durable.HasSession() {
		return m.durable.LoadSession()
	}

	if m.ephemeral.HasSession() {
		return m.ephemeral.LoadSession()
	}

	return nil, errors.New(errors.ErrUnauthorized, "сессия не найдена, выполните вход")
}

// IsAuthenticated проверяет наличие сессии в любой из областей
func (m *Manager) IsAuthenticated() bool {
	return m.durable.HasSession() || m.ephemeral.HasSession()
}

// AccessToken возвращает токен текущей сессии или пустую строку.
// Реализует client.TokenSource.
func (m *Manager) AccessToken() string {
	if session, err := m.Current(); err == nil {
		return session.Token
	}
	return ""
}

// Logout безусловно очищает обе области хранения
func (m *Manager) Logout() error {
	durableErr := m.durable.ClearSession()
	ephemeralErr := m.ephemeral.ClearSession()

	if durableErr != nil {
		return errors.Wrap(durableErr, errors.ErrInternal, "ошибка очистки долговременной области")
	}
	if ephemeralErr != nil {
		return errors.Wrap(ephemeralErr, errors.ErrInternal, "ошибка очистки эфемерной области")
	}

	m.logger.Info("сессия завершена, обе области очищены")

	return nil
}

// SetSystemName сохраняет название системы в настройках
func (m *Manager) SetSystemName(name string) error {
	return m.durable.SetPreference(PreferenceSystemName, name)
}

// SystemName возвращает сохраненное название системы
func (m *Manager) SystemName() (string, error) {
	return m.durable.GetPreference(PreferenceSystemName)
}
