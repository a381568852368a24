package session

// Session представляет аутентифицированную сессию пользователя
type Session struct {
	Token       string `json:"token"`
	Username    string `json:"username"`
	Role        string `json:"role"`
	DisplayName string `json:"display_name"`
}

// Ключ настройки с названием системы, хранится отдельно от сессии
const PreferenceSystemName = "systemName"

// Scope представляет именованную область хранения сессии.
// Долговременная область переживает перезапуск консоли (файл или Redis),
// эфемерная живет только внутри процесса.
type Scope interface {
	SaveSession(session *Session) error
	LoadSession() (*Session, error)
	HasSession() bool
	ClearSession() error
	SetPreference(key, value string) error
	GetPreference(key string) (string, error)
}
