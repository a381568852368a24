package dashboard

import (
	"context"
	"sync"

	"HealthoraConsole/internal/access"
	"HealthoraConsole/internal/client"
	"HealthoraConsole/pkg/logger"
)

// Backend описывает чтения бэкенда, нужные дашборду
type Backend interface {
	DashboardSummary(ctx context.Context) (*client.DashboardSummary, error)
	DashboardExpiry(ctx context.Context) ([]client.ExpiryRow, error)
	DashboardNotifications(ctx context.Context) ([]string, error)
	DashboardAccess(ctx context.Context) (*client.DashboardAccess, error)
	Me(ctx context.Context) (*client.UserProfile, error)
}

// Snapshot представляет собранное состояние дашборда
type Snapshot struct {
	Summary       *client.DashboardSummary
	Expiry        []client.ExpiryRow
	Notifications []string
	Access        *client.DashboardAccess
	Profile       *client.UserProfile
	Gate          *access.Gate
}

// Aggregator собирает данные дашборда параллельными запросами к бэкенду.
// Ошибка любого запроса прерывает загрузку целиком: частичные данные
// не показываются и повторных попыток нет.
type Aggregator struct {
	backend Backend
	logger  logger.Logger
}

// NewAggregator создает новый агрегатор дашборда
func NewAggregator(backend Backend, log logger.Logger) *Aggregator {
	return &Aggregator{
		backend: backend,
		logger:  log,
	}
}

// Load выполняет пять чтений параллельно и возвращает снимок состояния.
// Используется и для первичной загрузки, и для обновления после любой
// мутации, чтобы показанные агрегаты соответствовали последней записи.
func (a *Aggregator) Load(ctx context.Context) (*Snapshot, error) {
	snapshot := &Snapshot{}

	var wg sync.WaitGroup
	errs := make([]error, 5)

	wg.Add(5)

	go func() {
		defer wg.Done()
		snapshot.Summary, errs[0] = a.backend.DashboardSummary(ctx)
	}()

	go func() {
		defer wg.Done()
		snapshot.Expiry, errs[1] = a.backend.DashboardExpiry(ctx)
	}()

	go func() {
		defer wg.Done()
		snapshot.Notifications, errs[2] = a.backend.DashboardNotifications(ctx)
	}()

	go func() {
		defer wg.Done()
		snapshot.Access, errs[3] = a.backend.DashboardAccess(ctx)
	}()

	go func() {
		defer wg.Done()
		snapshot.Profile, errs[4] = a.backend.Me(ctx)
	}()

	wg.Wait()

	// Возвращаем первую ошибку в порядке запросов
	for _, err := range errs {
		if err != nil {
			a.logger.Error("ошибка загрузки дашборда", logger.Error(err))
			return nil, err
		}
	}

	snapshot.Gate = access.NewGate(snapshot.Access.Permissions, snapshot.Access.Modules)

	a.logger.Debug("дашборд загружен",
		logger.String("role", snapshot.Access.Role),
		logger.Int("expiry_rows", len(snapshot.Expiry)),
		logger.Int("notifications", len(snapshot.Notifications)))

	return snapshot, nil
}
