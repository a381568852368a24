package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisStore хранит сессию в Redis. Используется как долговременная
// область, когда несколько рабочих мест делят одну сессию оператора.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore создает новое хранилище сессии в Redis
func NewRedisStore(addr, password string, db int) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// Проверяем подключение
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("ошибка подключения к Redis: %w", err)
	}

	return &RedisStore{
		client: rdb,
		prefix: "healthora:console:",
	}, nil
}

// sessionKey возвращает ключ сессии
func (rs *RedisStore) sessionKey() string {
	return rs.prefix + "session"
}

// preferenceKey возвращает ключ настройки
func (rs *RedisStore) preferenceKey(key string) string {
	return rs.prefix + "preference:" + key
}

// SaveSession сохраняет сессию в Redis
func (rs *RedisStore) SaveSession(session *Session) error {
	ctx := context.Background()

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("ошибка сериализации сессии: %w", err)
	}

	if err := rs.client.Set(ctx, rs.sessionKey(), data, 0).Err(); err != nil {
		return fmt.Errorf("ошибка сохранения сессии в Redis: %w", err)
	}

	return nil
}

// LoadSession загружает сессию из Redis
func (rs *RedisStore) LoadSession() (*Session, error) {
	ctx := context.Background()

	data, err := rs.client.Get(ctx, rs.sessionKey()).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("сессия не найдена")
		}
		return nil, fmt.Errorf("ошибка загрузки сессии из Redis: %w", err)
	}

	var session Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("ошибка десериализации сессии: %w", err)
	}

	return &session, nil
}

// HasSession проверяет наличие сессии
func (rs *RedisStore) HasSession() bool {
	ctx := context.Background()

	_, err := rs.client.Get(ctx, rs.sessionKey()).Result()
	return err != redis.Nil
}

// ClearSession удаляет сессию из Redis
func (rs *RedisStore) ClearSession() error {
	ctx := context.Background()

	if err := rs.client.Del(ctx, rs.sessionKey()).Err(); err != nil {
		return fmt.Errorf("ошибка удаления сессии из Redis: %w", err)
	}

	return nil
}

// SetPreference сохраняет настройку в Redis
func (rs *RedisStore) SetPreference(key, value string) error {
	ctx := context.Background()

	if err := rs.client.Set(ctx, rs.preferenceKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("ошибка сохранения настройки в Redis: %w", err)
	}

	return nil
}

// GetPreference возвращает значение настройки или пустую строку
func (rs *RedisStore) GetPreference(key string) (string, error) {
	ctx := context.Background()

	value, err := rs.client.Get(ctx, rs.preferenceKey(key)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", fmt.Errorf("ошибка чтения настройки из Redis: %w", err)
	}

	return value, nil
}

// Close закрывает подключение к Redis
func (rs *RedisStore) Close() error {
	return rs.client.Close()
}
