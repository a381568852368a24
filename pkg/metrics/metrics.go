package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.opentelemetry.io/otel/trace"
)

// Metrics представляет систему метрик консоли
type Metrics struct {
	// Счетчики выполнения команд
	CommandCount    *prometheus.CounterVec
	CommandDuration *prometheus.HistogramVec

	// Счетчики запросов к API бэкенда
	APIRequestCount    *prometheus.CounterVec
	APIRequestDuration *prometheus.HistogramVec
	ErrorsCount        *prometheus.CounterVec

	// OpenTelemetry Tracer
	Tracer trace.Tracer `json:"-"`
}

// NewMetrics создает новую систему метрик
func NewMetrics(serviceName string) *Metrics {
	commandCount := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "cli",
			Name:      "commands_total",
			Help:      "Total number of executed commands",
		},
		[]string{"command", "status"},
	)

	commandDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: serviceName,
			Subsystem: "cli",
			Name:      "command_duration_seconds",
			Help:      "Duration of command execution in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"command"},
	)

	apiRequestCount := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of backend API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	apiRequestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: serviceName,
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Duration of backend API requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	errorsCount := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "api",
			Name:      "errors_total",
			Help:      "Total number of backend API errors",
		},
		[]string{"method", "endpoint", "error_type"},
	)

	// Регистрируем метрики в Prometheus
	collectors := []prometheus.Collector{
		commandCount, commandDuration, apiRequestCount, apiRequestDuration, errorsCount,
	}
	for _, collector := range collectors {
		if err := prometheus.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				panic(err)
			}
		}
	}

	tracer := otel.Tracer(serviceName)

	return &Metrics{
		CommandCount:       commandCount,
		CommandDuration:    commandDuration,
		APIRequestCount:    apiRequestCount,
		APIRequestDuration: apiRequestDuration,
		ErrorsCount:        errorsCount,
		Tracer:             tracer,
	}
}

// GetHandler возвращает HTTP обработчик для эндпоинта /metrics
func (m *Metrics) GetHandler() http.Handler {
	return promhttp.Handler()
}

// CommandExecuted регистрирует выполнение команды
func (m *Metrics) CommandExecuted(command string, success bool, duration time.Duration) {
	m.CommandCount.WithLabelValues(command, statusLabel(success)).Inc()
	m.CommandDuration.WithLabelValues(command).Observe(duration.Seconds())
}

// APIRequest регистрирует запрос к API бэкенда
func (m *Metrics) APIRequest(ctx context.Context, method, endpoint string, statusCode int, duration time.Duration) {
	m.APIRequestCount.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	m.APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())

	if statusCode >= 400 {
		errorType := "client_error"
		if statusCode >= 500 {
			errorType = "server_error"
		}
		m.ErrorsCount.WithLabelValues(method, endpoint, errorType).Inc()
	}
}

// StartSpan начинает трассировку запроса к API
func (m *Metrics) StartSpan(ctx context.Context, method, endpoint string) (context.Context, trace.Span) {
	ctx, span := m.Tracer.Start(ctx, endpoint)
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("http.target", endpoint),
	)
	return ctx, span
}

// InitializeOpenTelemetry инициализирует OpenTelemetry с базовым провайдером
func InitializeOpenTelemetry(serviceName, version string) error {
	tp := tracesdk.NewTracerProvider(
		tracesdk.WithSampler(tracesdk.AlwaysSample()),
		tracesdk.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String(version),
		)),
	)

	otel.SetTracerProvider(tp)

	return nil
}

// statusLabel возвращает метку статуса
func statusLabel(success bool) string {
	if success {
		return "success"
	}
	return "error"
}

// CommandTimer измеряет время выполнения команды
type CommandTimer struct {
	metrics *Metrics
	command string
	start   time.Time
}

// NewCommandTimer создает новый таймер команды
func (m *Metrics) NewCommandTimer(command string) *CommandTimer {
	return &CommandTimer{
		metrics: m,
		command: command,
		start:   time.Now(),
	}
}

// Finish завершает команду и регистрирует метрики
func (t *CommandTimer) Finish(success bool) {
	t.metrics.CommandExecuted(t.command, success, time.Since(t.start))
}
