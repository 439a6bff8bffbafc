package statement

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hatlonely/busliste/log/logger"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type ObservableQueryerOptions struct {
	// EnableMetrics 是否启用指标收集
	EnableMetrics bool `cfg:"enableMetrics" def:"true"`

	// EnableLogging 是否记录每条语句
	EnableLogging bool `cfg:"enableLogging" def:"true"`

	// EnableTracing 是否为每条语句创建 span
	EnableTracing bool `cfg:"enableTracing" def:"false"`

	// Name 指标名前缀、日志 component 字段和 span 的 component 属性
	Name string `cfg:"name" def:"rdb"`

	// Registerer 为空时注册到默认 registry
	Registerer prometheus.Registerer `cfg:"-"`
}

// QueryMetrics 语句级别的 prometheus 指标
type QueryMetrics struct {
	statementCounter  *prometheus.CounterVec
	statementDuration *prometheus.HistogramVec
	activeStatements  *prometheus.GaugeVec
}

// NewQueryMetrics 创建并注册指标，同名指标已注册时复用
func NewQueryMetrics(name string, reg prometheus.Registerer) (*QueryMetrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	counter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: name + "_statements_total",
			Help: "Total number of executed statements",
		},
		[]string{"operation", "status"},
	)
	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    name + "_statement_duration_seconds",
			Help:    "Duration of statements in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
		[]string{"operation"},
	)
	active := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: name + "_active_statements",
			Help: "Number of statements in flight",
		},
		[]string{"operation"},
	)

	var err error
	metrics := &QueryMetrics{}
	if metrics.statementCounter, err = register(reg, counter); err != nil {
		return nil, err
	}
	if metrics.statementDuration, err = register(reg, duration); err != nil {
		return nil, err
	}
	if metrics.activeStatements, err = register(reg, active); err != nil {
		return nil, err
	}
	return metrics, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, errors.Wrap(err, "register metric failed")
	}
	return c, nil
}

// ObservableQueryer 为 DB 添加指标、日志和追踪
type ObservableQueryer struct {
	db DB

	logger        logger.Logger
	metrics       *QueryMetrics
	tracer        trace.Tracer
	name          string
	enableMetrics bool
	enableLogging bool
	enableTracing bool
}

func NewObservableQueryerWithOptions(db DB, log logger.Logger, options *ObservableQueryerOptions) (*ObservableQueryer, error) {
	if db == nil {
		return nil, errors.New("db is nil")
	}
	if options == nil {
		return nil, errors.New("options is nil")
	}

	obs := &ObservableQueryer{
		db:            db,
		name:          options.Name,
		enableMetrics: options.EnableMetrics,
		enableLogging: options.EnableLogging,
		enableTracing: options.EnableTracing,
	}

	if options.EnableLogging && log != nil {
		obs.logger = log.WithGroup("statement")
	}

	if options.EnableMetrics {
		metrics, err := NewQueryMetrics(options.Name, options.Registerer)
		if err != nil {
			return nil, errors.WithMessage(err, "failed to create metrics")
		}
		obs.metrics = metrics
	}

	if options.EnableTracing {
		obs.tracer = otel.Tracer(fmt.Sprintf("rdb.%s", options.Name))
	}

	return obs, nil
}

func (obs *ObservableQueryer) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	var rows *sql.Rows
	err := obs.observe(ctx, "query", query, func(ctx context.Context) error {
		var err error
		rows, err = obs.db.QueryContext(ctx, query, args...)
		return err
	})
	return rows, err
}

func (obs *ObservableQueryer) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	var result sql.Result
	err := obs.observe(ctx, "exec", query, func(ctx context.Context) error {
		var err error
		result, err = obs.db.ExecContext(ctx, query, args...)
		return err
	})
	return result, err
}

// observe 查询只统计到拿到 *sql.Rows 为止，逐行读取的耗时不计入
func (obs *ObservableQueryer) observe(ctx context.Context, operation string, query string, fn func(context.Context) error) error {
	start := time.Now()

	var span trace.Span
	if obs.enableTracing && obs.tracer != nil {
		ctx, span = obs.tracer.Start(ctx, fmt.Sprintf("rdb.%s", operation),
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(
				attribute.String("component", obs.name),
				attribute.String("db.operation", operation),
				attribute.String("db.statement", query),
			),
		)
		defer span.End()
	}

	if obs.enableMetrics && obs.metrics != nil {
		obs.metrics.activeStatements.WithLabelValues(operation).Inc()
		defer obs.metrics.activeStatements.WithLabelValues(operation).Dec()
	}

	err := fn(ctx)
	duration := time.Since(start)

	if span != nil {
		span.SetAttributes(attribute.Int64("duration_ms", duration.Milliseconds()))
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			span.RecordError(err)
		} else {
			span.SetStatus(codes.Ok, "")
		}
	}

	if obs.enableMetrics && obs.metrics != nil {
		status := "success"
		if err != nil {
			status = "error"
		}
		obs.metrics.statementCounter.WithLabelValues(operation, status).Inc()
		obs.metrics.statementDuration.WithLabelValues(operation).Observe(duration.Seconds())
	}

	if obs.enableLogging && obs.logger != nil {
		if err != nil {
			obs.logger.ErrorContext(ctx, "statement failed",
				"component", obs.name,
				"operation", operation,
				"statement", query,
				"duration_ms", duration.Milliseconds(),
				"error", err.Error(),
			)
		} else {
			obs.logger.DebugContext(ctx, "statement completed",
				"component", obs.name,
				"operation", operation,
				"statement", query,
				"duration_ms", duration.Milliseconds(),
			)
		}
	}

	return err
}
