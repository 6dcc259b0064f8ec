package renderstream

import (
	"log/slog"
	"runtime"
	"time"

	"github.com/hupe1980/renderstream/internal/resource"
)

// ResourceController budgets lane memory, compile worker slots and trim
// cadence across managers.
type ResourceController = resource.Controller

// ResourceConfig configures a ResourceController.
type ResourceConfig = resource.Config

// NewResourceController creates a controller to share between managers.
func NewResourceController(cfg ResourceConfig) *ResourceController {
	return resource.NewController(cfg)
}

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	workers          int
	rc               *resource.Controller
	memoryLimit      int64
	maxTexelFactor   float32
	trimInterval     time.Duration
}

// Option configures a StaticManager or DynamicManager.
type Option func(*options)

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &renderstream.BasicMetricsCollector{}
//	m := renderstream.NewStaticManager(renderstream.WithMetricsCollector(metrics))
//	// ... use m ...
//	stats := metrics.GetStats()
//	fmt.Printf("Adds: %d, Avg latency: %dns\n", stats.AddCount, stats.AddAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := renderstream.NewJSONLogger(slog.LevelInfo)
//	m := renderstream.NewDynamicManager(renderstream.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithCompileWorkers caps the parallelism of element compilation and batch
// prepares. Defaults to GOMAXPROCS.
func WithCompileWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithResourceController shares a controller between managers so that lane
// memory and compile worker slots are budgeted together. It takes precedence
// over WithMemoryLimit and WithTrimInterval.
func WithResourceController(rc *ResourceController) Option {
	return func(o *options) {
		o.rc = rc
	}
}

// WithMemoryLimit caps the memory of the bounds table. Adds that need a new
// lane beyond the limit fail with AddFail.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.memoryLimit = bytes
	}
}

// WithMaxTexelFactor sets the density ceiling. A component with an entry
// whose texel factor exceeds it is rejected with AddFailDensityConstraint.
// Zero disables the check.
func WithMaxTexelFactor(ceiling float32) Option {
	return func(o *options) {
		o.maxTexelFactor = ceiling
	}
}

// WithTrimInterval sets the minimum interval between trims run by MaybeTrim.
// Zero lets every call trim.
func WithTrimInterval(d time.Duration) Option {
	return func(o *options) {
		o.trimInterval = d
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		workers:          runtime.GOMAXPROCS(0),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.workers <= 0 {
		o.workers = 1
	}
	if o.rc == nil {
		cfg := resource.Config{
			MemoryLimitBytes:     o.memoryLimit,
			MaxBackgroundWorkers: int64(o.workers),
		}
		if o.trimInterval > 0 {
			cfg.TrimsPerSecond = float64(time.Second) / float64(o.trimInterval)
		}
		o.rc = resource.NewController(cfg)
	}
	return o
}
