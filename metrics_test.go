package renderstream

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/renderstream/internal/bounds"
	"github.com/hupe1980/renderstream/testutil"
)

func TestBasicMetricsCollector(t *testing.T) {
	b := &BasicMetricsCollector{}
	b.RecordAdd(AddSuccess, 3, 10*time.Nanosecond)
	b.RecordAdd(AddFail, 0, 20*time.Nanosecond)
	b.RecordAdd(AddFailDensityConstraint, 0, 30*time.Nanosecond)
	b.RecordRemove(2, time.Nanosecond)
	b.RecordCompile(7, 5*time.Nanosecond)
	b.RecordTrim(1, 2)

	s := b.GetStats()
	assert.Equal(t, int64(3), s.AddCount)
	assert.Equal(t, int64(2), s.AddFailed)
	assert.Equal(t, int64(1), s.AddDensityFailed)
	assert.Equal(t, int64(3), s.AddElements)
	assert.Equal(t, int64(20), s.AddAvgNanos)
	assert.Equal(t, int64(2), s.Unreferenced)
	assert.Equal(t, int64(7), s.CompileElements)
	assert.Equal(t, int64(5), s.CompileAvgNanos)
	assert.Equal(t, int64(1), s.TrimMoved)
	assert.Equal(t, int64(2), s.TrimLanes)

	assert.Equal(t, int64(0), (&BasicMetricsCollector{}).GetStats().AddAvgNanos)
}

func TestManagerMetricsAndLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	metrics := &BasicMetricsCollector{}
	m := NewStaticManager(WithLogger(logger), WithMetricsCollector(metrics))

	tex := testutil.NewTexture(1)
	for i := 1; i <= 8; i++ {
		m.AddComponent(testutil.NewComponent(ComponentID(i)).WithInfo(tex, 1))
	}
	m.AddComponent(testutil.NewComponent(99))
	for i := 5; i <= 8; i++ {
		m.RemoveComponent(ComponentID(i))
	}
	m.CompileElements()
	m.TrimBounds()

	s := metrics.GetStats()
	assert.Equal(t, int64(9), s.AddCount)
	assert.Equal(t, int64(1), s.AddFailed)
	assert.Equal(t, int64(4), s.RemoveCount)
	assert.Equal(t, int64(1), s.CompileCount)
	assert.Equal(t, int64(1), s.TrimCount)

	out := buf.String()
	assert.Contains(t, out, `"manager":"static"`)
	assert.Contains(t, out, `"kernel":"`+bounds.ActiveKernel().String()+`"`)
	assert.Contains(t, out, "add rejected")
	assert.Contains(t, out, "bounds compacted")
}

func TestOptions(t *testing.T) {
	o := applyOptions([]Option{nil, WithLogger(nil), WithMetricsCollector(nil), WithCompileWorkers(-1)})
	require.NotNil(t, o.logger)
	assert.IsType(t, NoopMetricsCollector{}, o.metricsCollector)
	assert.Equal(t, 1, o.workers)
	require.NotNil(t, o.rc)
	assert.Equal(t, 1, o.rc.MaxBackgroundWorkers())

	o = applyOptions([]Option{WithMemoryLimit(1 << 20), WithLogLevel(slog.LevelWarn)})
	assert.Equal(t, int64(1<<20), o.rc.MemoryLimit())
	assert.False(t, o.logger.Enabled(context.Background(), slog.LevelInfo))
}
