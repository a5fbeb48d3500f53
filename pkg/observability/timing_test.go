package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimer_Stop(t *testing.T) {
	metrics := NewInMemoryMetrics()

	timer := StartTimer("task.create").WithMetrics(metrics)
	duration := timer.Stop()

	assert.GreaterOrEqual(t, duration, time.Duration(0))
	assert.Equal(t, int64(1), metrics.GetCounter(MetricOperationTotal, T("operation", "task.create")))
	assert.Equal(t, int64(0), metrics.GetCounter(MetricOperationErrors, T("operation", "task.create")))
	assert.Len(t, metrics.GetTimings(MetricOperationDuration, T("operation", "task.create")), 1)
}

func TestTimer_StopWithError(t *testing.T) {
	metrics := NewInMemoryMetrics()

	timer := StartTimer("task.create").WithMetrics(metrics)
	timer.StopWithError(errors.New("boom"))

	assert.Equal(t, int64(1), metrics.GetCounter(MetricOperationTotal, T("operation", "task.create")))
	assert.Equal(t, int64(1), metrics.GetCounter(MetricOperationErrors, T("operation", "task.create")))
}

func TestTimer_WithTags(t *testing.T) {
	metrics := NewInMemoryMetrics()

	StartTimer("query").
		WithMetrics(metrics).
		WithTags(T("driver", "sqlite")).
		Stop()

	assert.Equal(t, int64(1), metrics.GetCounter(
		MetricOperationTotal,
		T("driver", "sqlite"), T("operation", "query"),
	))
}

func TestTimeOperation(t *testing.T) {
	t.Run("passes the result through", func(t *testing.T) {
		metrics := NewInMemoryMetrics()

		err := TimeOperation(context.Background(), nil, metrics, "migrate", func() error {
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, int64(1), metrics.GetCounter(MetricOperationTotal, T("operation", "migrate")))
	})

	t.Run("reports the failure", func(t *testing.T) {
		metrics := NewInMemoryMetrics()
		opErr := errors.New("migration failed")

		err := TimeOperation(context.Background(), nil, metrics, "migrate", func() error {
			return opErr
		})

		require.ErrorIs(t, err, opErr)
		assert.Equal(t, int64(1), metrics.GetCounter(MetricOperationErrors, T("operation", "migrate")))
	})
}
