package notifier_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/aquagrid/aquagrid/internal/notifier"
)

func setupTestMeter(t *testing.T) *sdkmetric.ManualReader {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	prev := otel.GetMeterProvider()
	otel.SetMeterProvider(provider)
	t.Cleanup(func() { otel.SetMeterProvider(prev) })
	return reader
}

func collectMetricNames(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	metrics := make(map[string]metricdata.Metrics)
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			metrics[m.Name] = m
		}
	}
	return metrics
}

func TestNewDeliveryMetrics(t *testing.T) {
	m, err := notifier.NewDeliveryMetrics()
	require.NoError(t, err)
	assert.NotNil(t, m)
}

func TestDeliveryMetrics_RecordsPerChannel(t *testing.T) {
	reader := setupTestMeter(t)

	m, err := notifier.NewDeliveryMetrics()
	require.NoError(t, err)

	m.RecordDelivery("webhook", 10*time.Millisecond, nil)
	m.RecordDelivery("email", 2*time.Millisecond, errors.New("endpoint refused"))

	metrics := collectMetricNames(t, reader)
	require.Contains(t, metrics, "notify.delivery.duration")
	require.Contains(t, metrics, "notify.delivery.total")

	total, ok := metrics["notify.delivery.total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)

	var count int64
	for _, dp := range total.DataPoints {
		count += dp.Value
	}
	assert.Equal(t, int64(2), count)
}

func TestDeliveryMetrics_NilReceiverIsNoop(t *testing.T) {
	var m *notifier.DeliveryMetrics

	// Should not panic
	m.RecordDelivery("webhook", time.Millisecond, nil)
}

func TestChannelNotifier_RecordsDeliveryOutcome(t *testing.T) {
	reader := setupTestMeter(t)

	n := notifier.New(notifier.Config{Logger: zerolog.New(io.Discard)})

	err := n.Deliver(context.Background(), "email", notifier.Delivery{
		NotificationID: "ntf_1",
		SubscriberID:   "sub_1",
		Title:          "Zone moisture low",
	})
	require.NoError(t, err)

	metrics := collectMetricNames(t, reader)
	assert.Contains(t, metrics, "notify.delivery.total")
}
