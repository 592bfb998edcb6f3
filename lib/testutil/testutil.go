package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// Telemetry is an in-memory meter provider installed as the otel global for
// the lifetime of a test.
type Telemetry struct {
	Metrics *sdkmetric.ManualReader
}

// SetupTelemetry replaces the global meter provider with an in-memory one.
// Tests using it must not run in parallel.
func SetupTelemetry(t testing.TB) Telemetry {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	t.Cleanup(func() {
		otel.SetMeterProvider(noop.NewMeterProvider())
		provider.Shutdown(context.Background())
	})
	return Telemetry{Metrics: reader}
}

// Counter returns the summed value of an int64 counter, 0 if it never
// recorded anything.
func (tel Telemetry) Counter(t testing.TB, name string) int64 {
	var rm metricdata.ResourceMetrics
	require.NoError(t, tel.Metrics.Collect(context.Background(), &rm))

	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "%s is not an int64 sum", name)
			var total int64
			for _, point := range sum.DataPoints {
				total += point.Value
			}
			return total
		}
	}
	return 0
}
