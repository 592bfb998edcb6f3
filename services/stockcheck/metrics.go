package stockcheck

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

type counters struct {
	stores     metric.Int64Counter
	resolved   metric.Int64Counter
	unresolved metric.Int64Counter
	checks     metric.Int64Counter
	found      metric.Int64Counter
}

// newCounters resolves the meter from the global provider at call time, so
// a service built after telemetry setup reports to it.
func newCounters() counters {
	meter := otel.GetMeterProvider().Meter("services/stockcheck")
	// the otel api hands back no-op instruments alongside any error
	stores, _ := meter.Int64Counter("stockcheck.stores_located")
	resolved, _ := meter.Int64Counter("stockcheck.books_resolved")
	unresolved, _ := meter.Int64Counter("stockcheck.books_unresolved")
	checks, _ := meter.Int64Counter("stockcheck.availability_checks")
	found, _ := meter.Int64Counter("stockcheck.availability_found")
	return counters{
		stores:     stores,
		resolved:   resolved,
		unresolved: unresolved,
		checks:     checks,
		found:      found,
	}
}
