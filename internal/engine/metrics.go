package engine

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/louisbranch/randomix/internal/engine"

// metrics records engine activity against the global meter provider. The
// counters are no-ops until the host installs a metrics SDK.
type metrics struct {
	operations metric.Int64Counter
	rejections metric.Int64Counter
}

func newMetrics(reseeds func() int64) *metrics {
	meter := otel.Meter(meterName)
	operations, _ := meter.Int64Counter("randomix.operations",
		metric.WithDescription("Engine operations served, by tier and operation."))
	rejections, _ := meter.Int64Counter("randomix.sampling_rejections",
		metric.WithDescription("Candidates discarded by rejection sampling."))
	meter.Int64ObservableCounter("randomix.reseeds",
		metric.WithDescription("Automatic entropy reseeds of the secure tier."),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			o.Observe(reseeds())
			return nil
		}))
	return &metrics{operations: operations, rejections: rejections}
}

func (m *metrics) operation(t Tier, op string) {
	m.operations.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("tier", t.String()),
		attribute.String("operation", op),
	))
}

func (m *metrics) rejected(t Tier, op string, n int64) {
	if n <= 0 {
		return
	}
	m.rejections.Add(context.Background(), n, metric.WithAttributes(
		attribute.String("tier", t.String()),
		attribute.String("operation", op),
	))
}
