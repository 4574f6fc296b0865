package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// Provider owns an in-process meter provider. Totals are read on demand
// through a manual reader and written to the log at shutdown.
type Provider struct {
	mp     *sdkmetric.MeterProvider
	reader *sdkmetric.ManualReader
}

// NewProvider creates a meter provider and installs it globally, so a
// Recorder built with a nil meter reports to it.
func NewProvider() *Provider {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(mp)
	return &Provider{mp: mp, reader: reader}
}

// Totals collects every int64 metric point as "name{attr=value,...}" keys.
func (p *Provider) Totals(ctx context.Context) (map[string]int64, error) {
	var rm metricdata.ResourceMetrics
	if err := p.reader.Collect(ctx, &rm); err != nil {
		return nil, fmt.Errorf("collecting metrics: %w", err)
	}
	out := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					out[pointKey(m.Name, dp.Attributes)] += dp.Value
				}
			case metricdata.Gauge[int64]:
				for _, dp := range data.DataPoints {
					out[pointKey(m.Name, dp.Attributes)] = dp.Value
				}
			}
		}
	}
	return out, nil
}

func pointKey(name string, set attribute.Set) string {
	if set.Len() == 0 {
		return name
	}
	key := name + "{"
	for i, kv := range set.ToSlice() {
		if i > 0 {
			key += ","
		}
		key += string(kv.Key) + "=" + kv.Value.Emit()
	}
	return key + "}"
}

// Shutdown logs the final totals and stops the provider.
func (p *Provider) Shutdown(ctx context.Context, logger *slog.Logger) error {
	totals, err := p.Totals(ctx)
	if err != nil {
		logger.Warn("Reading final metrics", "error", err)
	} else {
		keys := make([]string, 0, len(totals))
		for k := range totals {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			logger.Info("Metric total", "metric", k, "value", totals[k])
		}
	}
	if err := p.mp.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down meter provider: %w", err)
	}
	return nil
}
