package observability

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestRedisMetricsHookLabelsStatusAndKeyspace(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = provider.Shutdown(ctx) }()

	hook, err := newRedisMetricsHook(provider.Meter("redis-test"), "lfp")
	if err != nil {
		t.Fatalf("new hook: %v", err)
	}
	client.AddHook(hook)

	if err := client.Set(ctx, "lfp:catalog:public.catalog:members", "[]", 0).Err(); err != nil {
		t.Fatalf("set: %v", err)
	}
	_ = client.Get(ctx, "lfp:catalog:public.catalog:members").Err()
	_ = client.Get(ctx, "lfp:login_guard:missing").Err()
	_ = client.Get(ctx, "unrelated").Err()

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}
	statuses := map[string]int64{}
	keyspaces := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "redis.commands" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("unexpected data type %T", m.Data)
			}
			for _, dp := range sum.DataPoints {
				status, _ := dp.Attributes.Value("status")
				statuses[status.AsString()] += dp.Value
				space, _ := dp.Attributes.Value("keyspace")
				keyspaces[space.AsString()] += dp.Value
			}
		}
	}
	if statuses["miss"] != 2 {
		t.Fatalf("expected two misses, got %+v", statuses)
	}
	if keyspaces["catalog"] != 2 || keyspaces["login_guard"] != 1 || keyspaces["other"] < 1 {
		t.Fatalf("unexpected keyspace split %+v", keyspaces)
	}
	if statuses["success"] < 2 {
		t.Fatalf("expected at least two successful commands, got %+v", statuses)
	}
}
