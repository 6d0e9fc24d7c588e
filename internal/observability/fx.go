package observability

import (
	"github.com/clearlead/decisio/internal/observability/metrics"
	"github.com/clearlead/decisio/internal/observability/tracing"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/fx"
)

var Module = fx.Module("observability",
	fx.Provide(
		metrics.NewHTTPMetrics,
		tracing.NewProvider,
	),
	fx.Invoke(ensureTracingProvider),
)

func ensureTracingProvider(_ *sdktrace.TracerProvider) {}
