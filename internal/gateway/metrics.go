package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/openkcm/common-sdk/pkg/otlp"
	"github.com/samber/oops"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/stockyodha/terminal/internal/config"
)

var (
	counter   metric.Int64Counter
	hist      metric.Int64Histogram
	refreshes metric.Int64Counter
)

// InitMeters creates the outgoing request meters. Without it the gateway
// still works, it just records nothing.
func InitMeters(ctx context.Context, cfg *config.Config) error {
	meter := otel.Meter(
		"stockyodha/"+cfg.Application.Name,
		metric.WithInstrumentationVersion(otel.Version()),
		metric.WithInstrumentationAttributes(otlp.CreateAttributesFrom(cfg.Application)...),
	)

	var err error

	counter, err = meter.Int64Counter(
		"api.request_count",
		metric.WithDescription("Outgoing platform request count"),
		metric.WithUnit("request"),
	)
	if err != nil {
		return oops.In("API Gateway").
			WithContext(ctx).
			Wrapf(err, "creating request_count meter")
	}

	hist, err = meter.Int64Histogram(
		"api.duration",
		metric.WithDescription("Outgoing end to end duration"),
		metric.WithUnit("milliseconds"),
	)
	if err != nil {
		return oops.In("API Gateway").
			WithContext(ctx).
			Wrapf(err, "creating duration meter")
	}

	refreshes, err = meter.Int64Counter(
		"auth.refresh_count",
		metric.WithDescription("Token refresh attempts by outcome"),
		metric.WithUnit("attempt"),
	)
	if err != nil {
		return oops.In("API Gateway").
			WithContext(ctx).
			Wrapf(err, "creating refresh_count meter")
	}

	return nil
}

func recordRequest(ctx context.Context, req *http.Request, resp *http.Response, elapsed time.Duration, err error) {
	if counter == nil || hist == nil {
		return
	}

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}

	attrs := metric.WithAttributes(
		attribute.String("method", req.Method),
		attribute.String("path", req.URL.Path),
		attribute.Int("status", status),
		attribute.Bool("transport_error", err != nil),
	)

	counter.Add(ctx, 1, attrs)
	hist.Record(ctx, elapsed.Milliseconds(), attrs)
}

func recordRefresh(ctx context.Context, err error) {
	if refreshes == nil {
		return
	}

	outcome := "success"
	if err != nil {
		outcome = "failure"
	}

	refreshes.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
