package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	meter = otel.Meter("zozoapp")

	repositoryOps  metric.Int64Counter
	scanEvents     metric.Int64Counter
	checkoutEvents metric.Int64Counter
	webhookEvents  metric.Int64Counter
)

func init() {
	repositoryOps, _ = meter.Int64Counter("repository_operations_total",
		metric.WithDescription("Repository operations by entity, operation and outcome"))
	scanEvents, _ = meter.Int64Counter("scan_events_total",
		metric.WithDescription("Scan resolutions by outcome"))
	checkoutEvents, _ = meter.Int64Counter("checkout_events_total",
		metric.WithDescription("Checkout session creations by outcome"))
	webhookEvents, _ = meter.Int64Counter("webhook_events_total",
		metric.WithDescription("Stripe webhook deliveries by type and outcome"))
}

func RecordRepositoryOperation(ctx context.Context, entity, op, outcome string) {
	if repositoryOps == nil {
		return
	}
	repositoryOps.Add(ctx, 1, metric.WithAttributes(
		attribute.String("entity", entity),
		attribute.String("operation", op),
		attribute.String("outcome", outcome),
	))
}

func RecordScanEvent(ctx context.Context, outcome string) {
	if scanEvents == nil {
		return
	}
	scanEvents.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func RecordCheckoutEvent(ctx context.Context, outcome string) {
	if checkoutEvents == nil {
		return
	}
	checkoutEvents.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func RecordWebhookEvent(ctx context.Context, eventType, outcome string) {
	if webhookEvents == nil {
		return
	}
	webhookEvents.Add(ctx, 1, metric.WithAttributes(
		attribute.String("type", eventType),
		attribute.String("outcome", outcome),
	))
}
