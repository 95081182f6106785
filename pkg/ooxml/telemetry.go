package ooxml

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Package-level tracer and meter. They are no-ops until the application
// installs an OpenTelemetry SDK.
var (
	tracer = otel.Tracer("github.com/benjaminschreck/go-ooxml")
	meter  = otel.Meter("github.com/benjaminschreck/go-ooxml")
)

var (
	parseLatency metric.Float64Histogram
	parseTotal   metric.Int64Counter
	parseErrors  metric.Int64Counter
	nodesBuilt   metric.Int64Histogram

	metricsOnce sync.Once
	metricsErr  error
)

func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		parseLatency, err = meter.Float64Histogram(
			"ooxml_parse_duration_seconds",
			metric.WithDescription("Duration of document tree builds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		parseTotal, err = meter.Int64Counter(
			"ooxml_parse_total",
			metric.WithDescription("Total number of document tree builds"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		parseErrors, err = meter.Int64Counter(
			"ooxml_parse_errors_total",
			metric.WithDescription("Document tree builds that failed"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		nodesBuilt, err = meter.Int64Histogram(
			"ooxml_nodes_built",
			metric.WithDescription("Nodes per built tree"),
		)
		if err != nil {
			metricsErr = err
		}
	})
	return metricsErr
}

// recordParseMetrics records one tree build.
func recordParseMetrics(ctx context.Context, part string, duration time.Duration, nodes int, err error) {
	if initMetrics() != nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("part", part),
		attribute.Bool("success", err == nil),
	)
	parseLatency.Record(ctx, duration.Seconds(), attrs)
	parseTotal.Add(ctx, 1, attrs)

	if err != nil {
		parseErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("part", part)))
		return
	}
	nodesBuilt.Record(ctx, int64(nodes), metric.WithAttributes(attribute.String("part", part)))
}

func startParseSpan(ctx context.Context, part string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "ooxml.ParseTree",
		trace.WithAttributes(attribute.String("ooxml.part", part)),
	)
}

// endParseSpan sets the result attributes and ends the span.
func endParseSpan(span trace.Span, nodes int, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.Int("ooxml.node_count", nodes))
	}
	span.End()
}
