package llm

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/abhisek/algolab/internal/llm"

// TracingProvider opens one span per Generate call. Spans go to the global
// tracer provider, which is a no-op unless telemetry is configured.
type TracingProvider struct {
	delegate
	tracer trace.Tracer
}

// WithTracing wraps p.
func WithTracing(p Provider) Provider {
	return &TracingProvider{delegate: delegate{p}, tracer: otel.Tracer(tracerName)}
}

func (t *TracingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	attrs := []attribute.KeyValue{
		attribute.String("llm.provider", t.Name()),
		attribute.String("llm.model", t.ModelID()),
		attribute.String("llm.purpose", PurposeFrom(ctx)),
		attribute.Int("llm.max_tokens", req.MaxTokens),
	}
	if req.Schema != nil {
		attrs = append(attrs, attribute.String("llm.schema", req.Schema.Name))
	}
	ctx, span := t.tracer.Start(ctx, "llm.Generate", trace.WithAttributes(attrs...))
	defer span.End()

	resp, err := t.inner.Generate(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("llm.input_tokens", resp.Usage.InputTokens),
		attribute.Int("llm.output_tokens", resp.Usage.OutputTokens),
	)
	return resp, nil
}
