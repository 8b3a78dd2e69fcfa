package algorithms

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/abhisek/algolab/internal/step"
)

const tracerName = "github.com/abhisek/algolab/internal/algorithms"

// GenerateContext is Generate inside an "algorithms.Generate" span.
func GenerateContext(ctx context.Context, id ID, in Input) *step.Sequence {
	a := Resolve(id)
	_, span := otel.Tracer(tracerName).Start(ctx, "algorithms.Generate")
	defer span.End()

	seq := a.Generate(in)
	span.SetAttributes(
		attribute.String("algorithm.id", string(a.ID)),
		attribute.String("algorithm.family", string(a.Family)),
		attribute.Int("algorithm.input_len", len(in.Array)),
		attribute.Int("algorithm.steps", seq.Len()),
	)
	return seq
}
