package llm

import (
	"context"
	"log/slog"
	"time"

	"github.com/abhisek/algolab/internal/store"
)

// RecordingProvider appends every request to the event log and logs it.
// A failure to record never fails the request.
type RecordingProvider struct {
	delegate
	events store.EventRepo
	now    func() time.Time
}

// WithRecording wraps p. A nil repo only logs.
func WithRecording(p Provider, events store.EventRepo) Provider {
	return &RecordingProvider{delegate: delegate{p}, events: events, now: time.Now}
}

func (r *RecordingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := r.now()
	resp, err := r.inner.Generate(ctx, req)
	latency := r.now().Sub(start)

	data := store.LLMRequestEventData{
		Provider:  r.Name(),
		Model:     r.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: latency.Milliseconds(),
		Success:   err == nil,
	}
	attrs := []any{
		"provider", data.Provider,
		"purpose", data.Purpose,
		"latency", latency,
	}
	if resp != nil {
		data.Model = resp.Model
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		attrs = append(attrs, "input_tokens", data.InputTokens, "output_tokens", data.OutputTokens)
		if c, ok := LookupCost(resp.Model); ok {
			attrs = append(attrs, "cost_usd", c.Cost(resp.Usage))
		}
	}
	attrs = append(attrs, "model", data.Model)

	if err != nil {
		data.ErrorMessage = err.Error()
		slog.Warn("llm request failed", append(attrs, "error", err)...)
	} else {
		slog.Debug("llm request", attrs...)
	}

	if r.events != nil {
		if rerr := r.events.AppendLLMRequest(ctx, data); rerr != nil {
			slog.Warn("failed to record llm request", "error", rerr)
		}
	}
	return resp, err
}
