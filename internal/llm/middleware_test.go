package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/abhisek/algolab/internal/store"
)

func fastRetry(p Provider) (*RetryProvider, *[]time.Duration) {
	var waits []time.Duration
	r := WithRetry(p, RetryConfig{
		MaxAttempts: 3,
		InitialWait: 100 * time.Millisecond,
		MaxWait:     time.Second,
		Multiplier:  2,
	}).(*RetryProvider)
	r.sleep = func(ctx context.Context, d time.Duration) error {
		waits = append(waits, d)
		return ctx.Err()
	}
	return r, &waits
}

func down() MockResponse { return MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}} }
func ok() MockResponse   { return MockResponse{Content: json.RawMessage(`{"ok":true}`)} }

func TestRetry(t *testing.T) {
	tests := []struct {
		name      string
		responses []MockResponse
		wantErr   bool
		wantCalls int
	}{
		{"first attempt", []MockResponse{ok()}, false, 1},
		{"transient then success", []MockResponse{down(), ok()}, false, 2},
		{"all attempts fail", []MockResponse{down(), down(), down(), ok()}, true, 3},
		{"truncation not retried", []MockResponse{{Err: &ErrMaxTokensExceeded{}}, ok()}, true, 1},
		{"invalid retried once", []MockResponse{
			{Err: &ErrInvalidResponse{Err: errors.New("bad")}},
			{Err: &ErrInvalidResponse{Err: errors.New("bad")}},
			ok(),
		}, true, 2},
		{"canceled not retried", []MockResponse{{Err: context.Canceled}, ok()}, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.responses...)
			r, _ := fastRetry(mock)
			_, err := r.Generate(context.Background(), Request{})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantCalls, mock.CallCount())
		})
	}
}

func TestRetry_Backoff(t *testing.T) {
	r, waits := fastRetry(NewMockProvider(down(), down(), ok()))
	_, err := r.Generate(context.Background(), Request{})
	require.NoError(t, err)
	require.Len(t, *waits, 2)
	assert.InDelta(t, float64(100*time.Millisecond), float64((*waits)[0]), float64(20*time.Millisecond))
	assert.InDelta(t, float64(200*time.Millisecond), float64((*waits)[1]), float64(40*time.Millisecond))
}

func TestRetry_RateLimitRetryAfter(t *testing.T) {
	r, waits := fastRetry(NewMockProvider(MockResponse{Err: &ErrRateLimit{RetryAfter: 3 * time.Second}}, ok()))
	_, err := r.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{3 * time.Second}, *waits)
}

func TestRetry_ContextCanceledWhileWaiting(t *testing.T) {
	mock := NewMockProvider(down(), ok())
	r, _ := fastRetry(mock)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, mock.CallCount())
}

func TestMockProvider(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 3}})
	resp, err := mock.Generate(context.Background(), Request{System: "sys"})
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(resp.Content))
	assert.Equal(t, 3, resp.Usage.InputTokens)
	assert.Equal(t, "sys", mock.Calls()[0].System)

	_, err = mock.Generate(context.Background(), Request{})
	var unavailable *ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavailable)

	mock.Enqueue(MockResponse{Content: json.RawMessage(`{"prompt":"x"}`)})
	_, err = mock.Generate(context.Background(), Request{Schema: questionSchema()})
	var inv *ErrInvalidResponse
	assert.ErrorAs(t, err, &inv, "mock validates against the schema")
}

type llmEvents struct {
	store.EventRepo
	events []store.LLMRequestEventData
	err    error
}

func (e *llmEvents) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	e.events = append(e.events, data)
	return e.err
}

func TestRecording(t *testing.T) {
	events := &llmEvents{}
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`), Usage: Usage{InputTokens: 9, OutputTokens: 4}}, down())
	p := WithRecording(mock, events)
	ctx := WithPurpose(context.Background(), PurposeQuiz)

	_, err := p.Generate(ctx, Request{})
	require.NoError(t, err)
	_, err = p.Generate(ctx, Request{})
	require.Error(t, err)

	require.Len(t, events.events, 2)
	first := events.events[0]
	assert.Equal(t, "mock", first.Provider)
	assert.Equal(t, "quiz", first.Purpose)
	assert.Equal(t, 9, first.InputTokens)
	assert.True(t, first.Success)
	assert.False(t, events.events[1].Success)
	assert.Contains(t, events.events[1].ErrorMessage, "down")
}

func TestRecording_StoreFailureIsIgnored(t *testing.T) {
	events := &llmEvents{err: errors.New("disk full")}
	p := WithRecording(NewMockProvider(ok()), events)
	_, err := p.Generate(context.Background(), Request{})
	assert.NoError(t, err)
}

func TestTracing(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	p := WithTracing(NewMockProvider(ok(), down()))
	ctx := WithPurpose(context.Background(), PurposeQuiz)
	_, _ = p.Generate(ctx, Request{MaxTokens: 64})
	_, _ = p.Generate(ctx, Request{})

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, "llm.Generate", spans[0].Name)
	assert.Equal(t, codes.Unset, spans[0].Status.Code)
	assert.Equal(t, codes.Error, spans[1].Status.Code)

	attrs := map[string]string{}
	for _, kv := range spans[0].Attributes {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "quiz", attrs["llm.purpose"])
	assert.Equal(t, "mock", attrs["llm.provider"])
}

func TestPurpose(t *testing.T) {
	assert.Equal(t, PurposeUnknown, PurposeFrom(context.Background()))
	assert.Equal(t, PurposeQuiz, PurposeFrom(WithPurpose(context.Background(), PurposeQuiz)))
}

func TestCost(t *testing.T) {
	c, ok := LookupCost("gpt-4o-mini")
	require.True(t, ok)
	assert.InDelta(t, 0.00075, c.Cost(Usage{InputTokens: 1000, OutputTokens: 1000}), 1e-9)
	_, ok = LookupCost("nope")
	assert.False(t, ok)
}
