package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	var errMsg any
	if data.ErrorMessage != "" {
		errMsg = data.ErrorMessage
	}
	err := r.insert(ctx, LLMRequestEventsTable.Name,
		[]string{"provider", "model", "purpose", "input_tokens", "output_tokens", "latency_ms", "success", "error_message"},
		data.Provider, data.Model, data.Purpose, data.InputTokens, data.OutputTokens, data.LatencyMs, data.Success, errMsg,
	)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error) {
	sel := builder().
		Select(
			"purpose",
			entsql.Count("*"),
			entsql.Sum("input_tokens"),
			entsql.Sum("output_tokens"),
			"SUM(CASE WHEN success THEN 0 ELSE 1 END)",
		).
		From(entsql.Table(LLMRequestEventsTable.Name)).
		GroupBy("purpose").
		OrderBy("purpose")

	var stats []LLMUsageStats
	err := r.queryRows(ctx, sel, func(rows *sql.Rows) error {
		var s LLMUsageStats
		if err := rows.Scan(&s.Purpose, &s.Requests, &s.InputTokens, &s.OutputTokens, &s.Failures); err != nil {
			return err
		}
		stats = append(stats, s)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query LLM usage: %w", err)
	}
	return stats, nil
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error) {
	sel := builder().
		Select(
			"model",
			entsql.Count("*"),
			entsql.Sum("input_tokens"),
			entsql.Sum("output_tokens"),
		).
		From(entsql.Table(LLMRequestEventsTable.Name)).
		GroupBy("model").
		OrderBy("model")

	var usage []LLMModelUsage
	err := r.queryRows(ctx, sel, func(rows *sql.Rows) error {
		var u LLMModelUsage
		if err := rows.Scan(&u.Model, &u.Requests, &u.InputTokens, &u.OutputTokens); err != nil {
			return err
		}
		usage = append(usage, u)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query LLM model usage: %w", err)
	}
	return usage, nil
}
