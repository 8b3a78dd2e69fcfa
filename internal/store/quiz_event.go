package store

import (
	"context"
	"fmt"
)

func (r *eventRepo) AppendQuizEvent(ctx context.Context, data QuizEventData) error {
	err := r.insert(ctx, QuizEventsTable.Name,
		[]string{"quiz_id", "algorithm_id", "questions", "correct", "score", "source"},
		data.QuizID, data.AlgorithmID, data.Questions, data.Correct, data.Score, data.Source,
	)
	if err != nil {
		return fmt.Errorf("save quiz event: %w", err)
	}
	return nil
}
