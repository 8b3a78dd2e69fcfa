package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// SnapshotData captures the full learner state at a point in time.
type SnapshotData struct {
	Version  int           `json:"version"`
	Progress *ProgressData `json:"progress,omitempty"`
	Badges   *BadgesData   `json:"badges,omitempty"`
}

// ProgressData is the persisted form of the progress ledger.
type ProgressData struct {
	TotalXP       int                     `json:"total_xp"`
	Level         int                     `json:"level"`
	CurrentStreak int                     `json:"current_streak"`
	LongestStreak int                     `json:"longest_streak"`
	LastActiveDay string                  `json:"last_active_day,omitempty"` // YYYY-MM-DD
	Completed     []string                `json:"completed,omitempty"`
	Mastery       map[string]*MasteryData `json:"mastery,omitempty"`
}

// MasteryData is the quiz history for one algorithm.
type MasteryData struct {
	QuizScores []float64 `json:"quiz_scores"`
}

// BadgesData records which badges have been earned, keyed by badge key.
type BadgesData struct {
	Earned      map[string]string `json:"earned,omitempty"` // key -> RFC3339 time
	TotalCount  int               `json:"total_count"`
	CountByType map[string]int    `json:"count_by_type,omitempty"`
}

// Snapshot represents a point-in-time capture of learner state.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages learner state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}

// PlaybackEventData records a traversal starting or completing.
type PlaybackEventData struct {
	TraversalID string
	AlgorithmID string
	Action      string // "start" or "complete"
	Steps       int
	Speed       string
}

// XPEventData records an XP award and the resulting totals.
type XPEventData struct {
	Source      string // "completion", "quiz"
	AlgorithmID *string
	Amount      int
	TotalXP     int
	Level       int
}

// XPEventRecord is an XPEventData read back with its position in the log.
type XPEventRecord struct {
	XPEventData
	Sequence  int64
	Timestamp time.Time
}

// QuizEventData records a finished quiz.
type QuizEventData struct {
	QuizID      string
	AlgorithmID string
	Questions   int
	Correct     int
	Score       float64
	Source      string // "bank" or "llm"
}

// BadgeEventData records a badge award.
type BadgeEventData struct {
	BadgeType   string
	Rarity      string
	AlgorithmID *string
	Reason      string
}

// BadgeEventRecord is a BadgeEventData read back with its position in the log.
type BadgeEventRecord struct {
	BadgeEventData
	Sequence  int64
	Timestamp time.Time
}

// FlagEventData records an anomaly raised by the monitor.
type FlagEventData struct {
	Rule     string
	Severity string
	Reason   string
	Delta    int
	TotalXP  int
	Level    int
}

// FlagEventRecord is a FlagEventData read back with its position in the log.
type FlagEventRecord struct {
	FlagEventData
	Sequence  int64
	Timestamp time.Time
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMUsageStats aggregates LLM requests per purpose.
type LLMUsageStats struct {
	Purpose      string
	Requests     int
	InputTokens  int
	OutputTokens int
	Failures     int
}

// LLMModelUsage aggregates LLM token usage per model for cost estimates.
type LLMModelUsage struct {
	Model        string
	Requests     int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append access to domain events.
type EventRepo interface {
	// AppendPlaybackEvent records a traversal start or completion.
	AppendPlaybackEvent(ctx context.Context, data PlaybackEventData) error

	// CompletionCounts returns completed traversals per algorithm.
	CompletionCounts(ctx context.Context) (map[string]int, error)

	// AppendXPEvent records an XP award.
	AppendXPEvent(ctx context.Context, data XPEventData) error

	// QueryXPEvents returns XP events, newest first.
	QueryXPEvents(ctx context.Context, opts QueryOpts) ([]XPEventRecord, error)

	// AppendQuizEvent records a finished quiz.
	AppendQuizEvent(ctx context.Context, data QuizEventData) error

	// AppendBadgeEvent records a badge award.
	AppendBadgeEvent(ctx context.Context, data BadgeEventData) error

	// QueryBadgeEvents returns badge awards, newest first.
	QueryBadgeEvents(ctx context.Context, opts QueryOpts) ([]BadgeEventRecord, error)

	// BadgeCounts returns award counts by badge type and in total.
	BadgeCounts(ctx context.Context) (map[string]int, int, error)

	// AppendFlagEvent records a monitor flag.
	AppendFlagEvent(ctx context.Context, data FlagEventData) error

	// QueryFlagEvents returns monitor flags, newest first.
	QueryFlagEvents(ctx context.Context, opts QueryOpts) ([]FlagEventRecord, error)

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// LLMUsageByPurpose aggregates LLM requests per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)

	// LLMUsageByModel aggregates LLM requests per model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}
