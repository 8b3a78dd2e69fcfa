package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Event tables share the same leading columns: an auto-increment id, the
// global sequence number, and a UTC timestamp in unix milliseconds.
func eventTable(name string, cols ...*schema.Column) *schema.Table {
	columns := append([]*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeInt64},
	}, cols...)
	return &schema.Table{
		Name:       name,
		Columns:    columns,
		PrimaryKey: []*schema.Column{columns[0]},
		Indexes: []*schema.Index{
			{Name: name + "_timestamp", Columns: []*schema.Column{columns[2]}},
		},
	}
}

var (
	// SnapshotsTable holds JSON-encoded SnapshotData.
	SnapshotsTable = &schema.Table{
		Name: "snapshots",
		Columns: []*schema.Column{
			{Name: "id", Type: field.TypeInt, Increment: true},
			{Name: "sequence", Type: field.TypeInt64},
			{Name: "timestamp", Type: field.TypeInt64},
			{Name: "data", Type: field.TypeString, Size: 2147483647},
		},
	}

	PlaybackEventsTable = eventTable("playback_events",
		&schema.Column{Name: "traversal_id", Type: field.TypeString},
		&schema.Column{Name: "algorithm_id", Type: field.TypeString},
		&schema.Column{Name: "action", Type: field.TypeString},
		&schema.Column{Name: "steps", Type: field.TypeInt},
		&schema.Column{Name: "speed", Type: field.TypeString},
	)

	XPEventsTable = eventTable("xp_events",
		&schema.Column{Name: "source", Type: field.TypeString},
		&schema.Column{Name: "algorithm_id", Type: field.TypeString, Nullable: true},
		&schema.Column{Name: "amount", Type: field.TypeInt},
		&schema.Column{Name: "total_xp", Type: field.TypeInt},
		&schema.Column{Name: "level", Type: field.TypeInt},
	)

	QuizEventsTable = eventTable("quiz_events",
		&schema.Column{Name: "quiz_id", Type: field.TypeString},
		&schema.Column{Name: "algorithm_id", Type: field.TypeString},
		&schema.Column{Name: "questions", Type: field.TypeInt},
		&schema.Column{Name: "correct", Type: field.TypeInt},
		&schema.Column{Name: "score", Type: field.TypeFloat64},
		&schema.Column{Name: "source", Type: field.TypeString},
	)

	BadgeEventsTable = eventTable("badge_events",
		&schema.Column{Name: "badge_type", Type: field.TypeString},
		&schema.Column{Name: "rarity", Type: field.TypeString},
		&schema.Column{Name: "algorithm_id", Type: field.TypeString, Nullable: true},
		&schema.Column{Name: "reason", Type: field.TypeString},
	)

	FlagEventsTable = eventTable("flag_events",
		&schema.Column{Name: "rule", Type: field.TypeString},
		&schema.Column{Name: "severity", Type: field.TypeString},
		&schema.Column{Name: "reason", Type: field.TypeString},
		&schema.Column{Name: "delta", Type: field.TypeInt},
		&schema.Column{Name: "total_xp", Type: field.TypeInt},
		&schema.Column{Name: "level", Type: field.TypeInt},
	)

	LLMRequestEventsTable = eventTable("llm_request_events",
		&schema.Column{Name: "provider", Type: field.TypeString},
		&schema.Column{Name: "model", Type: field.TypeString},
		&schema.Column{Name: "purpose", Type: field.TypeString},
		&schema.Column{Name: "input_tokens", Type: field.TypeInt},
		&schema.Column{Name: "output_tokens", Type: field.TypeInt},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_message", Type: field.TypeString, Nullable: true},
	)

	// Tables lists every table managed by migrate.
	Tables = []*schema.Table{
		SnapshotsTable,
		PlaybackEventsTable,
		XPEventsTable,
		QuizEventsTable,
		BadgeEventsTable,
		FlagEventsTable,
		LLMRequestEventsTable,
	}
)

func init() {
	SnapshotsTable.PrimaryKey = []*schema.Column{SnapshotsTable.Columns[0]}
	SnapshotsTable.Indexes = []*schema.Index{
		{Name: "snapshots_timestamp", Columns: []*schema.Column{SnapshotsTable.Columns[2]}},
	}
}
