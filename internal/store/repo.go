package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries.
type QueryOpts struct {
	Limit   int    // max results (0 = 50)
	Purpose string // filter by purpose, empty = all
}

// LLMRequestEventData captures one LLM API call for the durable log.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a persisted LLM request event.
type LLMEvent struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// UsageStat aggregates token usage for one purpose or model.
type UsageStat struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo records and queries LLM request events.
type EventRepo interface {
	// AppendLLMRequest records one LLM API call.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns recent events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one event by ID, or nil if not found.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// LLMUsageByPurpose aggregates usage grouped by purpose.
	LLMUsageByPurpose(ctx context.Context) ([]UsageStat, error)

	// LLMUsageByModel aggregates usage grouped by model.
	LLMUsageByModel(ctx context.Context) ([]UsageStat, error)
}

// DeckBuildData records the outcome of one subject's deck build.
type DeckBuildData struct {
	RunID      string
	Subject    string
	Requested  int
	Concepts   int
	Generated  int
	Skipped    int
	OutputPath string
	DurationMs int64
	Error      string
}

// DeckBuild is a persisted deck build record.
type DeckBuild struct {
	ID        int
	Timestamp time.Time
	DeckBuildData
}

// DeckRepo records and queries deck build outcomes.
type DeckRepo interface {
	// AppendDeckBuild records the outcome of one subject's build.
	AppendDeckBuild(ctx context.Context, data DeckBuildData) error

	// ListDeckBuilds returns recent builds, newest first.
	ListDeckBuilds(ctx context.Context, limit int) ([]DeckBuild, error)
}
