package store

import (
	"context"
	"database/sql"
	"fmt"
)

// eventRepo implements EventRepo with plain SQL.
type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO llm_events
			(provider, model, purpose, input_tokens, output_tokens,
			 latency_ms, success, error_message, request_body, response_body)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		data.Provider, data.Model, data.Purpose,
		data.InputTokens, data.OutputTokens, data.LatencyMs,
		boolToInt(data.Success), data.ErrorMessage,
		data.RequestBody, data.ResponseBody,
	)
	if err != nil {
		return fmt.Errorf("insert LLM event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, timestamp, provider, model, purpose, input_tokens,
		       output_tokens, latency_ms, success, error_message
		FROM llm_events`
	args := []any{}
	if opts.Purpose != "" {
		query += ` WHERE purpose = ?`
		args = append(args, opts.Purpose)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var events []LLMEvent
	for rows.Next() {
		var e LLMEvent
		var success int
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Provider, &e.Model, &e.Purpose,
			&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &success, &e.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan LLM event: %w", err)
		}
		e.Success = success != 0
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, timestamp, provider, model, purpose, input_tokens,
		       output_tokens, latency_ms, success, error_message,
		       request_body, response_body
		FROM llm_events WHERE id = ?`, id)

	var e LLMEvent
	var success int
	err := row.Scan(&e.ID, &e.Timestamp, &e.Provider, &e.Model, &e.Purpose,
		&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &success, &e.ErrorMessage,
		&e.RequestBody, &e.ResponseBody)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get LLM event: %w", err)
	}
	e.Success = success != 0
	return &e, nil
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]UsageStat, error) {
	return r.usage(ctx, `
		SELECT purpose, '', COUNT(*), SUM(input_tokens), SUM(output_tokens),
		       CAST(AVG(latency_ms) AS INTEGER)
		FROM llm_events GROUP BY purpose ORDER BY purpose`)
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]UsageStat, error) {
	return r.usage(ctx, `
		SELECT '', model, COUNT(*), SUM(input_tokens), SUM(output_tokens),
		       CAST(AVG(latency_ms) AS INTEGER)
		FROM llm_events GROUP BY model ORDER BY model`)
}

func (r *eventRepo) usage(ctx context.Context, query string) ([]UsageStat, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query usage: %w", err)
	}
	defer rows.Close()

	var stats []UsageStat
	for rows.Next() {
		var s UsageStat
		if err := rows.Scan(&s.Purpose, &s.Model, &s.Calls,
			&s.InputTokens, &s.OutputTokens, &s.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
