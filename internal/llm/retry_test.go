package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func fastRetryConfig(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts: attempts,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2.0,
	}
}

// scriptedProvider fails a set number of times before succeeding.
type scriptedProvider struct {
	failures int
	err      error
	calls    int
}

func (p *scriptedProvider) Generate(context.Context, Request) (*Response, error) {
	p.calls++
	if p.calls <= p.failures {
		return nil, p.err
	}
	return &Response{Content: json.RawMessage("ok")}, nil
}

func (p *scriptedProvider) ModelID() string { return "scripted" }

func TestRetry_TransientThenSuccess(t *testing.T) {
	inner := &scriptedProvider{failures: 2, err: &ErrRateLimit{Err: errors.New("429")}}
	p := WithRetry(inner, fastRetryConfig(3))

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text() != "ok" {
		t.Errorf("unexpected response: %q", resp.Text())
	}
	if inner.calls != 3 {
		t.Errorf("expected 3 calls, got %d", inner.calls)
	}
}

func TestRetry_ExhaustsAttempts(t *testing.T) {
	inner := &scriptedProvider{failures: 10, err: &ErrProviderUnavailable{Err: errors.New("503")}}
	p := WithRetry(inner, fastRetryConfig(3))

	_, err := p.Generate(context.Background(), Request{})
	var unavailable *ErrProviderUnavailable
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
	if inner.calls != 3 {
		t.Errorf("expected 3 calls, got %d", inner.calls)
	}
}

func TestRetry_InvalidResponseOnce(t *testing.T) {
	inner := &scriptedProvider{failures: 10, err: &ErrInvalidResponse{Err: errors.New("bad schema")}}
	p := WithRetry(inner, fastRetryConfig(5))

	_, err := p.Generate(context.Background(), Request{})
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
	// One original attempt plus exactly one regeneration.
	if inner.calls != 2 {
		t.Errorf("expected 2 calls, got %d", inner.calls)
	}
}

func TestRetry_MaxTokensIsTerminal(t *testing.T) {
	inner := &scriptedProvider{failures: 10, err: &ErrMaxTokensExceeded{}}
	p := WithRetry(inner, fastRetryConfig(3))

	_, err := p.Generate(context.Background(), Request{})
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("expected 1 call, got %d", inner.calls)
	}
}

func TestRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	inner := &scriptedProvider{failures: 10, err: ctx.Err()}
	p := WithRetry(inner, fastRetryConfig(3))

	_, err := p.Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("context errors must not be retried, got %d calls", inner.calls)
	}
}
