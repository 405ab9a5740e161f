package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"
)

func fastRetry() RetryConfig {
	return RetryConfig{MaxAttempts: 3, InitialWait: time.Millisecond, MaxWait: 5 * time.Millisecond, Multiplier: 2}
}

var okReply = MockResponse{Content: json.RawMessage(`{"ok":true}`)}

func down() MockResponse {
	return MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("503")}}
}

func TestRetry(t *testing.T) {
	tests := []struct {
		name      string
		script    []MockResponse
		wantErr   bool
		wantCalls int
	}{
		{"first attempt", []MockResponse{okReply}, false, 1},
		{"transient then ok", []MockResponse{down(), okReply}, false, 2},
		{"gives up", []MockResponse{down(), down(), down(), okReply}, true, 3},
		{"rate limit honours retry-after", []MockResponse{{Err: &ErrRateLimit{RetryAfter: time.Millisecond}}, okReply}, false, 2},
		{"max tokens is final", []MockResponse{{Err: &ErrMaxTokensExceeded{}}, okReply}, true, 1},
		{"invalid response retried once", []MockResponse{
			{Err: &ErrInvalidResponse{Err: errors.New("bad")}},
			{Err: &ErrInvalidResponse{Err: errors.New("bad")}},
			okReply,
		}, true, 2},
		{"open breaker is final", []MockResponse{{Err: fmt.Errorf("%w: mock", ErrCircuitOpen)}, okReply}, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMockProvider(tt.script...)
			resp, err := WithRetry(m, fastRetry()).Generate(context.Background(), Request{})
			if tt.wantErr != (err != nil) {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && string(resp.Content) != `{"ok":true}` {
				t.Errorf("content = %s", resp.Content)
			}
			if m.CallCount() != tt.wantCalls {
				t.Errorf("calls = %d, want %d", m.CallCount(), tt.wantCalls)
			}
		})
	}
}

func TestRetry_StopsOnCancel(t *testing.T) {
	m := NewMockProvider(down(), okReply)
	cfg := fastRetry()
	cfg.InitialWait = time.Hour
	cfg.MaxWait = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(10*time.Millisecond, cancel)

	_, err := WithRetry(m, cfg).Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if m.CallCount() != 1 {
		t.Fatalf("calls = %d, want 1", m.CallCount())
	}
}

func TestRetry_BackoffBounded(t *testing.T) {
	r := &RetryProvider{config: RetryConfig{InitialWait: 100 * time.Millisecond, MaxWait: time.Second, Multiplier: 2}}
	for attempt := range 8 {
		w := r.backoff(attempt, errors.New("x"))
		if w < 0 || w > 1200*time.Millisecond {
			t.Fatalf("attempt %d wait %s out of bounds", attempt, w)
		}
	}
	if w := r.backoff(0, &ErrRateLimit{RetryAfter: 7 * time.Second}); w != 7*time.Second {
		t.Fatalf("retry-after ignored: %s", w)
	}
}

func TestRetry_ZeroAttemptsStillCallsOnce(t *testing.T) {
	m := NewMockProvider(okReply)
	if _, err := WithRetry(m, RetryConfig{}).Generate(context.Background(), Request{}); err != nil {
		t.Fatal(err)
	}
	if got := WithRetry(m, RetryConfig{}).ModelID(); got != "mock" {
		t.Fatalf("model = %q", got)
	}
}
