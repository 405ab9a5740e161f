package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

const triviaJSON = `{"question":"Who directed Jaws?","answer":"Steven Spielberg"}`

func triviaSchema() *Schema {
	return &Schema{
		Name: "test-vendor-trivia",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{"type": "string"},
				"answer":   map[string]any{"type": "string"},
			},
			"required": []any{"question", "answer"},
		},
	}
}

func serve(t *testing.T, status int, body any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func anthropicAt(url string) *AnthropicProvider {
	c := anthropic.NewClient(option.WithAPIKey("test"), option.WithBaseURL(url), option.WithMaxRetries(0))
	return &AnthropicProvider{client: &c, model: "claude-haiku-4-5-20251001"}
}

func openaiAt(url string) *OpenAIProvider {
	conf := openai.DefaultConfig("test")
	conf.BaseURL = url + "/v1"
	return &OpenAIProvider{client: openai.NewClientWithConfig(conf), model: "gpt-4o-mini"}
}

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id": "msg_1", "type": "message", "role": "assistant", "model": "claude-haiku-4-5-20251001",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
	}
}

func openaiCompletion(text, finish string) map[string]any {
	return map[string]any{
		"id": "chatcmpl-1", "object": "chat.completion", "created": 1, "model": "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": text},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
	}
}

func apiError(kind string) map[string]any {
	return map[string]any{"type": "error", "error": map[string]any{"type": kind, "message": kind}}
}

func TestVendors(t *testing.T) {
	req := Request{
		System:    "You write film trivia.",
		Messages:  []Message{{Role: RoleUser, Content: "One question about Jaws."}},
		Schema:    triviaSchema(),
		MaxTokens: 256,
	}

	tests := []struct {
		name     string
		provider func(t *testing.T) Provider
		check    func(t *testing.T, resp *Response, err error)
	}{
		{"anthropic ok", func(t *testing.T) Provider {
			return anthropicAt(serve(t, 200, anthropicMessage(triviaJSON, "end_turn")).URL)
		}, func(t *testing.T, resp *Response, err error) {
			require.NoError(t, err)
			assert.Equal(t, 50, resp.Usage.InputTokens)
			assert.Equal(t, 80, resp.Usage.TotalTokens)
			assert.Equal(t, "end", resp.StopReason)
			assert.JSONEq(t, triviaJSON, string(resp.Content))
		}},
		{"anthropic truncated", func(t *testing.T) Provider {
			return anthropicAt(serve(t, 200, anthropicMessage(`{"question":"Who`, "max_tokens")).URL)
		}, func(t *testing.T, _ *Response, err error) {
			var mt *ErrMaxTokensExceeded
			assert.ErrorAs(t, err, &mt)
		}},
		{"anthropic 429", func(t *testing.T) Provider {
			return anthropicAt(serve(t, 429, apiError("rate_limit_error")).URL)
		}, func(t *testing.T, _ *Response, err error) {
			var rl *ErrRateLimit
			assert.ErrorAs(t, err, &rl)
		}},
		{"anthropic 500", func(t *testing.T) Provider {
			return anthropicAt(serve(t, 500, apiError("api_error")).URL)
		}, func(t *testing.T, _ *Response, err error) {
			var u *ErrProviderUnavailable
			assert.ErrorAs(t, err, &u)
		}},
		{"openai ok", func(t *testing.T) Provider {
			return openaiAt(serve(t, 200, openaiCompletion(triviaJSON, "stop")).URL)
		}, func(t *testing.T, resp *Response, err error) {
			require.NoError(t, err)
			assert.Equal(t, 40, resp.Usage.InputTokens)
			assert.Equal(t, 25, resp.Usage.OutputTokens)
			assert.Equal(t, "gpt-4o-mini", resp.Model)
		}},
		{"openai off schema", func(t *testing.T) Provider {
			return openaiAt(serve(t, 200, openaiCompletion(`{"question":"Who directed Jaws?"}`, "stop")).URL)
		}, func(t *testing.T, _ *Response, err error) {
			var inv *ErrInvalidResponse
			assert.ErrorAs(t, err, &inv)
		}},
		{"openai 429", func(t *testing.T) Provider {
			return openaiAt(serve(t, 429, map[string]any{"error": map[string]any{"message": "slow down", "type": "rate_limit"}}).URL)
		}, func(t *testing.T, _ *Response, err error) {
			var rl *ErrRateLimit
			assert.ErrorAs(t, err, &rl)
		}},
		{"openai 503", func(t *testing.T) Provider {
			return openaiAt(serve(t, 503, map[string]any{"error": map[string]any{"message": "down", "type": "server_error"}}).URL)
		}, func(t *testing.T, _ *Response, err error) {
			var u *ErrProviderUnavailable
			assert.ErrorAs(t, err, &u)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := tt.provider(t).Generate(context.Background(), req)
			tt.check(t, resp, err)
		})
	}
}

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{"type": "string", "description": "the prompt"},
			"wrong_answers": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"minItems": 3,
				"maxItems": 3,
			},
			"difficulty": map[string]any{"type": "string", "enum": []string{"easy", "medium", "hard"}},
			"odd":        map[string]any{"type": "null"},
		},
		"required": []string{"question", "wrong_answers"},
	})

	assert.Equal(t, genai.TypeObject, s.Type)
	require.Len(t, s.Properties, 4)
	assert.Equal(t, "the prompt", s.Properties["question"].Description)

	wrong := s.Properties["wrong_answers"]
	assert.Equal(t, genai.TypeArray, wrong.Type)
	assert.Equal(t, genai.TypeString, wrong.Items.Type)
	require.NotNil(t, wrong.MinItems)
	assert.EqualValues(t, 3, *wrong.MinItems)
	assert.EqualValues(t, 3, *wrong.MaxItems)

	assert.Equal(t, []string{"easy", "medium", "hard"}, s.Properties["difficulty"].Enum)
	assert.Equal(t, genai.TypeString, s.Properties["odd"].Type)
	assert.Equal(t, []string{"question", "wrong_answers"}, s.Required)
}
