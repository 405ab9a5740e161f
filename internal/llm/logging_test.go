package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/HEADES94/MovieProjektFinal/internal/metrics"
	"github.com/HEADES94/MovieProjektFinal/internal/store"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	events []store.LLMRequestEventData
	err    error
}

func (s *recordingSink) AppendLLMRequest(_ context.Context, d store.LLMRequestEventData) error {
	s.events = append(s.events, d)
	return s.err
}

func TestLogging_RecordsSuccessAndFailure(t *testing.T) {
	sink := &recordingSink{}
	m := NewMockProvider(MockJSON(map[string]string{"q": "a"}), down())
	p := WithLogging(m, "mock", sink)
	ctx := WithPurpose(context.Background(), PurposeTriviaGen)
	before := testutil.ToFloat64(metrics.LLMRequests.WithLabelValues("mock", "error"))

	req := Request{System: "be brief", Messages: []Message{{Role: RoleUser, Content: "ten questions"}}, Schema: &Schema{
		Name:       "test-logged",
		Definition: map[string]any{"type": "object"},
	}}
	_, err := p.Generate(ctx, req)
	require.NoError(t, err)
	_, err = p.Generate(ctx, req)
	require.Error(t, err)

	require.Len(t, sink.events, 2)
	ok, failed := sink.events[0], sink.events[1]

	assert.Equal(t, "mock", ok.Provider)
	assert.Equal(t, PurposeTriviaGen, ok.Purpose)
	assert.True(t, ok.Success)
	assert.Equal(t, 100, ok.InputTokens)
	assert.JSONEq(t, `{"q":"a"}`, ok.ResponseBody)
	assert.Contains(t, ok.RequestBody, "[system]\nbe brief")
	assert.Contains(t, ok.RequestBody, "[user]\nten questions")
	assert.Contains(t, ok.RequestBody, "[schema: test-logged]")

	assert.False(t, failed.Success)
	assert.NotEmpty(t, failed.ErrorMessage)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.LLMRequests.WithLabelValues("mock", "error")))
}

func TestLogging_SinkFailureDoesNotFailCall(t *testing.T) {
	sink := &recordingSink{err: errors.New("db locked")}
	p := WithLogging(NewMockProvider(okReply), "mock", sink)

	resp, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Len(t, sink.events, 1)
	assert.Equal(t, "mock", p.ModelID())
}

func TestLogging_StoresInRequestLog(t *testing.T) {
	s, err := store.Open("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	defer s.Close()

	p := WithLogging(NewMockProvider(okReply), "mock", s.EventRepo())
	_, err = p.Generate(WithPurpose(context.Background(), PurposeTriviaGen), Request{})
	require.NoError(t, err)

	events, err := s.EventRepo().QueryLLMEvents(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, PurposeTriviaGen, events[0].Purpose)
}

func TestTranscriptWithoutSystem(t *testing.T) {
	got := transcript(Request{Messages: []Message{{Role: RoleAssistant, Content: "hi"}}})
	assert.False(t, strings.Contains(got, "[system]"))
	assert.Equal(t, "[assistant]\nhi\n\n", got)
}
