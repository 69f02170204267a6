package respbuilder

import (
	"testing"

	"agentcli-bridge/events"
	"agentcli-bridge/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeModel_MatchesBySubstring(t *testing.T) {
	assert.Equal(t, "claude-opus-4", NormalizeModel("claude-3-opus-20240229"))
	assert.Equal(t, "claude-sonnet-4", NormalizeModel("anthropic/sonnet"))
	assert.Equal(t, "claude-haiku-4", NormalizeModel("HAIKU-preview"))
	assert.Equal(t, "some-other-model", NormalizeModel("some-other-model"))
}

func TestNewRequestID_Is24HexChars(t *testing.T) {
	id := NewRequestID()
	assert.Len(t, id, 24)
	assert.Regexp(t, `^[0-9a-f]{24}$`, id)
}

func TestDoneChunk_HasEmptyDeltaAndStopReason(t *testing.T) {
	c := DoneChunk("chatcmpl-x", "claude-sonnet-4")
	require.Len(t, c.Choices, 1)
	require.NotNil(t, c.Choices[0].FinishReason)
	assert.Equal(t, "stop", *c.Choices[0].FinishReason)
	assert.Empty(t, c.Choices[0].Delta.Content)
}

func TestToolCallChunks_SetsFinishReasonToolCalls(t *testing.T) {
	calls := []types.ToolCall{
		{ID: "call_1", Type: "function", Function: types.ToolCallFunc{Name: "f", Arguments: "{}"}},
	}
	chunks := ToolCallChunks("chatcmpl-x", "claude-sonnet-4", "", calls)
	require.NotEmpty(t, chunks)
	last := chunks[len(chunks)-1]
	require.NotNil(t, last.Choices[0].FinishReason)
	assert.Equal(t, "tool_calls", *last.Choices[0].FinishReason)

	// role set exactly once, on the first chunk
	assert.Equal(t, "assistant", chunks[0].Choices[0].Delta.Role)
	for _, c := range chunks[1:] {
		assert.Empty(t, c.Choices[0].Delta.Role)
	}
}

func TestToolCallChunks_EmitsLeadingTextChunkWhenResidualNonEmpty(t *testing.T) {
	calls := []types.ToolCall{{ID: "call_1", Type: "function", Function: types.ToolCallFunc{Name: "f", Arguments: "{}"}}}
	chunks := ToolCallChunks("chatcmpl-x", "claude-sonnet-4", "let me check", calls)
	require.True(t, len(chunks) >= 3) // text + tool call + done
	assert.Equal(t, "let me check", chunks[0].Choices[0].Delta.Content)
}

func TestResultToResponse_NoToolCalls(t *testing.T) {
	text := "hello"
	e := events.Event{Kind: events.KindResult, ModelUsage: map[string]events.Usage{"claude-sonnet-4-5": {InputTokens: 10, OutputTokens: 5}}}
	resp := ResultToResponse("chatcmpl-x", e, &text, nil)
	require.Len(t, resp.Choices, 1)
	assert.Equal(t, "stop", *resp.Choices[0].FinishReason)
	require.NotNil(t, resp.Choices[0].Message.Content)
	assert.Equal(t, "hello", *resp.Choices[0].Message.Content)
	assert.Equal(t, 15, resp.Usage.TotalTokens)
}

func TestResultToResponse_WithToolCalls(t *testing.T) {
	text := "checking"
	calls := []types.ToolCall{{ID: "call_1", Type: "function", Function: types.ToolCallFunc{Name: "f", Arguments: "{}"}}}
	e := events.Event{Kind: events.KindResult}
	resp := ResultToResponse("chatcmpl-x", e, &text, calls)
	assert.Equal(t, "tool_calls", *resp.Choices[0].FinishReason)
	assert.Len(t, resp.Choices[0].Message.ToolCalls, 1)
}
