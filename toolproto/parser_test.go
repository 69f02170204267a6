package toolproto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SingleToolCall(t *testing.T) {
	text := `Let me check the weather.
<tool_call>{"name": "get_weather", "arguments": {"city": "Paris"}}</tool_call>`

	result := Parse(text)
	require.Len(t, result.ToolCalls, 1)
	tc := result.ToolCalls[0]
	assert.Equal(t, "get_weather", tc.Function.Name)
	assert.Equal(t, "function", tc.Type)
	assert.Len(t, tc.ID, 29) // "call_" + 24 hex chars
	assert.Regexp(t, `^call_[0-9a-f]{24}$`, tc.ID)

	var args map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(tc.Function.Arguments), &args))
	assert.Equal(t, "Paris", args["city"])

	require.NotNil(t, result.Text)
	assert.Equal(t, "Let me check the weather.", *result.Text)
}

func TestParse_MultipleToolCalls(t *testing.T) {
	text := `<tool_call>{"name": "a", "arguments": {}}</tool_call>` +
		`<tool_call>{"name": "b", "arguments": {"x": 1}}</tool_call>`

	result := Parse(text)
	require.Len(t, result.ToolCalls, 2)
	assert.Equal(t, "a", result.ToolCalls[0].Function.Name)
	assert.Equal(t, "b", result.ToolCalls[1].Function.Name)
	assert.Nil(t, result.Text)
}

func TestParse_EchoedID(t *testing.T) {
	text := `<tool_call>{"id": "call_abc123", "name": "f", "arguments": {}}</tool_call>`
	result := Parse(text)
	require.Len(t, result.ToolCalls, 1)
	assert.Equal(t, "call_abc123", result.ToolCalls[0].ID)
}

func TestParse_MalformedBlockSkipped(t *testing.T) {
	text := `<tool_call>{not valid json</tool_call><tool_call>{"name": "ok", "arguments": {}}</tool_call>`
	result := Parse(text)
	require.Len(t, result.ToolCalls, 1)
	assert.Equal(t, "ok", result.ToolCalls[0].Function.Name)
}

func TestParse_NoToolCalls(t *testing.T) {
	result := Parse("just plain text")
	assert.Empty(t, result.ToolCalls)
	require.NotNil(t, result.Text)
	assert.Equal(t, "just plain text", *result.Text)
}

func TestParse_ArgumentsAlwaysStringified(t *testing.T) {
	// Arguments given as an already-encoded JSON string must still come
	// out as a canonical JSON string, not double-encoded.
	text := `<tool_call>{"name": "f", "arguments": "{\"a\":1}"}</tool_call>`
	result := Parse(text)
	require.Len(t, result.ToolCalls, 1)
	assert.JSONEq(t, `{"a":1}`, result.ToolCalls[0].Function.Arguments)
}

func TestRenderAssistantTurn_RoundTripsToolCalls(t *testing.T) {
	parsed := Parse(`<tool_call>{"id":"call_x","name":"f","arguments":{"a":1}}</tool_call>`)
	require.Len(t, parsed.ToolCalls, 1)

	rendered := RenderAssistantTurn("", parsed.ToolCalls)
	assert.Contains(t, rendered, "<previous_response>")
	assert.Contains(t, rendered, `"name":"f"`)
	assert.Contains(t, rendered, `"id":"call_x"`)

	back := Parse(rendered)
	require.Len(t, back.ToolCalls, 1)
	assert.Equal(t, parsed.ToolCalls[0], back.ToolCalls[0])
}
