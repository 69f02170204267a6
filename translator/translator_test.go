package translator

import (
	"encoding/json"
	"testing"

	"agentcli-bridge/config"
	"agentcli-bridge/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawString(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}

func TestBuildPrompt_IsPureFunctionOfInputs(t *testing.T) {
	messages := []types.ChatMessage{
		{Role: "system", Content: rawString("be terse")},
		{Role: "user", Content: rawString("hi")},
	}
	p1 := BuildPrompt(messages, nil, nil)
	p2 := BuildPrompt(messages, nil, nil)
	assert.Equal(t, p1, p2)
	assert.Contains(t, p1, "<system>be terse</system>")
	assert.Contains(t, p1, "hi")
}

func TestBuildPrompt_InjectsManifestOnlyWhenToolsActive(t *testing.T) {
	messages := []types.ChatMessage{{Role: "user", Content: rawString("hi")}}
	tools := []types.Tool{{Type: "function", Function: types.ToolFunction{Name: "f"}}}

	withTools := BuildPrompt(messages, tools, nil)
	assert.Contains(t, withTools, "<tools_available>")

	withoutTools := BuildPrompt(messages, nil, nil)
	assert.NotContains(t, withoutTools, "<tools_available>")

	noneChoice := BuildPrompt(messages, tools, "none")
	assert.NotContains(t, noneChoice, "<tools_available>")
}

func TestFlattenMessages_CollapsesConsecutiveToolMessages(t *testing.T) {
	messages := []types.ChatMessage{
		{Role: "tool", ToolCallID: "call_1", Content: rawString("result one")},
		{Role: "tool", ToolCallID: "call_2", Content: rawString("result two")},
	}
	rendered := flattenMessages(messages)

	assert.Equal(t, 1, countOccurrences(rendered, "<tool_results>"))
	assert.Contains(t, rendered, "call_1")
	assert.Contains(t, rendered, "call_2")
}

func TestExtractText_HandlesAllContentShapes(t *testing.T) {
	assert.Equal(t, "plain", ExtractText(rawString("plain")))

	parts, _ := json.Marshal([]types.ContentPart{{Type: "text", Text: "a"}, {Type: "image", Text: ""}, {Type: "text", Text: "b"}})
	assert.Equal(t, "a\nb", ExtractText(parts))

	obj, _ := json.Marshal(map[string]string{"text": "from object"})
	assert.Equal(t, "from object", ExtractText(obj))
}

func TestTranslate_ResolvesModelAndForwardsUser(t *testing.T) {
	cfg := config.Default()
	req := types.ChatRequest{
		Model:    "claude-sonnet-4",
		Messages: []types.ChatMessage{{Role: "user", Content: rawString("hi")}},
		User:     "conv-123",
	}
	spec := Translate(cfg, req)
	require.Equal(t, "sonnet", spec.ModelAlias)
	assert.Equal(t, "conv-123", spec.SessionID)
	assert.False(t, spec.ToolsActive)
}

func countOccurrences(s, sub string) int {
	count := 0
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			count++
		}
	}
	return count
}
