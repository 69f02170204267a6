package toolproto

import (
	"agentcli-bridge/types"
	"encoding/json"
	"strings"
)

// historyToolCall is the readable shape an assistant turn's tool calls are
// lowered to: arguments re-parsed from their stringified wire form back
// into an object, matching what a human (or the model re-reading its own
// history) would expect to see.
type historyToolCall struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Arguments interface{} `json:"arguments"`
}

// RenderAssistantTurn lowers one prior assistant message back into the
// injected XML form so tool-call context survives across turns.
func RenderAssistantTurn(text string, toolCalls []types.ToolCall) string {
	var b strings.Builder
	b.WriteString("<previous_response>")
	if len(toolCalls) == 0 {
		b.WriteString(text)
		b.WriteString("</previous_response>\n")
		return b.String()
	}

	if strings.TrimSpace(text) != "" {
		b.WriteString(text)
	}
	for _, tc := range toolCalls {
		var args interface{}
		if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
			args = tc.Function.Arguments
		}
		block, err := json.Marshal(historyToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: args,
		})
		if err != nil {
			continue
		}
		b.WriteString("<tool_call>")
		b.Write(block)
		b.WriteString("</tool_call>")
	}
	b.WriteString("</previous_response>\n")
	return b.String()
}

// ExtractAssistantToolCalls walks a message history in order and returns
// every tool call any assistant message carried, flattened into a single
// ordered slice — the shape LoopGuard.Check inspects for runaway
// repetition across turns, not just within one buffered response.
func ExtractAssistantToolCalls(messages []types.ChatMessage) []types.ToolCall {
	var calls []types.ToolCall
	for _, m := range messages {
		if m.Role != "assistant" || len(m.ToolCalls) == 0 {
			continue
		}
		calls = append(calls, m.ToolCalls...)
	}
	return calls
}

// ToolResultEntry is one message's contribution to a collapsed
// <tool_results> block.
type ToolResultEntry struct {
	ToolCallID string
	Output     string
}

// RenderToolResultsTurn collapses a run of consecutive "tool" messages
// into one <tool_results> block.
func RenderToolResultsTurn(entries []ToolResultEntry) string {
	var b strings.Builder
	b.WriteString("<tool_results>\n")
	for _, e := range entries {
		b.WriteString("<tool_result>")
		b.WriteString("<tool_call_id>" + e.ToolCallID + "</tool_call_id>")
		b.WriteString("<output>" + e.Output + "</output>")
		b.WriteString("</tool_result>\n")
	}
	b.WriteString("</tool_results>\n")
	return b.String()
}
