package toolproto

import (
	"agentcli-bridge/types"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var toolCallPattern = regexp.MustCompile(`<tool_call>\s*(\{[\s\S]*?)\s*</tool_call>`)

// rawToolCall is the JSON shape a <tool_call> block's body is expected to
// hold: an optional echoed id, a name, and arguments as either an object
// or an already-stringified JSON blob.
type rawToolCall struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// ParseResult is the outcome of scanning a buffered response for tool calls.
type ParseResult struct {
	ToolCalls []types.ToolCall
	Text      *string // residual text with all <tool_call> blocks stripped; nil if empty
}

// Parse scans text for <tool_call>{...}</tool_call> blocks. Malformed
// blocks are skipped, not fatal. Arguments are always re-serialized to a
// JSON string regardless of whether the model emitted an object or a
// string inline, per OpenAI wire semantics.
func Parse(text string) ParseResult {
	matches := toolCallPattern.FindAllStringSubmatchIndex(text, -1)
	var calls []types.ToolCall
	for _, m := range matches {
		body := text[m[2]:m[3]]
		var raw rawToolCall
		if err := json.Unmarshal([]byte(body), &raw); err != nil {
			continue
		}
		if raw.Name == "" {
			continue
		}
		argsJSON, err := canonicalizeArguments(raw.Arguments)
		if err != nil {
			continue
		}
		id := raw.ID
		if id == "" {
			id = newCallID()
		}
		calls = append(calls, types.ToolCall{
			ID:   id,
			Type: "function",
			Function: types.ToolCallFunc{
				Name:      raw.Name,
				Arguments: argsJSON,
			},
		})
	}

	residual := strip(text)
	var textPtr *string
	if residual != "" {
		textPtr = &residual
	}
	return ParseResult{ToolCalls: calls, Text: textPtr}
}

// canonicalizeArguments turns an arguments field — which may already be a
// JSON object or a string containing encoded JSON — into a JSON string,
// the shape the OpenAI wire format requires.
func canonicalizeArguments(raw json.RawMessage) (string, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return "{}", nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		var v interface{}
		if err := json.Unmarshal([]byte(s), &v); err != nil {
			return "", err
		}
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// strip removes every <tool_call>...</tool_call> block and trims the
// remainder, leaving behind whatever reasoning text preceded the calls.
func strip(text string) string {
	return strings.TrimSpace(toolCallPattern.ReplaceAllString(text, ""))
}

// newCallID synthesizes a 24-char hex id prefixed with "call_" for tool
// calls the model did not itself label.
func newCallID() string {
	return "call_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:24]
}
