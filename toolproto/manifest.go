// Package toolproto simulates OpenAI-style tool calling over a CLI that has
// no native tool-call wire form: tool manifests are injected into the
// prompt as XML, and the model's reply is scanned for a matching XML
// convention on the way back out.
package toolproto

import (
	"agentcli-bridge/types"
	"encoding/json"
	"strings"
)

const toolCallInstructions = `<tool_call_instructions>
To call a tool, emit a block of the exact form:
<tool_call>{"name": "<tool_name>", "arguments": {...}}</tool_call>

Rules:
- You may emit multiple <tool_call> blocks in a single response to call several tools.
- The JSON body must have a string "name" field and an object "arguments" field.
- Only tools listed in <tools_available> may be called.
- You may write brief reasoning text before your tool calls, but nothing may follow the last one.
</tool_call_instructions>`

// Active reports whether tool-calling should be simulated for this request:
// the tools array is non-empty and tool_choice is not explicitly "none".
func Active(tools []types.Tool, toolChoice interface{}) bool {
	if len(tools) == 0 {
		return false
	}
	if s, ok := toolChoice.(string); ok && s == "none" {
		return false
	}
	return true
}

// BuildManifest renders the tool-manifest preamble prepended to the
// flattened prompt when Active reports true.
func BuildManifest(tools []types.Tool) string {
	var b strings.Builder
	b.WriteString("<tools_available>\n")
	for _, t := range tools {
		b.WriteString("<tool>\n")
		b.WriteString("<name>" + t.Function.Name + "</name>\n")
		b.WriteString("<description>" + t.Function.Description + "</description>\n")
		b.WriteString("<parameters>" + prettyParams(t.Function.Parameters) + "</parameters>\n")
		b.WriteString("</tool>\n")
	}
	b.WriteString("</tools_available>\n")
	b.WriteString(toolCallInstructions)
	b.WriteString("\n")
	return b.String()
}

// prettyParams pretty-prints a tool's JSON-schema parameters, falling back
// to an empty object when absent or malformed.
func prettyParams(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "{}"
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return "{}"
	}
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(pretty)
}
