package translator

import (
	"agentcli-bridge/toolproto"
	"agentcli-bridge/types"
	"strings"
)

// InvocationSpec is the CLI invocation a request translates to.
type InvocationSpec struct {
	Prompt      string
	ModelAlias  string
	SessionID   string
	ToolsActive bool
}

// BuildPrompt renders the full prompt text: the tool manifest (when
// active) followed by the flattened message transcript. Prompt synthesis
// is a pure function of (messages, tools) — it touches no external state
// and performs no I/O.
func BuildPrompt(messages []types.ChatMessage, tools []types.Tool, toolChoice interface{}) string {
	active := toolproto.Active(tools, toolChoice)

	var b strings.Builder
	if active {
		b.WriteString(toolproto.BuildManifest(tools))
	}
	b.WriteString(flattenMessages(messages))
	return b.String()
}

// flattenMessages renders the message history into the textual transcript
// the CLI accepts as its single prompt argument.
func flattenMessages(messages []types.ChatMessage) string {
	var b strings.Builder

	i := 0
	for i < len(messages) {
		msg := messages[i]
		switch msg.Role {
		case "system":
			b.WriteString("<system>")
			b.WriteString(ExtractText(msg.Content))
			b.WriteString("</system>\n")
			i++
		case "user":
			b.WriteString(ExtractText(msg.Content))
			b.WriteString("\n")
			i++
		case "assistant":
			b.WriteString(toolproto.RenderAssistantTurn(ExtractText(msg.Content), msg.ToolCalls))
			i++
		case "tool":
			var entries []toolproto.ToolResultEntry
			for i < len(messages) && messages[i].Role == "tool" {
				entries = append(entries, toolproto.ToolResultEntry{
					ToolCallID: messages[i].ToolCallID,
					Output:     ExtractText(messages[i].Content),
				})
				i++
			}
			b.WriteString(toolproto.RenderToolResultsTurn(entries))
		default:
			i++
		}
	}
	return b.String()
}
