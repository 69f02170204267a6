// Package respbuilder holds pure projection functions from driver events
// and parsed tool calls to OpenAI-shaped chat-completion responses and
// chunks. None of these functions perform I/O.
package respbuilder

import (
	"agentcli-bridge/events"
	"agentcli-bridge/types"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewRequestID generates a request id: a uuid v4 with its hyphens
// stripped and truncated to 24 lowercase hex characters, giving the same
// shape regardless of platform random source.
func NewRequestID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:24]
}

// ChatCompletionID generates the "chatcmpl-" prefixed id used for both
// full responses and every chunk of one stream.
func ChatCompletionID() string {
	return "chatcmpl-" + NewRequestID()
}

// NormalizeModel collapses an inbound model string to one of the three
// canonical upstream identifiers by substring match, preserving the
// original string when nothing matches.
func NormalizeModel(model string) string {
	lower := strings.ToLower(model)
	switch {
	case strings.Contains(lower, "opus"):
		return "claude-opus-4"
	case strings.Contains(lower, "sonnet"):
		return "claude-sonnet-4"
	case strings.Contains(lower, "haiku"):
		return "claude-haiku-4"
	default:
		return model
	}
}

// AssistantEventToChunk projects an `assistant` event into a streaming
// chunk, for pass-through mode: text is usually empty (assistant events
// carry message-boundary metadata, not content, in this wire format), but
// when e.StopReason is set the chunk carries finish_reason "stop" so the
// stream can end on an assistant event alone, without waiting on a
// terminal `result` event that may never arrive. model is the caller's
// already-resolved model string, not re-derived from e.AssistantModel,
// since later assistant events in a turn may omit it. setRole is honored
// the same way as in TextChunk.
func AssistantEventToChunk(id, model string, e events.Event, setRole bool, text string) types.ChatChunk {
	choice := types.ChatChunkChoice{
		Index: 0,
		Delta: types.ChatDelta{Content: text},
	}
	if setRole {
		choice.Delta.Role = "assistant"
	}
	if e.StopReason != nil {
		reason := "stop"
		choice.FinishReason = &reason
	}
	return types.ChatChunk{
		ID:      id,
		Object:  "chat.completion.chunk",
		Created: time.Now().Unix(),
		Model:   model,
		Choices: []types.ChatChunkChoice{choice},
	}
}

// DoneChunk builds the terminal chunk of a stream: empty delta,
// finish_reason "stop".
func DoneChunk(id, model string) types.ChatChunk {
	reason := "stop"
	return types.ChatChunk{
		ID:      id,
		Object:  "chat.completion.chunk",
		Created: time.Now().Unix(),
		Model:   model,
		Choices: []types.ChatChunkChoice{{Index: 0, Delta: types.ChatDelta{}, FinishReason: &reason}},
	}
}

// ToolCallsDoneChunk builds the terminal chunk for the tool-calls path:
// empty delta, finish_reason "tool_calls".
func ToolCallsDoneChunk(id, model string) types.ChatChunk {
	reason := "tool_calls"
	return types.ChatChunk{
		ID:      id,
		Object:  "chat.completion.chunk",
		Created: time.Now().Unix(),
		Model:   model,
		Choices: []types.ChatChunkChoice{{Index: 0, Delta: types.ChatDelta{}, FinishReason: &reason}},
	}
}

// TextChunk builds a single content-carrying chunk; setRole is honored
// the same way as in AssistantEventToChunk.
func TextChunk(id, model, text string, setRole bool) types.ChatChunk {
	delta := types.ChatDelta{Content: text}
	if setRole {
		delta.Role = "assistant"
	}
	return types.ChatChunk{
		ID:      id,
		Object:  "chat.completion.chunk",
		Created: time.Now().Unix(),
		Model:   model,
		Choices: []types.ChatChunkChoice{{Index: 0, Delta: delta}},
	}
}

// ToolCallChunks builds the buffered-replay tool-call chunk sequence: an
// optional leading chunk carrying role and residual text, then one chunk
// per tool call, then a terminating chunk with finish_reason "tool_calls".
// Role is set on the first chunk emitted overall, whichever it is.
func ToolCallChunks(id, model, residualText string, calls []types.ToolCall) []types.ChatChunk {
	var chunks []types.ChatChunk
	roleSet := false

	if strings.TrimSpace(residualText) != "" {
		chunks = append(chunks, TextChunk(id, model, residualText, true))
		roleSet = true
	}

	for i, tc := range calls {
		delta := types.ChatDelta{
			ToolCalls: []types.ToolCall{{
				Index: i,
				ID:    tc.ID,
				Type:  "function",
				Function: types.ToolCallFunc{
					Name:      tc.Function.Name,
					Arguments: tc.Function.Arguments,
				},
			}},
		}
		if !roleSet {
			delta.Role = "assistant"
			roleSet = true
		}
		chunks = append(chunks, types.ChatChunk{
			ID:      id,
			Object:  "chat.completion.chunk",
			Created: time.Now().Unix(),
			Model:   model,
			Choices: []types.ChatChunkChoice{{Index: 0, Delta: delta}},
		})
	}

	chunks = append(chunks, ToolCallsDoneChunk(id, model))
	return chunks
}

// ResultToResponse projects a terminal `result` event (and, when tool
// calls were extracted, their parsed form) into a full non-streaming
// chat.completion response.
func ResultToResponse(id string, e events.Event, text *string, toolCalls []types.ToolCall) types.ChatResponse {
	model := "claude-sonnet-4"
	for m := range e.ModelUsage {
		model = NormalizeModel(m)
		break
	}

	finishReason := "stop"
	msg := types.ChatChoiceMsg{Role: "assistant", Content: text}
	if len(toolCalls) > 0 {
		finishReason = "tool_calls"
		msg.ToolCalls = toolCalls
	}

	var usage types.ChatUsage
	for _, u := range e.ModelUsage {
		usage.PromptTokens = u.InputTokens
		usage.CompletionTokens = u.OutputTokens
		usage.TotalTokens = u.InputTokens + u.OutputTokens
		break
	}

	return types.ChatResponse{
		ID:      id,
		Object:  "chat.completion",
		Created: time.Now().Unix(),
		Model:   model,
		Choices: []types.ChatChoice{{Index: 0, Message: msg, FinishReason: &finishReason}},
		Usage:   usage,
	}
}
