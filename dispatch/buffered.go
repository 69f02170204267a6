package dispatch

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"agentcli-bridge/events"
	"agentcli-bridge/respbuilder"
)

// runBufferedReplay withholds all client-visible output until the
// upstream `close` event, since whether tool calls appear is knowable
// only once the full text is in hand and finish_reason cannot be
// retroactively changed after a chunk is sent.
func runBufferedReplay(ctx context.Context, w http.ResponseWriter, req Request, disconnected <-chan struct{}) {
	var buffer strings.Builder
	var result *events.Event
	model := "claude-sonnet-4"

	for {
		select {
		case <-disconnected:
			req.Driver.Kill()
			drainUntilClosed(req.Events)
			return
		case e, ok := <-req.Events:
			if !ok {
				finishBufferedReplay(w, req, buffer.String(), result, model)
				return
			}
			switch e.Kind {
			case events.KindContentDelta:
				buffer.WriteString(e.Delta)
			case events.KindAssistant:
				if e.AssistantModel != "" {
					model = respbuilder.NormalizeModel(e.AssistantModel)
				}
			case events.KindResult:
				copyE := e
				result = &copyE
			case events.KindClose:
				finishBufferedReplay(w, req, buffer.String(), result, model)
				return
			case events.KindError:
				writeJSONError(w, http.StatusInternalServerError, e.Err.Error(), "upstream_error", "upstream_error")
				return
			}
		}
	}
}

// finishBufferedReplay chooses the authoritative response text (the
// terminal result when present, otherwise the accumulated buffer),
// parses it for tool calls, and writes the single response the request
// mode (streaming or not) calls for. No `data:` frame is written before
// this point — the buffered-replay atomicity invariant.
func finishBufferedReplay(w http.ResponseWriter, req Request, buffered string, result *events.Event, model string) {
	text := buffered
	if result != nil {
		text = result.ResultText
	}

	parsed := extractToolCalls(text)
	residual := ""
	if parsed.Text != nil {
		residual = *parsed.Text
	}

	id := respbuilder.ChatCompletionID()

	if req.StreamRequested {
		sse := newSSEWriter(w)
		sse.Open(req.RequestID)
		if len(parsed.ToolCalls) > 0 {
			for _, chunk := range respbuilder.ToolCallChunks(id, model, residual, parsed.ToolCalls) {
				sse.WriteChunk(chunk)
			}
		} else {
			sse.WriteChunk(respbuilder.TextChunk(id, model, text, true))
			sse.WriteChunk(respbuilder.DoneChunk(id, model))
		}
		sse.Done()
		return
	}

	var e events.Event
	if result != nil {
		e = *result
	}
	var contentPtr *string
	if len(parsed.ToolCalls) == 0 {
		contentPtr = &text
	} else {
		contentPtr = parsed.Text
	}
	resp := respbuilder.ResultToResponse(id, e, contentPtr, parsed.ToolCalls)
	resp.Model = model
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}
