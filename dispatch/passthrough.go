package dispatch

import (
	"context"
	"net/http"

	"agentcli-bridge/events"
	"agentcli-bridge/respbuilder"
)

// runPassThrough streams each content delta to the client as it arrives.
// Used only when tool-calling is inactive, since finish_reason cannot be
// retroactively changed once a chunk has been sent.
func runPassThrough(ctx context.Context, w http.ResponseWriter, req Request, disconnected <-chan struct{}) {
	sse := newSSEWriter(w)
	sse.Open(req.RequestID)

	id := respbuilder.ChatCompletionID()
	model := "claude-sonnet-4"
	roleSent := false

	for {
		select {
		case <-disconnected:
			req.Driver.Kill()
			drainUntilClosed(req.Events)
			return
		case e, ok := <-req.Events:
			if !ok {
				return
			}
			switch e.Kind {
			case events.KindContentDelta:
				if e.Delta == "" {
					continue
				}
				chunk := respbuilder.TextChunk(id, model, e.Delta, !roleSent)
				roleSent = true
				sse.WriteChunk(chunk)
			case events.KindAssistant:
				if e.AssistantModel != "" {
					model = respbuilder.NormalizeModel(e.AssistantModel)
				}
				if e.StopReason != nil {
					sse.WriteChunk(respbuilder.AssistantEventToChunk(id, model, e, !roleSent, ""))
					roleSent = true
					sse.Done()
					req.Driver.Kill()
					drainUntilClosed(req.Events)
					return
				}
			case events.KindResult:
				sse.WriteChunk(respbuilder.DoneChunk(id, model))
				sse.Done()
			case events.KindError:
				sse.WriteChunk(newErrorEnvelope(e.Err.Error(), "upstream_error", "upstream_error"))
				sse.Done()
			case events.KindClose:
				if !sse.ended {
					sse.WriteChunk(respbuilder.DoneChunk(id, model))
					sse.Done()
				}
				return
			}
		}
	}
}
