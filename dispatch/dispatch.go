// Package dispatch selects and runs one of the three response-dispatch
// modes for a validated chat-completions request, wiring the driver's
// event feed to the HTTP response.
package dispatch

import (
	"context"
	"net/http"

	"agentcli-bridge/driver"
	"agentcli-bridge/events"
	"agentcli-bridge/logger"
	"agentcli-bridge/toolproto"
)

// Mode names the three response-dispatch modes, used for logging.
type Mode string

const (
	ModeNonStreaming      Mode = "non_streaming"
	ModePassThrough       Mode = "pass_through_streaming"
	ModeBufferedReplay    Mode = "buffered_replay"
)

// SelectMode picks the response-dispatch mode: buffered replay whenever
// tool-calling is active (regardless of stream), pass-through streaming
// when the client asked for a stream with no tools, non-streaming otherwise.
func SelectMode(toolsActive, streamRequested bool) Mode {
	if toolsActive {
		return ModeBufferedReplay
	}
	if streamRequested {
		return ModePassThrough
	}
	return ModeNonStreaming
}

// Request bundles everything a dispatch mode needs to run.
type Request struct {
	Driver          *driver.Driver
	Events          <-chan events.Event
	ToolsActive     bool
	StreamRequested bool
	RequestID       string
	Logger          logger.Logger
}

// Run drives the subprocess's event feed to completion, writing exactly
// one HTTP response (JSON body or completed SSE stream). Client
// disconnect is detected via r.Context().Done() — in Go's net/http
// server model this is tied to the underlying connection closing, not to
// the request body reaching EOF, so it is the correct signal for this
// purpose (see DESIGN.md).
func Run(ctx context.Context, w http.ResponseWriter, r *http.Request, req Request) {
	mode := SelectMode(req.ToolsActive, req.StreamRequested)
	logger.LogDispatchMode(ctx, req.Logger, string(mode), req.ToolsActive)

	disconnected := r.Context().Done()

	switch mode {
	case ModeNonStreaming:
		runNonStreaming(ctx, w, req, disconnected)
	case ModePassThrough:
		runPassThrough(ctx, w, req, disconnected)
	case ModeBufferedReplay:
		runBufferedReplay(ctx, w, req, disconnected)
	}
}

// extractToolCalls parses an authoritative result text through the tool
// protocol.
func extractToolCalls(text string) toolproto.ParseResult {
	return toolproto.Parse(text)
}
