package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"agentcli-bridge/events"
	"agentcli-bridge/respbuilder"
)

// runNonStreaming listens for `result`; on `close`, if a result was
// observed, emits a single JSON body. If close arrived without a result,
// emits a 500 citing the exit code. If `error` fires first, emits a 500
// and suppresses any later result. Exactly one JSON body is written.
func runNonStreaming(ctx context.Context, w http.ResponseWriter, req Request, disconnected <-chan struct{}) {
	var result *events.Event
	var errored bool
	var exitCode int
	responded := false

	respond := func() {
		if responded {
			return
		}
		responded = true

		switch {
		case errored:
			writeJSONError(w, http.StatusInternalServerError, "upstream error", "upstream_error", "upstream_error")
		case result != nil:
			id := respbuilder.ChatCompletionID()
			text := result.ResultText
			resp := respbuilder.ResultToResponse(id, *result, &text, nil)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(resp)
		default:
			writeJSONError(w, http.StatusInternalServerError,
				fmt.Sprintf("upstream exited with code %d without producing a result", exitCode), "upstream_error", "no_result")
		}
	}

	for {
		select {
		case <-disconnected:
			req.Driver.Kill()
			drainUntilClosed(req.Events)
			return
		case e, ok := <-req.Events:
			if !ok {
				respond()
				return
			}
			switch e.Kind {
			case events.KindResult:
				copyE := e
				result = &copyE
			case events.KindError:
				errored = true
			case events.KindClose:
				exitCode = e.ExitCode
				respond()
			}
		}
	}
}

// drainUntilClosed discards every remaining event in the background until
// the driver closes ch, so the caller can return without waiting for it.
func drainUntilClosed(ch <-chan events.Event) {
	go func() {
		for range ch {
		}
	}()
}
