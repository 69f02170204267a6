package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"agentcli-bridge/config"
	"agentcli-bridge/dispatch"
	"agentcli-bridge/driver"
	"agentcli-bridge/events"
	"agentcli-bridge/logger"
	"agentcli-bridge/respbuilder"
	"agentcli-bridge/session"
	"agentcli-bridge/toolproto"
	"agentcli-bridge/translator"
	"agentcli-bridge/types"
)

// Handlers wires the three HTTP endpoints to the rest of the module.
type Handlers struct {
	Cfg       *config.Config
	Store     *session.Store
	Logger    logger.Logger
	ObsLog    *logger.ObservabilityLogger
	Breaker   *driver.Breaker
	LoopGuard *toolproto.LoopGuard
}

// NewHandlers constructs a Handlers from the module's shared dependencies.
func NewHandlers(cfg *config.Config, store *session.Store, log logger.Logger, obs *logger.ObservabilityLogger) *Handlers {
	return &Handlers{
		Cfg:       cfg,
		Store:     store,
		Logger:    log,
		ObsLog:    obs,
		Breaker:   driver.NewBreaker(driver.DefaultBreakerConfig()),
		LoopGuard: toolproto.NewLoopGuard(0),
	}
}

// ChatCompletions is the dispatcher entry point: POST /v1/chat/completions.
func (h *Handlers) ChatCompletions(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, h.Cfg.JSONBodyLimitBytes))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "failed to read request body", "invalid_request_error", "invalid_body")
		return
	}

	var req types.ChatRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "malformed JSON body", "invalid_request_error", "invalid_json")
		return
	}
	if len(req.Messages) == 0 {
		writeJSONError(w, http.StatusBadRequest, "messages must be a non-empty array", "invalid_request_error", "invalid_messages")
		return
	}

	if !h.Breaker.Allow() {
		writeJSONError(w, http.StatusServiceUnavailable,
			"upstream CLI is unhealthy; backing off before retrying", "upstream_unavailable_error", "circuit_open")
		return
	}

	requestID := respbuilder.NewRequestID()
	logger.LogRequest(r.Context(), h.Logger, req.Model, len(req.Tools), req.Stream)

	history := toolproto.ExtractAssistantToolCalls(req.Messages)
	if d := h.LoopGuard.Check(history); d.Tripped {
		logger.LogLoopGuardTripped(r.Context(), h.Logger, d.ToolName, d.Count)
		h.writeLoopGuardShortCircuit(w, d)
		return
	}

	spec := translator.Translate(h.Cfg, req)
	logger.LogModelResolution(r.Context(), h.Logger, req.Model, spec.ModelAlias)

	sessionID := spec.SessionID
	if sessionID != "" {
		mapping := h.Store.GetOrCreate(sessionID, requestID, spec.ModelAlias)
		sessionID = mapping.UpstreamSessionID
		sessionStoreSize.Set(float64(h.Store.Size()))
	}

	d := driver.New(driver.Options{
		CLIPath:   h.Cfg.CLIPath,
		Prompt:    spec.Prompt,
		Model:     spec.ModelAlias,
		SessionID: sessionID,
		Timeout:   h.Cfg.SubprocessTimeout,
	})

	logger.LogSubprocessSpawn(r.Context(), h.Logger, h.Cfg.CLIPath, []string{spec.ModelAlias}, sessionID)
	ch, err := d.Start(r.Context())
	if err != nil {
		h.Breaker.RecordFailure()
		writeSpawnError(w, err)
		return
	}
	h.Breaker.RecordSuccess()
	subprocessesStarted.Inc()

	mode := dispatch.SelectMode(spec.ToolsActive, req.Stream)
	dispatchModeTotal.WithLabelValues(string(mode)).Inc()

	dispatch.Run(r.Context(), w, r, dispatch.Request{
		Driver:          d,
		Events:          ch,
		ToolsActive:     spec.ToolsActive,
		StreamRequested: req.Stream,
		RequestID:       requestID,
		Logger:          h.Logger,
	})
}

// writeLoopGuardShortCircuit responds directly without spawning the
// upstream CLI, halting a tool call the model would otherwise keep
// repeating with no native stop condition of its own.
func (h *Handlers) writeLoopGuardShortCircuit(w http.ResponseWriter, d toolproto.Detection) {
	text := fmt.Sprintf("Stopped after detecting %d consecutive identical calls to %q.", d.Count, d.ToolName)
	resp := respbuilder.ResultToResponse(respbuilder.ChatCompletionID(), events.Event{}, &text, nil)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

func writeSpawnError(w http.ResponseWriter, err error) {
	if isCLINotInstalled(err) {
		writeJSONError(w, http.StatusInternalServerError,
			"upstream CLI not installed; see installation guidance", "upstream_unavailable_error", "cli_not_installed")
		return
	}
	writeJSONError(w, http.StatusInternalServerError, err.Error(), "upstream_unavailable_error", "spawn_failed")
}

func isCLINotInstalled(err error) bool {
	return err != nil && containsCLINotInstalled(err.Error())
}

func containsCLINotInstalled(msg string) bool {
	const marker = "upstream CLI not installed"
	for i := 0; i+len(marker) <= len(msg); i++ {
		if msg[i:i+len(marker)] == marker {
			return true
		}
	}
	return false
}

// modelListEntry is one entry of GET /v1/models.
type modelListEntry struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	OwnedBy string `json:"owned_by"`
}

// Models is GET /v1/models: a static list of the three normalized model ids.
func (h *Handlers) Models(w http.ResponseWriter, r *http.Request) {
	models := []modelListEntry{
		{ID: "claude-opus-4", Object: "model", OwnedBy: "anthropic"},
		{ID: "claude-sonnet-4", Object: "model", OwnedBy: "anthropic"},
		{ID: "claude-haiku-4", Object: "model", OwnedBy: "anthropic"},
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"object": "list", "data": models})
}

// Health is GET /health.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "ok",
		"provider":  "claude-code-cli",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
