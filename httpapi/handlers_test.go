package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChatCompletions_RejectsEmptyMessages(t *testing.T) {
	h := testHandlers(t)
	body := bytes.NewBufferString(`{"model":"claude-sonnet-4","messages":[]}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/chat/completions", body)
	rr := httptest.NewRecorder()

	h.ChatCompletions(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid_messages")
}

func TestChatCompletions_RejectsMalformedJSON(t *testing.T) {
	h := testHandlers(t)
	body := bytes.NewBufferString(`not json`)
	req := httptest.NewRequest(http.MethodPost, "/v1/chat/completions", body)
	rr := httptest.NewRecorder()

	h.ChatCompletions(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid_json")
}

func TestChatCompletions_CircuitOpenReturns503(t *testing.T) {
	h := testHandlers(t)
	for i := 0; i < 5; i++ {
		h.Breaker.RecordFailure()
	}

	body := bytes.NewBufferString(`{"model":"claude-sonnet-4","messages":[{"role":"user","content":"hi"}]}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/chat/completions", body)
	rr := httptest.NewRecorder()

	h.ChatCompletions(rr, req)

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), "circuit_open")
}

func TestChatCompletions_LoopGuardShortCircuitsWithoutSpawning(t *testing.T) {
	h := testHandlers(t)
	h.Cfg.CLIPath = "definitely-not-a-real-cli-binary" // would fail if ever reached

	toolCall := `{"id":"call_1","type":"function","function":{"name":"search","arguments":"{\"q\":\"x\"}"}}`
	assistantMsg := `{"role":"assistant","content":"","tool_calls":[` + toolCall + `]}`
	body := bytes.NewBufferString(`{"model":"claude-sonnet-4","messages":[` +
		assistantMsg + `,` + assistantMsg + `,` + assistantMsg +
		`,{"role":"user","content":"keep going"}]}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/chat/completions", body)
	rr := httptest.NewRecorder()

	h.ChatCompletions(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "consecutive identical calls")
	assert.Contains(t, rr.Body.String(), `"finish_reason":"stop"`)
	assert.True(t, h.Breaker.IsOpen() == false) // breaker never touched since no spawn happened
}

func TestChatCompletions_SpawnFailureSurfacesCLINotInstalled(t *testing.T) {
	h := testHandlers(t)
	h.Cfg.CLIPath = "definitely-not-a-real-cli-binary"

	body := bytes.NewBufferString(`{"model":"claude-sonnet-4","messages":[{"role":"user","content":"hi"}]}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/chat/completions", body)
	rr := httptest.NewRecorder()

	h.ChatCompletions(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "cli_not_installed")
	assert.True(t, h.Breaker.IsOpen() == false) // one failure alone shouldn't open the default-threshold breaker
}
