package logger

import (
	"agentcli-bridge/events"
	"context"
	"encoding/json"
)

// Emoji constants used to make log lines visually scannable.
const (
	EmojiReceived = "📨"
	EmojiTool     = "🔧"
	EmojiTarget   = "🎯"
	EmojiStream   = "🌊"
	EmojiSuccess  = "✅"
	EmojiLaunch   = "🚀"
	EmojiSession  = "🗂️"
	EmojiSkip     = "🚫"
	EmojiAlert    = "🚨"
	EmojiStats    = "📊"
	EmojiGuard    = "🔁"
)

// LogRequest logs an incoming chat-completions request.
func LogRequest(ctx context.Context, logger Logger, model string, toolCount int, stream bool) {
	logger.WithModel(model).Info("%s Received request for model=%s tools=%d stream=%v",
		EmojiReceived, model, toolCount, stream)
}

// LogModelResolution logs how a requested model string resolved to a CLI alias.
func LogModelResolution(ctx context.Context, logger Logger, requested, alias string) {
	logger.Info("%s Model %s → alias %s", EmojiTarget, requested, alias)
}

// LogSubprocessSpawn logs the launch of an upstream CLI invocation.
func LogSubprocessSpawn(ctx context.Context, logger Logger, cliPath string, args []string, sessionID string) {
	if sessionID != "" {
		logger.Info("%s Spawning %s (resuming session %s)", EmojiLaunch, cliPath, sessionID)
	} else {
		logger.Info("%s Spawning %s (new session)", EmojiLaunch, cliPath)
	}
	logger.Debug("     argv: %v", args)
}

// LogSubprocessExit logs the termination of an upstream CLI invocation.
func LogSubprocessExit(ctx context.Context, logger Logger, exitCode int, durationMS int64) {
	logger.Info("%s Subprocess exited code=%d duration_ms=%d", EmojiSuccess, exitCode, durationMS)
}

// LogSubprocessTimeout logs a forced kill after the configured deadline.
func LogSubprocessTimeout(ctx context.Context, logger Logger, elapsedMS int64) {
	logger.Warn("%s Subprocess killed after exceeding timeout (elapsed_ms=%d)", EmojiAlert, elapsedMS)
}

// LogDriverEvent logs a classified event emitted by the subprocess driver.
func LogDriverEvent(ctx context.Context, logger Logger, kind events.Kind) {
	logger.Debug("%s Driver event: %s", EmojiStream, kind)
}

// LogDispatchMode logs which of the three response-dispatch modes was chosen.
func LogDispatchMode(ctx context.Context, logger Logger, mode string, toolsActive bool) {
	logger.Info("%s Dispatch mode=%s tools_active=%v", EmojiTarget, mode, toolsActive)
}

// LogToolCallsExtracted logs how many tool calls were parsed out of the
// upstream's buffered text.
func LogToolCallsExtracted(ctx context.Context, logger Logger, count int) {
	if count == 0 {
		logger.Debug("%s No tool calls found in response", EmojiTool)
		return
	}
	logger.Info("%s Extracted %d tool call(s) from response", EmojiTool, count)
}

// LogToolManifest logs the tool names injected into the synthesized prompt.
func LogToolManifest(ctx context.Context, logger Logger, toolNames []string) {
	logger.Debug("%s Injected tool manifest: %v", EmojiTool, toolNames)
}

// LogLoopGuardTripped logs when the loop guard halts a repeated tool call.
func LogLoopGuardTripped(ctx context.Context, logger Logger, toolName string, repeatCount int) {
	logger.Warn("%s Loop guard tripped on %s after %d repeats", EmojiGuard, toolName, repeatCount)
}

// LogSessionResolved logs a session lookup or creation.
func LogSessionResolved(ctx context.Context, logger Logger, conversationID, upstreamSessionID string, created bool) {
	if created {
		logger.Info("%s Created session mapping %s → %s", EmojiSession, conversationID, upstreamSessionID)
		return
	}
	logger.Debug("%s Resumed session mapping %s → %s", EmojiSession, conversationID, upstreamSessionID)
}

// LogSessionExpired logs a TTL-driven session eviction.
func LogSessionExpired(ctx context.Context, logger Logger, count int) {
	if count == 0 {
		return
	}
	logger.Info("%s Expired %d session mapping(s) past TTL", EmojiSession, count)
}

// LogClientDisconnect logs a client connection closing before completion.
func LogClientDisconnect(ctx context.Context, logger Logger) {
	logger.Warn("%s Client disconnected; reaping subprocess", EmojiSkip)
}

// LogResponseSummary logs the shape of the response sent back to the client.
func LogResponseSummary(ctx context.Context, logger Logger, toolCalls int, finishReason string) {
	logger.Info("%s Response summary: tool_calls=%d finish_reason=%s", EmojiSuccess, toolCalls, finishReason)
}

// LogRequestBody logs the raw request body for debug diagnostics, pretty-printed.
func LogRequestBody(ctx context.Context, logger Logger, body interface{}) {
	if b, err := json.MarshalIndent(body, "", "  "); err == nil {
		logger.Debug("request body:\n%s", string(b))
	}
}

// LogStats logs a periodic snapshot, e.g. session-store size or active subprocess count.
func LogStats(ctx context.Context, logger Logger, label string, value int) {
	logger.Info("%s %s: %d", EmojiStats, label, value)
}

// ConditionalLogger returns the logger stored in ctx (see
// ContextLoggerFromConfig), or a no-op logger when none is present.
func ConditionalLogger(ctx context.Context) Logger {
	if logger, ok := ctx.Value(loggerContextKey).(Logger); ok {
		return logger
	}
	return &noOpLogger{}
}

type noOpLogger struct{}

func (n *noOpLogger) Debug(format string, args ...interface{}) {}
func (n *noOpLogger) Info(format string, args ...interface{})  {}
func (n *noOpLogger) Warn(format string, args ...interface{})  {}
func (n *noOpLogger) Error(format string, args ...interface{}) {}
func (n *noOpLogger) WithField(key, value string) Logger       { return n }
func (n *noOpLogger) WithModel(model string) Logger            { return n }
func (n *noOpLogger) WithComponent(component string) Logger    { return n }
