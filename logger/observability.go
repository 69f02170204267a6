package logger

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// ObservabilityLogger writes structured JSONL logs via logrus, meant for
// machine ingestion rather than the dev-facing ContextLogger above.
type ObservabilityLogger struct {
	logger *logrus.Logger
	file   *os.File
}

// Component constants for consistent labeling.
const (
	ComponentHTTP       = "http_surface"
	ComponentDriver     = "subprocess_driver"
	ComponentDispatcher = "response_dispatcher"
	ComponentToolProto  = "tool_protocol"
	ComponentSession    = "session_store"
	ComponentConfig     = "configuration"
)

// Category constants for log classification.
const (
	CategoryRequest        = "request"
	CategorySpawn          = "spawn"
	CategoryStream         = "stream"
	CategorySuccess        = "success"
	CategoryWarning        = "warning"
	CategoryError          = "error"
	CategoryHealth         = "health"
	CategoryToolCall       = "tool_call"
	CategoryLoopGuard      = "loop_guard"
	CategorySessionLookup  = "session_lookup"
	CategorySessionExpiry  = "session_expiry"
	CategoryDebug          = "debug"
)

// NewObservabilityLogger creates a logger that appends JSONL entries to
// <logDir>/agentcli-bridge.jsonl.
func NewObservabilityLogger(logDir string) (*ObservabilityLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, err
	}

	logPath := filepath.Join(logDir, "agentcli-bridge.jsonl")
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetOutput(file)
	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})
	logger.SetLevel(logrus.InfoLevel)
	logger = logger.WithField("service", "agentcli-bridge").Logger

	return &ObservabilityLogger{logger: logger, file: file}, nil
}

// Close closes the underlying log file.
func (o *ObservabilityLogger) Close() error {
	if o.file != nil {
		return o.file.Close()
	}
	return nil
}

func (o *ObservabilityLogger) createEntry(component, category, requestID string, fields map[string]interface{}) *logrus.Entry {
	entry := o.logger.WithFields(logrus.Fields{
		"component": component,
		"category":  category,
	})
	if requestID != "" {
		entry = entry.WithField("request_id", requestID)
	}
	if fields != nil {
		entry = entry.WithFields(fields)
	}
	return entry
}

func (o *ObservabilityLogger) Debug(component, category, requestID, message string, fields map[string]interface{}) {
	o.createEntry(component, category, requestID, fields).Debug(message)
}

func (o *ObservabilityLogger) Info(component, category, requestID, message string, fields map[string]interface{}) {
	o.createEntry(component, category, requestID, fields).Info(message)
}

func (o *ObservabilityLogger) Warn(component, category, requestID, message string, fields map[string]interface{}) {
	o.createEntry(component, category, requestID, fields).Warn(message)
}

func (o *ObservabilityLogger) Error(component, category, requestID, message string, fields map[string]interface{}) {
	o.createEntry(component, category, requestID, fields).Error(message)
}

// Request logs an inbound HTTP request.
func (o *ObservabilityLogger) Request(requestID, message string, fields map[string]interface{}) {
	o.Info(ComponentHTTP, CategoryRequest, requestID, message, fields)
}

// SubprocessEvent logs a driver lifecycle event (spawn, exit, timeout, kill).
func (o *ObservabilityLogger) SubprocessEvent(requestID, message string, fields map[string]interface{}) {
	o.Info(ComponentDriver, CategorySpawn, requestID, message, fields)
}

// ToolCallEvent logs a parsed tool call or a loop-guard decision.
func (o *ObservabilityLogger) ToolCallEvent(requestID, toolName, message string, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields["tool_name"] = toolName
	o.Info(ComponentToolProto, CategoryToolCall, requestID, message, fields)
}

// SessionEvent logs a session-store lookup, creation, or expiry.
func (o *ObservabilityLogger) SessionEvent(requestID, conversationID, message string, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields["conversation_id"] = conversationID
	o.Info(ComponentSession, CategorySessionLookup, requestID, message, fields)
}

// DispatchEvent logs which response-dispatch mode served a request.
func (o *ObservabilityLogger) DispatchEvent(requestID, mode string, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields["mode"] = mode
	o.Info(ComponentDispatcher, CategoryStream, requestID, "dispatch mode selected", fields)
}
