// Package events defines the tagged-union upstream event types emitted by
// the subprocess driver, plus classifier predicates used by consumers that
// don't want to switch on Kind themselves.
package events

// Kind discriminates the upstream/driver event union.
type Kind string

const (
	// Upstream-frame kinds, one per recognized line in the CLI's
	// line-delimited JSON stream.
	KindInit         Kind = "init"
	KindStreamEvent  Kind = "stream_event"
	KindAssistant    Kind = "assistant"
	KindResult       Kind = "result"
	KindRaw          Kind = "raw" // parse failure, or an ignored system/hook subtype

	// Driver-feed kinds, synthesized by the driver itself rather than
	// parsed directly off a single upstream line.
	KindContentDelta Kind = "content_delta"
	KindClose        Kind = "close"
	KindError        Kind = "error"
)

// Event is the single type carried on the driver's event channel. Only the
// fields relevant to Kind are populated; callers branch on Kind first.
type Event struct {
	Kind Kind

	// KindContentDelta
	Delta string

	// KindAssistant
	AssistantModel string
	StopReason     *string

	// KindResult
	ResultText      string
	ResultIsError   bool
	DurationMS      int64
	NumTurns        int
	CostUSD         float64
	ModelUsage      map[string]Usage // keyed by model name, insertion order not preserved by map

	// KindInit
	SessionID    string
	InitModel    string
	Capabilities []string

	// KindRaw
	RawLine string

	// KindClose
	ExitCode int

	// KindError
	Err     error
	Timeout bool

	// Line is the raw JSON line this event was derived from, if any.
	Line string
}

// Usage is the per-model token usage reported in a result event.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// IsContentDelta reports whether e carries an incremental text fragment.
func IsContentDelta(e Event) bool { return e.Kind == KindContentDelta }

// IsTerminal reports whether e ends the event stream for a request: either
// the upstream result arrived, or the subprocess closed, or a driver-level
// error (including timeout) fired.
func IsTerminal(e Event) bool {
	switch e.Kind {
	case KindResult, KindClose, KindError:
		return true
	default:
		return false
	}
}

// IsFrame reports whether e originated from a single parsed (or unparsable)
// upstream line, as opposed to a driver lifecycle event like close/error.
func IsFrame(e Event) bool {
	switch e.Kind {
	case KindInit, KindStreamEvent, KindAssistant, KindResult, KindRaw:
		return true
	default:
		return false
	}
}
