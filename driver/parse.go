package driver

import (
	"agentcli-bridge/events"
	"encoding/json"
)

// classifyLine parses one complete, trimmed, non-empty line of upstream
// stdout into a typed event. Parse failures are never fatal: the line is
// surfaced as a raw event and framing continues.
func classifyLine(line string) events.Event {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(line), &data); err != nil {
		return events.Event{Kind: events.KindRaw, RawLine: line, Line: line}
	}

	typ, _ := data["type"].(string)

	switch typ {
	case "init":
		return parseInit(data, line)
	case "stream_event":
		if inner, ok := data["event"].(map[string]interface{}); ok {
			return parseStreamEvent(inner, line)
		}
		return events.Event{Kind: events.KindRaw, RawLine: line, Line: line}
	case "assistant":
		return parseAssistant(data, line)
	case "result":
		return parseResult(data, line)
	default:
		// Hook/system/other subtypes are ignored but must not break framing.
		return events.Event{Kind: events.KindRaw, RawLine: line, Line: line}
	}
}

func parseInit(data map[string]interface{}, line string) events.Event {
	e := events.Event{Kind: events.KindInit, Line: line}
	if sid, ok := data["session_id"].(string); ok {
		e.SessionID = sid
	}
	if model, ok := data["model"].(string); ok {
		e.InitModel = model
	}
	if caps, ok := data["capabilities"].([]interface{}); ok {
		for _, c := range caps {
			if s, ok := c.(string); ok {
				e.Capabilities = append(e.Capabilities, s)
			}
		}
	}
	return e
}

func parseStreamEvent(inner map[string]interface{}, line string) events.Event {
	typ, _ := inner["type"].(string)
	if typ != "content_block_delta" {
		return events.Event{Kind: events.KindRaw, RawLine: line, Line: line}
	}
	delta, ok := inner["delta"].(map[string]interface{})
	if !ok {
		return events.Event{Kind: events.KindRaw, RawLine: line, Line: line}
	}
	deltaType, _ := delta["type"].(string)
	if deltaType != "text_delta" {
		return events.Event{Kind: events.KindRaw, RawLine: line, Line: line}
	}
	text, _ := delta["text"].(string)
	return events.Event{Kind: events.KindContentDelta, Delta: text, Line: line}
}

func parseAssistant(data map[string]interface{}, line string) events.Event {
	e := events.Event{Kind: events.KindAssistant, Line: line}
	message, _ := data["message"].(map[string]interface{})
	if message == nil {
		return e
	}
	if model, ok := message["model"].(string); ok {
		e.AssistantModel = model
	}
	if sr, ok := message["stop_reason"].(string); ok {
		e.StopReason = &sr
	}
	if usage, ok := message["usage"].(map[string]interface{}); ok {
		e.ModelUsage = map[string]events.Usage{
			e.AssistantModel: {
				InputTokens:  intField(usage, "input_tokens"),
				OutputTokens: intField(usage, "output_tokens"),
			},
		}
	}
	return e
}

func parseResult(data map[string]interface{}, line string) events.Event {
	e := events.Event{Kind: events.KindResult, Line: line}
	if s, ok := data["result"].(string); ok {
		e.ResultText = s
	}
	if b, ok := data["is_error"].(bool); ok {
		e.ResultIsError = b
	}
	if d, ok := data["duration_ms"].(float64); ok {
		e.DurationMS = int64(d)
	}
	if n, ok := data["num_turns"].(float64); ok {
		e.NumTurns = int(n)
	}
	if c, ok := data["total_cost_usd"].(float64); ok {
		e.CostUSD = c
	}
	if mu, ok := data["modelUsage"].(map[string]interface{}); ok {
		e.ModelUsage = make(map[string]events.Usage, len(mu))
		for model, raw := range mu {
			if u, ok := raw.(map[string]interface{}); ok {
				e.ModelUsage[model] = events.Usage{
					InputTokens:  intField(u, "input_tokens"),
					OutputTokens: intField(u, "output_tokens"),
				}
			}
		}
	}
	return e
}

func intField(m map[string]interface{}, key string) int {
	if v, ok := m[key].(float64); ok {
		return int(v)
	}
	return 0
}
