package translator

import (
	"agentcli-bridge/types"
	"encoding/json"
	"strings"
)

// ExtractText flattens a message's content field, which may arrive as a
// plain string, a list of typed parts, an object carrying a "text" field,
// or an arbitrary JSON value. Only text parts are retained from a part
// list, joined with newlines; anything else is JSON-stringified as a
// fallback so no content is silently dropped.
func ExtractText(content json.RawMessage) string {
	if len(content) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(content, &s); err == nil {
		return s
	}

	var parts []types.ContentPart
	if err := json.Unmarshal(content, &parts); err == nil {
		var texts []string
		for _, p := range parts {
			if p.Type == "text" && p.Text != "" {
				texts = append(texts, p.Text)
			}
		}
		return strings.Join(texts, "\n")
	}

	var obj struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(content, &obj); err == nil && obj.Text != "" {
		return obj.Text
	}

	var v interface{}
	if err := json.Unmarshal(content, &v); err == nil {
		b, err := json.Marshal(v)
		if err == nil {
			return string(b)
		}
	}
	return string(content)
}
