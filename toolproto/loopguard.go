package toolproto

import (
	"agentcli-bridge/types"
	"crypto/md5"
	"encoding/hex"
)

// LoopGuard watches an ordered list of tool calls for runaway repetition —
// the same tool called with identical arguments threshold (default three)
// or more times in a row — which the prompt-injected tool convention has
// no other mechanism to stop once the model falls into the pattern. The
// HTTP handler feeds it every assistant tool call in the request history.
type LoopGuard struct {
	threshold int
}

// NewLoopGuard creates a guard that trips after threshold consecutive
// identical calls to the same tool.
func NewLoopGuard(threshold int) *LoopGuard {
	if threshold <= 0 {
		threshold = 3
	}
	return &LoopGuard{threshold: threshold}
}

// Detection reports a tripped guard and the tool responsible.
type Detection struct {
	Tripped  bool
	ToolName string
	Count    int
}

// Check scans the given tool calls in order and reports
// whether any tool was called identically threshold times consecutively.
func (g *LoopGuard) Check(calls []types.ToolCall) Detection {
	if len(calls) < g.threshold {
		return Detection{}
	}

	var lastName, lastHash string
	count := 0
	for _, tc := range calls {
		hash := hashArguments(tc.Function.Arguments)
		if tc.Function.Name == lastName && hash == lastHash {
			count++
		} else {
			lastName = tc.Function.Name
			lastHash = hash
			count = 1
		}
		if count >= g.threshold {
			return Detection{Tripped: true, ToolName: tc.Function.Name, Count: count}
		}
	}
	return Detection{}
}

func hashArguments(args string) string {
	sum := md5.Sum([]byte(args))
	return hex.EncodeToString(sum[:])
}
