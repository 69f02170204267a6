package toolproto

import (
	"testing"

	"agentcli-bridge/types"

	"github.com/stretchr/testify/assert"
)

func call(name, args string) types.ToolCall {
	return types.ToolCall{ID: "call_x", Type: "function", Function: types.ToolCallFunc{Name: name, Arguments: args}}
}

func TestLoopGuard_TripsOnThreeIdenticalCalls(t *testing.T) {
	g := NewLoopGuard(3)
	calls := []types.ToolCall{
		call("search", `{"q":"x"}`),
		call("search", `{"q":"x"}`),
		call("search", `{"q":"x"}`),
	}
	d := g.Check(calls)
	assert.True(t, d.Tripped)
	assert.Equal(t, "search", d.ToolName)
	assert.Equal(t, 3, d.Count)
}

func TestLoopGuard_DoesNotTripOnDistinctArguments(t *testing.T) {
	g := NewLoopGuard(3)
	calls := []types.ToolCall{
		call("search", `{"q":"x"}`),
		call("search", `{"q":"y"}`),
		call("search", `{"q":"z"}`),
	}
	d := g.Check(calls)
	assert.False(t, d.Tripped)
}

func TestLoopGuard_BelowThresholdNeverTrips(t *testing.T) {
	g := NewLoopGuard(3)
	calls := []types.ToolCall{call("search", `{}`), call("search", `{}`)}
	d := g.Check(calls)
	assert.False(t, d.Tripped)
}
