package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"agentcli-bridge/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFixtureCLI creates a tiny shell script that stands in for the
// upstream CLI: it ignores its arguments and emits the given lines to
// stdout, one per echo, simulating line-delimited JSON framing.
func writeFixtureCLI(t *testing.T, lines []string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "fake-cli")
	script := "#!/bin/sh\n"
	for _, l := range lines {
		script += "printf '%s\\n' '" + l + "'\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))
	return path
}

func drain(ch <-chan events.Event) []events.Event {
	var out []events.Event
	for e := range ch {
		out = append(out, e)
	}
	return out
}

func TestDriver_EmitsContentDeltaAndResult(t *testing.T) {
	cli := writeFixtureCLI(t, []string{
		`{"type":"stream_event","event":{"type":"content_block_delta","delta":{"type":"text_delta","text":"he"}}}`,
		`{"type":"stream_event","event":{"type":"content_block_delta","delta":{"type":"text_delta","text":"llo"}}}`,
		`{"type":"result","result":"hello","is_error":false,"duration_ms":12,"num_turns":1}`,
	})

	d := New(Options{CLIPath: cli, Prompt: "hi", Model: "opus", Timeout: 5 * time.Second})
	ch, err := d.Start(context.Background())
	require.NoError(t, err)

	evs := drain(ch)
	var deltas []string
	var gotResult, gotClose bool
	for _, e := range evs {
		switch e.Kind {
		case events.KindContentDelta:
			deltas = append(deltas, e.Delta)
		case events.KindResult:
			gotResult = true
			assert.Equal(t, "hello", e.ResultText)
		case events.KindClose:
			gotClose = true
			assert.Equal(t, 0, e.ExitCode)
		}
	}
	assert.Equal(t, []string{"he", "llo"}, deltas)
	assert.True(t, gotResult)
	assert.True(t, gotClose)
}

func TestDriver_MissingExecutableReportsDistinguishableError(t *testing.T) {
	d := New(Options{CLIPath: "/nonexistent/path/to/cli-binary-xyz", Prompt: "hi", Model: "opus"})
	_, err := d.Start(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCLINotInstalled)
}

func TestDriver_SecondStartIsRejected(t *testing.T) {
	cli := writeFixtureCLI(t, []string{`{"type":"result","result":"x"}`})
	d := New(Options{CLIPath: cli, Prompt: "hi", Model: "opus"})
	_, err := d.Start(context.Background())
	require.NoError(t, err)

	_, err = d.Start(context.Background())
	assert.Error(t, err)
}

func TestDriver_KillIsIdempotent(t *testing.T) {
	cli := writeFixtureCLI(t, []string{`{"type":"result","result":"x"}`})
	d := New(Options{CLIPath: cli, Prompt: "hi", Model: "opus"})
	_, err := d.Start(context.Background())
	require.NoError(t, err)

	d.Kill()
	d.Kill() // must not panic
}

func TestBuildArgs_IncludesSessionIDOnlyWhenPresent(t *testing.T) {
	withoutSession := buildArgs(Options{Model: "opus", Prompt: "hi"})
	assert.NotContains(t, withoutSession, "--session-id")

	withSession := buildArgs(Options{Model: "opus", Prompt: "hi", SessionID: "sess_1"})
	assert.Contains(t, withSession, "--session-id")
	assert.Contains(t, withSession, "sess_1")
}
