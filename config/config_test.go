package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveModelAlias_CanonicalAndPrefixed(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "sonnet", cfg.ResolveModelAlias("claude-sonnet-4"))
	assert.Equal(t, "haiku", cfg.ResolveModelAlias("anthropic/haiku"))
	assert.Equal(t, "opus", cfg.ResolveModelAlias("unknown/sonnet-ish"))
}

func TestResolveModelAlias_UnknownDefaultsToOpus(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "opus", cfg.ResolveModelAlias("some-future-model"))
}

func TestResolveModelAlias_CaseInsensitive(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "sonnet", cfg.ResolveModelAlias("Claude-Sonnet-4"))
}

func TestLoadModelAliasOverrides_MissingFileIsEmpty(t *testing.T) {
	aliases, err := LoadModelAliasOverrides("/nonexistent/path/model_aliases.yaml")
	assert.NoError(t, err)
	assert.Empty(t, aliases)
}

func TestDefault_HasWorkingAddr(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "127.0.0.1:8787", cfg.Addr())
}
