// Package config loads the adapter's operating configuration from the
// environment (optionally pre-populated from a .env file) and from a YAML
// model-alias override file, providing defaults for everything so the
// process boots with zero configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the complete adapter configuration.
type Config struct {
	Host string `json:"host"`
	Port string `json:"port"`

	// CLIPath is the executable name or path used to spawn the upstream CLI.
	CLIPath string `json:"cli_path"`

	// ModelAliases maps a requested model string to one of the three
	// canonical aliases the CLI accepts (opus, sonnet, haiku). A closed
	// table; entries come from defaults plus an optional
	// model_aliases.yaml override file.
	ModelAliases map[string]string `json:"model_aliases"`

	// SubprocessTimeout bounds how long a single CLI invocation may run
	// before the driver kills it.
	SubprocessTimeout time.Duration `json:"subprocess_timeout"`

	// SessionTTL bounds how long a session mapping survives since its
	// last use.
	SessionTTL time.Duration `json:"session_ttl"`

	// SessionFile is the path to the persisted session-mapping JSON file.
	SessionFile string `json:"session_file"`

	// ModelAliasOverrideFile, when present, is watched for changes and
	// hot-reloaded into ModelAliases.
	ModelAliasOverrideFile string `json:"model_alias_override_file"`

	// Debug enables verbose request/response logging.
	Debug bool `json:"debug"`

	// JSONBodyLimitBytes caps the size of an inbound request body.
	JSONBodyLimitBytes int64 `json:"json_body_limit_bytes"`
}

// defaultModelAliases is the closed table of canonical-name, provider-
// prefixed, and short-alias spellings that resolve to one of the three
// CLI model aliases. Unknown entries fall back to "opus".
func defaultModelAliases() map[string]string {
	return map[string]string{
		"opus":             "opus",
		"sonnet":           "sonnet",
		"haiku":            "haiku",
		"claude-opus-4":    "opus",
		"claude-sonnet-4":  "sonnet",
		"claude-haiku-4":   "haiku",
		"gpt-4":            "opus",
		"gpt-4o":           "sonnet",
		"gpt-4o-mini":      "haiku",
		"gpt-3.5-turbo":    "haiku",
		"anthropic/opus":   "opus",
		"anthropic/sonnet": "sonnet",
		"anthropic/haiku":  "haiku",
	}
}

// Default returns a Config populated with sensible defaults; every field
// works out of the box without any environment configuration.
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Host:                   "127.0.0.1",
		Port:                   "8787",
		CLIPath:                "claude",
		ModelAliases:           defaultModelAliases(),
		SubprocessTimeout:      5 * time.Minute,
		SessionTTL:             24 * time.Hour,
		SessionFile:            fmt.Sprintf("%s/.claude-code-cli-sessions.json", home),
		ModelAliasOverrideFile: "model_aliases.yaml",
		Debug:                  false,
		JSONBodyLimitBytes:     10 << 20, // 10 MiB
	}
}

// Load builds configuration from an optional .env file plus environment
// variables, falling back to Default() for anything unset. A missing .env
// file is not an error — unlike the model this package was adapted from,
// nothing here is mandatory.
func Load() (*Config, error) {
	_ = godotenv.Load() // best-effort; absence is normal outside development

	cfg := Default()

	if v := os.Getenv("HOST"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if _, err := strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = v
	}
	if v := os.Getenv("CLI_PATH"); v != "" {
		cfg.CLIPath = v
	}
	if v := os.Getenv("SESSION_FILE"); v != "" {
		cfg.SessionFile = v
	}
	if v := os.Getenv("MODEL_ALIAS_OVERRIDE_FILE"); v != "" {
		cfg.ModelAliasOverrideFile = v
	}
	if v := os.Getenv("SUBPROCESS_TIMEOUT_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SUBPROCESS_TIMEOUT_SECONDS %q: %w", v, err)
		}
		cfg.SubprocessTimeout = time.Duration(secs) * time.Second
	}
	if v := strings.ToLower(os.Getenv("DEBUG")); v == "1" || v == "true" {
		cfg.Debug = true
	}

	if aliases, err := LoadModelAliasOverrides(cfg.ModelAliasOverrideFile); err != nil {
		return nil, err
	} else {
		for k, v := range aliases {
			cfg.ModelAliases = mergeAlias(cfg.ModelAliases, k, v)
		}
	}

	return cfg, nil
}

func mergeAlias(m map[string]string, k, v string) map[string]string {
	m[strings.ToLower(k)] = v
	return m
}

// ResolveModelAlias maps a requested model string to one of {opus, sonnet,
// haiku}: consult the closed table directly, then strip a "<provider>/"
// prefix and retry once, then default to "opus".
func (c *Config) ResolveModelAlias(model string) string {
	model = strings.ToLower(strings.TrimSpace(model))
	if alias, ok := c.ModelAliases[model]; ok {
		return alias
	}
	if idx := strings.Index(model, "/"); idx >= 0 {
		stripped := model[idx+1:]
		if alias, ok := c.ModelAliases[stripped]; ok {
			return alias
		}
	}
	return "opus"
}

// Addr is the host:port the HTTP surface binds to.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}
