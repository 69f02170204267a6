package logger

import (
	"agentcli-bridge/config"
	"context"
)

// ConfigAdapter adapts config.Config to the LoggerConfig interface the
// ContextLogger consumes.
type ConfigAdapter struct {
	cfg *config.Config
}

// NewConfigAdapter creates a new ConfigAdapter.
func NewConfigAdapter(cfg *config.Config) LoggerConfig {
	return &ConfigAdapter{cfg: cfg}
}

// ShouldLogForModel always logs; the adapter has no per-model log gating.
func (c *ConfigAdapter) ShouldLogForModel(model string) bool {
	return true
}

// GetMinLogLevel returns DEBUG when Debug is set, INFO otherwise.
func (c *ConfigAdapter) GetMinLogLevel() Level {
	if c.cfg != nil && c.cfg.Debug {
		return DEBUG
	}
	return INFO
}

// ShouldMaskAPIKeys always masks; there is no reason not to.
func (c *ConfigAdapter) ShouldMaskAPIKeys() bool {
	return true
}

// NewFromConfig creates a new logger using the adapter config.
func NewFromConfig(ctx context.Context, cfg *config.Config) Logger {
	return New(ctx, NewConfigAdapter(cfg))
}

// ContextLoggerFromConfig creates a logger and stores it in context for
// easy retrieval by FromContext further down the call chain.
func ContextLoggerFromConfig(ctx context.Context, cfg *config.Config) (context.Context, Logger) {
	l := NewFromConfig(ctx, cfg)
	return context.WithValue(ctx, loggerContextKey, l), l
}
