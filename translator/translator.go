package translator

import (
	"agentcli-bridge/config"
	"agentcli-bridge/toolproto"
	"agentcli-bridge/types"
)

// Translate turns an inbound chat-completions request into a CLI
// invocation spec. Session correlation is not performed here — the
// dispatcher owns session-store lookup/allocation; this function only
// forwards req.User verbatim as a candidate upstream session id.
func Translate(cfg *config.Config, req types.ChatRequest) InvocationSpec {
	alias := cfg.ResolveModelAlias(req.Model)
	active := toolproto.Active(req.Tools, req.ToolChoice)
	prompt := BuildPrompt(req.Messages, req.Tools, req.ToolChoice)

	return InvocationSpec{
		Prompt:      prompt,
		ModelAlias:  alias,
		SessionID:   req.User,
		ToolsActive: active,
	}
}
