package provider

import (
	"context"

	"mew/plugins/perception-agent/internal/event"
)

// Request is the outgoing LLM request under construction. Hooks may rewrite
// its fields in place before the provider call is made.
type Request struct {
	// Prompt is the user-facing prompt text sent as the final user message.
	Prompt string
	// System is the system/persona prompt, may be empty.
	System string
}

// RequestHook observes an outgoing request right before the LLM call and may
// mutate it. Hooks must not fail the request: they log and degrade instead.
type RequestHook func(ctx context.Context, msg event.Message, req *Request)

// Hooks is an ordered pre-request hook chain.
type Hooks struct {
	hooks []RequestHook
}

func (h *Hooks) OnLLMRequest(hook RequestHook) {
	if hook == nil {
		return
	}
	h.hooks = append(h.hooks, hook)
}

func (h *Hooks) Apply(ctx context.Context, msg event.Message, req *Request) {
	if req == nil {
		return
	}
	for _, hook := range h.hooks {
		hook(ctx, msg, req)
	}
}
